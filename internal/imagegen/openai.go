package imagegen

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

const (
	defaultImageModel   = "gpt-image-1"
	openAIImagesBaseURL = "https://api.openai.com/v1"
)

var errMissingImageAPIKey = errors.New("image API key is required")

// OpenAIStrategy is the primary chain stage: the OpenAI image API.
type OpenAIStrategy struct {
	apiKey  string
	model   string
	baseURL string
	client  *http.Client
}

// NewOpenAIStrategy creates the OpenAI image stage. An empty apiKey is
// allowed; the stage then fails fast so the chain degrades.
func NewOpenAIStrategy(apiKey, model string) *OpenAIStrategy {
	if model == "" {
		model = defaultImageModel
	}
	return &OpenAIStrategy{
		apiKey:  apiKey,
		model:   model,
		baseURL: openAIImagesBaseURL,
		client:  &http.Client{},
	}
}

// WithBaseURL overrides the API endpoint. Intended for tests.
func (s *OpenAIStrategy) WithBaseURL(baseURL string) *OpenAIStrategy {
	s.baseURL = baseURL
	return s
}

// Name identifies this stage.
func (s *OpenAIStrategy) Name() string { return "openai" }

type imageGenerationRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	N      int    `json:"n"`
	Size   string `json:"size"`
}

type imageGenerationResponse struct {
	Data []struct {
		B64JSON       string `json:"b64_json"`
		URL           string `json:"url,omitempty"`
		RevisedPrompt string `json:"revised_prompt,omitempty"`
	} `json:"data"`
}

// Generate calls the image API. The content-derived seed is appended to
// the prompt so identical content reproduces comparable output; the API
// itself has no seed parameter.
func (s *OpenAIStrategy) Generate(ctx context.Context, prompt, _ string, opts Options) (string, error) {
	if s.apiKey == "" {
		return "", errMissingImageAPIKey
	}

	seed := ContentSeed(prompt, opts.Style, opts.Mood)
	body, err := json.Marshal(imageGenerationRequest{
		Model:  s.model,
		Prompt: fmt.Sprintf("%s [ref:%s]", prompt, seed),
		N:      1,
		Size:   apiImageSize(opts.AspectRatio),
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/images/generations", bytes.NewBuffer(body))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.apiKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("image API request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("image API error (status %d): %s", resp.StatusCode, string(respBody))
	}

	var imageResp imageGenerationResponse
	if err := json.Unmarshal(respBody, &imageResp); err != nil {
		return "", fmt.Errorf("failed to unmarshal response: %w", err)
	}
	if len(imageResp.Data) == 0 {
		return "", errors.New("no image in response")
	}

	if url := imageResp.Data[0].URL; url != "" {
		return url, nil
	}
	if b64 := imageResp.Data[0].B64JSON; b64 != "" {
		return "data:image/png;base64," + b64, nil
	}
	return "", errors.New("response carried neither url nor image data")
}

// apiImageSize maps an aspect ratio onto the sizes the API supports.
func apiImageSize(aspectRatio string) string {
	switch aspectRatio {
	case "1:1":
		return "1024x1024"
	case "3:4":
		return "1024x1536"
	case "4:3", "16:9":
		return "1536x1024"
	default:
		return "1024x1024"
	}
}
