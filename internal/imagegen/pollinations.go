package imagegen

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
)

// maxURLPromptLen is the prompt cap for the URL-based provider, whose
// limit is the practical URL length rather than a body size.
const maxURLPromptLen = 3900

const defaultPollinationsURL = "https://image.pollinations.ai/prompt"

// PollinationsStrategy is the second chain stage: a free image service
// that renders whatever prompt is encoded into the request URL.
type PollinationsStrategy struct {
	baseURL string
	client  *http.Client
}

// NewPollinationsStrategy creates the URL-based image stage.
func NewPollinationsStrategy(baseURL string) *PollinationsStrategy {
	if baseURL == "" {
		baseURL = defaultPollinationsURL
	}
	return &PollinationsStrategy{
		baseURL: baseURL,
		client:  &http.Client{},
	}
}

// Name identifies this stage.
func (s *PollinationsStrategy) Name() string { return "pollinations" }

// Generate builds the image URL with an alternate (timestamp-mixed) seed
// and probes it; the URL itself is the resulting image location.
func (s *PollinationsStrategy) Generate(ctx context.Context, prompt, _ string, opts Options) (string, error) {
	prompt = truncatePrompt(prompt, maxURLPromptLen)

	width, height := dimensions(opts.AspectRatio)
	imageURL := fmt.Sprintf("%s/%s?width=%d&height=%d&seed=%s",
		s.baseURL, url.PathEscape(prompt), width, height, AlternateSeed(prompt))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, imageURL, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("image service unreachable: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("image service returned status %d", resp.StatusCode)
	}

	return imageURL, nil
}
