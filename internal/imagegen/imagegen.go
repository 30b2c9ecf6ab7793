// Package imagegen produces accompanying images for articles through a
// layered provider fallback chain that is guaranteed to yield an image.
package imagegen

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"newsmith/internal/analysis"
	"newsmith/internal/core"
)

// ImageStyle enumerates supported image styles.
type ImageStyle string

const (
	StyleRealistic    ImageStyle = "realistic"
	StyleArtistic     ImageStyle = "artistic"
	StyleMinimalist   ImageStyle = "minimalist"
	StyleAbstract     ImageStyle = "abstract"
	StylePhotographic ImageStyle = "photographic"
	StyleIllustration ImageStyle = "illustration"
)

// Mood enumerates supported image moods.
type Mood string

const (
	MoodProfessional Mood = "professional"
	MoodCreative     Mood = "creative"
	MoodSerious      Mood = "serious"
	MoodVibrant      Mood = "vibrant"
	MoodCalm         Mood = "calm"
	MoodDramatic     Mood = "dramatic"
)

// Options configures one image-generation call.
type Options struct {
	Style       ImageStyle `json:"style"`        // Defaults to realistic
	AspectRatio string     `json:"aspect_ratio"` // One of 16:9, 4:3, 1:1, 3:4; defaults to 16:9
	Mood        Mood       `json:"mood"`         // Defaults to professional
	Custom      string     `json:"custom"`       // Caller-supplied extra instructions
}

// normalize fills defaults for missing or unknown option values.
func (o Options) normalize() Options {
	switch o.Style {
	case StyleRealistic, StyleArtistic, StyleMinimalist, StyleAbstract, StylePhotographic, StyleIllustration:
	default:
		o.Style = StyleRealistic
	}
	switch o.AspectRatio {
	case "16:9", "4:3", "1:1", "3:4":
	default:
		o.AspectRatio = "16:9"
	}
	switch o.Mood {
	case MoodProfessional, MoodCreative, MoodSerious, MoodVibrant, MoodCalm, MoodDramatic:
	default:
		o.Mood = MoodProfessional
	}
	return o
}

// dimensions maps an aspect ratio to pixel dimensions for local rendering.
func dimensions(aspectRatio string) (int, int) {
	switch aspectRatio {
	case "4:3":
		return 1024, 768
	case "1:1":
		return 1024, 1024
	case "3:4":
		return 768, 1024
	default: // 16:9
		return 1280, 720
	}
}

// Pipeline generates article images with a fallback chain.
type Pipeline struct {
	chain *Chain
}

// NewPipeline assembles the standard four-stage chain: OpenAI, then a
// URL-seeded image service, then a placeholder service, then the local
// renderer. openaiKey may be empty, in which case the first stage reports
// a missing key and the chain degrades immediately.
func NewPipeline(cfg Config) *Pipeline {
	strategies := []Strategy{
		NewOpenAIStrategy(cfg.OpenAIAPIKey, cfg.Model),
		NewPollinationsStrategy(cfg.PollinationsURL),
		NewPlaceholderStrategy(cfg.PlaceholderURL),
		NewLocalRenderStrategy(),
	}
	return &Pipeline{
		chain: NewChain(strategies, cfg.StageTimeout),
	}
}

// NewPipelineWithChain builds a Pipeline over a custom chain. Intended for
// tests and alternative stage orderings.
func NewPipelineWithChain(chain *Chain) *Pipeline {
	return &Pipeline{chain: chain}
}

// Config holds image-pipeline construction parameters.
type Config struct {
	OpenAIAPIKey    string
	Model           string
	PollinationsURL string
	PlaceholderURL  string
	StageTimeout    time.Duration
}

// GenerateForArticle analyzes the article, builds a prompt from the
// derived signals, and runs the fallback chain. It never fails: the local
// render stages succeed unconditionally.
func (p *Pipeline) GenerateForArticle(ctx context.Context, title, body string, opts Options) (*core.AIImage, error) {
	opts = opts.normalize()
	contentAnalysis := analysis.Analyze(title, body)
	prompt := BuildPrompt(contentAnalysis, opts)
	return p.generate(ctx, prompt, titleWords(title), opts)
}

// GenerateFromPrompt runs the fallback chain with a caller-supplied prompt.
func (p *Pipeline) GenerateFromPrompt(ctx context.Context, prompt string, opts Options) (*core.AIImage, error) {
	opts = opts.normalize()
	prompt = truncatePrompt(prompt, MaxPromptLen)
	return p.generate(ctx, prompt, titleWords(prompt), opts)
}

// Edit derives a new image from an existing one by appending the
// instruction to the original prompt and re-running the chain. The
// original image is not mutated.
func (p *Pipeline) Edit(ctx context.Context, img *core.AIImage, instructions string, opts Options) (*core.AIImage, error) {
	opts = opts.normalize()
	prompt := fmt.Sprintf("%s, %s", img.Prompt, instructions)
	return p.generate(ctx, prompt, titleWords(prompt), opts)
}

func (p *Pipeline) generate(ctx context.Context, prompt, overlayTitle string, opts Options) (*core.AIImage, error) {
	url, stage, err := p.chain.Run(ctx, prompt, overlayTitle, opts)
	if err != nil {
		// Only reachable if the chain was built without a local stage.
		return nil, err
	}

	return &core.AIImage{
		ID:        uuid.NewString(),
		URL:       url,
		Prompt:    prompt,
		Style:     string(opts.Style),
		Provider:  stage,
		CreatedAt: time.Now().UTC(),
	}, nil
}

// titleWords returns the leading 2-3 words of text for overlay rendering.
func titleWords(text string) string {
	words := strings.Fields(text)
	if len(words) > 3 {
		words = words[:3]
	}
	return strings.Join(words, " ")
}
