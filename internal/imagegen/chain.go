package imagegen

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"newsmith/internal/logger"
)

// ErrAllStagesFailed is returned only when a chain has no unconditional
// local stage. The standard pipeline never returns it.
var ErrAllStagesFailed = errors.New("all image generation stages failed")

// Strategy is one stage of the image fallback chain. It returns a URL
// (remote or data URI) for the generated image.
type Strategy interface {
	// Generate produces an image for the prompt. overlayTitle is the short
	// text local renderers draw onto the image; remote stages ignore it.
	Generate(ctx context.Context, prompt, overlayTitle string, opts Options) (string, error)

	// Name identifies the stage in logs and on the resulting image.
	Name() string
}

// Chain tries strategies strictly in order, advancing only when the
// current stage fails. This is deliberately a degrade path, not a race:
// each stage completes before the next begins.
type Chain struct {
	strategies   []Strategy
	stageTimeout time.Duration
	log          *slog.Logger
}

// NewChain creates a Chain. stageTimeout bounds each remote attempt so a
// stalled provider cannot block the whole chain.
func NewChain(strategies []Strategy, stageTimeout time.Duration) *Chain {
	if stageTimeout <= 0 {
		stageTimeout = 5 * time.Second
	}
	return &Chain{
		strategies:   strategies,
		stageTimeout: stageTimeout,
		log:          logger.Get(),
	}
}

// Run executes the chain and returns the image URL plus the name of the
// stage that produced it.
func (c *Chain) Run(ctx context.Context, prompt, overlayTitle string, opts Options) (string, string, error) {
	for _, strategy := range c.strategies {
		stageCtx, cancel := context.WithTimeout(ctx, c.stageTimeout)
		url, err := strategy.Generate(stageCtx, prompt, overlayTitle, opts)
		cancel()

		if err != nil {
			c.log.Warn("Image stage failed, degrading to next", "stage", strategy.Name(), "error", err)
			continue
		}

		c.log.Info("Image generated", "stage", strategy.Name())
		return url, strategy.Name(), nil
	}

	return "", "", ErrAllStagesFailed
}
