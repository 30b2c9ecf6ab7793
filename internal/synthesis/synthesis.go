// Package synthesis orchestrates article generation against an injected
// text provider.
package synthesis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"newsmith/internal/core"
	"newsmith/internal/llm"
	"newsmith/internal/logger"
	"newsmith/internal/prompts"
)

// ErrSynthesisFailed is the generic failure surfaced for any provider
// error. The underlying cause is logged, not leaked.
var ErrSynthesisFailed = errors.New("article synthesis failed")

const (
	systemInstruction = "You are a professional news writer producing original, well-structured articles."
	summaryLen        = 240
)

// Orchestrator runs synthesis operations against one text provider. It is
// provider-agnostic; the caller picks the backend at construction.
type Orchestrator struct {
	provider    llm.Provider
	temperature float32
	log         *slog.Logger
}

// NewOrchestrator creates an Orchestrator bound to the given provider.
func NewOrchestrator(provider llm.Provider, temperature float32) *Orchestrator {
	if temperature <= 0 {
		temperature = 0.7
	}
	return &Orchestrator{
		provider:    provider,
		temperature: temperature,
		log:         logger.Get(),
	}
}

// Synthesize generates an original article from the request's enriched
// sources. Provider failures come back as ErrSynthesisFailed; no retries
// happen at this layer.
func (o *Orchestrator) Synthesize(ctx context.Context, req core.SynthesisRequest) (*core.SynthesizedArticle, error) {
	prompt := prompts.BuildSynthesisPrompt(req)

	raw, err := o.provider.Generate(ctx, llm.GenerateRequest{
		System:      systemInstruction,
		Prompt:      prompt,
		Temperature: o.temperature,
		MaxTokens:   prompts.MaxTokensFor(req.Length),
	})
	if err != nil {
		o.log.Error("Synthesis provider call failed", "provider", o.provider.Name(), "error", err)
		return nil, ErrSynthesisFailed
	}

	title, body := splitTitleAndBody(raw)

	style := req.Style
	if style == "" {
		style = prompts.DefaultStyle
	}

	article := &core.SynthesizedArticle{
		ID:        uuid.NewString(),
		Title:     title,
		Content:   body,
		Summary:   leadingExcerpt(body),
		WordCount: len(strings.Fields(body)),
		Style:     style,
		ModelUsed: o.provider.Name(),
		CreatedAt: time.Now().UTC(),
	}

	o.log.Info("Synthesized article", "id", article.ID, "words", article.WordCount, "style", article.Style)
	return article, nil
}

// EditArticle revises existing content according to an instruction and
// returns the revised text.
func (o *Orchestrator) EditArticle(ctx context.Context, content, instruction string) (string, error) {
	prompt := prompts.BuildEditPrompt(content, instruction)

	revised, err := o.provider.Generate(ctx, llm.GenerateRequest{
		System:      systemInstruction,
		Prompt:      prompt,
		Temperature: o.temperature,
		MaxTokens:   prompts.MaxTokensFor(core.LengthLong),
	})
	if err != nil {
		o.log.Error("Edit provider call failed", "provider", o.provider.Name(), "error", err)
		return "", ErrSynthesisFailed
	}

	return strings.TrimSpace(revised), nil
}

// GenerateTitles requests n candidate headlines and parses them one per
// line, discarding blanks and truncating to n, order preserved.
func (o *Orchestrator) GenerateTitles(ctx context.Context, topic, content string, n int) ([]string, error) {
	if n <= 0 {
		n = 5
	}

	raw, err := o.provider.Generate(ctx, llm.GenerateRequest{
		System:      systemInstruction,
		Prompt:      prompts.BuildTitlesPrompt(topic, content, n),
		Temperature: o.temperature,
		MaxTokens:   1024,
	})
	if err != nil {
		o.log.Error("Title generation provider call failed", "provider", o.provider.Name(), "error", err)
		return nil, ErrSynthesisFailed
	}

	var titles []string
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		titles = append(titles, line)
		if len(titles) == n {
			break
		}
	}

	return titles, nil
}

// AnalyzeQuality asks the provider for a strict JSON quality report. A
// malformed response degrades to a fixed neutral default instead of an
// error, because LLM output is not guaranteed well-formed JSON and the
// caller expects best-effort feedback.
func (o *Orchestrator) AnalyzeQuality(ctx context.Context, content string) (*core.QualityReport, error) {
	raw, err := o.provider.Generate(ctx, llm.GenerateRequest{
		System:      systemInstruction,
		Prompt:      prompts.BuildQualityPrompt(content),
		Temperature: 0.2,
		MaxTokens:   1024,
	})
	if err != nil {
		o.log.Error("Quality analysis provider call failed", "provider", o.provider.Name(), "error", err)
		return nil, ErrSynthesisFailed
	}

	// Score decodes through a pointer so an explicit zero score is kept
	// while an absent field still degrades to the default.
	var payload struct {
		Score        *int     `json:"score"`
		Strengths    []string `json:"strengths"`
		Improvements []string `json:"improvements"`
		Suggestions  []string `json:"suggestions"`
	}
	if err := json.Unmarshal([]byte(extractJSONObject(raw)), &payload); err != nil || payload.Score == nil {
		o.log.Warn("Quality analysis response was not valid JSON, using neutral default", "provider", o.provider.Name())
		return DefaultQualityReport(), nil
	}

	return &core.QualityReport{
		Score:        *payload.Score,
		Strengths:    payload.Strengths,
		Improvements: payload.Improvements,
		Suggestions:  payload.Suggestions,
	}, nil
}

// DefaultQualityReport is the neutral fallback for unparseable quality
// analysis responses.
func DefaultQualityReport() *core.QualityReport {
	return &core.QualityReport{
		Score: 75,
		Strengths: []string{
			"Content is generated and readable",
			"Structure follows a clear article format",
			"Topic coverage appears complete",
		},
		Improvements: []string{
			"Automated quality scoring was unavailable",
			"Manual review is recommended",
			"Consider re-running the analysis",
		},
		Suggestions: []string{
			"Verify factual claims against the sources",
			"Check the headline matches the body",
			"Read the article aloud for flow",
		},
	}
}

// splitTitleAndBody separates the first non-empty line (the headline) from
// the remaining article body.
func splitTitleAndBody(raw string) (string, string) {
	raw = strings.TrimSpace(raw)
	idx := strings.Index(raw, "\n")
	if idx < 0 {
		return strings.TrimSpace(raw), raw
	}

	title := strings.TrimSpace(raw[:idx])
	title = strings.Trim(title, "#*\" ")
	body := strings.TrimSpace(raw[idx+1:])
	if body == "" {
		body = raw
	}
	return title, body
}

// leadingExcerpt returns the first summaryLen characters of body, cut at a
// word boundary.
func leadingExcerpt(body string) string {
	if len(body) <= summaryLen {
		return body
	}
	cut := body[:summaryLen]
	if idx := strings.LastIndex(cut, " "); idx > 0 {
		cut = cut[:idx]
	}
	return fmt.Sprintf("%s...", cut)
}

// extractJSONObject isolates the outermost JSON object in a response that
// may be wrapped in markdown fences or prose.
func extractJSONObject(raw string) string {
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start < 0 || end <= start {
		return raw
	}
	return raw[start : end+1]
}
