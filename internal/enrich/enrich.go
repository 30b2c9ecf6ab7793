// Package enrich normalizes raw source records into clean, length-bounded
// articles suitable for downstream prompting.
package enrich

import (
	"context"
	"log/slog"
	"strings"
	"unicode/utf8"

	"golang.org/x/sync/errgroup"

	"newsmith/internal/core"
	"newsmith/internal/extract"
	"newsmith/internal/logger"
)

const (
	// MaxTitleLen is the hard cap on enriched titles.
	MaxTitleLen = 200
	// MaxTextLen is the hard cap on enriched article text.
	MaxTextLen = 18000
	// MinWordCount is the minimum word count for a record to survive.
	MinWordCount = 80
	// thinContentThreshold triggers extractor backfill when inline content
	// is shorter than this and a URL is available.
	thinContentThreshold = 500
	// DefaultTitle replaces an empty title after enrichment.
	DefaultTitle = "Untitled"
)

// ContentExtractor backfills article text from a URL.
type ContentExtractor interface {
	Extract(ctx context.Context, url string) (*extract.Result, error)
}

// Enricher deduplicates, backfills, and bounds raw article batches.
type Enricher struct {
	extractor      ContentExtractor
	maxConcurrency int
	log            *slog.Logger
}

// NewEnricher creates an Enricher. maxConcurrency bounds parallel
// extraction fetches; values below 1 mean sequential.
func NewEnricher(extractor ContentExtractor, maxConcurrency int) *Enricher {
	if maxConcurrency < 1 {
		maxConcurrency = 1
	}
	return &Enricher{
		extractor:      extractor,
		maxConcurrency: maxConcurrency,
		log:            logger.Get(),
	}
}

// Enrich turns a batch of raw records into enriched articles. Records are
// deduplicated by fragment-stripped URL (first occurrence wins), thin
// content is backfilled through the extractor, titles and text are capped,
// and records whose final text has fewer than MinWordCount words are
// dropped. Output order follows dedup-then-filter input order. Per-record
// extraction failures never fail the batch.
func (e *Enricher) Enrich(ctx context.Context, raw []core.RawSourceArticle) []core.EnrichedArticle {
	deduped := dedupeByURL(raw)

	type candidate struct {
		article core.EnrichedArticle
		keep    bool
	}
	candidates := make([]candidate, len(deduped))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.maxConcurrency)

	for i, rec := range deduped {
		g.Go(func() error {
			title := strings.TrimSpace(rec.Title)
			text := strings.TrimSpace(rec.Content)

			if len(text) < thinContentThreshold && rec.URL != "" {
				result, err := e.extractor.Extract(gctx, rec.URL)
				if err != nil {
					e.log.Debug("Content backfill failed, keeping inline content", "url", rec.URL, "error", err)
				} else {
					// Extracted text supersedes thin inline content; the
					// extracted title only fills a missing one.
					text = result.Text
					if title == "" {
						title = strings.TrimSpace(result.Title)
					}
				}
			}

			text = extract.NormalizeWhitespace(text)
			text = truncate(text, MaxTextLen)

			if len(strings.Fields(text)) < MinWordCount {
				return nil
			}

			title = truncate(title, MaxTitleLen)
			if title == "" {
				title = DefaultTitle
			}

			candidates[i] = candidate{
				article: core.EnrichedArticle{
					Title:  title,
					Text:   text,
					URL:    stripFragment(rec.URL),
					Source: rec.Source,
				},
				keep: true,
			}
			return nil
		})
	}
	_ = g.Wait() // workers never return errors; the group only bounds concurrency

	enriched := make([]core.EnrichedArticle, 0, len(deduped))
	for _, c := range candidates {
		if c.keep {
			enriched = append(enriched, c.article)
		}
	}

	e.log.Debug("Enriched article batch", "input", len(raw), "deduped", len(deduped), "output", len(enriched))
	return enriched
}

// dedupeByURL keeps the first record per fragment-stripped URL. Records
// without a URL are never deduplicated against each other.
func dedupeByURL(raw []core.RawSourceArticle) []core.RawSourceArticle {
	seen := make(map[string]bool, len(raw))
	out := make([]core.RawSourceArticle, 0, len(raw))
	for _, rec := range raw {
		key := stripFragment(rec.URL)
		if key != "" {
			if seen[key] {
				continue
			}
			seen[key] = true
		}
		out = append(out, rec)
	}
	return out
}

// truncate caps s at max bytes without splitting a multi-byte rune: the
// cut point walks back to the nearest rune start.
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	cut := max
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}

// stripFragment removes any #fragment suffix from a URL.
func stripFragment(url string) string {
	if i := strings.Index(url, "#"); i >= 0 {
		return url[:i]
	}
	return url
}
