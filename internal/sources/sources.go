// Package sources pulls article batches from external news feeds. It is the
// upstream of the enricher: feed items come back as raw records with whatever
// metadata the feed carried.
package sources

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"

	"newsmith/internal/core"
	"newsmith/internal/logger"
)

// Aggregator fetches and parses RSS/Atom feeds.
type Aggregator struct {
	parser   *gofeed.Parser
	maxItems int
}

// NewAggregator creates an Aggregator with the given HTTP user agent.
func NewAggregator(userAgent string) *Aggregator {
	parser := gofeed.NewParser()
	if userAgent != "" {
		parser.UserAgent = userAgent
	}
	return &Aggregator{parser: parser}
}

// WithMaxItems caps how many items FetchFeed keeps per feed. Zero or
// negative means unlimited.
func (a *Aggregator) WithMaxItems(n int) *Aggregator {
	a.maxItems = n
	return a
}

// FetchFeed retrieves one feed and converts its items to raw source records.
// A feed that cannot be fetched or parsed is an error; individual items
// missing both a link and a description are skipped.
func (a *Aggregator) FetchFeed(ctx context.Context, feedURL string) ([]core.RawSourceArticle, error) {
	parsed, err := a.parser.ParseURLWithContext(feedURL, ctx)
	if err != nil {
		return nil, fmt.Errorf("fetching feed %s: %w", feedURL, err)
	}

	label := strings.TrimSpace(parsed.Title)
	articles := make([]core.RawSourceArticle, 0, len(parsed.Items))
	for _, item := range parsed.Items {
		if a.maxItems > 0 && len(articles) >= a.maxItems {
			break
		}
		if item.Link == "" && item.Description == "" {
			continue
		}
		articles = append(articles, core.RawSourceArticle{
			ID:          item.GUID,
			Title:       item.Title,
			Content:     item.Description,
			Source:      label,
			URL:         item.Link,
			PublishedAt: publishedTime(item),
			Author:      authorName(item),
		})
	}

	logger.Info("Fetched feed", "url", feedURL, "items", len(articles))
	return articles, nil
}

// FetchAll fetches every feed in order. Feeds that fail are logged and
// skipped so one dead feed does not starve the batch.
func (a *Aggregator) FetchAll(ctx context.Context, feedURLs []string) []core.RawSourceArticle {
	var all []core.RawSourceArticle
	for _, url := range feedURLs {
		articles, err := a.FetchFeed(ctx, url)
		if err != nil {
			logger.Warn("Skipping feed", "url", url, "error", err)
			continue
		}
		all = append(all, articles...)
	}
	return all
}

func publishedTime(item *gofeed.Item) time.Time {
	if item.PublishedParsed != nil {
		return *item.PublishedParsed
	}
	if item.UpdatedParsed != nil {
		return *item.UpdatedParsed
	}
	return time.Time{}
}

func authorName(item *gofeed.Item) string {
	if len(item.Authors) > 0 && item.Authors[0] != nil {
		return item.Authors[0].Name
	}
	return ""
}
