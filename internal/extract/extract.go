// Package extract fetches web pages and isolates readable article text.
package extract

import (
	"context"
	"fmt"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// Result is the readable content pulled out of a page.
type Result struct {
	Title string `json:"title"`
	Text  string `json:"text"`
}

// Extractor fetches URLs and strips boilerplate from the returned HTML.
type Extractor struct {
	httpClient *http.Client
	userAgent  string
}

// NewExtractor creates an Extractor with the given fetch timeout and
// identifying User-Agent.
func NewExtractor(timeout time.Duration, userAgent string) *Extractor {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	if userAgent == "" {
		userAgent = "Newsmith/1.0 (+https://newsmith.dev)"
	}
	return &Extractor{
		httpClient: &http.Client{Timeout: timeout},
		userAgent:  userAgent,
	}
}

// boilerplateSelectors are removed from the document before text extraction.
const boilerplateSelectors = "script, style, nav, footer, header, aside, form, iframe, noscript, .sidebar, #sidebar, .ad, .advertisement, .popup, .modal, .cookie-banner"

// mainContentSelectors are tried in order to locate the article body.
var mainContentSelectors = []string{
	"article", "main", ".main-content", ".entry-content", ".post-content", ".post-body", ".article-body",
	"[role='main']",
	".content", "#content",
}

var whitespaceRegex = regexp.MustCompile(`\s+`)

// Extract fetches url and returns its readable title and text. Any failure
// (network error, non-2xx status, parse error, empty text after cleaning)
// is returned as an error; callers are expected to treat errors as "no
// content" and move on.
func (e *Extractor) Extract(ctx context.Context, url string) (*Result, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request for %s: %w", url, err)
	}
	req.Header.Set("User-Agent", e.userAgent)
	req.Header.Set("Accept", "text/html")

	resp, err := e.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", url, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("failed to fetch %s: status code %d", url, resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML from %s: %w", url, err)
	}

	title := extractTitle(doc)

	doc.Find(boilerplateSelectors).Remove()

	var textBuilder strings.Builder
	for _, selector := range mainContentSelectors {
		doc.Find(selector).Each(func(_ int, s *goquery.Selection) {
			s.Find("p, h1, h2, h3, h4, h5, h6, li, blockquote, pre").Each(func(_ int, item *goquery.Selection) {
				textBuilder.WriteString(strings.TrimSpace(item.Text()))
				textBuilder.WriteString(" ")
			})
		})
		if textBuilder.Len() > 0 {
			break
		}
	}

	// No recognized content container: fall back to body-wide block elements.
	if textBuilder.Len() == 0 {
		doc.Find("body").Find("p, h1, h2, h3, h4, h5, h6, li, blockquote, pre").Each(func(_ int, item *goquery.Selection) {
			textBuilder.WriteString(strings.TrimSpace(item.Text()))
			textBuilder.WriteString(" ")
		})
	}

	text := NormalizeWhitespace(textBuilder.String())
	if text == "" {
		return nil, fmt.Errorf("no readable text extracted from %s", url)
	}

	return &Result{Title: title, Text: text}, nil
}

// extractTitle tries common title locations in preference order.
func extractTitle(doc *goquery.Document) string {
	if title := strings.TrimSpace(doc.Find("head title").First().Text()); title != "" {
		return title
	}
	if ogTitle, _ := doc.Find("meta[property='og:title']").Attr("content"); strings.TrimSpace(ogTitle) != "" {
		return strings.TrimSpace(ogTitle)
	}
	if h1 := strings.TrimSpace(doc.Find("h1").First().Text()); h1 != "" {
		return h1
	}
	return ""
}

// NormalizeWhitespace collapses whitespace runs to single spaces, strips
// non-breaking spaces, and trims the ends.
func NormalizeWhitespace(s string) string {
	s = strings.ReplaceAll(s, " ", " ")
	s = whitespaceRegex.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}
