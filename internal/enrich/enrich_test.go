package enrich

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"unicode/utf8"

	"newsmith/internal/core"
	"newsmith/internal/extract"
)

// fakeExtractor serves canned results keyed by URL and records calls.
type fakeExtractor struct {
	mu      sync.Mutex
	results map[string]*extract.Result
	calls   []string
}

func (f *fakeExtractor) Extract(_ context.Context, url string) (*extract.Result, error) {
	f.mu.Lock()
	f.calls = append(f.calls, url)
	f.mu.Unlock()
	if result, ok := f.results[url]; ok {
		return result, nil
	}
	return nil, errors.New("extraction failed")
}

func longText(words int) string {
	parts := make([]string, words)
	for i := range parts {
		parts[i] = fmt.Sprintf("word%d", i)
	}
	return strings.Join(parts, " ")
}

func TestEnrich_DeduplicatesByURLIgnoringFragment(t *testing.T) {
	enricher := NewEnricher(&fakeExtractor{}, 2)
	raw := []core.RawSourceArticle{
		{Title: "First", Content: longText(100), URL: "https://example.com/a"},
		{Title: "Duplicate", Content: longText(100), URL: "https://example.com/a#section"},
		{Title: "Second", Content: longText(100), URL: "https://example.com/b"},
	}

	got := enricher.Enrich(context.Background(), raw)
	if len(got) != 2 {
		t.Fatalf("Expected 2 articles after dedup, got %d", len(got))
	}
	if got[0].Title != "First" {
		t.Errorf("First occurrence should win, got %q", got[0].Title)
	}
	if got[1].Title != "Second" {
		t.Errorf("Output order should match input order, got %q", got[1].Title)
	}
	if got[0].URL != "https://example.com/a" {
		t.Errorf("URL should have fragment stripped, got %q", got[0].URL)
	}
}

func TestEnrich_RecordsWithoutURLNeverDeduplicated(t *testing.T) {
	enricher := NewEnricher(&fakeExtractor{}, 2)
	raw := []core.RawSourceArticle{
		{Title: "One", Content: longText(100)},
		{Title: "Two", Content: longText(100)},
	}

	got := enricher.Enrich(context.Background(), raw)
	if len(got) != 2 {
		t.Fatalf("Expected both URL-less records to survive, got %d", len(got))
	}
}

func TestEnrich_BackfillsThinContent(t *testing.T) {
	fake := &fakeExtractor{results: map[string]*extract.Result{
		"https://example.com/full": {Title: "Extracted Title", Text: longText(150)},
	}}
	enricher := NewEnricher(fake, 2)

	raw := []core.RawSourceArticle{
		{Title: "", Content: "too thin", URL: "https://example.com/full"},
	}
	got := enricher.Enrich(context.Background(), raw)
	if len(got) != 1 {
		t.Fatalf("Expected 1 enriched article, got %d", len(got))
	}
	if got[0].Title != "Extracted Title" {
		t.Errorf("Extracted title should fill empty title, got %q", got[0].Title)
	}
	if !strings.HasPrefix(got[0].Text, "word0 word1") {
		t.Errorf("Extracted text should replace thin content, got %q", got[0].Text[:40])
	}
}

func TestEnrich_ExtractedTextSupersedesButTitleDoesNot(t *testing.T) {
	fake := &fakeExtractor{results: map[string]*extract.Result{
		"https://example.com/a": {Title: "Extracted Title", Text: longText(150)},
	}}
	enricher := NewEnricher(fake, 1)

	raw := []core.RawSourceArticle{
		{Title: "Original Title", Content: "thin inline content", URL: "https://example.com/a"},
	}
	got := enricher.Enrich(context.Background(), raw)
	if len(got) != 1 {
		t.Fatalf("Expected 1 article, got %d", len(got))
	}
	if got[0].Title != "Original Title" {
		t.Errorf("Original title should be preferred, got %q", got[0].Title)
	}
	if strings.Contains(got[0].Text, "thin inline") {
		t.Error("Extracted text should supersede thin inline content")
	}
}

func TestEnrich_SkipsBackfillForSubstantialContent(t *testing.T) {
	fake := &fakeExtractor{results: map[string]*extract.Result{}}
	enricher := NewEnricher(fake, 1)

	content := longText(120) // well over the 500-char threshold
	raw := []core.RawSourceArticle{
		{Title: "Has Content", Content: content, URL: "https://example.com/a"},
	}
	got := enricher.Enrich(context.Background(), raw)
	if len(got) != 1 {
		t.Fatalf("Expected 1 article, got %d", len(got))
	}
	if len(fake.calls) != 0 {
		t.Errorf("Extractor should not be called for substantial content, got %d calls", len(fake.calls))
	}
}

func TestEnrich_DropsShortRecords(t *testing.T) {
	enricher := NewEnricher(&fakeExtractor{}, 1)
	raw := []core.RawSourceArticle{
		{Title: "Too Short", Content: longText(79)},
		{Title: "Long Enough", Content: longText(80)},
		{Title: "Empty", Content: ""},
	}

	got := enricher.Enrich(context.Background(), raw)
	if len(got) != 1 {
		t.Fatalf("Expected only the 80-word record to survive, got %d", len(got))
	}
	if got[0].Title != "Long Enough" {
		t.Errorf("Wrong record survived: %q", got[0].Title)
	}
}

func TestEnrich_ExtractionFailureIsSilentPerRecord(t *testing.T) {
	enricher := NewEnricher(&fakeExtractor{}, 2)
	raw := []core.RawSourceArticle{
		{Title: "Bad URL", Content: "thin", URL: "https://broken.example.com/x"},
		{Title: "Good", Content: longText(100), URL: "https://example.com/ok"},
	}

	got := enricher.Enrich(context.Background(), raw)
	if len(got) != 1 {
		t.Fatalf("Batch should survive one bad URL, got %d articles", len(got))
	}
	if got[0].Title != "Good" {
		t.Errorf("Expected surviving record 'Good', got %q", got[0].Title)
	}
}

func TestEnrich_AppliesCaps(t *testing.T) {
	enricher := NewEnricher(&fakeExtractor{}, 1)
	raw := []core.RawSourceArticle{
		{Title: strings.Repeat("t", 300), Content: longText(5000)},
	}

	got := enricher.Enrich(context.Background(), raw)
	if len(got) != 1 {
		t.Fatalf("Expected 1 article, got %d", len(got))
	}
	if len(got[0].Title) != MaxTitleLen {
		t.Errorf("Title should be capped at %d chars, got %d", MaxTitleLen, len(got[0].Title))
	}
	if len(got[0].Text) > MaxTextLen {
		t.Errorf("Text should be capped at %d chars, got %d", MaxTextLen, len(got[0].Text))
	}
}

func TestEnrich_CapsPreserveRuneBoundaries(t *testing.T) {
	enricher := NewEnricher(&fakeExtractor{}, 1)
	raw := []core.RawSourceArticle{
		{Title: strings.Repeat("€", 100), Content: strings.Repeat("世界词语 ", 2000)},
	}

	got := enricher.Enrich(context.Background(), raw)
	if len(got) != 1 {
		t.Fatalf("Expected 1 article, got %d", len(got))
	}
	if len(got[0].Title) > MaxTitleLen || !utf8.ValidString(got[0].Title) {
		t.Errorf("Capped title must stay valid UTF-8 within %d bytes, got %d bytes valid=%v",
			MaxTitleLen, len(got[0].Title), utf8.ValidString(got[0].Title))
	}
	if len(got[0].Text) > MaxTextLen || !utf8.ValidString(got[0].Text) {
		t.Errorf("Capped text must stay valid UTF-8 within %d bytes, got %d bytes valid=%v",
			MaxTextLen, len(got[0].Text), utf8.ValidString(got[0].Text))
	}
}

func TestEnrich_DefaultsEmptyTitle(t *testing.T) {
	enricher := NewEnricher(&fakeExtractor{}, 1)
	raw := []core.RawSourceArticle{
		{Title: "   ", Content: longText(100)},
	}

	got := enricher.Enrich(context.Background(), raw)
	if len(got) != 1 {
		t.Fatalf("Expected 1 article, got %d", len(got))
	}
	if got[0].Title != DefaultTitle {
		t.Errorf("Expected default title %q, got %q", DefaultTitle, got[0].Title)
	}
}
