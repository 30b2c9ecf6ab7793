package sources

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

const sampleRSS = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
<channel>
  <title>Tech Daily</title>
  <link>https://technews.example.com</link>
  <item>
    <title>Chips Get Smaller</title>
    <link>https://technews.example.com/chips</link>
    <description>Fabrication processes keep shrinking.</description>
    <guid>chips-1</guid>
    <pubDate>Mon, 24 Aug 2026 10:00:00 GMT</pubDate>
    <author>jane@example.com (Jane Reporter)</author>
  </item>
  <item>
    <title>Empty Item</title>
  </item>
  <item>
    <title>Batteries Improve</title>
    <link>https://technews.example.com/batteries</link>
    <description>Energy density up again this year.</description>
  </item>
</channel>
</rss>`

func TestFetchFeed(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/rss+xml")
		w.Write([]byte(sampleRSS))
	}))
	defer server.Close()

	agg := NewAggregator("newsmith-test/1.0")
	articles, err := agg.FetchFeed(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("FetchFeed failed: %v", err)
	}

	if len(articles) != 2 {
		t.Fatalf("Expected 2 usable items (the empty one skipped), got %d", len(articles))
	}

	first := articles[0]
	if first.Title != "Chips Get Smaller" {
		t.Errorf("Unexpected title: %q", first.Title)
	}
	if first.URL != "https://technews.example.com/chips" {
		t.Errorf("Unexpected URL: %q", first.URL)
	}
	if first.Content != "Fabrication processes keep shrinking." {
		t.Errorf("Description should become content, got %q", first.Content)
	}
	if first.Source != "Tech Daily" {
		t.Errorf("Feed title should become the source label, got %q", first.Source)
	}
	if first.PublishedAt.IsZero() {
		t.Error("pubDate should be parsed")
	}
	if first.Author != "Jane Reporter" {
		t.Errorf("Author should be parsed, got %q", first.Author)
	}

	if !articles[1].PublishedAt.IsZero() {
		t.Error("Item without pubDate should have a zero timestamp")
	}
}

func TestFetchFeed_MaxItems(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(sampleRSS))
	}))
	defer server.Close()

	agg := NewAggregator("").WithMaxItems(1)
	articles, err := agg.FetchFeed(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("FetchFeed failed: %v", err)
	}
	if len(articles) != 1 {
		t.Errorf("Expected the per-feed cap to apply, got %d items", len(articles))
	}
}

func TestFetchFeed_UpstreamFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusInternalServerError)
	}))
	defer server.Close()

	agg := NewAggregator("")
	if _, err := agg.FetchFeed(context.Background(), server.URL); err == nil {
		t.Fatal("Expected an error for a failing feed")
	}
}

func TestFetchAll_SkipsDeadFeeds(t *testing.T) {
	good := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(sampleRSS))
	}))
	defer good.Close()

	dead := httptest.NewServer(nil)
	dead.Close()

	agg := NewAggregator("")
	articles := agg.FetchAll(context.Background(), []string{dead.URL, good.URL})
	if len(articles) != 2 {
		t.Errorf("Dead feed should be skipped, good feed kept; got %d articles", len(articles))
	}
}
