package core

import "time"

// RawSourceArticle is a source record before enrichment. Any field may be
// absent, but a record needs at least one of Content or URL to be usable.
type RawSourceArticle struct {
	ID          string    `json:"id,omitempty"`           // Optional upstream identifier
	Title       string    `json:"title,omitempty"`        // Headline as reported by the source
	Content     string    `json:"content,omitempty"`      // Inline text, possibly partial
	Source      string    `json:"source,omitempty"`       // Source label (e.g., feed title)
	URL         string    `json:"url,omitempty"`          // Link to the original article
	PublishedAt time.Time `json:"published_at,omitempty"` // Publication timestamp, if known
	Author      string    `json:"author,omitempty"`       // Byline, if known
}

// EnrichedArticle is the output of enrichment: cleaned, length-bounded text
// ready for prompting. Title is never empty ("Untitled" when missing) and
// capped at 200 chars; Text is whitespace-normalized and capped at 18000.
type EnrichedArticle struct {
	Title  string `json:"title"`            // Non-empty, <=200 chars
	Text   string `json:"text"`             // Cleaned full text, <=18000 chars, >=80 words
	URL    string `json:"url,omitempty"`    // Canonical URL, fragment stripped
	Source string `json:"source,omitempty"` // Source label carried through
}

// ArticleStyle enumerates the supported writing styles.
type ArticleStyle string

const (
	StyleAcademic     ArticleStyle = "academic"
	StyleJournalistic ArticleStyle = "journalistic"
	StyleBlog         ArticleStyle = "blog"
	StyleTechnical    ArticleStyle = "technical"
	StyleCreative     ArticleStyle = "creative"
	StyleBusiness     ArticleStyle = "business"
	StyleOpinion      ArticleStyle = "opinion"
)

// ArticleLength enumerates target length bands.
type ArticleLength string

const (
	LengthShort  ArticleLength = "short"  // 300-500 words
	LengthMedium ArticleLength = "medium" // 600-1000 words
	LengthLong   ArticleLength = "long"   // 1200-2000+ words
)

// SynthesisRequest describes one article-synthesis call.
type SynthesisRequest struct {
	Topic   string            `json:"topic"`            // Non-empty subject of the article
	Style   ArticleStyle      `json:"style,omitempty"`  // Defaults to journalistic
	Tone    string            `json:"tone,omitempty"`   // Free-form, defaults to neutral
	Length  ArticleLength     `json:"length,omitempty"` // Defaults to medium
	Sources []EnrichedArticle `json:"sources"`          // 1-20 enriched sources
	Custom  string            `json:"custom,omitempty"` // Extra caller instructions
}

// SynthesizedArticle is a generated article.
type SynthesizedArticle struct {
	ID        string       `json:"id"`         // Unique identifier
	Title     string       `json:"title"`      // Generated headline
	Content   string       `json:"content"`    // Full article body
	Summary   string       `json:"summary"`    // Leading excerpt of the body
	WordCount int          `json:"word_count"` // Whitespace-separated token count of Content
	Style     ArticleStyle `json:"style"`      // Style the article was written in
	ModelUsed string       `json:"model_used"` // Provider model that produced it
	CreatedAt time.Time    `json:"created_at"` // Generation timestamp
}

// Sentiment is the discrete sentiment classification of analyzed content.
type Sentiment string

const (
	SentimentPositive Sentiment = "positive"
	SentimentNeutral  Sentiment = "neutral"
	SentimentNegative Sentiment = "negative"
)

// Complexity is the discrete complexity classification of analyzed content.
type Complexity string

const (
	ComplexitySimple   Complexity = "simple"
	ComplexityModerate Complexity = "moderate"
	ComplexityComplex  Complexity = "complex"
)

// ContentAnalysis holds heuristic signals derived from article text to
// steer image-prompt construction. Recomputed per request, never persisted.
type ContentAnalysis struct {
	Topics         []string   `json:"topics"`          // Top keywords by frequency, at most 5
	Sentiment      Sentiment  `json:"sentiment"`       // Keyword-count heuristic
	Complexity     Complexity `json:"complexity"`      // Sentence-length / long-word heuristic
	Industry       string     `json:"industry"`        // Best-scoring industry, "general" if none
	VisualElements []string   `json:"visual_elements"` // Suggested imagery
	ColorPalette   []string   `json:"color_palette"`   // Suggested colors
	Themes         []string   `json:"themes"`          // Conceptual themes
}

// AIImage is a generated image owned by the calling article session.
// URL may be a remote location or an embedded data URI.
type AIImage struct {
	ID        string    `json:"id"`         // Unique identifier
	URL       string    `json:"url"`        // Remote URL or data URI, never empty
	Prompt    string    `json:"prompt"`     // Prompt text the image was generated from
	Style     string    `json:"style"`      // Style tag the caller requested
	Provider  string    `json:"provider"`   // Chain stage that produced the image
	CreatedAt time.Time `json:"created_at"` // Generation timestamp
	Editing   bool      `json:"editing"`    // Editing-in-progress flag for the gallery
}

// QualityReport is the structured result of article quality analysis.
type QualityReport struct {
	Score        int      `json:"score"`        // 0-100 overall quality score
	Strengths    []string `json:"strengths"`    // What the article does well
	Improvements []string `json:"improvements"` // What should change
	Suggestions  []string `json:"suggestions"`  // Concrete follow-up actions
}
