// Package prompts builds LLM prompts for article synthesis, editing, title
// generation, and quality analysis. All functions are pure.
package prompts

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"newsmith/internal/core"
)

const (
	// maxSourceChars bounds each serialized source block so large batches
	// cannot blow up total prompt size.
	maxSourceChars = 2500
	// maxToneLen bounds caller-supplied tone strings.
	maxToneLen = 100

	// DefaultStyle is used when the requested style is unknown or missing.
	DefaultStyle = core.StyleJournalistic
	// DefaultTone is used when no tone is supplied.
	DefaultTone = "neutral"
	// DefaultLength is used when the requested length is unknown or missing.
	DefaultLength = core.LengthMedium
)

// styleInstructions maps each writing style to its instruction fragment.
var styleInstructions = map[core.ArticleStyle]string{
	core.StyleAcademic:     "Write in a formal academic style with precise terminology, measured claims, and clear argumentative structure.",
	core.StyleJournalistic: "Write in a journalistic style: lead with the most newsworthy information, attribute claims, keep paragraphs short.",
	core.StyleBlog:         "Write in a conversational blog style with a personal voice, direct address to the reader, and approachable language.",
	core.StyleTechnical:    "Write in a technical style with exact details, concrete examples, and terminology appropriate for practitioners.",
	core.StyleCreative:     "Write in a creative narrative style with vivid imagery and varied sentence rhythm while staying factual.",
	core.StyleBusiness:     "Write in a professional business style focused on implications, stakeholders, and actionable takeaways.",
	core.StyleOpinion:      "Write as a clearly argued opinion piece with a definite point of view supported by the source material.",
}

// WordBand is a target word-count range for generated articles.
type WordBand struct {
	Min int
	Max int
}

// lengthBands maps each length setting to its target word-count band.
var lengthBands = map[core.ArticleLength]WordBand{
	core.LengthShort:  {Min: 300, Max: 500},
	core.LengthMedium: {Min: 600, Max: 1000},
	core.LengthLong:   {Min: 1200, Max: 2000},
}

// BandFor returns the word band for a length, falling back to the default.
func BandFor(length core.ArticleLength) WordBand {
	if band, ok := lengthBands[length]; ok {
		return band
	}
	return lengthBands[DefaultLength]
}

// MaxTokensFor converts a length band into a generation token budget.
// Roughly 1.5 tokens per word, with headroom for the title.
func MaxTokensFor(length core.ArticleLength) int32 {
	band := BandFor(length)
	return int32(band.Max*3/2 + 256)
}

// negativeConstraints are embedded in every generation prompt.
const negativeConstraints = `STRICT RULES:
- Do NOT quote the source text verbatim; rewrite everything in original language.
- Do NOT refer to the output itself: never write "this article", "in this piece", or similar self-references.
- Do NOT restate the topic or title as the subject of a sentence (no "X reveals...", "X explores...").
- Do NOT mention the sources or that the text was synthesized.`

// BuildSynthesisPrompt creates the prompt for synthesizing a new article
// from enriched sources.
func BuildSynthesisPrompt(req core.SynthesisRequest) string {
	style := normalizeStyle(req.Style)
	tone := normalizeTone(req.Tone)
	band := BandFor(req.Length)

	var prompt strings.Builder

	prompt.WriteString(fmt.Sprintf("Write an original news article about: %s\n\n", req.Topic))
	prompt.WriteString(styleInstructions[style])
	prompt.WriteString(fmt.Sprintf("\nUse a %s tone throughout.\n", tone))
	prompt.WriteString(fmt.Sprintf("Target length: %d-%d words.\n\n", band.Min, band.Max))

	prompt.WriteString("SOURCE MATERIAL:\n")
	prompt.WriteString(SerializeSources(req.Sources))
	prompt.WriteString("\n")

	prompt.WriteString(negativeConstraints)
	prompt.WriteString("\n\n")

	if req.Custom != "" {
		prompt.WriteString(fmt.Sprintf("ADDITIONAL INSTRUCTIONS:\n%s\n\n", req.Custom))
	}

	prompt.WriteString("OUTPUT FORMAT:\n")
	prompt.WriteString("First line: the article headline (no markdown, no quotes).\n")
	prompt.WriteString("Then a blank line, then the full article body.")

	return prompt.String()
}

// BuildEditPrompt creates the prompt for revising an existing article.
func BuildEditPrompt(content, instruction string) string {
	var prompt strings.Builder

	prompt.WriteString("Revise the following article according to the instruction.\n\n")
	prompt.WriteString(fmt.Sprintf("INSTRUCTION: %s\n\n", instruction))
	prompt.WriteString("ARTICLE:\n")
	prompt.WriteString(truncateContent(content, 15000))
	prompt.WriteString("\n\n")
	prompt.WriteString(negativeConstraints)
	prompt.WriteString("\n\nReturn only the revised article text, nothing else.")

	return prompt.String()
}

// BuildTitlesPrompt creates the prompt for generating n candidate headlines.
func BuildTitlesPrompt(topic, content string, n int) string {
	var prompt strings.Builder

	prompt.WriteString(fmt.Sprintf("Generate exactly %d distinct headlines for an article about: %s\n\n", n, topic))
	if content != "" {
		prompt.WriteString("ARTICLE CONTENT:\n")
		prompt.WriteString(truncateContent(content, 3000))
		prompt.WriteString("\n\n")
	}
	prompt.WriteString("Requirements:\n")
	prompt.WriteString("- One headline per line, no numbering, no bullets, no quotes\n")
	prompt.WriteString("- 5-12 words each, clear and professional\n")
	prompt.WriteString("- No clickbait, no sensational phrasing\n")
	prompt.WriteString(fmt.Sprintf("\nReturn exactly %d lines.", n))

	return prompt.String()
}

// BuildQualityPrompt creates the prompt for structured quality analysis.
func BuildQualityPrompt(content string) string {
	var prompt strings.Builder

	prompt.WriteString("Analyze the quality of this article and respond with a strict JSON object.\n\n")
	prompt.WriteString("ARTICLE:\n")
	prompt.WriteString(truncateContent(content, 10000))
	prompt.WriteString("\n\n")
	prompt.WriteString("Respond with ONLY this JSON shape, no markdown fences, no commentary:\n")
	prompt.WriteString(`{"score": <0-100>, "strengths": ["...", "...", "..."], "improvements": ["...", "...", "..."], "suggestions": ["...", "...", "..."]}`)

	return prompt.String()
}

// SerializeSources renders sources as an enumerated, labeled block with
// per-source truncation.
func SerializeSources(sources []core.EnrichedArticle) string {
	var b strings.Builder
	for i, src := range sources {
		origin := src.Source
		if origin == "" {
			origin = "unknown"
		}
		b.WriteString(fmt.Sprintf("Source %d (%s): %s\n", i+1, origin, src.Title))
		b.WriteString(truncateContent(src.Text, maxSourceChars))
		if src.URL != "" {
			b.WriteString(fmt.Sprintf("\nURL: %s", src.URL))
		}
		b.WriteString("\n\n")
	}
	return b.String()
}

func normalizeStyle(style core.ArticleStyle) core.ArticleStyle {
	if _, ok := styleInstructions[style]; ok {
		return style
	}
	return DefaultStyle
}

func normalizeTone(tone string) string {
	tone = strings.TrimSpace(tone)
	if tone == "" {
		return DefaultTone
	}
	return trimToRuneBoundary(tone, maxToneLen)
}

// truncateContent limits content to maxChars, appending an ellipsis marker.
func truncateContent(content string, maxChars int) string {
	if len(content) <= maxChars {
		return content
	}
	return trimToRuneBoundary(content, maxChars) + "..."
}

// trimToRuneBoundary caps s at max bytes, walking the cut point back so a
// multi-byte rune is never split.
func trimToRuneBoundary(s string, max int) string {
	if len(s) <= max {
		return s
	}
	cut := max
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}
