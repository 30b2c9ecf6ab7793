// Package analysis derives heuristic topic, sentiment, complexity, and
// industry signals from article text to steer image-prompt construction.
package analysis

import (
	"regexp"
	"sort"
	"strings"

	"newsmith/internal/core"
)

const topKeywords = 5

// stopWords are excluded from topic extraction.
var stopWords = map[string]bool{
	"this": true, "that": true, "with": true, "from": true, "they": true,
	"have": true, "been": true, "were": true, "their": true, "which": true,
	"will": true, "would": true, "could": true, "should": true, "about": true,
	"there": true, "these": true, "those": true, "than": true, "then": true,
	"into": true, "over": true, "also": true, "more": true, "most": true,
	"other": true, "some": true, "such": true, "only": true, "very": true,
	"when": true, "where": true, "while": true, "after": true, "before": true,
	"because": true, "between": true, "through": true, "during": true,
	"said": true, "says": true, "being": true, "both": true, "each": true,
	"them": true, "what": true, "your": true, "it's": true, "does": true,
}

// positiveWords and negativeWords drive the sentiment heuristic.
var positiveWords = []string{
	"success", "growth", "improvement", "innovation", "breakthrough",
	"achievement", "progress", "advance", "benefit", "opportunity",
	"excellent", "positive", "gain", "boost", "win", "thriving",
	"promising", "record", "milestone", "upgrade",
}

var negativeWords = []string{
	"failure", "decline", "crisis", "problem", "risk", "threat",
	"loss", "concern", "damage", "collapse", "breach", "attack",
	"shortage", "deficit", "lawsuit", "scandal", "recession",
	"outage", "delay", "layoff",
}

// industryKeywords is the fixed taxonomy for industry classification.
// Matching is raw substring counting, not word-boundary-aware; the
// resulting overcount (e.g. "art" inside "startup") is accepted behavior.
var industryKeywords = map[string][]string{
	"technology":    {"software", "hardware", "computer", "digital", "internet", "tech", "app", "data", "cloud", "cyber"},
	"healthcare":    {"health", "medical", "hospital", "patient", "doctor", "treatment", "disease", "medicine", "clinical", "vaccine"},
	"business":      {"market", "company", "revenue", "profit", "investment", "finance", "economy", "trade", "startup", "stock"},
	"education":     {"school", "student", "university", "teacher", "learning", "education", "academic", "college", "curriculum", "classroom"},
	"environment":   {"climate", "environment", "sustainable", "renewable", "carbon", "pollution", "conservation", "wildlife", "emission", "ecology"},
	"sports":        {"game", "team", "player", "championship", "tournament", "athlete", "coach", "league", "season", "score"},
	"science":       {"research", "study", "scientist", "experiment", "discovery", "laboratory", "physics", "chemistry", "biology", "quantum"},
	"politics":      {"government", "policy", "election", "senator", "congress", "legislation", "vote", "campaign", "political", "minister"},
	"entertainment": {"movie", "music", "film", "celebrity", "actor", "concert", "album", "streaming", "television", "festival"},
}

// industryOrder fixes iteration order so score ties resolve deterministically.
var industryOrder = []string{
	"technology", "healthcare", "business", "education", "environment",
	"sports", "science", "politics", "entertainment",
}

// visualElements maps industries to suggested imagery.
var visualElements = map[string][]string{
	"technology":    {"circuit patterns", "glowing networks", "abstract data streams"},
	"healthcare":    {"medical symbols", "caring hands", "clean clinical spaces"},
	"business":      {"city skylines", "ascending graphs", "handshake silhouettes"},
	"education":     {"open books", "lightbulb motifs", "campus architecture"},
	"environment":   {"green landscapes", "wind turbines", "flowing water"},
	"sports":        {"dynamic motion", "stadium lights", "athletic silhouettes"},
	"science":       {"laboratory glassware", "molecular structures", "starfields"},
	"politics":      {"columned buildings", "podium scenes", "flag motifs"},
	"entertainment": {"stage lights", "film reels", "vibrant crowds"},
	"general":       {"abstract shapes", "soft gradients", "minimal geometry"},
}

// colorPalettes maps industries to suggested colors.
var colorPalettes = map[string][]string{
	"technology":    {"electric blue", "neon purple", "silver"},
	"healthcare":    {"calm teal", "soft white", "light green"},
	"business":      {"navy blue", "gold", "charcoal"},
	"education":     {"warm orange", "deep blue", "cream"},
	"environment":   {"forest green", "earth brown", "sky blue"},
	"sports":        {"bold red", "bright yellow", "black"},
	"science":       {"deep indigo", "cosmic violet", "white"},
	"politics":      {"patriotic blue", "crimson", "ivory"},
	"entertainment": {"magenta", "electric yellow", "deep purple"},
	"general":       {"slate blue", "warm gray", "off-white"},
}

// sentimentThemes maps sentiment to conceptual themes.
var sentimentThemes = map[core.Sentiment][]string{
	core.SentimentPositive: {"optimism", "momentum"},
	core.SentimentNeutral:  {"balance", "clarity"},
	core.SentimentNegative: {"tension", "urgency"},
}

var wordCharRegex = regexp.MustCompile(`[^a-z0-9']+`)
var sentenceSplitRegex = regexp.MustCompile(`[.!?]+`)

// Analyze computes a fresh ContentAnalysis for the given article text.
// Results are deterministic for identical input.
func Analyze(title, body string) core.ContentAnalysis {
	text := title + " " + body
	lower := strings.ToLower(text)

	sentiment := classifySentiment(lower)
	industry := classifyIndustry(lower)

	themes := append([]string{}, sentimentThemes[sentiment]...)
	// A handful of substring triggers add thematic elements.
	if strings.Contains(lower, "innovation") {
		themes = append(themes, "forward-looking imagery")
	}
	if strings.Contains(lower, "global") || strings.Contains(lower, "international") {
		themes = append(themes, "worldwide scale")
	}
	if strings.Contains(lower, "future") {
		themes = append(themes, "what comes next")
	}

	return core.ContentAnalysis{
		Topics:         ExtractTopics(lower, topKeywords),
		Sentiment:      sentiment,
		Complexity:     classifyComplexity(text),
		Industry:       industry,
		VisualElements: visualElements[industry],
		ColorPalette:   colorPalettes[industry],
		Themes:         themes,
	}
}

// ExtractTopics returns the top n tokens by frequency, ignoring short
// tokens and stop words. Ties break by first-encounter order.
func ExtractTopics(lowerText string, n int) []string {
	counts := make(map[string]int)
	var order []string

	for _, token := range strings.Fields(lowerText) {
		token = wordCharRegex.ReplaceAllString(token, "")
		if len(token) <= 3 || stopWords[token] {
			continue
		}
		if counts[token] == 0 {
			order = append(order, token)
		}
		counts[token]++
	}

	// Stable sort preserves encounter order among equal counts.
	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})

	if len(order) > n {
		order = order[:n]
	}
	return order
}

// classifySentiment counts positive and negative keyword occurrences;
// a difference of more than 1 tips the classification.
func classifySentiment(lowerText string) core.Sentiment {
	var positive, negative int
	for _, word := range positiveWords {
		positive += strings.Count(lowerText, word)
	}
	for _, word := range negativeWords {
		negative += strings.Count(lowerText, word)
	}

	switch {
	case positive-negative > 1:
		return core.SentimentPositive
	case negative-positive > 1:
		return core.SentimentNegative
	default:
		return core.SentimentNeutral
	}
}

// classifyComplexity uses average sentence length and the ratio of long
// words (>=8 chars) to total words.
func classifyComplexity(text string) core.Complexity {
	words := strings.Fields(text)
	if len(words) == 0 {
		return core.ComplexitySimple
	}

	var sentences int
	for _, s := range sentenceSplitRegex.Split(text, -1) {
		if strings.TrimSpace(s) != "" {
			sentences++
		}
	}
	if sentences == 0 {
		sentences = 1
	}

	avgSentenceLen := float64(len(words)) / float64(sentences)

	var longWords int
	for _, w := range words {
		if len(w) >= 8 {
			longWords++
		}
	}
	longWordRatio := float64(longWords) / float64(len(words))

	switch {
	case avgSentenceLen > 20 || longWordRatio > 0.2:
		return core.ComplexityComplex
	case avgSentenceLen > 15 || longWordRatio > 0.1:
		return core.ComplexityModerate
	default:
		return core.ComplexitySimple
	}
}

// classifyIndustry scores each industry by raw substring occurrence counts
// and returns the highest scorer, or "general" when nothing matches.
func classifyIndustry(lowerText string) string {
	best := "general"
	bestScore := 0

	for _, industry := range industryOrder {
		score := 0
		for _, keyword := range industryKeywords[industry] {
			score += strings.Count(lowerText, keyword)
		}
		if score > bestScore {
			best = industry
			bestScore = score
		}
	}

	return best
}
