package imagegen

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"newsmith/internal/core"
)

// MaxPromptLen is the hard cap on image prompts. The URL-based provider
// applies its own larger cap (see pollinations.go).
const MaxPromptLen = 500

// industrySubjects seeds the prompt with an industry-appropriate scene.
var industrySubjects = map[string]string{
	"technology":    "a sleek futuristic technology scene",
	"healthcare":    "a clean modern healthcare setting",
	"business":      "a dynamic corporate environment",
	"education":     "an inspiring learning environment",
	"environment":   "a vivid natural landscape",
	"sports":        "an energetic athletic scene",
	"science":       "a striking scientific visualization",
	"politics":      "a stately civic scene",
	"entertainment": "a lively entertainment scene",
	"general":       "a polished editorial illustration",
}

// styleModifiers phrase each image style.
var styleModifiers = map[ImageStyle]string{
	StyleRealistic:    "photorealistic, finely detailed",
	StyleArtistic:     "painterly, expressive brushwork",
	StyleMinimalist:   "minimalist, generous negative space",
	StyleAbstract:     "abstract, bold geometric forms",
	StylePhotographic: "shot on professional camera, shallow depth of field",
	StyleIllustration: "flat vector illustration, clean lines",
}

// moodModifiers phrase each mood.
var moodModifiers = map[Mood]string{
	MoodProfessional: "composed and professional atmosphere",
	MoodCreative:     "playful creative energy",
	MoodSerious:      "somber considered atmosphere",
	MoodVibrant:      "vibrant saturated energy",
	MoodCalm:         "calm tranquil atmosphere",
	MoodDramatic:     "dramatic high-contrast lighting",
}

// sentimentMoodPhrases adjust mood phrasing by detected sentiment.
var sentimentMoodPhrases = map[core.Sentiment]string{
	core.SentimentPositive: "uplifting tone",
	core.SentimentNeutral:  "balanced tone",
	core.SentimentNegative: "sober urgent tone",
}

// complexityComposition maps detected complexity to a composition qualifier.
var complexityComposition = map[core.Complexity]string{
	core.ComplexitySimple:   "simple clear composition",
	core.ComplexityModerate: "layered composition",
	core.ComplexityComplex:  "intricate detailed composition",
}

// BuildPrompt combines analysis signals and options into one image prompt,
// hard-truncated to MaxPromptLen.
func BuildPrompt(a core.ContentAnalysis, opts Options) string {
	var parts []string

	subject := industrySubjects[a.Industry]
	if subject == "" {
		subject = industrySubjects["general"]
	}
	parts = append(parts, subject)

	if len(a.Topics) > 0 {
		topics := a.Topics
		if len(topics) > 2 {
			topics = topics[:2]
		}
		parts = append(parts, fmt.Sprintf("evoking %s", strings.Join(topics, " and ")))
	}

	parts = append(parts, styleModifiers[opts.Style])
	parts = append(parts, moodModifiers[opts.Mood])
	parts = append(parts, sentimentMoodPhrases[a.Sentiment])

	if len(a.ColorPalette) > 0 {
		colors := a.ColorPalette
		if len(colors) > 2 {
			colors = colors[:2]
		}
		parts = append(parts, fmt.Sprintf("palette of %s", strings.Join(colors, " and ")))
	}

	parts = append(parts, complexityComposition[a.Complexity])

	prompt := strings.Join(parts, ", ")
	if opts.Custom != "" {
		prompt = prompt + ", " + opts.Custom
	}

	return truncatePrompt(prompt, MaxPromptLen)
}

// truncatePrompt caps a prompt at max bytes without splitting a multi-byte
// rune; the cut point walks back to the nearest rune start.
func truncatePrompt(prompt string, max int) string {
	if len(prompt) <= max {
		return prompt
	}
	cut := max
	for cut > 0 && !utf8.RuneStart(prompt[cut]) {
		cut--
	}
	return prompt[:cut]
}
