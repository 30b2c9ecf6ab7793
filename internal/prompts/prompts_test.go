package prompts

import (
	"strings"
	"testing"
	"unicode/utf8"

	"newsmith/internal/core"
)

func sampleRequest() core.SynthesisRequest {
	return core.SynthesisRequest{
		Topic:  "quantum computing advances",
		Style:  core.StyleTechnical,
		Tone:   "optimistic",
		Length: core.LengthShort,
		Sources: []core.EnrichedArticle{
			{Title: "Qubit Milestone", Text: "Researchers announced a new qubit record.", Source: "Tech Daily", URL: "https://example.com/qubits"},
			{Title: "Error Correction", Text: "Error correction rates improved dramatically."},
		},
	}
}

func TestBuildSynthesisPrompt_IncludesParameters(t *testing.T) {
	prompt := BuildSynthesisPrompt(sampleRequest())

	if !strings.Contains(prompt, "quantum computing advances") {
		t.Error("Prompt should contain the topic")
	}
	if !strings.Contains(prompt, "technical style") {
		t.Error("Prompt should contain the style instruction")
	}
	if !strings.Contains(prompt, "optimistic tone") {
		t.Error("Prompt should contain the tone")
	}
	if !strings.Contains(prompt, "300-500 words") {
		t.Error("Prompt should contain the short length band")
	}
}

func TestBuildSynthesisPrompt_NegativeConstraints(t *testing.T) {
	prompt := BuildSynthesisPrompt(sampleRequest())

	for _, constraint := range []string{"this article", "verbatim", "X reveals"} {
		if !strings.Contains(prompt, constraint) {
			t.Errorf("Prompt should embed the %q negative constraint", constraint)
		}
	}
}

func TestBuildSynthesisPrompt_Defaults(t *testing.T) {
	req := core.SynthesisRequest{
		Topic:   "test topic",
		Style:   core.ArticleStyle("nonsense"),
		Length:  core.ArticleLength("bogus"),
		Sources: []core.EnrichedArticle{{Title: "S", Text: "t"}},
	}
	prompt := BuildSynthesisPrompt(req)

	if !strings.Contains(prompt, "journalistic style") {
		t.Error("Unknown style should fall back to journalistic")
	}
	if !strings.Contains(prompt, "neutral tone") {
		t.Error("Missing tone should fall back to neutral")
	}
	if !strings.Contains(prompt, "600-1000 words") {
		t.Error("Unknown length should fall back to the medium band")
	}
}

func TestSerializeSources_EnumeratedAndLabeled(t *testing.T) {
	block := SerializeSources(sampleRequest().Sources)

	if !strings.Contains(block, "Source 1 (Tech Daily): Qubit Milestone") {
		t.Errorf("First source should be enumerated with its origin label:\n%s", block)
	}
	if !strings.Contains(block, "Source 2 (unknown): Error Correction") {
		t.Errorf("Missing origin should be labeled unknown:\n%s", block)
	}
	if !strings.Contains(block, "URL: https://example.com/qubits") {
		t.Error("Source URL should be included when present")
	}
}

func TestSerializeSources_TruncatesLongText(t *testing.T) {
	sources := []core.EnrichedArticle{
		{Title: "Big", Text: strings.Repeat("a", 10000)},
	}
	block := SerializeSources(sources)
	if len(block) > maxSourceChars+200 {
		t.Errorf("Serialized source should be truncated, got %d chars", len(block))
	}
	if !strings.Contains(block, "...") {
		t.Error("Truncated source should carry an ellipsis marker")
	}
}

func TestBandFor(t *testing.T) {
	tests := []struct {
		length core.ArticleLength
		min    int
		max    int
	}{
		{core.LengthShort, 300, 500},
		{core.LengthMedium, 600, 1000},
		{core.LengthLong, 1200, 2000},
		{core.ArticleLength("unknown"), 600, 1000},
	}

	for _, tt := range tests {
		band := BandFor(tt.length)
		if band.Min != tt.min || band.Max != tt.max {
			t.Errorf("BandFor(%q) = %+v, want {%d %d}", tt.length, band, tt.min, tt.max)
		}
	}
}

func TestMaxTokensFor_ScalesWithLength(t *testing.T) {
	if MaxTokensFor(core.LengthShort) >= MaxTokensFor(core.LengthLong) {
		t.Error("Long articles should get a larger token budget than short ones")
	}
}

func TestBuildTitlesPrompt(t *testing.T) {
	prompt := BuildTitlesPrompt("space travel", "article body", 8)
	if !strings.Contains(prompt, "exactly 8") {
		t.Error("Prompt should request the exact headline count")
	}
	if !strings.Contains(prompt, "One headline per line") {
		t.Error("Prompt should request one headline per line")
	}
}

func TestBuildQualityPrompt_RequestsStrictJSON(t *testing.T) {
	prompt := BuildQualityPrompt("some article")
	for _, field := range []string{`"score"`, `"strengths"`, `"improvements"`, `"suggestions"`} {
		if !strings.Contains(prompt, field) {
			t.Errorf("Quality prompt should name the %s field", field)
		}
	}
}

func TestBuildEditPrompt(t *testing.T) {
	prompt := BuildEditPrompt("original text", "make it shorter")
	if !strings.Contains(prompt, "make it shorter") {
		t.Error("Edit prompt should contain the instruction")
	}
	if !strings.Contains(prompt, "original text") {
		t.Error("Edit prompt should contain the article")
	}
}

func TestTruncateContent_PreservesRuneBoundaries(t *testing.T) {
	content := strings.Repeat("é", 50)
	got := truncateContent(content, 25)

	if !strings.HasSuffix(got, "...") {
		t.Errorf("Truncated content should end with an ellipsis marker, got %q", got)
	}
	if !utf8.ValidString(got) {
		t.Errorf("Truncated content must stay valid UTF-8, got %q", got)
	}
	if len(got) > 25+len("...") {
		t.Errorf("Truncated content exceeds the cap: %d bytes", len(got))
	}
}
