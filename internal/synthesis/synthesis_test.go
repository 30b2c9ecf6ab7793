package synthesis

import (
	"context"
	"errors"
	"strings"
	"testing"

	"newsmith/internal/core"
	"newsmith/internal/llm"
)

func testRequest() core.SynthesisRequest {
	return core.SynthesisRequest{
		Topic:  "renewable energy storage",
		Style:  core.StyleJournalistic,
		Length: core.LengthShort,
		Sources: []core.EnrichedArticle{
			{Title: "Battery Breakthrough", Text: "New battery chemistry announced.", Source: "Energy Wire"},
		},
	}
}

func TestSynthesize_BuildsArticle(t *testing.T) {
	body := strings.Repeat("word ", 350)
	mock := llm.NewMockProvider().WithResponses("Grid-Scale Storage Arrives\n\n" + body)
	orch := NewOrchestrator(mock, 0.7)

	article, err := orch.Synthesize(context.Background(), testRequest())
	if err != nil {
		t.Fatalf("Synthesize failed: %v", err)
	}

	if article.Title != "Grid-Scale Storage Arrives" {
		t.Errorf("Expected first line as title, got %q", article.Title)
	}
	if article.WordCount != 350 {
		t.Errorf("Expected word count 350, got %d", article.WordCount)
	}
	if article.Summary == "" || len(article.Summary) > 260 {
		t.Errorf("Summary should be a bounded leading excerpt, got %d chars", len(article.Summary))
	}
	if article.Style != core.StyleJournalistic {
		t.Errorf("Expected style tag carried through, got %q", article.Style)
	}
	if article.ID == "" || article.CreatedAt.IsZero() {
		t.Error("Article should have an id and creation timestamp")
	}
}

func TestSynthesize_ThreadsTokenBudget(t *testing.T) {
	mock := llm.NewMockProvider()
	orch := NewOrchestrator(mock, 0.7)

	req := testRequest()
	req.Length = core.LengthLong
	if _, err := orch.Synthesize(context.Background(), req); err != nil {
		t.Fatalf("Synthesize failed: %v", err)
	}

	seen := mock.Requests()
	if len(seen) != 1 {
		t.Fatalf("Expected 1 provider call, got %d", len(seen))
	}
	if seen[0].MaxTokens <= 1000 {
		t.Errorf("Long length should thread a large token budget, got %d", seen[0].MaxTokens)
	}
}

func TestSynthesize_ProviderFailure(t *testing.T) {
	mock := llm.NewMockProvider().WithError(errors.New("rate limited"))
	orch := NewOrchestrator(mock, 0.7)

	if _, err := orch.Synthesize(context.Background(), testRequest()); !errors.Is(err, ErrSynthesisFailed) {
		t.Errorf("Provider errors should surface as ErrSynthesisFailed, got %v", err)
	}
}

func TestGenerateTitles_ParsesAndTruncates(t *testing.T) {
	lines := []string{
		"Headline One", "Headline Two", "", "Headline Three", "Headline Four",
		"Headline Five", "Headline Six", "  ", "Headline Seven", "Headline Eight",
		"Headline Nine", "Headline Ten",
	}
	mock := llm.NewMockProvider().WithResponses(strings.Join(lines, "\n"))
	orch := NewOrchestrator(mock, 0.7)

	titles, err := orch.GenerateTitles(context.Background(), "topic", "content", 8)
	if err != nil {
		t.Fatalf("GenerateTitles failed: %v", err)
	}
	if len(titles) != 8 {
		t.Fatalf("Expected exactly 8 titles, got %d", len(titles))
	}
	if titles[0] != "Headline One" || titles[7] != "Headline Eight" {
		t.Errorf("Titles should preserve original order skipping blanks, got first=%q last=%q", titles[0], titles[7])
	}
}

func TestAnalyzeQuality_ValidJSON(t *testing.T) {
	response := `{"score": 88, "strengths": ["clear"], "improvements": ["depth"], "suggestions": ["expand"]}`
	mock := llm.NewMockProvider().WithResponses(response)
	orch := NewOrchestrator(mock, 0.7)

	report, err := orch.AnalyzeQuality(context.Background(), "article text")
	if err != nil {
		t.Fatalf("AnalyzeQuality failed: %v", err)
	}
	if report.Score != 88 {
		t.Errorf("Expected score 88, got %d", report.Score)
	}
}

func TestAnalyzeQuality_FencedJSON(t *testing.T) {
	response := "```json\n{\"score\": 60, \"strengths\": [], \"improvements\": [], \"suggestions\": []}\n```"
	mock := llm.NewMockProvider().WithResponses(response)
	orch := NewOrchestrator(mock, 0.7)

	report, err := orch.AnalyzeQuality(context.Background(), "article text")
	if err != nil {
		t.Fatalf("AnalyzeQuality failed: %v", err)
	}
	if report.Score != 60 {
		t.Errorf("Expected fenced JSON to parse, got score %d", report.Score)
	}
}

func TestAnalyzeQuality_ExplicitZeroScoreIsKept(t *testing.T) {
	response := `{"score": 0, "strengths": ["honest"], "improvements": ["everything"], "suggestions": ["rewrite"]}`
	mock := llm.NewMockProvider().WithResponses(response)
	orch := NewOrchestrator(mock, 0.7)

	report, err := orch.AnalyzeQuality(context.Background(), "article text")
	if err != nil {
		t.Fatalf("AnalyzeQuality failed: %v", err)
	}
	if report.Score != 0 {
		t.Errorf("Explicit zero score must not be treated as malformed, got %d", report.Score)
	}
	if len(report.Strengths) != 1 || report.Strengths[0] != "honest" {
		t.Errorf("Expected the provider's lists to survive, got strengths %v", report.Strengths)
	}
}

func TestAnalyzeQuality_MissingScoreFallsBackToNeutralDefault(t *testing.T) {
	response := `{"strengths": ["clear"], "improvements": [], "suggestions": []}`
	mock := llm.NewMockProvider().WithResponses(response)
	orch := NewOrchestrator(mock, 0.7)

	report, err := orch.AnalyzeQuality(context.Background(), "article text")
	if err != nil {
		t.Fatalf("AnalyzeQuality failed: %v", err)
	}
	if want := DefaultQualityReport(); report.Score != want.Score {
		t.Errorf("Absent score should degrade to the neutral default %d, got %d", want.Score, report.Score)
	}
}

func TestAnalyzeQuality_MalformedFallsBackToNeutralDefault(t *testing.T) {
	mock := llm.NewMockProvider().WithResponses("I think the article is pretty good overall!")
	orch := NewOrchestrator(mock, 0.7)

	report, err := orch.AnalyzeQuality(context.Background(), "article text")
	if err != nil {
		t.Fatalf("Malformed output should not be an error, got %v", err)
	}

	want := DefaultQualityReport()
	if report.Score != want.Score {
		t.Errorf("Expected neutral default score %d, got %d", want.Score, report.Score)
	}
	if len(report.Strengths) != 3 || len(report.Improvements) != 3 || len(report.Suggestions) != 3 {
		t.Errorf("Neutral default should have 3 items per list, got %d/%d/%d",
			len(report.Strengths), len(report.Improvements), len(report.Suggestions))
	}
}

func TestEditArticle(t *testing.T) {
	mock := llm.NewMockProvider().WithResponses("  Revised article text.  ")
	orch := NewOrchestrator(mock, 0.7)

	revised, err := orch.EditArticle(context.Background(), "original", "tighten the prose")
	if err != nil {
		t.Fatalf("EditArticle failed: %v", err)
	}
	if revised != "Revised article text." {
		t.Errorf("Expected trimmed revision, got %q", revised)
	}

	seen := mock.Requests()
	if !strings.Contains(seen[0].Prompt, "tighten the prose") {
		t.Error("Edit prompt should carry the instruction")
	}
}
