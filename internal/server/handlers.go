package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"newsmith/internal/core"
	"newsmith/internal/imagegen"
	"newsmith/internal/llm"
	"newsmith/internal/synthesis"
)

// Health check response
type HealthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

// Status response
type StatusResponse struct {
	Version string `json:"version"`
	Uptime  string `json:"uptime"`
}

// SynthesizeResponse pairs a generated article with its optional image.
type SynthesizeResponse struct {
	Article *core.SynthesizedArticle `json:"article"`
	Image   *core.AIImage            `json:"image,omitempty"`
}

var serverStartTime = time.Now()

// handleHealth handles the /health endpoint
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	checks := map[string]string{
		"synthesizer": componentCheck(s.synth != nil),
		"images":      componentCheck(s.images != nil),
		"feeds":       componentCheck(s.feeds != nil),
	}

	s.respondJSON(w, http.StatusOK, HealthResponse{
		Status: "ok",
		Checks: checks,
	})
}

func componentCheck(wired bool) string {
	if wired {
		return "ok"
	}
	return "disabled"
}

// handleStatus handles the /api/status endpoint
func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, StatusResponse{
		Version: "v1.2.0",
		Uptime:  time.Since(serverStartTime).String(),
	})
}

// handleSynthesize handles POST /api/synthesize
func (s *Server) handleSynthesize(w http.ResponseWriter, r *http.Request) {
	var req SynthesizeRequest
	if !s.decodeValid(w, r, &req) {
		return
	}

	// Sources go through the enricher like every other ingestion path:
	// URL dedup, extraction backfill for URL-only or thin content, caps,
	// and the minimum-word gate.
	raw := make([]core.RawSourceArticle, 0, len(req.Sources))
	for _, src := range req.Sources {
		raw = append(raw, core.RawSourceArticle{
			Title:   src.Title,
			Content: src.Content,
			URL:     src.URL,
			Source:  src.Source,
		})
	}

	enriched := s.enricher.Enrich(r.Context(), raw)
	if len(enriched) == 0 {
		s.respondError(w, http.StatusUnprocessableEntity, "No usable sources after enrichment")
		return
	}

	synthReq := core.SynthesisRequest{
		Topic:   req.Topic,
		Style:   core.ArticleStyle(req.Style),
		Tone:    req.Tone,
		Length:  core.ArticleLength(req.Length),
		Sources: enriched,
		Custom:  req.Custom,
	}

	article, err := s.synth.Synthesize(r.Context(), synthReq)
	if err != nil {
		s.log.Error("Synthesis failed", "topic", req.Topic, "error", err)
		s.respondError(w, providerStatus(err), "Article synthesis failed")
		return
	}

	resp := SynthesizeResponse{Article: article}
	if req.GenerateImage {
		img, imgErr := s.images.GenerateForArticle(r.Context(), article.Title, article.Content, imagegen.Options{})
		if imgErr != nil {
			s.log.Warn("Image generation skipped", "error", imgErr)
		} else {
			resp.Image = img
		}
	}

	s.respondJSON(w, http.StatusOK, resp)
}

// handleEditArticle handles POST /api/articles/edit
func (s *Server) handleEditArticle(w http.ResponseWriter, r *http.Request) {
	var req EditArticleRequest
	if !s.decodeValid(w, r, &req) {
		return
	}

	edited, err := s.synth.EditArticle(r.Context(), req.Content, req.Instruction)
	if err != nil {
		s.log.Error("Article edit failed", "error", err)
		s.respondError(w, providerStatus(err), "Article edit failed")
		return
	}

	s.respondJSON(w, http.StatusOK, map[string]string{"content": edited})
}

// handleGenerateTitles handles POST /api/articles/titles
func (s *Server) handleGenerateTitles(w http.ResponseWriter, r *http.Request) {
	var req TitlesRequest
	if !s.decodeValid(w, r, &req) {
		return
	}

	count := req.Count
	if count == 0 {
		count = 5
	}

	titles, err := s.synth.GenerateTitles(r.Context(), req.Topic, req.Content, count)
	if err != nil {
		s.log.Error("Title generation failed", "error", err)
		s.respondError(w, providerStatus(err), "Title generation failed")
		return
	}

	s.respondJSON(w, http.StatusOK, map[string]any{"titles": titles})
}

// handleAnalyzeQuality handles POST /api/articles/quality
func (s *Server) handleAnalyzeQuality(w http.ResponseWriter, r *http.Request) {
	var req QualityRequest
	if !s.decodeValid(w, r, &req) {
		return
	}

	report, err := s.synth.AnalyzeQuality(r.Context(), req.Content)
	if err != nil {
		s.log.Error("Quality analysis failed", "error", err)
		s.respondError(w, providerStatus(err), "Quality analysis failed")
		return
	}

	s.respondJSON(w, http.StatusOK, report)
}

// handleGenerateImage handles POST /api/images/generate. The fallback chain
// means this endpoint never reports a provider failure.
func (s *Server) handleGenerateImage(w http.ResponseWriter, r *http.Request) {
	var req GenerateImageRequest
	if !s.decodeValid(w, r, &req) {
		return
	}

	opts := imagegen.Options{
		Style:       imagegen.ImageStyle(req.Style),
		Mood:        imagegen.Mood(req.Mood),
		AspectRatio: req.AspectRatio,
		Custom:      req.Custom,
	}

	var (
		img *core.AIImage
		err error
	)
	if req.Prompt != "" {
		img, err = s.images.GenerateFromPrompt(r.Context(), req.Prompt, opts)
	} else {
		img, err = s.images.GenerateForArticle(r.Context(), req.Title, req.Body, opts)
	}
	if err != nil {
		s.log.Error("Image generation failed", "error", err)
		s.respondError(w, http.StatusInternalServerError, "Image generation failed")
		return
	}

	s.respondJSON(w, http.StatusOK, img)
}

// handleEditImage handles POST /api/images/edit
func (s *Server) handleEditImage(w http.ResponseWriter, r *http.Request) {
	var req EditImageRequest
	if !s.decodeValid(w, r, &req) {
		return
	}

	original := &core.AIImage{
		ID:     req.Image.ID,
		URL:    req.Image.URL,
		Prompt: req.Image.Prompt,
		Style:  req.Image.Style,
	}
	opts := imagegen.Options{
		Style:       imagegen.ImageStyle(req.Image.Style),
		Mood:        imagegen.Mood(req.Mood),
		AspectRatio: req.AspectRatio,
	}

	img, err := s.images.Edit(r.Context(), original, req.Instruction, opts)
	if err != nil {
		s.log.Error("Image edit failed", "error", err)
		s.respondError(w, http.StatusInternalServerError, "Image edit failed")
		return
	}

	s.respondJSON(w, http.StatusOK, img)
}

// handleFetchSources handles GET /api/sources/fetch?url=...
func (s *Server) handleFetchSources(w http.ResponseWriter, r *http.Request) {
	feedURL := r.URL.Query().Get("url")
	if feedURL == "" {
		s.respondError(w, http.StatusBadRequest, "Query parameter 'url' is required")
		return
	}

	articles, err := s.feeds.FetchFeed(r.Context(), feedURL)
	if err != nil {
		s.log.Error("Feed fetch failed", "url", feedURL, "error", err)
		s.respondError(w, http.StatusBadGateway, "Failed to fetch feed")
		return
	}

	s.respondJSON(w, http.StatusOK, map[string]any{
		"count":    len(articles),
		"articles": articles,
	})
}

// providerStatus maps upstream LLM failures to a service-unavailable status.
func providerStatus(err error) int {
	if errors.Is(err, synthesis.ErrSynthesisFailed) || errors.Is(err, llm.ErrProviderUnavailable) {
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

// respondJSON writes a JSON response
func (s *Server) respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.log.Error("Failed to encode JSON response", "error", err)
	}
}

// respondError writes an error response
func (s *Server) respondError(w http.ResponseWriter, status int, message string) {
	s.respondJSON(w, status, map[string]any{
		"error": map[string]any{
			"status":  status,
			"message": message,
		},
	})
}
