package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
)

// SourceInput is one caller-provided source article. A usable source needs
// inline content, a URL to extract from, or both.
type SourceInput struct {
	Title   string `json:"title" validate:"omitempty,max=500"`
	Content string `json:"content" validate:"required_without=URL"`
	URL     string `json:"url" validate:"omitempty,url"`
	Source  string `json:"source"`
}

// SynthesizeRequest is the body of POST /api/synthesize.
type SynthesizeRequest struct {
	Topic         string        `json:"topic" validate:"required,max=300"`
	Style         string        `json:"style" validate:"omitempty,oneof=academic journalistic blog technical creative business opinion"`
	Tone          string        `json:"tone" validate:"omitempty,max=100"`
	Length        string        `json:"length" validate:"omitempty,oneof=short medium long"`
	Sources       []SourceInput `json:"sources" validate:"required,min=1,max=20,dive"`
	Custom        string        `json:"custom" validate:"omitempty,max=1000"`
	GenerateImage bool          `json:"generate_image"`
}

// EditArticleRequest is the body of POST /api/articles/edit.
type EditArticleRequest struct {
	Content     string `json:"content" validate:"required"`
	Instruction string `json:"instruction" validate:"required,max=1000"`
}

// TitlesRequest is the body of POST /api/articles/titles.
type TitlesRequest struct {
	Topic   string `json:"topic" validate:"required,max=300"`
	Content string `json:"content" validate:"required"`
	Count   int    `json:"count" validate:"omitempty,min=1,max=10"`
}

// QualityRequest is the body of POST /api/articles/quality.
type QualityRequest struct {
	Content string `json:"content" validate:"required"`
}

// GenerateImageRequest is the body of POST /api/images/generate. Either a
// raw prompt or a title plus body to derive one from.
type GenerateImageRequest struct {
	Prompt      string `json:"prompt" validate:"required_without=Title"`
	Title       string `json:"title" validate:"required_without=Prompt,omitempty,max=500"`
	Body        string `json:"body"`
	Style       string `json:"style" validate:"omitempty,oneof=realistic artistic minimalist abstract photographic illustration"`
	Mood        string `json:"mood" validate:"omitempty,oneof=professional creative serious vibrant calm dramatic"`
	AspectRatio string `json:"aspect_ratio" validate:"omitempty,oneof=16:9 4:3 1:1 3:4"`
	Custom      string `json:"custom" validate:"omitempty,max=500"`
}

// ImageRef identifies a previously generated image for editing.
type ImageRef struct {
	ID     string `json:"id" validate:"required"`
	URL    string `json:"url"`
	Prompt string `json:"prompt" validate:"required"`
	Style  string `json:"style"`
}

// EditImageRequest is the body of POST /api/images/edit.
type EditImageRequest struct {
	Image       ImageRef `json:"image" validate:"required"`
	Instruction string   `json:"instruction" validate:"required,max=500"`
	Mood        string   `json:"mood" validate:"omitempty,oneof=professional creative serious vibrant calm dramatic"`
	AspectRatio string   `json:"aspect_ratio" validate:"omitempty,oneof=16:9 4:3 1:1 3:4"`
}

// fieldError reports one failed validation rule.
type fieldError struct {
	Field string `json:"field"`
	Rule  string `json:"rule"`
}

// decodeValid decodes the request body into dst and validates it. On any
// failure it writes a 400 response and returns false; handlers can then
// assume a fully valid dst.
func (s *Server) decodeValid(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		s.respondError(w, http.StatusBadRequest, "Invalid JSON body")
		return false
	}

	if err := s.validate.Struct(dst); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			fields := make([]fieldError, 0, len(verrs))
			for _, fe := range verrs {
				fields = append(fields, fieldError{Field: fe.Namespace(), Rule: fe.Tag()})
			}
			s.respondJSON(w, http.StatusBadRequest, map[string]any{
				"error": map[string]any{
					"status":  http.StatusBadRequest,
					"message": "Validation failed",
					"fields":  fields,
				},
			})
			return false
		}
		s.respondError(w, http.StatusBadRequest, "Invalid request")
		return false
	}

	return true
}
