package imagegen

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
)

const defaultPlaceholderURL = "https://placehold.co"

// moodBackgrounds maps each mood to a placeholder background color (hex,
// no leading #).
var moodBackgrounds = map[Mood]string{
	MoodProfessional: "1e3a5f",
	MoodCreative:     "e91e8c",
	MoodSerious:      "2b2b2b",
	MoodVibrant:      "ff9500",
	MoodCalm:         "a8d8ea",
	MoodDramatic:     "8b0000",
}

// PlaceholderStrategy is the third chain stage: a plain placeholder image
// with a mood-derived background and auto-contrasting text.
type PlaceholderStrategy struct {
	baseURL string
	client  *http.Client
}

// NewPlaceholderStrategy creates the placeholder image stage.
func NewPlaceholderStrategy(baseURL string) *PlaceholderStrategy {
	if baseURL == "" {
		baseURL = defaultPlaceholderURL
	}
	return &PlaceholderStrategy{
		baseURL: baseURL,
		client:  &http.Client{},
	}
}

// Name identifies this stage.
func (s *PlaceholderStrategy) Name() string { return "placeholder" }

// Generate builds a placeholder URL colored by mood and probes it.
func (s *PlaceholderStrategy) Generate(ctx context.Context, _ string, overlayTitle string, opts Options) (string, error) {
	background := moodBackgrounds[opts.Mood]
	if background == "" {
		background = moodBackgrounds[MoodProfessional]
	}
	text := ContrastTextColor(background)

	width, height := dimensions(opts.AspectRatio)
	label := overlayTitle
	if label == "" {
		label = "News"
	}

	imageURL := fmt.Sprintf("%s/%dx%d/%s/%s?text=%s",
		s.baseURL, width, height, background, text, url.QueryEscape(label))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, imageURL, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("placeholder service unreachable: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("placeholder service returned status %d", resp.StatusCode)
	}

	return imageURL, nil
}

// ContrastTextColor picks black or white text for a hex background using
// the standard 0.299/0.587/0.114 luminance weighting: black above the 0.5
// threshold, white at or below it.
func ContrastTextColor(backgroundHex string) string {
	r, g, b := parseHexColor(backgroundHex)
	luminance := (0.299*float64(r) + 0.587*float64(g) + 0.114*float64(b)) / 255
	if luminance > 0.5 {
		return "000000"
	}
	return "ffffff"
}

func parseHexColor(hex string) (int, int, int) {
	if len(hex) != 6 {
		return 0, 0, 0
	}
	r, _ := strconv.ParseInt(hex[0:2], 16, 32)
	g, _ := strconv.ParseInt(hex[2:4], 16, 32)
	b, _ := strconv.ParseInt(hex[4:6], 16, 32)
	return int(r), int(g), int(b)
}
