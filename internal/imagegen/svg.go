package imagegen

import (
	"encoding/base64"
	"fmt"
	"html"
)

// moodSVGGradients are the SVG hex equivalents of moodGradients.
var moodSVGGradients = map[Mood][2]string{
	MoodProfessional: {"#1e3a5f", "#4a90d9"},
	MoodCreative:     {"#e91e8c", "#ffb347"},
	MoodSerious:      {"#2b2b2b", "#5a5a6e"},
	MoodVibrant:      {"#ff9500", "#ff2d78"},
	MoodCalm:         {"#a8d8ea", "#71c9a8"},
	MoodDramatic:     {"#8b0000", "#1a1a2e"},
}

// RenderSVG produces a vector-markup rendering with the same color and
// text scheme as the raster renderer, encoded as a data URI. It cannot
// fail: it is pure string assembly.
func RenderSVG(overlayTitle string, opts Options) string {
	width, height := dimensions(opts.AspectRatio)

	scheme, ok := moodSVGGradients[opts.Mood]
	if !ok {
		scheme = moodSVGGradients[MoodProfessional]
	}

	title := overlayTitle
	if title == "" {
		title = "News"
	}

	svg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">`+
		`<defs><linearGradient id="bg" x1="0%%" y1="0%%" x2="100%%" y2="100%%">`+
		`<stop offset="0%%" stop-color="%s"/><stop offset="100%%" stop-color="%s"/>`+
		`</linearGradient></defs>`+
		`<rect width="%d" height="%d" fill="url(#bg)"/>`+
		`<circle cx="%d" cy="%d" r="%d" fill="none" stroke="#ffffff" stroke-opacity="0.15" stroke-width="3"/>`+
		`<text x="50%%" y="50%%" text-anchor="middle" fill="#ffffff" font-family="sans-serif" font-size="%d" font-weight="bold">%s</text>`+
		`<text x="50%%" y="58%%" text-anchor="middle" fill="#ffffff" fill-opacity="0.7" font-family="sans-serif" font-size="%d">%s</text>`+
		`</svg>`,
		width, height, width, height,
		scheme[0], scheme[1],
		width, height,
		width/2, height/3, height/5,
		height/16, html.EscapeString(title),
		height/32, renderSubtitle,
	)

	return "data:image/svg+xml;base64," + base64.StdEncoding.EncodeToString([]byte(svg))
}
