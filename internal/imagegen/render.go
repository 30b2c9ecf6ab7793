package imagegen

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"image/color"
	"math"

	"github.com/fogleman/gg"
	"golang.org/x/image/font/basicfont"

	"newsmith/internal/logger"
)

const renderSubtitle = "AI-generated illustration"

// moodGradients maps each mood to its background gradient color scheme.
var moodGradients = map[Mood][2]color.RGBA{
	MoodProfessional: {{R: 0x1e, G: 0x3a, B: 0x5f, A: 0xff}, {R: 0x4a, G: 0x90, B: 0xd9, A: 0xff}},
	MoodCreative:     {{R: 0xe9, G: 0x1e, B: 0x8c, A: 0xff}, {R: 0xff, G: 0xb3, B: 0x47, A: 0xff}},
	MoodSerious:      {{R: 0x2b, G: 0x2b, B: 0x2b, A: 0xff}, {R: 0x5a, G: 0x5a, B: 0x6e, A: 0xff}},
	MoodVibrant:      {{R: 0xff, G: 0x95, B: 0x00, A: 0xff}, {R: 0xff, G: 0x2d, B: 0x78, A: 0xff}},
	MoodCalm:         {{R: 0xa8, G: 0xd8, B: 0xea, A: 0xff}, {R: 0x71, G: 0xc9, B: 0xa8, A: 0xff}},
	MoodDramatic:     {{R: 0x8b, G: 0x00, B: 0x00, A: 0xff}, {R: 0x1a, G: 0x1a, B: 0x2e, A: 0xff}},
}

// LocalRenderStrategy is the final chain stage: a procedurally generated
// graphic rendered in-process. It has no network dependency and must
// succeed unconditionally; if raster rendering fails for any reason it
// degrades to an equivalent SVG with the same color and text scheme.
type LocalRenderStrategy struct{}

// NewLocalRenderStrategy creates the local render stage.
func NewLocalRenderStrategy() *LocalRenderStrategy {
	return &LocalRenderStrategy{}
}

// Name identifies this stage.
func (s *LocalRenderStrategy) Name() string { return "local" }

// Generate renders the image as a PNG data URI, falling back to SVG.
func (s *LocalRenderStrategy) Generate(_ context.Context, _ string, overlayTitle string, opts Options) (string, error) {
	uri, err := renderPNG(overlayTitle, opts)
	if err != nil {
		logger.Warn("Raster render failed, degrading to SVG", "error", err.Error())
		return RenderSVG(overlayTitle, opts), nil
	}
	return uri, nil
}

// renderPNG draws the style-selected motif over a mood gradient with the
// overlay title and fixed subtitle, returning a PNG data URI. A panic in
// the graphics layer is recovered into an error so the SVG fallback runs.
func renderPNG(overlayTitle string, opts Options) (uri string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("render panic: %v", r)
		}
	}()

	width, height := dimensions(opts.AspectRatio)
	dc := gg.NewContext(width, height)

	scheme, ok := moodGradients[opts.Mood]
	if !ok {
		scheme = moodGradients[MoodProfessional]
	}

	gradient := gg.NewLinearGradient(0, 0, float64(width), float64(height))
	gradient.AddColorStop(0, scheme[0])
	gradient.AddColorStop(1, scheme[1])
	dc.SetFillStyle(gradient)
	dc.DrawRectangle(0, 0, float64(width), float64(height))
	dc.Fill()

	drawMotif(dc, opts.Style, width, height)

	dc.SetFontFace(basicfont.Face7x13)
	dc.SetRGB(1, 1, 1)
	title := overlayTitle
	if title == "" {
		title = "News"
	}
	dc.DrawStringAnchored(title, float64(width)/2, float64(height)/2, 0.5, 0.5)
	dc.SetRGBA(1, 1, 1, 0.7)
	dc.DrawStringAnchored(renderSubtitle, float64(width)/2, float64(height)/2+24, 0.5, 0.5)

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return "", fmt.Errorf("failed to encode PNG: %w", err)
	}

	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

// drawMotif renders the style-selected visual motif as a translucent
// overlay on the gradient background.
func drawMotif(dc *gg.Context, style ImageStyle, width, height int) {
	w, h := float64(width), float64(height)
	dc.SetRGBA(1, 1, 1, 0.15)

	switch style {
	case StyleMinimalist: // geometric lines
		for i := 1; i <= 5; i++ {
			y := h * float64(i) / 6
			dc.DrawLine(0, y, w, y-h/8)
			dc.SetLineWidth(3)
			dc.Stroke()
		}
	case StyleAbstract: // circles and triangles
		for i := 0; i < 4; i++ {
			cx := w * float64(2*i+1) / 8
			dc.DrawCircle(cx, h/3, h/10+float64(i*12))
			dc.Stroke()
		}
		dc.DrawRegularPolygon(3, w/2, 2*h/3, h/6, 0)
		dc.Stroke()
	case StyleArtistic: // flowing curves
		for j := 0; j < 3; j++ {
			dc.MoveTo(0, h*float64(j+1)/4)
			for x := 0.0; x <= w; x += w / 40 {
				y := h*float64(j+1)/4 + math.Sin(x/80+float64(j))*h/12
				dc.LineTo(x, y)
			}
			dc.SetLineWidth(2)
			dc.Stroke()
		}
	case StylePhotographic: // grid
		for x := 0.0; x <= w; x += w / 10 {
			dc.DrawLine(x, 0, x, h)
			dc.SetLineWidth(1)
			dc.Stroke()
		}
		for y := 0.0; y <= h; y += h / 8 {
			dc.DrawLine(0, y, w, y)
			dc.SetLineWidth(1)
			dc.Stroke()
		}
	case StyleIllustration: // hexagon tiling
		r := h / 10
		for row := 0; row < 4; row++ {
			for col := 0; col < 6; col++ {
				cx := w*float64(col)/5 + float64(row%2)*r
				cy := h * float64(row+1) / 5
				dc.DrawRegularPolygon(6, cx, cy, r, 0)
				dc.Stroke()
			}
		}
	default: // realistic: bar chart silhouette
		barWidth := w / 12
		for i := 0; i < 8; i++ {
			barHeight := h * (0.2 + 0.6*math.Abs(math.Sin(float64(i)*1.3)))
			x := w*float64(i+2)/12 - barWidth/2
			dc.DrawRectangle(x, h-barHeight, barWidth*0.8, barHeight)
			dc.Fill()
		}
	}
}
