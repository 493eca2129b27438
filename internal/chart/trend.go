package chart

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"strings"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"github.com/google/uuid"
	"golang.org/x/image/font"
)

// Point is one charted value with an optional axis label.
type Point struct {
	Label string
	Value float64
}

// TrendRenderer draws mood trend charts as PNG files under outDir. A font
// face is optional; without one the chart is drawn without text labels.
type TrendRenderer struct {
	outDir   string
	fontFace font.Face
}

// NewTrendRenderer ensures outDir exists and loads the label font when
// fontPath is non-empty.
func NewTrendRenderer(outDir, fontPath string) (*TrendRenderer, error) {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create chart directory %q: %w", outDir, err)
	}

	var face font.Face
	if fontPath != "" {
		loaded, err := loadFontFace(fontPath, 13)
		if err != nil {
			return nil, fmt.Errorf("could not load chart font: %w", err)
		}
		face = loaded
	}

	return &TrendRenderer{outDir: outDir, fontFace: face}, nil
}

// Render draws the points as a polyline on a 0..10 scale and returns the
// path of the written PNG.
func (r *TrendRenderer) Render(points []Point) (string, error) {
	if len(points) == 0 {
		return "", fmt.Errorf("no points to chart")
	}

	const (
		width    = 800
		height   = 400
		margin   = 48.0
		maxValue = 10.0
	)

	dc := gg.NewContext(width, height)
	dc.SetColor(color.White)
	dc.Clear()

	plotW := float64(width) - 2*margin
	plotH := float64(height) - 2*margin

	// Axes.
	dc.SetColor(color.Black)
	dc.SetLineWidth(1.5)
	dc.DrawLine(margin, margin, margin, margin+plotH)
	dc.DrawLine(margin, margin+plotH, margin+plotW, margin+plotH)
	dc.Stroke()

	xAt := func(i int) float64 {
		if len(points) == 1 {
			return margin + plotW/2
		}
		return margin + plotW*float64(i)/float64(len(points)-1)
	}
	yAt := func(v float64) float64 {
		if v < 0 {
			v = 0
		}
		if v > maxValue {
			v = maxValue
		}
		return margin + plotH*(1-v/maxValue)
	}

	// Gridlines at every other score step.
	dc.SetColor(color.NRGBA{R: 0xD0, G: 0xD0, B: 0xD0, A: 0xFF})
	dc.SetLineWidth(0.75)
	for v := 2.0; v < maxValue; v += 2 {
		dc.DrawLine(margin, yAt(v), margin+plotW, yAt(v))
	}
	dc.Stroke()

	// Trend line.
	dc.SetColor(color.NRGBA{R: 0x0D, G: 0x6E, B: 0xFD, A: 0xFF})
	dc.SetLineWidth(2.5)
	for i := 1; i < len(points); i++ {
		dc.DrawLine(xAt(i-1), yAt(points[i-1].Value), xAt(i), yAt(points[i].Value))
	}
	dc.Stroke()

	for i, p := range points {
		dc.DrawCircle(xAt(i), yAt(p.Value), 4)
		dc.Fill()
	}

	if r.fontFace != nil {
		dc.SetFontFace(r.fontFace)
		dc.SetColor(color.Black)
		for v := 0.0; v <= maxValue; v += 2 {
			dc.DrawStringAnchored(fmt.Sprintf("%.0f", v), margin-10, yAt(v), 1, 0.35)
		}
		for i, p := range points {
			if p.Label == "" {
				continue
			}
			dc.DrawStringAnchored(p.Label, xAt(i), margin+plotH+18, 0.5, 0.35)
		}
	}

	name := fmt.Sprintf("trend_%s.png", randomHex())
	path := filepath.Join(r.outDir, name)
	if err := dc.SavePNG(path); err != nil {
		return "", fmt.Errorf("failed to write chart PNG: %w", err)
	}
	return path, nil
}

func randomHex() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}

func loadFontFace(fontPath string, size float64) (font.Face, error) {
	fontBytes, err := os.ReadFile(fontPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read font file: %w", err)
	}
	parsedFont, err := truetype.Parse(fontBytes)
	if err != nil {
		return nil, fmt.Errorf("failed to parse TTF: %w", err)
	}
	return truetype.NewFace(parsedFont, &truetype.Options{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingNone,
	}), nil
}
