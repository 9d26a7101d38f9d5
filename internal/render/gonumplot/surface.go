// Package gonumplot renders track surfaces to image files via gonum/plot.
package gonumplot

import (
	"fmt"
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/gridline-data/trackmap/internal/render"
)

// Surface accumulates marker and legend calls and renders them with
// gonum/plot on Save. Draw order is preserved: consecutive markers with the
// same style collapse into one scatter run, and runs are added to the plot in
// arrival order so later markers draw on top.
type Surface struct {
	Title  string
	XLabel string
	YLabel string
	Width  vg.Length
	Height vg.Length

	runs    []styleRun
	legends []legendEntry
}

type styleRun struct {
	style  render.Style
	points plotter.XYs
}

type legendEntry struct {
	label string
	style render.Style
}

// New creates a surface with square default dimensions and metric axis
// labels.
func New(title string) *Surface {
	return &Surface{
		Title:  title,
		XLabel: "X (m)",
		YLabel: "Y (m)",
		Width:  8 * vg.Inch,
		Height: 8 * vg.Inch,
	}
}

// Marker records one marker draw call.
func (s *Surface) Marker(x, y float64, style render.Style) {
	if n := len(s.runs); n > 0 && render.Same(s.runs[n-1].style, style) {
		s.runs[n-1].points = append(s.runs[n-1].points, plotter.XY{X: x, Y: y})
		return
	}
	s.runs = append(s.runs, styleRun{style: style, points: plotter.XYs{{X: x, Y: y}}})
}

// Legend records one legend entry; repeated labels keep the first style.
func (s *Surface) Legend(label string, style render.Style) {
	for _, e := range s.legends {
		if e.label == label {
			return
		}
	}
	s.legends = append(s.legends, legendEntry{label: label, style: style})
}

// Save renders the accumulated draw calls to path. The file format follows
// the extension (.png, .svg, .pdf per gonum/plot).
func (s *Surface) Save(path string) error {
	p := plot.New()
	p.Title.Text = s.Title
	p.X.Label.Text = s.XLabel
	p.Y.Label.Text = s.YLabel

	for _, run := range s.runs {
		sc, err := plotter.NewScatter(run.points)
		if err != nil {
			return fmt.Errorf("build scatter: %w", err)
		}
		sc.GlyphStyle = glyphStyle(run.style)
		p.Add(sc)
	}

	for _, e := range s.legends {
		// Zero-length scatter: contributes only its glyph thumbnail.
		sc, err := plotter.NewScatter(plotter.XYs{})
		if err != nil {
			return fmt.Errorf("build legend thumbnail: %w", err)
		}
		sc.GlyphStyle = glyphStyle(e.style)
		p.Legend.Add(e.label, sc)
	}
	p.Legend.Top = true
	p.Legend.Left = false

	if err := p.Save(s.Width, s.Height, path); err != nil {
		return fmt.Errorf("save plot: %w", err)
	}
	return nil
}

func glyphStyle(style render.Style) draw.GlyphStyle {
	c := style.Color
	if c == nil {
		c = color.Black
	}
	r := style.Radius
	if r <= 0 {
		r = 3
	}
	return draw.GlyphStyle{
		Color:  c,
		Radius: vg.Points(r),
		Shape:  glyphShape(style.Shape),
	}
}

func glyphShape(shape render.Shape) draw.GlyphDrawer {
	switch shape {
	case render.ShapeRing:
		return draw.RingGlyph{}
	case render.ShapeTriangle:
		return draw.TriangleGlyph{}
	case render.ShapeSquare:
		return draw.BoxGlyph{}
	case render.ShapeCross:
		return draw.CrossGlyph{}
	default:
		return draw.CircleGlyph{}
	}
}
