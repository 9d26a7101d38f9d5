// Package echarts renders track surfaces to interactive HTML scatter charts
// via go-echarts. Useful for quick visual inspection in a browser without a
// PNG pipeline.
package echarts

import (
	"fmt"
	"image/color"
	"io"
	"math"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/gridline-data/trackmap/internal/render"
)

// Surface accumulates marker and legend calls and renders them as an echarts
// scatter chart. Consecutive markers with the same style form one series;
// series keep arrival order, which echarts draws back-to-front.
type Surface struct {
	Title    string
	Subtitle string

	runs    []styleRun
	legends []legendEntry
}

type styleRun struct {
	style  render.Style
	points []opts.ScatterData
}

type legendEntry struct {
	label string
	style render.Style
}

// New creates an empty surface with the given chart title.
func New(title string) *Surface {
	return &Surface{Title: title}
}

// Marker records one marker draw call.
func (s *Surface) Marker(x, y float64, style render.Style) {
	d := opts.ScatterData{Value: []interface{}{x, y}}
	if n := len(s.runs); n > 0 && render.Same(s.runs[n-1].style, style) {
		s.runs[n-1].points = append(s.runs[n-1].points, d)
		return
	}
	s.runs = append(s.runs, styleRun{style: style, points: []opts.ScatterData{d}})
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

// Render writes the chart HTML to w. Axes are symmetric and padded so edge
// markers stay visible and the plot keeps a square aspect.
func (s *Surface) Render(w io.Writer) error {
	maxAbs := 0.0
	total := 0
	for _, run := range s.runs {
		total += len(run.points)
		for _, d := range run.points {
			vals := d.Value.([]interface{})
			x := math.Abs(vals[0].(float64))
			y := math.Abs(vals[1].(float64))
			if x > maxAbs {
				maxAbs = x
			}
			if y > maxAbs {
				maxAbs = y
			}
		}
	}
	pad := maxAbs * 1.05
	if pad == 0 {
		pad = 1.0
	}

	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: s.Title, Width: "900px", Height: "900px"}),
		charts.WithTitleOpts(opts.Title{Title: s.Title, Subtitle: s.subtitle(total)}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Min: -pad, Max: pad, Name: "X (m)", NameLocation: "middle", NameGap: 25}),
		charts.WithYAxisOpts(opts.YAxis{Min: -pad, Max: pad, Name: "Y (m)", NameLocation: "middle", NameGap: 30}),
	)

	for i, run := range s.runs {
		scatter.AddSeries(
			s.seriesName(i, run.style),
			run.points,
			charts.WithScatterChartOpts(opts.ScatterChart{SymbolSize: symbolSize(run.style)}),
			charts.WithItemStyleOpts(opts.ItemStyle{Color: hexColor(run.style.Color)}),
		)
	}

	if err := scatter.Render(w); err != nil {
		return fmt.Errorf("render scatter chart: %w", err)
	}
	return nil
}

func (s *Surface) subtitle(points int) string {
	if s.Subtitle != "" {
		return s.Subtitle
	}
	return fmt.Sprintf("points=%d", points)
}

// seriesName matches a run to a legend label by style so the chart legend
// toggles the right series; unlabelled runs get a positional name.
func (s *Surface) seriesName(i int, style render.Style) string {
	for _, e := range s.legends {
		if render.Same(e.style, style) {
			return e.label
		}
	}
	return fmt.Sprintf("series-%d", i)
}

func symbolSize(style render.Style) int {
	if style.Radius <= 0 {
		return 6
	}
	// echarts symbol sizes are diameters in pixels.
	return int(style.Radius * 2)
}

func hexColor(c color.Color) string {
	if c == nil {
		return "#000000"
	}
	r, g, b, _ := c.RGBA()
	return fmt.Sprintf("#%02x%02x%02x", uint8(r>>8), uint8(g>>8), uint8(b>>8))
}
