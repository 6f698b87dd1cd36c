// Package plot renders an annealing trajectory as an annotated line chart.
package plot

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/GoSim-25-26J-441/annealplot/internal/report"
	"github.com/GoSim-25-26J-441/annealplot/internal/trajectory"
	"github.com/GoSim-25-26J-441/annealplot/pkg/config"
	"github.com/GoSim-25-26J-441/annealplot/pkg/logger"
)

// gridColor is mid gray at 0.3 opacity
var gridColor = drawing.Color{R: 0xb0, G: 0xb0, B: 0xb0, A: 77}

// SaveFile renders the chart into path, replacing any existing file. A
// partially written file is removed when rendering fails.
func SaveFile(path string, ds *trajectory.Dataset, s *report.Summary, cfg config.Chart) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("failed to close %s: %w", path, closeErr)
		}
		if err != nil {
			_ = os.Remove(path)
		}
	}()

	if err := Render(f, ds, s, cfg); err != nil {
		return err
	}
	return nil
}

// Render writes the chart for ds as PNG to w
func Render(w io.Writer, ds *trajectory.Dataset, s *report.Summary, cfg config.Chart) error {
	c, err := Build(ds, s, cfg)
	if err != nil {
		return err
	}
	if err := c.Render(chart.PNG, w); err != nil {
		return fmt.Errorf("failed to render chart: %w", err)
	}
	logger.Debug("chart rendered", "width", c.Width, "height", c.Height, "dpi", c.DPI, "points", ds.Len())
	return nil
}

// Build assembles the go-chart definition without rendering it
func Build(ds *trajectory.Dataset, s *report.Summary, cfg config.Chart) (*chart.Chart, error) {
	if ds == nil || ds.Empty() {
		return nil, report.ErrEmptyDataset
	}
	if len(ds.Temperatures) != len(ds.Distances) {
		return nil, errors.New("temperature and distance series differ in length")
	}
	for i := range ds.Distances {
		if !finite(ds.Temperatures[i]) || !finite(ds.Distances[i]) {
			return nil, fmt.Errorf("sample %d is not finite (%g, %g)", i, ds.Temperatures[i], ds.Distances[i])
		}
	}

	fonts, err := loadFonts()
	if err != nil {
		return nil, err
	}

	lineColor, err := parseColor(cfg.LineColor)
	if err != nil {
		return nil, err
	}
	lineColor = lineColor.WithAlpha(uint8(math.Round(cfg.LineAlpha * 255)))

	px := func(points float64) float64 { return pointsToPixels(points, cfg.DPI) }
	ipx := func(points float64) int { return int(math.Round(px(points))) }

	series := chart.ContinuousSeries{
		Name:    cfg.YLabel,
		XValues: ds.Temperatures,
		YValues: ds.Distances,
		Style: chart.Style{
			StrokeColor: lineColor,
			StrokeWidth: px(cfg.LineWidthPt),
		},
	}
	if ds.Len() == 1 {
		// a single sample has no segment to stroke
		series.Style.DotColor = lineColor
		series.Style.DotWidth = px(cfg.LineWidthPt * 2)
	}

	labelStyle := chart.Style{FontSize: cfg.LabelFontSize, Font: fonts.regular}
	tickStyle := chart.Style{FontSize: cfg.LabelFontSize * 0.8, Font: fonts.regular}

	c := &chart.Chart{
		Title: cfg.Title,
		TitleStyle: chart.Style{
			FontSize: cfg.TitleFontSize,
			Font:     fonts.bold,
			Padding:  chart.Box{Top: ipx(cfg.TitleFontSize * 0.6)},
		},
		Width:  cfg.WidthPx(),
		Height: cfg.HeightPx(),
		DPI:    cfg.DPI,
		Font:   fonts.regular,
		Background: chart.Style{
			Padding: chart.Box{
				Top:    ipx(cfg.TitleFontSize * 2.4),
				Left:   ipx(8),
				Right:  ipx(8),
				Bottom: ipx(8),
			},
		},
		XAxis: chart.XAxis{
			Name:      cfg.XLabel,
			NameStyle: labelStyle,
			Style:     tickStyle,
			Range:     paddedRange(ds.Temperatures),
		},
		YAxis: chart.YAxis{
			Name:      cfg.YLabel,
			NameStyle: labelStyle,
			Style:     tickStyle,
			Range:     paddedRange(ds.Distances),
		},
		Series: []chart.Series{series},
	}

	if cfg.Grid {
		grid := chart.Style{
			StrokeColor:     gridColor,
			StrokeWidth:     px(0.8),
			StrokeDashArray: []float64{px(3.7), px(1.6)},
		}
		c.XAxis.GridMajorStyle = grid
		c.YAxis.GridMajorStyle = grid
	} else {
		hidden := chart.Style{Hidden: true}
		c.XAxis.GridMajorStyle, c.XAxis.GridMinorStyle = hidden, hidden
		c.YAxis.GridMajorStyle, c.YAxis.GridMinorStyle = hidden, hidden
	}

	if cfg.StatsBox && s != nil {
		c.Elements = append(c.Elements, statsBox(report.AnnotationLines(s), statsBoxStyle{
			font:       fonts.regular,
			fontSize:   cfg.AnnotationFontSize,
			padding:    ipx(cfg.AnnotationFontSize * 0.5),
			radius:     ipx(cfg.AnnotationFontSize * 0.3),
			strokeSize: px(0.8),
			insetX:     0.02,
			insetY:     0.03,
		}))
	}

	return c, nil
}

// paddedRange returns an explicit axis range when the values collapse to a
// single point, which go-chart refuses to scale. Otherwise it returns nil so
// the axis auto-ranges.
func paddedRange(values []float64) chart.Range {
	if len(values) == 0 {
		return nil
	}
	lo, hi := values[0], values[0]
	for _, v := range values[1:] {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	if lo != hi || !finite(lo) {
		return nil
	}
	pad := math.Abs(lo) * 0.05
	if pad == 0 {
		pad = 0.5
	}
	return &chart.ContinuousRange{Min: lo - pad, Max: hi + pad}
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func pointsToPixels(points, dpi float64) float64 {
	return points * dpi / 72
}

func parseColor(hex string) (drawing.Color, error) {
	h := strings.TrimPrefix(hex, "#")
	if len(h) != 6 {
		return drawing.Color{}, fmt.Errorf("invalid color %q", hex)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return drawing.Color{}, fmt.Errorf("invalid color %q: %w", hex, err)
	}
	return drawing.Color{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 255}, nil
}
