package plot

import (
	"github.com/golang/freetype/truetype"
	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// wheat at half opacity
var statsBoxFill = drawing.Color{R: 0xf5, G: 0xde, B: 0xb3, A: 128}

// statsBoxStyle describes the annotation box in pixels
type statsBoxStyle struct {
	font       *truetype.Font
	fontSize   float64
	padding    int
	radius     int
	strokeSize float64
	// insets are fractions of the plot area measured from its upper-right corner
	insetX float64
	insetY float64
}

// statsBox returns an element that draws lines right-aligned in a rounded box
// anchored to the upper-right corner of the plot area.
func statsBox(lines []string, style statsBoxStyle) chart.Renderable {
	return func(r chart.Renderer, canvasBox chart.Box, defaults chart.Style) {
		if len(lines) == 0 {
			return
		}
		r.ResetStyle()
		defer r.ResetStyle()

		font := style.font
		if font == nil {
			font = defaults.Font
		}
		r.SetFont(font)
		r.SetFontSize(style.fontSize)
		r.SetFontColor(drawing.ColorBlack)

		textWidth, lineHeight := 0, 0
		for _, line := range lines {
			tb := r.MeasureText(line)
			if tb.Width() > textWidth {
				textWidth = tb.Width()
			}
			if tb.Height() > lineHeight {
				lineHeight = tb.Height()
			}
		}
		lineSpacing := lineHeight / 3
		textHeight := len(lines)*lineHeight + (len(lines)-1)*lineSpacing

		right := canvasBox.Right - int(style.insetX*float64(canvasBox.Width()))
		top := canvasBox.Top + int(style.insetY*float64(canvasBox.Height()))
		box := chart.Box{
			Top:    top,
			Right:  right,
			Left:   right - textWidth - 2*style.padding,
			Bottom: top + textHeight + 2*style.padding,
		}

		r.SetFillColor(statsBoxFill)
		r.SetStrokeColor(drawing.ColorBlack.WithAlpha(128))
		r.SetStrokeWidth(style.strokeSize)
		roundedRect(r, box, style.radius)
		r.FillStroke()

		// FillStroke clears the path but not the text settings
		r.SetFont(font)
		r.SetFontSize(style.fontSize)
		r.SetFontColor(drawing.ColorBlack)
		y := box.Top + style.padding
		for _, line := range lines {
			y += lineHeight
			tb := r.MeasureText(line)
			r.Text(line, box.Right-style.padding-tb.Width(), y)
			y += lineSpacing
		}
	}
}

func roundedRect(r chart.Renderer, b chart.Box, radius int) {
	if limit := min(b.Width(), b.Height()) / 2; radius > limit {
		radius = limit
	}
	r.MoveTo(b.Left+radius, b.Top)
	r.LineTo(b.Right-radius, b.Top)
	r.QuadCurveTo(b.Right, b.Top, b.Right, b.Top+radius)
	r.LineTo(b.Right, b.Bottom-radius)
	r.QuadCurveTo(b.Right, b.Bottom, b.Right-radius, b.Bottom)
	r.LineTo(b.Left+radius, b.Bottom)
	r.QuadCurveTo(b.Left, b.Bottom, b.Left, b.Bottom-radius)
	r.LineTo(b.Left, b.Top+radius)
	r.QuadCurveTo(b.Left, b.Top, b.Left+radius, b.Top)
	r.Close()
}
