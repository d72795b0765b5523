package history

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"time"

	"github.com/poundbot/gamewatch/types"

	"golang.org/x/image/colornames"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// Chart dimensions in pixels.
const (
	ChartWidth  = 720
	ChartHeight = 240

	marginLeft   = 40
	marginRight  = 12
	marginTop    = 12
	marginBottom = 28
)

var (
	chartBackground = colornames.White
	chartGrid       = colornames.Gainsboro
	chartAxis       = colornames.Dimgray
	chartLine       = colornames.Seagreen
	chartFill       = color.NRGBA{R: 46, G: 139, B: 87, A: 64}
	chartText       = colornames.Black
)

type plotArea struct {
	x0, y0, x1, y1 int
	now            time.Time
	window         time.Duration
	max            int
}

func (p plotArea) x(at time.Time) int {
	ago := p.now.Sub(at)
	frac := 1 - float64(ago)/float64(p.window)
	return p.x0 + int(frac*float64(p.x1-p.x0))
}

func (p plotArea) y(players int) int {
	if players > p.max {
		players = p.max
	}
	return p.y1 - int(float64(players)/float64(p.max)*float64(p.y1-p.y0))
}

// RenderChart writes a PNG line chart of samples over the window ending at
// now. The X axis is labelled in hours ago and the Y axis spans [0, max].
func RenderChart(w io.Writer, samples []types.HistoricSample, now time.Time, max int, window time.Duration) error {
	if max <= 0 {
		max = 1
	}
	if window <= 0 {
		window = DefaultWindow
	}
	samples = Prune(samples, now.Add(-window))

	img := image.NewRGBA(image.Rect(0, 0, ChartWidth, ChartHeight))
	draw.Draw(img, img.Bounds(), image.NewUniform(chartBackground), image.Point{}, draw.Src)

	p := plotArea{
		x0: marginLeft, y0: marginTop,
		x1: ChartWidth - marginRight, y1: ChartHeight - marginBottom,
		now: now, window: window, max: max,
	}

	hours := int(window / time.Hour)
	if hours < 1 {
		hours = 1
	}
	for h := 0; h <= hours; h++ {
		x := p.x(now.Add(-time.Duration(h) * window / time.Duration(hours)))
		vline(img, x, p.y0, p.y1, chartGrid)
		label := "now"
		if h > 0 {
			label = fmt.Sprintf("-%dh", h*int(window.Hours())/hours)
		}
		text(img, x-len(label)*basicfont.Face7x13.Advance/2, ChartHeight-10, label)
	}

	for _, v := range []int{0, max / 2, max} {
		y := p.y(v)
		hline(img, p.x0, p.x1, y, chartGrid)
		label := fmt.Sprint(v)
		text(img, p.x0-6-len(label)*basicfont.Face7x13.Advance, y+4, label)
	}

	vline(img, p.x0, p.y0, p.y1, chartAxis)
	hline(img, p.x0, p.x1, p.y1, chartAxis)

	for i, s := range samples {
		x, y := p.x(s.At), p.y(s.Players)
		vline(img, x, y, p.y1, chartFill)
		if i > 0 {
			prev := samples[i-1]
			line(img, p.x(prev.At), p.y(prev.Players), x, y, chartLine)
		}
	}

	return png.Encode(w, img)
}

func hline(img draw.Image, x0, x1, y int, c color.Color) {
	for x := x0; x <= x1; x++ {
		img.Set(x, y, c)
	}
}

func vline(img draw.Image, x, y0, y1 int, c color.Color) {
	if y0 > y1 {
		y0, y1 = y1, y0
	}
	for y := y0; y <= y1; y++ {
		blend(img, x, y, c)
	}
}

// line draws with Bresenham's algorithm.
func line(img draw.Image, x0, y0, x1, y1 int, c color.Color) {
	dx, dy := abs(x1-x0), -abs(y1-y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	e := dx + dy
	for {
		img.Set(x0, y0, c)
		img.Set(x0, y0-1, c)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			x0 += sx
		}
		if e2 <= dx {
			e += dx
			y0 += sy
		}
	}
}

func blend(img draw.Image, x, y int, c color.Color) {
	draw.Draw(img, image.Rect(x, y, x+1, y+1), image.NewUniform(c), image.Point{}, draw.Over)
}

func text(img draw.Image, x, y int, s string) {
	d := font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(chartText),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(s)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
