package service

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math"
	"sort"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/acailab/goaltrack/internal/domain"
)

// Chart palette, shared by the pie and line renderers.
var chartPalette = []color.RGBA{
	{R: 0x66, G: 0x7e, B: 0xea, A: 0xff},
	{R: 0x76, G: 0x4b, B: 0xa2, A: 0xff},
	{R: 0xf0, G: 0x93, B: 0xfb, A: 0xff},
	{R: 0x4f, G: 0xac, B: 0xfe, A: 0xff},
}

var (
	chartBackground = color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	chartAxis       = color.RGBA{R: 0x55, G: 0x55, B: 0x55, A: 0xff}
	chartText       = color.RGBA{R: 0x22, G: 0x22, B: 0x22, A: 0xff}
)

// RenderStatusPie draws a pie chart of goal counts keyed by status and
// returns it as PNG bytes. Slices are ordered by status name so the
// output is deterministic for a given input.
func RenderStatusPie(counts map[string]int) ([]byte, error) {
	statuses := make([]string, 0, len(counts))
	total := 0
	for status, n := range counts {
		if n <= 0 {
			continue
		}
		statuses = append(statuses, status)
		total += n
	}
	if total == 0 {
		return nil, fmt.Errorf("nothing to draw")
	}
	sort.Strings(statuses)

	const size = 480
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	fill(img, chartBackground)

	// Cumulative slice boundaries as fractions of the full circle.
	bounds := make([]float64, 0, len(statuses)+1)
	acc := 0.0
	bounds = append(bounds, 0)
	for _, status := range statuses {
		acc += float64(counts[status]) / float64(total)
		bounds = append(bounds, acc)
	}

	const (
		cx     = size / 2
		cy     = size/2 + 20
		radius = 170
	)

	for y := cy - radius; y <= cy+radius; y++ {
		for x := cx - radius; x <= cx+radius; x++ {
			dx := float64(x - cx)
			dy := float64(y - cy)
			if dx*dx+dy*dy > radius*radius {
				continue
			}
			// Angle measured clockwise from 12 o'clock, in [0, 1).
			frac := (math.Atan2(dx, -dy) + 2*math.Pi) / (2 * math.Pi)
			frac = math.Mod(frac, 1)
			for i := range statuses {
				if frac >= bounds[i] && frac < bounds[i+1] {
					img.Set(x, y, chartPalette[i%len(chartPalette)])
					break
				}
			}
		}
	}

	// Legend across the top: colored swatch, status name, and count.
	lx, ly := 20, 20
	for i, status := range statuses {
		swatch := image.Rect(lx, ly-9, lx+10, ly+1)
		for y := swatch.Min.Y; y < swatch.Max.Y; y++ {
			for x := swatch.Min.X; x < swatch.Max.X; x++ {
				img.Set(x, y, chartPalette[i%len(chartPalette)])
			}
		}
		pct := 100 * float64(counts[status]) / float64(total)
		drawLabel(img, lx+14, ly, fmt.Sprintf("%s: %d (%.1f%%)", status, counts[status], pct))
		ly += 16
	}
	drawLabel(img, size/2-70, size-12, "goals by status")

	return encodePNG(img)
}

// RenderSensorSeries draws a 2x2 grid of line charts, one per sensor
// metric, and returns it as PNG bytes.
func RenderSensorSeries(readings []domain.SensorReading, days int) ([]byte, error) {
	if len(readings) == 0 {
		return nil, fmt.Errorf("nothing to draw")
	}

	const (
		width   = 840
		height  = 620
		cellW   = width / 2
		cellH   = (height - 20) / 2
		padLeft = 50
		padTop  = 30
		padBot  = 25
		padRgt  = 15
	)

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	fill(img, chartBackground)
	drawLabel(img, width/2-80, 14, fmt.Sprintf("sensor data, last %d days", days))

	panels := []struct {
		title string
		value func(domain.SensorReading) float64
		col   int
		row   int
	}{
		{"temperature (C)", func(r domain.SensorReading) float64 { return r.Temperature }, 0, 0},
		{"humidity (%)", func(r domain.SensorReading) float64 { return r.Humidity }, 1, 0},
		{"soil moisture (%)", func(r domain.SensorReading) float64 { return r.SoilMoisture }, 0, 1},
		{"light intensity (lux)", func(r domain.SensorReading) float64 { return r.LightIntensity }, 1, 1},
	}

	for i, p := range panels {
		ox := p.col * cellW
		oy := 20 + p.row*cellH

		plot := image.Rect(ox+padLeft, oy+padTop, ox+cellW-padRgt, oy+cellH-padBot)
		drawLabel(img, ox+padLeft, oy+padTop-8, p.title)

		// Axes.
		drawHLine(img, plot.Min.X, plot.Max.X, plot.Max.Y, chartAxis)
		drawVLine(img, plot.Min.X, plot.Min.Y, plot.Max.Y, chartAxis)

		values := make([]float64, len(readings))
		lo, hi := math.Inf(1), math.Inf(-1)
		for j, r := range readings {
			values[j] = p.value(r)
			lo = math.Min(lo, values[j])
			hi = math.Max(hi, values[j])
		}
		if hi == lo {
			hi = lo + 1
		}

		drawLabel(img, ox+6, plot.Min.Y+6, fmt.Sprintf("%.0f", hi))
		drawLabel(img, ox+6, plot.Max.Y, fmt.Sprintf("%.0f", lo))

		lineColor := chartPalette[i%len(chartPalette)]
		prevX, prevY := 0, 0
		for j, v := range values {
			x := plot.Min.X
			if len(values) > 1 {
				x += j * (plot.Dx() - 1) / (len(values) - 1)
			}
			y := plot.Max.Y - int(float64(plot.Dy()-1)*(v-lo)/(hi-lo))
			if j > 0 {
				drawLine(img, prevX, prevY, x, y, lineColor)
			} else {
				img.Set(x, y, lineColor)
			}
			prevX, prevY = x, y
		}
	}

	return encodePNG(img)
}

func encodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}

func fill(img *image.RGBA, c color.RGBA) {
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			img.Set(x, y, c)
		}
	}
}

func drawLabel(img *image.RGBA, x, y int, text string) {
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(chartText),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(text)
}

func drawHLine(img *image.RGBA, x0, x1, y int, c color.RGBA) {
	for x := x0; x <= x1; x++ {
		img.Set(x, y, c)
	}
}

func drawVLine(img *image.RGBA, x, y0, y1 int, c color.RGBA) {
	for y := y0; y <= y1; y++ {
		img.Set(x, y, c)
	}
}

// drawLine draws a line segment using Bresenham's algorithm.
func drawLine(img *image.RGBA, x0, y0, x1, y1 int, c color.RGBA) {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy
	for {
		img.Set(x0, y0, c)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
