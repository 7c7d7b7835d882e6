package chart

import (
	"errors"
	"fmt"
	"io"
	"math"

	svg "github.com/ajstarks/svgo"
)

var ErrSeriesLength = errors.New("series length must be len(categories)+1")

type Options struct {
	Width       int
	Height      int
	Title       string
	TargetLabel string
	ActualLabel string
	Rings       int
}

func DefaultOptions() Options {
	return Options{
		Width:       800,
		Height:      600,
		Title:       "Radar Chart – Organisationsdiagnostik",
		TargetLabel: "SOLL",
		ActualLabel: "IST",
		Rings:       4,
	}
}

const (
	colorTarget = "#1f77b4"
	colorActual = "#ff7f0e"
	colorGrid   = "#cccccc"
)

// errWriter 记录第一次写入错误，svgo 本身不返回错误
type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) Write(p []byte) (int, error) {
	if e.err != nil {
		return 0, e.err
	}
	n, err := e.w.Write(p)
	e.err = err
	return n, err
}

// RenderRadar 绘制极坐标雷达图（0 弧度在右侧，逆时针）。
// angles/target/actual 为闭合形式，长度都是 len(categories)+1。
func RenderRadar(w io.Writer, categories []string, angles, target, actual []float64, opts Options) error {
	k := len(categories)
	if k == 0 || len(angles) != k+1 || len(target) != k+1 || len(actual) != k+1 {
		return ErrSeriesLength
	}
	if opts.Width <= 0 || opts.Height <= 0 {
		return fmt.Errorf("invalid canvas size %dx%d", opts.Width, opts.Height)
	}
	if opts.Rings <= 0 {
		opts.Rings = 4
	}

	p := newPlot(opts, scaleMax(target, actual))
	ew := &errWriter{w: w}
	canvas := svg.New(ew)
	canvas.Start(opts.Width, opts.Height)
	canvas.Title(opts.Title)
	canvas.Rect(0, 0, opts.Width, opts.Height, "fill:white")

	canvas.Text(opts.Width/2, 28, opts.Title, "text-anchor:middle;font-family:sans-serif;font-size:18px")

	// 网格
	for j := 1; j <= opts.Rings; j++ {
		r := p.radius * j / opts.Rings
		canvas.Circle(p.cx, p.cy, r, "fill:none;stroke:"+colorGrid)
	}
	for i := 0; i < k; i++ {
		x, y := p.point(angles[i], p.max)
		canvas.Line(p.cx, p.cy, x, y, "stroke:"+colorGrid)

		lx, ly := p.point(angles[i], p.max*1.12)
		canvas.Text(lx, ly+4, categories[i], "font-family:sans-serif;font-size:12px;text-anchor:"+anchor(angles[i]))
	}

	tx, ty := p.polygon(angles, target)
	ax, ay := p.polygon(angles, actual)

	canvas.Polyline(tx, ty, "fill:none;stroke-width:2;stroke:"+colorTarget)
	canvas.Polygon(ax, ay, "stroke:none;fill-opacity:0.25;fill:"+colorActual)
	canvas.Polyline(ax, ay, "fill:none;stroke-width:2;stroke-dasharray:6,4;stroke:"+colorActual)

	// 图例
	lx := opts.Width - 130
	canvas.Line(lx, 50, lx+30, 50, "stroke-width:2;stroke:"+colorTarget)
	canvas.Text(lx+38, 54, opts.TargetLabel, "font-family:sans-serif;font-size:12px")
	canvas.Line(lx, 70, lx+30, 70, "stroke-width:2;stroke-dasharray:6,4;stroke:"+colorActual)
	canvas.Text(lx+38, 74, opts.ActualLabel, "font-family:sans-serif;font-size:12px")

	canvas.End()
	return ew.err
}

type plot struct {
	cx, cy int
	radius int
	max    float64
}

func newPlot(opts Options, max float64) plot {
	size := opts.Width
	if opts.Height < size {
		size = opts.Height
	}
	return plot{
		cx:     opts.Width / 2,
		cy:     opts.Height/2 + 20,
		radius: size/2 - 80,
		max:    max,
	}
}

func (p plot) point(theta, v float64) (int, int) {
	r := float64(p.radius) * v / p.max
	x := float64(p.cx) + r*math.Cos(theta)
	y := float64(p.cy) - r*math.Sin(theta)
	return int(math.Round(x)), int(math.Round(y))
}

func (p plot) polygon(angles, values []float64) ([]int, []int) {
	xs := make([]int, len(values))
	ys := make([]int, len(values))
	for i := range values {
		xs[i], ys[i] = p.point(angles[i], values[i])
	}
	return xs, ys
}

// scaleMax 向上取整到 10 的倍数，至少为 10
func scaleMax(series ...[]float64) float64 {
	m := 0.0
	for _, s := range series {
		for _, v := range s {
			if v > m {
				m = v
			}
		}
	}
	m = math.Ceil(m/10) * 10
	if m < 10 {
		m = 10
	}
	return m
}

func anchor(theta float64) string {
	c := math.Cos(theta)
	switch {
	case c > 0.1:
		return "start"
	case c < -0.1:
		return "end"
	default:
		return "middle"
	}
}
