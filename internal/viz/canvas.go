package viz

import (
	"math"
	"strings"
)

// Braille Patterns: 2x4 dots
// 1 4
// 2 5
// 3 6
// 7 8
//
// Unicode offset 0x2800
var pixelMap = [4][2]int{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

const brailleBlank = 0x2800

type Canvas struct {
	Width, Height int
	Grid          [][]rune
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{
		Width:  w,
		Height: h,
		Grid:   make([][]rune, h),
	}
	for i := range c.Grid {
		c.Grid[i] = make([]rune, w)
		for j := range c.Grid[i] {
			c.Grid[i][j] = brailleBlank
		}
	}
	return c
}

// Set turns on the dot at sub-pixel (x, y). The canvas is Width*2 by
// Height*4 sub-pixels with y growing downwards.
func (c *Canvas) Set(x, y int) {
	if x < 0 || y < 0 {
		return
	}

	col := x / 2
	row := y / 4
	if col >= c.Width || row >= c.Height {
		return
	}

	c.Grid[row][col] |= rune(pixelMap[y%4][x%2])
}

// IsSet reports whether the dot at sub-pixel (x, y) is on.
func (c *Canvas) IsSet(x, y int) bool {
	if x < 0 || y < 0 || x/2 >= c.Width || y/4 >= c.Height {
		return false
	}
	return c.Grid[y/4][x/2]&rune(pixelMap[y%4][x%2]) != 0
}

func (c *Canvas) Clear() {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = brailleBlank
		}
	}
}

// Bounds is the data rectangle mapped onto a canvas.
type Bounds struct {
	MinX, MaxX, MinY, MaxY float64
}

// BoundsOf returns the bounding box of the finite points, widened when it
// is degenerate.
func BoundsOf(xs, ys []float64) Bounds {
	b := Bounds{math.Inf(1), math.Inf(-1), math.Inf(1), math.Inf(-1)}
	for i := range xs {
		if i >= len(ys) || math.IsNaN(xs[i]) || math.IsNaN(ys[i]) || math.IsInf(xs[i], 0) || math.IsInf(ys[i], 0) {
			continue
		}
		b.MinX, b.MaxX = math.Min(b.MinX, xs[i]), math.Max(b.MaxX, xs[i])
		b.MinY, b.MaxY = math.Min(b.MinY, ys[i]), math.Max(b.MaxY, ys[i])
	}
	if b.MinX > b.MaxX {
		return Bounds{-1, 1, -1, 1}
	}
	if b.MinX == b.MaxX {
		b.MinX, b.MaxX = b.MinX-1, b.MaxX+1
	}
	if b.MinY == b.MaxY {
		b.MinY, b.MaxY = b.MinY-1, b.MaxY+1
	}
	return b
}

// Plot sets the dot nearest to data point (x, y). Points outside b are
// dropped.
func (c *Canvas) Plot(b Bounds, x, y float64) {
	if x < b.MinX || x > b.MaxX || y < b.MinY || y > b.MaxY {
		return
	}
	w, h := c.Width*2-1, c.Height*4-1
	px := int(math.Round((x - b.MinX) / (b.MaxX - b.MinX) * float64(w)))
	py := h - int(math.Round((y-b.MinY)/(b.MaxY-b.MinY)*float64(h)))
	c.Set(px, py)
}

func (c *Canvas) String() string {
	var b strings.Builder
	for _, row := range c.Grid {
		b.WriteString(string(row) + "\n")
	}
	return b.String()
}

// Scatter draws the pairs (xs[i], ys[i]) on a w by h character canvas.
func Scatter(xs, ys []float64, w, h int) string {
	c := NewCanvas(w, h)
	b := BoundsOf(xs, ys)
	for i := range xs {
		if i < len(ys) {
			c.Plot(b, xs[i], ys[i])
		}
	}
	return c.String()
}
