package render

import (
	"math"

	"github.com/lixenwraith/kinematics/chain"
	"github.com/lixenwraith/kinematics/vmath"
	"github.com/lucasb-eyer/go-colorful"
)

// Braille cell geometry: each terminal cell holds a 2×4 dot matrix
const (
	DotsPerCellX = 2
	DotsPerCellY = 4

	brailleBase = 0x2800

	// Minimum stroke radius in dots so hairlines stay connected
	minStrokeRadius = 0.5
)

// brailleBits[y][x] is the bit for dot (x, y) inside a cell
var brailleBits = [DotsPerCellY][DotsPerCellX]uint8{
	{0x01, 0x08},
	{0x02, 0x10},
	{0x04, 0x20},
	{0x40, 0x80},
}

// Canvas rasterizes world-space strokes into braille cells
// One dot covers Scale world units on both axes
type Canvas struct {
	cols, rows int
	scale      float64
	masks      []uint8
	colors     []colorful.Color
}

// NewCanvas creates a canvas of cols×rows cells
func NewCanvas(cols, rows int, scale float64) *Canvas {
	c := &Canvas{scale: scale}
	c.Resize(cols, rows)
	return c
}

// Resize changes the cell dimensions and clears the canvas
func (c *Canvas) Resize(cols, rows int) {
	cols = max(cols, 0)
	rows = max(rows, 0)
	if cols == c.cols && rows == c.rows && c.masks != nil {
		c.Clear()
		return
	}
	c.cols, c.rows = cols, rows
	c.masks = make([]uint8, cols*rows)
	c.colors = make([]colorful.Color, cols*rows)
}

// Clear removes every dot
func (c *Canvas) Clear() {
	clear(c.masks)
}

// Size returns cell dimensions
func (c *Canvas) Size() (cols, rows int) {
	return c.cols, c.rows
}

// DotSize returns dot dimensions
func (c *Canvas) DotSize() (w, h int) {
	return c.cols * DotsPerCellX, c.rows * DotsPerCellY
}

// Scale returns world units per dot
func (c *Canvas) Scale() float64 {
	return c.scale
}

// Set lights dot (x, y), out of range dots are ignored
func (c *Canvas) Set(x, y int, color colorful.Color) {
	w, h := c.DotSize()
	if x < 0 || y < 0 || x >= w || y >= h {
		return
	}
	idx := (y/DotsPerCellY)*c.cols + x/DotsPerCellX
	c.masks[idx] |= brailleBits[y%DotsPerCellY][x%DotsPerCellX]
	c.colors[idx] = color
}

// Dot reports whether dot (x, y) is lit
func (c *Canvas) Dot(x, y int) bool {
	w, h := c.DotSize()
	if x < 0 || y < 0 || x >= w || y >= h {
		return false
	}
	idx := (y/DotsPerCellY)*c.cols + x/DotsPerCellX
	return c.masks[idx]&brailleBits[y%DotsPerCellY][x%DotsPerCellX] != 0
}

// Cell returns the braille rune and color for a cell, ok false when no dot is lit
func (c *Canvas) Cell(col, row int) (r rune, color colorful.Color, ok bool) {
	if col < 0 || row < 0 || col >= c.cols || row >= c.rows {
		return 0, colorful.Color{}, false
	}
	idx := row*c.cols + col
	mask := c.masks[idx]
	if mask == 0 {
		return 0, colorful.Color{}, false
	}
	return rune(brailleBase + int(mask)), c.colors[idx], true
}

// CellToWorld maps the center of a terminal cell to world space
func (c *Canvas) CellToWorld(col, row int) vmath.Point {
	return vmath.Pt(
		float64(col*DotsPerCellX+DotsPerCellX/2)*c.scale,
		float64(row*DotsPerCellY+DotsPerCellY/2)*c.scale,
	)
}

// Stroke draws a line with round caps, strokes with non-positive width are invisible
func (c *Canvas) Stroke(l chain.Line) {
	if l.Width <= 0 || c.scale <= 0 {
		return
	}
	a := vmath.Pt(l.From.X/c.scale, l.From.Y/c.scale)
	b := vmath.Pt(l.To.X/c.scale, l.To.Y/c.scale)
	if a.IsNaN() || b.IsNaN() {
		return
	}
	radius := math.Max(l.Width/(2*c.scale), minStrokeRadius)

	// Clip in float space before converting so far off-screen strokes cannot overflow
	w, h := c.DotSize()
	x0 := math.Max(math.Floor(math.Min(a.X, b.X)-radius), 0)
	x1 := math.Min(math.Ceil(math.Max(a.X, b.X)+radius), float64(w-1))
	y0 := math.Max(math.Floor(math.Min(a.Y, b.Y)-radius), 0)
	y1 := math.Min(math.Ceil(math.Max(a.Y, b.Y)+radius), float64(h-1))
	if x0 > x1 || y0 > y1 {
		return
	}

	for y := int(y0); y <= int(y1); y++ {
		for x := int(x0); x <= int(x1); x++ {
			center := vmath.Pt(float64(x)+0.5, float64(y)+0.5)
			if vmath.DistanceToSegment(center, a, b) <= radius {
				c.Set(x, y, l.Color)
			}
		}
	}
}

// StrokeAll draws every line in order
func (c *Canvas) StrokeAll(lines []chain.Line) {
	for i := range lines {
		c.Stroke(lines[i])
	}
}
