package vmath

import (
	"fmt"
	"math"
)

// Point is a position in world space, y grows downward
type Point struct {
	X, Y float64
}

// Vec is a displacement between two Points
type Vec struct {
	X, Y float64
}

// Pt returns the point (x, y)
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

// V returns the vector ⟨x, y⟩
func V(x, y float64) Vec {
	return Vec{X: x, Y: y}
}

func (p Point) String() string {
	return fmt.Sprintf("(%g, %g)", p.X, p.Y)
}

// Add translates p by v
func (p Point) Add(v Vec) Point {
	return Point{X: p.X + v.X, Y: p.Y + v.Y}
}

// Sub returns the vector from o to p
func (p Point) Sub(o Point) Vec {
	return Vec{X: p.X - o.X, Y: p.Y - o.Y}
}

// Distance returns euclidean distance between p and o
func (p Point) Distance(o Point) float64 {
	return math.Hypot(p.X-o.X, p.Y-o.Y)
}

// ApproxEqual reports whether both coordinates differ by at most eps
func (p Point) ApproxEqual(o Point, eps float64) bool {
	return math.Abs(p.X-o.X) <= eps && math.Abs(p.Y-o.Y) <= eps
}

// IsNaN reports whether either coordinate is NaN
func (p Point) IsNaN() bool {
	return math.IsNaN(p.X) || math.IsNaN(p.Y)
}

func (v Vec) String() string {
	return fmt.Sprintf("⟨%g, %g⟩", v.X, v.Y)
}

// Scale multiplies both components by s
func (v Vec) Scale(s float64) Vec {
	return Vec{X: v.X * s, Y: v.Y * s}
}

// Div divides both components by s, caller guarantees s != 0
func (v Vec) Div(s float64) Vec {
	return Vec{X: v.X / s, Y: v.Y / s}
}

// Magnitude returns the euclidean length
func (v Vec) Magnitude() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y)
}

// Angle returns atan2(y, x), 0 for the zero vector
func (v Vec) Angle() float64 {
	return math.Atan2(v.Y, v.X)
}

// Dot returns the dot product
func (v Vec) Dot(o Vec) float64 {
	return v.X*o.X + v.Y*o.Y
}

// FromAngle returns a vector of the given length pointing along angle
func FromAngle(angle, length float64) Vec {
	sin, cos := math.Sincos(angle)
	return Vec{X: length * cos, Y: length * sin}
}

// Clamp limits v into [lo, hi]
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// ClampInt limits v into [lo, hi]
func ClampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// DistanceToSegment returns the shortest distance from p to the segment a-b
// Degenerate segments (a == b) measure distance to a
func DistanceToSegment(p, a, b Point) float64 {
	ab := b.Sub(a)
	lenSq := ab.Dot(ab)
	if lenSq == 0 {
		return p.Distance(a)
	}
	t := Clamp(p.Sub(a).Dot(ab)/lenSq, 0, 1)
	return p.Distance(a.Add(ab.Scale(t)))
}
