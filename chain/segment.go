package chain

import (
	"github.com/lixenwraith/kinematics/vmath"
	"github.com/lucasb-eyer/go-colorful"
)

// DefaultColor is the stroke color used when none is configured
var DefaultColor = colorful.Color{R: 1, G: 1, B: 1}

// Line is a drawable stroke handed to the renderer
type Line struct {
	From  vmath.Point
	To    vmath.Point
	Width float64
	Color colorful.Color
}

// Segment is a single rigid link
// End is derived: End == Start + Length*(cos Angle, sin Angle) after every mutation
type Segment struct {
	Start  vmath.Point // Trailing end, toward the tail
	End    vmath.Point // Leading end, toward the head/target
	Length float64
	Width  float64
	Angle  float64 // Radians, Start→End
}

// NewSegment creates a segment at start pointing along angle 0
func NewSegment(start vmath.Point, length, width float64) Segment {
	s := Segment{
		Start:  start,
		Length: length,
		Width:  width,
	}
	s.RecomputeEnd()
	return s
}

// Follow re-aims the segment so End lands on target while keeping Length
// A target equal to Start yields a zero direction: Start stays put and Angle becomes atan2(0, 0)
func (s *Segment) Follow(target vmath.Point) {
	direction := target.Sub(s.Start)
	s.Angle = direction.Angle()

	// Unit and zero vectors are left as is, the latter avoids dividing by zero
	if mag := direction.Magnitude(); mag != 0 && mag != 1 {
		direction = direction.Div(mag)
	}

	s.Start = target.Add(direction.Scale(-s.Length))
	s.RecomputeEnd()
}

// RecomputeEnd derives End from Start, Angle and Length
func (s *Segment) RecomputeEnd() {
	s.End = s.Start.Add(vmath.FromAngle(s.Angle, s.Length))
}

// SetDimensions overwrites Length and Width, Start and Angle are preserved
func (s *Segment) SetDimensions(length, width float64) {
	s.Length = length
	s.Width = width
	s.RecomputeEnd()
}

// Line returns the stroke for this segment
func (s *Segment) Line(color colorful.Color) Line {
	return Line{
		From:  s.Start,
		To:    s.End,
		Width: s.Width,
		Color: color,
	}
}
