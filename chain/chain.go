package chain

import (
	"github.com/lixenwraith/kinematics/vmath"
	"github.com/lucasb-eyer/go-colorful"
)

// Config is the geometry a chain is regenerated against
type Config struct {
	Count       int
	Length      float64
	BaseWidth   float64
	WidthGrowth float64 // Per-index width delta, may be negative
}

// WidthAt returns the stroke width for segment index i
func (c Config) WidthAt(i int) float64 {
	return c.BaseWidth + c.WidthGrowth*float64(i)
}

// Chain is an ordered run of segments, index 0 is the head
type Chain struct {
	segments []Segment
	color    colorful.Color

	applied    Config
	configured bool
}

// New creates an empty chain, call Regenerate before the first Update
func New(color colorful.Color) *Chain {
	return &Chain{color: color}
}

// Regenerate re-skins existing segments and then resizes the chain to cfg.Count
// Survivors are re-aimed at anchor before any structural change so the head stays continuous
// Appended segments are laid out along +X and receive their orientation on the next Update
// It reports false when cfg matches the applied configuration and nothing was touched
func (c *Chain) Regenerate(cfg Config, anchor vmath.Point) bool {
	if cfg.Count < 0 {
		cfg.Count = 0
	}
	if c.configured && c.applied == cfg && len(c.segments) == cfg.Count {
		return false
	}

	for i := range c.segments {
		c.segments[i].SetDimensions(cfg.Length, cfg.WidthAt(i))
	}
	c.Update(anchor)

	switch prev := len(c.segments); {
	case prev < cfg.Count:
		for i := prev; i < cfg.Count; i++ {
			start := vmath.Pt(cfg.Length*float64(i), 0)
			c.segments = append(c.segments, NewSegment(start, cfg.Length, cfg.WidthAt(i)))
		}
	case prev > cfg.Count:
		// Zero the dropped tail so the backing array does not pin stale geometry
		clear(c.segments[cfg.Count:])
		c.segments = c.segments[:cfg.Count]
	}

	c.applied = cfg
	c.configured = true
	return true
}

// Update propagates target backward from the head
// Each segment follows the previous segment's new Start, which makes neighbors abut
func (c *Chain) Update(target vmath.Point) {
	for i := range c.segments {
		c.segments[i].Follow(target)
		target = c.segments[i].Start
	}
}

// Lines returns one stroke per segment, head to tail
func (c *Chain) Lines() []Line {
	lines := make([]Line, len(c.segments))
	for i := range c.segments {
		lines[i] = c.segments[i].Line(c.color)
	}
	return lines
}

// Len returns the number of segments
func (c *Chain) Len() int {
	return len(c.segments)
}

// Segments returns a copy of the segments, head first
func (c *Chain) Segments() []Segment {
	out := make([]Segment, len(c.segments))
	copy(out, c.segments)
	return out
}

// Segment returns the segment at index i
func (c *Chain) Segment(i int) Segment {
	return c.segments[i]
}

// Head returns segment 0
func (c *Chain) Head() (Segment, bool) {
	if len(c.segments) == 0 {
		return Segment{}, false
	}
	return c.segments[0], true
}

// Tail returns the last segment
func (c *Chain) Tail() (Segment, bool) {
	if len(c.segments) == 0 {
		return Segment{}, false
	}
	return c.segments[len(c.segments)-1], true
}

// TailEdge returns the X of the tail segment's leading end
func (c *Chain) TailEdge() (float64, bool) {
	tail, ok := c.Tail()
	if !ok {
		return 0, false
	}
	return tail.End.X, true
}

// Config returns the last applied configuration
func (c *Chain) Config() Config {
	return c.applied
}
