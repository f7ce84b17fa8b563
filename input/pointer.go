package input

import (
	"time"

	"github.com/lixenwraith/kinematics/vmath"
)

// Pointer tracks whether a pointer position is currently available
// Terminals never report the mouse leaving, so absence is inferred from focus loss and idle time
type Pointer struct {
	pos         vmath.Point
	lastMove    time.Time
	seen        bool
	focused     bool
	idleTimeout time.Duration // Zero disables the idle check
}

// NewPointer creates a pointer with no position yet
func NewPointer(idleTimeout time.Duration) *Pointer {
	return &Pointer{
		focused:     true,
		idleTimeout: idleTimeout,
	}
}

// Move records a pointer position observed at time at
func (p *Pointer) Move(pos vmath.Point, at time.Time) {
	p.pos = pos
	p.lastMove = at
	p.seen = true
	p.focused = true
}

// Focus records terminal focus changes
func (p *Pointer) Focus(focused bool) {
	p.focused = focused
}

// Position returns the last position and whether it still counts as present at now
func (p *Pointer) Position(now time.Time) (vmath.Point, bool) {
	if !p.seen || !p.focused {
		return p.pos, false
	}
	if p.idleTimeout > 0 && now.Sub(p.lastMove) > p.idleTimeout {
		return p.pos, false
	}
	return p.pos, true
}

// Forget drops the pointer until the next Move
func (p *Pointer) Forget() {
	p.seen = false
}
