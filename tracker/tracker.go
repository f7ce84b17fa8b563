package tracker

import (
	"github.com/lixenwraith/kinematics/vmath"
)

// State is the tracker's per-frame resolution mode
type State uint8

const (
	StateActive    State = iota // Pointer present, following it
	StatePaused                 // Target frozen regardless of input
	StateWandering              // Pointer absent, target drifting
	StateResting                // Pointer absent, chain off-frame, drift zeroed
)

var stateNames = [...]string{
	StateActive:    "active",
	StatePaused:    "paused",
	StateWandering: "wandering",
	StateResting:   "resting",
}

func (s State) String() string {
	if int(s) < len(stateNames) {
		return stateNames[s]
	}
	return "unknown"
}

// DefaultDrift moves the target toward the lower-left in y-down space
var DefaultDrift = vmath.V(-1, 1)

// Observation is what the tracker reads once per frame
type Observation struct {
	Pointer        vmath.Point
	PointerPresent bool

	// X of the tail segment's leading end; TailKnown false for an empty chain
	TailEdgeX float64
	TailKnown bool
}

// Tracker decides which point the chain aims at each frame
type Tracker struct {
	effective vmath.Point
	drift     vmath.Vec
	paused    bool

	state      State
	prev       State
	resolved   bool
	hasHistory bool
}

// New creates a tracker whose target starts at origin
func New(origin vmath.Point, drift vmath.Vec) *Tracker {
	return &Tracker{
		effective: origin,
		drift:     drift,
		state:     StateWandering,
	}
}

// SetPaused freezes or releases the target, takes effect on the next Resolve
func (t *Tracker) SetPaused(paused bool) {
	t.paused = paused
}

// Paused reports the pause flag
func (t *Tracker) Paused() bool {
	return t.paused
}

// Effective returns the last applied target
func (t *Tracker) Effective() vmath.Point {
	return t.effective
}

// State returns the state chosen by the last Resolve
func (t *Tracker) State() State {
	return t.state
}

// Drift returns the per-frame wander vector
func (t *Tracker) Drift() vmath.Vec {
	return t.drift
}

// Transitioned reports whether the last Resolve entered a different state
// The first Resolve always counts as a transition
func (t *Tracker) Transitioned() bool {
	return t.resolved && (!t.hasHistory || t.prev != t.state)
}

// Resolve advances one frame and returns the effective target
func (t *Tracker) Resolve(obs Observation) vmath.Point {
	t.hasHistory = t.resolved
	t.prev = t.state
	t.resolved = true

	switch {
	case t.paused:
		t.state = StatePaused
	case obs.PointerPresent:
		t.state = StateActive
		t.effective = obs.Pointer
	case !obs.TailKnown || obs.TailEdgeX > 0:
		t.state = StateWandering
		t.effective = t.effective.Add(t.drift)
	default:
		t.state = StateResting
	}

	return t.effective
}
