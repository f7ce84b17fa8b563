package driver

import (
	"github.com/lixenwraith/kinematics/chain"
	"github.com/lixenwraith/kinematics/parameter"
	"github.com/lixenwraith/kinematics/tracker"
	"github.com/lixenwraith/kinematics/vmath"
	"go.uber.org/zap"
)

// Input is the pointer state read once per frame
type Input struct {
	Pointer vmath.Point
	Present bool
}

// Frame is the result of one Step, ready for a renderer
type Frame struct {
	Index       uint64
	Target      vmath.Point
	State       tracker.State
	Transition  bool // State differs from the previous frame
	Regenerated bool
	Params      parameter.Params
	Lines       []chain.Line
}

// Driver runs the per-frame pipeline: regenerate-if-dirty, resolve target, update, extract
// Step never blocks and must be called from a single goroutine
type Driver struct {
	chain   *chain.Chain
	tracker *tracker.Tracker
	params  *parameter.Store
	logger  *zap.Logger

	frame uint64
}

// New wires a driver, a nil logger disables logging
func New(c *chain.Chain, t *tracker.Tracker, params *parameter.Store, logger *zap.Logger) *Driver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Driver{
		chain:   c,
		tracker: t,
		params:  params,
		logger:  logger.Named("driver"),
	}
}

// Step advances the simulation by exactly one frame
func (d *Driver) Step(in Input) Frame {
	params, changes := d.params.Take()

	if changes.Has(parameter.ChangedPaused) {
		d.tracker.SetPaused(params.Paused)
	}

	// Regenerate before resolving so the wander check sees the resized tail
	regenerated := changes.Geometry() && d.chain.Regenerate(params.ChainConfig(), d.tracker.Effective())
	if regenerated {
		d.logger.Debug("chain regenerated",
			zap.Uint64("frame", d.frame),
			zap.Stringer("changed", changes),
			zap.Int("segments", params.SegmentCount),
			zap.Float64("length", params.SegmentLength),
			zap.Float64("width", params.SegmentWidth),
			zap.Float64("width_growth", params.WidthGrowth),
		)
	}

	edge, hasTail := d.chain.TailEdge()
	target := d.tracker.Resolve(tracker.Observation{
		Pointer:        in.Pointer,
		PointerPresent: in.Present,
		TailEdgeX:      edge,
		TailKnown:      hasTail,
	})
	transition := d.tracker.Transitioned()
	if transition {
		d.logger.Debug("tracker state",
			zap.Uint64("frame", d.frame),
			zap.Stringer("state", d.tracker.State()),
			zap.Stringer("target", target),
		)
	}

	d.chain.Update(target)

	f := Frame{
		Index:       d.frame,
		Target:      target,
		State:       d.tracker.State(),
		Transition:  transition,
		Regenerated: regenerated,
		Params:      params,
		Lines:       d.chain.Lines(),
	}
	d.frame++
	return f
}

// Chain exposes the driven chain for inspection
func (d *Driver) Chain() *chain.Chain {
	return d.chain
}

// Tracker exposes the target tracker for inspection
func (d *Driver) Tracker() *tracker.Tracker {
	return d.tracker
}

// Params exposes the parameter store the driver reads from
func (d *Driver) Params() *parameter.Store {
	return d.params
}

// Frames returns the number of completed steps
func (d *Driver) Frames() uint64 {
	return d.frame
}
