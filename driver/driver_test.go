package driver

import (
	"testing"

	"github.com/lixenwraith/kinematics/chain"
	"github.com/lixenwraith/kinematics/parameter"
	"github.com/lixenwraith/kinematics/tracker"
	"github.com/lixenwraith/kinematics/vmath"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func newDriver(t *testing.T, p parameter.Params) (*Driver, *observer.ObservedLogs) {
	t.Helper()
	core, logs := observer.New(zap.DebugLevel)
	d := New(
		chain.New(chain.DefaultColor),
		tracker.New(vmath.Pt(0, 0), tracker.DefaultDrift),
		parameter.NewStore(p),
		zap.New(core),
	)
	return d, logs
}

func pointer(x, y float64) Input {
	return Input{Pointer: vmath.Pt(x, y), Present: true}
}

func TestStep_FirstFrameRegeneratesAndAims(t *testing.T) {
	d, logs := newDriver(t, parameter.Params{SegmentCount: 3, SegmentLength: 10, SegmentWidth: 1})

	f := d.Step(pointer(100, 0))

	assert.True(t, f.Regenerated)
	assert.True(t, f.Transition)
	assert.Equal(t, uint64(0), f.Index)
	assert.Equal(t, tracker.StateActive, f.State)
	require.Len(t, f.Lines, 3)

	// First frame aims the freshly built chain at the pointer
	wantFrom := []float64{90, 80, 70}
	for i, line := range f.Lines {
		assert.InDelta(t, wantFrom[i], line.From.X, 1e-9, "segment %d", i)
		assert.InDelta(t, wantFrom[i]+10, line.To.X, 1e-9, "segment %d", i)
	}

	assert.Equal(t, 1, logs.FilterMessage("chain regenerated").Len())
	assert.Equal(t, 1, logs.FilterMessage("tracker state").Len())
	assert.Equal(t, uint64(1), d.Frames())
}

func TestStep_NoRegenerateWithoutChanges(t *testing.T) {
	d, logs := newDriver(t, parameter.Default())
	d.Step(pointer(10, 10))

	for i := 0; i < 5; i++ {
		f := d.Step(pointer(10+float64(i), 10))
		assert.False(t, f.Regenerated, "frame %d", f.Index)
		assert.False(t, f.Transition, "frame %d", f.Index)
	}
	assert.Equal(t, 1, logs.FilterMessage("chain regenerated").Len())
}

func TestStep_ParameterChangeResizesSameFrame(t *testing.T) {
	d, _ := newDriver(t, parameter.Params{SegmentCount: 5, SegmentLength: 10, SegmentWidth: 1})
	d.Step(pointer(50, 50))

	d.Params().SetSegmentCount(8)
	f := d.Step(pointer(50, 50))

	assert.True(t, f.Regenerated)
	assert.Len(t, f.Lines, 8)
	assert.Equal(t, 8, d.Chain().Len())

	d.Params().SetSegmentCount(2)
	f = d.Step(pointer(50, 50))
	assert.Len(t, f.Lines, 2)
}

func TestStep_AbutmentEveryFrame(t *testing.T) {
	d, _ := newDriver(t, parameter.Params{SegmentCount: 25, SegmentLength: 4, SegmentWidth: 3, WidthGrowth: -0.1})

	for i := 0; i < 20; i++ {
		f := d.Step(pointer(float64(i*3)+1, float64(i*i)+1))
		for j := 1; j < len(f.Lines); j++ {
			require.Truef(t, f.Lines[j].To.ApproxEqual(f.Lines[j-1].From, 1e-6), "frame %d segment %d", i, j)
		}
		assert.True(t, f.Lines[0].To.ApproxEqual(f.Target, 1e-6))
	}
}

func TestStep_TargetOnHeadStartKeepsStart(t *testing.T) {
	// A fresh chain's head starts at the origin, so a pointer there has no direction
	d, _ := newDriver(t, parameter.Params{SegmentCount: 3, SegmentLength: 4, SegmentWidth: 1})

	f := d.Step(pointer(0, 0))
	require.Len(t, f.Lines, 3)

	head := f.Lines[0]
	assert.Equal(t, vmath.Pt(0, 0), head.From, "start unchanged")
	assert.InDelta(t, 4, head.To.X, 1e-9)
	assert.InDelta(t, 0, head.To.Y, 1e-9)
	for j := 1; j < len(f.Lines); j++ {
		assert.Truef(t, f.Lines[j].To.ApproxEqual(f.Lines[j-1].From, 1e-9), "segment %d", j)
	}
}

func TestStep_RevertedChangeDoesNotRegenerate(t *testing.T) {
	d, logs := newDriver(t, parameter.Params{SegmentCount: 5, SegmentLength: 10, SegmentWidth: 1})
	d.Step(pointer(50, 50))

	d.Params().SetSegmentCount(6)
	d.Params().SetSegmentCount(5)
	f := d.Step(pointer(50, 50))

	assert.False(t, f.Regenerated)
	assert.Len(t, f.Lines, 5)
	assert.Equal(t, 1, logs.FilterMessage("chain regenerated").Len())
}

func TestStep_PauseFreezesTarget(t *testing.T) {
	d, _ := newDriver(t, parameter.Params{SegmentCount: 4, SegmentLength: 5, SegmentWidth: 1})
	d.Step(pointer(40, 40))

	d.Params().TogglePaused()
	first := d.Step(pointer(90, 10))
	require.Equal(t, tracker.StatePaused, first.State)
	assert.Equal(t, vmath.Pt(40, 40), first.Target)

	for i := 0; i < 5; i++ {
		f := d.Step(pointer(float64(i), float64(-i)))
		assert.Equal(t, vmath.Pt(40, 40), f.Target)
		for j := range f.Lines {
			assert.Truef(t, f.Lines[j].From.ApproxEqual(first.Lines[j].From, 1e-9), "pose moved while paused: segment %d", j)
		}
	}

	d.Params().TogglePaused()
	f := d.Step(pointer(7, 8))
	assert.Equal(t, tracker.StateActive, f.State)
	assert.Equal(t, vmath.Pt(7, 8), f.Target)
}

func TestStep_StartPaused(t *testing.T) {
	p := parameter.Default()
	p.Paused = true
	d, _ := newDriver(t, p)

	f := d.Step(pointer(33, 33))
	assert.Equal(t, tracker.StatePaused, f.State)
	assert.Equal(t, vmath.Pt(0, 0), f.Target)
}

func TestStep_WanderThenRest(t *testing.T) {
	d, _ := newDriver(t, parameter.Params{SegmentCount: 2, SegmentLength: 1, SegmentWidth: 1})
	d.Step(pointer(20, 0))

	var states []tracker.State
	for i := 0; i < 40; i++ {
		f := d.Step(Input{})
		states = append(states, f.State)
	}

	assert.Equal(t, tracker.StateWandering, states[0])
	assert.Equal(t, tracker.StateResting, states[len(states)-1])

	rest := d.Tracker().Effective()
	f := d.Step(Input{})
	assert.Equal(t, rest, f.Target, "resting target is constant")
	edge, _ := d.Chain().TailEdge()
	assert.LessOrEqual(t, edge, 0.0)
}
