package tracker

import (
	"testing"

	"github.com/lixenwraith/kinematics/chain"
	"github.com/lixenwraith/kinematics/vmath"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func present(x, y float64) Observation {
	return Observation{Pointer: vmath.Pt(x, y), PointerPresent: true, TailEdgeX: 50, TailKnown: true}
}

func absent(tailX float64) Observation {
	return Observation{TailEdgeX: tailX, TailKnown: true}
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "active", StateActive.String())
	assert.Equal(t, "paused", StatePaused.String())
	assert.Equal(t, "wandering", StateWandering.String())
	assert.Equal(t, "resting", StateResting.String())
	assert.Equal(t, "unknown", State(99).String())
}

func TestResolve_ActiveFollowsPointer(t *testing.T) {
	tr := New(vmath.Pt(0, 0), DefaultDrift)

	got := tr.Resolve(present(12, 34))

	assert.Equal(t, vmath.Pt(12, 34), got)
	assert.Equal(t, StateActive, tr.State())
	assert.Equal(t, got, tr.Effective())
}

func TestResolve_Transitions(t *testing.T) {
	tests := []struct {
		name   string
		paused bool
		obs    Observation
		want   State
		target vmath.Point
	}{
		{"pointer present", false, present(3, 4), StateActive, vmath.Pt(3, 4)},
		{"absent and tail on screen", false, absent(5), StateWandering, vmath.Pt(9, 11)},
		{"absent and tail at boundary", false, absent(0), StateResting, vmath.Pt(10, 10)},
		{"absent and tail off screen", false, absent(-12), StateResting, vmath.Pt(10, 10)},
		{"absent and empty chain", false, Observation{}, StateWandering, vmath.Pt(9, 11)},
		{"paused with pointer", true, present(3, 4), StatePaused, vmath.Pt(10, 10)},
		{"paused without pointer", true, absent(5), StatePaused, vmath.Pt(10, 10)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := New(vmath.Pt(10, 10), DefaultDrift)
			tr.SetPaused(tt.paused)

			got := tr.Resolve(tt.obs)

			assert.Equal(t, tt.want, tr.State())
			assert.Equal(t, tt.target, got)
		})
	}
}

func TestResolve_PauseFreezesTarget(t *testing.T) {
	tr := New(vmath.Pt(0, 0), DefaultDrift)
	tr.Resolve(present(20, 20))

	tr.SetPaused(true)
	for i := 0; i < 10; i++ {
		got := tr.Resolve(present(20+float64(i)*7, 5))
		require.Equal(t, vmath.Pt(20, 20), got, "frame %d", i)
		require.Equal(t, StatePaused, tr.State())
	}
	for i := 0; i < 3; i++ {
		assert.Equal(t, vmath.Pt(20, 20), tr.Resolve(absent(100)))
	}
}

func TestResolve_UnpauseReevaluatesSameFrame(t *testing.T) {
	tr := New(vmath.Pt(0, 0), DefaultDrift)
	tr.SetPaused(true)
	tr.Resolve(present(1, 1))
	require.Equal(t, StatePaused, tr.State())

	tr.SetPaused(false)
	got := tr.Resolve(present(8, 9))

	assert.Equal(t, StateActive, tr.State())
	assert.Equal(t, vmath.Pt(8, 9), got)

	tr.SetPaused(false)
	got = tr.Resolve(absent(3))
	assert.Equal(t, StateWandering, tr.State())
	assert.Equal(t, vmath.Pt(7, 10), got)
}

// TestResolve_WanderUntilOffFrame drives a zero-length chain so the tail edge tracks the target
func TestResolve_WanderUntilOffFrame(t *testing.T) {
	c := chain.New(chain.DefaultColor)
	c.Regenerate(chain.Config{Count: 1, Length: 0, BaseWidth: 1}, vmath.Pt(0, 0))

	tr := New(vmath.Pt(5, 0), DefaultDrift)
	c.Update(tr.Effective())

	want := []vmath.Point{
		vmath.Pt(4, 1), vmath.Pt(3, 2), vmath.Pt(2, 3), vmath.Pt(1, 4), vmath.Pt(0, 5),
		vmath.Pt(0, 5), vmath.Pt(0, 5), vmath.Pt(0, 5),
	}
	for frame, w := range want {
		edge, ok := c.TailEdge()
		got := tr.Resolve(Observation{TailEdgeX: edge, TailKnown: ok})
		c.Update(got)

		require.Equalf(t, w, got, "frame %d", frame)
		if frame < 5 {
			assert.Equal(t, StateWandering, tr.State(), "frame %d", frame)
		} else {
			assert.Equal(t, StateResting, tr.State(), "frame %d", frame)
		}
	}
}

func TestResolve_CustomDrift(t *testing.T) {
	tr := New(vmath.Pt(0, 0), vmath.V(2, -0.5))
	tr.Resolve(absent(10))
	got := tr.Resolve(absent(10))

	assert.Equal(t, vmath.Pt(4, -1), got)
	assert.Equal(t, vmath.V(2, -0.5), tr.Drift())
}

func TestTransitioned(t *testing.T) {
	tr := New(vmath.Pt(0, 0), DefaultDrift)
	assert.False(t, tr.Transitioned(), "no resolve yet")

	tr.Resolve(absent(5))
	assert.True(t, tr.Transitioned(), "first resolve")

	tr.Resolve(absent(5))
	assert.False(t, tr.Transitioned())

	tr.Resolve(present(1, 1))
	assert.True(t, tr.Transitioned())

	tr.SetPaused(true)
	tr.Resolve(present(1, 1))
	assert.True(t, tr.Transitioned())
	assert.True(t, tr.Paused())

	tr.Resolve(present(2, 2))
	assert.False(t, tr.Transitioned())
}
