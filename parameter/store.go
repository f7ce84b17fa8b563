package parameter

import "math"

// Store holds the live parameters and the options changed since the last Take
// Not safe for concurrent use; owned by the frame loop goroutine
type Store struct {
	current  Params
	defaults Params
	pending  Changes
}

// NewStore creates a store seeded with initial, clamped
// Every option starts marked changed so the first frame builds the chain
func NewStore(initial Params) *Store {
	initial = initial.Clamp()
	return &Store{
		current:  initial,
		defaults: initial,
		pending:  ChangedAll,
	}
}

// Params returns the current parameters without clearing the change mask
func (s *Store) Params() Params {
	return s.current
}

// Take returns the current parameters and the options changed since the previous Take
func (s *Store) Take() (Params, Changes) {
	changes := s.pending
	s.pending = ChangedNone
	return s.current, changes
}

// Set replaces all parameters, clamping into range and marking the differing options
func (s *Store) Set(p Params) Changes {
	p = p.Clamp()
	changes := Diff(s.current, p)
	s.current = p
	s.pending |= changes
	return changes
}

func (s *Store) SetSegmentCount(n int) Changes {
	p := s.current
	p.SegmentCount = n
	return s.Set(p)
}

func (s *Store) SetSegmentLength(v float64) Changes {
	p := s.current
	p.SegmentLength = v
	return s.Set(p)
}

func (s *Store) SetSegmentWidth(v float64) Changes {
	p := s.current
	p.SegmentWidth = v
	return s.Set(p)
}

func (s *Store) SetWidthGrowth(v float64) Changes {
	p := s.current
	p.WidthGrowth = v
	return s.Set(p)
}

func (s *Store) SetPaused(paused bool) Changes {
	p := s.current
	p.Paused = paused
	return s.Set(p)
}

// TogglePaused flips the pause flag
func (s *Store) TogglePaused() Changes {
	return s.SetPaused(!s.current.Paused)
}

// StepSegmentCount adds dir steps to the segment count
func (s *Store) StepSegmentCount(dir int) Changes {
	return s.SetSegmentCount(s.current.SegmentCount + dir*StepSegmentCount)
}

// StepSegmentLength adds dir steps to the segment length
func (s *Store) StepSegmentLength(dir int) Changes {
	return s.SetSegmentLength(stepped(s.current.SegmentLength, dir, StepSegmentLength))
}

// StepSegmentWidth adds dir steps to the base width
func (s *Store) StepSegmentWidth(dir int) Changes {
	return s.SetSegmentWidth(stepped(s.current.SegmentWidth, dir, StepSegmentWidth))
}

// StepWidthGrowth adds dir steps to the width growth
func (s *Store) StepWidthGrowth(dir int) Changes {
	return s.SetWidthGrowth(stepped(s.current.WidthGrowth, dir, StepWidthGrowth))
}

// Reset restores the values the store was created with, unpaused
func (s *Store) Reset() Changes {
	p := s.defaults
	p.Paused = false
	return s.Set(p)
}

// stepped snaps v+dir*step onto the step grid so repeated edits do not accumulate rounding error
func stepped(v float64, dir int, step float64) float64 {
	return math.Round((v+float64(dir)*step)/step) * step
}
