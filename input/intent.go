package input

import (
	"github.com/lixenwraith/kinematics/parameter"
)

// Intent is a semantic action produced from a key press
type Intent uint8

const (
	IntentNone Intent = iota

	// System
	IntentQuit
	IntentToggleStatus
	IntentToggleMute

	// Parameter edits
	IntentTogglePause
	IntentSegmentsUp
	IntentSegmentsDown
	IntentLengthUp
	IntentLengthDown
	IntentWidthUp
	IntentWidthDown
	IntentGrowthUp
	IntentGrowthDown
	IntentReset
)

// actionRegistry maps canonical action names to intents
// Used by the keymap override loader to resolve config action strings
var actionRegistry = map[string]Intent{
	"none":          IntentNone,
	"quit":          IntentQuit,
	"toggle_status": IntentToggleStatus,
	"toggle_mute":   IntentToggleMute,
	"toggle_pause":  IntentTogglePause,
	"segments_up":   IntentSegmentsUp,
	"segments_down": IntentSegmentsDown,
	"length_up":     IntentLengthUp,
	"length_down":   IntentLengthDown,
	"width_up":      IntentWidthUp,
	"width_down":    IntentWidthDown,
	"growth_up":     IntentGrowthUp,
	"growth_down":   IntentGrowthDown,
	"reset":         IntentReset,
}

var intentNames = func() map[Intent]string {
	m := make(map[Intent]string, len(actionRegistry))
	for name, intent := range actionRegistry {
		m[intent] = name
	}
	return m
}()

func (i Intent) String() string {
	if name, ok := intentNames[i]; ok {
		return name
	}
	return "unknown"
}

// IsParameter reports whether the intent edits chain parameters
func (i Intent) IsParameter() bool {
	return i >= IntentTogglePause && i <= IntentReset
}

// Apply performs a parameter intent against the store and returns the options changed
// Non-parameter intents are ignored
func Apply(store *parameter.Store, i Intent) parameter.Changes {
	switch i {
	case IntentTogglePause:
		return store.TogglePaused()
	case IntentSegmentsUp:
		return store.StepSegmentCount(1)
	case IntentSegmentsDown:
		return store.StepSegmentCount(-1)
	case IntentLengthUp:
		return store.StepSegmentLength(1)
	case IntentLengthDown:
		return store.StepSegmentLength(-1)
	case IntentWidthUp:
		return store.StepSegmentWidth(1)
	case IntentWidthDown:
		return store.StepSegmentWidth(-1)
	case IntentGrowthUp:
		return store.StepWidthGrowth(1)
	case IntentGrowthDown:
		return store.StepWidthGrowth(-1)
	case IntentReset:
		return store.Reset()
	default:
		return parameter.ChangedNone
	}
}
