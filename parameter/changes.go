package parameter

import "strings"

// Changes is a per-option "changed since last read" mask
type Changes uint8

const (
	ChangedCount Changes = 1 << iota
	ChangedLength
	ChangedWidth
	ChangedGrowth
	ChangedPaused

	ChangedNone     Changes = 0
	ChangedGeometry         = ChangedCount | ChangedLength | ChangedWidth | ChangedGrowth
	ChangedAll              = ChangedGeometry | ChangedPaused
)

var changeNames = []struct {
	flag Changes
	name string
}{
	{ChangedCount, "segments"},
	{ChangedLength, "length"},
	{ChangedWidth, "width"},
	{ChangedGrowth, "width_growth"},
	{ChangedPaused, "paused"},
}

// Diff returns the options that differ between a and b
func Diff(a, b Params) Changes {
	var c Changes
	if a.SegmentCount != b.SegmentCount {
		c |= ChangedCount
	}
	if a.SegmentLength != b.SegmentLength {
		c |= ChangedLength
	}
	if a.SegmentWidth != b.SegmentWidth {
		c |= ChangedWidth
	}
	if a.WidthGrowth != b.WidthGrowth {
		c |= ChangedGrowth
	}
	if a.Paused != b.Paused {
		c |= ChangedPaused
	}
	return c
}

// Has reports whether any flag in f is set
func (c Changes) Has(f Changes) bool {
	return c&f != 0
}

// Geometry reports whether the chain must be regenerated
func (c Changes) Geometry() bool {
	return c.Has(ChangedGeometry)
}

func (c Changes) String() string {
	if c == ChangedNone {
		return "none"
	}
	var names []string
	for _, n := range changeNames {
		if c.Has(n.flag) {
			names = append(names, n.name)
		}
	}
	return strings.Join(names, "|")
}
