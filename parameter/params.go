package parameter

import (
	"github.com/lixenwraith/kinematics/chain"
	"github.com/lixenwraith/kinematics/vmath"
)

// Accepted ranges for user-editable chain options
const (
	SegmentCountMin = 1
	SegmentCountMax = 500

	SegmentLengthMin = 0.1
	SegmentLengthMax = 100.0

	SegmentWidthMin = 0.1
	SegmentWidthMax = 100.0

	WidthGrowthMin = -5.0
	WidthGrowthMax = 5.0
)

// Defaults
const (
	DefaultSegmentCount  = 50
	DefaultSegmentLength = 10.0
	DefaultSegmentWidth  = 1.0
	DefaultWidthGrowth   = 0.0
)

// Keyboard edit step sizes
const (
	StepSegmentCount  = 1
	StepSegmentLength = 0.5
	StepSegmentWidth  = 0.5
	StepWidthGrowth   = 0.1
)

// Params is the user-facing chain configuration
type Params struct {
	SegmentCount  int     `mapstructure:"segments"`
	SegmentLength float64 `mapstructure:"length"`
	SegmentWidth  float64 `mapstructure:"width"`
	WidthGrowth   float64 `mapstructure:"width_growth"`
	Paused        bool    `mapstructure:"paused"`
}

// Default returns the startup configuration
func Default() Params {
	return Params{
		SegmentCount:  DefaultSegmentCount,
		SegmentLength: DefaultSegmentLength,
		SegmentWidth:  DefaultSegmentWidth,
		WidthGrowth:   DefaultWidthGrowth,
	}
}

// Clamp returns p with every option forced into its range
func (p Params) Clamp() Params {
	p.SegmentCount = vmath.ClampInt(p.SegmentCount, SegmentCountMin, SegmentCountMax)
	p.SegmentLength = vmath.Clamp(p.SegmentLength, SegmentLengthMin, SegmentLengthMax)
	p.SegmentWidth = vmath.Clamp(p.SegmentWidth, SegmentWidthMin, SegmentWidthMax)
	p.WidthGrowth = vmath.Clamp(p.WidthGrowth, WidthGrowthMin, WidthGrowthMax)
	return p
}

// InRange reports whether Clamp would leave p unchanged
func (p Params) InRange() bool {
	return p == p.Clamp()
}

// ChainConfig converts the geometry options for chain regeneration
func (p Params) ChainConfig() chain.Config {
	return chain.Config{
		Count:       p.SegmentCount,
		Length:      p.SegmentLength,
		BaseWidth:   p.SegmentWidth,
		WidthGrowth: p.WidthGrowth,
	}
}
