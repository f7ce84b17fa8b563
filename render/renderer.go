package render

import (
	"github.com/lixenwraith/kinematics/driver"
)

// Renderer consumes one frame of line primitives
type Renderer interface {
	Render(f driver.Frame) error
}
