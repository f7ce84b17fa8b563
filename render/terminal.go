package render

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/lixenwraith/kinematics/driver"
	"github.com/lixenwraith/kinematics/vmath"
	"github.com/lucasb-eyer/go-colorful"
)

const statusHelp = "[space]pause [+/-]segments [[/]]length [{/}]width [</>]growth [r]eset [s]tatus [m]ute [q]uit"

var (
	backgroundStyle  = tcell.StyleDefault.Background(tcell.ColorBlack)
	statusStyle      = tcell.StyleDefault.Background(tcell.NewRGBColor(40, 40, 40)).Foreground(tcell.ColorSilver)
	statusStateStyle = tcell.StyleDefault.Background(tcell.NewRGBColor(40, 40, 40)).Foreground(tcell.ColorYellow).Bold(true)
)

// Terminal draws frames onto a tcell screen using braille cells
type Terminal struct {
	screen    tcell.Screen
	canvas    *Canvas
	statusBar bool
}

// NewTerminal creates a renderer for an initialized screen
func NewTerminal(screen tcell.Screen, scale float64, statusBar bool) *Terminal {
	t := &Terminal{
		screen:    screen,
		canvas:    NewCanvas(0, 0, scale),
		statusBar: statusBar,
	}
	t.Resize()
	return t
}

// Resize syncs the canvas with the current screen size
func (t *Terminal) Resize() {
	w, h := t.screen.Size()
	if t.statusBar && h > 0 {
		h--
	}
	t.canvas.Resize(w, h)
}

// SetStatusBar toggles the bottom status line
func (t *Terminal) SetStatusBar(on bool) {
	t.statusBar = on
	t.Resize()
}

// StatusBar reports whether the status line is drawn
func (t *Terminal) StatusBar() bool {
	return t.statusBar
}

// CellToWorld maps a screen cell to the world point at its center
func (t *Terminal) CellToWorld(col, row int) vmath.Point {
	return t.canvas.CellToWorld(col, row)
}

// Canvas exposes the backing canvas
func (t *Terminal) Canvas() *Canvas {
	return t.canvas
}

// Render rasterizes the frame and flushes it to the screen
func (t *Terminal) Render(f driver.Frame) error {
	t.Resize()
	t.canvas.StrokeAll(f.Lines)

	t.screen.SetStyle(backgroundStyle)
	t.screen.Clear()

	cols, rows := t.canvas.Size()
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			r, color, ok := t.canvas.Cell(col, row)
			if !ok {
				continue
			}
			t.screen.SetContent(col, row, r, nil, backgroundStyle.Foreground(toTcell(color)))
		}
	}

	if t.statusBar {
		t.drawStatusBar(f)
	}

	t.screen.Show()
	return nil
}

// drawStatusBar fills the last screen row with state, parameters and key help
func (t *Terminal) drawStatusBar(f driver.Frame) {
	w, h := t.screen.Size()
	if h == 0 {
		return
	}
	y := h - 1
	for x := 0; x < w; x++ {
		t.screen.SetContent(x, y, ' ', nil, statusStyle)
	}

	state := fmt.Sprintf(" %s ", f.State)
	x := drawText(t.screen, 0, y, w, state, statusStateStyle)
	x = drawText(t.screen, x, y, w, StatusText(f)+"  ", statusStyle)
	drawText(t.screen, x, y, w, statusHelp, statusStyle)
}

// StatusText summarizes a frame's parameters
func StatusText(f driver.Frame) string {
	p := f.Params
	return fmt.Sprintf("segments=%d length=%.1f width=%.1f growth=%+.1f target=(%.0f,%.0f)",
		p.SegmentCount, p.SegmentLength, p.SegmentWidth, p.WidthGrowth, f.Target.X, f.Target.Y)
}

// drawText writes s from x and returns the column after the last rune written
func drawText(screen tcell.Screen, x, y, maxX int, s string, style tcell.Style) int {
	for _, r := range s {
		if x >= maxX {
			break
		}
		screen.SetContent(x, y, r, nil, style)
		x++
	}
	return x
}

func toTcell(c colorful.Color) tcell.Color {
	r, g, b := c.Clamped().RGB255()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}
