package render

import (
	"bytes"
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/lixenwraith/kinematics/chain"
	"github.com/lixenwraith/kinematics/driver"
	"github.com/lixenwraith/kinematics/parameter"
	"github.com/lixenwraith/kinematics/tracker"
	"github.com/lixenwraith/kinematics/vmath"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func hline(y, x0, x1, width float64) chain.Line {
	return chain.Line{From: vmath.Pt(x0, y), To: vmath.Pt(x1, y), Width: width, Color: chain.DefaultColor}
}

func TestCanvas_SetAndCell(t *testing.T) {
	c := NewCanvas(2, 1, 1)

	_, _, ok := c.Cell(0, 0)
	assert.False(t, ok, "empty cell")

	c.Set(0, 0, chain.DefaultColor)
	c.Set(1, 3, chain.DefaultColor)
	c.Set(99, 99, chain.DefaultColor) // ignored

	r, color, ok := c.Cell(0, 0)
	require.True(t, ok)
	assert.Equal(t, rune(0x2800+0x01+0x80), r)
	assert.Equal(t, chain.DefaultColor, color)
	assert.True(t, c.Dot(1, 3))
	assert.False(t, c.Dot(0, 1))

	c.Clear()
	_, _, ok = c.Cell(0, 0)
	assert.False(t, ok)
}

func TestCanvas_StrokeHorizontalHairline(t *testing.T) {
	c := NewCanvas(10, 2, 1)
	c.Stroke(hline(1.5, 0.5, 19.5, 1))

	for x := 0; x < 20; x++ {
		assert.True(t, c.Dot(x, 1), "dot %d on the line", x)
		assert.False(t, c.Dot(x, 0), "dot %d above", x)
		assert.False(t, c.Dot(x, 2), "dot %d below", x)
	}
}

func TestCanvas_StrokeWidthAndScale(t *testing.T) {
	// Scale 2: world width 8 is a 4 dot wide band, radius 2
	c := NewCanvas(10, 4, 2)
	c.Stroke(hline(16, 2, 30, 8))

	lit := 0
	for y := 0; y < 16; y++ {
		if c.Dot(7, y) {
			lit++
		}
	}
	assert.Equal(t, 4, lit)
}

func TestCanvas_StrokeSkipsInvisible(t *testing.T) {
	c := NewCanvas(10, 2, 1)
	c.Stroke(hline(1.5, 0, 19, 0))
	c.Stroke(hline(1.5, 0, 19, -3))
	c.Stroke(hline(500, -1e300, 1e300, 4)) // far off-canvas

	w, h := c.DotSize()
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			require.False(t, c.Dot(x, y), "dot %d,%d", x, y)
		}
	}
}

func TestCanvas_DegenerateLineIsDot(t *testing.T) {
	c := NewCanvas(4, 4, 1)
	c.Stroke(chain.Line{From: vmath.Pt(3.5, 3.5), To: vmath.Pt(3.5, 3.5), Width: 1})
	assert.True(t, c.Dot(3, 3))
}

func TestCanvas_CellToWorld(t *testing.T) {
	c := NewCanvas(10, 10, 2)
	assert.Equal(t, vmath.Pt(14, 20), c.CellToWorld(3, 2))
	assert.Equal(t, vmath.Pt(2, 4), c.CellToWorld(0, 0))
}

func newSimScreen(t *testing.T, w, h int) tcell.SimulationScreen {
	t.Helper()
	s := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, s.Init())
	t.Cleanup(s.Fini)
	s.SetSize(w, h)
	return s
}

func rowText(cells []tcell.SimCell, width, row int) string {
	var b strings.Builder
	for x := 0; x < width; x++ {
		c := cells[row*width+x]
		if len(c.Runes) == 0 {
			b.WriteRune(' ')
			continue
		}
		b.WriteRune(c.Runes[0])
	}
	return b.String()
}

func TestTerminal_RendersBraille(t *testing.T) {
	screen := newSimScreen(t, 20, 6)
	term := NewTerminal(screen, 1, false)

	err := term.Render(driver.Frame{Lines: []chain.Line{hline(1.5, 0.5, 19.5, 1)}})
	require.NoError(t, err)

	cells, w, _ := screen.GetContents()
	row := []rune(rowText(cells, w, 0))
	for x := 0; x < 10; x++ {
		assert.Equal(t, rune(0x2812), row[x], "cell %d", x)
	}
	assert.Equal(t, ' ', row[10])
}

func TestTerminal_StatusBar(t *testing.T) {
	screen := newSimScreen(t, 200, 5)
	term := NewTerminal(screen, 1, true)

	_, rows := term.Canvas().Size()
	assert.Equal(t, 4, rows, "status line reserves a row")

	f := driver.Frame{
		State:  tracker.StateResting,
		Target: vmath.Pt(-3, 40),
		Params: parameter.Default(),
	}
	require.NoError(t, term.Render(f))

	cells, w, h := screen.GetContents()
	status := rowText(cells, w, h-1)
	assert.Contains(t, status, " resting ")
	assert.Contains(t, status, "segments=50 length=10.0 width=1.0 growth=+0.0")
	assert.Contains(t, status, "[q]uit")

	term.SetStatusBar(false)
	_, rows = term.Canvas().Size()
	assert.Equal(t, 5, rows)
	assert.False(t, term.StatusBar())
}

func TestTerminal_ResizeFollowsScreen(t *testing.T) {
	screen := newSimScreen(t, 10, 4)
	term := NewTerminal(screen, 1, false)

	screen.SetSize(30, 8)
	require.NoError(t, term.Render(driver.Frame{}))

	cols, rows := term.Canvas().Size()
	assert.Equal(t, 30, cols)
	assert.Equal(t, 8, rows)
}

func TestJSONLines(t *testing.T) {
	var buf bytes.Buffer
	r := NewJSONLines(&buf)

	f := driver.Frame{
		Index:       3,
		State:       tracker.StateWandering,
		Target:      vmath.Pt(1, 2),
		Regenerated: true,
		Lines:       []chain.Line{hline(0, 0, 10, 2)},
	}
	require.NoError(t, r.Render(f))
	require.NoError(t, r.Render(driver.Frame{Index: 4}))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)

	var rec FrameRecord
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &rec))
	assert.Equal(t, NewFrameRecord(f), rec)
	assert.Equal(t, "#ffffff", rec.Lines[0].Color)
	assert.Equal(t, "wandering", rec.State)
	assert.Contains(t, lines[0], `"regenerated":true`)
	assert.NotContains(t, lines[1], "regenerated")
}
