package render

import (
	"fmt"
	"io"

	jsoniter "github.com/json-iterator/go"
	"github.com/lixenwraith/kinematics/driver"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type pointRecord struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type lineRecord struct {
	From  pointRecord `json:"from"`
	To    pointRecord `json:"to"`
	Width float64     `json:"width"`
	Color string      `json:"color"`
}

// FrameRecord is the JSON shape of one frame
type FrameRecord struct {
	Frame       uint64       `json:"frame"`
	State       string       `json:"state"`
	Target      pointRecord  `json:"target"`
	Regenerated bool         `json:"regenerated,omitempty"`
	Lines       []lineRecord `json:"lines"`
}

// JSONLines writes each frame as one JSON object per line
type JSONLines struct {
	enc *jsoniter.Encoder
}

// NewJSONLines creates a renderer writing to w
func NewJSONLines(w io.Writer) *JSONLines {
	return &JSONLines{enc: json.NewEncoder(w)}
}

func (j *JSONLines) Render(f driver.Frame) error {
	if err := j.enc.Encode(NewFrameRecord(f)); err != nil {
		return fmt.Errorf("encode frame %d: %w", f.Index, err)
	}
	return nil
}

// NewFrameRecord converts a frame for serialization
func NewFrameRecord(f driver.Frame) FrameRecord {
	rec := FrameRecord{
		Frame:       f.Index,
		State:       f.State.String(),
		Target:      pointRecord{X: f.Target.X, Y: f.Target.Y},
		Regenerated: f.Regenerated,
		Lines:       make([]lineRecord, len(f.Lines)),
	}
	for i, l := range f.Lines {
		rec.Lines[i] = lineRecord{
			From:  pointRecord{X: l.From.X, Y: l.From.Y},
			To:    pointRecord{X: l.To.X, Y: l.To.Y},
			Width: l.Width,
			Color: l.Color.Clamped().Hex(),
		}
	}
	return rec
}
