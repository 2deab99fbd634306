package canvas

import (
	"image/color"
)

// OpKind identifies a recorded drawing call.
type OpKind int

const (
	OpClear OpKind = iota
	OpFillCircle
	OpStrokeCircle
	OpLine
	OpFillEllipse
)

func (k OpKind) String() string {
	switch k {
	case OpClear:
		return "clear"
	case OpFillCircle:
		return "fill-circle"
	case OpStrokeCircle:
		return "stroke-circle"
	case OpLine:
		return "line"
	case OpFillEllipse:
		return "fill-ellipse"
	}
	return "unknown"
}

// Op is one recorded drawing call with the style state in effect.
type Op struct {
	Kind      OpKind
	Args      []float64
	Fill      color.Color
	Stroke    color.Color
	LineWidth float64
}

// Recorder is a Canvas that records calls instead of rasterising them.
type Recorder struct {
	Ops []Op

	width, height int
	fill, stroke  color.Color
	lineWidth     float64
}

func NewRecorder(width, height int) *Recorder {
	return &Recorder{
		width:     width,
		height:    height,
		fill:      color.Black,
		stroke:    color.Black,
		lineWidth: 1,
	}
}

func (r *Recorder) Resize(width, height int) {
	r.width, r.height = width, height
}

func (r *Recorder) Size() (int, int) { return r.width, r.height }

func (r *Recorder) SetFillStyle(c color.Color)   { r.fill = c }
func (r *Recorder) SetStrokeStyle(c color.Color) { r.stroke = c }
func (r *Recorder) SetLineWidth(w float64)       { r.lineWidth = w }

func (r *Recorder) ClearRect(x, y, w, h float64) { r.record(OpClear, x, y, w, h) }

func (r *Recorder) FillCircle(cx, cy, rad float64) { r.record(OpFillCircle, cx, cy, rad) }

func (r *Recorder) StrokeCircle(cx, cy, rad float64) { r.record(OpStrokeCircle, cx, cy, rad) }

func (r *Recorder) StrokeLine(x0, y0, x1, y1 float64) { r.record(OpLine, x0, y0, x1, y1) }

func (r *Recorder) FillEllipse(cx, cy, rx, ry float64) { r.record(OpFillEllipse, cx, cy, rx, ry) }

func (r *Recorder) record(kind OpKind, args ...float64) {
	r.Ops = append(r.Ops, Op{
		Kind:      kind,
		Args:      args,
		Fill:      r.fill,
		Stroke:    r.stroke,
		LineWidth: r.lineWidth,
	})
}

// Reset forgets all recorded calls.
func (r *Recorder) Reset() { r.Ops = r.Ops[:0] }

// Count returns how many calls of kind were recorded.
func (r *Recorder) Count(kind OpKind) int {
	n := 0
	for _, op := range r.Ops {
		if op.Kind == kind {
			n++
		}
	}
	return n
}

// Draws returns the number of recorded calls that are not clears.
func (r *Recorder) Draws() int {
	return len(r.Ops) - r.Count(OpClear)
}
