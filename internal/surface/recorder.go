package surface

import "image/color"

// Op is one recorded drawing call.
type Op struct {
	Name  string
	Args  []float64
	Color color.Color
	Width float64
}

// Recorder is a Surface that keeps a log of calls instead of pixels. Clear
// discards everything recorded so far, as it would on a real canvas.
type Recorder struct {
	W, H  int
	Ops   []Op
	color color.Color
	width float64
}

func NewRecorder(w, h int) *Recorder {
	return &Recorder{W: w, H: h, color: color.Black, width: 1}
}

func (r *Recorder) Width() int  { return r.W }
func (r *Recorder) Height() int { return r.H }

func (r *Recorder) SetColor(c color.Color) { r.color = c }
func (r *Recorder) SetLineWidth(w float64) { r.width = w }
func (r *Recorder) SetLineCapButt()        {}
func (r *Recorder) Fill()                  { r.add("Fill") }
func (r *Recorder) Stroke()                { r.add("Stroke") }
func (r *Recorder) ClosePath()             { r.add("ClosePath") }
func (r *Recorder) MoveTo(x, y float64)    { r.add("MoveTo", x, y) }
func (r *Recorder) DrawCircle(x, y, rad float64) {
	r.add("DrawCircle", x, y, rad)
}

func (r *Recorder) Clear() {
	r.Ops = r.Ops[:0]
	r.add("Clear")
}

func (r *Recorder) DrawLine(x1, y1, x2, y2 float64) {
	r.add("DrawLine", x1, y1, x2, y2)
}

func (r *Recorder) DrawEllipse(x, y, rx, ry float64) {
	r.add("DrawEllipse", x, y, rx, ry)
}

func (r *Recorder) DrawRectangle(x, y, w, h float64) {
	r.add("DrawRectangle", x, y, w, h)
}

func (r *Recorder) QuadraticTo(x1, y1, x2, y2 float64) {
	r.add("QuadraticTo", x1, y1, x2, y2)
}

// Named returns the recorded ops with the given name, in call order.
func (r *Recorder) Named(name string) []Op {
	var out []Op
	for _, op := range r.Ops {
		if op.Name == name {
			out = append(out, op)
		}
	}
	return out
}

func (r *Recorder) add(name string, args ...float64) {
	r.Ops = append(r.Ops, Op{Name: name, Args: args, Color: r.color, Width: r.width})
}
