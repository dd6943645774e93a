package effect

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	svg "github.com/ajstarks/svgo"
)

// Document accumulates an SVG whose width, height and viewBox equal the
// requested output size. Primitives take float coordinates; svgo writes
// the document frame.
type Document struct {
	buf    bytes.Buffer
	canvas *svg.SVG
}

// NewDocument starts a document and paints the background unless it is
// empty.
func NewDocument(w, h int, title, background string) *Document {
	d := &Document{}
	d.canvas = svg.New(&d.buf)
	d.canvas.Startview(w, h, 0, 0, w, h)
	if title != "" {
		d.canvas.Title(title)
	}
	if background != "" {
		d.canvas.Rect(0, 0, w, h, "fill:"+background)
	}
	return d
}

// Group opens a <g> carrying shared presentation attributes.
func (d *Document) Group(style string) {
	d.canvas.Gstyle(style)
}

func (d *Document) EndGroup() {
	d.canvas.Gend()
}

func (d *Document) Circle(cx, cy, r float64) {
	fmt.Fprintf(&d.buf, "<circle cx=\"%s\" cy=\"%s\" r=\"%s\"/>\n", Num(cx), Num(cy), Num(r))
}

func (d *Document) Ellipse(cx, cy, rx, ry float64) {
	fmt.Fprintf(&d.buf, "<ellipse cx=\"%s\" cy=\"%s\" rx=\"%s\" ry=\"%s\"/>\n", Num(cx), Num(cy), Num(rx), Num(ry))
}

func (d *Document) Line(x1, y1, x2, y2, width float64) {
	fmt.Fprintf(&d.buf, "<line x1=\"%s\" y1=\"%s\" x2=\"%s\" y2=\"%s\" stroke-width=\"%s\"/>\n",
		Num(x1), Num(y1), Num(x2), Num(y2), Num(width))
}

func (d *Document) Rect(x, y, w, h float64) {
	fmt.Fprintf(&d.buf, "<rect x=\"%s\" y=\"%s\" width=\"%s\" height=\"%s\"/>\n", Num(x), Num(y), Num(w), Num(h))
}

func (d *Document) Path(data string) {
	fmt.Fprintf(&d.buf, "<path d=\"%s\"/>\n", data)
}

// String closes the document and returns it.
func (d *Document) String() string {
	d.canvas.End()
	return d.buf.String()
}

// Num formats a coordinate with at most three decimals.
func Num(v float64) string {
	s := strconv.FormatFloat(v, 'f', 3, 64)
	if strings.Contains(s, ".") {
		s = strings.TrimRight(strings.TrimRight(s, "0"), ".")
	}
	if s == "-0" {
		return "0"
	}
	return s
}
