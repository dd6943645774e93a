package registry

import (
	"encoding/xml"
	"io"
	"strconv"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/inkfield/internal/effect"
	"github.com/san-kum/inkfield/internal/grid"
	"github.com/san-kum/inkfield/internal/param"
	"github.com/san-kum/inkfield/internal/surface"
)

const (
	testW = 240
	testH = 120
)

type prim struct {
	kind string
	args []float64
}

// gradient darkens left to right with a bump in the middle rows.
func gradient() *grid.Grid {
	cols, rows := 24, 12
	data := make([]float64, cols*rows)
	for j := 0; j < rows; j++ {
		for i := 0; i < cols; i++ {
			b := 1 - float64(i)/float64(cols-1)
			if j > 3 && j < 8 {
				b *= 0.5
			}
			data[j*cols+i] = b
		}
	}
	g, err := grid.New(cols, rows, data, 200, 100)
	Expect(err).NotTo(HaveOccurred())
	return g
}

func svgPrims(doc string) ([]prim, map[string]string) {
	dec := xml.NewDecoder(strings.NewReader(doc))
	root := map[string]string{}
	var out []prim
	depth := 0
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			return out, root
		}
		Expect(err).NotTo(HaveOccurred())

		switch el := tok.(type) {
		case xml.StartElement:
			depth++
			if depth == 1 {
				for _, a := range el.Attr {
					root[a.Name.Local] = a.Value
				}
			}
			// primitives live inside the single style group
			if depth != 3 {
				continue
			}
			switch el.Name.Local {
			case "circle":
				out = append(out, prim{"circle", attrs(el, "cx", "cy", "r")})
			case "ellipse":
				out = append(out, prim{"ellipse", attrs(el, "cx", "cy", "rx", "ry")})
			case "line":
				out = append(out, prim{"line", attrs(el, "x1", "y1", "x2", "y2", "stroke-width")})
			case "rect":
				out = append(out, prim{"rect", attrs(el, "x", "y", "width", "height")})
			case "path":
				out = append(out, prim{"path", pathStart(attrs0(el, "d"))})
			}
		case xml.EndElement:
			depth--
		}
	}
}

func attrs0(el xml.StartElement, name string) string {
	for _, a := range el.Attr {
		if a.Name.Local == name {
			return a.Value
		}
	}
	return ""
}

func attrs(el xml.StartElement, names ...string) []float64 {
	out := make([]float64, len(names))
	for i, n := range names {
		v, err := strconv.ParseFloat(attrs0(el, n), 64)
		Expect(err).NotTo(HaveOccurred(), "attribute %s on <%s>", n, el.Name.Local)
		out[i] = v
	}
	return out
}

func pathStart(d string) []float64 {
	Expect(d).To(HavePrefix("M"))
	head, _, _ := strings.Cut(d[1:], "Q")
	fields := strings.Fields(head)
	Expect(fields).To(HaveLen(2))
	x, err := strconv.ParseFloat(fields[0], 64)
	Expect(err).NotTo(HaveOccurred())
	y, err := strconv.ParseFloat(fields[1], 64)
	Expect(err).NotTo(HaveOccurred())
	return []float64{x, y}
}

var opKinds = map[string]string{
	"DrawCircle":    "circle",
	"DrawEllipse":   "ellipse",
	"DrawLine":      "line",
	"DrawRectangle": "rect",
	"MoveTo":        "path",
}

func framePrims(rec *surface.Recorder) []prim {
	var out []prim
	for _, op := range rec.Ops {
		kind, ok := opKinds[op.Name]
		if !ok {
			continue
		}
		args := op.Args
		if kind == "line" {
			args = append(append([]float64(nil), op.Args...), op.Width)
		}
		out = append(out, prim{kind, args})
	}
	return out
}

// expectSamePrims compares positions, sizes and stroke widths to 1e-3,
// the precision documents are written with.
func expectSamePrims(doc, frame []prim) {
	Expect(doc).To(HaveLen(len(frame)))
	for i := range doc {
		Expect(doc[i].kind).To(Equal(frame[i].kind))
		Expect(doc[i].args).To(HaveLen(len(frame[i].args)))
		for k, v := range doc[i].args {
			Expect(v).To(BeNumerically("~", frame[i].args[k], 1e-3), "primitive %d arg %d", i, k)
		}
	}
}

func rangePairs(schema []param.Descriptor) [][2]string {
	keys := map[string]bool{}
	for _, d := range schema {
		keys[d.Key] = true
	}
	var pairs [][2]string
	for _, d := range schema {
		if rest, ok := strings.CutPrefix(d.Key, "min"); ok && keys["max"+rest] {
			pairs = append(pairs, [2]string{d.Key, "max" + rest})
		}
	}
	return pairs
}

var _ = Describe("Effect modules", func() {
	for _, m := range New().All() {
		Describe(m.Name(), func() {
			var g *grid.Grid

			BeforeEach(func() {
				g = gradient()
			})

			It("generates identical documents for identical inputs", func() {
				p := m.Params(nil)
				Expect(m.Generate(g, p, testW, testH)).To(Equal(m.Generate(g, p, testW, testH)))
			})

			It("sizes the document to the requested output", func() {
				_, root := svgPrims(m.Generate(g, nil, testW, testH))
				Expect(root).To(HaveKeyWithValue("width", "240"))
				Expect(root).To(HaveKeyWithValue("height", "120"))
				Expect(root).To(HaveKeyWithValue("viewBox", "0 0 240 120"))
			})

			It("places the same primitives in the document and at frame zero", func() {
				doc, _ := svgPrims(m.Generate(g, nil, testW, testH))
				rec := surface.NewRecorder(testW, testH)
				m.DrawFrame(rec, m.Init(g, nil, testW, testH), 0)
				frame := framePrims(rec)

				Expect(doc).NotTo(BeEmpty())
				expectSamePrims(doc, frame)
			})

			It("agrees with frame zero when a size range straddles epsilon", func() {
				for _, pair := range rangePairs(m.Schema()) {
					p := param.Set{pair[0]: 0.0, pair[1]: 0.45}
					doc, _ := svgPrims(m.Generate(g, p, testW, testH))
					rec := surface.NewRecorder(testW, testH)
					m.DrawFrame(rec, m.Init(g, p, testW, testH), 0)
					expectSamePrims(doc, framePrims(rec))
				}
			})

			It("redraws deterministically", func() {
				a := surface.NewRecorder(testW, testH)
				b := surface.NewRecorder(testW, testH)
				m.DrawFrame(a, m.Init(g, nil, testW, testH), 1.7)
				m.DrawFrame(b, m.Init(g, nil, testW, testH), 1.7)
				Expect(a.Ops).To(Equal(b.Ops))
			})

			It("starts every frame from a cleared surface", func() {
				rec := surface.NewRecorder(testW, testH)
				st := m.Init(g, nil, testW, testH)
				m.DrawFrame(rec, st, 0.5)
				m.DrawFrame(rec, st, 0.75)
				Expect(rec.Ops).NotTo(BeEmpty())
				Expect(rec.Ops[0].Name).To(Equal("Clear"))
			})

			It("treats min/max pairs as unordered", func() {
				for _, pair := range rangePairs(m.Schema()) {
					d := m.Defaults()
					lo, hi := d[pair[0]], d[pair[1]]
					swapped := param.Set{pair[0]: hi, pair[1]: lo}
					Expect(m.Generate(g, swapped, testW, testH)).To(Equal(m.Generate(g, nil, testW, testH)), pair[0])
				}
			})

			It("covers every schema key with a default", func() {
				d := m.Defaults()
				for _, desc := range m.Schema() {
					Expect(d).To(HaveKey(desc.Key))
					Expect(desc.Default).To(Equal(d[desc.Key]))
				}
			})

			It("keeps internal keys out of the schema", func() {
				for _, desc := range m.Schema() {
					Expect(desc.Key).NotTo(Equal("seed"))
				}
			})

			It("ignores parameters of the wrong kind", func() {
				bad := param.Set{}
				for _, desc := range m.Schema() {
					if desc.Kind == param.Number {
						bad[desc.Key] = "oops"
					} else {
						bad[desc.Key] = 3.0
					}
				}
				Expect(m.Generate(g, bad, testW, testH)).To(Equal(m.Generate(g, nil, testW, testH)))
			})

			It("ships a script defining the effect", func() {
				Expect(m.Script).To(ContainSubstring("const effect"))
				Expect(m.Script).To(ContainSubstring("drawFrame(ctx, s, t)"))
				Expect(m.Script).To(ContainSubstring("init(grid, params, w, h)"))
			})

			It("skips primitives smaller than epsilon on an all-white grid", func() {
				white := grid.Uniform(24, 12, 1)
				rec := surface.NewRecorder(testW, testH)
				m.DrawFrame(rec, m.Init(white, nil, testW, testH), 0)
				for _, p := range framePrims(rec) {
					if p.kind == "circle" {
						Expect(p.args[2]).To(BeNumerically(">=", effect.Epsilon))
					}
				}
			})
		})
	}
})
