// Package standalone packs an effect, its grid and its parameters into a
// single HTML page that animates without this program.
package standalone

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"io"
	"strconv"
	"text/template"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/san-kum/inkfield/internal/effect"
	"github.com/san-kum/inkfield/internal/grid"
	"github.com/san-kum/inkfield/internal/mathx"
	"github.com/san-kum/inkfield/internal/param"
)

//go:embed page.html.tmpl
var pageSource string

var page = template.Must(template.New("page").Parse(pageSource))

type gridJSON struct {
	Cols int       `json:"cols"`
	Rows int       `json:"rows"`
	Data []float64 `json:"data"`
}

type pageData struct {
	Title      string
	Background string
	Epsilon    string
	Math       string
	Effect     string
	Grid       string
	Params     string
	Aspect     string
}

// Params returns the values embedded for m: p merged over the defaults,
// numbers as float64 and colors as #rrggbb.
func Params(m effect.Module, p param.Set) param.Set {
	defaults := m.Defaults()
	out := m.Params(p).Normalize()
	for k, def := range defaults {
		s, ok := def.(string)
		if !ok {
			continue
		}
		fallback, err := colorful.Hex(s)
		if err != nil {
			continue
		}
		out[k] = out.Hex(k, fallback)
	}
	return out
}

// Write renders the page for m over g. w and h fix the aspect the page
// keeps while it resizes with the viewport.
func Write(out io.Writer, m effect.Module, g *grid.Grid, p param.Set, w, h int) error {
	params := Params(m, p)

	gridData, err := json.Marshal(gridJSON{Cols: g.Cols, Rows: g.Rows, Data: g.Data()})
	if err != nil {
		return err
	}
	paramData, err := json.Marshal(params)
	if err != nil {
		return err
	}

	bg, _ := params["background"].(string)
	if bg == "" {
		bg = "#ffffff"
	}

	return page.Execute(out, pageData{
		Title:      m.Title,
		Background: bg,
		Epsilon:    strconv.FormatFloat(effect.Epsilon, 'f', -1, 64),
		Math:       mathx.Script,
		Effect:     m.Script,
		Grid:       string(gridData),
		Params:     string(paramData),
		Aspect:     strconv.FormatFloat(float64(w)/float64(h), 'f', -1, 64),
	})
}

// Build is Write into a byte slice.
func Build(m effect.Module, g *grid.Grid, p param.Set, w, h int) ([]byte, error) {
	var buf bytes.Buffer
	if err := Write(&buf, m, g, p, w, h); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
