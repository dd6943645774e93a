package sampler

import (
	"bytes"
	"encoding/xml"
	"errors"
	"io"
	"strconv"
	"strings"
)

const fallbackSize = 100.0

// viewBox is the source region in user units.
type viewBox struct {
	X, Y, W, H float64
}

// intrinsicBox reads the root <svg> element and resolves the drawing region:
// viewBox first, then width/height, then a 100x100 fallback.
func intrinsicBox(data []byte) (viewBox, error) {
	dec := xml.NewDecoder(bytes.NewReader(data))
	dec.Strict = false
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			return viewBox{}, errors.New("no <svg> root element")
		}
		if err != nil {
			return viewBox{}, err
		}
		start, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}
		if start.Name.Local != "svg" {
			return viewBox{}, errors.New("root element is <" + start.Name.Local + ">, not <svg>")
		}
		return boxFromAttrs(start.Attr), nil
	}
}

func boxFromAttrs(attrs []xml.Attr) viewBox {
	var vb, width, height string
	for _, a := range attrs {
		switch a.Name.Local {
		case "viewBox":
			vb = a.Value
		case "width":
			width = a.Value
		case "height":
			height = a.Value
		}
	}

	if fields := strings.FieldsFunc(vb, func(r rune) bool { return r == ',' || r == ' ' || r == '\t' || r == '\n' }); len(fields) == 4 {
		var nums [4]float64
		valid := true
		for i, f := range fields {
			n, err := strconv.ParseFloat(f, 64)
			if err != nil {
				valid = false
				break
			}
			nums[i] = n
		}
		if valid && nums[2] > 0 && nums[3] > 0 {
			return viewBox{nums[0], nums[1], nums[2], nums[3]}
		}
	}

	w, okW := parseLength(width)
	h, okH := parseLength(height)
	if okW && okH {
		return viewBox{0, 0, w, h}
	}
	return viewBox{0, 0, fallbackSize, fallbackSize}
}

// parseLength accepts a plain or unit-suffixed length. Percentages carry no
// intrinsic size and are rejected.
func parseLength(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" || strings.HasSuffix(s, "%") {
		return 0, false
	}
	s = strings.TrimRight(s, "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ")
	n, err := strconv.ParseFloat(s, 64)
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}
