package halftone

import (
	"math"
	"strings"
	"testing"

	"github.com/san-kum/inkfield/internal/grid"
	"github.com/san-kum/inkfield/internal/param"
	"github.com/san-kum/inkfield/internal/surface"
)

func TestWidthCapped(t *testing.T) {
	g := grid.Uniform(10, 10, 0)
	p := param.Merge(Defaults(), param.Set{"rows": 10.0, "thickness": 1.5})
	strokes, limit := layout(g, p, 100, 100)
	if math.Abs(limit-9) > 1e-9 {
		t.Fatalf("expected limit 9, got %v", limit)
	}
	for _, s := range strokes {
		if w := Width(s.full, s.phase, 0, 0.4, limit, 1.3); w > limit+1e-9 {
			t.Fatalf("width %v exceeds limit %v", w, limit)
		}
	}
}

func TestWidthDepthZeroIgnoresWave(t *testing.T) {
	for _, phase := range []float64{0, 1, 2.5, 4} {
		if got := Width(3, phase, 0, 1, 100, 0.7); math.Abs(got-3) > 1e-9 {
			t.Errorf("phase %v: expected 3, got %v", phase, got)
		}
	}
}

func TestRowsFollowGrid(t *testing.T) {
	g := grid.Uniform(20, 7, 0)
	strokes, _ := layout(g, param.Merge(Defaults(), nil), 200, 70)
	ys := map[float64]bool{}
	for _, s := range strokes {
		ys[s.y] = true
	}
	if len(ys) != 7 {
		t.Errorf("expected 7 rows, got %d", len(ys))
	}
}

func TestDepthClamped(t *testing.T) {
	g := grid.Uniform(10, 10, 0)
	st := Init(g, param.Set{"depth": 5.0}, 100, 100).(*state)
	if st.depth != 1 {
		t.Errorf("expected depth clamped to 1, got %v", st.depth)
	}
}

func TestAllWhiteEmpty(t *testing.T) {
	g := grid.Uniform(10, 10, 1)
	rec := surface.NewRecorder(100, 100)
	DrawFrame(rec, Init(g, nil, 100, 100), 2)
	if n := len(rec.Named("DrawLine")); n != 0 {
		t.Errorf("expected nothing drawn, got %d lines", n)
	}
}

func TestGenerateMatchesFrameZero(t *testing.T) {
	g := grid.Uniform(30, 20, 0.4)
	svg := Generate(g, nil, 300, 200)
	rec := surface.NewRecorder(300, 200)
	DrawFrame(rec, Init(g, nil, 300, 200), 0)

	if got, want := strings.Count(svg, "<line"), len(rec.Named("DrawLine")); got != want {
		t.Errorf("svg has %d lines, frame zero draws %d", got, want)
	}
}
