package grid

import (
	"errors"
	"math"
	"testing"
)

func TestNewValidates(t *testing.T) {
	if _, err := New(0, 3, nil, 1, 1); err == nil {
		t.Error("expected error for zero cols")
	}
	if _, err := New(2, 2, []float64{1, 1, 1}, 1, 1); !errors.Is(err, ErrShape) {
		t.Errorf("expected ErrShape, got %v", err)
	}
}

func TestNewCopiesAndClamps(t *testing.T) {
	data := []float64{-1, 0.5, 2, math.NaN()}
	g, err := New(2, 2, data, 20, 20)
	if err != nil {
		t.Fatalf("new failed: %v", err)
	}
	data[1] = 0

	want := []float64{0, 0.5, 1, 1}
	for i, v := range g.Data() {
		if v != want[i] {
			t.Errorf("cell %d: expected %v, got %v", i, want[i], v)
		}
	}
	if g.Aspect != 1 {
		t.Errorf("expected aspect 1, got %v", g.Aspect)
	}
}

func TestDarkness(t *testing.T) {
	g := Uniform(4, 4, 0.25)
	if d := g.Darkness(0.3, 0.7); math.Abs(d-0.75) > 1e-12 {
		t.Errorf("expected darkness 0.75, got %v", d)
	}
}

func TestOutputSizeUsesSourceAspect(t *testing.T) {
	g, _ := New(300, 100, make([]float64, 300*100), 1000, 333)
	w, h := g.OutputSize(900)
	if w != 900 || h != 300 {
		t.Errorf("expected 900x300, got %dx%d", w, h)
	}
}

func TestSummary(t *testing.T) {
	g, _ := New(2, 1, []float64{0, 1}, 2, 1)
	s := g.Summary()
	if s.MinDarkness != 0 || s.MaxDarkness != 1 || s.MeanDarkness != 0.5 || s.InkFraction != 0.5 {
		t.Errorf("unexpected stats: %+v", s)
	}
	p := g.ColumnProfile()
	if p[0] != 1 || p[1] != 0 {
		t.Errorf("unexpected profile: %v", p)
	}
}
