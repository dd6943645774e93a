package surface

import (
	"image/color"
	"testing"
)

func TestRecorderClearDiscards(t *testing.T) {
	r := NewRecorder(10, 10)
	r.DrawCircle(1, 2, 3)
	r.Fill()
	r.SetColor(color.Transparent)
	r.Clear()
	r.SetLineWidth(2)
	r.DrawLine(0, 0, 5, 5)

	if len(r.Named("DrawCircle")) != 0 {
		t.Error("clear should discard earlier ops")
	}
	lines := r.Named("DrawLine")
	if len(lines) != 1 || lines[0].Width != 2 {
		t.Errorf("unexpected line ops: %+v", lines)
	}
}

func TestCompositeBackdropBeneath(t *testing.T) {
	s := New(4, 4)
	s.SetColor(color.Transparent)
	s.Clear()
	s.SetColor(color.Black)
	s.DrawRectangle(0, 0, 2, 4)
	s.Fill()

	out := Composite(s.Image(), color.RGBA{255, 0, 0, 255})
	if got := out.RGBAAt(0, 1); got != (color.RGBA{0, 0, 0, 255}) {
		t.Errorf("drawn pixel should stay on top, got %v", got)
	}
	if got := out.RGBAAt(3, 1); got != (color.RGBA{255, 0, 0, 255}) {
		t.Errorf("empty pixel should show backdrop, got %v", got)
	}
}
