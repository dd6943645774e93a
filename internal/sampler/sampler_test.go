package sampler

import (
	"bytes"
	"context"
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

const halfInk = `<?xml version="1.0"?>
<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 200 100">
  <rect x="0" y="0" width="100" height="100" fill="#000000"/>
</svg>`

func TestSampleAspect(t *testing.T) {
	g, err := Sample(strings.NewReader(halfInk), 40)
	if err != nil {
		t.Fatalf("sample failed: %v", err)
	}

	if g.Cols != 40 || g.Rows != 20 {
		t.Fatalf("expected 40x20 grid, got %dx%d", g.Cols, g.Rows)
	}
	if math.Abs(g.Aspect-2) > 1e-9 {
		t.Errorf("expected aspect 2, got %v", g.Aspect)
	}
	if g.SourceWidth != 200 || g.SourceHeight != 100 {
		t.Errorf("expected source 200x100, got %vx%v", g.SourceWidth, g.SourceHeight)
	}
}

func TestSampleBrightness(t *testing.T) {
	g, err := Sample(strings.NewReader(halfInk), 40)
	if err != nil {
		t.Fatalf("sample failed: %v", err)
	}

	if b := g.At(5, 10); b > 0.05 {
		t.Errorf("expected ink on the left half, got brightness %v", b)
	}
	if b := g.At(35, 10); b < 0.95 {
		t.Errorf("expected empty right half, got brightness %v", b)
	}
}

func TestSampleRowsFollowAspect(t *testing.T) {
	tests := []struct {
		name string
		svg  string
		cols int
		rows int
	}{
		{"viewBox tall", `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 50 150"/>`, 30, 90},
		{"width height", `<svg xmlns="http://www.w3.org/2000/svg" width="300px" height="100px"/>`, 300, 100},
		{"fallback square", `<svg xmlns="http://www.w3.org/2000/svg"/>`, 64, 64},
		{"percent ignored", `<svg xmlns="http://www.w3.org/2000/svg" width="100%" height="50%"/>`, 10, 10},
		{"extreme wide", `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 10000 1"/>`, 300, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := Sample(strings.NewReader(tt.svg), tt.cols)
			if err != nil {
				t.Fatalf("sample failed: %v", err)
			}
			if g.Rows != tt.rows {
				t.Errorf("expected %d rows, got %d", tt.rows, g.Rows)
			}
			srcAspect := g.SourceWidth / g.SourceHeight
			if want := Rows(tt.cols, srcAspect); g.Rows != want {
				t.Errorf("rows %d != round(cols/aspect) %d", g.Rows, want)
			}
		})
	}
}

func TestSampleDefaultColumns(t *testing.T) {
	g, err := Sample(strings.NewReader(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 10 10"/>`), 0)
	if err != nil {
		t.Fatalf("sample failed: %v", err)
	}
	if g.Cols != 300 {
		t.Errorf("expected default 300 cols, got %d", g.Cols)
	}
}

func TestSampleLoadErrors(t *testing.T) {
	inputs := []string{
		"",
		"not markup at all",
		"<html><body/></html>",
	}
	for _, in := range inputs {
		g, err := Sample(strings.NewReader(in), 10)
		if err == nil {
			t.Errorf("input %q: expected error", in)
			continue
		}
		if g != nil {
			t.Errorf("input %q: expected no grid", in)
		}
		if !errors.Is(err, ErrLoad) {
			t.Errorf("input %q: expected ErrLoad, got %v", in, err)
		}
		var le *LoadError
		if !errors.As(err, &le) {
			t.Errorf("input %q: expected *LoadError", in)
		}
	}
}

func TestSampleFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logo.svg")
	if err := os.WriteFile(path, []byte(halfInk), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := SampleFile(path, 20); err != nil {
		t.Fatalf("sample file failed: %v", err)
	}

	_, err := SampleFile(filepath.Join(t.TempDir(), "missing.svg"), 20)
	if !errors.Is(err, ErrLoad) {
		t.Errorf("expected ErrLoad for missing file, got %v", err)
	}
}

func TestLoadLogs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logo.svg")
	if err := os.WriteFile(path, []byte(halfInk), 0644); err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	ctx := zerolog.New(&buf).Level(zerolog.DebugLevel).WithContext(context.Background())
	if _, err := Load(ctx, path, 20); err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if !strings.Contains(buf.String(), `"rows":10`) {
		t.Errorf("expected row count in log, got %q", buf.String())
	}

	buf.Reset()
	if _, err := Load(ctx, path+".missing", 20); !errors.Is(err, ErrLoad) {
		t.Errorf("expected ErrLoad, got %v", err)
	}
	if !strings.Contains(buf.String(), "sampling failed") {
		t.Errorf("expected failure to be logged, got %q", buf.String())
	}
}

func TestParseLength(t *testing.T) {
	tests := []struct {
		in   string
		want float64
		ok   bool
	}{
		{"120", 120, true},
		{"12.5pt", 12.5, true},
		{" 40px ", 40, true},
		{"50%", 0, false},
		{"", 0, false},
		{"-3", 0, false},
	}
	for _, tt := range tests {
		got, ok := parseLength(tt.in)
		if ok != tt.ok || got != tt.want {
			t.Errorf("parseLength(%q) = %v,%v want %v,%v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}
