package storage

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/san-kum/inkfield/internal/grid"
)

func sampleGrid(t *testing.T) *grid.Grid {
	t.Helper()
	g, err := grid.New(3, 2, []float64{0, 0.25, 0.5, 0.75, 1, 0.125}, 300, 200)
	if err != nil {
		t.Fatal(err)
	}
	return g
}

func TestStoreSaveLoad(t *testing.T) {
	tmpDir := t.TempDir()
	st := New(tmpDir)

	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	g := sampleGrid(t)
	id, err := st.Save("art/Logo Mark.svg", g)
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	if id == "" {
		t.Error("expected non-empty grid id")
	}

	meta, err := st.Load(id)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if meta.Cols != 3 || meta.Rows != 2 {
		t.Errorf("expected 3x2, got %dx%d", meta.Cols, meta.Rows)
	}

	if meta.SourceWidth != 300 {
		t.Errorf("expected source width 300, got %f", meta.SourceWidth)
	}

	loaded, err := st.LoadGrid(id)
	if err != nil {
		t.Fatalf("load grid failed: %v", err)
	}

	if diff := cmp.Diff(g.Data(), loaded.Data()); diff != "" {
		t.Errorf("grid data mismatch (-want +got):\n%s", diff)
	}

	if loaded.SourceHeight != 200 {
		t.Errorf("expected source height 200, got %f", loaded.SourceHeight)
	}
}

func TestStoreList(t *testing.T) {
	tmpDir := t.TempDir()
	st := New(tmpDir)

	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	grids, err := st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}

	if len(grids) != 0 {
		t.Errorf("expected 0 grids, got %d", len(grids))
	}

	if _, err := st.Save("a.svg", sampleGrid(t)); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if _, err := st.Save("b.svg", sampleGrid(t)); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	grids, err = st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}

	if len(grids) != 2 {
		t.Errorf("expected 2 grids, got %d", len(grids))
	}
}

func TestStoreListMissingDir(t *testing.T) {
	st := New(filepath.Join(t.TempDir(), "absent"))
	grids, err := st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(grids) != 0 {
		t.Errorf("expected no grids, got %d", len(grids))
	}
}

func TestStoreFileStructure(t *testing.T) {
	tmpDir := t.TempDir()
	st := New(tmpDir)

	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	id, err := st.Save("logo.svg", sampleGrid(t))
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	dir := filepath.Join(tmpDir, id)
	if _, err := os.Stat(filepath.Join(dir, "metadata.json")); os.IsNotExist(err) {
		t.Error("metadata.json not created")
	}
	if _, err := os.Stat(filepath.Join(dir, "grid.csv")); os.IsNotExist(err) {
		t.Error("grid.csv not created")
	}
}

func TestStoreNotFound(t *testing.T) {
	st := New(t.TempDir())

	if _, err := st.Load("missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Load: expected ErrNotFound, got %v", err)
	}
	if _, err := st.LoadGrid("missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("LoadGrid: expected ErrNotFound, got %v", err)
	}
	if err := st.Delete("missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Delete: expected ErrNotFound, got %v", err)
	}
}

func TestStoreDelete(t *testing.T) {
	st := New(t.TempDir())
	id, err := st.Save("logo.svg", sampleGrid(t))
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if err := st.Delete(id); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if _, err := st.Load(id); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected deleted grid to be gone, got %v", err)
	}
}

func TestSlug(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"art/Logo Mark.svg", "logo-mark"},
		{"x.svg", "x"},
		{"---.svg", "grid"},
		{"", "grid"},
	}
	for _, tt := range tests {
		if got := slug(tt.in); got != tt.want {
			t.Errorf("slug(%q): expected %q, got %q", tt.in, tt.want, got)
		}
	}
}
