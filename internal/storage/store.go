// Package storage keeps sampled grids on disk so a source only needs to be
// rasterized once. Each grid lives in its own directory holding
// metadata.json and grid.csv.
package storage

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/san-kum/inkfield/internal/grid"
)

var ErrNotFound = errors.New("storage: grid not found")

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type GridMetadata struct {
	ID           string     `json:"id"`
	Source       string     `json:"source"`
	Timestamp    time.Time  `json:"timestamp"`
	Cols         int        `json:"cols"`
	Rows         int        `json:"rows"`
	SourceWidth  float64    `json:"source_width"`
	SourceHeight float64    `json:"source_height"`
	Stats        grid.Stats `json:"stats"`
}

// Save writes g under a new ID derived from the source name.
func (s *Store) Save(source string, g *grid.Grid) (string, error) {
	now := time.Now()
	id := fmt.Sprintf("%s_%s", slug(source), strconv.FormatInt(now.UnixNano(), 36))
	dir := filepath.Join(s.baseDir, id)

	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}

	meta := GridMetadata{
		ID:           id,
		Source:       source,
		Timestamp:    now,
		Cols:         g.Cols,
		Rows:         g.Rows,
		SourceWidth:  g.SourceWidth,
		SourceHeight: g.SourceHeight,
		Stats:        g.Summary(),
	}

	metaFile, err := os.Create(filepath.Join(dir, "metadata.json"))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(dir, "grid.csv"))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	row := make([]string, g.Cols)
	for r := 0; r < g.Rows; r++ {
		for c := 0; c < g.Cols; c++ {
			row[c] = strconv.FormatFloat(g.At(c, r), 'f', -1, 64)
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", err
	}

	return id, nil
}

// List returns stored grids, newest first.
func (s *Store) List() ([]GridMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []GridMetadata{}, nil
		}
		return nil, err
	}

	grids := make([]GridMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		grids = append(grids, *meta)
	}

	sort.Slice(grids, func(i, j int) bool { return grids[i].Timestamp.After(grids[j].Timestamp) })
	return grids, nil
}

func (s *Store) Load(id string) (*GridMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, id, "metadata.json"))
	if err != nil {
		return nil, notFound(id, err)
	}

	var meta GridMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("storage: %s: %w", id, err)
	}

	return &meta, nil
}

// LoadGrid reads back the grid saved under id.
func (s *Store) LoadGrid(id string) (*grid.Grid, error) {
	meta, err := s.Load(id)
	if err != nil {
		return nil, err
	}

	file, err := os.Open(filepath.Join(s.baseDir, id, "grid.csv"))
	if err != nil {
		return nil, notFound(id, err)
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = meta.Cols
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("storage: %s: %w", id, err)
	}

	data := make([]float64, 0, meta.Cols*meta.Rows)
	for _, record := range records {
		for _, field := range record {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, fmt.Errorf("storage: %s: %w", id, err)
			}
			data = append(data, v)
		}
	}

	return grid.New(meta.Cols, meta.Rows, data, meta.SourceWidth, meta.SourceHeight)
}

func (s *Store) Delete(id string) error {
	dir := filepath.Join(s.baseDir, id)
	if _, err := os.Stat(dir); err != nil {
		return notFound(id, err)
	}
	return os.RemoveAll(dir)
}

func notFound(id string, err error) error {
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return err
}

func slug(source string) string {
	base := strings.TrimSuffix(filepath.Base(source), filepath.Ext(source))
	var b strings.Builder
	for _, r := range strings.ToLower(base) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case b.Len() > 0:
			b.WriteByte('-')
		}
	}
	out := strings.Trim(b.String(), "-")
	if out == "" || out == "." {
		return "grid"
	}
	return out
}
