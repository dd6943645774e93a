package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"
	"github.com/rs/zerolog"
	"github.com/san-kum/inkfield/internal/config"
	"github.com/san-kum/inkfield/internal/driver"
	"github.com/san-kum/inkfield/internal/effect"
	"github.com/san-kum/inkfield/internal/export"
	"github.com/san-kum/inkfield/internal/grid"
	"github.com/san-kum/inkfield/internal/param"
	"github.com/san-kum/inkfield/internal/registry"
	"github.com/san-kum/inkfield/internal/sampler"
	"github.com/san-kum/inkfield/internal/standalone"
	"github.com/san-kum/inkfield/internal/storage"
	"github.com/san-kum/inkfield/internal/viz"
	"github.com/spf13/cobra"
)

// job bundles what every render command needs.
type job struct {
	cfg    *config.Config
	module effect.Module
	grid   *grid.Grid
	params param.Set
	w, h   int
}

func prepare(cmd *cobra.Command) (*job, error) {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return nil, err
	}
	mod, err := registry.New().Get(cfg.Effect)
	if err != nil {
		return nil, fmt.Errorf("%w (available: %s)", err, strings.Join(registry.New().List(), ", "))
	}
	g, err := loadGrid(cmd.Context(), cfg)
	if err != nil {
		return nil, err
	}
	w, h := cfg.Size(g)
	warnUnknown(cmd.Context(), mod, cfg.ParamSet())
	return &job{cfg: cfg, module: mod, grid: g, params: moduleParams(mod, cfg.ParamSet()), w: w, h: h}, nil
}

func (j *job) export(cfg *config.Config) (export.Job, error) {
	bg, err := exportBackdrop(cfg)
	if err != nil {
		return export.Job{}, err
	}
	return export.Job{
		Module:   j.module,
		Grid:     j.grid,
		Params:   j.params,
		Width:    j.w,
		Height:   j.h,
		FPS:      cfg.FPS,
		Duration: cfg.Duration,
		Backdrop: bg,
	}, nil
}

func sampleGrid(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	g, err := sampler.Load(cmd.Context(), svgPath, cfg.Columns)
	if err != nil {
		return err
	}

	st := storage.New(cfg.DataDir)
	if err := st.Init(); err != nil {
		return err
	}
	id, err := st.Save(svgPath, g)
	if err != nil {
		return err
	}

	fmt.Printf("grid saved: %s\n", id)
	fmt.Printf("size: %dx%d (source %gx%g)\n", g.Cols, g.Rows, g.SourceWidth, g.SourceHeight)
	return nil
}

func listGrids(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	st := storage.New(cfg.DataDir)
	grids, err := st.List()
	if err != nil {
		return err
	}

	if len(grids) == 0 {
		fmt.Println("no grids found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSOURCE\tTIME\tGRID\tINK")

	for _, g := range grids {
		fmt.Fprintf(w, "%s\t%s\t%s\t%dx%d\t%.1f%%\n",
			g.ID,
			g.Source,
			g.Timestamp.Format("2006-01-02 15:04:05"),
			g.Cols,
			g.Rows,
			g.Stats.InkFraction*100,
		)
	}

	return w.Flush()
}

func inspectGrid(cmd *cobra.Command, args []string) error {
	id := args[0]

	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	st := storage.New(cfg.DataDir)
	meta, err := st.Load(id)
	if err != nil {
		return err
	}
	g, err := st.LoadGrid(id)
	if err != nil {
		return err
	}

	fmt.Printf("grid: %s\n", meta.ID)
	fmt.Printf("source: %s (%gx%g)\n", meta.Source, meta.SourceWidth, meta.SourceHeight)
	fmt.Printf("size: %dx%d\n", g.Cols, g.Rows)

	s := g.Summary()
	fmt.Printf("darkness: min %.3f  mean %.3f  max %.3f\n", s.MinDarkness, s.MeanDarkness, s.MaxDarkness)
	fmt.Printf("ink: %.1f%%\n\n", s.InkFraction*100)

	graph := asciigraph.Plot(g.ColumnProfile(),
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption("mean darkness by column"),
	)
	fmt.Println(graph)
	return nil
}

func exportGrid(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	st := storage.New(cfg.DataDir)

	if output == "" {
		return st.Export(os.Stdout, args[0])
	}

	f, err := os.Create(output)
	if err != nil {
		return err
	}
	if err := st.Export(f, args[0]); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	fmt.Printf("exported to %s\n", output)
	return nil
}

func deleteGrid(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	if err := storage.New(cfg.DataDir).Delete(args[0]); err != nil {
		return err
	}
	fmt.Printf("deleted %s\n", args[0])
	return nil
}

func writeConfig(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	if err := config.Save(args[0], cfg); err != nil {
		return err
	}
	fmt.Printf("config written to %s\n", args[0])
	return nil
}

func renderSVG(cmd *cobra.Command, args []string) error {
	j, err := prepare(cmd)
	if err != nil {
		return err
	}
	path := outputPath(j.cfg, ".svg")
	if err := export.WriteSVG(path, j.module, j.grid, j.params, j.w, j.h); err != nil {
		return err
	}
	fmt.Printf("wrote %s (%dx%d)\n", path, j.w, j.h)
	return nil
}

func renderGIF(cmd *cobra.Command, args []string) error {
	j, err := prepare(cmd)
	if err != nil {
		return err
	}
	ej, err := j.export(j.cfg)
	if err != nil {
		return err
	}
	path := outputPath(j.cfg, ".gif")
	if err := export.WriteGIF(cmd.Context(), path, ej); err != nil {
		return err
	}
	fmt.Printf("wrote %s (%d frames)\n", path, ej.Frames())
	return nil
}

func renderFrames(cmd *cobra.Command, args []string) error {
	j, err := prepare(cmd)
	if err != nil {
		return err
	}
	ej, err := j.export(j.cfg)
	if err != nil {
		return err
	}
	dir := outputPath(j.cfg, "-frames")
	if err := export.WritePNGs(cmd.Context(), dir, ej); err != nil {
		return err
	}
	fmt.Printf("wrote %d frames to %s\n", ej.Frames(), dir)
	return nil
}

func renderHTML(cmd *cobra.Command, args []string) error {
	j, err := prepare(cmd)
	if err != nil {
		return err
	}
	page, err := standalone.Build(j.module, j.grid, j.params, j.w, j.h)
	if err != nil {
		return err
	}
	path := outputPath(j.cfg, ".html")
	if err := os.WriteFile(path, page, 0644); err != nil {
		return err
	}
	zerolog.Ctx(cmd.Context()).Debug().Str("effect", j.module.Name()).Int("bytes", len(page)).Msg("page written")
	fmt.Printf("wrote %s\n", path)
	return nil
}

func runPreview(cmd *cobra.Command, args []string) error {
	j, err := prepare(cmd)
	if err != nil {
		return err
	}

	ctrl := driver.New(j.module, j.grid, j.params, j.w, j.h)
	m, err := viz.NewModel(registry.New(), ctrl, j.cfg.FPS).WithTheme(theme)
	if err != nil {
		return err
	}

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(cmd.Context()))
	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
}

func listEffects(cmd *cobra.Command, args []string) error {
	reg := registry.New()
	names := reg.List()
	if len(args) == 1 {
		names = args
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	for i, name := range names {
		m, err := reg.Get(name)
		if err != nil {
			return err
		}
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintf(w, "%s\t%s\n", m.Name(), m.Title)
		fmt.Fprintln(w, "  KEY\tKIND\tMIN\tMAX\tSTEP\tDEFAULT")
		for _, d := range m.Schema() {
			if d.Kind == param.Color {
				fmt.Fprintf(w, "  %s\t%s\t\t\t\t%v\n", d.Key, d.Kind, d.Default)
				continue
			}
			fmt.Fprintf(w, "  %s\t%s\t%g\t%g\t%g\t%v\n", d.Key, d.Kind, d.Min, d.Max, d.Step, d.Default)
		}
	}
	return w.Flush()
}

func listPresets(cmd *cobra.Command, args []string) error {
	presets := config.ListPresets(args[0])
	if len(presets) == 0 {
		fmt.Printf("no presets for effect: %s\n", args[0])
		return nil
	}
	fmt.Printf("presets for %s:\n", args[0])
	for _, p := range presets {
		fmt.Printf("  %s\n", p)
	}
	return nil
}
