package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/san-kum/inkfield/internal/logging"
	"github.com/spf13/cobra"
)

var (
	dataDir    string
	configFile string
	verbose    bool
	logJSON    bool

	effectName string
	svgPath    string
	gridID     string
	columns    int
	outWidth   int
	outHeight  int
	preset     string
	paramFlags []string
	output     string

	// Timed exports and preview
	frameRate int
	duration  float64
	backdrop  string
	keyColor  string

	theme string
)

// main wires the commands and exits 1 when one fails. An interrupt cancels
// the running command's context.
func main() {
	rootCmd := &cobra.Command{
		Use:           "inkfield",
		Short:         "turn vector artwork into animated ink fields",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logger := logging.New(os.Stderr, verbose)
			if logJSON {
				logger = logging.JSON(os.Stderr, verbose)
			}
			cmd.SetContext(logging.Into(cmd.Context(), logger))
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".inkfield", "data directory for stored grids")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
	rootCmd.PersistentFlags().BoolVar(&logJSON, "log-json", false, "log as JSON lines")

	sampleCmd := &cobra.Command{
		Use:   "sample",
		Short: "rasterize an svg and store its brightness grid",
		RunE:  sampleGrid,
	}
	sampleCmd.Flags().StringVar(&svgPath, "svg", "", "source svg file")
	sampleCmd.Flags().IntVar(&columns, "columns", 300, "grid columns")
	_ = sampleCmd.MarkFlagRequired("svg")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored grids",
		RunE:  listGrids,
	}

	inspectCmd := &cobra.Command{
		Use:   "inspect [grid_id]",
		Short: "plot a stored grid's darkness profile",
		Args:  cobra.ExactArgs(1),
		RunE:  inspectGrid,
	}

	exportCmd := &cobra.Command{
		Use:   "export [grid_id]",
		Short: "export a stored grid as json",
		Args:  cobra.ExactArgs(1),
		RunE:  exportGrid,
	}
	exportCmd.Flags().StringVarP(&output, "out", "o", "", "output file (default stdout)")

	deleteCmd := &cobra.Command{
		Use:   "delete [grid_id]",
		Short: "remove a stored grid",
		Args:  cobra.ExactArgs(1),
		RunE:  deleteGrid,
	}

	configCmd := &cobra.Command{
		Use:   "config [path]",
		Short: "write the resolved configuration as yaml",
		Args:  cobra.ExactArgs(1),
		RunE:  writeConfig,
	}
	addSourceFlags(configCmd)
	addTimedFlags(configCmd)

	renderCmd := &cobra.Command{
		Use:   "render",
		Short: "write the static svg for an effect",
		RunE:  renderSVG,
	}
	addSourceFlags(renderCmd)

	gifCmd := &cobra.Command{
		Use:   "gif",
		Short: "render an animated gif",
		RunE:  renderGIF,
	}
	addSourceFlags(gifCmd)
	addTimedFlags(gifCmd)

	framesCmd := &cobra.Command{
		Use:   "frames",
		Short: "render a png frame sequence",
		RunE:  renderFrames,
	}
	addSourceFlags(framesCmd)
	addTimedFlags(framesCmd)

	htmlCmd := &cobra.Command{
		Use:   "html",
		Short: "write a standalone animated html page",
		RunE:  renderHTML,
	}
	addSourceFlags(htmlCmd)

	previewCmd := &cobra.Command{
		Use:   "preview",
		Short: "animate an effect in the terminal",
		RunE:  runPreview,
	}
	addSourceFlags(previewCmd)
	previewCmd.Flags().IntVar(&frameRate, "fps", 30, "frame rate")
	previewCmd.Flags().StringVar(&theme, "theme", "ink", "color theme")

	effectsCmd := &cobra.Command{
		Use:   "effects [effect]",
		Short: "list effects and their parameters",
		Args:  cobra.MaximumNArgs(1),
		RunE:  listEffects,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets [effect]",
		Short: "list available presets for an effect",
		Args:  cobra.ExactArgs(1),
		RunE:  listPresets,
	}

	rootCmd.AddCommand(sampleCmd, listCmd, inspectCmd, exportCmd, deleteCmd, configCmd, renderCmd, gifCmd, framesCmd, htmlCmd, previewCmd, effectsCmd, presetsCmd)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}

func addSourceFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&effectName, "effect", "e", "lines", "effect name")
	cmd.Flags().StringVar(&svgPath, "svg", "", "source svg file")
	cmd.Flags().StringVar(&gridID, "grid", "", "stored grid id")
	cmd.Flags().IntVar(&columns, "columns", 300, "grid columns when sampling --svg")
	cmd.Flags().IntVar(&outWidth, "width", 800, "output width")
	cmd.Flags().IntVar(&outHeight, "height", 0, "output height (0 keeps the source aspect)")
	cmd.Flags().StringVar(&preset, "preset", "", "use preset parameters")
	cmd.Flags().StringArrayVarP(&paramFlags, "param", "p", nil, "effect parameter key=value (repeatable)")
	cmd.Flags().StringVarP(&output, "out", "o", "", "output path")
}

func addTimedFlags(cmd *cobra.Command) {
	cmd.Flags().IntVar(&frameRate, "fps", 30, "frames per second")
	cmd.Flags().Float64Var(&duration, "time", 4.0, "duration in seconds")
	cmd.Flags().StringVar(&backdrop, "backdrop", "#ffffff", "solid backdrop color")
	cmd.Flags().StringVar(&keyColor, "key", "", "color key backdrop (transparent in gifs)")
}
