package cli

import (
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/ha1tch/orbview/internal/config"
	"github.com/ha1tch/orbview/pkg/orbit"
	"github.com/ha1tch/orbview/pkg/session"
)

// exportFlags collects the shared snapshot flags; zero values mean
// "take it from the config file".
type exportFlags struct {
	out    string
	width  int
	height int
	scale  float64
	steps  int
	title  string
	plain  bool
}

func (f *exportFlags) register(cmd *cobra.Command, defaultOut string) {
	cmd.Flags().StringVarP(&f.out, "out", "o", defaultOut, "Output file (- for stdout)")
	cmd.Flags().IntVar(&f.width, "width", 0, "Image width in pixels")
	cmd.Flags().IntVar(&f.height, "height", 0, "Image height in pixels")
	cmd.Flags().Float64Var(&f.scale, "scale", 0, "Supersampling factor")
	cmd.Flags().IntVar(&f.steps, "steps", -1, "Settle iterations before the frame")
	cmd.Flags().StringVar(&f.title, "title", "", "Title drawn above the orbit")
	cmd.Flags().BoolVar(&f.plain, "plain", false, "Skip session name labels")
}

// options merges the flags over the config export defaults.
func (f *exportFlags) options(cfg *config.Config) orbit.SnapshotOptions {
	opts := orbit.SnapshotOptions{
		Width:  cfg.Export.Width,
		Height: cfg.Export.Height,
		Scale:  cfg.Export.Scale,
		Steps:  cfg.Export.Steps,
		Labels: !f.plain,
		Title:  f.title,
	}
	if f.width > 0 {
		opts.Width = f.width
	}
	if f.height > 0 {
		opts.Height = f.height
	}
	if f.scale > 0 {
		opts.Scale = f.scale
	}
	if f.steps >= 0 {
		opts.Steps = f.steps
	}
	return opts
}

func exportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Render the session orbit to a file",
	}

	cmd.AddCommand(
		exportPNGCmd(),
		exportSVGCmd(),
		exportDOTCmd(),
	)

	return cmd
}

func exportPNGCmd() *cobra.Command {
	var flags exportFlags

	cmd := &cobra.Command{
		Use:   "png",
		Short: "Write a PNG snapshot",
		Run: func(cmd *cobra.Command, args []string) {
			runExport(flags, func(w io.Writer, entities []session.Entity, opts orbit.SnapshotOptions) error {
				return orbit.WritePNG(w, entities, opts)
			})
		},
	}

	flags.register(cmd, "orbit.png")
	return cmd
}

func exportSVGCmd() *cobra.Command {
	var flags exportFlags

	cmd := &cobra.Command{
		Use:   "svg",
		Short: "Write an SVG snapshot",
		Run: func(cmd *cobra.Command, args []string) {
			runExport(flags, func(w io.Writer, entities []session.Entity, opts orbit.SnapshotOptions) error {
				return orbit.WriteSVG(w, entities, opts)
			})
		},
	}

	flags.register(cmd, "orbit.svg")
	return cmd
}

func exportDOTCmd() *cobra.Command {
	var flags exportFlags

	cmd := &cobra.Command{
		Use:   "dot",
		Short: "Write the orbit as Graphviz DOT",
		Run: func(cmd *cobra.Command, args []string) {
			runExport(flags, func(w io.Writer, entities []session.Entity, opts orbit.SnapshotOptions) error {
				return orbit.WriteDOT(w, entities, opts)
			})
		},
	}

	flags.register(cmd, "orbit.dot")
	return cmd
}

// runExport loads the sessions and streams one snapshot through write.
func runExport(flags exportFlags, write func(io.Writer, []session.Entity, orbit.SnapshotOptions) error) {
	cfg := loadConfig()
	st := openStore(cfg)
	defer st.Close()

	entities, err := st.List()
	if err != nil {
		Bad.Printf("orb: list sessions: %v\n", err)
		os.Exit(1)
	}
	if len(entities) == 0 {
		Warn.Println("  No sessions to render. Try `orb seed` first.")
	}

	out := os.Stdout
	toFile := flags.out != "" && flags.out != "-"
	if toFile {
		f, err := os.Create(flags.out)
		if err != nil {
			Bad.Printf("orb: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		out = f
	}

	if err := write(out, entities, flags.options(cfg)); err != nil {
		Bad.Printf("orb: export: %v\n", err)
		os.Exit(1)
	}
	if toFile {
		Good.Printf("  Wrote %s\n", flags.out)
	}
}
