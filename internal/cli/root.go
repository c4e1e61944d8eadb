// Package cli implements the orb command line interface.
package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/ha1tch/orbview/internal/config"
	"github.com/ha1tch/orbview/pkg/session"
)

var version = "0.3.0"

var (
	flagConfig string
	flagDB     string
)

var rootCmd = &cobra.Command{
	Use:   "orb",
	Short: "Manage and picture orbview sessions",
	Long: "orb manages the orbview session store and renders the session\n" +
		"orbit as PNG, SVG, or Graphviz output. Run orbview for the\n" +
		"interactive terminal viewer.",
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: false,
}

func init() {
	rootCmd.SetVersionTemplate("orb {{ .Version }}\n")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Config file path (default: XDG config dir)")
	rootCmd.PersistentFlags().StringVar(&flagDB, "db", "", "Session database path (overrides config)")

	rootCmd.AddCommand(
		sessionsCmd(),
		seedCmd(),
		exportCmd(),
		serveCmd(),
	)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// loadConfig reads the configured or default config file, exiting on a
// broken one rather than running against half-read settings.
func loadConfig() *config.Config {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		Bad.Printf("orb: %v\n", err)
		os.Exit(1)
	}
	return cfg
}

// storePath resolves the database location: --db flag first, then the
// config file, then the per-user default.
func storePath(cfg *config.Config) string {
	if flagDB != "" {
		return flagDB
	}
	if cfg.Database.Path != "" {
		return cfg.Database.Path
	}
	path, err := session.DefaultPath()
	if err != nil {
		Bad.Printf("orb: %v\n", err)
		os.Exit(1)
	}
	return path
}

// openStore opens the session store for a command run.
func openStore(cfg *config.Config) *session.Store {
	st, err := session.Open(storePath(cfg))
	if err != nil {
		Bad.Printf("orb: open store: %v\n", err)
		os.Exit(1)
	}
	return st
}
