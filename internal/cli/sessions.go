package cli

import (
	"errors"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/ha1tch/orbview/pkg/session"
)

func sessionsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "sessions",
		Aliases: []string{"s"},
		Short:   "Manage the session store",
	}

	cmd.AddCommand(
		sessionsListCmd(),
		sessionsAddCmd(),
		sessionsRmCmd(),
		sessionsImportCmd(),
		sessionsExportJSONCmd(),
	)

	return cmd
}

func sessionsListCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List sessions",
		Run: func(cmd *cobra.Command, args []string) {
			st := openStore(loadConfig())
			defer st.Close()

			entities, err := st.List()
			if err != nil {
				Bad.Printf("orb: list sessions: %v\n", err)
				os.Exit(1)
			}

			if asJSON {
				if err := session.WriteEntities(os.Stdout, entities); err != nil {
					Bad.Printf("orb: %v\n", err)
					os.Exit(1)
				}
				return
			}

			if len(entities) == 0 {
				Subtle.Println("  No sessions. Try `orb seed` for demo data.")
				return
			}

			rows := make([][]string, len(entities))
			for i, e := range entities {
				rows[i] = []string{
					shortID(e.ID),
					e.DisplayName,
					strconv.Itoa(e.NodeCount),
					strconv.Itoa(e.EdgeCount),
					strconv.Itoa(e.Stats.TotalWords),
					humanAge(e.UpdatedAt),
				}
			}
			table([]string{"ID", "NAME", "NODES", "EDGES", "WORDS", "UPDATED"}, rows)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the full entity JSON")
	return cmd
}

func sessionsAddCmd() *cobra.Command {
	var (
		name  string
		nodes int
		edges int
		words int
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a session",
		Run: func(cmd *cobra.Command, args []string) {
			if name == "" {
				Bad.Println("orb: --name is required")
				os.Exit(1)
			}

			st := openStore(loadConfig())
			defer st.Close()

			ent, err := st.Add(session.Entity{
				DisplayName: name,
				NodeCount:   nodes,
				EdgeCount:   edges,
				Stats:       session.Stats{TotalWords: words},
			})
			if err != nil {
				Bad.Printf("orb: add session: %v\n", err)
				os.Exit(1)
			}
			Good.Printf("  Added %q as %s\n", ent.DisplayName, ent.ID)
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Display name (required)")
	cmd.Flags().IntVar(&nodes, "nodes", 0, "Node count")
	cmd.Flags().IntVar(&edges, "edges", 0, "Edge count")
	cmd.Flags().IntVar(&words, "words", 0, "Total word count")
	return cmd
}

func sessionsRmCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rm <id>",
		Short: "Remove a session",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			st := openStore(loadConfig())
			defer st.Close()

			if err := st.Remove(args[0]); err != nil {
				if errors.Is(err, session.ErrNotFound) {
					Warn.Printf("  No session with id %q\n", args[0])
				} else {
					Bad.Printf("orb: remove session: %v\n", err)
				}
				os.Exit(1)
			}
			Good.Printf("  Removed %s\n", args[0])
		},
	}
}

func sessionsImportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import <file.json>",
		Short: "Import sessions from an entity JSON file",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			f, err := os.Open(args[0])
			if err != nil {
				Bad.Printf("orb: %v\n", err)
				os.Exit(1)
			}
			defer f.Close()

			entities, err := session.ReadEntities(f)
			if err != nil {
				Bad.Printf("orb: read %s: %v\n", args[0], err)
				os.Exit(1)
			}

			st := openStore(loadConfig())
			defer st.Close()

			inserted, err := st.Import(entities)
			if err != nil {
				Bad.Printf("orb: import: %v\n", err)
				os.Exit(1)
			}
			Good.Printf("  Imported %d of %d sessions\n", inserted, len(entities))
			if skipped := len(entities) - inserted; skipped > 0 {
				Subtle.Printf("  Skipped %d already present\n", skipped)
			}
		},
	}
}

func sessionsExportJSONCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export-json [file]",
		Short: "Write all sessions as entity JSON (stdout by default)",
		Args:  cobra.MaximumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			st := openStore(loadConfig())
			defer st.Close()

			entities, err := st.List()
			if err != nil {
				Bad.Printf("orb: list sessions: %v\n", err)
				os.Exit(1)
			}

			out := os.Stdout
			if len(args) == 1 && args[0] != "-" {
				f, err := os.Create(args[0])
				if err != nil {
					Bad.Printf("orb: %v\n", err)
					os.Exit(1)
				}
				defer f.Close()
				out = f
			}

			if err := session.WriteEntities(out, entities); err != nil {
				Bad.Printf("orb: %v\n", err)
				os.Exit(1)
			}
			if out != os.Stdout {
				Good.Printf("  Wrote %d sessions to %s\n", len(entities), args[0])
			}
		},
	}
}
