package cli

import (
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/ha1tch/orbview/pkg/session"
)

func seedCmd() *cobra.Command {
	var (
		count int
		seed  int64
	)

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Add demo sessions to the store",
		Run: func(cmd *cobra.Command, args []string) {
			st := openStore(loadConfig())
			defer st.Close()

			if seed == 0 {
				seed = time.Now().UnixNano()
			}
			entities, err := session.Seed(st, count, seed)
			if err != nil {
				Bad.Printf("orb: seed: %v\n", err)
				os.Exit(1)
			}

			Good.Printf("  Seeded %d sessions\n", len(entities))
			for _, e := range entities {
				Subtle.Printf("    %s  %s\n", shortID(e.ID), e.DisplayName)
			}
		},
	}

	cmd.Flags().IntVar(&count, "count", 8, "Number of sessions to create")
	cmd.Flags().Int64Var(&seed, "seed", 0, "Random seed (0 uses the clock)")
	return cmd
}
