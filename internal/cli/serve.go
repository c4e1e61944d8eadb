package cli

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/ha1tch/orbview/internal/config"
	"github.com/ha1tch/orbview/internal/server"
	"github.com/ha1tch/orbview/pkg/session"
)

func serveCmd() *cobra.Command {
	var (
		bind string
		port int
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(flagConfig)
			if err != nil {
				return err
			}
			if bind != "" {
				cfg.Server.Bind = bind
			}
			if port > 0 {
				cfg.Server.Port = port
			}

			st, err := session.Open(storePath(cfg))
			if err != nil {
				return fmt.Errorf("open store: %w", err)
			}
			defer st.Close()

			srv := server.New(st, cfg.Export, version)
			httpServer := &http.Server{
				Addr:    cfg.Server.Addr(),
				Handler: srv,
			}

			// Graceful shutdown
			done := make(chan os.Signal, 1)
			signal.Notify(done, os.Interrupt, syscall.SIGTERM)

			go func() {
				log.Printf("orbview api serving on %s", httpServer.Addr)
				log.Printf("  db: %s", st.Path)
				if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Printf("server error: %v", err)
					os.Exit(1)
				}
			}()

			<-done
			log.Println("shutting down...")

			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return httpServer.Shutdown(ctx)
		},
	}

	cmd.Flags().StringVar(&bind, "bind", "", "Bind address (overrides config)")
	cmd.Flags().IntVar(&port, "port", 0, "Port (overrides config)")
	return cmd
}
