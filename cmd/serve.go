package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/bnema/stockboard-cli/internal/adapters/server"
	"github.com/spf13/cobra"
)

func newServeCmd(app *app) *cobra.Command {
	var listen string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the discussion board over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			cfg := server.Config{
				Listen: app.cfg.Server.Listen,
				Rate:   app.cfg.Server.Rate,
				Burst:  app.cfg.Server.Burst,
			}
			if listen != "" {
				cfg.Listen = listen
			}

			return server.New(app.board, cfg, app.logger).Run(ctx)
		},
	}

	cmd.Flags().StringVar(&listen, "listen", "", "Listen address (default: server.listen from config)")

	return cmd
}
