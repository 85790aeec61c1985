package cli

import (
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/zapponejosh/amlich/internal/api"
	"github.com/zapponejosh/amlich/internal/logger"
)

func serveCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			log := logger.Setup(a.cfg)
			log.Info("starting amlich API",
				slog.String("env", a.cfg.Env),
				slog.Int("port", a.cfg.Port),
				slog.Float64("timezone", a.cfg.TimeZone),
			)

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			return api.Run(ctx, a.cfg, log)
		},
	}
}
