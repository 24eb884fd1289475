package main

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/vanshika/socialgraph/internal/server"
	"github.com/vanshika/socialgraph/internal/service"
)

func newServeCmd(opts *rootOptions) *cobra.Command {
	var saveOnExit bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the graph over HTTP",
		Long: `Serve the graph over a JSON HTTP API until interrupted. The graph is
saved to the configured store on graceful shutdown unless --save-on-exit=false.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := bootstrap(cmd, opts, true)
			if err != nil {
				return err
			}
			defer a.close()

			metricsHandler := a.metrics.Handler()
			if !a.cfg.HTTP.MetricsEnabled {
				metricsHandler = nil
			}

			batch := service.NewBatchPathFinder(a.svc, a.cfg.Batch.Workers, a.cfg.Batch.MaxPairs)
			router := server.NewRouter(a.logger, server.RouterDependencies{
				Health:           a.svc,
				API:              server.NewAPIHandlers(a.logger, a.svc, batch),
				Metrics:          metricsHandler,
				AllowedOrigins:   a.cfg.HTTP.AllowedOrigins(),
				AllowCredentials: true,
			})

			srv := server.New(a.logger, a.cfg.HTTP, router)
			runErr := srv.Run(cmd.Context())
			if runErr != nil {
				a.logger.Error("server stopped unexpectedly", "error", runErr)
			}

			if saveOnExit {
				saveCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
				defer cancel()
				if err := a.svc.Save(saveCtx); err != nil {
					return err
				}
			}
			return runErr
		},
	}

	cmd.Flags().BoolVar(&saveOnExit, "save-on-exit", true, "save the graph to the store when the server stops")
	return cmd
}
