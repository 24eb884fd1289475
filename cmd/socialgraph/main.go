// Package main provides the socialgraph CLI.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vanshika/socialgraph/internal/config"
	"github.com/vanshika/socialgraph/internal/console"
	"github.com/vanshika/socialgraph/internal/logging"
	"github.com/vanshika/socialgraph/internal/metrics"
	"github.com/vanshika/socialgraph/internal/repository"
	"github.com/vanshika/socialgraph/internal/service"
)

type rootOptions struct {
	configPath string
	backend    string
	logLevel   string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:   "socialgraph",
		Short: "Weighted social network explorer",
		Long: `socialgraph keeps a weighted, undirected graph of users and their
connections, answers shortest-path, community, friend-suggestion and
centrality queries, and persists snapshots to a JSON file, SQLite or Neo4j.

Without a subcommand it starts the interactive menu.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConsole(cmd, opts)
		},
	}

	rootCmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "path to a YAML config file (default $"+config.EnvConfigFile+")")
	rootCmd.PersistentFlags().StringVar(&opts.backend, "store", "", "override the snapshot store backend (file|sqlite|neo4j)")
	rootCmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "override the log level (debug|info|warn|error)")

	rootCmd.AddCommand(
		newConsoleCmd(opts),
		newServeCmd(opts),
		newGenerateCmd(opts),
		newImportCmd(opts),
		newExportCmd(opts),
		newPathCmd(opts),
		newCommunitiesCmd(opts),
		newSuggestCmd(opts),
		newCentralityCmd(opts),
		newRenderCmd(opts),
	)
	return rootCmd
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

// app bundles the collaborators shared by every subcommand.
type app struct {
	cfg     config.Config
	logger  *slog.Logger
	metrics *metrics.Metrics
	repo    repository.SnapshotRepository
	svc     *service.GraphService
}

// bootstrap resolves configuration, opens the configured store and, when
// load is set, populates the graph from it.
func bootstrap(cmd *cobra.Command, opts *rootOptions, load bool) (*app, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if opts.backend != "" {
		cfg.Store.Backend = opts.backend
		if err := cfg.Validate(); err != nil {
			return nil, fmt.Errorf("load config: %w", err)
		}
	}
	if opts.logLevel != "" {
		cfg.Logging.Level = opts.logLevel
	}

	logger := logging.New(cfg.Logging, cmd.ErrOrStderr())
	m := metrics.New()

	ctx := cmd.Context()
	repo, err := repository.Open(ctx, cfg)
	if err != nil {
		logger.Error("failed to open snapshot store", "backend", cfg.Store.Backend, "error", err)
		return nil, fmt.Errorf("open %s store: %w", cfg.Store.Backend, err)
	}

	a := &app{
		cfg:     cfg,
		logger:  logger,
		metrics: m,
		repo:    repo,
		svc:     service.NewGraphService(repo, logger, m),
	}
	if load {
		if _, err := a.svc.Load(ctx); err != nil {
			a.close()
			return nil, err
		}
	}
	return a, nil
}

func (a *app) close() {
	if err := a.repo.Close(context.Background()); err != nil {
		a.logger.Warn("closing snapshot store failed", "store", a.repo.Name(), "error", err)
	}
}

func newConsoleCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "console",
		Short: "Start the interactive menu",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConsole(cmd, opts)
		},
	}
}

func runConsole(cmd *cobra.Command, opts *rootOptions) error {
	a, err := bootstrap(cmd, opts, true)
	if err != nil {
		return err
	}
	defer a.close()

	return console.New(a.svc, cmd.InOrStdin(), cmd.OutOrStdout(), a.logger).Run(cmd.Context())
}

func printf(w io.Writer, format string, args ...any) {
	_, _ = fmt.Fprintf(w, format, args...)
}
