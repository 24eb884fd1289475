package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vanshika/socialgraph/internal/generator"
	"github.com/vanshika/socialgraph/internal/repository"
)

func newGenerateCmd(opts *rootOptions) *cobra.Command {
	cfg := generator.DefaultConfig()
	var output string

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a synthetic social graph",
		Long: `Generate a synthetic, connected social graph. The result replaces the
contents of the configured store, or is written to --output as a JSON snapshot.

Examples:
  socialgraph generate --users 500 --seed 7
  socialgraph generate --users 50 --output demo.json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cfg.TriangleChance < 0 || cfg.TriangleChance > 1 {
				return fmt.Errorf("--triangle-chance must be within [0,1], got %v", cfg.TriangleChance)
			}
			snapshot, err := generator.New(cfg).Generate(cmd.Context())
			if err != nil {
				return fmt.Errorf("generation failed: %w", err)
			}

			if output != "" {
				if err := repository.NewFileRepository(output).Save(cmd.Context(), snapshot); err != nil {
					return err
				}
				printf(cmd.OutOrStdout(), "Generated %d users and %d connections into %s\n",
					len(snapshot.Nodes), len(snapshot.Edges), output)
				return nil
			}

			a, err := bootstrap(cmd, opts, false)
			if err != nil {
				return err
			}
			defer a.close()
			if err := a.svc.Replace(cmd.Context(), snapshot); err != nil {
				return err
			}
			if err := a.svc.Save(cmd.Context()); err != nil {
				return err
			}
			printf(cmd.OutOrStdout(), "Generated %d users and %d connections into %s\n",
				len(snapshot.Nodes), len(snapshot.Edges), a.svc.StoreName())
			return nil
		},
	}

	cmd.Flags().IntVar(&cfg.NumUsers, "users", cfg.NumUsers, "number of users to generate")
	cmd.Flags().IntVar(&cfg.ConnectionsPerUser, "connections", cfg.ConnectionsPerUser, "average connections per user")
	cmd.Flags().Float64Var(&cfg.TriangleChance, "triangle-chance", cfg.TriangleChance, "probability of closing a triangle with a friend of a friend")
	cmd.Flags().IntVar(&cfg.MaxWeight, "max-weight", cfg.MaxWeight, "largest connection weight")
	cmd.Flags().Int64Var(&cfg.Seed, "seed", cfg.Seed, "random seed for deterministic generation (0 = time based)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "write a JSON snapshot here instead of the configured store")
	return cmd
}

func newImportCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "import <snapshot.json>",
		Short: "Replace the stored graph with a JSON snapshot",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			snapshot, err := repository.NewFileRepository(args[0]).Load(cmd.Context())
			if err != nil {
				return fmt.Errorf("read %s: %w", args[0], err)
			}

			a, err := bootstrap(cmd, opts, false)
			if err != nil {
				return err
			}
			defer a.close()

			if err := a.svc.Replace(cmd.Context(), snapshot); err != nil {
				return err
			}
			if err := a.svc.Save(cmd.Context()); err != nil {
				return err
			}
			printf(cmd.OutOrStdout(), "Imported %d users and %d connections into %s\n",
				len(snapshot.Nodes), len(snapshot.Edges), a.svc.StoreName())
			return nil
		},
	}
}

func newExportCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "export <snapshot.json>",
		Short: "Write the stored graph to a JSON snapshot",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := bootstrap(cmd, opts, true)
			if err != nil {
				return err
			}
			defer a.close()

			snapshot, err := a.svc.Snapshot(cmd.Context())
			if err != nil {
				return err
			}
			if err := repository.NewFileRepository(args[0]).Save(cmd.Context(), snapshot); err != nil {
				return err
			}
			printf(cmd.OutOrStdout(), "Exported %d users and %d connections to %s\n",
				len(snapshot.Nodes), len(snapshot.Edges), args[0])
			return nil
		},
	}
}
