package main

import (
	"encoding/json"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vanshika/socialgraph/internal/render"
)

func writeJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func newPathCmd(opts *rootOptions) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "path <source> <target>",
		Short: "Print the minimum-weight path between two users",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := bootstrap(cmd, opts, true)
			if err != nil {
				return err
			}
			defer a.close()

			path, err := a.svc.ShortestPath(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(cmd, path)
			}
			printf(cmd.OutOrStdout(), "%s (cost %d, %d hops)\n", strings.Join(path.Nodes, " -> "), path.Cost, path.Hops())
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	return cmd
}

func newCommunitiesCmd(opts *rootOptions) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "communities",
		Short: "List the cycle basis of the graph",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := bootstrap(cmd, opts, true)
			if err != nil {
				return err
			}
			defer a.close()

			cycles, err := a.svc.Communities(cmd.Context())
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(cmd, cycles)
			}
			if len(cycles) == 0 {
				printf(cmd.OutOrStdout(), "No cycles found.\n")
				return nil
			}
			for i, c := range cycles {
				printf(cmd.OutOrStdout(), "Cycle %d: %s\n", i+1, strings.Join(c.Members, ", "))
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	return cmd
}

func newSuggestCmd(opts *rootOptions) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "suggest <user>",
		Short: "Suggest friends by mutual connections",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := bootstrap(cmd, opts, true)
			if err != nil {
				return err
			}
			defer a.close()

			suggestions, err := a.svc.SuggestFriends(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(cmd, suggestions)
			}
			for _, s := range suggestions {
				printf(cmd.OutOrStdout(), "%s (mutual friends: %d)\n", s.User, s.MutualFriends)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	return cmd
}

func newCentralityCmd(opts *rootOptions) *cobra.Command {
	var (
		asJSON bool
		top    int
	)
	cmd := &cobra.Command{
		Use:   "centrality",
		Short: "Rank users by degree centrality",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := bootstrap(cmd, opts, true)
			if err != nil {
				return err
			}
			defer a.close()

			ranking, err := a.svc.Centrality(cmd.Context())
			if err != nil {
				return err
			}
			if top > 0 && top < len(ranking) {
				ranking = ranking[:top]
			}
			if asJSON {
				return writeJSON(cmd, ranking)
			}
			for _, r := range ranking {
				printf(cmd.OutOrStdout(), "%s: centrality = %.2f\n", r.User, r.Score)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	cmd.Flags().IntVar(&top, "top", 0, "only show the first n users")
	return cmd
}

func newRenderCmd(opts *rootOptions) *cobra.Command {
	var (
		output         string
		source, target string
	)
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render the graph as Graphviz DOT",
		Long: `Render the graph as Graphviz DOT with users pinned on a circle and
connection weights as edge labels. Pass --from and --to to highlight the
shortest path between two users.

Example:
  socialgraph render --from Alice --to Ivan | neato -Tpng > graph.png`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := bootstrap(cmd, opts, true)
			if err != nil {
				return err
			}
			defer a.close()

			renderOpts := render.DefaultOptions()
			if source != "" || target != "" {
				path, err := a.svc.ShortestPath(cmd.Context(), source, target)
				if err != nil {
					return err
				}
				renderOpts.Highlight = path.Nodes
			}

			snapshot, err := a.svc.Snapshot(cmd.Context())
			if err != nil {
				return err
			}
			if output == "" {
				return render.DOT(cmd.OutOrStdout(), snapshot, renderOpts)
			}

			f, err := os.Create(output)
			if err != nil {
				return err
			}
			if err := render.DOT(f, snapshot, renderOpts); err != nil {
				f.Close()
				return err
			}
			return f.Close()
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "write DOT to this file instead of stdout")
	cmd.Flags().StringVar(&source, "from", "", "highlight the shortest path starting at this user")
	cmd.Flags().StringVar(&target, "to", "", "highlight the shortest path ending at this user")
	return cmd
}
