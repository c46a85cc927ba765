package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/elektrokombinacija/coop-astar/internal/algo"
	"github.com/elektrokombinacija/coop-astar/internal/bench"
	"github.com/elektrokombinacija/coop-astar/internal/warehouse"
)

func newBenchCmd(root *rootOptions) *cobra.Command {
	var (
		dbPath      string
		width       int
		height      int
		agents      []int
		placements  []string
		seed        int64
		instanceDir string
	)

	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Run both planners over a warehouse sweep and record the results",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := root.load(cmd)
			if err != nil {
				return err
			}
			bc := cfg.Bench
			flags := cmd.Flags()
			if flags.Changed("db") {
				bc.Database = dbPath
			}
			if flags.Changed("width") {
				bc.Width = width
			}
			if flags.Changed("height") {
				bc.Height = height
			}
			if flags.Changed("agents") {
				bc.Agents = agents
			}
			if flags.Changed("placements") {
				bc.Placements = placements
			}
			if flags.Changed("seed") {
				bc.Seed = seed
			}

			sweep := bench.Sweep{Width: bc.Width, Height: bc.Height, Agents: bc.Agents, Seed: bc.Seed}
			for _, s := range bc.Placements {
				p, err := warehouse.ParsePlacement(s)
				if err != nil {
					return err
				}
				sweep.Placements = append(sweep.Placements, p)
			}

			store, err := bench.OpenStore(bc.Database)
			if err != nil {
				return fmt.Errorf("opening %s: %w", bc.Database, err)
			}
			defer store.Close()

			w := cmd.OutOrStdout()
			opts := []algo.Option{algo.WithMaxExpansions(cfg.Planner.MaxExpansions)}
			runner := &bench.Runner{
				Solvers:     []algo.Solver{algo.NewCoopAStar(opts...), algo.NewCoopDijkstra(opts...)},
				Store:       store,
				InstanceDir: instanceDir,
				Logger:      logger,
				Progress: func(done, total int, r bench.Result) {
					status := "FAILED"
					if r.Success {
						status = fmt.Sprintf("OK (%.2fms, cost=%d)", r.RuntimeMs, r.Cost)
					}
					printDim(w, fmt.Sprintf("[%d/%d] %s / %s ... %s", done, total, r.Instance, r.Solver, status))
				},
			}

			runID, _, err := runner.Run(cmd.Context(), sweep)
			if err != nil {
				return err
			}
			summary, err := store.Summary(cmd.Context(), runID)
			if err != nil {
				return err
			}

			fmt.Fprintln(w)
			printHeader(w, "Benchmark summary")
			fmt.Fprintf(w, "%-14s %6s %8s %12s %10s %12s %10s\n",
				"Solver", "Runs", "Success", "Avg Time(ms)", "Avg Cost", "Avg Expand", "Conflicts")
			fmt.Fprintln(w, strings.Repeat("-", 78))
			for _, m := range summary {
				fmt.Fprintf(w, "%-14s %6d %8d %12.2f %10.2f %12.1f %10d\n",
					m.Solver, m.Runs, m.Successes, m.AvgRuntimeMs, m.AvgCost, m.AvgExpanded, m.Conflicts)
			}
			printLabelValue(w, "Run", runID)
			printLabelValue(w, "Database", bc.Database)
			return nil
		},
	}

	cmd.Flags().StringVar(&dbPath, "db", "", "SQLite results database")
	cmd.Flags().IntVar(&width, "width", 0, "Shelf columns")
	cmd.Flags().IntVar(&height, "height", 0, "Shelf rows")
	cmd.Flags().IntSliceVar(&agents, "agents", nil, "Agent counts to sweep")
	cmd.Flags().StringSliceVar(&placements, "placements", nil, "Placements to sweep")
	cmd.Flags().Int64Var(&seed, "seed", 0, "Base random seed")
	cmd.Flags().StringVar(&instanceDir, "instances", "", "Also write generated instances to this directory")
	return cmd
}
