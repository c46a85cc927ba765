package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/elektrokombinacija/coop-astar/internal/algo"
	"github.com/elektrokombinacija/coop-astar/internal/core"
	"github.com/elektrokombinacija/coop-astar/internal/mapio"
)

func newPlanCmd(root *rootOptions) *cobra.Command {
	var (
		algorithm     string
		maxExpansions int
		verify        bool
	)

	cmd := &cobra.Command{
		Use:   "plan <instance> <output>",
		Short: "Plan all agents of an instance and write the schedule",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := root.load(cmd)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("algorithm") {
				cfg.Planner.Algorithm = algorithm
			}
			if cmd.Flags().Changed("max-expansions") {
				cfg.Planner.MaxExpansions = maxExpansions
			}
			solver, err := newSolver(cfg, logger)
			if err != nil {
				return err
			}

			inst, err := mapio.LoadInstance(args[0])
			if err != nil {
				return err
			}
			logger.Info("planning", "instance", args[0], "solver", solver.Name(),
				"agents", len(inst.Agents), "width", inst.Map.Width, "height", inst.Map.Height)

			sched, err := solver.Solve(cmd.Context(), inst)
			if errors.Is(err, core.ErrNoSolution) {
				printError(cmd.OutOrStdout(), "Solution not found")
				return err
			}
			if err != nil {
				return err
			}

			if verify {
				if conflicts := algo.FindAllConflicts(sched); len(conflicts) > 0 {
					c := conflicts[0]
					return fmt.Errorf("schedule has %d conflicts, first between %s and %s at t=%d",
						len(conflicts), c.Agent1, c.Agent2, c.T)
				}
			}

			if err := mapio.WriteSchedule(args[1], sched); err != nil {
				return err
			}
			logger.Info("schedule written", "output", args[1], "cost", sched.Cost, "makespan", sched.Makespan())

			w := cmd.OutOrStdout()
			printSuccess(w, fmt.Sprintf("Planned %d agents with %s", len(inst.Agents), solver.Name()))
			printLabelValue(w, "Cost", sched.Cost)
			printLabelValue(w, "Makespan", sched.Makespan())
			printLabelValue(w, "Output", args[1])
			return nil
		},
	}

	cmd.Flags().StringVar(&algorithm, "algorithm", "astar", "Search variant: astar or dijkstra")
	cmd.Flags().IntVar(&maxExpansions, "max-expansions", 0, "Per-agent expansion cap (0 = unbounded)")
	cmd.Flags().BoolVar(&verify, "verify", false, "Check the schedule for conflicts before writing it")
	return cmd
}
