// Command coopastarvis shows an instance and, optionally, animates a
// schedule for it.
package main

import (
	"context"
	"fmt"
	"os"

	"gioui.org/app"
	"gioui.org/unit"
	"github.com/spf13/cobra"

	"github.com/elektrokombinacija/coop-astar/internal/algo"
	"github.com/elektrokombinacija/coop-astar/internal/core"
	"github.com/elektrokombinacija/coop-astar/internal/mapio"
	"github.com/elektrokombinacija/coop-astar/internal/vis"
)

func main() {
	var plan bool

	cmd := &cobra.Command{
		Use:   "coopastarvis <instance> [schedule]",
		Short: "View an instance and animate its schedule",
		Long: `Without a schedule the viewer shows the map with start and goal markers.
With --plan the instance is planned with cooperative A* before viewing.

Keys: space play/pause, arrows step and change speed, Home rewind, R refit.`,
		Args:          cobra.RangeArgs(1, 2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			inst, err := mapio.LoadInstance(args[0])
			if err != nil {
				return err
			}

			var sched *core.Schedule
			switch {
			case len(args) == 2:
				doc, err := mapio.ReadSchedule(args[1])
				if err != nil {
					return err
				}
				sched = doc.ToSchedule()
			case plan:
				sched, err = algo.NewCoopAStar().Solve(context.Background(), inst)
				if err != nil {
					return err
				}
			}

			go func() {
				window := new(app.Window)
				window.Option(
					app.Title("coopastar: "+args[0]),
					app.Size(unit.Dp(1200), unit.Dp(900)),
				)
				if err := vis.NewApp(inst, sched).Run(window); err != nil {
					fmt.Fprintln(os.Stderr, err)
					os.Exit(1)
				}
				os.Exit(0)
			}()
			app.Main()
			return nil
		},
	}
	cmd.Flags().BoolVar(&plan, "plan", false, "Plan the instance when no schedule is given")

	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
