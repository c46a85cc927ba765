package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/elektrokombinacija/coop-astar/internal/mapio"
	"github.com/elektrokombinacija/coop-astar/internal/sim"
)

func newCountCmd(root *rootOptions) *cobra.Command {
	var perAgent bool

	cmd := &cobra.Command{
		Use:   "count <schedule>",
		Short: "Count agent movements in a schedule",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, _, err := root.load(cmd); err != nil {
				return err
			}
			doc, err := mapio.ReadSchedule(args[0])
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			counts, total := sim.MovementCounts(doc.Schedule)
			if perAgent {
				for _, name := range sim.SortedNames(counts) {
					fmt.Fprintf(w, "%s: %d movements\n", name, counts[name])
				}
			}
			fmt.Fprintf(w, "Total movements of all agents: %d\n", total)

			m := sim.NewSimulator(doc.ToSchedule()).Run()
			printLabelValue(w, "Cost", m.Cost)
			printLabelValue(w, "Makespan", m.Makespan)
			printLabelValue(w, "Waits", m.Waits)
			if m.Collisions > 0 {
				printError(w, fmt.Sprintf("%d collisions during replay", m.Collisions))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&perAgent, "per-agent", false, "Also print the count of each agent")
	return cmd
}
