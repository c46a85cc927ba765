package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/elektrokombinacija/coop-astar/internal/mapio"
)

func newValidateCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "validate <instance>",
		Short: "Check an instance file without planning",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, _, err := root.load(cmd); err != nil {
				return err
			}
			inst, err := mapio.LoadInstance(args[0])
			if err != nil {
				return err
			}
			printSuccess(cmd.OutOrStdout(), fmt.Sprintf("%s: %dx%d map, %d obstacles, %d agents",
				args[0], inst.Map.Width, inst.Map.Height, len(inst.Map.Obstacles()), len(inst.Agents)))
			return nil
		},
	}
}
