package cli

import (
	"fmt"
	"math/rand"

	"github.com/spf13/cobra"

	"github.com/elektrokombinacija/coop-astar/internal/mapio"
	"github.com/elektrokombinacija/coop-astar/internal/warehouse"
)

func newGenerateCmd(root *rootOptions) *cobra.Command {
	var (
		p         warehouse.Params
		placement string
		seed      int64
		output    string
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a warehouse benchmark instance",
		Long: `Generate a warehouse floor of 2x3 shelf blocks separated by aisles.

Agents start on the outer ring and get goals next to shelves. The file name
defaults to map_<height>by<width>_agents<n>_<placement>.yaml.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, logger, err := root.load(cmd)
			if err != nil {
				return err
			}
			if p.Placement, err = warehouse.ParsePlacement(placement); err != nil {
				return err
			}

			inst, err := warehouse.Generate(p, rand.New(rand.NewSource(seed)))
			if err != nil {
				return err
			}
			if output == "" {
				output = p.FileName()
			}
			if err := mapio.WriteInstance(output, inst); err != nil {
				return err
			}
			logger.Debug("instance generated", "output", output, "seed", seed)

			printSuccess(cmd.OutOrStdout(), fmt.Sprintf("Wrote %dx%d warehouse with %d agents to %s",
				inst.Map.Width, inst.Map.Height, len(inst.Agents), output))
			return nil
		},
	}

	cmd.Flags().IntVar(&p.Width, "width", 2, "Shelf columns (at least 2)")
	cmd.Flags().IntVar(&p.Height, "height", 2, "Shelf rows (at least 2)")
	cmd.Flags().IntVar(&p.Agents, "agents", 1, "Number of agents")
	cmd.Flags().StringVar(&placement, "placement", string(warehouse.Adjacent), "Start placement: adjacent, spaced or random")
	cmd.Flags().Int64Var(&seed, "seed", 1, "Random seed")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file")
	return cmd
}
