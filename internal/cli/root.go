// Package cli defines the cobra commands of the coopastar tool.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/elektrokombinacija/coop-astar/internal/algo"
	"github.com/elektrokombinacija/coop-astar/internal/config"
	"github.com/elektrokombinacija/coop-astar/internal/logging"
)

var version = "dev" // set via ldflags at build time

// rootOptions holds the persistent flags shared by every command.
type rootOptions struct {
	configPath string
	logLevel   string
	logFormat  string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "coopastar",
		Short: "Prioritized multi-agent path planning on grids",
		Long: `coopastar plans collision-free paths for many agents on a 4-connected grid.

Agents are planned one at a time in input order with a space-time A* search;
every committed path is reserved so later agents route around it.`,
		Version:       version,
		SilenceErrors: true,
		SilenceUsage:  true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}

	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "Config file (default ./"+config.DefaultFile+" when present)")
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "info", "Log level: debug, info, warn, error")
	cmd.PersistentFlags().StringVar(&opts.logFormat, "log-format", "text", "Log format: text or json")

	cmd.AddCommand(newPlanCmd(opts))
	cmd.AddCommand(newCountCmd(opts))
	cmd.AddCommand(newGenerateCmd(opts))
	cmd.AddCommand(newValidateCmd(opts))
	cmd.AddCommand(newBenchCmd(opts))
	return cmd
}

// Execute runs the root command. Called from main.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		printError(os.Stderr, err.Error())
		stop()
		os.Exit(1)
	}
}

// SetVersion overrides the reported version.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

// load reads the config file and applies persistent flag overrides. The
// returned logger writes to the command's stderr and carries a fresh run id.
func (o *rootOptions) load(cmd *cobra.Command) (*config.Config, *slog.Logger, error) {
	cfg, err := o.readConfig()
	if err != nil {
		return nil, nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("log-level") {
		cfg.Log.Level = o.logLevel
	}
	if flags.Changed("log-format") {
		cfg.Log.Format = o.logFormat
	}

	logger, err := logging.New(cmd.ErrOrStderr(), cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return nil, nil, err
	}
	return cfg, logging.WithRun(logger, uuid.NewString()), nil
}

func (o *rootOptions) readConfig() (*config.Config, error) {
	if o.configPath != "" {
		return config.ReadConfig(o.configPath)
	}
	cfg, err := config.ReadConfig(config.DefaultFile)
	if errors.Is(err, fs.ErrNotExist) {
		return config.DefaultConfig(), nil
	}
	return cfg, err
}

// newSolver builds the planner selected by the config.
func newSolver(cfg *config.Config, logger *slog.Logger) (*algo.Prioritized, error) {
	opts := []algo.Option{
		algo.WithMaxExpansions(cfg.Planner.MaxExpansions),
		algo.WithLogger(logger),
	}
	switch cfg.Planner.Algorithm {
	case config.AlgorithmAStar:
		return algo.NewCoopAStar(opts...), nil
	case config.AlgorithmDijkstra:
		return algo.NewCoopDijkstra(opts...), nil
	default:
		return nil, fmt.Errorf("unknown algorithm %q (want %s or %s)",
			cfg.Planner.Algorithm, config.AlgorithmAStar, config.AlgorithmDijkstra)
	}
}
