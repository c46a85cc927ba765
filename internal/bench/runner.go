package bench

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"path/filepath"
	"runtime"
	"runtime/debug"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/elektrokombinacija/coop-astar/internal/algo"
	"github.com/elektrokombinacija/coop-astar/internal/core"
	"github.com/elektrokombinacija/coop-astar/internal/mapio"
	"github.com/elektrokombinacija/coop-astar/internal/warehouse"
)

// Sweep lists the warehouse instances to benchmark.
type Sweep struct {
	Width      int
	Height     int
	Agents     []int
	Placements []warehouse.Placement
	Seed       int64
}

// Runner plans every instance of a sweep with every solver.
type Runner struct {
	Solvers     []algo.Solver
	Store       *Store // optional
	InstanceDir string // when set, generated instances are written here
	Logger      *slog.Logger
	Progress    func(done, total int, r Result)
}

type statsReporter interface {
	Stats() []algo.AgentStats
}

// Run executes the sweep and returns the run id with all results. A planner
// failing to find a solution is a result, not an error.
func (r *Runner) Run(ctx context.Context, sw Sweep) (string, []Result, error) {
	logger := r.Logger
	if logger == nil {
		logger = slog.Default()
	}

	run := Run{
		ID:         uuid.NewString(),
		StartedAt:  time.Now(),
		GoVersion:  runtime.Version(),
		OS:         runtime.GOOS,
		Arch:       runtime.GOARCH,
		CommitHash: commitHash(),
		Seed:       sw.Seed,
	}
	if r.Store != nil {
		if err := r.Store.BeginRun(ctx, run); err != nil {
			return "", nil, err
		}
	}
	logger = logger.With("run_id", run.ID)

	total := len(sw.Agents) * len(sw.Placements) * len(r.Solvers)
	var results []Result
	for i, agents := range sw.Agents {
		for j, placement := range sw.Placements {
			p := warehouse.Params{Width: sw.Width, Height: sw.Height, Agents: agents, Placement: placement}
			rng := rand.New(rand.NewSource(sw.Seed + int64(i*len(sw.Placements)+j)))
			inst, err := warehouse.Generate(p, rng)
			if err != nil {
				return run.ID, results, fmt.Errorf("generating %s: %w", p.FileName(), err)
			}
			if r.InstanceDir != "" {
				if err := mapio.WriteInstance(filepath.Join(r.InstanceDir, p.FileName()), inst); err != nil {
					return run.ID, results, err
				}
			}

			for _, solver := range r.Solvers {
				res, err := runOne(ctx, solver, inst, p)
				if err != nil {
					return run.ID, results, err
				}
				res.RunID = run.ID
				if r.Store != nil {
					if err := r.Store.Record(ctx, res); err != nil {
						return run.ID, results, err
					}
				}
				results = append(results, res)
				logger.Debug("benchmark result",
					"instance", res.Instance, "solver", res.Solver, "success", res.Success,
					"cost", res.Cost, "runtime_ms", res.RuntimeMs)
				if r.Progress != nil {
					r.Progress(len(results), total, res)
				}
			}
		}
	}

	logger.Info("benchmark finished", "results", len(results))
	return run.ID, results, nil
}

func runOne(ctx context.Context, solver algo.Solver, inst *core.Instance, p warehouse.Params) (Result, error) {
	res := Result{
		Instance:  strings.TrimSuffix(p.FileName(), ".yaml"),
		Width:     inst.Map.Width,
		Height:    inst.Map.Height,
		Agents:    p.Agents,
		Placement: string(p.Placement),
		Solver:    solver.Name(),
	}

	start := time.Now()
	sched, err := solver.Solve(ctx, inst)
	res.RuntimeMs = float64(time.Since(start).Microseconds()) / 1000.0

	if sr, ok := solver.(statsReporter); ok {
		for _, st := range sr.Stats() {
			res.Expanded += st.Expanded
		}
	}

	switch {
	case errors.Is(err, core.ErrNoSolution):
		return res, nil
	case err != nil:
		return res, fmt.Errorf("%s on %s: %w", res.Solver, res.Instance, err)
	}

	res.Success = true
	res.Cost = sched.Cost
	res.Makespan = sched.Makespan()
	res.Moves = sched.Moves()
	res.Conflicts = len(algo.FindAllConflicts(sched))
	return res, nil
}

func commitHash() string {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return "unknown"
	}
	for _, s := range info.Settings {
		if s.Key == "vcs.revision" && len(s.Value) >= 7 {
			return s.Value[:7]
		}
	}
	return "unknown"
}
