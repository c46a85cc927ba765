package bench

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/elektrokombinacija/coop-astar/internal/algo"
	"github.com/elektrokombinacija/coop-astar/internal/logging"
	"github.com/elektrokombinacija/coop-astar/internal/mapio"
	"github.com/elektrokombinacija/coop-astar/internal/warehouse"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := OpenStore(filepath.Join(t.TempDir(), "bench.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestStoreRecordAndSummary(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	require.NoError(t, s.BeginRun(ctx, Run{ID: "r1", StartedAt: time.Unix(0, 0), GoVersion: "go", OS: "linux", Arch: "amd64", CommitHash: "abc", Seed: 7}))
	require.NoError(t, s.Record(ctx, Result{RunID: "r1", Instance: "i1", Agents: 2, Solver: "CoopAStar", RuntimeMs: 2, Success: true, Cost: 10, Expanded: 40}))
	require.NoError(t, s.Record(ctx, Result{RunID: "r1", Instance: "i2", Agents: 4, Solver: "CoopAStar", RuntimeMs: 4, Success: true, Cost: 20, Expanded: 60}))
	require.NoError(t, s.Record(ctx, Result{RunID: "r1", Instance: "i1", Agents: 2, Solver: "CoopDijkstra", RuntimeMs: 9, Success: false}))

	rows, err := s.Results(ctx, "r1")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "i1", rows[0].Instance)
	assert.True(t, rows[0].Success)
	assert.False(t, rows[1].Success)

	sum, err := s.Summary(ctx, "r1")
	require.NoError(t, err)
	require.Len(t, sum, 2)
	assert.Equal(t, SolverSummary{Solver: "CoopAStar", Runs: 2, Successes: 2, AvgRuntimeMs: 3, AvgCost: 15, AvgExpanded: 50}, sum[0])
	assert.Equal(t, 0, sum[1].Successes)
	assert.Zero(t, sum[1].AvgCost)
}

func TestStoreRejectsUnknownRun(t *testing.T) {
	s := openTestStore(t)
	err := s.Record(context.Background(), Result{RunID: "missing", Instance: "i", Solver: "x"})
	assert.Error(t, err)
}

func TestRunnerSweep(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)
	dir := t.TempDir()

	r := &Runner{
		Solvers:     []algo.Solver{algo.NewCoopAStar(), algo.NewCoopDijkstra()},
		Store:       s,
		InstanceDir: dir,
		Logger:      logging.Discard(),
	}
	sweep := Sweep{
		Width:      2,
		Height:     2,
		Agents:     []int{2, 4},
		Placements: []warehouse.Placement{warehouse.Adjacent, warehouse.Spaced},
		Seed:       5,
	}

	var calls int
	r.Progress = func(done, total int, _ Result) {
		calls++
		assert.Equal(t, 8, total)
		assert.Equal(t, calls, done)
	}

	runID, results, err := r.Run(ctx, sweep)
	require.NoError(t, err)
	require.NotEmpty(t, runID)
	require.Len(t, results, 8)
	assert.Equal(t, 8, calls)

	solved := 0
	for _, res := range results {
		assert.Zero(t, res.Conflicts, res.Instance)
		assert.Positive(t, res.Expanded, res.Instance)
		if res.Success {
			solved++
			assert.GreaterOrEqual(t, res.Cost, res.Agents)
		}
	}
	assert.Positive(t, solved)

	stored, err := s.Results(ctx, runID)
	require.NoError(t, err)
	assert.Len(t, stored, 8)

	inst, err := mapio.LoadInstance(filepath.Join(dir, "map_2by2_agents4_spaced.yaml"))
	require.NoError(t, err)
	assert.Len(t, inst.Agents, 4)
}
