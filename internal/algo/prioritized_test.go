package algo

import (
	"context"
	"errors"
	"math/rand"
	"reflect"
	"testing"

	"github.com/elektrokombinacija/coop-astar/internal/core"
)

// createGrid creates an empty width x height instance.
func createGrid(width, height int) *core.Instance {
	return core.NewInstance(width, height)
}

// randomInstance builds a seeded grid with scattered obstacles and agents
// on distinct free starts and distinct free goals.
func randomInstance(seed int64, size, agents int, density float64) *core.Instance {
	rng := rand.New(rand.NewSource(seed))
	inst := createGrid(size, size)
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			if rng.Float64() < density {
				inst.Map.AddObstacle(core.Loc(x, y))
			}
		}
	}

	var free []core.Location
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			if inst.Map.Passable(core.Loc(x, y)) {
				free = append(free, core.Loc(x, y))
			}
		}
	}
	starts := rng.Perm(len(free))
	goals := rng.Perm(len(free))
	for i := 0; i < agents && i < len(free); i++ {
		inst.AddAgent(agentName(i), free[starts[i]], free[goals[i]])
	}
	return inst
}

func agentName(i int) string {
	return "agent" + string(rune('a'+i))
}

func allSolvers() []*Prioritized {
	return []*Prioritized{NewCoopAStar(), NewCoopDijkstra()}
}

func TestPrioritizedSingleAgent(t *testing.T) {
	for _, solver := range allSolvers() {
		t.Run(solver.Name(), func(t *testing.T) {
			inst := createGrid(5, 5)
			inst.AddAgent("agent0", core.Loc(0, 0), core.Loc(4, 4))

			sol, err := solver.Solve(context.Background(), inst)
			if err != nil {
				t.Fatalf("Solve() error = %v", err)
			}
			if sol.Cost != 9 {
				t.Errorf("Cost = %d, want 9", sol.Cost)
			}
			if got := len(sol.Records("agent0")); got != 9 {
				t.Errorf("len(Records) = %d, want 9", got)
			}
		})
	}
}

func TestPrioritizedCorridorSwapInfeasible(t *testing.T) {
	inst := createGrid(3, 1)
	inst.AddAgent("agent1", core.Loc(0, 0), core.Loc(2, 0))
	inst.AddAgent("agent2", core.Loc(2, 0), core.Loc(0, 0))

	for _, solver := range allSolvers() {
		t.Run(solver.Name(), func(t *testing.T) {
			sol, err := solver.Solve(context.Background(), inst)
			if !errors.Is(err, core.ErrNoSolution) {
				t.Fatalf("Solve() error = %v, want ErrNoSolution", err)
			}
			if sol != nil {
				t.Errorf("expected no partial schedule, got %+v", sol)
			}

			stats := solver.Stats()
			if len(stats) != 2 || stats[0].PathLen != 3 || stats[1].PathLen != 0 {
				t.Errorf("Stats() = %+v", stats)
			}
		})
	}
}

func TestPrioritizedSwapWithDetour(t *testing.T) {
	inst := createGrid(3, 2)
	inst.AddAgent("agent1", core.Loc(0, 0), core.Loc(2, 0))
	inst.AddAgent("agent2", core.Loc(2, 0), core.Loc(0, 0))

	sol, err := NewCoopAStar().Solve(context.Background(), inst)
	if err != nil {
		t.Fatalf("Solve() error = %v", err)
	}

	want := core.Path{core.At(0, 0, 0), core.At(1, 1, 0), core.At(2, 2, 0)}
	if !reflect.DeepEqual(sol.Paths["agent1"], want) {
		t.Errorf("agent1 path = %v, want %v", sol.Paths["agent1"], want)
	}
	if got := sol.Paths["agent2"].Cost(); got != 5 {
		t.Errorf("agent2 cost = %d, want 5", got)
	}
	if sol.Cost != 8 {
		t.Errorf("Cost = %d, want 8", sol.Cost)
	}
	if c := FindFirstConflict(sol); c != nil {
		t.Errorf("unexpected conflict %+v", c)
	}
}

func TestPrioritizedEnclosedAgent(t *testing.T) {
	inst := createGrid(5, 5)
	for _, o := range []core.Location{{X: 1, Y: 2}, {X: 3, Y: 2}, {X: 2, Y: 1}, {X: 2, Y: 3}} {
		inst.Map.AddObstacle(o)
	}
	inst.AddAgent("boxed", core.Loc(2, 2), core.Loc(0, 0))

	_, err := NewCoopAStar().Solve(context.Background(), inst)
	if !errors.Is(err, core.ErrNoSolution) {
		t.Fatalf("Solve() error = %v, want ErrNoSolution", err)
	}
}

func TestPrioritizedInvalidInput(t *testing.T) {
	inst := createGrid(3, 3)
	inst.AddAgent("a", core.Loc(0, 0), core.Loc(5, 5))

	_, err := NewCoopAStar().Solve(context.Background(), inst)
	if !errors.Is(err, core.ErrInvalidInput) {
		t.Fatalf("Solve() error = %v, want ErrInvalidInput", err)
	}
}

func TestPrioritizedCancelled(t *testing.T) {
	inst := createGrid(3, 3)
	inst.AddAgent("a", core.Loc(0, 0), core.Loc(2, 2))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := NewCoopAStar().Solve(ctx, inst); !errors.Is(err, context.Canceled) {
		t.Fatalf("Solve() error = %v, want context.Canceled", err)
	}
}

func TestPrioritizedStartEqualsGoal(t *testing.T) {
	inst := createGrid(4, 4)
	inst.AddAgent("mover", core.Loc(0, 0), core.Loc(3, 0))
	inst.AddAgent("sitter", core.Loc(2, 2), core.Loc(2, 2))

	sol, err := NewCoopAStar().Solve(context.Background(), inst)
	if err != nil {
		t.Fatalf("Solve() error = %v", err)
	}
	if p := sol.Paths["sitter"]; len(p) != 1 || p.Moves() != 0 {
		t.Errorf("sitter path = %v, want a single state", p)
	}
}

func TestPrioritizedParkedGoalBlocksLaterAgents(t *testing.T) {
	inst := createGrid(3, 3)
	inst.AddAgent("parker", core.Loc(0, 1), core.Loc(1, 1))
	inst.AddAgent("crosser", core.Loc(1, 0), core.Loc(1, 2))

	sol, err := NewCoopAStar().Solve(context.Background(), inst)
	if err != nil {
		t.Fatalf("Solve() error = %v", err)
	}

	arrival := sol.Paths["parker"].Final()
	for _, s := range sol.Paths["crosser"] {
		if s.Loc == arrival.Loc && s.T >= arrival.T {
			t.Errorf("crosser enters parked cell at %v", s)
		}
	}
	if got := sol.Paths["crosser"].Cost(); got != 5 {
		t.Errorf("crosser cost = %d, want 5 (detour around the center)", got)
	}
}

func TestPrioritizedDeterministic(t *testing.T) {
	inst := randomInstance(7, 8, 6, 0.1)

	first, err1 := NewCoopAStar().Solve(context.Background(), inst)
	second, err2 := NewCoopAStar().Solve(context.Background(), inst)
	if (err1 == nil) != (err2 == nil) {
		t.Fatalf("errors differ: %v vs %v", err1, err2)
	}
	if !reflect.DeepEqual(first, second) {
		t.Error("replanning the same instance produced a different schedule")
	}
}

func TestPrioritizedRandomProperties(t *testing.T) {
	solved := 0
	for seed := int64(1); seed <= 30; seed++ {
		inst := randomInstance(seed, 8, 6, 0.12)
		sol, err := NewCoopAStar().Solve(context.Background(), inst)
		if errors.Is(err, core.ErrNoSolution) {
			continue
		}
		if err != nil {
			t.Fatalf("seed %d: Solve() error = %v", seed, err)
		}
		solved++

		total := 0
		for _, agent := range inst.Agents {
			path := sol.Paths[agent.Name]
			total += len(sol.Records(agent.Name))
			if !path.Valid() {
				t.Errorf("seed %d: %s has invalid path %v", seed, agent.Name, path)
			}
			if path[0] != (core.State{T: 0, Loc: agent.Start}) || path.Final().Loc != agent.Goal {
				t.Errorf("seed %d: %s path %v does not join start and goal", seed, agent.Name, path)
			}
		}
		if total != sol.Cost {
			t.Errorf("seed %d: Cost = %d, records sum to %d", seed, sol.Cost, total)
		}
		if conflicts := FindAllConflicts(sol); len(conflicts) != 0 {
			t.Errorf("seed %d: %d conflicts, first %+v", seed, len(conflicts), conflicts[0])
		}

		// Later agents never touch an earlier agent's goal after its arrival.
		for i, earlier := range sol.Order {
			parked := sol.Paths[earlier].Final()
			for _, later := range sol.Order[i+1:] {
				for _, s := range sol.Paths[later] {
					if s.Loc == parked.Loc && s.T >= parked.T {
						t.Errorf("seed %d: %s enters %s's goal at %v", seed, later, earlier, s)
					}
				}
			}
		}
	}
	if solved == 0 {
		t.Fatal("no random instance was solvable")
	}
}

func TestHeuristicsAgreeOnCost(t *testing.T) {
	for seed := int64(1); seed <= 15; seed++ {
		inst := randomInstance(seed, 7, 5, 0.1)
		table := NewReservationTable(inst.Map)
		limits := SearchLimits{}

		for _, agent := range inst.Agents {
			limits.MaxTime = table.Horizon() + inst.Map.FreeCells() + 1
			a, _ := SpaceTimeAStar(agent.Start, agent.Goal, table, Manhattan, limits)
			u, _ := SpaceTimeAStar(agent.Start, agent.Goal, table, Zero, limits)
			if len(a) != len(u) {
				t.Fatalf("seed %d %s: A* cost %d, uniform-cost %d", seed, agent.Name, len(a), len(u))
			}
			if a == nil {
				break
			}
			if err := table.Commit(a); err != nil {
				t.Fatal(err)
			}
		}
	}
}
