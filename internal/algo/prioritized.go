package algo

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/elektrokombinacija/coop-astar/internal/core"
)

// AgentStats records the search effort spent on one agent.
type AgentStats struct {
	Agent   string
	PathLen int
	SearchStats
}

// Prioritized plans agents one at a time in input order. Each agent treats
// the paths of earlier agents as moving obstacles; earlier agents are never
// replanned.
type Prioritized struct {
	heuristic     Heuristic
	name          string
	maxExpansions int
	logger        *slog.Logger
	stats         []AgentStats
}

// Option configures a Prioritized planner.
type Option func(*Prioritized)

// WithHeuristic selects the search heuristic; Zero gives uniform-cost search.
func WithHeuristic(name string, h Heuristic) Option {
	return func(p *Prioritized) {
		p.name = name
		p.heuristic = h
	}
}

// WithMaxExpansions caps the states popped per agent search (0 = unbounded).
func WithMaxExpansions(n int) Option {
	return func(p *Prioritized) { p.maxExpansions = n }
}

// WithLogger sets the logger for per-agent progress.
func WithLogger(l *slog.Logger) Option {
	return func(p *Prioritized) {
		if l != nil {
			p.logger = l
		}
	}
}

// NewPrioritized creates a cooperative A* planner.
func NewPrioritized(opts ...Option) *Prioritized {
	p := &Prioritized{
		heuristic: Manhattan,
		name:      "CoopAStar",
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// NewCoopAStar is the Manhattan-guided planner.
func NewCoopAStar(opts ...Option) *Prioritized {
	return NewPrioritized(append([]Option{WithHeuristic("CoopAStar", Manhattan)}, opts...)...)
}

// NewCoopDijkstra is the uniform-cost planner. It finds the same costs as
// NewCoopAStar while expanding more states.
func NewCoopDijkstra(opts ...Option) *Prioritized {
	return NewPrioritized(append([]Option{WithHeuristic("CoopDijkstra", Zero)}, opts...)...)
}

func (p *Prioritized) Name() string { return p.name }

// Stats returns per-agent search statistics of the last Solve call.
func (p *Prioritized) Stats() []AgentStats {
	out := make([]AgentStats, len(p.stats))
	copy(out, p.stats)
	return out
}

// Solve implements prioritized planning.
func (p *Prioritized) Solve(ctx context.Context, inst *core.Instance) (*core.Schedule, error) {
	if err := inst.Validate(); err != nil {
		return nil, err
	}

	table := NewReservationTable(inst.Map)
	paths := make(map[string]core.Path, len(inst.Agents))
	order := make([]string, 0, len(inst.Agents))
	p.stats = p.stats[:0]
	freeCells := inst.Map.FreeCells()

	for _, agent := range inst.Agents {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		// Past the horizon the table no longer changes over time, so any
		// reachable goal is reached within freeCells further steps.
		limits := SearchLimits{
			MaxTime:       table.Horizon() + freeCells + 1,
			MaxExpansions: p.maxExpansions,
		}
		path, stats := SpaceTimeAStar(agent.Start, agent.Goal, table, p.heuristic, limits)
		p.stats = append(p.stats, AgentStats{Agent: agent.Name, PathLen: len(path), SearchStats: stats})

		if path == nil {
			p.logger.Debug("agent infeasible",
				"agent", agent.Name, "expanded", stats.Expanded, "horizon", table.Horizon())
			return nil, fmt.Errorf("%w: agent %q cannot reach (%d, %d)",
				core.ErrNoSolution, agent.Name, agent.Goal.X, agent.Goal.Y)
		}

		if err := table.Commit(path); err != nil {
			return nil, fmt.Errorf("agent %q: %w", agent.Name, err)
		}
		paths[agent.Name] = path
		order = append(order, agent.Name)

		p.logger.Debug("agent planned",
			"agent", agent.Name, "path_len", len(path), "expanded", stats.Expanded, "horizon", table.Horizon())
	}

	sched := core.Aggregate(order, paths)
	states, transitions := table.Len()
	p.logger.Info("plan complete",
		"solver", p.name, "agents", len(order), "cost", sched.Cost, "makespan", sched.Makespan(),
		"reserved_states", states, "reserved_transitions", transitions)
	return sched, nil
}
