package core

import "fmt"

// Agent is a named start/goal pair.
type Agent struct {
	Name  string
	Start Location
	Goal  Location
}

// Instance is a planning problem: a map and agents in priority order.
type Instance struct {
	Map    *GridMap
	Agents []Agent
}

// NewInstance creates an instance with an empty width x height map.
func NewInstance(width, height int) *Instance {
	return &Instance{
		Map:    NewGridMap(width, height, nil),
		Agents: nil,
	}
}

// AddAgent appends an agent at the lowest priority.
func (inst *Instance) AddAgent(name string, start, goal Location) {
	inst.Agents = append(inst.Agents, Agent{Name: name, Start: start, Goal: goal})
}

// AgentByName finds an agent by name.
func (inst *Instance) AgentByName(name string) *Agent {
	for i := range inst.Agents {
		if inst.Agents[i].Name == name {
			return &inst.Agents[i]
		}
	}
	return nil
}

// Validate checks instance consistency. All failures wrap ErrInvalidInput.
func (inst *Instance) Validate() error {
	if inst.Map == nil {
		return fmt.Errorf("%w: missing map", ErrInvalidInput)
	}
	if inst.Map.Width <= 0 || inst.Map.Height <= 0 {
		return fmt.Errorf("%w: dimensions must be positive, got %dx%d",
			ErrInvalidInput, inst.Map.Width, inst.Map.Height)
	}
	for _, o := range inst.Map.Obstacles() {
		if !inst.Map.InBounds(o) {
			return fmt.Errorf("%w: obstacle (%d, %d) out of bounds", ErrInvalidInput, o.X, o.Y)
		}
	}

	names := make(map[string]bool, len(inst.Agents))
	starts := make(map[Location]string, len(inst.Agents))
	for _, a := range inst.Agents {
		if a.Name == "" {
			return fmt.Errorf("%w: agent with empty name", ErrInvalidInput)
		}
		if names[a.Name] {
			return fmt.Errorf("%w: duplicate agent %q", ErrInvalidInput, a.Name)
		}
		names[a.Name] = true

		if !inst.Map.Passable(a.Start) {
			return fmt.Errorf("%w: agent %q start (%d, %d) is not a free cell",
				ErrInvalidInput, a.Name, a.Start.X, a.Start.Y)
		}
		if !inst.Map.Passable(a.Goal) {
			return fmt.Errorf("%w: agent %q goal (%d, %d) is not a free cell",
				ErrInvalidInput, a.Name, a.Goal.X, a.Goal.Y)
		}
		if other, ok := starts[a.Start]; ok {
			return fmt.Errorf("%w: agents %q and %q share start (%d, %d)",
				ErrInvalidInput, other, a.Name, a.Start.X, a.Start.Y)
		}
		starts[a.Start] = a.Name
	}
	return nil
}
