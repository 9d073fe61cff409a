package policy

import "sort"

// Greedy routes every task to the node with the lowest effective load,
// defined as CPU occupancy plus buffer occupancy. Ties are broken by
// lowest node name, matching the graph package's deterministic tie-break.
type Greedy struct{}

// NewGreedy builds a Greedy policy.
func NewGreedy() *Greedy {
	return &Greedy{}
}

// Decide implements Policy.
func (p *Greedy) Decide(env Env, task TaskInfo) (string, error) {
	names := env.NodeNames()
	if len(names) == 0 {
		return "", ErrNoNodes
	}
	sorted := append([]string(nil), names...)
	sort.Strings(sorted)

	bestName := ""
	bestLoad := 0.0
	haveBest := false
	for _, name := range sorted {
		view, ok := env.NodeView(name)
		if !ok {
			continue
		}
		load := effectiveLoad(view)
		if !haveBest || load < bestLoad {
			bestLoad = load
			bestName = name
			haveBest = true
		}
	}
	if !haveBest {
		return "", ErrNoNodes
	}
	return bestName, nil
}

func effectiveLoad(v NodeView) float64 {
	cpuOccupancy := 0.0
	if v.MaxCPUHz > 0 {
		cpuOccupancy = (v.MaxCPUHz - v.FreeCPUHz) / v.MaxCPUHz
	}
	return cpuOccupancy + v.BufferUtilization
}
