package kernel

import "github.com/fabricsim/fabricsim/internal/infra"

// armEnergyTick schedules node's next energy-accounting tick at t, and has
// that tick re-arm itself — a periodic self-rescheduling event, the
// standard way to express "every refreshRate seconds" on a callback-driven
// event queue.
func (k *Kernel) armEnergyTick(node *infra.Node, t float64) {
	k.schedule(t, "energy-tick", func(k *Kernel) {
		node.Tick(k.refreshRate)
		k.armEnergyTick(node, k.clock+k.refreshRate)
	})
}

// NodeEnergy returns node's accumulated energy, normalized by EnergyUnit so
// callers observe a canonical unit regardless of the internal accumulator
// scale.
func (k *Kernel) NodeEnergy(node *infra.Node) float64 {
	return node.EnergyUsed / k.energyUnit
}

// AverageNodeEnergy averages NodeEnergy over the named nodes, or over every
// node in the graph when names is empty.
func (k *Kernel) AverageNodeEnergy(names []string) (float64, error) {
	var nodes []*infra.Node
	if len(names) == 0 {
		nodes = k.Graph.Nodes()
	} else {
		for _, name := range names {
			n, err := k.Graph.GetNode(name)
			if err != nil {
				return 0, err
			}
			nodes = append(nodes, n)
		}
	}
	if len(nodes) == 0 {
		return 0, nil
	}
	sum := 0.0
	for _, n := range nodes {
		sum += k.NodeEnergy(n)
	}
	return sum / float64(len(nodes)), nil
}
