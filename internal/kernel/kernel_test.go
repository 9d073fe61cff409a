package kernel

import (
	"github.com/fabricsim/fabricsim/internal/graph"
	"github.com/fabricsim/fabricsim/internal/infra"
	"github.com/fabricsim/fabricsim/simerr"
)

// fakeSink is a test double recording every outcome the kernel reports,
// standing in for internal/logger.Logger without pulling in that package.
type fakeSink struct {
	done     []*infra.Task
	failures []*simerr.Error
	closed   []*infra.Node
}

func (s *fakeSink) LogDone(task *infra.Task, srcName string) {
	s.done = append(s.done, task)
}

func (s *fakeSink) LogFailure(task *infra.Task, err *simerr.Error, srcName string) {
	s.failures = append(s.failures, err)
}

func (s *fakeSink) CloseNode(node *infra.Node) {
	s.closed = append(s.closed, node)
}

func (s *fakeSink) Reset() {
	s.done = nil
	s.failures = nil
	s.closed = nil
}

// twoNodeGraph builds n0<->n1 joined by a bidirectional link, matching S1
// of the end-to-end scenarios.
func twoNodeGraph(maxCPUHz float64, bandwidth, latency float64) *graph.Graph {
	g := graph.New()
	n0 := infra.NewNode(0, "n0", maxCPUHz, 4096, nil, infra.EnergyCoefficients{Idle: 0.01, Exe: 0.4})
	n1 := infra.NewNode(1, "n1", maxCPUHz, 4096, nil, infra.EnergyCoefficients{Idle: 0.01, Exe: 0.4})
	g.AddNode(n0)
	g.AddNode(n1)
	fwd, _ := infra.NewLink("n0", "n1", 0, bandwidth, latency, false, false)
	rev, _ := infra.NewLink("n1", "n0", 0, bandwidth, latency, false, false)
	g.AddLink(fwd)
	g.AddLink(rev)
	return g
}
