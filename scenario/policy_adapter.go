package scenario

import "github.com/fabricsim/fabricsim/internal/policy"

// Now implements policy.Env.
func (s *Scenario) Now() float64 {
	return s.Kernel.Now()
}

// NodeNames implements policy.Env.
func (s *Scenario) NodeNames() []string {
	nodes := s.Graph.Nodes()
	names := make([]string, len(nodes))
	for i, n := range nodes {
		names[i] = n.Name
	}
	return names
}

// NodeView implements policy.Env.
func (s *Scenario) NodeView(name string) (policy.NodeView, bool) {
	n, err := s.Graph.GetNode(name)
	if err != nil {
		return policy.NodeView{}, false
	}
	return policy.NodeView{
		Name:              n.Name,
		MaxCPUHz:          n.MaxCPUHz,
		FreeCPUHz:         n.FreeCPUHz,
		BufferUtilization: n.BufferUtilization(),
	}, true
}
