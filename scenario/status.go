package scenario

// NodeSnapshot is a read-only view of one node's capacity and current free
// resources.
type NodeSnapshot struct {
	Name     string
	Capacity float64
	Free     float64
}

// LinkSnapshot is a read-only view of one link's capacity and current free
// bandwidth.
type LinkSnapshot struct {
	Src      string
	Dst      string
	Key      int
	Capacity float64
	Free     float64
}

// InfraSnapshot is the whole-infrastructure view: every node and every
// link, in the graph's deterministic ordering.
type InfraSnapshot struct {
	Nodes []NodeSnapshot
	Links []LinkSnapshot
}

// NodeStatus returns the snapshot for the named node.
func (s *Scenario) NodeStatus(name string) (NodeSnapshot, bool) {
	n, err := s.Graph.GetNode(name)
	if err != nil {
		return NodeSnapshot{}, false
	}
	return NodeSnapshot{Name: n.Name, Capacity: n.MaxCPUHz, Free: n.FreeCPUHz}, true
}

// LinkStatus returns the snapshot for the link identified by (src, dst,
// key).
func (s *Scenario) LinkStatus(src, dst string, key int) (LinkSnapshot, bool) {
	l, err := s.Graph.GetLink(src, dst, key)
	if err != nil {
		return LinkSnapshot{}, false
	}
	return LinkSnapshot{Src: l.Src, Dst: l.Dst, Key: l.Key, Capacity: l.MaxBandwidth, Free: l.FreeBandwidth}, true
}

// Status returns the whole-infrastructure snapshot: node capacity/free
// arrays and link capacity/free arrays, ordered as Graph.Nodes and
// Graph.Links order them.
func (s *Scenario) Status() InfraSnapshot {
	nodes := s.Graph.Nodes()
	nodeSnaps := make([]NodeSnapshot, len(nodes))
	for i, n := range nodes {
		nodeSnaps[i] = NodeSnapshot{Name: n.Name, Capacity: n.MaxCPUHz, Free: n.FreeCPUHz}
	}

	links := s.Graph.Links()
	linkSnaps := make([]LinkSnapshot, len(links))
	for i, l := range links {
		linkSnaps[i] = LinkSnapshot{Src: l.Src, Dst: l.Dst, Key: l.Key, Capacity: l.MaxBandwidth, Free: l.FreeBandwidth}
	}

	return InfraSnapshot{Nodes: nodeSnaps, Links: linkSnaps}
}
