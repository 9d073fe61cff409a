package graph

import (
	"errors"
	"testing"

	"github.com/fabricsim/fabricsim/internal/infra"
)

func newTestNode(name string) *infra.Node {
	return infra.NewNode(0, name, 1000, 4096, nil, infra.EnergyCoefficients{})
}

func mustLink(t *testing.T, src, dst string, key int, bandwidth, baseLatency float64) *infra.Link {
	t.Helper()
	l, err := infra.NewLink(src, dst, key, bandwidth, baseLatency, false, false)
	if err != nil {
		t.Fatalf("infra.NewLink(%s,%s,%d): %v", src, dst, key, err)
	}
	return l
}

func TestGraph_ShortestPath_Hops(t *testing.T) {
	g := New()
	for _, n := range []string{"a", "b", "c", "d"} {
		g.AddNode(newTestNode(n))
	}
	g.AddLink(mustLink(t, "a", "b", 0, 1000, 0))
	g.AddLink(mustLink(t, "b", "d", 0, 1000, 0))
	g.AddLink(mustLink(t, "a", "c", 0, 1000, 0))
	g.AddLink(mustLink(t, "c", "d", 0, 1000, 0))

	path, err := g.ShortestPath("a", "d", Hops)
	if err != nil {
		t.Fatalf("ShortestPath error: %v", err)
	}
	if len(path) != 3 {
		t.Fatalf("ShortestPath = %v, want a 3-node path", path)
	}
	if path[0] != "a" || path[2] != "d" {
		t.Errorf("ShortestPath = %v, want to start at a and end at d", path)
	}
}

func TestGraph_ShortestPath_TieBreaksByLowestDestinationName(t *testing.T) {
	g := New()
	for _, n := range []string{"a", "b", "c", "z"} {
		g.AddNode(newTestNode(n))
	}
	// a has two equal-weight next hops (b, z); the tie-break must prefer b.
	g.AddLink(mustLink(t, "a", "z", 0, 1000, 0))
	g.AddLink(mustLink(t, "a", "b", 0, 1000, 0))
	g.AddLink(mustLink(t, "b", "c", 0, 1000, 0))
	g.AddLink(mustLink(t, "z", "c", 0, 1000, 0))

	path, err := g.ShortestPath("a", "c", Hops)
	if err != nil {
		t.Fatalf("ShortestPath error: %v", err)
	}
	want := []string{"a", "b", "c"}
	if len(path) != len(want) {
		t.Fatalf("ShortestPath = %v, want %v", path, want)
	}
	for i := range want {
		if path[i] != want[i] {
			t.Errorf("ShortestPath = %v, want %v", path, want)
			break
		}
	}
}

func TestGraph_ShortestLinks_TieBreaksByLowestKey(t *testing.T) {
	g := New()
	g.AddNode(newTestNode("a"))
	g.AddNode(newTestNode("b"))
	g.AddLink(mustLink(t, "a", "b", 1, 1000, 0))
	g.AddLink(mustLink(t, "a", "b", 0, 1000, 0))

	links, err := g.ShortestLinks("a", "b", Hops)
	if err != nil {
		t.Fatalf("ShortestLinks error: %v", err)
	}
	if len(links) != 1 || links[0].Link.Key != 0 {
		t.Fatalf("ShortestLinks = %+v, want the key-0 parallel edge", links)
	}
}

func TestGraph_ShortestPath_PrefersLowerDistance(t *testing.T) {
	g := New()
	for _, n := range []string{"a", "b", "c"} {
		g.AddNode(newTestNode(n))
	}
	g.AddLink(mustLink(t, "a", "b", 0, 1000, 0))
	g.AddLink(mustLink(t, "b", "c", 0, 1000, 0))
	direct := mustLink(t, "a", "c", 0, 1000, 0)
	direct.Distance = 1
	g.AddLink(direct)

	// Set distances on the two-hop route higher than the direct one.
	ab, _ := g.GetLink("a", "b", 0)
	ab.Distance = 10
	bc, _ := g.GetLink("b", "c", 0)
	bc.Distance = 10

	path, err := g.ShortestPath("a", "c", Distance)
	if err != nil {
		t.Fatalf("ShortestPath error: %v", err)
	}
	if len(path) != 2 {
		t.Errorf("ShortestPath by Distance = %v, want the direct 2-node path", path)
	}
}

func TestGraph_ShortestPath_NoPath(t *testing.T) {
	g := New()
	g.AddNode(newTestNode("a"))
	g.AddNode(newTestNode("b"))

	_, err := g.ShortestPath("a", "b", Hops)
	if !errors.Is(err, ErrNoPath) {
		t.Errorf("ShortestPath error = %v, want ErrNoPath", err)
	}
}

func TestGraph_ShortestPath_UnknownNode(t *testing.T) {
	g := New()
	g.AddNode(newTestNode("a"))

	_, err := g.ShortestPath("a", "nope", Hops)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("ShortestPath error = %v, want ErrNotFound", err)
	}
}

func TestGraph_ShortestPath_SameNodeIsSingleNodePath(t *testing.T) {
	g := New()
	g.AddNode(newTestNode("a"))

	path, err := g.ShortestPath("a", "a", Hops)
	if err != nil {
		t.Fatalf("ShortestPath(a,a) error: %v", err)
	}
	if len(path) != 1 || path[0] != "a" {
		t.Errorf("ShortestPath(a,a) = %v, want [a]", path)
	}
}

func TestGraph_ShortestLinks_InsertsWirelessHops(t *testing.T) {
	g := New()
	wirelessSrc := newTestNode("w0")
	wirelessSrc.WirelessOnly = true
	g.AddNode(wirelessSrc)
	g.AddNode(newTestNode("anchor"))
	g.AddNode(newTestNode("b"))
	g.SetWirelessAnchor("w0", "anchor")
	g.AddLink(mustLink(t, "anchor", "b", 0, 1000, 0.01))

	hops, err := g.ShortestLinks("w0", "b", Hops)
	if err != nil {
		t.Fatalf("ShortestLinks error: %v", err)
	}
	if len(hops) != 2 {
		t.Fatalf("ShortestLinks = %+v, want [wireless-hop, wired-link]", hops)
	}
	if !hops[0].Wireless || hops[0].From != "w0" || hops[0].To != "anchor" {
		t.Errorf("first hop = %+v, want the synthetic w0->anchor hop", hops[0])
	}
	if hops[0].BaseLatency() != 0 {
		t.Errorf("wireless hop BaseLatency = %v, want 0", hops[0].BaseLatency())
	}
	if hops[1].Wireless {
		t.Errorf("second hop = %+v, want a real wired link", hops[1])
	}
}

func TestGraph_ShortestLinks_IsolatedWirelessNode(t *testing.T) {
	g := New()
	w := newTestNode("w0")
	w.WirelessOnly = true
	g.AddNode(w)
	g.AddNode(newTestNode("b"))

	_, err := g.ShortestLinks("w0", "b", Hops)
	if !errors.Is(err, ErrIsolatedWireless) {
		t.Errorf("ShortestLinks error = %v, want ErrIsolatedWireless", err)
	}
}

func TestGraph_RemoveNode_AlsoRemovesTouchingLinks(t *testing.T) {
	g := New()
	g.AddNode(newTestNode("a"))
	g.AddNode(newTestNode("b"))
	g.AddLink(mustLink(t, "a", "b", 0, 1000, 0))

	g.RemoveNode("b")

	if _, err := g.GetLink("a", "b", 0); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetLink after RemoveNode(b) error = %v, want ErrNotFound", err)
	}
}

func TestGraph_Nodes_OrderedByName(t *testing.T) {
	g := New()
	g.AddNode(newTestNode("z"))
	g.AddNode(newTestNode("a"))
	g.AddNode(newTestNode("m"))

	nodes := g.Nodes()
	if len(nodes) != 3 || nodes[0].Name != "a" || nodes[1].Name != "m" || nodes[2].Name != "z" {
		t.Errorf("Nodes() ordering = %+v, want [a m z]", nodes)
	}
}
