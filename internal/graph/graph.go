// Package graph implements the directed multigraph of named infrastructure
// nodes and keyed parallel links, plus deterministic shortest-path queries.
//
// A hand-rolled structure is used here rather than a general-purpose graph
// library: the spec requires an exact deterministic tie-break (lowest
// destination name, then lowest parallel-edge key) baked into the
// traversal itself, plus synthetic zero-cost "wireless hop" edges that
// never live in the real edge set. Wrapping a library's edge/weight model
// to express both would cost more than the roughly 400 lines this takes
// directly — an allowance the design notes make explicitly.
package graph

import (
	"container/heap"
	"errors"
	"sort"

	"github.com/fabricsim/fabricsim/internal/infra"
)

// Weight selects which link attribute a shortest-path query minimizes.
type Weight string

const (
	Hops     Weight = "hops"
	Distance Weight = "distance"
	Latency  Weight = "latency"
)

var (
	// ErrNotFound is returned for queries against an unknown node or link.
	ErrNotFound = errors.New("graph: not found")
	// ErrNoPath is returned when src and dst are not connected.
	ErrNoPath = errors.New("graph: no path")
	// ErrIsolatedWireless is returned when a wireless-only endpoint has no
	// configured wired anchor.
	ErrIsolatedWireless = errors.New("graph: isolated wireless endpoint")
)

// Hop is one element of a ShortestLinks result: either a real wired Link,
// or a synthetic wireless hop with zero transmission cost.
type Hop struct {
	Wireless bool
	Link     *infra.Link
	From     string
	To       string
}

// BaseLatency returns the hop's contribution to transmission latency: the
// link's BaseLatency for a wired hop, or 0 for a synthetic wireless hop.
func (h Hop) BaseLatency() float64 {
	if h.Wireless {
		return 0
	}
	return h.Link.BaseLatency
}

// Graph owns the Nodes and Links of the infrastructure. It is the
// exclusive owner of both per the ownership model in the spec.
type Graph struct {
	nodes map[string]*infra.Node
	// links[src][dst][key] = *infra.Link
	links map[string]map[string]map[int]*infra.Link
	// anchor[wirelessNodeName] = wired anchor node name
	anchor map[string]string
}

// New creates an empty Graph.
func New() *Graph {
	return &Graph{
		nodes:  make(map[string]*infra.Node),
		links:  make(map[string]map[string]map[int]*infra.Link),
		anchor: make(map[string]string),
	}
}

// AddNode registers node by its Name.
func (g *Graph) AddNode(n *infra.Node) {
	g.nodes[n.Name] = n
}

// RemoveNode deregisters the named node and every link touching it.
func (g *Graph) RemoveNode(name string) {
	delete(g.nodes, name)
	delete(g.links, name)
	for src := range g.links {
		delete(g.links[src], name)
	}
	delete(g.anchor, name)
}

// GetNode returns the named node, or ErrNotFound.
func (g *Graph) GetNode(name string) (*infra.Node, error) {
	n, ok := g.nodes[name]
	if !ok {
		return nil, ErrNotFound
	}
	return n, nil
}

// Nodes returns every node in the graph, ordered by name for determinism.
func (g *Graph) Nodes() []*infra.Node {
	names := make([]string, 0, len(g.nodes))
	for name := range g.nodes {
		names = append(names, name)
	}
	sort.Strings(names)
	out := make([]*infra.Node, len(names))
	for i, name := range names {
		out[i] = g.nodes[name]
	}
	return out
}

// AddLink inserts link into the adjacency structure, keyed by (Src, Dst,
// Key). Key disambiguates parallel edges between the same ordered pair.
func (g *Graph) AddLink(link *infra.Link) {
	if g.links[link.Src] == nil {
		g.links[link.Src] = make(map[string]map[int]*infra.Link)
	}
	if g.links[link.Src][link.Dst] == nil {
		g.links[link.Src][link.Dst] = make(map[int]*infra.Link)
	}
	g.links[link.Src][link.Dst][link.Key] = link
}

// RemoveLink deregisters the link identified by (src, dst, key).
func (g *Graph) RemoveLink(src, dst string, key int) {
	if byDst, ok := g.links[src]; ok {
		if byKey, ok := byDst[dst]; ok {
			delete(byKey, key)
		}
	}
}

// GetLink returns the link identified by (src, dst, key), or ErrNotFound.
// The first link installed between an ordered pair has key 0.
func (g *Graph) GetLink(src, dst string, key int) (*infra.Link, error) {
	if byDst, ok := g.links[src]; ok {
		if byKey, ok := byDst[dst]; ok {
			if l, ok := byKey[key]; ok {
				return l, nil
			}
		}
	}
	return nil, ErrNotFound
}

// Links returns every link in the graph, ordered by (Src, Dst, Key) for
// determinism.
func (g *Graph) Links() []*infra.Link {
	var out []*infra.Link
	for _, byDst := range g.links {
		for _, byKey := range byDst {
			for _, l := range byKey {
				out = append(out, l)
			}
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Src != out[j].Src {
			return out[i].Src < out[j].Src
		}
		if out[i].Dst != out[j].Dst {
			return out[i].Dst < out[j].Dst
		}
		return out[i].Key < out[j].Key
	})
	return out
}

// SetWirelessAnchor associates a wireless-only node with the wired node
// that carries its synthetic hop. Passing an empty anchor marks the
// wireless node as isolated.
func (g *Graph) SetWirelessAnchor(wirelessName, anchorName string) {
	g.anchor[wirelessName] = anchorName
}

// sortedOutLinks returns the links leaving src, sorted by (Dst, Key) —
// the traversal order that realizes the spec's tie-break rule.
func (g *Graph) sortedOutLinks(src string) []*infra.Link {
	byDst, ok := g.links[src]
	if !ok {
		return nil
	}
	var out []*infra.Link
	for _, byKey := range byDst {
		for _, l := range byKey {
			out = append(out, l)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Dst != out[j].Dst {
			return out[i].Dst < out[j].Dst
		}
		return out[i].Key < out[j].Key
	})
	return out
}

func (g *Graph) weightOf(l *infra.Link, w Weight) float64 {
	switch w {
	case Distance:
		return l.Distance
	case Latency:
		return l.BaseLatency
	default:
		return 1
	}
}

// ShortestPath returns the ordered list of wired node names from src to
// dst (inclusive), minimizing the given weight.
func (g *Graph) ShortestPath(src, dst string, w Weight) ([]string, error) {
	_, predLink, order, err := g.shortestTree(src, w)
	if err != nil {
		return nil, err
	}
	if _, ok := g.nodes[dst]; !ok {
		return nil, ErrNotFound
	}
	if _, reached := order[dst]; !reached {
		if src == dst {
			return []string{src}, nil
		}
		return nil, ErrNoPath
	}
	var path []string
	cur := dst
	for {
		path = append([]string{cur}, path...)
		if cur == src {
			break
		}
		l, ok := predLink[cur]
		if !ok {
			break
		}
		cur = l.Src
	}
	return path, nil
}

// ShortestLinks returns the ordered Hop list from src to dst, inserting
// synthetic wireless hops when either endpoint is wireless-only.
func (g *Graph) ShortestLinks(src, dst string, w Weight) ([]Hop, error) {
	if _, ok := g.nodes[src]; !ok {
		return nil, ErrNotFound
	}
	if _, ok := g.nodes[dst]; !ok {
		return nil, ErrNotFound
	}

	var prefix, suffix *Hop
	wiredSrc, wiredDst := src, dst

	if g.nodes[src].WirelessOnly {
		anchor, ok := g.anchor[src]
		if !ok || anchor == "" {
			return nil, ErrIsolatedWireless
		}
		if _, ok := g.nodes[anchor]; !ok {
			return nil, ErrIsolatedWireless
		}
		prefix = &Hop{Wireless: true, From: src, To: anchor}
		wiredSrc = anchor
	}
	if g.nodes[dst].WirelessOnly {
		anchor, ok := g.anchor[dst]
		if !ok || anchor == "" {
			return nil, ErrIsolatedWireless
		}
		if _, ok := g.nodes[anchor]; !ok {
			return nil, ErrIsolatedWireless
		}
		suffix = &Hop{Wireless: true, From: anchor, To: dst}
		wiredDst = anchor
	}

	var hops []Hop
	if prefix != nil {
		hops = append(hops, *prefix)
	}

	if wiredSrc != wiredDst {
		_, predLink, order, err := g.shortestTree(wiredSrc, w)
		if err != nil {
			return nil, err
		}
		if _, reached := order[wiredDst]; !reached {
			return nil, ErrNoPath
		}
		var wired []*infra.Link
		cur := wiredDst
		for cur != wiredSrc {
			l := predLink[cur]
			wired = append([]*infra.Link{l}, wired...)
			cur = l.Src
		}
		for _, l := range wired {
			hops = append(hops, Hop{Link: l, From: l.Src, To: l.Dst})
		}
	}

	if suffix != nil {
		hops = append(hops, *suffix)
	}

	return hops, nil
}

// shortestTree computes single-source shortest distances/predecessors from
// src over the real (wired) graph using BFS for Hops and Dijkstra
// otherwise. order records visitation/settling order, used to test
// reachability.
func (g *Graph) shortestTree(src string, w Weight) (dist map[string]float64, predLink map[string]*infra.Link, order map[string]int, err error) {
	if _, ok := g.nodes[src]; !ok {
		return nil, nil, nil, ErrNotFound
	}
	dist = map[string]float64{src: 0}
	predLink = map[string]*infra.Link{}
	order = map[string]int{src: 0}

	if w == Hops {
		queue := []string{src}
		seq := 1
		for len(queue) > 0 {
			cur := queue[0]
			queue = queue[1:]
			for _, l := range g.sortedOutLinks(cur) {
				if _, visited := order[l.Dst]; visited {
					continue
				}
				order[l.Dst] = seq
				seq++
				dist[l.Dst] = dist[cur] + 1
				predLink[l.Dst] = l
				queue = append(queue, l.Dst)
			}
		}
		return dist, predLink, order, nil
	}

	pq := &priorityQueue{}
	heap.Init(pq)
	heap.Push(pq, pqItem{name: src, dist: 0})
	settled := map[string]bool{}
	seq := 1
	for pq.Len() > 0 {
		item := heap.Pop(pq).(pqItem)
		if settled[item.name] {
			continue
		}
		settled[item.name] = true
		if item.name != src {
			order[item.name] = seq
			seq++
		}
		for _, l := range g.sortedOutLinks(item.name) {
			nd := dist[item.name] + g.weightOf(l, w)
			cur, known := dist[l.Dst]
			if !known || nd < cur {
				dist[l.Dst] = nd
				predLink[l.Dst] = l
				heap.Push(pq, pqItem{name: l.Dst, dist: nd})
			}
		}
	}
	return dist, predLink, order, nil
}

type pqItem struct {
	name string
	dist float64
}

// priorityQueue is a min-heap over pqItem, breaking distance ties by name
// for deterministic exploration order (container/heap, as in the
// scheduler's event heap).
type priorityQueue []pqItem

func (pq priorityQueue) Len() int { return len(pq) }
func (pq priorityQueue) Less(i, j int) bool {
	if pq[i].dist != pq[j].dist {
		return pq[i].dist < pq[j].dist
	}
	return pq[i].name < pq[j].name
}
func (pq priorityQueue) Swap(i, j int) { pq[i], pq[j] = pq[j], pq[i] }
func (pq *priorityQueue) Push(x any)   { *pq = append(*pq, x.(pqItem)) }
func (pq *priorityQueue) Pop() any {
	old := *pq
	n := len(old)
	item := old[n-1]
	*pq = old[:n-1]
	return item
}
