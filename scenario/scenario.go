// Package scenario is the facade (spec section 4.7) that loads a scenario
// config, builds the infrastructure graph, and exposes the kernel's
// lifecycle and accounting operations. The Graph and Kernel are exported
// fields, so callers can also reach them directly.
package scenario

import (
	"fmt"

	"github.com/fabricsim/fabricsim/internal/config"
	"github.com/fabricsim/fabricsim/internal/geo"
	"github.com/fabricsim/fabricsim/internal/graph"
	"github.com/fabricsim/fabricsim/internal/infra"
	"github.com/fabricsim/fabricsim/internal/kernel"
)

const (
	defaultSignalSpeed    = 2e8
	defaultHopDelay       = 0.0002
	defaultHopDelayMeters = 30000
)

// Scenario owns the infrastructure graph and the kernel scheduling work
// over it.
type Scenario struct {
	Graph  *graph.Graph
	Kernel *kernel.Kernel
}

// NewScenario loads configPath and builds the graph and kernel described
// by it. sink receives the kernel's task/node outcomes.
func NewScenario(configPath string, sink kernel.Sink, kcfg kernel.Config) (*Scenario, error) {
	cfg, err := config.LoadScenarioConfig(configPath)
	if err != nil {
		return nil, err
	}

	distanceModel := geo.DistanceModel(cfg.DistanceModel)
	if distanceModel == "" {
		distanceModel = geo.Euclidean
	}

	g := graph.New()
	idToName := make(map[int]string, len(cfg.Nodes))

	for _, ns := range cfg.Nodes {
		var loc *geo.Location
		if ns.LocX != nil && ns.LocY != nil {
			loc = &geo.Location{X: *ns.LocX, Y: *ns.LocY}
		}
		n := infra.NewNode(int64(ns.NodeId), ns.NodeName, ns.MaxCpuFreq, ns.MaxBufferSize, loc,
			infra.EnergyCoefficients{Idle: ns.IdleEnergyCoef, Exe: ns.ExeEnergyCoef})
		n.WirelessOnly = ns.Wireless
		g.AddNode(n)
		idToName[ns.NodeId] = ns.NodeName
		if ns.Wireless && ns.WirelessAnchor != "" {
			g.SetWirelessAnchor(ns.NodeName, ns.WirelessAnchor)
		}
	}

	linkCount := make(map[[2]string]int)
	for _, es := range cfg.Edges {
		srcName, ok := idToName[es.SrcNodeID]
		if !ok {
			return nil, fmt.Errorf("scenario: edge references unknown SrcNodeID %d", es.SrcNodeID)
		}
		dstName, ok := idToName[es.DstNodeID]
		if !ok {
			return nil, fmt.Errorf("scenario: edge references unknown DstNodeID %d", es.DstNodeID)
		}
		fwd, rev, err := es.BandwidthPair()
		if err != nil {
			return nil, err
		}

		baseLatency := 0.0
		if es.BaseLatency != nil {
			baseLatency = *es.BaseLatency
		} else if distance, ok := nodeDistance(g, srcName, dstName, distanceModel); ok {
			baseLatency = geo.BaseLatency(distance, defaultSignalSpeed, defaultHopDelay, defaultHopDelayMeters)
		}

		if err := addDirectedLink(g, srcName, dstName, fwd, baseLatency, linkCount); err != nil {
			return nil, err
		}
		if es.EdgeType == "Link" {
			if err := addDirectedLink(g, dstName, srcName, rev, baseLatency, linkCount); err != nil {
				return nil, err
			}
		}
	}

	k := kernel.New(g, sink, kcfg)
	return &Scenario{Graph: g, Kernel: k}, nil
}

func nodeDistance(g *graph.Graph, srcName, dstName string, model geo.DistanceModel) (float64, bool) {
	src, err := g.GetNode(srcName)
	if err != nil || src.Location == nil {
		return 0, false
	}
	dst, err := g.GetNode(dstName)
	if err != nil || dst.Location == nil {
		return 0, false
	}
	return geo.Distance(*src.Location, *dst.Location, model), true
}

func addDirectedLink(g *graph.Graph, srcName, dstName string, bandwidth, baseLatency float64, linkCount map[[2]string]int) error {
	src, err := g.GetNode(srcName)
	if err != nil {
		return err
	}
	dst, err := g.GetNode(dstName)
	if err != nil {
		return err
	}
	if src.WirelessOnly || dst.WirelessOnly {
		// Wireless endpoints are reached only through the synthetic hop
		// installed by SetWirelessAnchor; a real Link would reject
		// construction anyway.
		return nil
	}
	pair := [2]string{srcName, dstName}
	key := linkCount[pair]
	linkCount[pair] = key + 1
	link, err := infra.NewLink(srcName, dstName, key, bandwidth, baseLatency, src.WirelessOnly, dst.WirelessOnly)
	if err != nil {
		return err
	}
	g.AddLink(link)
	return nil
}

// Submit wraps Kernel.Submit.
func (s *Scenario) Submit(task *infra.Task, dstName string) error {
	return s.Kernel.Submit(task, dstName)
}

// Reset resets the graph, kernel, and logger to their initial state.
func (s *Scenario) Reset() {
	s.Kernel.Reset()
}

// NodeEnergy returns the named node's accumulated energy, normalized by the
// kernel's configured energyUnit.
func (s *Scenario) NodeEnergy(name string) (float64, error) {
	n, err := s.Graph.GetNode(name)
	if err != nil {
		return 0, err
	}
	return s.Kernel.NodeEnergy(n), nil
}

// AverageNodeEnergy averages NodeEnergy across names, or every node in the
// graph when names is empty.
func (s *Scenario) AverageNodeEnergy(names []string) (float64, error) {
	return s.Kernel.AverageNodeEnergy(names)
}
