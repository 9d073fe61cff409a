// Package config decodes the external JSON/CSV/YAML collaborators named
// in the spec into typed structs. The kernel never sees raw JSON, CSV
// records, or YAML nodes — only the types in this package, following the
// teacher's parse-to-typed-struct boundary (sim/config.go's grouped
// config structs).
package config

import (
	"encoding/json"
	"fmt"
	"os"
)

// NodeSpec is one entry of a scenario config's "Nodes" array.
type NodeSpec struct {
	NodeType       string          `json:"NodeType"`
	NodeName       string          `json:"NodeName"`
	NodeId         int             `json:"NodeId"`
	MaxCpuFreq     float64         `json:"MaxCpuFreq"`
	MaxBufferSize  int64           `json:"MaxBufferSize"`
	LocX           *float64        `json:"LocX,omitempty"`
	LocY           *float64        `json:"LocY,omitempty"`
	IdleEnergyCoef float64         `json:"IdleEnergyCoef"`
	ExeEnergyCoef  float64         `json:"ExeEnergyCoef"`
	Wireless       bool            `json:"Wireless,omitempty"`
	WirelessAnchor string          `json:"WirelessAnchor,omitempty"`
}

// EdgeSpec is one entry of a scenario config's "Edges" array. Bandwidth
// accepts either a single number (symmetric bandwidth) or a two-element
// [forward, reverse] pair, matching the "Link"/"SingleLink" EdgeType
// semantics in the spec.
type EdgeSpec struct {
	EdgeType    string          `json:"EdgeType"`
	SrcNodeID   int             `json:"SrcNodeID"`
	DstNodeID   int             `json:"DstNodeID"`
	Bandwidth   json.RawMessage `json:"Bandwidth"`
	BaseLatency *float64        `json:"BaseLatency,omitempty"`
}

// ScenarioConfig is the decoded form of the scenario JSON config (spec
// section 6.1).
type ScenarioConfig struct {
	Nodes []NodeSpec `json:"Nodes"`
	Edges []EdgeSpec `json:"Edges"`
	// DistanceModel selects how node LocX/LocY pairs are converted to a
	// distance when an edge omits BaseLatency. "euclidean" (default) treats
	// them as planar coordinates; "haversine" treats them as lon/lat degrees.
	DistanceModel string `json:"DistanceModel,omitempty"`
}

// BandwidthPair returns the forward and reverse bandwidth for an edge:
// either the same scalar twice, or the two elements of a [fwd, rev] array.
func (e EdgeSpec) BandwidthPair() (fwd, rev float64, err error) {
	var scalar float64
	if err := json.Unmarshal(e.Bandwidth, &scalar); err == nil {
		return scalar, scalar, nil
	}
	var pair []float64
	if err := json.Unmarshal(e.Bandwidth, &pair); err == nil {
		if len(pair) != 2 {
			return 0, 0, fmt.Errorf("edge %d->%d: bandwidth array must have 2 elements, got %d", e.SrcNodeID, e.DstNodeID, len(pair))
		}
		return pair[0], pair[1], nil
	}
	return 0, 0, fmt.Errorf("edge %d->%d: bandwidth must be a number or a 2-element array", e.SrcNodeID, e.DstNodeID)
}

// LoadScenarioConfig reads and decodes a scenario config file, validating
// that node ids are dense and start at 0.
func LoadScenarioConfig(path string) (*ScenarioConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scenario config: %w", err)
	}
	var cfg ScenarioConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing scenario config: %w", err)
	}
	if err := validateNodeIds(cfg.Nodes); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func validateNodeIds(nodes []NodeSpec) error {
	seen := make(map[int]bool, len(nodes))
	for _, n := range nodes {
		seen[n.NodeId] = true
	}
	for i := 0; i < len(nodes); i++ {
		if !seen[i] {
			return fmt.Errorf("scenario config: node ids must be dense starting at 0, missing id %d", i)
		}
	}
	return nil
}
