package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadScenarioConfig_ParsesNodesAndEdges(t *testing.T) {
	path := writeTempFile(t, "scenario.json", `{
		"Nodes": [
			{"NodeType":"Node","NodeName":"e0","NodeId":0,"MaxCpuFreq":10000,"MaxBufferSize":4096,"LocX":33.69,"LocY":73.01,"IdleEnergyCoef":0.01,"ExeEnergyCoef":0.4},
			{"NodeType":"Node","NodeName":"e1","NodeId":1,"MaxCpuFreq":10000,"MaxBufferSize":4096,"IdleEnergyCoef":0.01,"ExeEnergyCoef":0.4}
		],
		"Edges": [
			{"EdgeType":"Link","SrcNodeID":0,"DstNodeID":1,"Bandwidth":2500,"BaseLatency":0.002}
		]
	}`)

	cfg, err := LoadScenarioConfig(path)
	require.NoError(t, err)
	assert.Len(t, cfg.Nodes, 2)
	assert.Equal(t, "e0", cfg.Nodes[0].NodeName)
	assert.Equal(t, 33.69, *cfg.Nodes[0].LocX)
	assert.Len(t, cfg.Edges, 1)
	assert.Equal(t, "Link", cfg.Edges[0].EdgeType)
	assert.Equal(t, "", cfg.DistanceModel, "DistanceModel should default to the zero value when omitted")
}

func TestLoadScenarioConfig_ParsesDistanceModel(t *testing.T) {
	path := writeTempFile(t, "scenario.json", `{
		"DistanceModel": "haversine",
		"Nodes": [
			{"NodeName":"e0","NodeId":0}
		],
		"Edges": []
	}`)

	cfg, err := LoadScenarioConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "haversine", cfg.DistanceModel)
}

func TestLoadScenarioConfig_RejectsSparseNodeIds(t *testing.T) {
	path := writeTempFile(t, "scenario.json", `{
		"Nodes": [
			{"NodeName":"e0","NodeId":0},
			{"NodeName":"e2","NodeId":2}
		],
		"Edges": []
	}`)

	_, err := LoadScenarioConfig(path)
	assert.Error(t, err)
}

func TestLoadScenarioConfig_MissingFile(t *testing.T) {
	_, err := LoadScenarioConfig(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

func TestEdgeSpec_BandwidthPair_Scalar(t *testing.T) {
	e := EdgeSpec{Bandwidth: []byte(`2500`)}
	fwd, rev, err := e.BandwidthPair()
	require.NoError(t, err)
	assert.Equal(t, 2500.0, fwd)
	assert.Equal(t, 2500.0, rev)
}

func TestEdgeSpec_BandwidthPair_Array(t *testing.T) {
	e := EdgeSpec{Bandwidth: []byte(`[1000, 500]`)}
	fwd, rev, err := e.BandwidthPair()
	require.NoError(t, err)
	assert.Equal(t, 1000.0, fwd)
	assert.Equal(t, 500.0, rev)
}

func TestEdgeSpec_BandwidthPair_WrongArrayLength(t *testing.T) {
	e := EdgeSpec{Bandwidth: []byte(`[1000, 500, 250]`)}
	_, _, err := e.BandwidthPair()
	assert.Error(t, err)
}

func TestEdgeSpec_BandwidthPair_Invalid(t *testing.T) {
	e := EdgeSpec{Bandwidth: []byte(`"not-a-number"`)}
	_, _, err := e.BandwidthPair()
	assert.Error(t, err)
}
