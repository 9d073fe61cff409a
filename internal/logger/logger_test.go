package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fabricsim/fabricsim/internal/infra"
	"github.com/fabricsim/fabricsim/simerr"
)

func TestLogger_LogDone_RecordsTaskOutcome(t *testing.T) {
	l := New(Config{})
	task := infra.NewTask(1, "t1", 100, 1, 1, 0, "n0")
	task.Dst = infra.NewNode(1, "n1", 1000, 4096, nil, infra.EnergyCoefficients{})
	task.TransTime, task.WaitTime, task.ExecTime = 1, 1, 10

	l.LogDone(task, "n0")

	outcome, ok := l.TaskInfo(1)
	require.True(t, ok)
	assert.Equal(t, 0, outcome.Status)
	assert.Equal(t, "n0", outcome.Src)
	assert.Equal(t, "n1", outcome.Dst)
	assert.Equal(t, []float64{1, 1, 10}, outcome.Timings)
}

func TestLogger_LogFailure_RecordsErrorKind(t *testing.T) {
	l := New(Config{})
	task := infra.NewTask(2, "t2", 100, 1, 1, 0, "n0")
	err := simerr.New(simerr.NoPath, 2, 5, "")

	l.LogFailure(task, err, "n0")

	outcome, ok := l.TaskInfo(2)
	require.True(t, ok)
	assert.Equal(t, 1, outcome.Status)
	assert.Equal(t, simerr.NoPath, outcome.ErrorKind)
}

func TestLogger_Drain_ClearsQueue(t *testing.T) {
	l := New(Config{})
	task1 := infra.NewTask(1, "t1", 100, 1, 1, 0, "n0")
	task1.Dst = infra.NewNode(0, "n1", 1000, 4096, nil, infra.EnergyCoefficients{})
	l.LogDone(task1, "n0")

	drained := l.Drain()
	assert.Len(t, drained, 1)
	assert.Equal(t, int64(1), drained[0].TaskId)

	assert.Empty(t, l.Drain())
}

func TestLogger_CloseNode_RecordsNodeOutcome(t *testing.T) {
	l := New(Config{})
	n := infra.NewNode(3, "n3", 1000, 4096, nil, infra.EnergyCoefficients{})
	n.EnergyUsed = 42
	n.TotalCPUHz = 99

	l.CloseNode(n)

	outcome, ok := l.NodeInfo(3)
	require.True(t, ok)
	assert.Equal(t, 42.0, outcome.Energy)
	assert.Equal(t, 99.0, outcome.TotalCPUHz)
}

func TestLogger_Reset_ClearsEverything(t *testing.T) {
	l := New(Config{})
	task := infra.NewTask(1, "t1", 100, 1, 1, 0, "n0")
	task.Dst = infra.NewNode(0, "n1", 1000, 4096, nil, infra.EnergyCoefficients{})
	l.LogDone(task, "n0")
	l.CloseNode(task.Dst)

	l.Reset()

	_, ok := l.TaskInfo(1)
	assert.False(t, ok)
	_, ok = l.NodeInfo(0)
	assert.False(t, ok)
	assert.Empty(t, l.Drain())
}
