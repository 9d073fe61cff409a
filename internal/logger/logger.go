// Package logger implements the simulator's append-only outcome sink (spec
// section 4.8): a taskInfo map and a nodeInfo map, plus a drained queue of
// completion tuples for the programmatic surface's DoneTaskInfo().
//
// Operational tracing uses logrus, gated by Config.Verbose: one debug line
// per terminal outcome (task done or failed), in the style of core/env.py's
// EnvLogger.log. Intermediate transitions (admitted, queued, reactivated)
// are not traced.
package logger

import (
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/fabricsim/fabricsim/internal/infra"
	"github.com/fabricsim/fabricsim/simerr"
)

// TaskOutcome is the append-only record for one task's terminal state.
type TaskOutcome struct {
	Status    int // 0 = done, 1 = failed
	Src       string
	Dst       string
	Timings   []float64 // done: [transTime, waitTime, execTime]
	Energies  []float64 // done: [transEnergy, execEnergy]; failed: [energyAccrued]
	ErrorKind simerr.Kind
}

// NodeOutcome is the append-only record for one node's final counters.
type NodeOutcome struct {
	Energy     float64
	TotalCPUHz float64
}

// DoneTuple is one drained completion notification, mirroring the
// programmatic surface's DoneTaskInfo().
type DoneTuple struct {
	At     float64
	TaskId int64
	Status int
	Dst    string
}

// Config controls Logger verbosity.
type Config struct {
	Verbose bool
}

// Logger is the kernel's Sink: append-only during a run, cleared by Reset.
type Logger struct {
	mu       sync.Mutex
	cfg      Config
	taskInfo map[int64]TaskOutcome
	nodeInfo map[int64]NodeOutcome
	done     []DoneTuple
}

// New creates an empty Logger.
func New(cfg Config) *Logger {
	return &Logger{
		cfg:      cfg,
		taskInfo: make(map[int64]TaskOutcome),
		nodeInfo: make(map[int64]NodeOutcome),
	}
}

// LogDone appends the DONE record for task and queues a drained completion
// tuple.
func (l *Logger) LogDone(task *infra.Task, srcName string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	dstName := ""
	if task.Dst != nil {
		dstName = task.Dst.Name
	}
	l.taskInfo[task.Id] = TaskOutcome{
		Status:   0,
		Src:      srcName,
		Dst:      dstName,
		Timings:  []float64{task.TransTime, task.WaitTime, task.ExecTime},
		Energies: []float64{task.TransEnergy, task.ExecEnergy},
	}
	l.done = append(l.done, DoneTuple{TaskId: task.Id, Status: 0, Dst: dstName})

	if l.cfg.Verbose {
		logrus.Debugf("task %d accomplished on %s (trans=%.3f wait=%.3f exec=%.3f)",
			task.Id, dstName, task.TransTime, task.WaitTime, task.ExecTime)
	}
}

// LogFailure appends the FAILED record for task.
func (l *Logger) LogFailure(task *infra.Task, err *simerr.Error, srcName string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	dstName := ""
	if task.Dst != nil {
		dstName = task.Dst.Name
	}
	l.taskInfo[task.Id] = TaskOutcome{
		Status:    1,
		Src:       srcName,
		Dst:       dstName,
		ErrorKind: err.Kind,
		Energies:  []float64{task.TransEnergy + task.ExecEnergy},
	}
	l.done = append(l.done, DoneTuple{TaskId: task.Id, Status: 1, Dst: dstName})

	if l.cfg.Verbose {
		logrus.Debugf("task %d failed: %s", task.Id, err.Kind)
	}
}

// CloseNode appends the final counters for node.
func (l *Logger) CloseNode(node *infra.Node) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.nodeInfo[node.Id] = NodeOutcome{Energy: node.EnergyUsed, TotalCPUHz: node.TotalCPUHz}
}

// Reset clears every record, per the spec's append-only-during-a-run
// contract.
func (l *Logger) Reset() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.taskInfo = make(map[int64]TaskOutcome)
	l.nodeInfo = make(map[int64]NodeOutcome)
	l.done = nil
}

// TaskInfo returns the outcome recorded for taskId, if any.
func (l *Logger) TaskInfo(taskId int64) (TaskOutcome, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	o, ok := l.taskInfo[taskId]
	return o, ok
}

// NodeInfo returns the outcome recorded for nodeId, if any.
func (l *Logger) NodeInfo(nodeId int64) (NodeOutcome, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	o, ok := l.nodeInfo[nodeId]
	return o, ok
}

// Drain returns and clears the queue of completion tuples accumulated
// since the last Drain, backing Env.DoneTaskInfo().
func (l *Logger) Drain() []DoneTuple {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := l.done
	l.done = nil
	return out
}

func (o TaskOutcome) String() string {
	if o.Status == 0 {
		return fmt.Sprintf("done %s->%s %v", o.Src, o.Dst, o.Timings)
	}
	return fmt.Sprintf("failed %s->%s %s", o.Src, o.Dst, o.ErrorKind)
}
