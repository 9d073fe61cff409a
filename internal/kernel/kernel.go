// Package kernel implements the single-threaded cooperative discrete-event
// scheduler: the virtual clock, the event queue, the task lifecycle state
// machine, the completion drain routine, and the per-node energy tick.
//
// Only the kernel may advance time. Task "coroutines" are expressed as
// (time, seq, callback) events rather than goroutines or fibers — both are
// sanctioned by the design notes, and callbacks keep the whole kernel
// single-goroutine, which is what the determinism guarantees in the spec
// actually require.
package kernel

import (
	"github.com/fabricsim/fabricsim/internal/graph"
	"github.com/fabricsim/fabricsim/internal/infra"
	"github.com/fabricsim/fabricsim/simerr"
)

// ExecEnergyModel selects the formula used to credit a completed task's
// execution energy to its destination node (spec section 4.5: the model is
// deliberately left open upstream, so an implementation MUST pick one and
// document it rather than guess).
type ExecEnergyModel string

const (
	// ExecEnergyLinear: execEnergy = exeCoef * (maxCPUHz - freeCPUHz) * execTime.
	ExecEnergyLinear ExecEnergyModel = "linear"
	// ExecEnergyCubic: execEnergy = exeCoef * (maxCPUHz - freeCPUHz)^3 * execTime.
	ExecEnergyCubic ExecEnergyModel = "cubic"
)

// Sink receives task and node outcomes as the kernel produces them. The
// internal/logger package implements this; kernel depends only on the
// interface to avoid an import cycle.
type Sink interface {
	LogDone(task *infra.Task, srcName string)
	LogFailure(task *infra.Task, err *simerr.Error, srcName string)
	CloseNode(node *infra.Node)
	Reset()
}

// completionMsg is what flows through the kernel's completion channel: a
// finished task coroutine notifying the drain routine.
type completionMsg struct {
	task *infra.Task
	now  float64
}

// Kernel is the simulation kernel: virtual clock, event queue, and the
// resource-owning Graph it schedules work against.
type Kernel struct {
	Graph *graph.Graph

	clock       float64
	events      *eventHeap
	nextSeq     uint64
	refreshRate float64
	energyUnit  float64
	execEnergy  ExecEnergyModel

	activeTasks    map[int64]*infra.Task
	taskFlows      map[int64]*infra.DataFlow
	processedCount int

	completionCh chan completionMsg
	sink         Sink

	started bool
}

// Config groups the options that configure a Kernel beyond the Graph it
// operates on.
type Config struct {
	RefreshRate     float64 // virtual-time step of the energy tick; completions are drained at the instant they occur, not on this step
	EnergyUnit      float64 // divisor applied when reporting accumulated energy
	ExecEnergyModel ExecEnergyModel
	CompletionDepth int // completion channel buffer size; 0 defaults to 4096
}

// New constructs a Kernel over g, reporting outcomes to sink.
func New(g *graph.Graph, sink Sink, cfg Config) *Kernel {
	if cfg.RefreshRate <= 0 {
		cfg.RefreshRate = 1
	}
	if cfg.EnergyUnit <= 0 {
		cfg.EnergyUnit = 1
	}
	if cfg.ExecEnergyModel == "" {
		cfg.ExecEnergyModel = ExecEnergyLinear
	}
	depth := cfg.CompletionDepth
	if depth <= 0 {
		depth = 4096
	}
	return &Kernel{
		Graph:        g,
		events:       newEventHeap(),
		refreshRate:  cfg.RefreshRate,
		energyUnit:   cfg.EnergyUnit,
		execEnergy:   cfg.ExecEnergyModel,
		activeTasks:  make(map[int64]*infra.Task),
		taskFlows:    make(map[int64]*infra.DataFlow),
		completionCh: make(chan completionMsg, depth),
		sink:         sink,
	}
}

// Now returns the current virtual clock value.
func (k *Kernel) Now() float64 { return k.clock }

// ActiveCount returns the number of tasks currently in flight.
func (k *Kernel) ActiveCount() int { return len(k.activeTasks) }

// ProcessedCount returns the number of tasks that have reached a terminal
// state (DONE or FAILED) since the kernel was created or last Reset.
func (k *Kernel) ProcessedCount() int { return k.processedCount }

// schedule enqueues a callback to run at virtual time t, assigning it the
// next sequence number so same-instant events preserve scheduling order.
func (k *Kernel) schedule(t float64, label string, fn func(*Kernel)) {
	k.events.schedule(&callbackEvent{
		baseEvent: baseEvent{time: t, seq: k.nextSeq, label: label},
		fn:        fn,
	})
	k.nextSeq++
}

// Start arms the per-node energy tick for every node currently in the
// graph. Call once before the first Run.
func (k *Kernel) Start() {
	if k.started {
		return
	}
	k.started = true
	for _, n := range k.Graph.Nodes() {
		k.armEnergyTick(n, k.refreshRate)
	}
}

// Run advances the virtual clock, executing every event due at or before
// untilT, then leaves the clock at untilT.
func (k *Kernel) Run(untilT float64) {
	for {
		next := k.events.peek()
		if next == nil || next.Time() > untilT {
			break
		}
		ev := k.events.popNext()
		k.clock = ev.Time()
		ev.Execute(k)
	}
	if untilT > k.clock {
		k.clock = untilT
	}
}

// Reset clears all scheduled events, releases every in-flight reservation
// and CPU hold, resets every node and link to its initial state, and
// clears the active/completion/logger state. Per the spec, in-flight
// coroutines are not individually interrupted — Reset performs the
// release itself, since coroutines here are simply events that will never
// be popped once the queue is replaced.
func (k *Kernel) Reset() {
	k.events = newEventHeap()
	k.nextSeq = 0
	k.clock = 0
	k.started = false

	for _, flow := range k.taskFlows {
		if flow.Placed() {
			_ = flow.Release()
		}
	}
	k.taskFlows = make(map[int64]*infra.DataFlow)

	for _, n := range k.Graph.Nodes() {
		n.Reset()
	}
	for _, l := range k.Graph.Links() {
		l.Reset()
	}

	k.activeTasks = make(map[int64]*infra.Task)
	k.processedCount = 0

	for len(k.completionCh) > 0 {
		<-k.completionCh
	}
	k.sink.Reset()
}
