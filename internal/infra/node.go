// Package infra holds the simulator's infrastructure data model: nodes,
// their buffers, links, data flow reservations, and the task type that
// flows across them. These types are kept in one package, mirroring the
// tight coupling of RayCloudSim's core package (node.py/link.py/task.py
// all reach into each other's fields directly).
package infra

import (
	"errors"
	"fmt"

	"github.com/fabricsim/fabricsim/internal/geo"
)

// ErrNoCPU is returned by Acquire when the node has no free CPU to grant.
var ErrNoCPU = errors.New("infra: no free cpu")

// EnergyCoefficients are the idle and execution energy coefficients used
// by the per-node energy tick and by execution-energy accounting.
type EnergyCoefficients struct {
	Idle float64
	Exe  float64
}

// Node is a compute node in the infrastructure graph: a CPU with a single
// occupant slot (per the single-task-CPU rule), a bounded FIFO buffer for
// tasks that arrive while busy, and energy/utilization accumulators.
type Node struct {
	Id           int64
	Name         string
	MaxCPUHz     float64
	FreeCPUHz    float64
	Buffer       *Buffer
	Location     *geo.Location
	Energy       EnergyCoefficients
	EnergyUsed   float64
	WirelessOnly bool

	ActiveTasks map[int64]*Task

	TotalCPUHz float64 // accumulator: (maxCPUHz - freeCPUHz) integrated over refresh ticks
	Clock      int64   // number of energy ticks observed
}

// NewNode constructs a Node with a fresh Buffer of the given capacity and
// full free CPU.
func NewNode(id int64, name string, maxCPUHz float64, bufferSize int64, loc *geo.Location, energy EnergyCoefficients) *Node {
	return &Node{
		Id:          id,
		Name:        name,
		MaxCPUHz:    maxCPUHz,
		FreeCPUHz:   maxCPUHz,
		Buffer:      NewBuffer(bufferSize),
		Location:    loc,
		Energy:      energy,
		ActiveTasks: make(map[int64]*Task),
	}
}

func (n *Node) String() string {
	return fmt.Sprintf("%s (%.0f/%.0f)", n.Name, n.FreeCPUHz, n.MaxCPUHz)
}

// AppendToBuffer enqueues task into the node's waiting buffer.
func (n *Node) AppendToBuffer(task *Task) error {
	return n.Buffer.Append(task)
}

// PopBuffer dequeues the head of the node's waiting buffer, or nil if empty.
func (n *Node) PopBuffer() *Task {
	return n.Buffer.Pop()
}

// CanAcquire reports whether the node currently has CPU free to grant.
// The admission predicate is isolated behind this function so the
// single-task-CPU rule can later generalize to multi-slot CPUs without
// touching any caller's control flow.
func (n *Node) CanAcquire() bool {
	return n.FreeCPUHz > 0
}

// Acquire grants the node's CPU to task, setting task.CPUHz and marking the
// node busy. Returns ErrNoCPU if the node has no free CPU.
func (n *Node) Acquire(task *Task) error {
	if !n.CanAcquire() {
		return ErrNoCPU
	}
	task.CPUHz = n.FreeCPUHz
	n.FreeCPUHz = 0
	n.ActiveTasks[task.Id] = task
	return nil
}

// Release returns task's CPU grant to the node, restoring full free CPU.
func (n *Node) Release(task *Task) {
	delete(n.ActiveTasks, task.Id)
	n.FreeCPUHz = n.MaxCPUHz
}

// Reset restores the node to its freshly-constructed state.
func (n *Node) Reset() {
	n.FreeCPUHz = n.MaxCPUHz
	n.EnergyUsed = 0
	n.Buffer.Reset()
	n.ActiveTasks = make(map[int64]*Task)
	n.TotalCPUHz = 0
	n.Clock = 0
}

// CPUUtilization returns the fraction of MaxCPUHz currently in use.
func (n *Node) CPUUtilization() float64 {
	if n.MaxCPUHz == 0 {
		return 0
	}
	return (n.MaxCPUHz - n.FreeCPUHz) / n.MaxCPUHz
}

// BufferUtilization returns the fraction of the buffer's capacity in use.
func (n *Node) BufferUtilization() float64 {
	if n.Buffer.MaxSize() == 0 {
		return 0
	}
	return float64(n.Buffer.MaxSize()-n.Buffer.FreeSize()) / float64(n.Buffer.MaxSize())
}

// Tick applies one energy-accounting step of duration refreshRate (virtual
// seconds): idle energy for the whole interval plus CPU-time-weighted
// accumulation, per spec section 4.5.
func (n *Node) Tick(refreshRate float64) {
	n.EnergyUsed += n.Energy.Idle * refreshRate * n.MaxCPUHz
	n.TotalCPUHz += (n.MaxCPUHz - n.FreeCPUHz) * refreshRate
	n.Clock++
}

// CreditExecEnergy adds execEnergy (already computed by the kernel) to the
// node's running total, crediting execution energy to the destination node
// on task completion.
func (n *Node) CreditExecEnergy(execEnergy float64) {
	n.EnergyUsed += execEnergy
}
