package kernel

import (
	"errors"

	"github.com/fabricsim/fabricsim/internal/graph"
	"github.com/fabricsim/fabricsim/internal/infra"
	"github.com/fabricsim/fabricsim/simerr"
)

// Submit admits task into the kernel's task lifecycle state machine,
// targeting the node named dstName. Failures are final for the task: the
// kernel never retries.
func (k *Kernel) Submit(task *infra.Task, dstName string) error {
	if _, exists := k.activeTasks[task.Id]; exists {
		// The active entry belongs to the earlier task with this id, so it is
		// left in place; only the new submission is finalized as FAILED.
		task.State = infra.StateFailed
		err := simerr.New(simerr.DuplicateTaskId, task.Id, k.clock, "")
		k.sink.LogFailure(task, err, task.SrcName)
		k.processedCount++
		return err
	}

	dst, err := k.Graph.GetNode(dstName)
	if err != nil {
		return k.fail(task, simerr.NotFound, "destination node "+dstName)
	}

	k.activeTasks[task.Id] = task
	task.State = infra.StateRouting
	task.Dst = dst

	if task.SrcName == dstName {
		task.TransTime = 0
		return k.admit(task, k.clock)
	}

	hops, err := k.Graph.ShortestLinks(task.SrcName, dstName, graph.Hops)
	if err != nil {
		return k.fail(task, mapGraphErr(err), "")
	}

	var wired []*infra.Link
	baseLatency := 0.0
	for _, h := range hops {
		baseLatency += h.BaseLatency()
		if !h.Wireless {
			wired = append(wired, h.Link)
		}
	}
	hopCount := len(wired)

	transTime := baseLatency
	if hopCount > 0 {
		transTime += (float64(task.Size) / task.TransBitRate) * float64(hopCount)
	}

	flow := infra.NewDataFlow(wired, task.TransBitRate)
	if err := flow.Place(); err != nil {
		return k.fail(task, simerr.NetCongestion, "")
	}

	task.TransTime = transTime
	task.State = infra.StateTransmitting
	k.taskFlows[task.Id] = flow

	k.schedule(k.clock+transTime, "transmit-done", func(k *Kernel) {
		k.onTransmitDone(task)
	})
	return nil
}

func mapGraphErr(err error) simerr.Kind {
	switch {
	case errors.Is(err, graph.ErrNoPath):
		return simerr.NoPath
	case errors.Is(err, graph.ErrIsolatedWireless):
		return simerr.IsolatedWireless
	case errors.Is(err, graph.ErrNotFound):
		return simerr.NotFound
	default:
		return simerr.NoPath
	}
}

func (k *Kernel) onTransmitDone(task *infra.Task) {
	if flow, ok := k.taskFlows[task.Id]; ok {
		_ = flow.Release()
		delete(k.taskFlows, task.Id)
	}
	_ = k.admit(task, k.clock)
}

// admit moves task into ADMIT: it either acquires the destination's CPU
// directly (EXECUTING) or, finding the CPU busy, enqueues into the
// destination's buffer (QUEUED).
func (k *Kernel) admit(task *infra.Task, now float64) error {
	task.State = infra.StateAdmit
	dst := task.Dst

	if err := dst.Acquire(task); err == nil {
		task.SetImmediateWait()
		k.beginExecution(task, now)
		return nil
	}

	if err := dst.AppendToBuffer(task); err != nil {
		return k.fail(task, simerr.InsufficientBuffer, "")
	}
	task.State = infra.StateQueued
	task.StampEnqueue(now)
	return nil
}

func (k *Kernel) beginExecution(task *infra.Task, now float64) {
	task.ComputeExecTime()
	task.State = infra.StateExecuting
	k.schedule(now+task.ExecTime, "exec-done", func(k *Kernel) {
		k.onExecDone(task)
	})
}

func (k *Kernel) onExecDone(task *infra.Task) {
	k.completionCh <- completionMsg{task: task, now: k.clock}
	k.drainCompletions()
}

// drainCompletions processes every pending completion: releasing CPU,
// removing the task from the active set, logging the outcome, and waking
// a queued successor — in that order, so the successor's admission always
// sees the CPU the predecessor just released.
func (k *Kernel) drainCompletions() {
	for {
		select {
		case msg := <-k.completionCh:
			k.handleCompletion(msg.task, msg.now)
		default:
			return
		}
	}
}

func (k *Kernel) handleCompletion(task *infra.Task, now float64) {
	dst := task.Dst
	dst.Release(task)
	delete(k.activeTasks, task.Id)
	task.ExecCount++
	task.State = infra.StateDone

	task.ExecEnergy = k.computeExecEnergy(dst, task)
	dst.CreditExecEnergy(task.ExecEnergy)

	k.sink.LogDone(task, task.SrcName)
	k.processedCount++

	k.reactivateNext(dst, now)
}

// reactivateNext pops queued tasks off dst's buffer until one is admitted
// (occupying the now-free CPU) or the buffer runs dry. A popped task whose
// elapsed wait exceeds its deadline fails with Timeout and drainage
// continues to the next queued task, per the spec's requirement that a
// failure after queueing still attempts to wake a successor.
func (k *Kernel) reactivateNext(dst *infra.Node, now float64) {
	for {
		next := dst.PopBuffer()
		if next == nil {
			return
		}
		next.RecomputeWaitOnDequeue(now)
		next.State = infra.StateReactivated

		if next.HasDeadline() && next.WaitTime > next.Deadline {
			k.fail(next, simerr.Timeout, "")
			continue
		}

		// The single-task-CPU invariant guarantees dst.FreeCPUHz == MaxCPUHz
		// here: dst.Release was just called by the predecessor's completion.
		_ = dst.Acquire(next)
		k.beginExecution(next, now)
		return
	}
}

// fail finalizes task as FAILED: it is removed from the active set, logged,
// and counted as processed. It never attempts to wake a successor itself —
// callers that pop a task off a buffer (reactivateNext) already loop to the
// next candidate on failure.
func (k *Kernel) fail(task *infra.Task, kind simerr.Kind, msg string) error {
	task.State = infra.StateFailed
	delete(k.activeTasks, task.Id)
	err := simerr.New(kind, task.Id, k.clock, msg)
	k.sink.LogFailure(task, err, task.SrcName)
	k.processedCount++
	return err
}

// computeExecEnergy credits execution energy to dst using the configured
// model (spec section 4.5 leaves the formula open; this kernel must pick
// one rather than guess, and exposes the choice via Config.ExecEnergyModel).
func (k *Kernel) computeExecEnergy(dst *infra.Node, task *infra.Task) float64 {
	// dst.Release already ran by the time this is called, so FreeCPUHz is
	// back to MaxCPUHz; under the single-task-CPU rule the task always ran
	// at the node's full frequency, which MaxCPUHz gives directly.
	utilised := dst.MaxCPUHz
	switch k.execEnergy {
	case ExecEnergyCubic:
		return dst.Energy.Exe * utilised * utilised * utilised * task.ExecTime
	default:
		return dst.Energy.Exe * utilised * task.ExecTime
	}
}
