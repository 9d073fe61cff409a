// Package policy defines the pluggable offloading-decision capability the
// spec treats as an external collaborator: a policy only ever calls back
// into the kernel through Submit, and may read (never mutate) the
// snapshot Env exposes.
//
// Policy is a capability interface rather than a base class, per the
// design notes: Decide is required, StoreTransition/Update are optional
// capabilities a policy may additionally implement (checked with a type
// assertion), mirroring the teacher's small single-purpose interfaces
// (AdmissionPolicy, RoutingPolicy in sim/admission.go, sim/routing.go).
package policy

import "fmt"

// TaskInfo is the read-only view of a task a Policy uses to decide a
// destination; it intentionally exposes only routing-relevant fields, not
// the full mutable infra.Task.
type TaskInfo struct {
	Id      int64
	Size    int64
	SrcName string
}

// NodeView is a read-only snapshot of one node's load, as returned by
// Env.NodeView.
type NodeView struct {
	Name              string
	MaxCPUHz          float64
	FreeCPUHz         float64
	BufferUtilization float64
}

// Env is the read-only surface a Policy observes. Scenario satisfies this
// interface structurally; policy never imports the scenario package.
type Env interface {
	Now() float64
	NodeNames() []string
	NodeView(name string) (NodeView, bool)
}

// Policy decides which node should execute a task.
type Policy interface {
	Decide(env Env, task TaskInfo) (nodeName string, err error)
}

// Trainable is an optional capability: policies that learn from outcomes
// (e.g. a DQN-based policy) implement it in addition to Policy.
type Trainable interface {
	StoreTransition(task TaskInfo, chosen string, reward float64)
	Update()
}

// ErrNoNodes is returned by a policy asked to decide with an empty
// candidate set.
var ErrNoNodes = fmt.Errorf("policy: no candidate nodes")
