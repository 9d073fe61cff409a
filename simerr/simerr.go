// Package simerr defines the closed error taxonomy raised by the simulation
// kernel. Policies, CLIs, and loggers that consume these errors must treat
// any Kind they do not recognize as fatal.
package simerr

import "fmt"

// Kind identifies one of the fixed failure modes the kernel can raise.
type Kind string

const (
	DuplicateTaskId     Kind = "DuplicateTaskId"
	NoPath              Kind = "NoPath"
	IsolatedWireless    Kind = "IsolatedWireless"
	NetCongestion       Kind = "NetCongestion"
	InsufficientBuffer  Kind = "InsufficientBuffer"
	Timeout             Kind = "Timeout"
	NotFound            Kind = "NotFound"
	BufferFull          Kind = "BufferFull"
	NoCPU               Kind = "NoCPU"
)

// knownKinds is used by IsKnown; keep in sync with the constants above.
var knownKinds = map[Kind]bool{
	DuplicateTaskId:    true,
	NoPath:             true,
	IsolatedWireless:   true,
	NetCongestion:      true,
	InsufficientBuffer: true,
	Timeout:            true,
	NotFound:           true,
	BufferFull:         true,
	NoCPU:              true,
}

// IsKnown reports whether k is one of the kinds the kernel recognises.
// Callers MUST treat an unknown Kind as fatal rather than ignoring it.
func IsKnown(k Kind) bool {
	return knownKinds[k]
}

// Error wraps a Kind with the instant and task it applies to.
type Error struct {
	Kind   Kind
	TaskId int64
	At     float64 // virtual time the failure occurred
	Msg    string
}

func (e *Error) Error() string {
	if e.Msg != "" {
		return fmt.Sprintf("%s: task %d at t=%.3f: %s", e.Kind, e.TaskId, e.At, e.Msg)
	}
	return fmt.Sprintf("%s: task %d at t=%.3f", e.Kind, e.TaskId, e.At)
}

// New builds an *Error for the given kind.
func New(kind Kind, taskId int64, at float64, msg string) *Error {
	return &Error{Kind: kind, TaskId: taskId, At: at, Msg: msg}
}

// Fatal reports whether the error is fatal to the task (all kernel kinds
// are, per the taxonomy in the spec; kept as a named predicate so call
// sites read as intent rather than "always true").
func (e *Error) Fatal() bool {
	return true
}
