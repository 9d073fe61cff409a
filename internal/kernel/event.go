package kernel

// Event is a unit of work scheduled on the kernel's virtual clock. Events
// at the same Time() execute in the order they were scheduled (see
// eventHeap), realizing the spec's FIFO-at-equal-instant guarantee.
type Event interface {
	Time() float64
	Seq() uint64
	Label() string
	Execute(k *Kernel)
}

// baseEvent carries the fields common to every event.
type baseEvent struct {
	time  float64
	seq   uint64
	label string
}

func (e baseEvent) Time() float64  { return e.time }
func (e baseEvent) Seq() uint64    { return e.seq }
func (e baseEvent) Label() string  { return e.label }

// callbackEvent is a (time, seq, callback) tuple: the event loop's only
// concrete Event type. Task transmission, admission, completion, and
// energy ticks are all expressed as callbacks rather than distinct
// structs, following the "min-heap of callbacks" scheduler design the
// spec sanctions as an alternative to fibers/coroutines.
type callbackEvent struct {
	baseEvent
	fn func(k *Kernel)
}

func (e *callbackEvent) Execute(k *Kernel) { e.fn(k) }
