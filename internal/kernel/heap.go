package kernel

import "container/heap"

// eventHeap is a priority queue over Events, ordered by (Time, Seq). Seq
// is assigned in scheduling order, so events due at the same virtual
// instant pop out in the order they were scheduled — the determinism
// guarantee the spec requires. Grounded on the same container/heap
// pattern the teacher's cluster event queue uses, simplified to a single
// tie-break key since scheduling order already encodes any ordering a
// caller needs (e.g. releasing a CPU before admitting its successor).
type eventHeap struct {
	events []Event
}

func newEventHeap() *eventHeap {
	h := &eventHeap{}
	heap.Init(h)
	return h
}

func (h *eventHeap) Len() int { return len(h.events) }

func (h *eventHeap) Less(i, j int) bool {
	if h.events[i].Time() != h.events[j].Time() {
		return h.events[i].Time() < h.events[j].Time()
	}
	return h.events[i].Seq() < h.events[j].Seq()
}

func (h *eventHeap) Swap(i, j int) { h.events[i], h.events[j] = h.events[j], h.events[i] }

func (h *eventHeap) Push(x any) { h.events = append(h.events, x.(Event)) }

func (h *eventHeap) Pop() any {
	old := h.events
	n := len(old)
	item := old[n-1]
	h.events = old[:n-1]
	return item
}

func (h *eventHeap) schedule(e Event) { heap.Push(h, e) }

func (h *eventHeap) popNext() Event {
	if h.Len() == 0 {
		return nil
	}
	return heap.Pop(h).(Event)
}

func (h *eventHeap) peek() Event {
	if h.Len() == 0 {
		return nil
	}
	return h.events[0]
}
