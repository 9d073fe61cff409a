package infra

import (
	"container/list"
	"errors"
)

// ErrBufferFull is returned by Append when the task does not fit in the
// buffer's remaining free size.
var ErrBufferFull = errors.New("infra: buffer full")

// Buffer is a FIFO queue of Tasks with a fixed capacity expressed in bits.
type Buffer struct {
	maxSize  int64
	freeSize int64
	queue    *list.List
}

// NewBuffer creates a Buffer with the given capacity in bits.
func NewBuffer(maxSize int64) *Buffer {
	return &Buffer{
		maxSize:  maxSize,
		freeSize: maxSize,
		queue:    list.New(),
	}
}

// MaxSize returns the buffer's total capacity in bits.
func (b *Buffer) MaxSize() int64 { return b.maxSize }

// FreeSize returns the currently unoccupied capacity in bits.
func (b *Buffer) FreeSize() int64 { return b.freeSize }

// Len returns the number of queued tasks.
func (b *Buffer) Len() int { return b.queue.Len() }

// Append enqueues task at the tail, failing with BufferFull if the task
// does not fit in the remaining free size.
func (b *Buffer) Append(task *Task) error {
	if task.Size > b.freeSize {
		return ErrBufferFull
	}
	b.freeSize -= task.Size
	b.queue.PushBack(task)
	return nil
}

// Pop removes and returns the head of the queue, or nil if empty.
func (b *Buffer) Pop() *Task {
	front := b.queue.Front()
	if front == nil {
		return nil
	}
	b.queue.Remove(front)
	task := front.Value.(*Task)
	b.freeSize += task.Size
	return task
}

// Reset clears the buffer back to its initial empty state.
func (b *Buffer) Reset() {
	b.freeSize = b.maxSize
	b.queue.Init()
}
