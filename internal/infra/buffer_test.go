package infra

import (
	"errors"
	"testing"
)

func newTestTask(id int64, size int64) *Task {
	return NewTask(id, "t", size, 1, 1, 0, "src")
}

func TestBuffer_FIFO_Order(t *testing.T) {
	b := NewBuffer(1000)
	if err := b.Append(newTestTask(1, 100)); err != nil {
		t.Fatalf("Append(1) error: %v", err)
	}
	if err := b.Append(newTestTask(2, 100)); err != nil {
		t.Fatalf("Append(2) error: %v", err)
	}
	if err := b.Append(newTestTask(3, 100)); err != nil {
		t.Fatalf("Append(3) error: %v", err)
	}

	first := b.Pop()
	second := b.Pop()
	third := b.Pop()
	if first.Id != 1 || second.Id != 2 || third.Id != 3 {
		t.Errorf("Pop order = [%d %d %d], want [1 2 3]", first.Id, second.Id, third.Id)
	}
}

func TestBuffer_PopEmptyReturnsNil(t *testing.T) {
	b := NewBuffer(1000)
	if got := b.Pop(); got != nil {
		t.Errorf("Pop on empty buffer = %v, want nil", got)
	}
}

func TestBuffer_AppendRejectsOversizedTask(t *testing.T) {
	b := NewBuffer(100)
	err := b.Append(newTestTask(1, 200))
	if !errors.Is(err, ErrBufferFull) {
		t.Errorf("Append oversized task error = %v, want ErrBufferFull", err)
	}
	if b.Len() != 0 {
		t.Errorf("Len after rejected append = %d, want 0", b.Len())
	}
}

func TestBuffer_FreeSizeAccounting(t *testing.T) {
	b := NewBuffer(1000)
	b.Append(newTestTask(1, 300))
	if got := b.FreeSize(); got != 700 {
		t.Errorf("FreeSize after append = %d, want 700", got)
	}
	b.Pop()
	if got := b.FreeSize(); got != 1000 {
		t.Errorf("FreeSize after pop = %d, want 1000", got)
	}
}

func TestBuffer_Reset(t *testing.T) {
	b := NewBuffer(1000)
	b.Append(newTestTask(1, 300))
	b.Reset()
	if b.Len() != 0 {
		t.Errorf("Len after Reset = %d, want 0", b.Len())
	}
	if b.FreeSize() != b.MaxSize() {
		t.Errorf("FreeSize after Reset = %d, want %d", b.FreeSize(), b.MaxSize())
	}
}
