package fifo

import (
	"testing"

	can "github.com/samsamfire/canbridge/pkg/can"
)

func frame(id uint32) can.Frame {
	return can.NewFrame(id, []byte{1, 2, 3}, false)
}

func TestFifoPushPop(t *testing.T) {
	fifo := NewFifo(4)
	if !fifo.IsEmpty() {
		t.Error("new fifo should be empty")
	}
	fifo.Push(frame(0x100))
	fifo.Push(frame(0x200))
	if fifo.Len() != 2 {
		t.Errorf("len is %v", fifo.Len())
	}
	popped, ok := fifo.Pop()
	if !ok || popped.ID != 0x100 {
		t.Errorf("expected 0x100, got %x", popped.ID)
	}
	popped, ok = fifo.Pop()
	if !ok || popped.ID != 0x200 {
		t.Errorf("expected 0x200, got %x", popped.ID)
	}
	if _, ok := fifo.Pop(); ok {
		t.Error("pop on empty fifo should fail")
	}
}

func TestFifoWrapAround(t *testing.T) {
	fifo := NewFifo(3)
	for id := uint32(1); id <= 5; id++ {
		fifo.Push(frame(id))
		if _, ok := fifo.Pop(); !ok {
			t.Errorf("pop failed at %v", id)
		}
	}
	if !fifo.IsEmpty() {
		t.Error("fifo should be empty after draining")
	}
	if fifo.Dropped() != 0 {
		t.Errorf("dropped %v frames", fifo.Dropped())
	}
}

func TestFifoOverwritesOldest(t *testing.T) {
	fifo := NewFifo(2)
	fifo.Push(frame(1))
	fifo.Push(frame(2))
	fifo.Push(frame(3))
	if fifo.Dropped() != 1 {
		t.Errorf("dropped is %v", fifo.Dropped())
	}
	popped, _ := fifo.Pop()
	if popped.ID != 2 {
		t.Errorf("oldest frame should have been overwritten, got %v", popped.ID)
	}
	popped, _ = fifo.Pop()
	if popped.ID != 3 {
		t.Errorf("expected 3, got %v", popped.ID)
	}
}
