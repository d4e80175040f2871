package fifo

import (
	can "github.com/samsamfire/canbridge/pkg/can"
)

// Circular frame queue used for buffering frames received from a
// hardware interface until they are drained by the bridge.
// Not safe for concurrent use, callers are expected to serialize access.
type Fifo struct {
	frames   []can.Frame
	writePos int
	readPos  int
	full     bool
	dropped  uint64
}

func NewFifo(size int) *Fifo {
	if size <= 0 {
		size = 1
	}
	return &Fifo{frames: make([]can.Frame, size)}
}

func (f *Fifo) Reset() {
	f.readPos = 0
	f.writePos = 0
	f.full = false
}

func (f *Fifo) IsEmpty() bool {
	return !f.full && f.readPos == f.writePos
}

func (f *Fifo) Len() int {
	if f.full {
		return len(f.frames)
	}
	occupied := f.writePos - f.readPos
	if occupied < 0 {
		occupied += len(f.frames)
	}
	return occupied
}

// Push a frame to the queue. When the queue is full the oldest
// frame is overwritten and counted as dropped.
func (f *Fifo) Push(frame can.Frame) {
	if f.full {
		f.readPos++
		if f.readPos == len(f.frames) {
			f.readPos = 0
		}
		f.dropped++
	}
	f.frames[f.writePos] = frame
	f.writePos++
	if f.writePos == len(f.frames) {
		f.writePos = 0
	}
	f.full = f.writePos == f.readPos
}

// Pop the oldest frame, second return value is false when empty
func (f *Fifo) Pop() (can.Frame, bool) {
	if f.IsEmpty() {
		return can.Frame{}, false
	}
	frame := f.frames[f.readPos]
	f.readPos++
	if f.readPos == len(f.frames) {
		f.readPos = 0
	}
	f.full = false
	return frame, true
}

// Number of frames lost to overwrites since creation
func (f *Fifo) Dropped() uint64 {
	return f.dropped
}
