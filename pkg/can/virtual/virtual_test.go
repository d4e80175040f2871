package virtual

import (
	"sync"
	"testing"

	can "github.com/samsamfire/canbridge/pkg/can"
	"github.com/stretchr/testify/assert"
)

type FrameReceiver struct {
	mu     sync.Mutex
	frames []can.Frame
}

func (frameReceiver *FrameReceiver) Handle(frame can.Frame) {
	frameReceiver.mu.Lock()
	defer frameReceiver.mu.Unlock()
	frameReceiver.frames = append(frameReceiver.frames, frame)
}

func TestFrameCodec(t *testing.T) {
	frame := can.NewFrame(0x1234, []byte{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, true)
	raw, err := serializeFrame(frame)
	assert.Nil(t, err)
	// Skip the length prefix like the reception path does
	decoded, err := deserializeFrame(raw[4:])
	assert.Nil(t, err)
	assert.Equal(t, frame.ID, decoded.ID)
	assert.Equal(t, frame.Data, decoded.Data)
	assert.True(t, decoded.IsFD)
}

func TestFrameCodecRejectsOversizedPayload(t *testing.T) {
	frame := can.NewFrame(0x100, make([]byte, can.MaxDataLength+1), true)
	_, err := serializeFrame(frame)
	assert.NotNil(t, err)
}

func TestReceiveOwnLoopback(t *testing.T) {
	bus, err := NewVirtualCanBus("localhost:18888")
	assert.Nil(t, err)
	vcan, ok := bus.(*Bus)
	assert.True(t, ok)

	receiver := &FrameReceiver{}
	vcan.framehandler = receiver
	vcan.SetReceiveOwn(true)

	// Without a broker connection the loopback still delivers locally
	frame := can.NewFrame(0x111, []byte{0, 1, 2, 3}, false)
	assert.Nil(t, vcan.Send(frame))
	receiver.mu.Lock()
	defer receiver.mu.Unlock()
	assert.Len(t, receiver.frames, 1)
	assert.EqualValues(t, 0x111, receiver.frames[0].ID)
}
