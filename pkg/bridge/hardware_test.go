package bridge

import (
	"testing"

	can "github.com/samsamfire/canbridge/pkg/can"
	"github.com/stretchr/testify/assert"
)

func TestHardwareQueueDrains(t *testing.T) {
	driver := &stubDriver{}
	hw := NewHardwareCanBus(nil, "hw")
	hw.SetDriver(driver)
	assert.Nil(t, hw.Init())

	assert.True(t, hw.IsQueueEmpty())
	driver.listener.Handle(can.NewFrame(0x10, []byte{1}, false))
	driver.listener.Handle(can.NewFrame(0x20, []byte{2}, false))
	assert.False(t, hw.IsQueueEmpty())

	frame, ok := hw.ReadFrame()
	assert.True(t, ok)
	assert.EqualValues(t, 0x10, frame.ID)
	frame, ok = hw.ReadFrame()
	assert.True(t, ok)
	assert.EqualValues(t, 0x20, frame.ID)
	_, ok = hw.ReadFrame()
	assert.False(t, ok)
}

func TestWriteFrameClampsFDWhenNotCapable(t *testing.T) {
	driver := &stubDriver{}
	hw := NewHardwareCanBus(nil, "hw")
	hw.SetDriver(driver)
	assert.Nil(t, hw.Init())

	hw.SetFDCapable(false)
	assert.Nil(t, hw.WriteFrame(0x300, []byte{1, 2}, true))
	sent := driver.sentFrames()
	assert.Len(t, sent, 1)
	assert.False(t, sent[0].IsFD)

	hw.SetFDCapable(true)
	assert.Nil(t, hw.WriteFrame(0x301, []byte{3}, true))
	sent = driver.sentFrames()
	assert.Len(t, sent, 2)
	assert.True(t, sent[1].IsFD)
}
