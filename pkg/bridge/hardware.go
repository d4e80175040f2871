package bridge

import (
	"fmt"
	"sync"

	"github.com/samsamfire/canbridge/internal/fifo"
	"github.com/samsamfire/canbridge/pkg/app"
	can "github.com/samsamfire/canbridge/pkg/can"
	log "github.com/sirupsen/logrus"
)

const defaultQueueSize = 512

// HardwareCanBus wraps a physical CAN driver. Received frames are
// buffered in a frame fifo until the bridge drains them, writes go
// straight to the driver. The driver reference is non owning, it must
// stay valid for the lifetime of this component.
type HardwareCanBus struct {
	app.BaseComponent
	mu            sync.Mutex
	driver        can.Bus
	queue         *fifo.Fifo
	fdCapable     bool
	interfaceName string
	channel       string
}

func NewHardwareCanBus(parent app.Component, name string) *HardwareCanBus {
	hw := &HardwareCanBus{
		BaseComponent: app.NewBaseComponent(parent, name),
		queue:         fifo.NewFifo(defaultQueueSize),
	}
	if parent != nil {
		parent.AddChild(hw)
	}
	return hw
}

func (hw *HardwareCanBus) Load(opts *app.Options) error {
	hw.interfaceName = opts.GetString("interface", "")
	hw.channel = opts.GetString("channel", "")
	hw.queue = fifo.NewFifo(opts.GetInt("queue_size", defaultQueueSize))
	return nil
}

// SetDriver injects a driver directly instead of creating one from
// configuration. Used by tests and embedding hosts.
func (hw *HardwareCanBus) SetDriver(driver can.Bus) {
	hw.driver = driver
}

func (hw *HardwareCanBus) Init() error {
	if hw.driver == nil {
		if hw.interfaceName == "" {
			return fmt.Errorf("hardware bus %v has no driver and no interface configured", hw.Name())
		}
		driver, err := can.NewBus(hw.interfaceName, hw.channel)
		if err != nil {
			return err
		}
		hw.driver = driver
	}
	if err := hw.driver.Subscribe(hw); err != nil {
		return err
	}
	return hw.driver.Connect()
}

// Handle implements [can.FrameListener], invoked by the driver
// reception goroutine.
func (hw *HardwareCanBus) Handle(frame can.Frame) {
	hw.mu.Lock()
	before := hw.queue.Dropped()
	hw.queue.Push(frame)
	dropped := hw.queue.Dropped() - before
	hw.mu.Unlock()
	if dropped > 0 {
		log.Warnf("[HARDWARE] receive queue full, oldest frame dropped (id x%x queued)", frame.ID)
	}
}

func (hw *HardwareCanBus) IsQueueEmpty() bool {
	hw.mu.Lock()
	defer hw.mu.Unlock()
	return hw.queue.IsEmpty()
}

// ReadFrame pops the oldest received frame, ok is false when the
// queue is empty. Never blocks.
func (hw *HardwareCanBus) ReadFrame() (can.Frame, bool) {
	hw.mu.Lock()
	defer hw.mu.Unlock()
	return hw.queue.Pop()
}

// WriteFrame sends a frame to the hardware bus. FD framing requested
// on a bus without FD capability is clamped to classic framing.
func (hw *HardwareCanBus) WriteFrame(id uint32, data []byte, useFD bool) error {
	if useFD && !hw.FDCapable() {
		log.Warnf("[HARDWARE] bus %v is not FD capable, sending frame x%x with classic framing", hw.Name(), id)
		useFD = false
	}
	return hw.driver.Send(can.NewFrame(id, data, useFD))
}

func (hw *HardwareCanBus) SetFDCapable(capable bool) {
	hw.mu.Lock()
	defer hw.mu.Unlock()
	hw.fdCapable = capable
}

func (hw *HardwareCanBus) FDCapable() bool {
	hw.mu.Lock()
	defer hw.mu.Unlock()
	return hw.fdCapable
}

// QueueDropped returns the number of received frames lost to queue
// overflow.
func (hw *HardwareCanBus) QueueDropped() uint64 {
	hw.mu.Lock()
	defer hw.mu.Unlock()
	return hw.queue.Dropped()
}
