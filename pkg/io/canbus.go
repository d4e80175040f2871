package io

import (
	"sync"

	"github.com/samsamfire/canbridge/pkg/app"
	can "github.com/samsamfire/canbridge/pkg/can"
)

func init() {
	app.RegisterComponentType("ComSpec", newCanBusComponent)
	app.RegisterComponentType("CanCommunication", newCanBusComponent)
}

// CanBus is the virtual CAN network the simulation host runs on.
// Frames produced by the simulation are handed to registered frame
// callbacks (the bridge), frames sent with SendFrame are delivered to
// the simulation side receivers.
type CanBus struct {
	app.BaseComponent
	mu               sync.Mutex
	index            uint32
	fdBaudRate       uint32
	outputScheduling bool
	callbacks        []func(can.Frame)
	receivers        []can.FrameListener
}

func NewCanBus(parent app.Component, name string) *CanBus {
	bus := &CanBus{
		BaseComponent:    app.NewBaseComponent(parent, name),
		outputScheduling: true,
	}
	if parent != nil {
		parent.AddChild(bus)
	}
	return bus
}

func newCanBusComponent(parent app.Component, name string) app.Component {
	return NewCanBus(parent, name)
}

func (bus *CanBus) Load(opts *app.Options) error {
	bus.index = opts.GetUint32("index", 0)
	bus.fdBaudRate = opts.GetUint32("fd_baudrate", 0)
	return nil
}

func (bus *CanBus) Index() uint32 {
	return bus.index
}

// Configured FD baud rate, non zero means the bus runs CAN FD
func (bus *CanBus) FDBaudRate() uint32 {
	return bus.fdBaudRate
}

// RegisterFrameCallback installs a handler invoked synchronously for
// every frame the virtual network produces for this interface.
func (bus *CanBus) RegisterFrameCallback(callback func(can.Frame)) {
	bus.mu.Lock()
	defer bus.mu.Unlock()
	bus.callbacks = append(bus.callbacks, callback)
}

// DisableOutputScheduling stops the bus own timed output, the bridge
// takes over frame delivery.
func (bus *CanBus) DisableOutputScheduling() {
	bus.mu.Lock()
	defer bus.mu.Unlock()
	bus.outputScheduling = false
}

func (bus *CanBus) OutputSchedulingEnabled() bool {
	bus.mu.Lock()
	defer bus.mu.Unlock()
	return bus.outputScheduling
}

// AddReceiver subscribes a simulation side consumer to frames injected
// into the virtual network.
func (bus *CanBus) AddReceiver(receiver can.FrameListener) {
	bus.mu.Lock()
	defer bus.mu.Unlock()
	bus.receivers = append(bus.receivers, receiver)
}

// SendFrame injects a frame into the virtual network, delivering it to
// all simulation side receivers.
func (bus *CanBus) SendFrame(frame can.Frame) {
	bus.mu.Lock()
	receivers := make([]can.FrameListener, len(bus.receivers))
	copy(receivers, bus.receivers)
	bus.mu.Unlock()
	for _, receiver := range receivers {
		receiver.Handle(frame)
	}
}

// Dispatch hands a frame produced by the virtual network to the
// registered frame callbacks. Invoked synchronously by the simulation.
func (bus *CanBus) Dispatch(frame can.Frame) {
	bus.mu.Lock()
	callbacks := make([]func(can.Frame), len(bus.callbacks))
	copy(callbacks, bus.callbacks)
	bus.mu.Unlock()
	for _, callback := range callbacks {
		callback(frame)
	}
}
