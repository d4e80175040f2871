package socketcan

import (
	"fmt"

	sockcan "github.com/brutella/can"
	can "github.com/samsamfire/canbridge/pkg/can"
)

// Basic wrapper for socketcan it uses the implementation
// that can be found here : https://github.com/brutella/can
// Classic CAN only, FD frames are rejected.

func init() {
	can.RegisterInterface("socketcan", NewSocketCanBus)
}

type SocketcanBus struct {
	bus        *sockcan.Bus
	rxCallback can.FrameListener
}

func NewSocketCanBus(name string) (can.Bus, error) {
	bus, err := sockcan.NewBusForInterfaceWithName(name)
	if err != nil {
		return nil, err
	}
	return &SocketcanBus{bus: bus}, nil
}

// "Connect" implementation of Bus interface
func (socketcan *SocketcanBus) Connect(...any) error {
	go func() {
		err := socketcan.bus.ConnectAndPublish()
		if err != nil {
			return
		}
	}()
	return nil
}

// "Disconnect" implementation of Bus interface
func (socketcan *SocketcanBus) Disconnect() error {
	return socketcan.bus.Disconnect()
}

// "Send" implementation of Bus interface
func (socketcan *SocketcanBus) Send(frame can.Frame) error {
	if frame.IsFD || len(frame.Data) > can.MaxClassicDataLength {
		return fmt.Errorf("socketcan driver cannot send FD frame with id x%x", frame.ID)
	}
	var data [8]byte
	copy(data[:], frame.Data)
	return socketcan.bus.Publish(
		sockcan.Frame{
			ID:     frame.ID,
			Length: uint8(len(frame.Data)),
			Flags:  0,
			Res0:   0,
			Res1:   0,
			Data:   data,
		})
}

// "Subscribe" implementation of Bus interface
func (socketcan *SocketcanBus) Subscribe(rxCallback can.FrameListener) error {
	socketcan.rxCallback = rxCallback
	// brutella/can defines a "Handle" interface for handling received CAN frames
	socketcan.bus.Subscribe(socketcan)
	return nil
}

// brutella/can specific "Handle" implementation
func (socketcan *SocketcanBus) Handle(frame sockcan.Frame) {
	if socketcan.rxCallback == nil {
		return
	}
	length := frame.Length
	if length > uint8(len(frame.Data)) {
		length = uint8(len(frame.Data))
	}
	// Convert brutella frame to canbridge frame
	socketcan.rxCallback.Handle(can.NewFrame(frame.ID, frame.Data[:length], false))
}
