package can

import (
	"fmt"
)

const MaxDataLength = 64       // CAN FD payload limit
const MaxClassicDataLength = 8 // Classic CAN payload limit

// A CAN frame. Data length is variable : up to 8 bytes for classic
// frames, up to 64 bytes when IsFD is set. Payloads are opaque,
// nothing in this module interprets them.
type Frame struct {
	ID   uint32
	Data []byte
	IsFD bool
}

// Create a new frame, the payload is copied
func NewFrame(id uint32, data []byte, isFD bool) Frame {
	payload := make([]byte, len(data))
	copy(payload, data)
	return Frame{ID: id, Data: payload, IsFD: isFD}
}

// Interface for handling a received CAN frame
type FrameListener interface {
	Handle(frame Frame)
}

// A CAN Bus interface
type Bus interface {
	Connect(...any) error                   // Connect to the CAN bus
	Disconnect() error                      // Disconnect from CAN bus
	Send(frame Frame) error                 // Send a frame on the bus
	Subscribe(callback FrameListener) error // Subscribe to all received CAN frames
}

type NewInterfaceFunc func(channel string) (Bus, error)

var interfaceRegistry = make(map[string]NewInterfaceFunc)

// Register a new CAN bus interface type
// This should be called inside an init() function of plugin
func RegisterInterface(interfaceType string, newInterface NewInterfaceFunc) {
	interfaceRegistry[interfaceType] = newInterface
}

// Create a new CAN bus with given interface
// Currently supported : socketcan, virtualcan
func NewBus(canInterface string, channel string) (Bus, error) {
	createInterface, ok := interfaceRegistry[canInterface]
	if !ok {
		return nil, fmt.Errorf("unsupported interface : %v", canInterface)
	}
	return createInterface(channel)
}
