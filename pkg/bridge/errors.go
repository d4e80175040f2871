package bridge

import "errors"

// Fatal initialization errors, the bridge never becomes operational
// when one of these is returned.
var (
	ErrMissingCanCommunication = errors.New("no CanCommunication section found in configuration")
	ErrNoHardwareBus           = errors.New("no hardware CAN bus children found")
	ErrNoCanBuses              = errors.New("no CAN buses found in the configuration")
	ErrBusNotResolved          = errors.New("CAN bus configuration missing or incorrect")
)
