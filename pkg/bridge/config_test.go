package bridge

import (
	"testing"

	"github.com/samsamfire/canbridge/pkg/app"
	can "github.com/samsamfire/canbridge/pkg/can"
	"github.com/samsamfire/canbridge/pkg/io"
	"github.com/stretchr/testify/assert"
)

// Drivers created through the registry from configured sections,
// keyed by channel so tests can reach them.
var stubDrivers = map[string]*stubDriver{}

func init() {
	can.RegisterInterface("stub", func(channel string) (can.Bus, error) {
		driver := &stubDriver{}
		stubDrivers[channel] = driver
		return driver, nil
	})
}

// The whole configured path : ini to component tree to an operational
// bridge forwarding in both directions.
func TestConfiguredBridgeEndToEnd(t *testing.T) {
	config := []byte(`
[App]
name = Sim
powered = true

[CanCommunication]

[CanBridge.can0]
index = 0
interface = stub
channel = bench0
queue_size = 16

[ComSpec.Main]
index = 0
fd_baudrate = 2000000

[Frame.0x200]
can_fd = false
`)
	application, err := app.LoadConfigFromBytes(config)
	assert.Nil(t, err)
	assert.True(t, application.IsPowered())

	bridges := app.ChildrenRecursiveAs[*Bridge](application)
	assert.Len(t, bridges, 1)
	b := bridges[0]
	hardware := app.ChildrenRecursiveAs[*HardwareCanBus](b)
	assert.Len(t, hardware, 1)

	assert.Nil(t, app.InitTree(application))

	// Bound by index fallback to the ComSpec bus, FD capable
	main, ok := app.FindAs[*io.CanBus](application, "/Sim/ComSpec/Main")
	assert.True(t, ok)
	assert.Same(t, main, b.canBus)
	assert.False(t, main.OutputSchedulingEnabled())
	assert.True(t, b.hardware.FDCapable())

	driver := stubDrivers["bench0"]
	assert.NotNil(t, driver)

	// Virtual dispatch reaches the configured driver with the
	// configured framing
	main.Dispatch(can.NewFrame(0x200, []byte{9, 9}, false))
	sent := driver.sentFrames()
	assert.Len(t, sent, 1)
	assert.EqualValues(t, 0x200, sent[0].ID)
	assert.False(t, sent[0].IsFD)

	// Hardware frames reach the simulation through the pump
	receiver := &frameCollector{}
	main.AddReceiver(receiver)
	driver.listener.Handle(can.NewFrame(0x100, []byte{1, 2, 3}, false))
	b.Update()
	collected := receiver.collected()
	assert.Len(t, collected, 1)
	assert.EqualValues(t, 0x100, collected[0].ID)

	// queue_size from the section bounds the receive queue
	for i := 0; i < 17; i++ {
		driver.listener.Handle(can.NewFrame(0x100, []byte{byte(i)}, false))
	}
	assert.EqualValues(t, 1, b.hardware.QueueDropped())
}
