package bridge

import (
	"fmt"
	"sync"

	"github.com/samsamfire/canbridge/pkg/app"
	can "github.com/samsamfire/canbridge/pkg/can"
	"github.com/samsamfire/canbridge/pkg/io"
	"github.com/samsamfire/canbridge/pkg/trace"
	log "github.com/sirupsen/logrus"
)

func init() {
	app.RegisterComponentType("CanBridge", newBridgeComponent)
}

// Counters for both forwarding directions
type Stats struct {
	ForwardedToVirtual  uint64
	ForwardedToHardware uint64
	SuppressedEchoes    uint64
	DroppedUnpowered    uint64
	UnknownIdentifiers  uint64
}

// Bridge connects one hardware CAN interface to one virtual CAN bus
// of the simulation host. Frames are forwarded in both directions,
// gated by the application power signal, with echo suppression through
// a [LoopGuard]. The application and driver references are non owning
// and must outlive the bridge.
type Bridge struct {
	app.BaseComponent
	application *app.App
	index       uint32
	hardware    *HardwareCanBus
	canBus      *io.CanBus
	guard       *LoopGuard
	formats     *FormatTable
	recorder    *trace.Recorder

	mu    sync.Mutex
	stats Stats
}

func NewBridge(parent app.Component, name string) *Bridge {
	b := &Bridge{
		BaseComponent: app.NewBaseComponent(parent, name),
		guard:         NewLoopGuard(),
	}
	if parent != nil {
		parent.AddChild(b)
	}
	return b
}

func newBridgeComponent(parent app.Component, name string) app.Component {
	return NewBridge(parent, name)
}

func (b *Bridge) Load(opts *app.Options) error {
	b.index = opts.GetUint32("index", 0)
	if opts.Has("interface") {
		hw := NewHardwareCanBus(b, b.Name()+"_hw")
		if err := hw.Load(opts); err != nil {
			return err
		}
	}
	return nil
}

// SetRecorder attaches an optional frame trace recorder
func (b *Bridge) SetRecorder(recorder *trace.Recorder) {
	b.recorder = recorder
}

func (b *Bridge) Index() uint32 {
	return b.index
}

// Init binds the bridge to exactly one hardware bus and one virtual
// bus. Any returned error is fatal, the bridge stays inoperative.
func (b *Bridge) Init() error {
	application, err := b.findApp()
	if err != nil {
		return err
	}
	b.application = application

	if app.FindChild(application, "CanCommunication") == nil {
		return fmt.Errorf("%w : invalid config file for %v", ErrMissingCanCommunication, application.Name())
	}

	// Exactly one hardware bus child is expected
	var hardwareBuses []*HardwareCanBus
	for _, child := range b.Children() {
		if hw, ok := child.(*HardwareCanBus); ok {
			hardwareBuses = append(hardwareBuses, hw)
		}
	}
	if len(hardwareBuses) == 0 {
		return ErrNoHardwareBus
	}
	if len(hardwareBuses) > 1 {
		log.Warn("[BRIDGE] multiple hardware CAN bus children are defined, the first one will be used")
	}
	b.hardware = hardwareBuses[0]

	ioBuses := app.ChildrenRecursiveAs[*io.CanBus](application)
	if len(ioBuses) == 0 {
		return ErrNoCanBuses
	}

	// Resolve by naming convention first, then by configured index
	fullName := fmt.Sprintf("/%v/CanCommunication/%v", application.Name(), b.Name())
	canBus, ok := app.FindAs[*io.CanBus](application, fullName)
	if !ok {
		for _, ioBus := range ioBuses {
			if ioBus.Index() != b.index {
				continue
			}
			log.Infof("[BRIDGE] CAN interface name mismatch, using CAN bus index %v", b.index)
			fullName = fmt.Sprintf("/%v/ComSpec/%v", application.Name(), ioBus.Name())
			canBus, ok = app.FindAs[*io.CanBus](application, fullName)
			if !ok {
				return fmt.Errorf("%w : no CAN bus for index %v", ErrBusNotResolved, b.index)
			}
			break
		}
	}
	if canBus == nil {
		return ErrBusNotResolved
	}
	b.canBus = canBus

	// Everything the inbound callback touches must be in place before
	// the callback is registered
	b.formats = NewFormatTable(application)
	b.hardware.SetFDCapable(canBus.FDBaudRate() > 0)

	// The bridge takes over frame delivery for the virtual bus
	canBus.DisableOutputScheduling()
	canBus.RegisterFrameCallback(b.dispatchInbound)
	log.Infof("[BRIDGE] %v bound to %v, %v known frame definitions", b.Name(), fullName, b.formats.Len())
	return nil
}

// Update drains the hardware receive queue into the virtual bus.
// Invoked once per cycle, never blocks waiting for frames.
func (b *Bridge) Update() {
	if b.canBus == nil || !b.application.IsPowered() {
		return
	}
	for {
		frame, ok := b.hardware.ReadFrame()
		if !ok {
			return
		}
		if !b.guard.AdmitFromHardware(frame.ID) {
			// Echo of a frame this bridge wrote to hardware
			b.count(func(s *Stats) { s.SuppressedEchoes++ })
			continue
		}
		b.canBus.SendFrame(frame)
		b.count(func(s *Stats) { s.ForwardedToVirtual++ })
		b.record(trace.DirHardwareToVirtual, frame)
	}
}

// dispatchInbound handles one frame produced by the virtual bus,
// invoked synchronously by its dispatch. When unpowered the bridge
// behaves as if absent from the bus : no write, no guard mutation.
func (b *Bridge) dispatchInbound(frame can.Frame) {
	if !b.application.IsPowered() {
		b.count(func(s *Stats) { s.DroppedUnpowered++ })
		return
	}
	if !b.guard.AdmitFromVirtual(frame.ID) {
		b.count(func(s *Stats) { s.SuppressedEchoes++ })
		return
	}
	isFD, known := b.formats.Lookup(frame.ID)
	if !known {
		// Undefined frames are forwarded anyway, FD framing by default
		isFD = true
		b.count(func(s *Stats) { s.UnknownIdentifiers++ })
		log.Warnf("[BRIDGE] received undefined CAN frame with id x%x", frame.ID)
	}
	if err := b.hardware.WriteFrame(frame.ID, frame.Data, isFD); err != nil {
		log.Warnf("[BRIDGE] failed to send frame x%x to hardware : %v", frame.ID, err)
		return
	}
	if known {
		log.Infof("[BRIDGE] CAN frame (id x%x) successfully sent to hardware", frame.ID)
	}
	b.count(func(s *Stats) { s.ForwardedToHardware++ })
	b.record(trace.DirVirtualToHardware, frame)
}

func (b *Bridge) count(update func(*Stats)) {
	b.mu.Lock()
	update(&b.stats)
	b.mu.Unlock()
}

func (b *Bridge) record(direction string, frame can.Frame) {
	if b.recorder == nil {
		return
	}
	if err := b.recorder.Record(direction, frame); err != nil {
		log.Warnf("[BRIDGE] trace record failed : %v", err)
	}
}

// Stats returns a snapshot of the forwarding counters
func (b *Bridge) Stats() Stats {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.stats
}

func (b *Bridge) findApp() (*app.App, error) {
	var root app.Component = b
	for root.Parent() != nil {
		root = root.Parent()
	}
	application, ok := root.(*app.App)
	if !ok {
		return nil, fmt.Errorf("bridge %v is not attached to an application", b.Name())
	}
	return application, nil
}
