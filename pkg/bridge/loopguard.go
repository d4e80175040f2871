package bridge

import (
	"sync"
)

// Direction ownership of a frame identifier. Whichever side of the
// bridge observes an identifier first owns it for the lifetime of the
// bridge, frames with that identifier coming back from the other side
// are echoes and must not be forwarded again.
type direction uint8

const (
	dirUnassigned direction = iota
	dirHardware
	dirVirtual
)

// LoopGuard prevents forwarded frames from bouncing back onto the bus
// they came from. Ownership is sticky : it is never reassigned and
// never reset at runtime, power cycles included.
type LoopGuard struct {
	mu     sync.Mutex
	owners map[uint32]direction
}

func NewLoopGuard() *LoopGuard {
	return &LoopGuard{owners: make(map[uint32]direction)}
}

// AdmitFromHardware reports whether a frame read from the hardware bus
// should be forwarded to the virtual bus. On admission the identifier
// is owned by the hardware side.
func (g *LoopGuard) AdmitFromHardware(id uint32) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.owners[id] == dirVirtual {
		return false
	}
	g.owners[id] = dirHardware
	return true
}

// AdmitFromVirtual is the mirror of [LoopGuard.AdmitFromHardware]
func (g *LoopGuard) AdmitFromVirtual(id uint32) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.owners[id] == dirHardware {
		return false
	}
	g.owners[id] = dirVirtual
	return true
}

func (g *LoopGuard) owner(id uint32) direction {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.owners[id]
}
