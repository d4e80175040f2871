package bridge

import (
	"github.com/samsamfire/canbridge/pkg/app"
	"github.com/samsamfire/canbridge/pkg/io"
	log "github.com/sirupsen/logrus"
)

// FormatTable maps frame identifiers to their configured wire framing.
// Built once during initialization, read only afterwards. An absent
// entry is a valid state, the caller decides the fallback.
type FormatTable struct {
	formats map[uint32]bool
}

// NewFormatTable collects every [io.InputCanFrame] definition found
// recursively under root.
func NewFormatTable(root app.Component) *FormatTable {
	table := &FormatTable{formats: make(map[uint32]bool)}
	definitions := app.ChildrenRecursiveAs[*io.InputCanFrame](root)
	if len(definitions) == 0 {
		log.Warn("[BRIDGE] no frame definitions found in the configuration")
		return table
	}
	for _, definition := range definitions {
		table.formats[definition.Identifier()] = definition.IsCANFD()
	}
	return table
}

// Lookup returns the framing flag for an identifier, ok is false for
// unknown identifiers.
func (t *FormatTable) Lookup(id uint32) (isFD bool, ok bool) {
	isFD, ok = t.formats[id]
	return isFD, ok
}

func (t *FormatTable) Len() int {
	return len(t.formats)
}
