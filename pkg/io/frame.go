package io

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/samsamfire/canbridge/pkg/app"
	log "github.com/sirupsen/logrus"
)

func init() {
	app.RegisterComponentType("Frame", newInputCanFrameComponent)
}

// Section names are hex identifiers, e.g. [Frame.0x100] or [Frame.100]
var matchIdRegExp = regexp.MustCompile(`^(0[xX])?[0-9A-Fa-f]+$`)

// InputCanFrame is the configured definition of one known frame :
// its identifier and whether it uses FD framing on the wire.
type InputCanFrame struct {
	app.BaseComponent
	identifier uint32
	isCanFd    bool
}

func NewInputCanFrame(parent app.Component, name string) *InputCanFrame {
	frame := &InputCanFrame{BaseComponent: app.NewBaseComponent(parent, name)}
	if parent != nil {
		parent.AddChild(frame)
	}
	return frame
}

func newInputCanFrameComponent(parent app.Component, name string) app.Component {
	return NewInputCanFrame(parent, name)
}

func (frame *InputCanFrame) Load(opts *app.Options) error {
	frame.identifier = parseIdentifier(frame.Name())
	if opts.Has("id") {
		frame.identifier = opts.GetUint32("id", frame.identifier)
	}
	frame.isCanFd = opts.GetBool("can_fd", false)
	return nil
}

func (frame *InputCanFrame) Identifier() uint32 { return frame.identifier }
func (frame *InputCanFrame) IsCANFD() bool      { return frame.isCanFd }

// Identifiers are hexadecimal, with or without the 0x prefix
func parseIdentifier(name string) uint32 {
	if !matchIdRegExp.MatchString(name) {
		log.Warnf("[IO] frame section name %v is not a valid identifier", name)
		return 0
	}
	trimmed := strings.TrimPrefix(strings.TrimPrefix(name, "0x"), "0X")
	id, err := strconv.ParseUint(trimmed, 16, 32)
	if err != nil {
		log.Warnf("[IO] cannot parse frame identifier %v", name)
		return 0
	}
	return uint32(id)
}
