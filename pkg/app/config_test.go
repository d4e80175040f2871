package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type configuredWidget struct {
	BaseComponent
	speed uint32
}

func (w *configuredWidget) Load(opts *Options) error {
	w.speed = opts.GetUint32("speed", 100)
	return nil
}

func init() {
	RegisterComponentType("Widget", func(parent Component, name string) Component {
		w := &configuredWidget{BaseComponent: NewBaseComponent(parent, name)}
		if parent != nil {
			parent.AddChild(w)
		}
		return w
	})
}

func TestLoadConfigBuildsTree(t *testing.T) {
	config := []byte(`
[App]
name = Sim
powered = true

[Widget.first]
speed = 250

[Widget.second]

[CanCommunication]
`)
	application, err := LoadConfigFromBytes(config)
	assert.Nil(t, err)
	assert.Equal(t, "Sim", application.Name())
	assert.True(t, application.IsPowered())

	first, ok := FindAs[*configuredWidget](application, "/Sim/Widget/first")
	assert.True(t, ok)
	assert.EqualValues(t, 250, first.speed)
	second, ok := FindAs[*configuredWidget](application, "/Sim/Widget/second")
	assert.True(t, ok)
	assert.EqualValues(t, 100, second.speed)

	// Bare section creates an empty container
	container := FindChild(application, "CanCommunication")
	assert.NotNil(t, container)
	assert.Empty(t, container.Children())
}

func TestLoadConfigSkipsUnknownSections(t *testing.T) {
	config := []byte(`
[App]
name = Sim

[Nonsense.x]
key = value
`)
	application, err := LoadConfigFromBytes(config)
	assert.Nil(t, err)
	assert.Nil(t, FindChild(application, "Nonsense"))
}
