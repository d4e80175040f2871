package app

import (
	"sync"
)

// App is the root of the equipment component tree. It owns the power
// signal polled by the rest of the system. The power signal is driven
// by the host (or the CLI), components only ever read it.
type App struct {
	BaseComponent
	mu      sync.Mutex
	powered bool
}

func NewApp(name string) *App {
	return &App{BaseComponent: NewBaseComponent(nil, name)}
}

func (a *App) IsPowered() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.powered
}

func (a *App) SetPowered(powered bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.powered = powered
}

// FindFullName resolves an absolute component path, e.g. /app/ComSpec/Main
func (a *App) FindFullName(path string) Component {
	return FindFullName(a, path)
}
