package app

import (
	"strings"
)

// A Component is a node of the equipment tree. Components are created
// during configuration loading, then go through Load / Init once, and
// are updated cyclically afterwards.
type Component interface {
	Name() string
	Parent() Component
	Children() []Component
	AddChild(child Component)
	Load(opts *Options) error
	Init() error
	Update()
}

// BaseComponent implements the tree bookkeeping part of [Component]
// with no-op lifecycle methods. Intended for embedding.
type BaseComponent struct {
	name     string
	parent   Component
	children []Component
}

func NewBaseComponent(parent Component, name string) BaseComponent {
	return BaseComponent{name: name, parent: parent}
}

func (c *BaseComponent) Name() string          { return c.name }
func (c *BaseComponent) Parent() Component     { return c.parent }
func (c *BaseComponent) Children() []Component { return c.children }

func (c *BaseComponent) AddChild(child Component) {
	c.children = append(c.children, child)
}

func (c *BaseComponent) Load(opts *Options) error { return nil }
func (c *BaseComponent) Init() error              { return nil }
func (c *BaseComponent) Update()                  {}

// A Group is a plain container component, e.g. the CanCommunication
// or ComSpec sections of the configuration tree.
type Group struct {
	BaseComponent
}

func NewGroup(parent Component, name string) *Group {
	g := &Group{BaseComponent: NewBaseComponent(parent, name)}
	if parent != nil {
		parent.AddChild(g)
	}
	return g
}

// FullName returns the absolute path of a component, e.g. /app/ComSpec/Main
func FullName(c Component) string {
	if c == nil {
		return ""
	}
	if c.Parent() == nil {
		return "/" + c.Name()
	}
	return FullName(c.Parent()) + "/" + c.Name()
}

// FindChild returns the direct child with the given name, or nil
func FindChild(c Component, name string) Component {
	for _, child := range c.Children() {
		if child.Name() == name {
			return child
		}
	}
	return nil
}

// FindFullName resolves an absolute path starting at root.
// Returns nil if any segment does not resolve.
func FindFullName(root Component, path string) Component {
	segments := strings.Split(strings.Trim(path, "/"), "/")
	if len(segments) == 0 || segments[0] != root.Name() {
		return nil
	}
	current := root
	for _, segment := range segments[1:] {
		current = FindChild(current, segment)
		if current == nil {
			return nil
		}
	}
	return current
}

// FindAs resolves an absolute path and asserts the component type.
// This replaces downcast style lookups with a typed capability check.
func FindAs[T Component](root Component, path string) (T, bool) {
	found, ok := FindFullName(root, path).(T)
	return found, ok
}

// ChildrenRecursiveAs returns all components of a given type in the
// tree below root, depth first, in discovery order.
func ChildrenRecursiveAs[T Component](root Component) []T {
	var out []T
	for _, child := range root.Children() {
		if typed, ok := child.(T); ok {
			out = append(out, typed)
		}
		out = append(out, ChildrenRecursiveAs[T](child)...)
	}
	return out
}

// InitTree runs Init on every component, children before parents,
// stopping at the first error.
func InitTree(root Component) error {
	for _, child := range root.Children() {
		if err := InitTree(child); err != nil {
			return err
		}
	}
	return root.Init()
}

// UpdateTree runs one update cycle over the whole tree, depth first.
func UpdateTree(root Component) {
	for _, child := range root.Children() {
		UpdateTree(child)
	}
	root.Update()
}
