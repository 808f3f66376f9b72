package scene

import (
	"sync"

	"github.com/reikx/ascia/types"
)

// The Camera interface is implemented by everything that can render a
// flattened scene into a character grid.
type Camera interface {
	// A short human readable description.
	Name() string

	// Render the tree rooted at root as seen from self, the flattened node
	// that carries this camera.
	Render(self *Node[Global], root *Node[Global], width, height int) (types.Frame, error)
}

type AttributeKind uint8

const (
	NoAttribute AttributeKind = iota
	CameraAttribute
	LightAttribute
)

func (k AttributeKind) String() string {
	switch k {
	case CameraAttribute:
		return "camera"
	case LightAttribute:
		return "light"
	}
	return "none"
}

// Attribute is the payload slot of a node. A single attribute may be attached
// to several nodes and survives Flatten by reference, so changes made through
// any holder are visible to all of them.
type Attribute struct {
	mu sync.RWMutex

	kind   AttributeKind
	camera Camera
	light  PointLight
}

// Create an attribute holding a camera.
func NewCameraAttribute(c Camera) *Attribute {
	a := &Attribute{}
	a.SetCamera(c)
	return a
}

// Create an attribute holding a light.
func NewLightAttribute(l PointLight) *Attribute {
	a := &Attribute{}
	a.SetLight(l)
	return a
}

// Get the kind of the stored payload.
func (a *Attribute) Kind() AttributeKind {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.kind
}

// Get the stored camera.
func (a *Attribute) Camera() (Camera, bool) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.camera, a.kind == CameraAttribute
}

// Get the stored light.
func (a *Attribute) Light() (PointLight, bool) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.light, a.kind == LightAttribute
}

// Replace the payload with a camera.
func (a *Attribute) SetCamera(c Camera) {
	a.mu.Lock()
	a.kind, a.camera, a.light = CameraAttribute, c, PointLight{}
	a.mu.Unlock()
}

// Replace the payload with a light.
func (a *Attribute) SetLight(l PointLight) {
	a.mu.Lock()
	a.kind, a.camera, a.light = LightAttribute, nil, l
	a.mu.Unlock()
}

// Remove the payload.
func (a *Attribute) Clear() {
	a.mu.Lock()
	a.kind, a.camera, a.light = NoAttribute, nil, PointLight{}
	a.mu.Unlock()
}
