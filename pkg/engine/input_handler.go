package engine

import (
	"github.com/go-gl/glfw/v3.3/glfw"
)

// Binding ties a key press to an action
type Binding struct {
	Key    glfw.Key
	Name   string
	Action func()
}

// InputHandler tracks key edges for the bound keys
type InputHandler struct {
	window       *glfw.Window
	bindings     []Binding
	currentKeys  map[glfw.Key]bool
	previousKeys map[glfw.Key]bool
}

// NewInputHandler creates an input handler without bindings
func NewInputHandler(window *glfw.Window) *InputHandler {
	return &InputHandler{
		window:       window,
		currentKeys:  make(map[glfw.Key]bool),
		previousKeys: make(map[glfw.Key]bool),
	}
}

// Bind registers an action fired once per key press
func (ih *InputHandler) Bind(key glfw.Key, name string, action func()) {
	ih.bindings = append(ih.bindings, Binding{Key: key, Name: name, Action: action})
}

// Bindings returns the registered bindings in registration order
func (ih *InputHandler) Bindings() []Binding {
	return ih.bindings
}

// Update samples the bound keys
func (ih *InputHandler) Update() {
	ih.previousKeys, ih.currentKeys = ih.currentKeys, ih.previousKeys
	for _, b := range ih.bindings {
		ih.currentKeys[b.Key] = ih.window.GetKey(b.Key) == glfw.Press
	}
}

// IsKeyDown checks whether a bound key is held
func (ih *InputHandler) IsKeyDown(key glfw.Key) bool {
	return ih.currentKeys[key]
}

// IsKeyPressed checks whether a bound key went down this frame
func (ih *InputHandler) IsKeyPressed(key glfw.Key) bool {
	return ih.currentKeys[key] && !ih.previousKeys[key]
}

// Dispatch fires the actions of keys pressed this frame and returns their
// names
func (ih *InputHandler) Dispatch() []string {
	var fired []string
	for _, b := range ih.bindings {
		if ih.IsKeyPressed(b.Key) {
			b.Action()
			fired = append(fired, b.Name)
		}
	}
	return fired
}
