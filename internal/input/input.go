// Package input maps viewer keys and mouse buttons to logical actions with per-frame edge detection.
package input

import (
	"sync"

	"github.com/go-gl/glfw/v3.3/glfw"
)

// Action is a viewer command independent of the key bound to it.
type Action int

const (
	ActionMoveForward Action = iota
	ActionMoveBackward
	ActionMoveLeft
	ActionMoveRight
	ActionFlyUp
	ActionFlyDown
	ActionFast
	ActionPause
	ActionToggleFollow
	ActionCycleWind
	ActionForceCascade
	ActionForceRipple
	ActionForceDust
	ActionToggleMute
	ActionToggleProfiling
	ActionSaveMap
	ActionLook // hold to steer the free camera with the mouse
	ActionCount
)

var actionNames = [ActionCount]string{
	"forward", "backward", "left", "right", "up", "down", "fast", "pause", "follow",
	"cycle_wind", "cascade", "ripple", "dust", "mute", "profiling", "save_map", "look",
}

func (a Action) String() string {
	if a < 0 || a >= ActionCount {
		return "unknown"
	}
	return actionNames[a]
}

type actionState struct {
	held, pressed, released bool
}

// defaultKeys is the viewer key map. Several keys may share an action.
var defaultKeys = []struct {
	key    glfw.Key
	action Action
}{
	{glfw.KeyW, ActionMoveForward}, {glfw.KeyUp, ActionMoveForward},
	{glfw.KeyS, ActionMoveBackward}, {glfw.KeyDown, ActionMoveBackward},
	{glfw.KeyA, ActionMoveLeft}, {glfw.KeyLeft, ActionMoveLeft},
	{glfw.KeyD, ActionMoveRight}, {glfw.KeyRight, ActionMoveRight},
	{glfw.KeySpace, ActionFlyUp},
	{glfw.KeyLeftShift, ActionFlyDown},
	{glfw.KeyLeftControl, ActionFast},
	{glfw.KeyEscape, ActionPause}, {glfw.KeyP, ActionPause},
	{glfw.KeyC, ActionToggleFollow},
	{glfw.KeyT, ActionCycleWind},
	{glfw.Key1, ActionForceCascade},
	{glfw.Key2, ActionForceRipple},
	{glfw.Key3, ActionForceDust},
	{glfw.KeyM, ActionToggleMute},
	{glfw.KeyV, ActionToggleProfiling},
	{glfw.KeyF2, ActionSaveMap},
}

// InputManager turns glfw events into held actions plus the edges seen since the last
// PostUpdate. Callbacks and the frame loop may run on different goroutines.
type InputManager struct {
	mu      sync.RWMutex
	keys    map[glfw.Key][]Action
	buttons map[glfw.MouseButton][]Action
	state   [ActionCount]actionState
}

func NewInputManager() *InputManager {
	im := &InputManager{
		keys:    make(map[glfw.Key][]Action),
		buttons: map[glfw.MouseButton][]Action{glfw.MouseButtonRight: {ActionLook}},
	}
	for _, b := range defaultKeys {
		im.BindKey(b.key, b.action)
	}
	return im
}

func valid(a Action) bool { return a >= 0 && a < ActionCount }

// BindKey adds action to the key's bindings.
func (im *InputManager) BindKey(key glfw.Key, action Action) {
	if !valid(action) {
		return
	}
	im.mu.Lock()
	im.keys[key] = append(im.keys[key], action)
	im.mu.Unlock()
}

// UnbindKey drops every binding of the key.
func (im *InputManager) UnbindKey(key glfw.Key) {
	im.mu.Lock()
	delete(im.keys, key)
	im.mu.Unlock()
}

func (im *InputManager) BindMouseButton(button glfw.MouseButton, action Action) {
	if !valid(action) {
		return
	}
	im.mu.Lock()
	im.buttons[button] = append(im.buttons[button], action)
	im.mu.Unlock()
}

// HandleKeyEvent records a key event. Key repeats keep the action held without a new edge.
func (im *InputManager) HandleKeyEvent(key glfw.Key, action glfw.Action) {
	im.mu.Lock()
	defer im.mu.Unlock()
	im.set(im.keys[key], action != glfw.Release)
}

func (im *InputManager) HandleMouseButtonEvent(button glfw.MouseButton, action glfw.Action) {
	im.mu.Lock()
	defer im.mu.Unlock()
	im.set(im.buttons[button], action == glfw.Press)
}

func (im *InputManager) set(actions []Action, down bool) {
	for _, a := range actions {
		st := &im.state[a]
		switch {
		case down && !st.held:
			st.pressed = true
		case !down && st.held:
			st.released = true
		}
		st.held = down
	}
}

// SetCallbacks routes the window's key and mouse button events into the manager.
func (im *InputManager) SetCallbacks(window *glfw.Window) {
	window.SetKeyCallback(func(_ *glfw.Window, key glfw.Key, _ int, action glfw.Action, _ glfw.ModifierKey) {
		im.HandleKeyEvent(key, action)
	})
	window.SetMouseButtonCallback(func(_ *glfw.Window, button glfw.MouseButton, action glfw.Action, _ glfw.ModifierKey) {
		im.HandleMouseButtonEvent(button, action)
	})
}

// PostUpdate forgets this frame's edges. The viewer calls it once per frame.
func (im *InputManager) PostUpdate() {
	im.mu.Lock()
	defer im.mu.Unlock()
	for i := range im.state {
		im.state[i].pressed = false
		im.state[i].released = false
	}
}

func (im *InputManager) read(a Action) actionState {
	if !valid(a) {
		return actionState{}
	}
	im.mu.RLock()
	defer im.mu.RUnlock()
	return im.state[a]
}

// IsActive reports whether the action is held.
func (im *InputManager) IsActive(a Action) bool { return im.read(a).held }

// JustPressed reports a press since the last PostUpdate.
func (im *InputManager) JustPressed(a Action) bool { return im.read(a).pressed }

// JustReleased reports a release since the last PostUpdate.
func (im *InputManager) JustReleased(a Action) bool { return im.read(a).released }

// Axis returns the movement input as (strafe, forward), each in [-1, 1].
func (im *InputManager) Axis() (strafe, forward float64) {
	axis := func(pos, neg Action) float64 {
		var v float64
		if im.IsActive(pos) {
			v++
		}
		if im.IsActive(neg) {
			v--
		}
		return v
	}
	return axis(ActionMoveRight, ActionMoveLeft), axis(ActionMoveForward, ActionMoveBackward)
}
