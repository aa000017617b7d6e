package input

import (
	"testing"

	"github.com/go-gl/glfw/v3.3/glfw"
)

func TestEdgeDetection(t *testing.T) {
	im := NewInputManager()

	im.HandleKeyEvent(glfw.Key1, glfw.Press)
	if !im.JustPressed(ActionForceCascade) || !im.IsActive(ActionForceCascade) {
		t.Fatalf("Press not registered")
	}
	im.PostUpdate()
	if im.JustPressed(ActionForceCascade) {
		t.Errorf("JustPressed survived PostUpdate")
	}

	im.HandleKeyEvent(glfw.Key1, glfw.Repeat)
	if im.JustPressed(ActionForceCascade) {
		t.Errorf("A key repeat counted as a new press")
	}
	if !im.IsActive(ActionForceCascade) {
		t.Errorf("Held key not active")
	}

	im.HandleKeyEvent(glfw.Key1, glfw.Release)
	if !im.JustReleased(ActionForceCascade) || im.IsActive(ActionForceCascade) {
		t.Errorf("Release not registered")
	}
}

func TestSharedBindings(t *testing.T) {
	im := NewInputManager()
	im.HandleKeyEvent(glfw.KeyUp, glfw.Press)
	im.HandleKeyEvent(glfw.KeyA, glfw.Press)
	if strafe, forward := im.Axis(); strafe != -1 || forward != 1 {
		t.Errorf("Axis = (%v, %v), want (-1, 1)", strafe, forward)
	}

	im.HandleKeyEvent(glfw.KeyD, glfw.Press)
	if strafe, _ := im.Axis(); strafe != 0 {
		t.Errorf("Opposite keys should cancel, got %v", strafe)
	}
}

func TestMouseAndUnbind(t *testing.T) {
	im := NewInputManager()
	im.HandleMouseButtonEvent(glfw.MouseButtonRight, glfw.Press)
	if !im.IsActive(ActionLook) {
		t.Errorf("Right button should hold look")
	}
	im.HandleMouseButtonEvent(glfw.MouseButtonLeft, glfw.Press)

	im.UnbindKey(glfw.KeyT)
	im.HandleKeyEvent(glfw.KeyT, glfw.Press)
	if im.JustPressed(ActionCycleWind) {
		t.Errorf("Unbound key still fires")
	}

	im.BindKey(glfw.KeyT, ActionCount)
	if im.IsActive(ActionCount) || im.JustPressed(-1) {
		t.Errorf("Out of range actions must read false")
	}
}

func TestActionNames(t *testing.T) {
	if ActionSaveMap.String() != "save_map" || ActionLook.String() != "look" {
		t.Errorf("Names out of step with the action list")
	}
	if Action(99).String() != "unknown" {
		t.Errorf("Out of range action named %q", Action(99).String())
	}
}
