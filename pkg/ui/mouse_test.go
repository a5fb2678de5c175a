package ui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func TestTranslateMouseActions(t *testing.T) {
	tests := []struct {
		name string
		msg  tea.MouseMsg
		want pointerAction
	}{
		{"left press", tea.MouseMsg{X: 5, Y: 3, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}, pointerPress},
		{"right press ignored", tea.MouseMsg{X: 5, Y: 3, Action: tea.MouseActionPress, Button: tea.MouseButtonRight}, pointerNone},
		{"release", tea.MouseMsg{X: 5, Y: 3, Action: tea.MouseActionRelease, Button: tea.MouseButtonLeft}, pointerRelease},
		{"motion", tea.MouseMsg{X: 5, Y: 3, Action: tea.MouseActionMotion}, pointerMove},
		{"wheel up", tea.MouseMsg{X: 5, Y: 3, Button: tea.MouseButtonWheelUp}, pointerWheelUp},
		{"wheel down", tea.MouseMsg{X: 5, Y: 3, Button: tea.MouseButtonWheelDown}, pointerWheelDown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, action := translateMouse(tt.msg, 0, 1, 80, 24)
			if action != tt.want {
				t.Errorf("action = %v, want %v", action, tt.want)
			}
		})
	}
}

func TestTranslateMouseCoordinates(t *testing.T) {
	msg := tea.MouseMsg{X: 10, Y: 6, Action: tea.MouseActionMotion}
	ev, action := translateMouse(msg, 0, 1, 80, 24)
	if action != pointerMove {
		t.Fatalf("action = %v", action)
	}
	// cell (10,5) relative to the canvas origin, sampled at cell center
	if ev.X != 10.5 {
		t.Errorf("X = %v, want 10.5", ev.X)
	}
	if ev.Y != 5.5*CellAspect {
		t.Errorf("Y = %v, want %v", ev.Y, 5.5*CellAspect)
	}
}

func TestTranslateMouseModifiers(t *testing.T) {
	msg := tea.MouseMsg{X: 1, Y: 2, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft, Shift: true, Ctrl: true}
	ev, _ := translateMouse(msg, 0, 1, 80, 24)
	if !ev.Shift || !ev.Ctrl || ev.Alt {
		t.Errorf("modifiers = shift=%v ctrl=%v alt=%v", ev.Shift, ev.Ctrl, ev.Alt)
	}
	if !ev.Modified() {
		t.Error("Modified() should be true")
	}
}

func TestTranslateMouseOutsideCanvas(t *testing.T) {
	tests := []struct {
		name string
		x, y int
	}{
		{"header row", 10, 0},
		{"below canvas", 10, 30},
		{"right of canvas", 85, 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := tea.MouseMsg{X: tt.x, Y: tt.y, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}
			if _, action := translateMouse(msg, 0, 1, 80, 24); action != pointerNone {
				t.Errorf("action = %v, want pointerNone", action)
			}
		})
	}
}
