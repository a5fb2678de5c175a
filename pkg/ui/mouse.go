package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vanderheijden86/graphcanvas/pkg/gesture"
)

// pointerAction classifies a mouse message for the update loop.
type pointerAction int

const (
	pointerNone pointerAction = iota
	pointerPress
	pointerRelease
	pointerMove
	pointerWheelUp
	pointerWheelDown
)

// translateMouse converts a bubbletea mouse message into a pointer event
// in canvas screen coordinates. originX/originY is the canvas's top-left
// cell inside the terminal; events left of the canvas (the side panel
// or header rows) report pointerNone.
func translateMouse(msg tea.MouseMsg, originX, originY, canvasW, canvasH int) (gesture.PointerEvent, pointerAction) {
	cellX := msg.X - originX
	cellY := msg.Y - originY
	if cellX < 0 || cellY < 0 || cellX >= canvasW || cellY >= canvasH {
		return gesture.PointerEvent{}, pointerNone
	}

	sx, sy := CellToScreen(cellX, cellY)
	ev := gesture.PointerEvent{
		X:     sx,
		Y:     sy,
		Shift: msg.Shift,
		Ctrl:  msg.Ctrl,
		Alt:   msg.Alt,
	}

	switch msg.Button {
	case tea.MouseButtonWheelUp:
		return ev, pointerWheelUp
	case tea.MouseButtonWheelDown:
		return ev, pointerWheelDown
	}

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button == tea.MouseButtonLeft {
			return ev, pointerPress
		}
	case tea.MouseActionRelease:
		return ev, pointerRelease
	case tea.MouseActionMotion:
		return ev, pointerMove
	}
	return ev, pointerNone
}
