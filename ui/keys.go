package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"

	"github.com/ekagansahin/Dentist-Tetris/controller"
)

// Keyboard stand-ins for the physical controller:
//
//	Left/Right  tilt the board
//	Space       button A (pause / select)
//	Up          button B (rotate / back)
//	PageUp/Down rotary encoder detents
//	Down        hold for a fast drop, release for slow
const (
	mockTilt    = 20.0
	mockPotFast = 5000
	mockPotSlow = 45000
)

func attachKeys(window fyne.Window, mock *controller.MockBridge) {
	deskCanvas, ok := window.Canvas().(desktop.Canvas)
	if !ok {
		return
	}

	deskCanvas.SetOnKeyDown(func(ev *fyne.KeyEvent) {
		switch ev.Name {
		case fyne.KeyLeft:
			mock.SetTilt(-mockTilt)
		case fyne.KeyRight:
			mock.SetTilt(mockTilt)
		case fyne.KeyUp:
			mock.SetButtonB(true)
		case fyne.KeySpace:
			mock.SetButtonA(true)
		case fyne.KeyPageUp:
			mock.Turn(1)
		case fyne.KeyPageDown:
			mock.Turn(-1)
		case fyne.KeyDown:
			mock.SetPot(mockPotFast)
		}
	})

	deskCanvas.SetOnKeyUp(func(ev *fyne.KeyEvent) {
		switch ev.Name {
		case fyne.KeyLeft, fyne.KeyRight:
			mock.SetTilt(0)
		case fyne.KeyUp:
			mock.SetButtonB(false)
		case fyne.KeySpace:
			mock.SetButtonA(false)
		case fyne.KeyDown:
			mock.SetPot(mockPotSlow)
		}
	})
}
