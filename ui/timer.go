package ui

import (
	"fmt"
	"time"

	"fyne.io/fyne/v2/canvas"
)

// timer accumulates play time and renders it as mm:ss. It only advances
// while running, so menus and pauses don't count. All methods run on the
// fyne thread via the redraw loop.
type timer struct {
	text    *canvas.Text
	elapsed time.Duration
	last    time.Time
	running bool
}

func newTimer() *timer {
	return &timer{
		text: canvas.NewText("00:00", nil),
	}
}

func (t *timer) setRunning(running bool) {
	now := time.Now()
	if t.running {
		t.elapsed += now.Sub(t.last)
	}
	t.running = running
	t.last = now
	t.refresh()
}

func (t *timer) refresh() {
	minutes := int(t.elapsed.Minutes())
	seconds := int(t.elapsed.Seconds()) % 60
	next := fmt.Sprintf("%02d:%02d", minutes, seconds)
	if next != t.text.Text {
		t.text.Text = next
		t.text.Refresh()
	}
}
