// Package ui is the fyne front end: it draws session frames and, in mock
// mode, turns key presses into simulated sensor state.
package ui

import (
	"context"
	"fmt"
	"image/color"
	"strings"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	dentris "github.com/ekagansahin/Dentist-Tetris"
	"github.com/ekagansahin/Dentist-Tetris/controller"
	"github.com/ekagansahin/Dentist-Tetris/game"
)

// refreshInterval caps UI redraws well below the session's tick rate.
const refreshInterval = 33 * time.Millisecond

const (
	cellSize    = 24
	previewSize = 4
)

var shapeColors = map[game.Shape]color.Color{
	game.ShapeI: color.RGBA{R: 0, G: 200, B: 220, A: 255},
	game.ShapeO: color.RGBA{R: 230, G: 200, B: 0, A: 255},
	game.ShapeT: color.RGBA{R: 160, G: 60, B: 200, A: 255},
	game.ShapeS: color.RGBA{R: 60, G: 190, B: 60, A: 255},
	game.ShapeZ: color.RGBA{R: 210, G: 50, B: 50, A: 255},
	game.ShapeJ: color.RGBA{R: 50, G: 90, B: 210, A: 255},
	game.ShapeL: color.RGBA{R: 230, G: 130, B: 20, A: 255},
}

var (
	emptyColor = color.RGBA{R: 25, G: 25, B: 30, A: 255}
	ghostColor = color.RGBA{R: 70, G: 70, B: 80, A: 255}
)

func colorFor(s game.Shape) color.Color {
	if c, ok := shapeColors[s]; ok {
		return c
	}
	return emptyColor
}

// Launch starts the session once the connection is configured. It runs
// on its own goroutine with the renderer already wired up.
type Launch func(cfg controller.Config, gameUI *GameUI)

// Run owns the fyne application lifecycle: it shows the connection
// window when the config does not name a port, then the game window, and
// blocks until the application quits or ctx is cancelled. Must be called
// from the main goroutine.
func Run(ctx context.Context, cfg controller.Config, launch Launch) {
	application := app.New()

	gameUI := &GameUI{}
	showGame := func(cfg controller.Config) {
		window := application.NewWindow("Dentist Tetris")
		gameUI.build(window)
		window.Show()

		go gameUI.redrawLoop(ctx)
		go launch(cfg, gameUI)
	}

	if cfg.Port == "" && !cfg.MockInput {
		cw := NewConfigWindow(application)
		cw.OnSubmit = showGame
		cw.Show(cfg)
	} else {
		showGame(cfg)
	}

	go func() {
		<-ctx.Done()
		fyne.Do(func() {
			application.Quit()
		})
	}()

	application.Run()
}

// GameUI renders session frames in a window. Render may be called from
// any goroutine; drawing happens on the fyne thread at refreshInterval.
type GameUI struct {
	window fyne.Window

	mu       sync.Mutex
	latest   controller.Frame
	hasFrame bool

	cells   [game.VisibleHeight][game.BoardWidth]*canvas.Rectangle
	preview [previewSize][previewSize]*canvas.Rectangle

	scoreLabel *widget.Label
	levelLabel *widget.Label
	linesLabel *widget.Label
	menuLabel  *widget.Label
	debugLabel *widget.Label
	playTimer  *timer
}

// AttachMock wires keyboard input to the mock bridge. Safe to call from
// any goroutine once the window is built.
func (ui *GameUI) AttachMock(mock *controller.MockBridge) {
	fyne.Do(func() {
		attachKeys(ui.window, mock)
	})
}

// Render stores the frame for the next redraw. Frames between redraws
// are dropped; only the latest one matters.
func (ui *GameUI) Render(frame controller.Frame) {
	ui.mu.Lock()
	ui.latest = frame
	ui.hasFrame = true
	ui.mu.Unlock()
}

func (ui *GameUI) build(window fyne.Window) {
	ui.window = window

	boardGrid := ui.buildBoard()
	previewGrid := ui.buildPreview()

	ui.scoreLabel = widget.NewLabel("Score: 0")
	ui.levelLabel = widget.NewLabel("Level: 1")
	ui.linesLabel = widget.NewLabel("Lines: 0")
	ui.menuLabel = widget.NewLabel("")
	ui.debugLabel = widget.NewLabel("")
	ui.playTimer = newTimer()

	sidebar := container.NewVBox(
		ui.scoreLabel,
		ui.levelLabel,
		ui.linesLabel,
		container.NewPadded(ui.playTimer.text),
		widget.NewLabel("Next:"),
		previewGrid,
		ui.menuLabel,
		ui.debugLabel,
	)

	window.SetContent(container.NewHBox(boardGrid, sidebar))
}

func (ui *GameUI) buildBoard() *fyne.Container {
	objects := make([]fyne.CanvasObject, 0, game.VisibleHeight*game.BoardWidth)
	for y := 0; y < game.VisibleHeight; y++ {
		for x := 0; x < game.BoardWidth; x++ {
			rect := canvas.NewRectangle(emptyColor)
			rect.SetMinSize(fyne.NewSize(cellSize, cellSize))
			ui.cells[y][x] = rect
			objects = append(objects, rect)
		}
	}
	return container.NewGridWithColumns(game.BoardWidth, objects...)
}

func (ui *GameUI) buildPreview() *fyne.Container {
	objects := make([]fyne.CanvasObject, 0, previewSize*previewSize)
	for y := 0; y < previewSize; y++ {
		for x := 0; x < previewSize; x++ {
			rect := canvas.NewRectangle(emptyColor)
			rect.SetMinSize(fyne.NewSize(cellSize/2, cellSize/2))
			ui.preview[y][x] = rect
			objects = append(objects, rect)
		}
	}
	return container.NewGridWithColumns(previewSize, objects...)
}

func (ui *GameUI) redrawLoop(ctx context.Context) {
	for range time.Tick(refreshInterval) {
		select {
		case <-ctx.Done():
			return
		default:
		}

		ui.mu.Lock()
		frame := ui.latest
		ok := ui.hasFrame
		ui.mu.Unlock()
		if !ok {
			continue
		}

		fyne.Do(func() {
			ui.draw(frame)
		})
	}
}

// draw repaints everything from one frame. Runs on the fyne thread.
func (ui *GameUI) draw(frame controller.Frame) {
	snap := frame.Game

	// Hidden spawn rows sit above the visible board.
	hidden := game.BoardHeight - game.VisibleHeight
	for y := 0; y < game.VisibleHeight; y++ {
		for x := 0; x < game.BoardWidth; x++ {
			ui.setCell(y, x, colorFor(snap.Board[y+hidden][x]))
		}
	}
	if frame.Running && !snap.Paused {
		for _, c := range snap.Ghost {
			if c.Y >= hidden {
				ui.setCell(c.Y-hidden, c.X, ghostColor)
			}
		}
		for _, c := range snap.Active {
			if c.Y >= hidden {
				ui.setCell(c.Y-hidden, c.X, colorFor(snap.Shape))
			}
		}
	}

	ui.drawPreview(snap.Next)

	ui.scoreLabel.SetText(fmt.Sprintf("Score: %d", snap.Score))
	ui.levelLabel.SetText(fmt.Sprintf("Level: %d", snap.Level))
	ui.linesLabel.SetText(fmt.Sprintf("Lines: %d", snap.Lines))
	ui.playTimer.setRunning(frame.Running && !snap.Paused)

	ui.menuLabel.SetText(menuText(frame.Menu))
	ui.debugLabel.SetText(debugText(frame.Sensors))
}

func (ui *GameUI) setCell(y, x int, c color.Color) {
	rect := ui.cells[y][x]
	if rect.FillColor == c {
		return
	}
	rect.FillColor = c
	rect.Refresh()
}

func (ui *GameUI) drawPreview(next game.Piece) {
	// Shift the piece to origin so its cells index the preview grid.
	next.X = 0
	next.Y = 0
	filled := map[game.Cell]bool{}
	for _, c := range next.Cells(0, 0, 0) {
		filled[c] = true
	}
	for y := 0; y < previewSize; y++ {
		for x := 0; x < previewSize; x++ {
			c := colorFor(0)
			if filled[game.Cell{X: x, Y: y}] {
				c = colorFor(next.Shape)
			}
			rect := ui.preview[y][x]
			if rect.FillColor != c {
				rect.FillColor = c
				rect.Refresh()
			}
		}
	}
}

func debugText(s dentris.SensorPacket) string {
	return fmt.Sprintf("tilt %+.1f  btn %d/%d\nenc %+d @ %d  pot %.2f",
		s.Tilt.X, s.Buttons.A, s.Buttons.B,
		s.Encoder.Delta, s.Encoder.Position,
		float64(s.Pot)/65535)
}

func menuText(menu *controller.MenuView) string {
	if menu == nil {
		return ""
	}
	var b strings.Builder
	b.WriteString(menu.Title)
	for i, item := range menu.Items {
		b.WriteString("\n")
		if i == menu.Selected {
			b.WriteString("> ")
		} else {
			b.WriteString("  ")
		}
		b.WriteString(item)
	}
	return b.String()
}
