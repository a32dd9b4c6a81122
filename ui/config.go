package ui

import (
	"errors"
	"fmt"
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/ekagansahin/Dentist-Tetris/controller"
)

// SerialPortNone is offered in the port list for keyboard-only play.
const SerialPortNone = "none (mock input)"

// ConfigWindow asks for the serial connection before the game starts.
// Values persist in fyne preferences between runs.
type ConfigWindow struct {
	app      fyne.App
	OnSubmit func(controller.Config)
}

func NewConfigWindow(app fyne.App) *ConfigWindow {
	return &ConfigWindow{app: app}
}

func (cw *ConfigWindow) loadFromPreferences(cfg *controller.Config) {
	prefs := cw.app.Preferences()
	cfg.Port = prefs.StringWithFallback("serialPort", "")
	cfg.BaudRate = prefs.IntWithFallback("baudRate", cfg.BaudRate)
}

func (cw *ConfigWindow) saveToPreferences(cfg *controller.Config) {
	prefs := cw.app.Preferences()
	prefs.SetString("serialPort", cfg.Port)
	prefs.SetInt("baudRate", cfg.BaudRate)
}

// Show opens the window. cfg provides starting values; the submitted
// config is handed to OnSubmit.
func (cw *ConfigWindow) Show(cfg controller.Config) {
	window := cw.app.NewWindow("Dentist Tetris - Connection")
	window.Resize(fyne.NewSize(400, 200))
	window.SetCloseIntercept(func() {
		// Treat window close as cancel
		window.Close()
		cw.app.Quit()
	})
	window.Show()

	cw.loadFromPreferences(&cfg)

	ports, err := controller.ListPorts()
	if err != nil && !errors.Is(err, controller.ErrNoUSBSerial) {
		showError(cw.app, window, fmt.Errorf("error getting serial ports: %w", err))
		return
	}
	ports = append(ports, SerialPortNone)

	portSelect := widget.NewSelect(ports, func(selected string) {
		cfg.Port = selected
	})
	if cfg.Port == "" {
		cfg.Port = ports[0]
	}
	portSelect.SetSelected(cfg.Port)

	baudEntry := widget.NewEntry()
	baudEntry.SetText(strconv.Itoa(cfg.BaudRate))

	submitButton := widget.NewButton("Play", func() {
		baud, err := strconv.Atoi(baudEntry.Text)
		if err != nil || baud <= 0 {
			dialog.ShowError(fmt.Errorf("invalid baud rate %q", baudEntry.Text), window)
			return
		}
		cfg.BaudRate = baud
		if cfg.Port == SerialPortNone {
			cfg.Port = ""
			cfg.MockInput = true
		}

		cw.saveToPreferences(&cfg)
		cw.OnSubmit(cfg)
		window.Close()
	})

	form := container.NewVBox(
		widget.NewCard("Connection", "", container.NewVBox(
			container.NewGridWithColumns(2,
				widget.NewLabel("Serial Port:"),
				portSelect,
			),
			container.NewGridWithColumns(2,
				widget.NewLabel("Baud Rate:"),
				baudEntry,
			),
		)),
		container.NewHBox(
			widget.NewButton("Cancel", func() {
				window.Close()
				cw.app.Quit()
			}),
			submitButton,
		),
	)

	window.SetContent(form)
}

func showError(app fyne.App, window fyne.Window, err error) {
	d := dialog.NewError(err, window)
	d.SetOnClosed(func() {
		app.Quit()
	})
	d.Show()
}
