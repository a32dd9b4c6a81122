//go:build tinygo

package main

import (
	"github.com/ekagansahin/Dentist-Tetris/firmware/commands"
	"github.com/ekagansahin/Dentist-Tetris/firmware/device"
)

// Loop cadences in milliseconds. The encoder needs a much tighter poll
// than the sensor stream or fast turns drop transitions.
const (
	encoderPollInterval = 1
	sampleInterval      = 10
)

func main() {
	dev, err := device.NewBoard(device.DefaultBoardConfig())
	if err != nil {
		panic(err)
	}

	bridge := device.NewSerialBridge()

	println("system ready, waiting for calibration from menu")

	encoderTick := dev.Now()
	sampleTick := dev.Now()
	for {
		now := dev.Now()

		if now-encoderTick >= 0 {
			encoderTick += encoderPollInterval
			dev.PollEncoder()
		}

		if now-sampleTick >= 0 {
			sampleTick += sampleInterval
			bridge.Send(dev.Sample())
		}

		if frame, ok := bridge.Receive(); ok {
			if frame.IsCommand() {
				if !commands.Dispatch(dev, frame.Command) {
					println("unknown command:", frame.Command)
				}
			} else {
				dev.ApplyFeedback(frame)
			}
		}

		dev.Update()
	}
}
