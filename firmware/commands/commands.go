// Package commands maps host command tags onto controller actions. The
// host sends tags as JSON frames; the main loop dispatches each one here.
package commands

import (
	dentris "github.com/ekagansahin/Dentist-Tetris"
)

type Command struct {
	Tag         string
	Run         func(Controller) error
	Description string
}

// Controller is used to control a device
type Controller interface {
	Calibrate()
	PlayTrack(name string)
	StopMusic()
	MuteMusic()
	UnmuteMusic()
	EnableSound()
	DisableSound()
	SoftReset()
}

var (
	CalibrateCommand = &Command{
		Tag: dentris.CommandCalibrate,
		Run: func(c Controller) error {
			c.Calibrate()
			return nil
		},
		Description: "Capture the resting tilt offset. Blocks for about a second.",
	}
	MusicMenuCommand = &Command{
		Tag: dentris.CommandMusicMenu,
		Run: func(c Controller) error {
			c.PlayTrack("menu")
			return nil
		},
		Description: "Play the menu track from the top.",
	}
	MusicGameCommand = &Command{
		Tag: dentris.CommandMusicGame,
		Run: func(c Controller) error {
			c.PlayTrack("game")
			return nil
		},
		Description: "Play the in-game track from the top.",
	}
	MusicScoreCommand = &Command{
		Tag: dentris.CommandMusicScore,
		Run: func(c Controller) error {
			c.PlayTrack("scoring")
			return nil
		},
		Description: "Play the scoring jingle once.",
	}
	MusicStopCommand = &Command{
		Tag: dentris.CommandMusicStop,
		Run: func(c Controller) error {
			c.StopMusic()
			return nil
		},
		Description: "Stop the current track.",
	}
	MusicMuteCommand = &Command{
		Tag: dentris.CommandMusicMute,
		Run: func(c Controller) error {
			c.MuteMusic()
			return nil
		},
		Description: "Mute background music. One-shot effects still play.",
	}
	MusicUnmuteCommand = &Command{
		Tag: dentris.CommandMusicUnmute,
		Run: func(c Controller) error {
			c.UnmuteMusic()
			return nil
		},
		Description: "Unmute background music.",
	}
	SoundOnCommand = &Command{
		Tag: dentris.CommandSoundOn,
		Run: func(c Controller) error {
			c.EnableSound()
			return nil
		},
		Description: "Enable all sound: music and event effects.",
	}
	SoundOffCommand = &Command{
		Tag: dentris.CommandSoundOff,
		Run: func(c Controller) error {
			c.DisableSound()
			return nil
		},
		Description: "Disable all sound and silence the buzzer.",
	}
	ExitCommand = &Command{
		Tag: dentris.CommandExit,
		Run: func(c Controller) error {
			c.SoftReset()
			return nil
		},
		Description: "Soft reset: clear displays and calibration, keep running.",
	}
)

var commands = []*Command{
	CalibrateCommand,
	MusicMenuCommand,
	MusicGameCommand,
	MusicScoreCommand,
	MusicStopCommand,
	MusicMuteCommand,
	MusicUnmuteCommand,
	SoundOnCommand,
	SoundOffCommand,
	ExitCommand,
}

// Dispatch runs the command for the given tag. It reports whether the
// tag was recognized; unknown tags are simply skipped so newer hosts can
// talk to older firmware.
func Dispatch(c Controller, tag string) bool {
	for _, cmd := range commands {
		if cmd.Tag != tag {
			continue
		}
		if err := cmd.Run(c); err != nil {
			println("error:", err.Error())
		}
		return true
	}
	return false
}
