// Package dentris holds the wire-protocol types and constants shared by the
// Pico firmware and the PC-side game. Both ends exchange newline-terminated
// JSON frames over USB serial: the firmware streams SensorPackets up, the
// host streams FeedbackPackets and CommandPackets down.
package dentris

// DefaultBaudRate is the USB CDC baud rate used on both sides.
const DefaultBaudRate = 115200

// DefaultPot is the potentiometer value assumed when a frame omits it.
const DefaultPot uint16 = 32768

// Command tags carried in a CommandPacket. The firmware treats any frame
// with a non-empty command or action field as a command, never as feedback.
const (
	CommandCalibrate   = "calibrate"
	CommandMusicMenu   = "music_menu"
	CommandMusicGame   = "music_game"
	CommandMusicScore  = "music_scoring"
	CommandMusicStop   = "music_stop"
	CommandMusicMute   = "music_mute"
	CommandMusicUnmute = "music_unmute"
	CommandSoundOn     = "sound_on"
	CommandSoundOff    = "sound_off"
	CommandExit        = "exit"
)

// Action tags used only by the pause menu.
const (
	ActionResume   = "resume"
	ActionMainMenu = "main_menu"
)

// Event tags carried in FeedbackPacket.Events.
const (
	EventLineCleared = "LINE_CLEARED"
	EventLevelUp     = "LEVEL_UP"
	EventGameOver    = "GAME_OVER"
)
