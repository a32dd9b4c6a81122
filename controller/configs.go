package controller

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	dentris "github.com/ekagansahin/Dentist-Tetris"
)

// DefaultConfigFile is looked up in the working directory when no explicit
// path is given.
const DefaultConfigFile = "dentris.yaml"

// Duration is a time.Duration that decodes from YAML strings like "20ms".
type Duration time.Duration

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	parsed, err := time.ParseDuration(value.Value)
	if err != nil {
		return fmt.Errorf("parsing duration %q: %w", value.Value, err)
	}
	*d = Duration(parsed)
	return nil
}

// Config holds the host-side settings. Zero values are filled in by
// ApplyDefaults, so a partial YAML file is fine.
type Config struct {
	// Port is the serial device of the controller, e.g. /dev/ttyACM0.
	Port string `yaml:"port"`
	// BaudRate for the serial link.
	BaudRate int `yaml:"baud_rate"`
	// MockInput replaces the serial bridge with keyboard-driven samples.
	MockInput bool `yaml:"mock_input"`
	// Seed fixes the piece sequence; 0 means seed from the clock.
	Seed int64 `yaml:"seed"`
	// FrameRate is the session loop frequency in Hz.
	FrameRate int `yaml:"frame_rate"`
	// FeedbackInterval rate-limits feedback frames to the firmware.
	// Event-carrying frames bypass it.
	FeedbackInterval Duration `yaml:"feedback_interval"`
}

// ApplyDefaults fills unset fields.
func (c *Config) ApplyDefaults() {
	if c.BaudRate == 0 {
		c.BaudRate = dentris.DefaultBaudRate
	}
	if c.FrameRate == 0 {
		c.FrameRate = 240
	}
	if c.FeedbackInterval == 0 {
		c.FeedbackInterval = Duration(20 * time.Millisecond)
	}
}

// LoadConfig reads the YAML config at path. An empty path falls back to
// ./dentris.yaml, and a missing fallback file is not an error: defaults
// apply.
func LoadConfig(path string) (Config, error) {
	explicit := path != ""
	if !explicit {
		path = DefaultConfigFile
	}

	var cfg Config
	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			cfg.ApplyDefaults()
			return cfg, nil
		}
		return Config{}, fmt.Errorf("reading config %q: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing config %q: %w", path, err)
	}

	cfg.ApplyDefaults()
	return cfg, nil
}
