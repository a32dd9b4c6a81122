package controller

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dentris "github.com/ekagansahin/Dentist-Tetris"
)

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dentris.yaml")
	data := []byte("port: /dev/ttyACM0\nmock_input: true\nfeedback_interval: 50ms\n")
	require.NoError(t, os.WriteFile(path, data, 0o600))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "/dev/ttyACM0", cfg.Port)
	assert.True(t, cfg.MockInput)
	assert.Equal(t, Duration(50*time.Millisecond), cfg.FeedbackInterval)

	// Unset fields get defaults.
	assert.Equal(t, dentris.DefaultBaudRate, cfg.BaudRate)
	assert.Equal(t, 240, cfg.FrameRate)
}

func TestLoadConfigMissingExplicitPath(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadConfigFallbackMissingIsFine(t *testing.T) {
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, dentris.DefaultBaudRate, cfg.BaudRate)
	assert.Equal(t, Duration(20*time.Millisecond), cfg.FeedbackInterval)
}
