package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/d1nch8g/dialtone/sound"
)

// Config holds the dialer's runtime parameters. Every field has a
// reference default; the environment, optionally seeded from a .env
// file, overrides it.
type Config struct {
	SampleRate      float64
	Channels        int
	FramesPerBuffer int
	Volume          float32
	Press           time.Duration
	Gap             time.Duration
	Backend         string
}

func LoadConfig() (*Config, error) {
	// A missing .env is fine; the process environment and the
	// defaults below cover it.
	godotenv.Load()

	cfg := &Config{
		SampleRate:      44100,
		Channels:        2,
		FramesPerBuffer: 64,
		Volume:          0.2,
		Press:           200 * time.Millisecond,
		Gap:             50 * time.Millisecond,
		Backend:         sound.BackendPortaudio,
	}

	if v := os.Getenv("SAMPLE_RATE"); v != "" {
		rate, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid SAMPLE_RATE %q: %w", v, err)
		}
		cfg.SampleRate = rate
	}
	if v := os.Getenv("CHANNELS"); v != "" {
		channels, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid CHANNELS %q: %w", v, err)
		}
		cfg.Channels = channels
	}
	if v := os.Getenv("FRAMES_PER_BUFFER"); v != "" {
		frames, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid FRAMES_PER_BUFFER %q: %w", v, err)
		}
		cfg.FramesPerBuffer = frames
	}
	if v := os.Getenv("VOLUME"); v != "" {
		volume, err := strconv.ParseFloat(v, 32)
		if err != nil {
			return nil, fmt.Errorf("invalid VOLUME %q: %w", v, err)
		}
		cfg.Volume = float32(volume)
	}
	if v := os.Getenv("PRESS_MS"); v != "" {
		ms, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid PRESS_MS %q: %w", v, err)
		}
		cfg.Press = time.Duration(ms) * time.Millisecond
	}
	if v := os.Getenv("GAP_MS"); v != "" {
		ms, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid GAP_MS %q: %w", v, err)
		}
		cfg.Gap = time.Duration(ms) * time.Millisecond
	}
	if v := os.Getenv("AUDIO_BACKEND"); v != "" {
		cfg.Backend = v
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.SampleRate <= 0 {
		return fmt.Errorf("sample rate must be positive, got %v", c.SampleRate)
	}
	if c.Channels < 1 {
		return fmt.Errorf("channels must be at least 1, got %d", c.Channels)
	}
	if c.FramesPerBuffer < 1 {
		return fmt.Errorf("frames per buffer must be at least 1, got %d", c.FramesPerBuffer)
	}
	// Two voices mix additively, so 0.5 per voice is the largest
	// volume that cannot clip.
	if c.Volume <= 0 || c.Volume > 0.5 {
		return fmt.Errorf("volume must be in (0, 0.5], got %v", c.Volume)
	}
	// Zero is rejected rather than read as "use the default": an
	// explicitly configured duration never silently becomes the
	// reference timing.
	if c.Press <= 0 {
		return fmt.Errorf("press duration must be positive, got %v", c.Press)
	}
	if c.Gap <= 0 {
		return fmt.Errorf("gap duration must be positive, got %v", c.Gap)
	}
	switch c.Backend {
	case sound.BackendPortaudio, sound.BackendOto, sound.BackendHeadless:
	default:
		return fmt.Errorf("unknown AUDIO_BACKEND %q", c.Backend)
	}
	return nil
}
