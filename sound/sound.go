package sound

import "fmt"

// Source produces interleaved audio frames for a playback backend.
type Source interface {
	// Render fills out with the next len(out) samples and reports
	// whether more audio follows; false means the stream is complete
	// and the backend may stop pulling. Render is invoked on the
	// backend's playback thread and must not block.
	Render(out []float32) bool
}

// Player defines the interface for audio playback
type Player interface {
	// Initialize initializes the audio playback system
	Initialize() error

	// Terminate terminates the audio playback system
	Terminate()

	// Open opens the playback stream over the given source
	Open(src Source) error

	// Start begins pulling audio from the source
	Start() error

	// Close closes the playback stream
	Close() error
}

// Backend names accepted by NewPlayer.
const (
	BackendPortaudio = "portaudio"
	BackendOto       = "oto"
	BackendHeadless  = "headless"
)

// Config holds the stream parameters shared by all backends.
type Config struct {
	SampleRate      float64
	Channels        int
	FramesPerBuffer int
}

// GetDefaultConfig returns the reference stream configuration: stereo
// float32 at 44.1kHz, 64 frames per callback, one tick every ~1.45ms.
func GetDefaultConfig() Config {
	return Config{
		SampleRate:      44100,
		Channels:        2,
		FramesPerBuffer: 64,
	}
}

// NewPlayer creates the named playback backend.
func NewPlayer(backend string, config Config) (Player, error) {
	switch backend {
	case BackendPortaudio:
		return NewPortaudioPlayer(config), nil
	case BackendOto:
		return NewOtoPlayer(config), nil
	case BackendHeadless:
		return NewHeadlessPlayer(config), nil
	}
	return nil, fmt.Errorf("unknown audio backend %q", backend)
}
