package sound

import (
	"errors"

	"github.com/gordonklaus/portaudio"
)

// PortaudioPlayer plays through the default PortAudio output device
// using a callback stream: PortAudio owns the playback thread and
// pulls one buffer per tick from the source.
type PortaudioPlayer struct {
	config Config
	stream *portaudio.Stream
	source Source
}

func NewPortaudioPlayer(config Config) *PortaudioPlayer {
	return &PortaudioPlayer{config: config}
}

func (p *PortaudioPlayer) Initialize() error {
	return portaudio.Initialize()
}

func (p *PortaudioPlayer) Open(src Source) error {
	p.source = src
	stream, err := portaudio.OpenDefaultStream(
		0,
		p.config.Channels,
		p.config.SampleRate,
		p.config.FramesPerBuffer,
		p.callback,
	)
	if err != nil {
		return err
	}
	p.stream = stream
	return nil
}

// callback runs on the PortAudio playback thread once per buffer.
// After the source completes it keeps the device fed with silence;
// the owner observes completion and closes the stream.
func (p *PortaudioPlayer) callback(out []float32) {
	p.source.Render(out)
}

func (p *PortaudioPlayer) Start() error {
	if p.stream == nil {
		return errors.New("Stream not opened")
	}
	return p.stream.Start()
}

func (p *PortaudioPlayer) Close() error {
	if p.stream != nil {
		return p.stream.Close()
	}
	return nil
}

func (p *PortaudioPlayer) Terminate() {
	portaudio.Terminate()
}
