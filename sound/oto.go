package sound

import (
	"errors"
	"io"
	"math"
	"time"

	"github.com/ebitengine/oto/v3"
)

// OtoPlayer plays through ebitengine/oto, a cgo-free backend useful
// where PortAudio is not installed. Oto owns the playback thread and
// pulls little-endian float32 bytes through an io.Reader.
type OtoPlayer struct {
	config Config
	ctx    *oto.Context
	player *oto.Player
}

func NewOtoPlayer(config Config) *OtoPlayer {
	return &OtoPlayer{config: config}
}

// Initialize creates the oto context and waits for the audio device
// to become ready.
func (p *OtoPlayer) Initialize() error {
	ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   int(p.config.SampleRate),
		ChannelCount: p.config.Channels,
		Format:       oto.FormatFloat32LE,
		BufferSize:   time.Duration(p.config.FramesPerBuffer) * time.Second / time.Duration(int(p.config.SampleRate)),
	})
	if err != nil {
		return err
	}
	<-ready
	p.ctx = ctx
	return nil
}

// Terminate is a no-op: oto contexts cannot be torn down.
func (p *OtoPlayer) Terminate() {}

func (p *OtoPlayer) Open(src Source) error {
	if p.ctx == nil {
		return errors.New("Context not initialized")
	}
	p.player = p.ctx.NewPlayer(&sourceReader{
		source:   src,
		channels: p.config.Channels,
		samples:  make([]float32, p.config.FramesPerBuffer*p.config.Channels),
	})
	return nil
}

func (p *OtoPlayer) Start() error {
	if p.player == nil {
		return errors.New("Stream not opened")
	}
	p.player.Play()
	return nil
}

func (p *OtoPlayer) Close() error {
	if p.player == nil {
		return nil
	}
	err := p.player.Close()
	p.player = nil
	return err
}

// sourceReader adapts a Source to the io.Reader oto pulls from,
// converting rendered frames to little-endian float32 bytes without
// allocating. Each Read renders at most one tick-sized buffer so the
// source keeps its per-buffer cadence regardless of how much oto asks
// for, and only whole frames, so a capped read cannot shift the
// channel alignment of the byte stream. Read reports io.EOF once the
// source completes and io.ErrShortBuffer for requests smaller than
// one frame.
type sourceReader struct {
	source   Source
	channels int
	samples  []float32
	complete bool
}

func (r *sourceReader) Read(p []byte) (int, error) {
	if r.complete {
		return 0, io.EOF
	}
	if len(p) < 4*r.channels {
		return 0, io.ErrShortBuffer
	}

	samples := r.samples
	if max := len(p) / 4 / r.channels * r.channels; max < len(samples) {
		samples = samples[:max]
	}

	if !r.source.Render(samples) {
		r.complete = true
	}

	for i, s := range samples {
		bits := math.Float32bits(s)
		p[4*i] = byte(bits)
		p[4*i+1] = byte(bits >> 8)
		p[4*i+2] = byte(bits >> 16)
		p[4*i+3] = byte(bits >> 24)
	}
	return len(samples) * 4, nil
}
