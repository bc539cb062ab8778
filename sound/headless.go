package sound

import (
	"errors"
	"time"
)

// HeadlessPlayer drives a source at the real callback cadence without
// any audio device, discarding the rendered buffers. It keeps the
// program runnable on machines with no sound hardware.
type HeadlessPlayer struct {
	config Config
	source Source
	buf    []float32
	stop   chan struct{}
	done   chan struct{}
}

func NewHeadlessPlayer(config Config) *HeadlessPlayer {
	return &HeadlessPlayer{config: config}
}

func (p *HeadlessPlayer) Initialize() error { return nil }

func (p *HeadlessPlayer) Terminate() {}

func (p *HeadlessPlayer) Open(src Source) error {
	p.source = src
	p.buf = make([]float32, p.config.FramesPerBuffer*p.config.Channels)
	return nil
}

// Start launches the render loop, ticking once per
// FramesPerBuffer/SampleRate. The loop exits when the source
// completes or Close is called.
func (p *HeadlessPlayer) Start() error {
	if p.buf == nil {
		return errors.New("Stream not opened")
	}
	p.stop = make(chan struct{})
	p.done = make(chan struct{})

	interval := time.Duration(float64(p.config.FramesPerBuffer) / p.config.SampleRate * float64(time.Second))
	go func() {
		defer close(p.done)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-p.stop:
				return
			case <-ticker.C:
				if !p.source.Render(p.buf) {
					return
				}
			}
		}
	}()
	return nil
}

// Close stops the render loop and waits for it to exit.
func (p *HeadlessPlayer) Close() error {
	if p.stop == nil {
		return nil
	}
	select {
	case <-p.stop:
	default:
		close(p.stop)
	}
	<-p.done
	return nil
}
