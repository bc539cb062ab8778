package wavout

import (
	"fmt"
	"os"
	"time"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/d1nch8g/dialtone/sound"
)

// Writer appends rendered float32 frames to a 16-bit PCM WAV file.
type Writer struct {
	file *os.File
	enc  *wav.Encoder
	buf  *audio.IntBuffer
}

// NewWriter creates path and prepares a WAV encoder for the given
// stream parameters.
func NewWriter(path string, sampleRate, channels int) (*Writer, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s: %w", path, err)
	}

	return &Writer{
		file: f,
		enc:  wav.NewEncoder(f, sampleRate, 16, channels, 1),
		buf: &audio.IntBuffer{
			Format:         &audio.Format{NumChannels: channels, SampleRate: sampleRate},
			SourceBitDepth: 16,
		},
	}, nil
}

// Write appends one buffer of interleaved frames, clamped to [-1, 1]
// and scaled to 16-bit.
func (w *Writer) Write(frames []float32) error {
	if cap(w.buf.Data) < len(frames) {
		w.buf.Data = make([]int, len(frames))
	}
	w.buf.Data = w.buf.Data[:len(frames)]

	for i, s := range frames {
		if s > 1 {
			s = 1
		} else if s < -1 {
			s = -1
		}
		w.buf.Data[i] = int(s * 32767)
	}
	return w.enc.Write(w.buf)
}

// Close finalizes the WAV header and closes the file.
func (w *Writer) Close() error {
	if err := w.enc.Close(); err != nil {
		w.file.Close()
		return err
	}
	return w.file.Close()
}

// Renderer drives a source by sample count instead of wall clock: its
// Wait renders the equivalent number of frames into the writer, so a
// dial paced through it produces the file faster than real time while
// keeping the live semantics of one command drained per buffer-sized
// tick.
type Renderer struct {
	source sound.Source
	writer *Writer
	config sound.Config
	buf    []float32
	err    error
}

// NewRenderer creates an offline renderer capturing source into
// writer.
func NewRenderer(source sound.Source, writer *Writer, config sound.Config) *Renderer {
	return &Renderer{
		source: source,
		writer: writer,
		config: config,
		buf:    make([]float32, config.FramesPerBuffer*config.Channels),
	}
}

// Wait renders round(d·SampleRate) frames through the source into the
// file, in at most FramesPerBuffer chunks. It satisfies
// engine.WaitFunc. A write error latches and is reported by Finish.
func (r *Renderer) Wait(d time.Duration) {
	frames := int(d.Seconds()*r.config.SampleRate + 0.5)
	for frames > 0 && r.err == nil {
		n := r.config.FramesPerBuffer
		if n > frames {
			n = frames
		}
		out := r.buf[:n*r.config.Channels]
		r.source.Render(out)
		r.err = r.writer.Write(out)
		frames -= n
	}
}

// Finish drains whatever the dial left queued, lets the source
// observe the closed command channel, and finalizes the file. The
// final buffer, rendered when the source reports completion, is
// shutdown observation rather than dialed audio and is not written.
func (r *Renderer) Finish() error {
	for r.err == nil && r.source.Render(r.buf) {
		r.err = r.writer.Write(r.buf)
	}
	if r.err != nil {
		r.writer.Close()
		return r.err
	}
	return r.writer.Close()
}
