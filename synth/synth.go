package synth

// Voice slots of the fixed two-voice mixer: the column (high) tone
// and the row (low) tone of a DTMF pair.
const (
	slotHigh = iota
	slotLow
	numVoices
)

// CommandBuffer is the capacity of the command channel between the
// dialing goroutine and the render side. Dial pacing keeps at most
// one command in flight; the slack only matters if a caller bursts
// commands faster than the callback cadence, in which case they
// queue rather than drop.
const CommandBuffer = 64

// Config carries the fixed stream parameters of a Synth.
type Config struct {
	SampleRate float64
	Channels   int
	Volume     float32 // per-voice level while a tone is on
}

// Synth owns the oscillator state and turns the command stream into
// rendered audio. The command channel is the only link to the dialing
// side; closing it is the shutdown signal.
type Synth struct {
	config   Config
	commands <-chan Command
	voices   [numVoices]Oscillator
	done     chan struct{}
	finished bool
}

// NewSynth creates a Synth reading from commands.
func NewSynth(config Config, commands <-chan Command) *Synth {
	return &Synth{
		config:   config,
		commands: commands,
		done:     make(chan struct{}),
	}
}

// Render produces one buffer of interleaved frames. Render must only
// ever be called from one goroutine, the playback thread; it never
// blocks and never allocates.
//
// Each tick drains at most one pending command, applies it, then
// zeroes out and sums the voices into it, so a command always takes
// effect in the buffer rendered on the tick that drained it. The
// return value turns false once the command channel has closed: the
// tick that observes the closure still renders the current voice
// state, every later tick renders silence.
func (s *Synth) Render(out []float32) bool {
	if s.finished {
		for i := range out {
			out[i] = 0
		}
		return false
	}

	select {
	case cmd, ok := <-s.commands:
		if ok {
			s.apply(cmd)
		} else {
			s.finished = true
			close(s.done)
		}
	default:
	}

	for i := range out {
		out[i] = 0
	}
	for i := range s.voices {
		s.voices[i].accumulate(out, s.config.Channels, s.config.SampleRate)
	}
	return !s.finished
}

// Done is closed once the render side has observed the command
// channel closing. Safe to wait on from any goroutine.
func (s *Synth) Done() <-chan struct{} {
	return s.done
}

func (s *Synth) apply(cmd Command) {
	switch cmd.kind {
	case commandPlay:
		s.voices[slotHigh].frequency = cmd.high
		s.voices[slotHigh].volume = s.config.Volume
		s.voices[slotLow].frequency = cmd.low
		s.voices[slotLow].volume = s.config.Volume
	case commandStop:
		s.voices[slotHigh].volume = 0
		s.voices[slotLow].volume = 0
	}
}
