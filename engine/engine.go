package engine

import (
	"context"
	"time"

	"github.com/d1nch8g/dialtone/dtmf"
	"github.com/d1nch8g/dialtone/synth"
)

// WaitFunc blocks for the given duration. All of the engine's pacing
// goes through it, so tests and offline rendering can substitute the
// wall clock with their own notion of time.
type WaitFunc func(time.Duration)

// Engine paces keypad symbols into synthesizer commands: a mapped
// symbol becomes Play, a press-length hold, Stop, then an inter-press
// gap. It is the single producer on the command channel.
type Engine struct {
	commands chan<- synth.Command
	press    time.Duration
	gap      time.Duration
	wait     WaitFunc
}

// NewEngine creates an engine producing onto commands. Zero durations
// select the reference timing (200ms press, 50ms gap); a nil wait
// selects the wall clock.
func NewEngine(commands chan<- synth.Command, press, gap time.Duration, wait WaitFunc) *Engine {
	if press == 0 {
		press = 200 * time.Millisecond
	}
	if gap == 0 {
		gap = 50 * time.Millisecond
	}
	if wait == nil {
		wait = time.Sleep
	}

	return &Engine{
		commands: commands,
		press:    press,
		gap:      gap,
		wait:     wait,
	}
}

// Press sounds one keypad symbol: Play both of its frequencies, hold
// for the press duration, Stop, then wait out the gap. Unmapped
// symbols are free no-ops: nothing is sent and no time passes. A
// started press always completes its Play/Stop pair.
func (e *Engine) Press(symbol byte) bool {
	tone, ok := dtmf.Frequencies(symbol)
	if !ok {
		return false
	}

	e.commands <- synth.Play(tone.High, tone.Low)
	e.wait(e.press)
	e.commands <- synth.Stop()
	e.wait(e.gap)
	return true
}

// Dial presses symbols as they arrive until the channel closes (end
// of input) or ctx is cancelled between presses.
func (e *Engine) Dial(ctx context.Context, symbols <-chan byte) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case symbol, ok := <-symbols:
			if !ok {
				return nil
			}
			e.Press(symbol)
		}
	}
}

// DialString presses a fixed sequence of symbols in order, checking
// for cancellation between presses.
func (e *Engine) DialString(ctx context.Context, symbols string) error {
	for i := 0; i < len(symbols); i++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		e.Press(symbols[i])
	}
	return nil
}
