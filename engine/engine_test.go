package engine

import (
	"context"
	"testing"
	"time"

	"github.com/d1nch8g/dialtone/synth"
)

const (
	testPress = 200 * time.Millisecond
	testGap   = 50 * time.Millisecond
)

// recordedWaits collects the durations the engine would have slept.
func recordedWaits(waits *[]time.Duration) WaitFunc {
	return func(d time.Duration) {
		*waits = append(*waits, d)
	}
}

func drain(commands chan synth.Command) []synth.Command {
	var got []synth.Command
	for {
		select {
		case cmd := <-commands:
			got = append(got, cmd)
		default:
			return got
		}
	}
}

func TestPressSendsPlayThenStop(t *testing.T) {
	commands := make(chan synth.Command, 8)
	var waits []time.Duration
	e := NewEngine(commands, testPress, testGap, recordedWaits(&waits))

	if !e.Press('5') {
		t.Fatal("Press('5') = false, want true")
	}

	got := drain(commands)
	want := []synth.Command{synth.Play(1336, 770), synth.Stop()}
	if len(got) != len(want) {
		t.Fatalf("sent %d commands, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("command %d = %+v, want %+v", i, got[i], want[i])
		}
	}

	if len(waits) != 2 || waits[0] != testPress || waits[1] != testGap {
		t.Errorf("waits = %v, want [%v %v]", waits, testPress, testGap)
	}
}

func TestPressUnmappedSymbol(t *testing.T) {
	commands := make(chan synth.Command, 8)
	var waits []time.Duration
	e := NewEngine(commands, testPress, testGap, recordedWaits(&waits))

	for _, symbol := range []byte{'E', 'z', ' ', '\n', 0x03} {
		if e.Press(symbol) {
			t.Errorf("Press(%#x) = true, want false", symbol)
		}
	}

	if got := drain(commands); len(got) != 0 {
		t.Errorf("unmapped presses sent %d commands, want 0", len(got))
	}
	if len(waits) != 0 {
		t.Errorf("unmapped presses waited %v, want no waits", waits)
	}
}

func TestDialStringPressesInOrder(t *testing.T) {
	commands := make(chan synth.Command, 64)
	var waits []time.Duration
	e := NewEngine(commands, testPress, testGap, recordedWaits(&waits))

	if err := e.DialString(context.Background(), "123A"); err != nil {
		t.Fatalf("DialString: %v", err)
	}

	got := drain(commands)
	want := []synth.Command{
		synth.Play(1209, 697), synth.Stop(),
		synth.Play(1336, 697), synth.Stop(),
		synth.Play(1477, 697), synth.Stop(),
		synth.Play(1633, 697), synth.Stop(),
	}
	if len(got) != len(want) {
		t.Fatalf("sent %d commands, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("command %d = %+v, want %+v", i, got[i], want[i])
		}
	}
	if len(waits) != 8 {
		t.Errorf("recorded %d waits, want 8", len(waits))
	}
}

func TestDialStringSkipsUnmapped(t *testing.T) {
	commands := make(chan synth.Command, 64)
	e := NewEngine(commands, testPress, testGap, recordedWaits(new([]time.Duration)))

	if err := e.DialString(context.Background(), "1-800-5"); err != nil {
		t.Fatalf("DialString: %v", err)
	}

	got := drain(commands)
	want := []synth.Command{
		synth.Play(1209, 697), synth.Stop(),
		synth.Play(1336, 852), synth.Stop(),
		synth.Play(1336, 941), synth.Stop(),
		synth.Play(1336, 941), synth.Stop(),
		synth.Play(1336, 770), synth.Stop(),
	}
	if len(got) != len(want) {
		t.Fatalf("sent %d commands, want %d (dashes skipped)", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("command %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestDialPressesUntilChannelCloses(t *testing.T) {
	commands := make(chan synth.Command, 64)
	e := NewEngine(commands, testPress, testGap, recordedWaits(new([]time.Duration)))

	symbols := make(chan byte, 4)
	symbols <- '9'
	symbols <- '#'
	close(symbols)

	if err := e.Dial(context.Background(), symbols); err != nil {
		t.Fatalf("Dial: %v", err)
	}

	got := drain(commands)
	want := []synth.Command{
		synth.Play(1477, 852), synth.Stop(),
		synth.Play(1477, 941), synth.Stop(),
	}
	if len(got) != len(want) {
		t.Fatalf("sent %d commands, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("command %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestDialReturnsOnCancellation(t *testing.T) {
	commands := make(chan synth.Command, 8)
	e := NewEngine(commands, testPress, testGap, recordedWaits(new([]time.Duration)))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	symbols := make(chan byte)
	if err := e.Dial(ctx, symbols); err != context.Canceled {
		t.Errorf("Dial err = %v, want context.Canceled", err)
	}
}

func TestDialStringReturnsOnCancellation(t *testing.T) {
	commands := make(chan synth.Command, 8)
	e := NewEngine(commands, testPress, testGap, recordedWaits(new([]time.Duration)))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := e.DialString(ctx, "12345"); err != context.Canceled {
		t.Errorf("DialString err = %v, want context.Canceled", err)
	}
	if got := drain(commands); len(got) != 0 {
		t.Errorf("cancelled dial sent %d commands, want 0", len(got))
	}
}

func TestDefaultTiming(t *testing.T) {
	e := NewEngine(make(chan synth.Command, 1), 0, 0, nil)
	if e.press != 200*time.Millisecond {
		t.Errorf("default press = %v, want 200ms", e.press)
	}
	if e.gap != 50*time.Millisecond {
		t.Errorf("default gap = %v, want 50ms", e.gap)
	}
	if e.wait == nil {
		t.Error("default wait is nil")
	}
}

// TestPressRendersToneThenSilence runs a press through a real
// synthesizer: the tick after Play carries the tone, the tick after
// Stop is silent again.
func TestPressRendersToneThenSilence(t *testing.T) {
	commands := make(chan synth.Command, synth.CommandBuffer)
	s := synth.NewSynth(synth.Config{SampleRate: 44100, Channels: 2, Volume: 0.2}, commands)
	e := NewEngine(commands, testPress, testGap, func(time.Duration) {})

	if !e.Press('5') {
		t.Fatal("Press('5') = false, want true")
	}

	out := make([]float32, 64*2)
	if !s.Render(out) {
		t.Fatal("Render = false during press")
	}
	peak := float32(0)
	for _, v := range out {
		if v > peak {
			peak = v
		} else if -v > peak {
			peak = -v
		}
	}
	if peak == 0 {
		t.Error("press tick is silent, want tone")
	}

	if !s.Render(out) {
		t.Fatal("Render = false after stop")
	}
	for i, v := range out {
		if v != 0 {
			t.Fatalf("sample %d = %v after stop, want silence", i, v)
		}
	}

	close(commands)
	if s.Render(out) {
		t.Error("Render = true after command channel closed")
	}
	select {
	case <-s.Done():
	default:
		t.Error("Done not closed after completion")
	}
}
