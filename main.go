package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/d1nch8g/dialtone/config"
	"github.com/d1nch8g/dialtone/engine"
	"github.com/d1nch8g/dialtone/keypad"
	"github.com/d1nch8g/dialtone/sound"
	"github.com/d1nch8g/dialtone/synth"
	"github.com/d1nch8g/dialtone/wavout"
)

func main() {
	dial := flag.String("dial", "", "dial a fixed symbol sequence instead of reading the keyboard")
	wavPath := flag.String("wav", "", "capture the dial to a WAV file instead of playing it")
	backend := flag.String("backend", "", "audio backend: portaudio, oto or headless (overrides AUDIO_BACKEND)")
	flag.Parse()

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if *backend != "" {
		cfg.Backend = *backend
	}

	// Setup signal handling
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sig
		cancel()
	}()

	// The engine produces onto the command channel; the synthesizer
	// drains it from the audio callback.
	commands := make(chan synth.Command, synth.CommandBuffer)
	synthesizer := synth.NewSynth(synth.Config{
		SampleRate: cfg.SampleRate,
		Channels:   cfg.Channels,
		Volume:     cfg.Volume,
	}, commands)

	if *wavPath != "" {
		if err := capture(ctx, cfg, synthesizer, commands, *dial, *wavPath); err != nil {
			log.Fatalf("Capture failed: %v", err)
		}
		return
	}

	if err := play(ctx, cfg, synthesizer, commands, *dial); err != nil {
		log.Fatalf("Playback failed: %v", err)
	}
}

// dialSymbols runs the dial: a fixed sequence when dial is non-empty,
// otherwise interactive keypad input from stdin.
func dialSymbols(ctx context.Context, eng *engine.Engine, dial string) error {
	if dial != "" {
		return eng.DialString(ctx, dial)
	}

	symbols := make(chan byte, 8)
	reader := keypad.NewReader(os.Stdin)
	go func() {
		defer close(symbols)
		if err := reader.ReadSymbols(ctx, symbols); err != nil && err != context.Canceled {
			log.Printf("Input error: %v", err)
		}
	}()
	return eng.Dial(ctx, symbols)
}

// play runs a live session through the configured audio backend.
func play(ctx context.Context, cfg *config.Config, synthesizer *synth.Synth, commands chan synth.Command, dial string) error {
	player, err := sound.NewPlayer(cfg.Backend, sound.Config{
		SampleRate:      cfg.SampleRate,
		Channels:        cfg.Channels,
		FramesPerBuffer: cfg.FramesPerBuffer,
	})
	if err != nil {
		return err
	}

	if err := player.Initialize(); err != nil {
		return fmt.Errorf("failed to initialize %s backend: %w", cfg.Backend, err)
	}
	defer player.Terminate()

	if err := player.Open(synthesizer); err != nil {
		return fmt.Errorf("failed to open audio stream: %w", err)
	}
	defer player.Close()

	if err := player.Start(); err != nil {
		return fmt.Errorf("failed to start audio stream: %w", err)
	}

	if dial != "" {
		fmt.Printf("Dialing %q through %s (%.0f Hz, %d channels)\n",
			dial, cfg.Backend, cfg.SampleRate, cfg.Channels)
	} else {
		fmt.Println("Press keypad keys (0-9 A-D * #). Ctrl-C or Ctrl-D ends the session.")
	}

	eng := engine.NewEngine(commands, cfg.Press, cfg.Gap, nil)
	dialErr := dialSymbols(ctx, eng, dial)
	if ctx.Err() != nil {
		fmt.Println("\nStopping...")
	}

	// Closing the command channel tells the synthesizer the session
	// is over; wait for the render side to observe it before tearing
	// the stream down.
	close(commands)
	<-synthesizer.Done()

	if dialErr != nil && dialErr != context.Canceled {
		return dialErr
	}
	return nil
}

// capture runs the dial through the offline renderer into a WAV file
// instead of an audio device.
func capture(ctx context.Context, cfg *config.Config, synthesizer *synth.Synth, commands chan synth.Command, dial, path string) error {
	writer, err := wavout.NewWriter(path, int(cfg.SampleRate), cfg.Channels)
	if err != nil {
		return err
	}

	renderer := wavout.NewRenderer(synthesizer, writer, sound.Config{
		SampleRate:      cfg.SampleRate,
		Channels:        cfg.Channels,
		FramesPerBuffer: cfg.FramesPerBuffer,
	})

	eng := engine.NewEngine(commands, cfg.Press, cfg.Gap, renderer.Wait)
	dialErr := dialSymbols(ctx, eng, dial)
	if ctx.Err() != nil {
		fmt.Println("\nStopping...")
	}

	// Finalize the file even on a cancelled dial so a partial capture
	// still carries a valid header.
	close(commands)
	if err := renderer.Finish(); err != nil {
		return fmt.Errorf("failed to finalize %s: %w", path, err)
	}

	if dialErr != nil && dialErr != context.Canceled {
		return dialErr
	}

	fmt.Printf("Captured dial to %s\n", path)
	return nil
}
