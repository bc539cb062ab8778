package keypad

import (
	"context"
	"fmt"
	"io"
	"os"
	"syscall"
	"time"

	"golang.org/x/term"
)

// pollInterval paces the non-blocking read loop in raw mode.
const pollInterval = 5 * time.Millisecond

// Control bytes that end an interactive session. Raw mode delivers
// Ctrl-C and Ctrl-D as plain bytes instead of a signal or EOF.
const (
	ctrlC = 0x03
	ctrlD = 0x04
)

// Reader turns a byte stream (stdin in practice) into a stream of
// keypad symbols. On a terminal it switches to raw mode so each
// keypress arrives immediately, without line buffering or echo; on a
// pipe or file it reads plainly until EOF.
type Reader struct {
	file *os.File
}

// NewReader creates a Reader over file.
func NewReader(file *os.File) *Reader {
	return &Reader{file: file}
}

// ReadSymbols forwards one byte per keypress into out until
// end-of-input or ctx cancellation. Bytes are forwarded untouched;
// deciding whether a byte maps to a tone is the dialer's concern.
func (r *Reader) ReadSymbols(ctx context.Context, out chan<- byte) error {
	fd := int(r.file.Fd())
	if term.IsTerminal(fd) {
		return r.readRaw(ctx, fd, out)
	}
	return r.readPlain(ctx, out)
}

// readPlain consumes a non-terminal stream byte by byte until EOF.
func (r *Reader) readPlain(ctx context.Context, out chan<- byte) error {
	buf := make([]byte, 1)
	for {
		n, err := r.file.Read(buf)
		if n > 0 {
			select {
			case out <- buf[0]:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
	}
}

// readRaw puts the terminal in raw mode and polls it with
// non-blocking reads, so cancellation never leaves the terminal
// wedged behind a blocked read. Ctrl-C and Ctrl-D end the stream.
func (r *Reader) readRaw(ctx context.Context, fd int, out chan<- byte) error {
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return fmt.Errorf("failed to set raw mode: %w", err)
	}
	defer term.Restore(fd, oldState)

	if err := syscall.SetNonblock(fd, true); err != nil {
		return fmt.Errorf("failed to set non-blocking reads: %w", err)
	}
	defer syscall.SetNonblock(fd, false)

	buf := make([]byte, 1)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		n, err := syscall.Read(fd, buf)
		if n > 0 {
			b := buf[0]
			if b == ctrlC || b == ctrlD {
				return nil
			}
			select {
			case out <- b:
			case <-ctx.Done():
				return ctx.Err()
			}
			continue
		}
		if err == syscall.EAGAIN || err == syscall.EWOULDBLOCK || err == syscall.EINTR {
			time.Sleep(pollInterval)
			continue
		}
		if err != nil {
			return err
		}
		// n == 0 without error: the terminal went away.
		return nil
	}
}
