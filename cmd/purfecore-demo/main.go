// Command purfecore-demo wires an Emulator to a real PTY: it spawns a
// shell, feeds its output through the parser, and redraws the visible
// grid to the controlling terminal on every frame.
package main

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"os/signal"

	"github.com/creack/pty"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/phroun/purfecore"
	"github.com/phroun/purfecore/input"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "purfecore-demo:", err)
		os.Exit(1)
	}
}

func run() error {
	logger, err := zap.NewDevelopment()
	if err != nil {
		return err
	}
	defer logger.Sync()
	sugar := logger.Sugar()

	width, height := 80, 24
	if w, h, err := term.GetSize(int(os.Stdin.Fd())); err == nil {
		width, height = w, h
	}

	shell := os.Getenv("SHELL")
	if shell == "" {
		shell = "/bin/sh"
	}
	cmd := exec.Command(shell)
	cmd.Env = append(os.Environ(), "TERM=xterm-256color", "COLORTERM=truecolor")

	ptmx, err := pty.StartWithSize(cmd, &pty.Winsize{Rows: uint16(height), Cols: uint16(width)})
	if err != nil {
		return fmt.Errorf("starting pty: %w", err)
	}
	defer ptmx.Close()

	emu := purfecore.NewEmulator(width, height, sugar)

	oldState, err := term.MakeRaw(int(os.Stdin.Fd()))
	if err != nil {
		return fmt.Errorf("entering raw mode: %w", err)
	}
	defer term.Restore(int(os.Stdin.Fd()), oldState)

	resized := make(chan os.Signal, 1)
	signal.Notify(resized, sigWinch)
	resized <- sigWinch // trigger one initial sync

	ptyChunks := make(chan []byte)
	ptyDone := make(chan struct{})
	go pumpReads(ptmx, ptyChunks, ptyDone)

	stdinChunks := make(chan []byte)
	go pumpReads(os.Stdin, stdinChunks, nil)

	// Everything that touches emu happens on this single goroutine, per
	// the core's single-owner concurrency contract: reads, key encoding,
	// and resize notifications are all serialized through one select.
	for {
		select {
		case chunk, ok := <-ptyChunks:
			if !ok {
				return nil
			}
			emu.Read(chunk)
			render(os.Stdout, emu)

		case chunk, ok := <-stdinChunks:
			if !ok {
				return nil
			}
			for _, b := range chunk {
				ptmx.Write(encodeRawByte(b, emu))
			}

		case <-resized:
			applyResize(ptmx, emu)

		case <-ptyDone:
			return nil
		}
	}
}

// pumpReads copies fixed-size reads from r onto out until r returns an
// error, then closes out (and, if done is non-nil, signals it too). It
// never touches the Emulator directly, keeping all emulator access on
// the select loop in run.
func pumpReads(r io.Reader, out chan<- []byte, done chan<- struct{}) {
	buf := make([]byte, 4096)
	for {
		n, err := r.Read(buf)
		if n > 0 {
			chunk := make([]byte, n)
			copy(chunk, buf[:n])
			out <- chunk
		}
		if err != nil {
			close(out)
			if done != nil {
				close(done)
			}
			return
		}
	}
}

// applyResize re-measures the host terminal and pushes the new size into
// both the PTY and the emulator, so the two never disagree about
// dimensions.
func applyResize(ptmx *os.File, emu *purfecore.Emulator) {
	w, h, err := term.GetSize(int(os.Stdin.Fd()))
	if err != nil {
		return
	}
	emu.SetWindowSize(w, h)
	pty.Setsize(ptmx, &pty.Winsize{Rows: uint16(h), Cols: uint16(w)})
}

// encodeRawByte passes ordinary bytes through and normalizes the handful
// of keys input.Encode treats specially; arrows arrive already-escaped
// from most host terminals, so this demo only needs to fix up Enter and
// Backspace to the shell's expected codes.
func encodeRawByte(b byte, emu *purfecore.Emulator) []byte {
	switch b {
	case '\r':
		return input.Encode(input.KeyEvent{Kind: input.KeyEnter}, emu.CursorKeysMode())
	case 0x7F:
		return input.Encode(input.KeyEvent{Kind: input.KeyBackspace}, emu.CursorKeysMode())
	default:
		return []byte{b}
	}
}
