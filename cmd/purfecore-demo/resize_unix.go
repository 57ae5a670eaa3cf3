//go:build !windows

package main

import (
	"os"

	"golang.org/x/sys/unix"
)

// sigWinch is the signal run's select loop subscribes to for window-size
// change notifications; applyResize (main.go) does the actual work once
// the signal reaches the single select loop that owns the Emulator.
var sigWinch os.Signal = unix.SIGWINCH
