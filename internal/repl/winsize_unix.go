//go:build linux || darwin
// +build linux darwin

package repl

import "golang.org/x/sys/unix"

// terminalWidth returns the terminal width in columns for fd, or ok=false if it cannot be
// determined (e.g. fd is not a terminal).
func terminalWidth(fd int) (int, bool) {
	ws, err := unix.IoctlGetWinsize(fd, unix.TIOCGWINSZ)
	if err != nil || ws.Col == 0 {
		return 0, false
	}

	return int(ws.Col), true
}
