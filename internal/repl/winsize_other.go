//go:build !linux && !darwin
// +build !linux,!darwin

package repl

// terminalWidth is not implemented on this platform; callers fall back to a fixed width.
func terminalWidth(int) (int, bool) { return 0, false }
