// Package term answers whether a file descriptor is an interactive terminal.
package term

import "os"

// IsTerminalFile is IsTerminal for an *os.File. Nil is never a terminal.
func IsTerminalFile(f *os.File) bool {
	if f == nil {
		return false
	}
	return IsTerminal(f.Fd())
}
