//go:build !linux && !darwin && !dragonfly && !freebsd && !netbsd && !openbsd && !windows

package term

func IsTerminal(uintptr) bool { return false }
