//go:build windows

package config

import (
	"os"

	"golang.org/x/sys/windows"
)

func chmodTemp(*os.File, os.FileMode) error { return nil }

// replaceFile overwrites to if it exists.
func replaceFile(from, to string) error {
	src, err := windows.UTF16PtrFromString(from)
	if err != nil {
		return err
	}
	dst, err := windows.UTF16PtrFromString(to)
	if err != nil {
		return err
	}
	return windows.MoveFileEx(src, dst, windows.MOVEFILE_REPLACE_EXISTING|windows.MOVEFILE_WRITE_THROUGH)
}
