//go:build !windows

package stats

import (
	"fmt"
	"os"
	"syscall"
)

func flockExclusive(f *os.File) error {
	if err := syscall.Flock(int(f.Fd()), syscall.LOCK_EX); err != nil {
		return fmt.Errorf("stats: acquire exclusive lock: %w", err)
	}
	return nil
}

func funlock(f *os.File) error {
	if err := syscall.Flock(int(f.Fd()), syscall.LOCK_UN); err != nil {
		return fmt.Errorf("stats: unlock: %w", err)
	}
	return nil
}
