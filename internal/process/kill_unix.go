//go:build !windows

package process

import (
	"fmt"
	"syscall"
)

// KillTree sends SIGKILL to the process group led by pid.
// Chrome is launched as a group leader, so -pid reaches its helpers too.
func KillTree(pid int) error {
	if pid <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidPID, pid)
	}
	if err := syscall.Kill(-pid, syscall.SIGKILL); err != nil && err != syscall.ESRCH {
		return fmt.Errorf("killing process group %d: %w", pid, err)
	}
	return nil
}
