//go:build windows

package process

import (
	"fmt"
	"os/exec"
	"strconv"
)

// KillTree force-kills pid and its descendants with taskkill /F /T.
func KillTree(pid int) error {
	if pid <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidPID, pid)
	}
	// taskkill exits non-zero when the process is already gone.
	_ = exec.Command("taskkill", "/F", "/T", "/PID", strconv.Itoa(pid)).Run() // #nosec G204 -- pid is numeric
	return nil
}
