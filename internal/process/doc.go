// Package process terminates the headless Chrome process tree started for
// print-pdf builds. Chrome forks renderer and GPU helpers that outlive the
// launcher's own Kill, so the whole tree is targeted.
package process

import "errors"

// ErrInvalidPID is returned for PIDs that would target the caller's own
// process group or no process at all.
var ErrInvalidPID = errors.New("invalid pid")
