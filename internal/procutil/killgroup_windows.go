//go:build windows

package procutil

import (
	"os"
	"time"
)

// KillOptions configures process termination behavior.
type KillOptions struct {
	// GracePeriod is how long to wait before forcing termination.
	// Zero means 200ms.
	GracePeriod time.Duration
}

// KillProcessGroup attempts to terminate only the leader process on
// Windows. Windows lacks Unix-style process groups, so descendants of the
// shell may be left behind; this matches the best-effort contract the
// rest of the tree expects on this platform.
func KillProcessGroup(leaderPID int, opts KillOptions) error {
	if leaderPID <= 0 {
		return nil
	}
	if opts.GracePeriod == 0 {
		opts.GracePeriod = 200 * time.Millisecond
	}

	proc, err := os.FindProcess(leaderPID)
	if err != nil {
		return err
	}
	_ = proc.Signal(os.Interrupt)
	if opts.GracePeriod > 0 {
		time.Sleep(opts.GracePeriod)
	}
	return proc.Kill()
}

// ForceKillProcess kills the leader process directly.
func ForceKillProcess(leaderPID int) error {
	proc, err := os.FindProcess(leaderPID)
	if err != nil {
		return err
	}
	return proc.Kill()
}
