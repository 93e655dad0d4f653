package hints

import (
	"os"
	"strconv"
	"strings"
	"syscall"
)

// DaemonAlive reports whether the hint daemon looks alive: a PID file with a
// parseable PID whose process answers signal 0. The check is advisory only;
// the view keeps rendering last-known content either way.
func DaemonAlive(pidFile string) bool {
	data, err := os.ReadFile(pidFile)
	if err != nil {
		return false
	}
	pid, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil || pid <= 0 {
		return false
	}

	proc, err := os.FindProcess(pid)
	if err != nil {
		return false
	}
	// Signal 0 probes existence without delivering anything.
	return proc.Signal(syscall.Signal(0)) == nil
}
