package ipc

import (
	"os"
	"strconv"
)

const (
	defaultPortStart = 49560
	defaultPortEnd   = 49610
)

// portRange returns the loopback TCP port range. The resident binds only
// the first port; clients scan the whole range so older residents with a
// shifted configuration are still found. Overridable via IPC_PORT_START
// and IPC_PORT_END, clamped to [1024, 65535].
func portRange() (int, int) {
	start := defaultPortStart
	end := defaultPortEnd
	if v := os.Getenv("IPC_PORT_START"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			start = n
		}
	}
	if v := os.Getenv("IPC_PORT_END"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			end = n
		}
	}
	if start < 1024 {
		start = 1024
	}
	if end > 65535 {
		end = 65535
	}
	if end < start {
		start, end = end, start
	}
	return start, end
}

// PortRange exposes the effective range for pre-flight checks and logging.
func PortRange() (int, int) { return portRange() }
