package diagnostics

import (
	"os"
	"strings"

	"github.com/shirou/gopsutil/v3/process"
)

const forwarderProcessName = "lora_pkt_fwd"

// Write records whether the packet forwarder is running. The gateway
// dashboard reads the file and expects the literal string "true" or
// "false", no trailing newline.
func Write(path string, isRunning bool) error {
	content := "false"
	if isRunning {
		content = "true"
	}
	return os.WriteFile(path, []byte(content), 0644)
}

// ForwarderRunning scans the process table for a live forwarder. The
// SX1301 binaries carry a bus suffix, so a prefix match covers both
// chip families.
func ForwarderRunning() bool {
	procs, err := process.Processes()
	if err != nil {
		return false
	}
	for _, p := range procs {
		name, err := p.Name()
		if err != nil {
			continue
		}
		if strings.HasPrefix(name, forwarderProcessName) {
			return true
		}
	}
	return false
}
