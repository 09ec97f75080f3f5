//go:build !windows

package typeset

import (
	"os/exec"
	"syscall"
)

// DefaultBinary is the compiler executable used when Compiler.Binary is empty
const DefaultBinary = "tectonic"

// setProcessGroup puts the compiler into its own process group, so cancellation kills
// helper processes it spawned as well
func setProcessGroup(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
	cmd.Cancel = func() error {
		if cmd.Process == nil {
			return nil
		}
		return syscall.Kill(-cmd.Process.Pid, syscall.SIGKILL)
	}
}
