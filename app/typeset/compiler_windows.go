//go:build windows

package typeset

import "os/exec"

// DefaultBinary is the compiler executable used when Compiler.Binary is empty
const DefaultBinary = "tectonic.exe"

// setProcessGroup is a no-op on windows, exec.CommandContext kills the process itself
func setProcessGroup(_ *exec.Cmd) {}
