//go:build windows

package main

import "syscall"

// no SIGQUIT on windows
var stackDumpSignal = syscall.SIGHUP
