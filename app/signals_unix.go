//go:build !windows

package main

import "syscall"

var stackDumpSignal = syscall.SIGQUIT
