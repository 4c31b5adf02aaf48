//go:build unix

package main

import (
	"os/exec"
	"syscall"
)

// detach puts cmd in its own session so it outlives us and our terminal.
func detach(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{Setsid: true}
}
