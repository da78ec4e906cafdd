//go:build profile && !windows

package profiler

import "syscall"

func sysProcAttr() *syscall.SysProcAttr { return nil }
