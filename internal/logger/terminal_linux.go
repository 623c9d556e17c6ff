//go:build linux

package logger

import (
	"syscall"
	"unsafe"
)

// TCGETS reads terminal attributes; it only succeeds on a tty.
const TCGETS = 0x5401

func isTerminal(fd uintptr) bool {
	var t syscall.Termios
	_, _, errno := syscall.Syscall6(syscall.SYS_IOCTL, fd, TCGETS,
		uintptr(unsafe.Pointer(&t)), 0, 0, 0)
	return errno == 0
}
