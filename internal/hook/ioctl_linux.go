//go:build linux

package hook

import (
	"unsafe"

	"golang.org/x/sys/unix"
)

// Linux ioctl request encoding (asm-generic/ioctl.h).
const (
	iocNone  = 0
	iocWrite = 1
	iocRead  = 2

	iocNrShift   = 0
	iocTypeShift = 8
	iocSizeShift = 16
	iocDirShift  = 30
)

func ioc(dir, typ, nr, size uintptr) uintptr {
	return dir<<iocDirShift | size<<iocSizeShift | typ<<iocTypeShift | nr<<iocNrShift
}

// evdev requests (linux/input.h).
var (
	evioCGrab     = ioc(iocWrite, 'E', 0x90, 4) // EVIOCGRAB
	evioCSClockID = ioc(iocWrite, 'E', 0xa0, 4) // EVIOCSCLOCKID
)

func evioCGName(length uintptr) uintptr {
	return ioc(iocRead, 'E', 0x06, length) // EVIOCGNAME(len)
}

func evioCGBit(ev, length uintptr) uintptr {
	return ioc(iocRead, 'E', 0x20+ev, length) // EVIOCGBIT(ev, len)
}

// uinput requests (linux/uinput.h).
var (
	uiSetEvBit   = ioc(iocWrite, 'U', 100, 4) // UI_SET_EVBIT
	uiSetKeyBit  = ioc(iocWrite, 'U', 101, 4) // UI_SET_KEYBIT
	uiSetMscBit  = ioc(iocWrite, 'U', 104, 4) // UI_SET_MSCBIT
	uiDevCreate  = ioc(iocNone, 'U', 1, 0)    // UI_DEV_CREATE
	uiDevDestroy = ioc(iocNone, 'U', 2, 0)    // UI_DEV_DESTROY
)

func ioctlPtr(fd int, req uintptr, arg unsafe.Pointer) error {
	_, _, errno := unix.Syscall(unix.SYS_IOCTL, uintptr(fd), req, uintptr(arg))
	if errno != 0 {
		return errno
	}
	return nil
}

// ioctlVal passes arg by value, the convention for EVIOCGRAB and the
// UI_SET_* requests.
func ioctlVal(fd int, req, arg uintptr) error {
	_, _, errno := unix.Syscall(unix.SYS_IOCTL, uintptr(fd), req, arg)
	if errno != 0 {
		return errno
	}
	return nil
}

// ioctlSetInt32 passes a pointer to an int32 argument, the convention for
// EVIOCSCLOCKID.
func ioctlSetInt32(fd int, req uintptr, arg int32) error {
	return ioctlPtr(fd, req, unsafe.Pointer(&arg))
}
