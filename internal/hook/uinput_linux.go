//go:build linux

package hook

import (
	"encoding/binary"
	"fmt"

	"golang.org/x/sys/unix"
)

const uinputPath = "/dev/uinput"

// virtualName is the device name the synthesized keyboard advertises.
const virtualName = "chatterd debounced keyboard"

// busVirtual is BUS_VIRTUAL from linux/input.h.
const busVirtual = 0x06

// mscScan is MSC_SCAN; keyboards report raw scan codes through it and some
// consumers expect to see them, so the virtual device advertises it too.
const mscScan = 0x04

// userDevSize is sizeof(struct uinput_user_dev): 80-byte name, input_id
// (4 x u16), ff_effects_max (u32), and four 64-entry int32 abs tables.
const userDevSize = 80 + 8 + 4 + 4*64*4

// uinputKeyboard is the virtual output device passed events are re-emitted
// through.
type uinputKeyboard struct {
	fd int
}

// createUinputKeyboard registers a virtual keyboard able to produce every
// key code, raw scan codes, and sync reports.
func createUinputKeyboard() (*uinputKeyboard, error) {
	fd, err := unix.Open(uinputPath, unix.O_WRONLY|unix.O_NONBLOCK|unix.O_CLOEXEC, 0)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", uinputPath, err)
	}

	k := &uinputKeyboard{fd: fd}
	if err := k.configure(); err != nil {
		unix.Close(fd)
		return nil, err
	}
	return k, nil
}

func (k *uinputKeyboard) configure() error {
	if err := ioctlVal(k.fd, uiSetEvBit, uintptr(EvKey)); err != nil {
		return fmt.Errorf("enable key events: %w", err)
	}
	for code := uintptr(0); code <= keyMax; code++ {
		if err := ioctlVal(k.fd, uiSetKeyBit, code); err != nil {
			return fmt.Errorf("enable key code %d: %w", code, err)
		}
	}
	if err := ioctlVal(k.fd, uiSetEvBit, uintptr(EvMsc)); err != nil {
		return fmt.Errorf("enable misc events: %w", err)
	}
	if err := ioctlVal(k.fd, uiSetMscBit, mscScan); err != nil {
		return fmt.Errorf("enable scan codes: %w", err)
	}

	if _, err := unix.Write(k.fd, userDev()); err != nil {
		return fmt.Errorf("describe device: %w", err)
	}
	if err := ioctlVal(k.fd, uiDevCreate, 0); err != nil {
		return fmt.Errorf("create device: %w", err)
	}
	return nil
}

// userDev builds the legacy uinput_user_dev descriptor.
func userDev() []byte {
	buf := make([]byte, userDevSize)
	copy(buf[:79], virtualName)
	binary.LittleEndian.PutUint16(buf[80:], busVirtual) // id.bustype
	binary.LittleEndian.PutUint16(buf[82:], 0x1)        // id.vendor
	binary.LittleEndian.PutUint16(buf[84:], 0x1)        // id.product
	binary.LittleEndian.PutUint16(buf[86:], 1)          // id.version
	return buf
}

// write re-emits one event. The kernel stamps the time fields itself, so
// they are left zero.
func (k *uinputKeyboard) write(ev Event) error {
	var buf [rawEventSize]byte
	binary.LittleEndian.PutUint16(buf[16:], ev.Type)
	binary.LittleEndian.PutUint16(buf[18:], ev.Code)
	binary.LittleEndian.PutUint32(buf[20:], uint32(ev.Value))

	if _, err := unix.Write(k.fd, buf[:]); err != nil {
		return fmt.Errorf("emit event: %w", err)
	}
	return nil
}

// destroy tears the virtual device down and closes the handle.
func (k *uinputKeyboard) destroy() {
	_ = ioctlVal(k.fd, uiDevDestroy, 0)
	_ = unix.Close(k.fd)
}
