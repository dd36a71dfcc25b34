//go:build linux

package hook

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unsafe"

	"golang.org/x/sys/unix"
)

const inputDir = "/dev/input"

// Letter-row key codes used to tell keyboards apart from mice and buttons
// that also advertise EV_KEY. A device that cannot produce Q through P is
// not a keyboard we should grab.
const (
	keyQ = 16
	keyP = 25
)

// keyMax is the highest key code (linux/input-event-codes.h KEY_MAX).
const keyMax = 0x2ff

// evMax is the highest event type (linux/input-event-codes.h EV_MAX).
const evMax = 0x1f

// device is one grabbed evdev node.
type device struct {
	fd   int
	path string
	name string
}

// discoverKeyboards opens every keyboard-capable node under /dev/input.
// Nodes that cannot be opened or probed are skipped silently; udev churn
// makes transient failures normal here.
func discoverKeyboards() ([]*device, error) {
	entries, err := os.ReadDir(inputDir)
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", inputDir, err)
	}

	var devices []*device
	for _, entry := range entries {
		if !strings.HasPrefix(entry.Name(), "event") {
			continue
		}
		path := filepath.Join(inputDir, entry.Name())

		fd, err := unix.Open(path, unix.O_RDONLY|unix.O_NONBLOCK|unix.O_CLOEXEC, 0)
		if err != nil {
			continue
		}
		if !isKeyboard(fd) {
			unix.Close(fd)
			continue
		}
		devices = append(devices, &device{
			fd:   fd,
			path: path,
			name: deviceName(fd),
		})
	}
	return devices, nil
}

// isKeyboard probes a node's capability bitmaps for EV_KEY support plus the
// full letter row.
func isKeyboard(fd int) bool {
	var types [evMax/8 + 1]byte
	if err := ioctlPtr(fd, evioCGBit(0, uintptr(len(types))), unsafe.Pointer(&types[0])); err != nil {
		return false
	}
	if !bitSet(types[:], uint(EvKey)) {
		return false
	}

	var keys [keyMax/8 + 1]byte
	if err := ioctlPtr(fd, evioCGBit(uintptr(EvKey), uintptr(len(keys))), unsafe.Pointer(&keys[0])); err != nil {
		return false
	}
	for code := uint(keyQ); code <= keyP; code++ {
		if !bitSet(keys[:], code) {
			return false
		}
	}
	return true
}

func bitSet(bits []byte, n uint) bool {
	return bits[n/8]&(1<<(n%8)) != 0
}

func deviceName(fd int) string {
	var buf [256]byte
	if err := ioctlPtr(fd, evioCGName(uintptr(len(buf))), unsafe.Pointer(&buf[0])); err != nil {
		return "unknown"
	}
	name := string(buf[:])
	if i := strings.IndexByte(name, 0); i >= 0 {
		name = name[:i]
	}
	return name
}
