//go:build linux

package hook

import (
	"encoding/binary"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sys/unix"
)

// rawEventSize is sizeof(struct input_event) on 64-bit kernels: two int64
// time fields, type, code, value.
const rawEventSize = 24

// pollTimeout bounds how long a reader goroutine stays blocked in poll(2)
// before re-checking for shutdown.
const pollTimeout = 250 * time.Millisecond

// eventBuffer sizes the surface channel. Key events are sparse compared to
// the loop's processing rate; the buffer only absorbs bursts from multiple
// devices firing together.
const eventBuffer = 256

// Evdev is the Linux system hook. It grabs every discovered keyboard node
// exclusively, so unfiltered events never reach another evdev client, and
// re-emits forwarded events through a uinput virtual keyboard.
type Evdev struct {
	devices []*device
	out     *uinputKeyboard
	events  chan Event
	done    chan struct{}
	wg      sync.WaitGroup

	mu       sync.Mutex
	started  bool
	stopOnce sync.Once
}

// NewSystem returns the platform hook.
func NewSystem() (Hook, error) {
	return &Evdev{}, nil
}

// Start discovers keyboards, creates the virtual output device, switches
// every node to the monotonic clock, and grabs them. On any failure the
// resources acquired so far are released in reverse order.
func (h *Evdev) Start() (<-chan Event, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.started {
		return nil, ErrAlreadyStarted
	}

	devices, err := discoverKeyboards()
	if err != nil {
		return nil, err
	}
	if len(devices) == 0 {
		return nil, ErrNoKeyboards
	}

	out, err := createUinputKeyboard()
	if err != nil {
		closeDevices(devices)
		return nil, fmt.Errorf("create virtual keyboard: %w", err)
	}

	for i, d := range devices {
		if err := ioctlSetInt32(d.fd, evioCSClockID, unix.CLOCK_MONOTONIC); err != nil {
			ungrabDevices(devices[:i])
			out.destroy()
			closeDevices(devices)
			return nil, fmt.Errorf("set monotonic clock on %s: %w", d.path, err)
		}
		if err := ioctlVal(d.fd, evioCGrab, 1); err != nil {
			ungrabDevices(devices[:i])
			out.destroy()
			closeDevices(devices)
			return nil, fmt.Errorf("grab %s: %w", d.path, err)
		}
	}

	h.devices = devices
	h.out = out
	h.events = make(chan Event, eventBuffer)
	h.done = make(chan struct{})
	h.started = true

	h.wg.Add(len(devices))
	for _, d := range devices {
		go h.readDevice(d)
	}

	events := h.events
	go func() {
		h.wg.Wait()
		close(events)
	}()

	return h.events, nil
}

// Devices reports the paths of the grabbed nodes, for the startup log.
func (h *Evdev) Devices() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	paths := make([]string, len(h.devices))
	for i, d := range h.devices {
		paths[i] = fmt.Sprintf("%s (%s)", d.path, d.name)
	}
	return paths
}

// Forward re-emits an event through the virtual keyboard.
func (h *Evdev) Forward(ev Event) error {
	if h.out == nil {
		return ErrNotStarted
	}
	return h.out.write(ev)
}

// Stop ungrabs and closes every device, waits for the readers to drain, and
// destroys the virtual keyboard. Safe to call more than once; the event
// channel closes once the readers exit.
func (h *Evdev) Stop() error {
	h.mu.Lock()
	if !h.started {
		h.mu.Unlock()
		return nil
	}
	h.mu.Unlock()

	h.stopOnce.Do(func() {
		close(h.done)
		h.wg.Wait()
		ungrabDevices(h.devices)
		closeDevices(h.devices)
		h.out.destroy()
	})
	return nil
}

// readDevice surfaces every event from one node until shutdown. Read errors
// end this device's stream only; yanking one keyboard must not take down the
// filter for the others.
func (h *Evdev) readDevice(d *device) {
	defer h.wg.Done()

	buf := make([]byte, rawEventSize*64)
	fds := []unix.PollFd{{Fd: int32(d.fd), Events: unix.POLLIN}}

	for {
		select {
		case <-h.done:
			return
		default:
		}

		fds[0].Revents = 0
		n, err := unix.Poll(fds, int(pollTimeout.Milliseconds()))
		if err == unix.EINTR {
			continue
		}
		if err != nil {
			return
		}
		if n == 0 {
			continue
		}

		rn, err := unix.Read(d.fd, buf)
		if err == unix.EAGAIN || err == unix.EINTR {
			continue
		}
		if err != nil || rn <= 0 {
			return
		}

		for off := 0; off+rawEventSize <= rn; off += rawEventSize {
			ev := decodeEvent(buf[off : off+rawEventSize])
			select {
			case h.events <- ev:
			case <-h.done:
				return
			}
		}
	}
}

// decodeEvent unpacks one struct input_event. The kernel writes native
// byte order; all supported targets (amd64, arm64) are little-endian.
func decodeEvent(b []byte) Event {
	sec := binary.LittleEndian.Uint64(b[0:8])
	usec := binary.LittleEndian.Uint64(b[8:16])
	return Event{
		Time:  sec*1e9 + usec*1e3,
		Type:  binary.LittleEndian.Uint16(b[16:18]),
		Code:  binary.LittleEndian.Uint16(b[18:20]),
		Value: int32(binary.LittleEndian.Uint32(b[20:24])),
	}
}

func ungrabDevices(devices []*device) {
	for _, d := range devices {
		_ = ioctlVal(d.fd, evioCGrab, 0)
	}
}

func closeDevices(devices []*device) {
	for _, d := range devices {
		_ = unix.Close(d.fd)
	}
}
