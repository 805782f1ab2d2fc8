//go:build linux

package pointer

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"time"

	"golang.org/x/sys/unix"
)

// uinput ioctl requests and event codes (linux/uinput.h,
// linux/input-event-codes.h).
const (
	uiSetEvBit   = 0x40045564
	uiSetKeyBit  = 0x40045565
	uiSetRelBit  = 0x40045566
	uiDevCreate  = 0x5501
	uiDevDestroy = 0x5502

	evSyn = 0x00
	evKey = 0x01
	evRel = 0x02

	relX = 0x00
	relY = 0x01

	synReport = 0

	busUSB = 0x03
)

const deviceName = "answer-clicker-pointer"

// inputEvent mirrors struct input_event on 64-bit Linux.
type inputEvent struct {
	Sec   int64
	Usec  int64
	Type  uint16
	Code  uint16
	Value int32
}

// uinputUserDev mirrors struct uinput_user_dev.
type uinputUserDev struct {
	Name         [80]byte
	Bustype      uint16
	Vendor       uint16
	Product      uint16
	Version      uint16
	FFEffectsMax uint32
	Absmax       [64]int32
	Absmin       [64]int32
	Absfuzz      [64]int32
	Absflat      [64]int32
}

// UInputDevice is a virtual relative pointer backed by /dev/uinput. It
// carries REL_X/REL_Y motion and the three standard buttons.
type UInputDevice struct {
	fd int
}

// OpenUInput creates and registers the virtual pointer device. Opening
// requires write access to /dev/uinput (typically root or the input group).
func OpenUInput() (*UInputDevice, error) {
	fd, err := unix.Open("/dev/uinput", unix.O_WRONLY|unix.O_NONBLOCK, 0)
	if err != nil {
		return nil, fmt.Errorf("%w: open /dev/uinput: %v", ErrUnavailable, err)
	}

	setup := func() error {
		if err := unix.IoctlSetInt(fd, uiSetEvBit, evKey); err != nil {
			return fmt.Errorf("enable EV_KEY: %w", err)
		}
		if err := unix.IoctlSetInt(fd, uiSetEvBit, evRel); err != nil {
			return fmt.Errorf("enable EV_REL: %w", err)
		}
		for _, code := range []int{relX, relY} {
			if err := unix.IoctlSetInt(fd, uiSetRelBit, code); err != nil {
				return fmt.Errorf("enable REL axis %d: %w", code, err)
			}
		}
		for _, code := range []int{btnLeft, btnRight, btnMiddle} {
			if err := unix.IoctlSetInt(fd, uiSetKeyBit, code); err != nil {
				return fmt.Errorf("enable button 0x%x: %w", code, err)
			}
		}

		var dev uinputUserDev
		copy(dev.Name[:], deviceName)
		dev.Bustype = busUSB
		dev.Vendor = 0x1
		dev.Product = 0x1
		dev.Version = 1

		var buf bytes.Buffer
		if err := binary.Write(&buf, binary.LittleEndian, &dev); err != nil {
			return fmt.Errorf("encode device descriptor: %w", err)
		}
		if _, err := unix.Write(fd, buf.Bytes()); err != nil {
			return fmt.Errorf("write device descriptor: %w", err)
		}
		if err := unix.IoctlSetInt(fd, uiDevCreate, 0); err != nil {
			return fmt.Errorf("UI_DEV_CREATE: %w", err)
		}
		return nil
	}

	if err := setup(); err != nil {
		_ = unix.Close(fd)
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	// The compositor needs a moment to register the new input device before
	// it will track its events.
	time.Sleep(150 * time.Millisecond)

	return &UInputDevice{fd: fd}, nil
}

func (d *UInputDevice) emit(typ, code uint16, value int32) error {
	ev := inputEvent{Type: typ, Code: code, Value: value}
	var buf bytes.Buffer
	if err := binary.Write(&buf, binary.LittleEndian, &ev); err != nil {
		return err
	}
	if _, err := unix.Write(d.fd, buf.Bytes()); err != nil {
		return fmt.Errorf("write input event: %w", err)
	}
	return nil
}

// MoveRelative implements Device.
func (d *UInputDevice) MoveRelative(dx, dy int) error {
	if dx != 0 {
		if err := d.emit(evRel, relX, int32(dx)); err != nil {
			return err
		}
	}
	if dy != 0 {
		if err := d.emit(evRel, relY, int32(dy)); err != nil {
			return err
		}
	}
	return nil
}

// Button implements Device.
func (d *UInputDevice) Button(b Button, pressed bool) error {
	value := int32(0)
	if pressed {
		value = 1
	}
	return d.emit(evKey, b.evdevCode(), value)
}

// Sync implements Device.
func (d *UInputDevice) Sync() error {
	return d.emit(evSyn, synReport, 0)
}

// Close destroys the virtual device and releases the file descriptor.
func (d *UInputDevice) Close() error {
	if d.fd < 0 {
		return nil
	}
	_ = unix.IoctlSetInt(d.fd, uiDevDestroy, 0)
	err := unix.Close(d.fd)
	d.fd = -1
	return err
}
