//go:build !linux

package pointer

import "fmt"

// UInputDevice is only available on Linux.
type UInputDevice struct{}

func OpenUInput() (*UInputDevice, error) {
	return nil, fmt.Errorf("%w: uinput is Linux-only", ErrUnavailable)
}

func (d *UInputDevice) MoveRelative(dx, dy int) error       { return ErrUnavailable }
func (d *UInputDevice) Button(b Button, pressed bool) error { return ErrUnavailable }
func (d *UInputDevice) Sync() error                         { return ErrUnavailable }
func (d *UInputDevice) Close() error                        { return nil }
