package pointer

import (
	"fmt"
	"log"
	"time"
)

// UInputActuator animates the pointer with a virtual uinput device, anchored
// to a ground-truth position source.
type UInputActuator struct {
	Position PositionSource
	Options  Options
	// OpenDevice overrides device creation, used by tests. Defaults to
	// OpenUInput.
	OpenDevice func() (*UInputDevice, error)
}

// MoveAndClick implements Actuator. The device is released on every exit
// path; motion already applied is not rolled back on failure.
func (a UInputActuator) MoveAndClick(x, y int, button Button) error {
	open := a.OpenDevice
	if open == nil {
		open = OpenUInput
	}
	dev, err := open()
	if err != nil {
		return err
	}
	defer dev.Close()

	return moveAndClickOn(dev, a.position(), x, y, button, a.Options)
}

func (a UInputActuator) position() PositionSource {
	if a.Position != nil {
		return a.Position
	}
	return HyprctlSource{}
}

// moveAndClickOn runs the full glide-then-click sequence on an already open
// device. Split out so the composition can be tested against a fake device.
func moveAndClickOn(dev Device, pos PositionSource, x, y int, button Button, opts Options) error {
	if err := glide(dev, pos, x, y, opts); err != nil {
		return err
	}
	// Small settle time between arrival and the press.
	time.Sleep(10 * time.Millisecond)
	return click(dev, button)
}

// Auto tries the primary actuator and falls back to the secondary when the
// primary fails. The composition matches the historical behavior: uinput
// first, ydotool second.
type Auto struct {
	Primary   Actuator
	Secondary Actuator
}

// NewAuto wires the default uinput-then-ydotool chain.
func NewAuto(opts Options) Auto {
	return Auto{
		Primary:   UInputActuator{Options: opts},
		Secondary: YdotoolActuator{},
	}
}

// MoveAndClick implements Actuator.
func (a Auto) MoveAndClick(x, y int, button Button) error {
	err := a.Primary.MoveAndClick(x, y, button)
	if err == nil {
		return nil
	}
	if a.Secondary == nil {
		return err
	}
	log.Printf("auto backend: primary failed: %v; trying fallback", err)
	if ferr := a.Secondary.MoveAndClick(x, y, button); ferr != nil {
		return fmt.Errorf("fallback failed: %w (primary: %v)", ferr, err)
	}
	return nil
}

// New returns the actuator for a backend name.
func New(backend Backend, opts Options) (Actuator, error) {
	switch backend {
	case BackendAuto, "":
		return NewAuto(opts), nil
	case BackendUInput:
		return UInputActuator{Options: opts}, nil
	case BackendYdotool:
		return YdotoolActuator{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, backend)
	}
}
