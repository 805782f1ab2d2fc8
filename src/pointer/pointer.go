// Package pointer drives a virtual pointer toward a target point and clicks
// it. The actuation channel (relative motion events) is decoupled from the
// ground-truth position channel (a compositor query), so the animation
// re-anchors itself on fresh position reads every step.
package pointer

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	// ErrUnavailable means the actuation or position channel could not be
	// opened or queried at all (missing device, permissions).
	ErrUnavailable = errors.New("pointer channel unavailable")
	// ErrUnknownButton is returned for an unrecognized button name.
	ErrUnknownButton = errors.New("unknown button")
	// ErrUnknownBackend is returned for an unrecognized backend name.
	ErrUnknownBackend = errors.New("unknown backend")
)

// Button identifies a pointer button.
type Button string

const (
	ButtonLeft   Button = "left"
	ButtonRight  Button = "right"
	ButtonMiddle Button = "middle"
)

// ParseButton validates a button name.
func ParseButton(s string) (Button, error) {
	switch Button(strings.ToLower(strings.TrimSpace(s))) {
	case ButtonLeft, "":
		return ButtonLeft, nil
	case ButtonRight:
		return ButtonRight, nil
	case ButtonMiddle:
		return ButtonMiddle, nil
	default:
		return "", fmt.Errorf("%w: %q (must be one of: left, right, middle)", ErrUnknownButton, s)
	}
}

// evdev button codes (input-event-codes.h).
const (
	btnLeft   = 0x110
	btnRight  = 0x111
	btnMiddle = 0x112
)

func (b Button) evdevCode() uint16 {
	switch b {
	case ButtonRight:
		return btnRight
	case ButtonMiddle:
		return btnMiddle
	default:
		return btnLeft
	}
}

// ydotoolCode returns the button code the ydotool click subcommand expects.
func (b Button) ydotoolCode() string {
	switch b {
	case ButtonRight:
		return "0xC1"
	case ButtonMiddle:
		return "0xC2"
	default:
		return "0xC0"
	}
}

// PositionSource reads the externally authoritative pointer position. It is
// queried multiple times per animation step and must stay cheap.
type PositionSource interface {
	Position() (x, y int, err error)
}

// Device is the raw actuation channel: relative motion deltas and button
// transitions, batched with explicit synchronization markers. It is owned
// exclusively for the duration of one move-and-click and must be closed on
// every exit path.
type Device interface {
	MoveRelative(dx, dy int) error
	Button(b Button, pressed bool) error
	Sync() error
	Close() error
}

// Actuator performs an animated move-and-click on one backend.
type Actuator interface {
	MoveAndClick(x, y int, button Button) error
}

// Options tune the movement animation.
type Options struct {
	// MoveDuration is the total animation time.
	MoveDuration time.Duration
	// MoveSteps is the number of animation steps (minimum 1).
	MoveSteps int
}

// DefaultOptions matches the historical animation defaults.
func DefaultOptions() Options {
	return Options{MoveDuration: 100 * time.Millisecond, MoveSteps: 12}
}

func (o Options) normalized() Options {
	if o.MoveSteps < 1 {
		o.MoveSteps = 1
	}
	if o.MoveDuration < 0 {
		o.MoveDuration = 0
	}
	return o
}

// Backend names an actuation implementation.
type Backend string

const (
	BackendAuto    Backend = "auto"
	BackendUInput  Backend = "uinput"
	BackendYdotool Backend = "ydotool"
)

// ParseBackend validates a backend name.
func ParseBackend(s string) (Backend, error) {
	switch Backend(strings.ToLower(strings.TrimSpace(s))) {
	case BackendAuto, "":
		return BackendAuto, nil
	case BackendUInput, "evdev":
		return BackendUInput, nil
	case BackendYdotool:
		return BackendYdotool, nil
	default:
		return "", fmt.Errorf("%w: %q (must be one of: auto, uinput, ydotool)", ErrUnknownBackend, s)
	}
}
