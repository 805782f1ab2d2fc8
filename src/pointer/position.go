package pointer

import (
	"encoding/json"
	"fmt"
	"os/exec"

	"screen-answer-clicker/src/sessionenv"
)

// HyprctlSource reads the cursor position from the Hyprland compositor via
// `hyprctl -j cursorpos`. This is the ground truth the glide controller
// anchors every step to.
type HyprctlSource struct {
	// Env supplies the session environment. Defaults to
	// sessionenv.SudoResolver when nil.
	Env sessionenv.Resolver
}

type cursorPos struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Position implements PositionSource.
func (s HyprctlSource) Position() (int, int, error) {
	path, err := exec.LookPath("hyprctl")
	if err != nil {
		return 0, 0, fmt.Errorf("%w: hyprctl not found in PATH", ErrUnavailable)
	}

	resolver := s.Env
	if resolver == nil {
		resolver = sessionenv.SudoResolver{}
	}

	cmd := exec.Command(path, "-j", "cursorpos")
	cmd.Env = resolver.Environ()
	out, err := cmd.Output()
	if err != nil {
		if ee, ok := err.(*exec.ExitError); ok && len(ee.Stderr) > 0 {
			return 0, 0, fmt.Errorf("hyprctl cursorpos failed: %s", ee.Stderr)
		}
		return 0, 0, fmt.Errorf("hyprctl cursorpos failed: %w", err)
	}

	var pos cursorPos
	if err := json.Unmarshal(out, &pos); err != nil {
		return 0, 0, fmt.Errorf("hyprctl returned non-JSON %q: %w", out, err)
	}
	return pos.X, pos.Y, nil
}
