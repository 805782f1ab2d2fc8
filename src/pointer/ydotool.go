package pointer

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"

	"screen-answer-clicker/src/sessionenv"
)

// YdotoolActuator moves and clicks through the ydotool daemon. ydotool does
// its own absolute positioning, so no glide animation runs on this backend;
// its accuracy depends on the daemon's acceleration settings.
type YdotoolActuator struct {
	Env sessionenv.Resolver
}

// MoveAndClick implements Actuator.
func (a YdotoolActuator) MoveAndClick(x, y int, button Button) error {
	path, err := exec.LookPath("ydotool")
	if err != nil {
		return fmt.Errorf("%w: ydotool not found in PATH (install it and ensure ydotoold is running)", ErrUnavailable)
	}

	resolver := a.Env
	if resolver == nil {
		resolver = sessionenv.SudoResolver{}
	}
	env := resolver.Environ()
	if socket := detectSocket(); socket != "" {
		env = append(env, "YDOTOOL_SOCKET="+socket)
	}

	moveArgs := []string{"mousemove", "-a", "-x", strconv.Itoa(x), "-y", strconv.Itoa(y)}
	if err := runYdotool(path, env, moveArgs); err != nil {
		return err
	}
	return runYdotool(path, env, []string{"click", button.ydotoolCode()})
}

func runYdotool(path string, env, args []string) error {
	cmd := exec.Command(path, args...)
	cmd.Env = env
	out, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("ydotool %v failed (is ydotoold running / socket accessible?): %v: %s", args, err, out)
	}
	return nil
}

// detectSocket finds the ydotoold socket. sudo often strips YDOTOOL_SOCKET,
// and installations disagree on where the socket lives.
func detectSocket() string {
	if explicit := os.Getenv("YDOTOOL_SOCKET"); explicit != "" {
		if _, err := os.Stat(explicit); err == nil {
			return explicit
		}
	}

	if _, err := os.Stat("/tmp/.ydotool_socket"); err == nil {
		return "/tmp/.ydotool_socket"
	}

	var uids []string
	if v := os.Getenv("SUDO_UID"); v != "" {
		uids = append(uids, v)
	}
	uids = append(uids, strconv.Itoa(os.Getuid()))

	for _, uid := range uids {
		runDir := filepath.Join("/run/user", uid)
		if st, err := os.Stat(runDir); err != nil || !st.IsDir() {
			continue
		}
		for _, name := range []string{".ydotool_socket", "ydotool.socket"} {
			p := filepath.Join(runDir, name)
			if _, err := os.Stat(p); err == nil {
				return p
			}
		}
	}
	return ""
}
