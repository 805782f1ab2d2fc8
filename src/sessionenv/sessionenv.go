// Package sessionenv reconstructs the graphical-session environment when the
// process runs privilege-escalated. sudo strips WAYLAND_DISPLAY,
// XDG_RUNTIME_DIR and HYPRLAND_INSTANCE_SIGNATURE, which the capture,
// cursor-query and actuation collaborators all need.
package sessionenv

import (
	"os"
	"os/user"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
)

// Resolver produces the environment for spawning session-bound helper
// processes (grim, hyprctl, ydotool, clipboard tools).
type Resolver interface {
	// Environ returns the process environment with any recovered session
	// variables applied on top.
	Environ() []string
}

// SudoResolver recovers the invoking user's session from /run/user/<uid>
// when running as root under sudo. Outside of sudo it is a passthrough.
type SudoResolver struct{}

// Environ implements Resolver.
func (SudoResolver) Environ() []string {
	env := os.Environ()
	recovered := recoverSessionVars()
	for k, v := range recovered {
		env = setEnv(env, k, v)
	}
	return env
}

// recoverSessionVars returns session variables guessed from SUDO_USER. An
// empty map means nothing needed recovering (or recovery failed).
func recoverSessionVars() map[string]string {
	if os.Geteuid() != 0 {
		return nil
	}
	if os.Getenv("WAYLAND_DISPLAY") != "" && os.Getenv("XDG_RUNTIME_DIR") != "" &&
		os.Getenv("HYPRLAND_INSTANCE_SIGNATURE") != "" {
		return nil
	}

	uid, ok := sudoUID()
	if !ok {
		return nil
	}
	runtimeDir := os.Getenv("XDG_RUNTIME_DIR")
	if runtimeDir == "" {
		runtimeDir = filepath.Join("/run/user", strconv.Itoa(uid))
	}

	vars := map[string]string{}
	if display := findWaylandSocket(runtimeDir); display != "" {
		vars["XDG_SESSION_TYPE"] = "wayland"
		vars["XDG_RUNTIME_DIR"] = runtimeDir
		vars["WAYLAND_DISPLAY"] = display
	}
	if sig := findHyprSignature(runtimeDir); sig != "" {
		vars["XDG_RUNTIME_DIR"] = runtimeDir
		vars["HYPRLAND_INSTANCE_SIGNATURE"] = sig
	}
	return vars
}

func sudoUID() (int, bool) {
	if v := os.Getenv("SUDO_UID"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n, true
		}
	}
	name := os.Getenv("SUDO_USER")
	if name == "" {
		return 0, false
	}
	u, err := user.Lookup(name)
	if err != nil {
		return 0, false
	}
	n, err := strconv.Atoi(u.Uid)
	if err != nil {
		return 0, false
	}
	return n, true
}

// findWaylandSocket returns the basename of the first wayland-* socket in the
// runtime dir.
func findWaylandSocket(runtimeDir string) string {
	matches, err := filepath.Glob(filepath.Join(runtimeDir, "wayland-*"))
	if err != nil || len(matches) == 0 {
		return ""
	}
	sort.Strings(matches)
	for _, m := range matches {
		base := filepath.Base(m)
		if strings.HasSuffix(base, ".lock") {
			continue
		}
		return base
	}
	return ""
}

// findHyprSignature picks the first instance signature under
// <runtimeDir>/hypr.
func findHyprSignature(runtimeDir string) string {
	entries, err := os.ReadDir(filepath.Join(runtimeDir, "hypr"))
	if err != nil || len(entries) == 0 {
		return ""
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	sort.Strings(names)
	return names[0]
}

// setEnv replaces or appends key=value in an environ slice.
func setEnv(env []string, key, value string) []string {
	prefix := key + "="
	for i, kv := range env {
		if strings.HasPrefix(kv, prefix) {
			env[i] = prefix + value
			return env
		}
	}
	return append(env, prefix+value)
}
