// Package clipboard writes text to the system clipboard, falling back to the
// external clipboard tools when the in-process backend cannot initialize
// (headless X, missing cgo deps, sudo-stripped session).
package clipboard

import (
	"fmt"
	"os/exec"
	"strings"
	"sync"

	xclipboard "golang.design/x/clipboard"

	"screen-answer-clicker/src/sessionenv"
)

var (
	writeMu   sync.Mutex
	initOnce  sync.Once
	initError error
)

// Init attempts to bring up the in-process clipboard backend. A failure is
// not fatal: Write falls back to wl-copy / xclip / xsel.
func Init() error {
	initOnce.Do(func() {
		initError = xclipboard.Init()
	})
	return initError
}

// Write performs a mutex-guarded clipboard write to prevent corruption under
// parallel writers.
func Write(text string) error {
	writeMu.Lock()
	defer writeMu.Unlock()

	if Init() == nil {
		xclipboard.Write(xclipboard.FmtText, []byte(text))
		return nil
	}
	return writeExternal(text)
}

// writeExternal pipes the text into the first available clipboard tool.
func writeExternal(text string) error {
	argv, err := detectTool()
	if err != nil {
		return err
	}
	cmd := exec.Command(argv[0], argv[1:]...)
	cmd.Env = sessionenv.SudoResolver{}.Environ()
	cmd.Stdin = strings.NewReader(text)
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("%s failed: %v: %s", argv[0], err, out)
	}
	return nil
}

func detectTool() ([]string, error) {
	if p, err := exec.LookPath("wl-copy"); err == nil {
		return []string{p}, nil
	}
	if p, err := exec.LookPath("xclip"); err == nil {
		return []string{p, "-selection", "clipboard", "-in"}, nil
	}
	if p, err := exec.LookPath("xsel"); err == nil {
		return []string{p, "--clipboard", "--input"}, nil
	}
	return nil, fmt.Errorf("no clipboard tool found: install wl-clipboard, xclip, or xsel")
}
