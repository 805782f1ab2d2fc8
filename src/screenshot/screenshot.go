// Package screenshot captures the full screen to a PNG file. On Wayland it
// shells out to grim with a recovered session environment; elsewhere it
// captures in-process.
package screenshot

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	kbinani "github.com/kbinani/screenshot"

	"screen-answer-clicker/src/sessionenv"
)

// DefaultFileName is the fixed capture target: each run overwrites the
// previous screenshot.
const DefaultFileName = "screenshot.png"

// Capturer writes a full-screen capture to a directory and returns the
// absolute path of the PNG.
type Capturer struct {
	Env sessionenv.Resolver
}

// CaptureToFile captures the whole screen into dir/DefaultFileName.
func (c Capturer) CaptureToFile(dir string) (string, error) {
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create screenshot dir: %w", err)
	}
	out, err := filepath.Abs(filepath.Join(dir, DefaultFileName))
	if err != nil {
		return "", err
	}

	env := c.environ()
	if hasEnv(env, "WAYLAND_DISPLAY") {
		if err := captureGrim(out, env); err != nil {
			return "", err
		}
		return out, nil
	}

	img, err := Capture()
	if err != nil {
		return "", err
	}
	if err := writePNG(out, img); err != nil {
		return "", err
	}
	return out, nil
}

func (c Capturer) environ() []string {
	resolver := c.Env
	if resolver == nil {
		resolver = sessionenv.SudoResolver{}
	}
	return resolver.Environ()
}

// captureGrim runs grim to write the PNG. grim talks to the Wayland
// compositor directly, which in-process capture cannot do.
func captureGrim(out string, env []string) error {
	path, err := exec.LookPath("grim")
	if err != nil {
		return fmt.Errorf("wayland session detected but grim is not installed")
	}
	cmd := exec.Command(path, out)
	cmd.Env = env
	if output, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("grim failed: %v: %s", err, output)
	}
	return nil
}

// Capture captures the union of all active displays in-process.
func Capture() (*image.RGBA, error) {
	n := kbinani.NumActiveDisplays()
	if n == 0 {
		return nil, fmt.Errorf("no active displays found")
	}
	union := kbinani.GetDisplayBounds(0)
	for i := 1; i < n; i++ {
		union = union.Union(kbinani.GetDisplayBounds(i))
	}
	img, err := kbinani.CaptureRect(union)
	if err != nil {
		return nil, fmt.Errorf("capture virtual screen: %w", err)
	}
	return img, nil
}

// GetDisplayBounds returns the bounds of the primary display.
func GetDisplayBounds() (image.Rectangle, error) {
	if kbinani.NumActiveDisplays() == 0 {
		return image.Rectangle{}, fmt.Errorf("no active displays found")
	}
	return kbinani.GetDisplayBounds(0), nil
}

func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		return fmt.Errorf("encode PNG: %w", err)
	}
	return f.Sync()
}

func hasEnv(env []string, key string) bool {
	prefix := key + "="
	for _, kv := range env {
		if strings.HasPrefix(kv, prefix) && len(kv) > len(prefix) {
			return true
		}
	}
	return false
}
