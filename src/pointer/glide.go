package pointer

import (
	"fmt"
	"math"
	"time"
)

const (
	// stepCap bounds a single relative motion event so the compositor never
	// sees one oversized jump.
	stepCap = 400
	// tolerance is the per-axis error (pixels) at which the correction loop
	// stops.
	tolerance = 2
	// correctionIters caps the post-animation correction loop.
	correctionIters = 6
	// correctionSettle is the pause between correction events so the
	// compositor's position tracking catches up.
	correctionSettle = 6 * time.Millisecond
)

// ease is smoothstep (3t² − 2t³): zero first derivative at both ends,
// monotonic, symmetric.
func ease(t float64) float64 {
	return t * t * (3.0 - 2.0*t)
}

func clampDelta(d int) int {
	if d > stepCap {
		return stepCap
	}
	if d < -stepCap {
		return -stepCap
	}
	return d
}

// glide animates the pointer from its current ground-truth position to
// (x, y). Each step re-reads ground truth and moves toward the eased
// schedule target, so drift from acceleration curves or dropped events is
// absorbed instead of accumulated. After the animation a short bounded
// correction loop closes any remaining gap.
func glide(dev Device, pos PositionSource, x, y int, opts Options) error {
	opts = opts.normalized()

	startX, startY, err := pos.Position()
	if err != nil {
		return fmt.Errorf("read start position: %w", err)
	}

	perStep := opts.MoveDuration / time.Duration(opts.MoveSteps)

	for i := 1; i <= opts.MoveSteps; i++ {
		t := float64(i) / float64(opts.MoveSteps)
		k := ease(t)
		stepX := int(math.Round(float64(startX) + float64(x-startX)*k))
		stepY := int(math.Round(float64(startY) + float64(y-startY)*k))

		curX, curY, err := pos.Position()
		if err != nil {
			return fmt.Errorf("read position at step %d: %w", i, err)
		}
		if err := emitDelta(dev, stepX-curX, stepY-curY); err != nil {
			return fmt.Errorf("emit motion at step %d: %w", i, err)
		}
		if perStep > 0 {
			time.Sleep(perStep)
		}
	}

	for range correctionIters {
		curX, curY, err := pos.Position()
		if err != nil {
			return fmt.Errorf("read position during correction: %w", err)
		}
		dx, dy := x-curX, y-curY
		if abs(dx) <= tolerance && abs(dy) <= tolerance {
			break
		}
		if err := emitDelta(dev, dx, dy); err != nil {
			return fmt.Errorf("emit correction: %w", err)
		}
		time.Sleep(correctionSettle)
	}

	return nil
}

// emitDelta writes one clamped relative motion followed by a sync marker.
// Zero deltas are skipped but the sync is still emitted.
func emitDelta(dev Device, dx, dy int) error {
	mx, my := clampDelta(dx), clampDelta(dy)
	if mx != 0 || my != 0 {
		if err := dev.MoveRelative(mx, my); err != nil {
			return err
		}
	}
	return dev.Sync()
}

// click emits press, settle, release, each with its own sync marker.
func click(dev Device, button Button) error {
	if err := dev.Button(button, true); err != nil {
		return err
	}
	if err := dev.Sync(); err != nil {
		return err
	}
	time.Sleep(10 * time.Millisecond)
	if err := dev.Button(button, false); err != nil {
		return err
	}
	return dev.Sync()
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
