// Package target picks a click point inside a screen rectangle.
package target

import (
	"errors"
	"fmt"
	"math/rand"
	"strings"

	"screen-answer-clicker/src/geometry"
)

var (
	// ErrEmptyRegion is returned when the rectangle has zero area.
	ErrEmptyRegion = errors.New("empty region")
	// ErrUnknownRule is returned for an unrecognized placement rule.
	ErrUnknownRule = errors.New("unknown placement rule")
)

// Rule selects where inside a rectangle the point is placed.
type Rule string

const (
	// RuleRandom draws a uniform point inside the margin-inset rectangle.
	RuleRandom Rule = "random"
	// RuleLeftMiddle places the point at the inset left edge, vertically
	// centered on the outer rectangle.
	RuleLeftMiddle Rule = "left-middle"
)

// ParseRule normalizes the rule aliases the CLI historically accepted.
func ParseRule(s string) (Rule, error) {
	switch strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "_", "-") {
	case "random", "rand":
		return RuleRandom, nil
	case "left-middle", "leftmid", "left-mid", "left-middle-side":
		return RuleLeftMiddle, nil
	default:
		return "", fmt.Errorf("%w: %q (expected 'random' or 'left-middle')", ErrUnknownRule, s)
	}
}

// Options control point selection.
type Options struct {
	Rule Rule
	// Margin keeps the point away from the rectangle edges to avoid
	// misclicking borders.
	Margin int
	// Seed, when non-nil, makes the random rule reproducible.
	Seed *int64
}

// SelectPoint returns a point inside rect according to opts. The point is
// always within the rectangle's clamped bounds.
func SelectPoint(rect geometry.Rect, opts Options) (int, int, error) {
	b := rect.Normalized()
	if b.IsEmpty() {
		return 0, 0, fmt.Errorf("%w: %v", ErrEmptyRegion, rect)
	}

	margin := opts.Margin
	if margin < 0 {
		margin = 0
	}

	innerLeft := b.X + min(margin, max(b.W-1, 0))
	innerTop := b.Y + min(margin, max(b.H-1, 0))
	innerRight := b.X + max(b.W-1-margin, 0)
	innerBottom := b.Y + max(b.H-1-margin, 0)

	// A margin wider than the box collapses the inner span to the midpoint.
	if innerRight < innerLeft {
		mid := b.X + max(b.W/2, 0)
		innerLeft, innerRight = mid, mid
	}
	if innerBottom < innerTop {
		mid := b.Y + max(b.H/2, 0)
		innerTop, innerBottom = mid, mid
	}

	switch opts.Rule {
	case RuleRandom, "":
		rng := newRand(opts.Seed)
		x := innerLeft + rng.Intn(innerRight-innerLeft+1)
		y := innerTop + rng.Intn(innerBottom-innerTop+1)
		x, y = b.ClampPoint(x, y)
		return x, y, nil
	case RuleLeftMiddle:
		x := innerLeft
		y := b.Y + max(b.H/2, 0)
		x, y = b.ClampPoint(x, y)
		return x, y, nil
	default:
		return 0, 0, fmt.Errorf("%w: %q", ErrUnknownRule, opts.Rule)
	}
}

func newRand(seed *int64) *rand.Rand {
	if seed != nil {
		return rand.New(rand.NewSource(*seed))
	}
	return rand.New(rand.NewSource(rand.Int63()))
}
