// Package click composes point selection and pointer actuation: pick a point
// inside a rectangle, then move-and-click it.
package click

import (
	"log"
	"time"

	"screen-answer-clicker/src/geometry"
	"screen-answer-clicker/src/pointer"
	"screen-answer-clicker/src/target"
)

// Options configure one click.
type Options struct {
	Rule         target.Rule
	Margin       int
	Seed         *int64
	Button       pointer.Button
	Backend      pointer.Backend
	MoveDuration time.Duration
	MoveSteps    int
	// DryRun selects the point and reports it without touching the
	// actuation channel.
	DryRun bool
	// Actuator overrides backend construction, used by tests and callers
	// that hold a preconfigured actuator.
	Actuator pointer.Actuator
}

// DefaultOptions mirrors the answer pipeline's click settings.
func DefaultOptions() Options {
	return Options{
		Rule:         target.RuleRandom,
		Margin:       2,
		Button:       pointer.ButtonLeft,
		Backend:      pointer.BackendAuto,
		MoveDuration: 100 * time.Millisecond,
		MoveSteps:    12,
	}
}

// Rect picks a point inside rect per opts and clicks it. Returns the chosen
// point. Validation failures (empty rect, unknown rule or backend) are
// reported before any side effect.
func Rect(rect geometry.Rect, opts Options) (x, y int, err error) {
	x, y, err = target.SelectPoint(rect, target.Options{
		Rule:   opts.Rule,
		Margin: opts.Margin,
		Seed:   opts.Seed,
	})
	if err != nil {
		return 0, 0, err
	}

	if opts.DryRun {
		log.Printf("dry-run: rect=%v rule=%q -> (%d,%d)", rect, opts.Rule, x, y)
		return x, y, nil
	}

	act := opts.Actuator
	if act == nil {
		act, err = pointer.New(opts.Backend, pointer.Options{
			MoveDuration: opts.MoveDuration,
			MoveSteps:    opts.MoveSteps,
		})
		if err != nil {
			return 0, 0, err
		}
	}

	if err := act.MoveAndClick(x, y, opts.Button); err != nil {
		return 0, 0, err
	}
	return x, y, nil
}
