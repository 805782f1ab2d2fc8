// clickbox clicks a point inside a screen-space bounding box. It is the
// standalone counterpart to the answer pipeline's click stage, useful for
// testing pointer backends and targeting rules from the shell.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"screen-answer-clicker/src/click"
	"screen-answer-clicker/src/geometry"
	"screen-answer-clicker/src/pointer"
	"screen-answer-clicker/src/target"
)

func main() {
	var (
		bbox         string
		rule         string
		button       string
		backend      string
		margin       int
		seed         int64
		seedSet      bool
		moveDuration time.Duration
		moveSteps    int
		dryRun       bool
	)

	root := &cobra.Command{
		Use:   "clickbox --bbox x,y,w,h",
		Short: "Move the pointer into a bounding box and click",
		Long: `clickbox picks a point inside the given bounding box, glides the
pointer there with drift correction, and clicks. The box is given as
"x,y,w,h" (brackets and spaces tolerated).`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			rect, err := geometry.Parse(bbox)
			if err != nil {
				return err
			}

			opts := click.DefaultOptions()
			if opts.Rule, err = target.ParseRule(rule); err != nil {
				return err
			}
			if opts.Button, err = pointer.ParseButton(button); err != nil {
				return err
			}
			if opts.Backend, err = pointer.ParseBackend(backend); err != nil {
				return err
			}
			opts.Margin = margin
			opts.MoveDuration = moveDuration
			opts.MoveSteps = moveSteps
			opts.DryRun = dryRun
			seedSet = cmd.Flags().Changed("seed")
			if seedSet {
				opts.Seed = &seed
			}

			x, y, err := click.Rect(rect, opts)
			if err != nil {
				return err
			}
			fmt.Printf("clicked (%d, %d) in %s\n", x, y, rect)
			return nil
		},
	}

	root.Flags().StringVar(&bbox, "bbox", "", `bounding box as "x,y,w,h" (required)`)
	root.Flags().StringVar(&rule, "rule", "random", "target rule: random or left-middle")
	root.Flags().StringVar(&button, "button", "left", "mouse button: left, right or middle")
	root.Flags().StringVar(&backend, "backend", "auto", "pointer backend: auto, uinput or ydotool")
	root.Flags().IntVar(&margin, "margin", 2, "inset from the box edges in pixels")
	root.Flags().Int64Var(&seed, "seed", 0, "seed for the random rule (deterministic when set)")
	root.Flags().DurationVar(&moveDuration, "move-duration", 100*time.Millisecond, "pointer glide duration")
	root.Flags().IntVar(&moveSteps, "move-steps", 12, "pointer glide step count")
	root.Flags().BoolVar(&dryRun, "dry-run", false, "report the chosen point without moving or clicking")
	_ = root.MarkFlagRequired("bbox")

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}
