// Package answer orchestrates one full pass: capture the screen, extract
// text chunks, ask the model for the correct option, locate that option's
// bounding box and click it. Collaborators are injected so each stage can be
// exercised without a display, a tesseract install, or an API key.
package answer

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"screen-answer-clicker/src/cluster"
	"screen-answer-clicker/src/geometry"
)

// ErrNoMatches means no answer option could be located on screen.
var ErrNoMatches = errors.New("no answer option matched any text chunk")

// CaptureFunc writes a screenshot and returns its path.
type CaptureFunc func() (string, error)

// ExtractFunc runs OCR + clustering on the screenshot.
type ExtractFunc func(imagePath string) ([]cluster.TextChunk, error)

// AskFunc queries the model for the correct option texts.
type AskFunc func(ctx context.Context, imagePath string) ([]string, error)

// ClickFunc clicks inside the rectangle and returns the chosen point.
type ClickFunc func(rect geometry.Rect) (x, y int, err error)

// CopyFunc delivers text to the clipboard.
type CopyFunc func(text string) error

// Options wires one pipeline pass.
type Options struct {
	Capture CaptureFunc
	Extract ExtractFunc
	Ask     AskFunc
	Click   ClickFunc
	Copy    CopyFunc
}

// Clicked records one successfully clicked option.
type Clicked struct {
	Option string
	BBox   geometry.Rect
	X      int
	Y      int
}

// Result summarizes a find-and-click pass.
type Result struct {
	Options []string
	Clicked []Clicked
	// Missed lists options that matched no chunk even after the lookahead
	// fallback.
	Missed []string
}

// FindAndClick runs one locate-and-click pass. Options
// that cannot be located are skipped (logged and reported in Result.Missed);
// the pass fails only when nothing could be clicked, or when a stage errors.
func FindAndClick(ctx context.Context, opts Options) (Result, error) {
	if opts.Capture == nil || opts.Extract == nil || opts.Ask == nil || opts.Click == nil {
		return Result{}, errors.New("Capture, Extract, Ask and Click are required")
	}

	imagePath, err := opts.Capture()
	if err != nil {
		return Result{}, fmt.Errorf("capture screen: %w", err)
	}
	log.Printf("answer: screenshot taken: %s", imagePath)

	chunks, err := opts.Extract(imagePath)
	if err != nil {
		return Result{}, fmt.Errorf("extract text chunks: %w", err)
	}

	options, err := opts.Ask(ctx, imagePath)
	if err != nil {
		return Result{}, fmt.Errorf("query model: %w", err)
	}
	log.Printf("answer: model chose %d option(s): %q", len(options), options)

	res := Result{Options: options}
	for _, option := range options {
		bbox, ok := locateOption(chunks, option)
		if !ok {
			log.Printf("answer: no chunk matches option %q, skipping", option)
			res.Missed = append(res.Missed, option)
			continue
		}
		x, y, err := opts.Click(bbox)
		if err != nil {
			return res, fmt.Errorf("click option %q at %v: %w", option, bbox, err)
		}
		log.Printf("answer: clicked option %q at (%d,%d) in %v", option, x, y, bbox)
		res.Clicked = append(res.Clicked, Clicked{Option: option, BBox: bbox, X: x, Y: y})
	}

	if len(res.Clicked) == 0 {
		return res, ErrNoMatches
	}
	return res, nil
}

// CopyAnswer captures, asks the model, and copies the option texts to the
// clipboard instead of clicking.
func CopyAnswer(ctx context.Context, opts Options) ([]string, error) {
	if opts.Capture == nil || opts.Ask == nil || opts.Copy == nil {
		return nil, errors.New("Capture, Ask and Copy are required")
	}

	imagePath, err := opts.Capture()
	if err != nil {
		return nil, fmt.Errorf("capture screen: %w", err)
	}

	options, err := opts.Ask(ctx, imagePath)
	if err != nil {
		return nil, fmt.Errorf("query model: %w", err)
	}

	for _, option := range options {
		if err := opts.Copy(option); err != nil {
			return options, fmt.Errorf("copy option to clipboard: %w", err)
		}
	}
	return options, nil
}

// locateOption finds the chunk containing the option text. The direct pass
// is case-insensitive containment; when that fails, the lookahead pass
// combines each chunk's three successors, since multi-line options get split
// across chunks with the clickable control usually three chunks down.
func locateOption(chunks []cluster.TextChunk, option string) (geometry.Rect, bool) {
	needle := strings.ToLower(strings.TrimSpace(option))
	if needle == "" {
		return geometry.Rect{}, false
	}

	for _, c := range chunks {
		if strings.Contains(strings.ToLower(c.Text), needle) {
			return c.BBox, true
		}
	}

	for idx := range chunks {
		end := min(idx+4, len(chunks))
		if idx+3 >= len(chunks) {
			break
		}
		var parts []string
		for _, c := range chunks[idx+1 : end] {
			parts = append(parts, strings.ToLower(strings.TrimSpace(c.Text)))
		}
		if strings.Contains(strings.Join(parts, " "), needle) {
			return chunks[idx+3].BBox, true
		}
	}

	return geometry.Rect{}, false
}
