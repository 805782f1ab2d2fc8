package geometry

import (
	"errors"
	"fmt"
	"image"
	"strconv"
	"strings"
)

// ErrMalformedRect is returned when a rectangle string cannot be parsed.
var ErrMalformedRect = errors.New("malformed rectangle")

// Rect is an axis-aligned rectangle in absolute screen coordinates.
// It matches the OCR bounding-box format used throughout this repo: (x, y, w, h).
type Rect struct {
	X int
	Y int
	W int
	H int
}

// New returns a rectangle from its four components.
func New(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Parse accepts the common textual bbox representations:
// "x,y,w,h" and bracketed numeric lists "[x,y,w,h]" / "(x,y,w,h)".
func Parse(s string) (Rect, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return Rect{}, fmt.Errorf("%w: empty string", ErrMalformedRect)
	}
	trimmed = strings.Trim(trimmed, "[]()")

	parts := strings.Split(trimmed, ",")
	fields := make([]string, 0, 4)
	for _, p := range parts {
		if f := strings.TrimSpace(p); f != "" {
			fields = append(fields, f)
		}
	}
	if len(fields) != 4 {
		return Rect{}, fmt.Errorf("%w: need 4 components, got %d in %q", ErrMalformedRect, len(fields), s)
	}

	vals := make([]int, 4)
	for i, f := range fields {
		n, err := strconv.Atoi(f)
		if err != nil {
			return Rect{}, fmt.Errorf("%w: component %d of %q: %v", ErrMalformedRect, i, s, err)
		}
		vals[i] = n
	}
	return Rect{X: vals[0], Y: vals[1], W: vals[2], H: vals[3]}, nil
}

// FromImageRect converts an image.Rectangle to a Rect.
func FromImageRect(r image.Rectangle) Rect {
	r = r.Canon()
	return Rect{X: r.Min.X, Y: r.Min.Y, W: r.Dx(), H: r.Dy()}
}

// ImageRect converts to the stdlib representation.
func (r Rect) ImageRect() image.Rectangle {
	n := r.Normalized()
	return image.Rect(n.X, n.Y, n.X+n.W, n.Y+n.H)
}

// Normalized clamps negative width/height to zero.
func (r Rect) Normalized() Rect {
	w, h := r.W, r.H
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	return Rect{X: r.X, Y: r.Y, W: w, H: h}
}

// IsEmpty reports whether the normalized rectangle has zero area.
func (r Rect) IsEmpty() bool {
	n := r.Normalized()
	return n.W <= 0 || n.H <= 0
}

// ClampPoint clamps (x, y) to the rectangle's inclusive pixel bounds.
func (r Rect) ClampPoint(x, y int) (int, int) {
	maxX := r.X
	if r.W > 0 {
		maxX = r.X + r.W - 1
	}
	maxY := r.Y
	if r.H > 0 {
		maxY = r.Y + r.H - 1
	}
	if x < r.X {
		x = r.X
	}
	if x > maxX {
		x = maxX
	}
	if y < r.Y {
		y = r.Y
	}
	if y > maxY {
		y = maxY
	}
	return x, y
}

// Union returns the bounding box of r and other.
func (r Rect) Union(other Rect) Rect {
	a := r.Normalized()
	b := other.Normalized()
	x1 := min(a.X, b.X)
	y1 := min(a.Y, b.Y)
	x2 := max(a.X+a.W, b.X+b.W)
	y2 := max(a.Y+a.H, b.Y+b.H)
	return Rect{X: x1, Y: y1, W: x2 - x1, H: y2 - y1}
}

func (r Rect) String() string {
	return fmt.Sprintf("(%d,%d,%d,%d)", r.X, r.Y, r.W, r.H)
}
