package target

import (
	"errors"
	"testing"

	"screen-answer-clicker/src/geometry"
)

func TestParseRule(t *testing.T) {
	cases := []struct {
		in   string
		want Rule
	}{
		{"random", RuleRandom},
		{"rand", RuleRandom},
		{"RANDOM", RuleRandom},
		{"left-middle", RuleLeftMiddle},
		{"left_middle", RuleLeftMiddle},
		{"leftmid", RuleLeftMiddle},
	}
	for _, c := range cases {
		got, err := ParseRule(c.in)
		if err != nil || got != c.want {
			t.Errorf("ParseRule(%q) = (%v, %v), want %v", c.in, got, err, c.want)
		}
	}
	if _, err := ParseRule("center"); !errors.Is(err, ErrUnknownRule) {
		t.Errorf("ParseRule(center) error = %v, want ErrUnknownRule", err)
	}
}

func TestSelectPointLeftMiddle(t *testing.T) {
	x, y, err := SelectPoint(geometry.Rect{X: 100, Y: 100, W: 50, H: 40}, Options{
		Rule:   RuleLeftMiddle,
		Margin: 5,
	})
	if err != nil {
		t.Fatal(err)
	}
	if x != 105 || y != 120 {
		t.Fatalf("point = (%d,%d), want (105,120)", x, y)
	}
}

func TestSelectPointEmptyRegion(t *testing.T) {
	for _, r := range []geometry.Rect{
		{X: 10, Y: 10, W: 0, H: 5},
		{X: 10, Y: 10, W: 5, H: 0},
		{X: 10, Y: 10, W: -5, H: 5},
	} {
		if _, _, err := SelectPoint(r, Options{Rule: RuleRandom}); !errors.Is(err, ErrEmptyRegion) {
			t.Errorf("SelectPoint(%v) error = %v, want ErrEmptyRegion", r, err)
		}
	}
}

func TestSelectPointRandomInsideInset(t *testing.T) {
	rect := geometry.Rect{X: 100, Y: 100, W: 50, H: 40}
	for i := 0; i < 200; i++ {
		x, y, err := SelectPoint(rect, Options{Rule: RuleRandom, Margin: 5})
		if err != nil {
			t.Fatal(err)
		}
		if x < 105 || x > 144 || y < 105 || y > 134 {
			t.Fatalf("point (%d,%d) outside inset bounds", x, y)
		}
	}
}

func TestSelectPointSeededDeterminism(t *testing.T) {
	rect := geometry.Rect{X: 0, Y: 0, W: 300, H: 200}
	seed := int64(42)
	x1, y1, err := SelectPoint(rect, Options{Rule: RuleRandom, Margin: 2, Seed: &seed})
	if err != nil {
		t.Fatal(err)
	}
	x2, y2, err := SelectPoint(rect, Options{Rule: RuleRandom, Margin: 2, Seed: &seed})
	if err != nil {
		t.Fatal(err)
	}
	if x1 != x2 || y1 != y2 {
		t.Fatalf("seeded points differ: (%d,%d) vs (%d,%d)", x1, y1, x2, y2)
	}
}

func TestSelectPointOversizedMarginCollapses(t *testing.T) {
	rect := geometry.Rect{X: 10, Y: 10, W: 4, H: 4}
	x, y, err := SelectPoint(rect, Options{Rule: RuleRandom, Margin: 100})
	if err != nil {
		t.Fatal(err)
	}
	if x != 12 || y != 12 {
		t.Fatalf("point = (%d,%d), want midpoint (12,12)", x, y)
	}
}

func TestSelectPointNegativeMarginTreatedAsZero(t *testing.T) {
	rect := geometry.Rect{X: 0, Y: 0, W: 10, H: 10}
	for i := 0; i < 100; i++ {
		x, y, err := SelectPoint(rect, Options{Rule: RuleRandom, Margin: -3})
		if err != nil {
			t.Fatal(err)
		}
		if x < 0 || x > 9 || y < 0 || y > 9 {
			t.Fatalf("point (%d,%d) outside rect", x, y)
		}
	}
}

func TestSelectPointUnknownRule(t *testing.T) {
	if _, _, err := SelectPoint(geometry.Rect{W: 10, H: 10}, Options{Rule: "corner"}); !errors.Is(err, ErrUnknownRule) {
		t.Fatalf("error = %v, want ErrUnknownRule", err)
	}
}
