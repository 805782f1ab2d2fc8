package cluster

import (
	"testing"

	"screen-answer-clicker/src/geometry"
)

func TestGaps(t *testing.T) {
	a := WordBox{X: 10, Y: 10, W: 20, H: 10}
	b := WordBox{X: 40, Y: 10, W: 20, H: 10}
	xGap, yGap := gaps(a, b)
	if xGap != 10 || yGap != 0 {
		t.Fatalf("gaps = (%d,%d), want (10,0)", xGap, yGap)
	}
	// Symmetric.
	xGap, yGap = gaps(b, a)
	if xGap != 10 || yGap != 0 {
		t.Fatalf("reversed gaps = (%d,%d), want (10,0)", xGap, yGap)
	}
	// Overlapping boxes have zero gap on both axes.
	c := WordBox{X: 15, Y: 12, W: 20, H: 10}
	if xGap, yGap := gaps(a, c); xGap != 0 || yGap != 0 {
		t.Fatalf("overlap gaps = (%d,%d), want (0,0)", xGap, yGap)
	}
}

func TestClusterMergesWithinThresholds(t *testing.T) {
	words := []WordBox{
		{Text: "Paris", X: 10, Y: 10, W: 30, H: 10},
		{Text: "France", X: 50, Y: 10, W: 30, H: 10},
	}
	chunks := Cluster(words, Config{XThresh: 20, YThresh: 4, GroupYThresh: 35})
	if len(chunks) != 1 {
		t.Fatalf("got %d chunks, want 1", len(chunks))
	}
	if chunks[0].Text != "Paris France" {
		t.Errorf("Text = %q, want %q", chunks[0].Text, "Paris France")
	}
	want := geometry.Rect{X: 10, Y: 10, W: 70, H: 10}
	if chunks[0].BBox != want {
		t.Errorf("BBox = %v, want %v", chunks[0].BBox, want)
	}
	if chunks[0].GroupID != 1 {
		t.Errorf("GroupID = %d, want 1", chunks[0].GroupID)
	}
}

func TestClusterSplitsOnTightThreshold(t *testing.T) {
	words := []WordBox{
		{Text: "Paris", X: 10, Y: 10, W: 30, H: 10},
		{Text: "France", X: 50, Y: 10, W: 30, H: 10},
	}
	chunks := Cluster(words, Config{XThresh: 2, YThresh: 4, GroupYThresh: 35})
	if len(chunks) != 2 {
		t.Fatalf("got %d chunks, want 2", len(chunks))
	}
}

func TestClusterGapAtThresholdMerges(t *testing.T) {
	// Gap exactly equal to the threshold still merges; one pixel more splits.
	base := WordBox{Text: "a", X: 0, Y: 0, W: 10, H: 10}
	atThresh := WordBox{Text: "b", X: 30, Y: 0, W: 10, H: 10}  // x gap 20
	past := WordBox{Text: "c", X: 31, Y: 0, W: 10, H: 10}      // x gap 21
	cfg := Config{XThresh: 20, YThresh: 4, GroupYThresh: 35}

	if got := Cluster([]WordBox{base, atThresh}, cfg); len(got) != 1 {
		t.Errorf("gap == threshold: got %d chunks, want 1", len(got))
	}
	if got := Cluster([]WordBox{base, past}, cfg); len(got) != 2 {
		t.Errorf("gap == threshold+1: got %d chunks, want 2", len(got))
	}
}

func TestClusterRequiresBothAxes(t *testing.T) {
	// Close in x but far in y must not merge.
	words := []WordBox{
		{Text: "a", X: 0, Y: 0, W: 10, H: 10},
		{Text: "b", X: 12, Y: 100, W: 10, H: 10},
	}
	if got := Cluster(words, DefaultConfig()); len(got) != 2 {
		t.Fatalf("got %d chunks, want 2", len(got))
	}
}

func TestClusterTransitiveClosure(t *testing.T) {
	// a-b and b-c are close, a-c is not; all three still form one chunk.
	words := []WordBox{
		{Text: "a", X: 0, Y: 0, W: 10, H: 10},
		{Text: "b", X: 25, Y: 0, W: 10, H: 10},
		{Text: "c", X: 50, Y: 0, W: 10, H: 10},
	}
	chunks := Cluster(words, Config{XThresh: 15, YThresh: 4, GroupYThresh: 35})
	if len(chunks) != 1 {
		t.Fatalf("got %d chunks, want 1", len(chunks))
	}
	if chunks[0].Text != "a b c" {
		t.Errorf("Text = %q, want %q", chunks[0].Text, "a b c")
	}
}

func TestClusterSkipsBlankWords(t *testing.T) {
	words := []WordBox{
		{Text: "  ", X: 0, Y: 0, W: 10, H: 10},
		{Text: "kept", X: 100, Y: 0, W: 10, H: 10},
	}
	chunks := Cluster(words, DefaultConfig())
	if len(chunks) != 1 || chunks[0].Text != "kept" {
		t.Fatalf("chunks = %+v", chunks)
	}
}

func TestClusterEmptyInput(t *testing.T) {
	chunks := Cluster(nil, DefaultConfig())
	if chunks == nil || len(chunks) != 0 {
		t.Fatalf("want empty non-nil slice, got %v", chunks)
	}
}

func TestClusterReadingOrder(t *testing.T) {
	// Discovery order starts from the first input; reading order resorts
	// the member words by (y, x).
	words := []WordBox{
		{Text: "second", X: 30, Y: 0, W: 10, H: 10},
		{Text: "first", X: 10, Y: 0, W: 10, H: 10},
	}
	cfg := Config{XThresh: 20, YThresh: 4, GroupYThresh: 35}

	chunks := Cluster(words, cfg)
	if chunks[0].Text != "second first" {
		t.Errorf("discovery order Text = %q, want %q", chunks[0].Text, "second first")
	}

	cfg.ReadingOrder = true
	chunks = Cluster(words, cfg)
	if chunks[0].Text != "first second" {
		t.Errorf("reading order Text = %q, want %q", chunks[0].Text, "first second")
	}
}

func TestGroupAssignsIDs(t *testing.T) {
	chunks := []TextChunk{
		{Text: "q", BBox: geometry.Rect{X: 0, Y: 200, W: 10, H: 10}},
		{Text: "a", BBox: geometry.Rect{X: 0, Y: 10, W: 10, H: 10}},
		{Text: "b", BBox: geometry.Rect{X: 0, Y: 30, W: 10, H: 10}},
	}
	got := Group(chunks, 35)

	// Sorted by top edge.
	wantTexts := []string{"a", "b", "q"}
	wantGroups := []int{1, 1, 2}
	for i := range got {
		if got[i].Text != wantTexts[i] {
			t.Errorf("chunk %d text = %q, want %q", i, got[i].Text, wantTexts[i])
		}
		if got[i].GroupID != wantGroups[i] {
			t.Errorf("chunk %d group = %d, want %d", i, got[i].GroupID, wantGroups[i])
		}
	}
}

func TestGroupIDsStartAtOneAndNeverDecrease(t *testing.T) {
	chunks := []TextChunk{
		{Text: "a", BBox: geometry.Rect{Y: 0, W: 1, H: 1}},
		{Text: "b", BBox: geometry.Rect{Y: 100, W: 1, H: 1}},
		{Text: "c", BBox: geometry.Rect{Y: 100, W: 1, H: 1}},
		{Text: "d", BBox: geometry.Rect{Y: 300, W: 1, H: 1}},
	}
	got := Group(chunks, 35)
	if got[0].GroupID != 1 {
		t.Fatalf("first group id = %d, want 1", got[0].GroupID)
	}
	for i := 1; i < len(got); i++ {
		if got[i].GroupID < got[i-1].GroupID {
			t.Fatalf("group ids decreased at %d: %d -> %d", i, got[i-1].GroupID, got[i].GroupID)
		}
	}
	if got[3].GroupID != 3 {
		t.Errorf("last group id = %d, want 3", got[3].GroupID)
	}
}
