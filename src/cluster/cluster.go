// Package cluster groups raw OCR word boxes into spatially coherent text
// chunks and partitions the chunks into vertically separated groups.
package cluster

import (
	"sort"
	"strings"

	"screen-answer-clicker/src/geometry"
)

// WordBox is a single OCR word with its bounding box. Produced by the OCR
// layer and consumed only here.
type WordBox struct {
	Text string
	X    int
	Y    int
	W    int
	H    int
}

func (b WordBox) rect() geometry.Rect {
	return geometry.New(b.X, b.Y, b.W, b.H)
}

// TextChunk is a merged cluster of word boxes. Text is the space-joined word
// texts, BBox the union bounding box, GroupID the vertical group the chunk
// belongs to (1-based, non-decreasing over the y-sorted chunk list).
type TextChunk struct {
	Text    string
	BBox    geometry.Rect
	GroupID int
}

// Config holds the clustering thresholds.
type Config struct {
	// XThresh and YThresh are the maximum separating gaps (pixels) on each
	// axis for two boxes to merge. Both must hold, not either.
	XThresh int
	YThresh int
	// GroupYThresh is the vertical gap between consecutive y-sorted chunks
	// that starts a new group.
	GroupYThresh int
	// ReadingOrder joins chunk words sorted by (y, x) instead of merge
	// discovery order. Discovery order is the default for compatibility
	// with the historical output.
	ReadingOrder bool
}

// DefaultConfig mirrors the thresholds the answer pipeline uses.
func DefaultConfig() Config {
	return Config{XThresh: 20, YThresh: 4, GroupYThresh: 35}
}

// gaps returns the separating gap between two boxes along each axis: the
// positive distance between near edges, or 0 when the boxes overlap on that
// axis.
func gaps(a, b WordBox) (xGap, yGap int) {
	xGap = max(b.X-(a.X+a.W), a.X-(b.X+b.W), 0)
	yGap = max(b.Y-(a.Y+a.H), a.Y-(b.Y+b.H), 0)
	return xGap, yGap
}

func isClose(a, b WordBox, cfg Config) bool {
	xGap, yGap := gaps(a, b)
	return xGap <= cfg.XThresh && yGap <= cfg.YThresh
}

// Cluster merges word boxes into chunks (transitive closure under the
// closeness relation), sorts the chunks by top edge and assigns group ids.
// Every input box ends up in exactly one chunk. Words with empty text after
// trimming are skipped. An empty input yields an empty, non-nil slice.
func Cluster(words []WordBox, cfg Config) []TextChunk {
	boxes := make([]WordBox, 0, len(words))
	for _, w := range words {
		if strings.TrimSpace(w.Text) == "" {
			continue
		}
		boxes = append(boxes, w)
	}

	// Visited array over an immutable box slice instead of mutable flags on
	// shared records.
	visited := make([]bool, len(boxes))
	chunks := make([]TextChunk, 0, len(boxes))

	for i := range boxes {
		if visited[i] {
			continue
		}
		visited[i] = true
		member := []int{i}
		bbox := boxes[i].rect()

		// Breadth-first expansion: any unvisited box close to a box already
		// pulled from the queue joins the chunk.
		queue := []int{i}
		for len(queue) > 0 {
			cur := queue[0]
			queue = queue[1:]
			for j := range boxes {
				if visited[j] || !isClose(boxes[cur], boxes[j], cfg) {
					continue
				}
				visited[j] = true
				member = append(member, j)
				bbox = bbox.Union(boxes[j].rect())
				queue = append(queue, j)
			}
		}

		if cfg.ReadingOrder {
			sort.SliceStable(member, func(a, b int) bool {
				if boxes[member[a]].Y != boxes[member[b]].Y {
					return boxes[member[a]].Y < boxes[member[b]].Y
				}
				return boxes[member[a]].X < boxes[member[b]].X
			})
		}
		texts := make([]string, len(member))
		for k, idx := range member {
			texts[k] = boxes[idx].Text
		}
		chunks = append(chunks, TextChunk{Text: strings.Join(texts, " "), BBox: bbox})
	}

	return Group(chunks, cfg.GroupYThresh)
}

// Group sorts chunks by bounding-box top edge and assigns group ids. It is
// shared by chunk mode and line mode, which both group their results the
// same way.
func Group(chunks []TextChunk, groupYThresh int) []TextChunk {
	sort.SliceStable(chunks, func(a, b int) bool {
		return chunks[a].BBox.Y < chunks[b].BBox.Y
	})
	assignGroups(chunks, groupYThresh)
	return chunks
}

// assignGroups walks the y-sorted chunks and starts a new group whenever the
// vertical gap between consecutive top edges exceeds the threshold. Ids start
// at 1.
func assignGroups(chunks []TextChunk, groupYThresh int) {
	groupID := 0
	lastY := 0
	for i := range chunks {
		y := chunks[i].BBox.Y
		if groupID == 0 || y-lastY > groupYThresh {
			groupID++
		}
		chunks[i].GroupID = groupID
		lastY = y
	}
}
