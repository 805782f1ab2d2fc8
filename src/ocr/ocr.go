// Package ocr extracts text chunks with bounding boxes from a screenshot.
// Tesseract supplies raw word boxes; the cluster engine merges them into
// spatially coherent chunks and question groups.
package ocr

import (
	"fmt"
	"log"
	"strings"

	"github.com/otiai10/gosseract/v2"

	"screen-answer-clicker/src/cluster"
	"screen-answer-clicker/src/geometry"
)

// Mode selects how word boxes are combined.
type Mode string

const (
	// ModeChunk merges words by spatial proximity (the default).
	ModeChunk Mode = "chunk"
	// ModeLine keeps tesseract's own text lines.
	ModeLine Mode = "line"
)

// Options configure one extraction pass.
type Options struct {
	Mode    Mode
	Cluster cluster.Config
	// Visualize writes an annotated copy of the image to VisualizePath.
	// The write is explicit, so failure is an error, not best-effort.
	Visualize     bool
	VisualizePath string
}

// DefaultOptions mirrors the answer pipeline's extraction settings.
func DefaultOptions() Options {
	return Options{Mode: ModeChunk, Cluster: cluster.DefaultConfig()}
}

// ExtractChunks runs OCR on the image at path and returns grouped text
// chunks sorted by top edge. A page with no detected text yields an empty
// slice; an unreadable image or OCR failure is an error.
func ExtractChunks(imagePath string, opts Options) ([]cluster.TextChunk, error) {
	if opts.Mode == "" {
		opts.Mode = ModeChunk
	}

	var chunks []cluster.TextChunk
	switch opts.Mode {
	case ModeChunk:
		words, err := extractWords(imagePath)
		if err != nil {
			return nil, err
		}
		chunks = cluster.Cluster(words, opts.Cluster)
	case ModeLine:
		lines, err := extractLines(imagePath)
		if err != nil {
			return nil, err
		}
		chunks = cluster.Group(lines, opts.Cluster.GroupYThresh)
	default:
		return nil, fmt.Errorf("mode must be %q or %q, got %q", ModeChunk, ModeLine, opts.Mode)
	}

	log.Printf("OCR: %d chunks from %s (mode=%s)", len(chunks), imagePath, opts.Mode)

	if opts.Visualize {
		path := opts.VisualizePath
		if path == "" {
			path = "ocr_bboxes.png"
		}
		if err := Annotate(imagePath, path, chunks); err != nil {
			return nil, fmt.Errorf("write OCR visualization: %w", err)
		}
		log.Printf("OCR: saved bbox visualization to %s", path)
	}

	return chunks, nil
}

// extractWords returns one WordBox per recognized word.
func extractWords(imagePath string) ([]cluster.WordBox, error) {
	boxes, err := boundingBoxes(imagePath, gosseract.RIL_WORD)
	if err != nil {
		return nil, err
	}
	words := make([]cluster.WordBox, 0, len(boxes))
	for _, b := range boxes {
		text := strings.TrimSpace(b.Word)
		if text == "" {
			continue
		}
		r := b.Box.Canon()
		words = append(words, cluster.WordBox{
			Text: text,
			X:    r.Min.X,
			Y:    r.Min.Y,
			W:    r.Dx(),
			H:    r.Dy(),
		})
	}
	return words, nil
}

// extractLines returns one chunk per tesseract text line, ungrouped.
func extractLines(imagePath string) ([]cluster.TextChunk, error) {
	boxes, err := boundingBoxes(imagePath, gosseract.RIL_TEXTLINE)
	if err != nil {
		return nil, err
	}
	chunks := make([]cluster.TextChunk, 0, len(boxes))
	for _, b := range boxes {
		text := strings.TrimSpace(b.Word)
		if text == "" {
			continue
		}
		chunks = append(chunks, cluster.TextChunk{
			Text: text,
			BBox: geometry.FromImageRect(b.Box),
		})
	}
	return chunks, nil
}

func boundingBoxes(imagePath string, level gosseract.PageIteratorLevel) ([]gosseract.BoundingBox, error) {
	client := gosseract.NewClient()
	defer client.Close()

	if err := client.SetImage(imagePath); err != nil {
		return nil, fmt.Errorf("set OCR image %s: %w", imagePath, err)
	}
	boxes, err := client.GetBoundingBoxes(level)
	if err != nil {
		return nil, fmt.Errorf("tesseract OCR failed on %s: %w", imagePath, err)
	}
	return boxes, nil
}
