package ocr

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	_ "image/jpeg"
	"image/png"
	"os"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"screen-answer-clicker/src/cluster"
)

var outlineColor = color.RGBA{R: 0, G: 255, B: 0, A: 255}

const (
	outlineWidth = 2
	labelTextMax = 30
)

// Annotate draws each chunk's bounding box and a "[G<id>] <text>" label onto
// a copy of the source image and writes it as PNG to outPath.
func Annotate(imagePath, outPath string, chunks []cluster.TextChunk) error {
	src, err := loadImage(imagePath)
	if err != nil {
		return err
	}

	canvas := image.NewRGBA(src.Bounds())
	draw.Draw(canvas, canvas.Bounds(), src, src.Bounds().Min, draw.Src)

	for _, c := range chunks {
		r := c.BBox.ImageRect()
		drawOutline(canvas, r)
		drawLabel(canvas, r, labelFor(c))
	}

	f, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("create %s: %w", outPath, err)
	}
	defer f.Close()
	if err := png.Encode(f, canvas); err != nil {
		return fmt.Errorf("encode annotated PNG: %w", err)
	}
	return nil
}

func labelFor(c cluster.TextChunk) string {
	text := c.Text
	if len(text) > labelTextMax {
		text = text[:labelTextMax]
	}
	return fmt.Sprintf("[G%d] %s", c.GroupID, text)
}

func loadImage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open image %s: %w", path, err)
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode image %s: %w", path, err)
	}
	return img, nil
}

func drawOutline(canvas *image.RGBA, r image.Rectangle) {
	r = r.Intersect(canvas.Bounds())
	if r.Empty() {
		return
	}
	for w := 0; w < outlineWidth; w++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			setIfInside(canvas, x, r.Min.Y+w)
			setIfInside(canvas, x, r.Max.Y-1-w)
		}
		for y := r.Min.Y; y < r.Max.Y; y++ {
			setIfInside(canvas, r.Min.X+w, y)
			setIfInside(canvas, r.Max.X-1-w, y)
		}
	}
}

func setIfInside(canvas *image.RGBA, x, y int) {
	if image.Pt(x, y).In(canvas.Bounds()) {
		canvas.SetRGBA(x, y, outlineColor)
	}
}

// drawLabel places the label just above the box, clamped to the top of the
// image.
func drawLabel(canvas *image.RGBA, r image.Rectangle, label string) {
	y := r.Min.Y - 2
	if y-basicfont.Face7x13.Ascent < canvas.Bounds().Min.Y {
		y = canvas.Bounds().Min.Y + basicfont.Face7x13.Ascent
	}
	d := font.Drawer{
		Dst:  canvas,
		Src:  image.NewUniform(outlineColor),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(r.Min.X, y),
	}
	d.DrawString(label)
}
