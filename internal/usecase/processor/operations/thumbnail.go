package operations

import (
	"fmt"
	"image"

	"creative-editor/internal/domain"
)

// Thumbnailer renders square previews: the centered square of the shorter
// side, scaled to size.
type Thumbnailer struct {
	size    int
	quality int
}

func NewThumbnailer(size, quality int) *Thumbnailer {
	if size <= 0 {
		size = domain.DefaultThumbnailSize
	}
	if quality <= 0 {
		quality = domain.DefaultJPEGQuality
	}
	return &Thumbnailer{size: size, quality: quality}
}

func (t *Thumbnailer) Size() int {
	return t.size
}

func (t *Thumbnailer) Render(img image.Image) ([]byte, error) {
	bounds := img.Bounds()
	if bounds.Empty() {
		return nil, fmt.Errorf("cannot thumbnail an empty image")
	}

	data, _, err := Encode(t.cropAndResize(img), string(domain.FormatJPEG), t.quality)
	if err != nil {
		return nil, fmt.Errorf("failed to encode thumbnail: %w", err)
	}
	return data, nil
}

func (t *Thumbnailer) cropAndResize(img image.Image) image.Image {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()

	side := min(w, h)
	x := bounds.Min.X + (w-side)/2
	y := bounds.Min.Y + (h-side)/2

	square := Crop(img, image.Rect(x, y, x+side, y+side))
	return Resize(square, t.size, t.size)
}
