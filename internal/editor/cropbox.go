package editor

import (
	"math"

	"creative-editor/internal/domain"
)

// DragCrop moves the box to a display-space position, keeping its size and
// the whole box inside the image.
func DragCrop(box domain.Rect, pos domain.Point, m Mapper, dims domain.Dimensions) domain.Rect {
	p := m.PointToImage(pos)
	box.X = clamp(p.X, 0, float64(dims.Width)-box.Width)
	box.Y = clamp(p.Y, 0, float64(dims.Height)-box.Height)
	return box
}

// ResizeCrop maps a display-space size and position to image space
// independently, then fits the result inside the image.
func ResizeCrop(size domain.Size, pos domain.Point, m Mapper, dims domain.Dimensions) domain.Rect {
	return fitRect(m.RectToImage(displayRect(size, pos)), dims, domain.MinCropSize)
}

func displayRect(size domain.Size, pos domain.Point) domain.Rect {
	return domain.Rect{X: pos.X, Y: pos.Y, Width: size.Width, Height: size.Height}
}

// CropFromPercentage returns a square of pct percent of the shorter image
// side, centered on the image.
func CropFromPercentage(pct float64, dims domain.Dimensions) domain.Rect {
	pct = clamp(pct, domain.MinCropPercent, domain.MaxCropPercent)
	w, h := float64(dims.Width), float64(dims.Height)
	shorter := math.Min(w, h)
	size := math.Max(shorter*pct/100, math.Min(domain.MinCropSize, shorter))

	return domain.Rect{
		X:      math.Max(0, (w-size)/2),
		Y:      math.Max(0, (h-size)/2),
		Width:  size,
		Height: size,
	}
}

// fitRect clamps r into the image, keeping each side at least min pixels
// (or the image side when the image is smaller).
func fitRect(r domain.Rect, dims domain.Dimensions, min float64) domain.Rect {
	w, h := float64(dims.Width), float64(dims.Height)
	minW, minH := math.Min(min, w), math.Min(min, h)

	r.X = clamp(r.X, 0, w-minW)
	r.Y = clamp(r.Y, 0, h-minH)
	r.Width = clamp(r.Width, minW, w-r.X)
	r.Height = clamp(r.Height, minH, h-r.Y)
	return r
}

// clamp bounds v to [lo, hi]; when hi < lo the result is lo.
func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(v, hi))
}

func clamp01(v float64) float64 {
	return clamp(v, 0, 1)
}
