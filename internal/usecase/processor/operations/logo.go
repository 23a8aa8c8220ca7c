package operations

import (
	"image"
	"image/color"
	"image/draw"
	"math"
)

// DrawLogo scales logo into rect on dst and blends it with the given opacity.
func DrawLogo(dst draw.Image, logo image.Image, rect image.Rectangle, opacity float64) {
	if rect.Empty() || opacity <= 0 {
		return
	}

	scaled := Resize(logo, rect.Dx(), rect.Dy())
	alpha := uint8(math.Round(math.Min(opacity, 1) * 255))
	mask := image.NewUniform(color.Alpha{A: alpha})

	draw.DrawMask(dst, rect, scaled, image.Point{}, mask, image.Point{}, draw.Over)
}
