package editor

import (
	"fmt"

	"creative-editor/internal/domain"

	"github.com/go-playground/validator/v10"
)

const textStyleType = "content"

var validate = validator.New()

// Normalize converts pending adjustments into the payload of the remote
// edit endpoint: crop as fractions of the asset, saturation in [-1, 1],
// overlay positions as fractions and logo sizes in absolute pixels.
// Logos must already point at durable server paths.
func Normalize(adj domain.ImageAdjustments, asset *domain.Asset) (*domain.EditPayload, error) {
	if asset == nil || !asset.Dimensions.Valid() {
		return nil, ErrNoAsset
	}
	dims := asset.Dimensions
	if !HasChanges(adj, dims) {
		return nil, ErrNoChanges
	}

	w, h := float64(dims.Width), float64(dims.Height)

	payload := &domain.EditPayload{
		Crop:         normalizeCrop(adj.CropBox, w, h),
		Saturation:   adj.ColorSaturation / 100,
		TextOverlays: make([]domain.TextOverlayEdit, 0, len(adj.TextOverlays)),
		LogoOverlays: make([]domain.LogoOverlayEdit, 0, len(adj.LogoOverlays)),
	}

	for _, t := range adj.TextOverlays {
		payload.TextOverlays = append(payload.TextOverlays, domain.TextOverlayEdit{
			Kind:       domain.OverlayText,
			Text:       t.Text,
			X:          clamp01(t.X / w),
			Y:          clamp01(t.Y / h),
			StyleSetID: nil,
			StyleType:  textStyleType,
			FontSize:   t.FontSize,
			Color:      t.Color,
			FontFamily: t.FontFamily,
		})
	}

	for _, l := range adj.LogoOverlays {
		if l.IsLocal() {
			return nil, fmt.Errorf("%w: %s", ErrUnresolvedLogo, l.ID)
		}
		payload.LogoOverlays = append(payload.LogoOverlays, domain.LogoOverlayEdit{
			Kind:     domain.OverlayLogo,
			LogoPath: l.ImageURL,
			X:        clamp01(l.X / w),
			Y:        clamp01(l.Y / h),
			Width:    l.Width,
			Height:   l.Height,
			Opacity:  clamp01(l.Opacity),
		})
	}

	if err := validate.Struct(payload); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}
	return payload, nil
}

// normalizeCrop never lets the rectangle extend past the image edge.
func normalizeCrop(r domain.Rect, w, h float64) domain.NormalizedCrop {
	c := domain.NormalizedCrop{
		X:      clamp01(r.X / w),
		Y:      clamp01(r.Y / h),
		Width:  clamp01(r.Width / w),
		Height: clamp01(r.Height / h),
	}
	if c.X+c.Width > 1 {
		c.Width = 1 - c.X
	}
	if c.Y+c.Height > 1 {
		c.Height = 1 - c.Y
	}
	return c
}
