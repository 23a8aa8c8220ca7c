package editor

import (
	"math"

	"creative-editor/internal/domain"
)

// OverlayHandlers is the drag/resize callback pair bound to one overlay.
type OverlayHandlers struct {
	OnDragStop   func(pos domain.Point) error
	OnResizeStop func(size domain.Size, pos domain.Point) error
}

// DragText moves a text overlay's anchor, keeping it inside the image.
func DragText(t domain.TextOverlay, pos domain.Point, m Mapper, dims domain.Dimensions) domain.TextOverlay {
	p := m.PointToImage(pos)
	t.X = clamp(p.X, 0, float64(dims.Width))
	t.Y = clamp(p.Y, 0, float64(dims.Height))
	return t
}

// ResizeText updates position and box, deriving the font size from the new height.
func ResizeText(t domain.TextOverlay, size domain.Size, pos domain.Point, m Mapper, dims domain.Dimensions) domain.TextOverlay {
	r := fitRect(m.RectToImage(displayRect(size, pos)), dims, 0)

	t.X, t.Y, t.Width, t.Height = r.X, r.Y, r.Width, r.Height
	t.FontSize = math.Max(domain.MinFontSize, r.Height*domain.FontSizePerPixel)
	return t
}

// DragLogo moves a logo, keeping the whole logo inside the image.
func DragLogo(l domain.LogoOverlay, pos domain.Point, m Mapper, dims domain.Dimensions) domain.LogoOverlay {
	p := m.PointToImage(pos)
	l.X = clamp(p.X, 0, float64(dims.Width)-l.Width)
	l.Y = clamp(p.Y, 0, float64(dims.Height)-l.Height)
	return l
}

// ResizeLogo updates position and size, never below MinOverlaySize.
func ResizeLogo(l domain.LogoOverlay, size domain.Size, pos domain.Point, m Mapper, dims domain.Dimensions) domain.LogoOverlay {
	r := fitRect(m.RectToImage(displayRect(size, pos)), dims, domain.MinOverlaySize)

	l.X, l.Y, l.Width, l.Height = r.X, r.Y, r.Width, r.Height
	return l
}

// NewTextOverlay centers text on the image, sized from the style's width percentage.
func NewTextOverlay(id, text string, style domain.TextStyle, dims domain.Dimensions) domain.TextOverlay {
	return domain.TextOverlay{
		ID:         id,
		Text:       text,
		X:          float64(dims.Width) * 0.5,
		Y:          float64(dims.Height) * 0.5,
		FontSize:   math.Max(domain.MinFontSize, math.Round(float64(dims.Width)*style.SizePct)),
		Color:      style.Color,
		FontFamily: style.CSSFamily(),
	}
}

// NewLogoOverlay places a square logo inset from the top-left corner.
func NewLogoOverlay(id, imageURL string, dims domain.Dimensions) domain.LogoOverlay {
	side := math.Min(domain.DefaultLogoMaxSize, float64(dims.Width)*domain.DefaultLogoWidthRatio)
	return domain.LogoOverlay{
		ID:       id,
		ImageURL: imageURL,
		X:        float64(dims.Width) * domain.DefaultLogoInset,
		Y:        float64(dims.Height) * domain.DefaultLogoInset,
		Width:    side,
		Height:   side,
		Opacity:  domain.DefaultLogoOpacity,
	}
}
