// Package editor holds the manual adjustment model: mapping between the
// rendered container and native image pixels, the crop box, text and logo
// overlays, and the aggregate that collects them for submission.
package editor

import "creative-editor/internal/domain"

// Axis selects the horizontal or vertical scale factor.
type Axis int

const (
	AxisX Axis = iota
	AxisY
)

// Mapper converts values between display space (the rendered container)
// and image space (native asset pixels). Axes scale independently.
type Mapper struct {
	scaleX float64
	scaleY float64
}

// NewMapper fails with ErrInvalidContainer when the container has no area;
// nothing can be rendered in that state.
func NewMapper(container domain.Size, img domain.Dimensions) (Mapper, error) {
	if container.Width <= 0 || container.Height <= 0 {
		return Mapper{}, ErrInvalidContainer
	}
	if !img.Valid() {
		return Mapper{}, ErrNoAsset
	}

	return Mapper{
		scaleX: float64(img.Width) / container.Width,
		scaleY: float64(img.Height) / container.Height,
	}, nil
}

// Scale is image pixels per display pixel along axis.
func (m Mapper) Scale(axis Axis) float64 {
	if axis == AxisY {
		return m.scaleY
	}
	return m.scaleX
}

func (m Mapper) ToImage(v float64, axis Axis) float64 {
	return v * m.Scale(axis)
}

func (m Mapper) ToDisplay(v float64, axis Axis) float64 {
	return v / m.Scale(axis)
}

func (m Mapper) PointToImage(p domain.Point) domain.Point {
	return domain.Point{X: m.ToImage(p.X, AxisX), Y: m.ToImage(p.Y, AxisY)}
}

// RectToImage maps a display-space box to image pixels, each axis on its own.
func (m Mapper) RectToImage(r domain.Rect) domain.Rect {
	return domain.Rect{
		X:      m.ToImage(r.X, AxisX),
		Y:      m.ToImage(r.Y, AxisY),
		Width:  m.ToImage(r.Width, AxisX),
		Height: m.ToImage(r.Height, AxisY),
	}
}

// RectToDisplay maps an image-space box into the rendered container.
func (m Mapper) RectToDisplay(r domain.Rect) domain.Rect {
	return domain.Rect{
		X:      m.ToDisplay(r.X, AxisX),
		Y:      m.ToDisplay(r.Y, AxisY),
		Width:  m.ToDisplay(r.Width, AxisX),
		Height: m.ToDisplay(r.Height, AxisY),
	}
}

// OverlayBox is one overlay's box in display space.
type OverlayBox struct {
	ID   string      `json:"id"`
	Rect domain.Rect `json:"rect"`
}

// Layout is the session geometry rendered into a container.
type Layout struct {
	ScaleX  float64      `json:"scaleX"`
	ScaleY  float64      `json:"scaleY"`
	CropBox domain.Rect  `json:"cropBox"`
	Texts   []OverlayBox `json:"texts"`
	Logos   []OverlayBox `json:"logos"`
}

func layout(m Mapper, adj domain.ImageAdjustments) Layout {
	l := Layout{
		ScaleX:  m.Scale(AxisX),
		ScaleY:  m.Scale(AxisY),
		CropBox: m.RectToDisplay(adj.CropBox),
		Texts:   make([]OverlayBox, 0, len(adj.TextOverlays)),
		Logos:   make([]OverlayBox, 0, len(adj.LogoOverlays)),
	}
	for _, t := range adj.TextOverlays {
		l.Texts = append(l.Texts, OverlayBox{ID: t.ID, Rect: m.RectToDisplay(t.Bounds())})
	}
	for _, lg := range adj.LogoOverlays {
		l.Logos = append(l.Logos, OverlayBox{ID: lg.ID, Rect: m.RectToDisplay(lg.Rect())})
	}
	return l
}
