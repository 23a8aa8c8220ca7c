package domain

import "strings"

type TextOverlay struct {
	ID         string  `json:"id"`
	Text       string  `json:"text"`
	X          float64 `json:"x"`
	Y          float64 `json:"y"`
	FontSize   float64 `json:"fontSize"`
	Color      string  `json:"color"`
	FontFamily string  `json:"fontFamily"`
	Width      float64 `json:"width,omitempty"`
	Height     float64 `json:"height,omitempty"`
}

// Bounds returns the overlay box. Without an explicit size the box is
// approximated from the text length.
func (t TextOverlay) Bounds() Rect {
	w, h := t.Width, t.Height
	if w <= 0 {
		w = float64(len([]rune(t.Text))) * ApproxCharWidth
	}
	if h <= 0 {
		h = ApproxTextHeight
	}
	return Rect{X: t.X, Y: t.Y, Width: w, Height: h}
}

// PrimaryFamily is the first entry of a CSS-like family list ("Arial, sans-serif" -> "Arial").
func (t TextOverlay) PrimaryFamily() string {
	family := strings.TrimSpace(strings.Split(t.FontFamily, ",")[0])
	if family == "" {
		return DefaultFontFamily
	}
	return family
}

type LogoOverlay struct {
	ID       string  `json:"id"`
	ImageURL string  `json:"imageUrl"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Width    float64 `json:"width"`
	Height   float64 `json:"height"`
	Opacity  float64 `json:"opacity"`
}

func (l LogoOverlay) Rect() Rect {
	return Rect{X: l.X, Y: l.Y, Width: l.Width, Height: l.Height}
}

// IsLocal reports whether the logo still points at a staged preview blob
// rather than a durable server path.
func (l LogoOverlay) IsLocal() bool {
	return strings.HasPrefix(l.ImageURL, BlobURLPrefix)
}
