package domain

type OverlayKind string

const (
	OverlayText OverlayKind = "text"
	OverlayLogo OverlayKind = "logo"
)

// OverlayEdit is implemented by every overlay entry of an EditPayload.
type OverlayEdit interface {
	OverlayKind() OverlayKind
}

// NormalizedCrop is a crop rectangle expressed as fractions of the asset size.
type NormalizedCrop struct {
	X      float64 `json:"x" validate:"gte=0,lte=1"`
	Y      float64 `json:"y" validate:"gte=0,lte=1"`
	Width  float64 `json:"width" validate:"gte=0,lte=1"`
	Height float64 `json:"height" validate:"gte=0,lte=1"`
}

type TextOverlayEdit struct {
	Kind       OverlayKind `json:"kind" validate:"eq=text"`
	Text       string      `json:"text" validate:"required"`
	X          float64     `json:"x" validate:"gte=0,lte=1"`
	Y          float64     `json:"y" validate:"gte=0,lte=1"`
	StyleSetID *string     `json:"style_set_id"`
	StyleType  string      `json:"style_type"`
	FontSize   float64     `json:"font_size,omitempty" validate:"gte=0"`
	Color      string      `json:"color,omitempty" validate:"omitempty,hexcolor"`
	FontFamily string      `json:"font_family,omitempty"`
}

func (TextOverlayEdit) OverlayKind() OverlayKind { return OverlayText }

// LogoOverlayEdit carries a normalized position but an absolute pixel size.
type LogoOverlayEdit struct {
	Kind     OverlayKind `json:"kind" validate:"eq=logo"`
	LogoPath string      `json:"logo_path" validate:"required"`
	X        float64     `json:"x" validate:"gte=0,lte=1"`
	Y        float64     `json:"y" validate:"gte=0,lte=1"`
	Width    float64     `json:"width" validate:"gt=0"`
	Height   float64     `json:"height" validate:"gt=0"`
	Opacity  float64     `json:"opacity" validate:"gte=0,lte=1"`
}

func (LogoOverlayEdit) OverlayKind() OverlayKind { return OverlayLogo }

type EditPayload struct {
	Crop         NormalizedCrop    `json:"crop"`
	Saturation   float64           `json:"saturation" validate:"gte=-1,lte=1"`
	TextOverlays []TextOverlayEdit `json:"text_overlays" validate:"dive"`
	LogoOverlays []LogoOverlayEdit `json:"logo_overlays" validate:"dive"`
}

// Overlays lists every overlay edit, texts first.
func (p EditPayload) Overlays() []OverlayEdit {
	out := make([]OverlayEdit, 0, len(p.TextOverlays)+len(p.LogoOverlays))
	for _, t := range p.TextOverlays {
		out = append(out, t)
	}
	for _, l := range p.LogoOverlays {
		out = append(out, l)
	}
	return out
}

type ApplyEditsRequest struct {
	Edits EditPayload `json:"edits"`
}
