package domain

type AdjustmentKey string

const (
	KeyCropArea        AdjustmentKey = "crop_area"
	KeyColorSaturation AdjustmentKey = "color_saturation"
	KeyBrightness      AdjustmentKey = "brightness"
	KeyContrast        AdjustmentKey = "contrast"
)

// ImageAdjustments is the pending edit state of one asset.
// Brightness and contrast are display-only filters and never leave the editor.
type ImageAdjustments struct {
	CropArea        float64       `json:"cropArea"`
	ColorSaturation float64       `json:"colorSaturation"`
	Brightness      float64       `json:"brightness"`
	Contrast        float64       `json:"contrast"`
	CropBox         Rect          `json:"cropBox"`
	TextOverlays    []TextOverlay `json:"textOverlays"`
	LogoOverlays    []LogoOverlay `json:"logoOverlays"`
}

// Clone returns a deep copy, overlays included.
func (a ImageAdjustments) Clone() ImageAdjustments {
	out := a
	out.TextOverlays = append([]TextOverlay(nil), a.TextOverlays...)
	out.LogoOverlays = append([]LogoOverlay(nil), a.LogoOverlays...)
	if out.TextOverlays == nil {
		out.TextOverlays = []TextOverlay{}
	}
	if out.LogoOverlays == nil {
		out.LogoOverlays = []LogoOverlay{}
	}
	return out
}
