package processor

import (
	"fmt"
	"image"
	"math"

	"creative-editor/internal/domain"
	"creative-editor/internal/usecase/processor/operations"

	"github.com/wb-go/wbf/zlog"
)

// LogoImage pairs a logo overlay with its decoded image.
type LogoImage struct {
	Overlay domain.LogoOverlay
	Image   image.Image
}

// Compositor renders the local composite: the base image at native asset
// size, cut to the crop box, with logos and texts drawn relative to the crop
// origin. A failing overlay is logged and skipped.
type Compositor struct {
	text   *operations.TextDrawer
	logger *zlog.Zerolog
}

func NewCompositor(logger *zlog.Zerolog) (*Compositor, error) {
	text, err := operations.NewTextDrawer()
	if err != nil {
		return nil, err
	}
	return &Compositor{text: text, logger: logger}, nil
}

// Composite returns the rendered PNG.
func (c *Compositor) Composite(base image.Image, dims domain.Dimensions, adj domain.ImageAdjustments, logos []LogoImage) ([]byte, error) {
	if !dims.Valid() {
		return nil, ErrInvalidCanvas
	}

	canvas := operations.Resize(base, dims.Width, dims.Height)

	crop := toRect(adj.CropBox)
	if crop.Empty() {
		crop = canvas.Bounds()
	}
	out := operations.Crop(canvas, crop)
	origin := crop.Intersect(canvas.Bounds()).Min

	for _, l := range logos {
		o := l.Overlay
		rect := image.Rect(
			round(o.X)-origin.X,
			round(o.Y)-origin.Y,
			round(o.X+o.Width)-origin.X,
			round(o.Y+o.Height)-origin.Y,
		)
		if l.Image == nil || rect.Empty() {
			c.logger.Warn().Str("logo_id", o.ID).Msg("Logo draw skipped")
			continue
		}
		operations.DrawLogo(out, l.Image, rect, o.Opacity)
	}

	for _, t := range adj.TextOverlays {
		color := t.Color
		if color == "" {
			color = domain.DefaultTextColor
		}
		size := math.Max(domain.MinFontSize, math.Round(t.FontSize))
		pt := image.Pt(round(t.X)-origin.X, round(t.Y)-origin.Y)

		if err := c.text.Draw(out, t.Text, t.PrimaryFamily(), size, color, pt); err != nil {
			c.logger.Warn().Err(err).Str("text_id", t.ID).Msg("Text draw failed")
		}
	}

	data, _, err := operations.Encode(out, string(domain.FormatPNG), 0)
	if err != nil {
		return nil, fmt.Errorf("failed to encode composite: %w", err)
	}
	return data, nil
}

func toRect(r domain.Rect) image.Rectangle {
	return image.Rect(round(r.X), round(r.Y), round(r.Right()), round(r.Bottom()))
}

func round(v float64) int {
	return int(math.Round(v))
}
