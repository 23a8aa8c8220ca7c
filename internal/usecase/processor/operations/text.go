package operations

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"strconv"
	"strings"

	"github.com/golang/freetype"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"
)

var shadowColor = color.RGBA{0, 0, 0, 89}

type fontVariant int

const (
	variantRegular fontVariant = iota
	variantBold
	variantItalic
	variantMono
)

// TextDrawer renders text overlays with the Go font family standing in for
// the CSS family names used by the editor.
type TextDrawer struct {
	fonts map[fontVariant]*truetype.Font
}

func NewTextDrawer() (*TextDrawer, error) {
	sources := map[fontVariant][]byte{
		variantRegular: goregular.TTF,
		variantBold:    gobold.TTF,
		variantItalic:  goitalic.TTF,
		variantMono:    gomono.TTF,
	}

	fonts := make(map[fontVariant]*truetype.Font, len(sources))
	for v, ttf := range sources {
		f, err := truetype.Parse(ttf)
		if err != nil {
			return nil, fmt.Errorf("failed to parse font: %w", err)
		}
		fonts[v] = f
	}
	return &TextDrawer{fonts: fonts}, nil
}

// Draw writes text with its top-left corner at pt, with a soft drop shadow.
func (d *TextDrawer) Draw(dst draw.Image, text, family string, size float64, hexColor string, pt image.Point) error {
	f := d.fonts[variantFor(family)]

	render := func(src image.Image, at image.Point) error {
		c := freetype.NewContext()
		c.SetDPI(72)
		c.SetFont(f)
		c.SetFontSize(size)
		c.SetClip(dst.Bounds())
		c.SetDst(dst)
		c.SetSrc(src)
		c.SetHinting(font.HintingFull)

		// freetype positions on the baseline
		_, err := c.DrawString(text, freetype.Pt(at.X, at.Y+int(size)))
		return err
	}

	if err := render(image.NewUniform(shadowColor), pt.Add(image.Pt(1, 1))); err != nil {
		return fmt.Errorf("failed to draw text shadow: %w", err)
	}
	if err := render(image.NewUniform(ParseHexColor(hexColor)), pt); err != nil {
		return fmt.Errorf("failed to draw text: %w", err)
	}
	return nil
}

func variantFor(family string) fontVariant {
	switch strings.ToLower(strings.TrimSpace(family)) {
	case "impact", "arial black", "helvetica", "bold":
		return variantBold
	case "georgia", "times", "times new roman", "serif", "cursive":
		return variantItalic
	case "courier", "courier new", "consolas", "monospace":
		return variantMono
	default:
		return variantRegular
	}
}

// ParseHexColor accepts #rgb and #rrggbb; anything else is white.
func ParseHexColor(hex string) color.RGBA {
	hex = strings.TrimPrefix(strings.TrimSpace(hex), "#")
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) != 6 {
		return color.RGBA{255, 255, 255, 255}
	}

	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.RGBA{255, 255, 255, 255}
	}
	return color.RGBA{uint8(v >> 16), uint8(v >> 8), uint8(v), 255}
}
