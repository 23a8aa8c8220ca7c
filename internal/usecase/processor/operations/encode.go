package operations

import (
	"bytes"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"strings"

	"creative-editor/internal/domain"
)

// Encode writes img in format and returns the bytes and the normalized
// format name. Unknown formats fall back to JPEG.
func Encode(img image.Image, format string, quality int) ([]byte, domain.ImageFormat, error) {
	if quality <= 0 || quality > 100 {
		quality = domain.DefaultJPEGQuality
	}

	buf := new(bytes.Buffer)
	var (
		out domain.ImageFormat
		err error
	)

	switch strings.ToLower(format) {
	case "png":
		err = png.Encode(buf, img)
		out = domain.FormatPNG
	case "gif":
		err = gif.Encode(buf, img, nil)
		out = domain.FormatGIF
	default:
		err = jpeg.Encode(buf, img, &jpeg.Options{Quality: quality})
		out = domain.FormatJPEG
	}
	if err != nil {
		return nil, "", fmt.Errorf("failed to encode %s: %w", format, err)
	}
	return buf.Bytes(), out, nil
}

func ContentType(format domain.ImageFormat) string {
	switch format {
	case domain.FormatPNG:
		return "image/png"
	case domain.FormatGIF:
		return "image/gif"
	case domain.FormatWebP:
		return "image/webp"
	default:
		return "image/jpeg"
	}
}
