package processor

import (
	"fmt"

	"creative-editor/internal/usecase/processor/operations"

	"github.com/wb-go/wbf/zlog"
)

// Previewer turns a refreshed asset into its square JPEG preview.
type Previewer struct {
	thumbnailer *operations.Thumbnailer
	logger      *zlog.Zerolog
}

func NewPreviewer(size, quality int, logger *zlog.Zerolog) *Previewer {
	return &Previewer{
		thumbnailer: operations.NewThumbnailer(size, quality),
		logger:      logger,
	}
}

func (p *Previewer) Render(data []byte) ([]byte, error) {
	img, format, err := Decode(data)
	if err != nil {
		return nil, err
	}

	preview, err := p.thumbnailer.Render(img)
	if err != nil {
		return nil, fmt.Errorf("failed to render preview: %w", err)
	}

	p.logger.Debug().
		Str("source_format", format).
		Int("source_width", img.Bounds().Dx()).
		Int("source_height", img.Bounds().Dy()).
		Int("size", p.thumbnailer.Size()).
		Msg("Preview rendered")
	return preview, nil
}
