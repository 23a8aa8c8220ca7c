package editor

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"io"

	"creative-editor/internal/domain"
	core "creative-editor/internal/editor"
	"creative-editor/internal/usecase/processor"
	"creative-editor/internal/usecase/processor/operations"

	"golang.org/x/sync/errgroup"
)

const maxLogoBytes = 16 << 20

// Download is a file ready to be streamed to the user. Fallback is set when
// the unmodified asset is served instead of the composite.
type Download struct {
	Filename    string
	ContentType string
	Body        io.ReadCloser
	Fallback    bool
}

// CompositeDownload renders the pending edits locally. If the base image
// cannot be loaded or rendered it falls back to the unmodified asset.
func (u *Usecase) CompositeDownload(ctx context.Context, sessionID string) (*Download, error) {
	s, err := u.Session(sessionID)
	if err != nil {
		return nil, err
	}
	asset, ok := s.Asset()
	if !ok {
		return nil, core.ErrNoAsset
	}

	data, err := u.composite(ctx, asset, s.Snapshot())
	if err == nil {
		return &Download{
			Filename:    compositeFilename(asset),
			ContentType: operations.ContentType(domain.FormatPNG),
			Body:        io.NopCloser(bytes.NewReader(data)),
		}, nil
	}

	u.logger.Warn().Err(err).Str("asset_id", asset.ID).Msg("Composite failed, falling back to original download")

	body, contentType, err := u.api.DownloadAsset(ctx, asset.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to download original asset: %w", err)
	}
	if contentType == "" {
		contentType = "image/jpeg"
	}
	return &Download{
		Filename:    fmt.Sprintf("asset_%s.jpg", asset.ID),
		ContentType: contentType,
		Body:        body,
		Fallback:    true,
	}, nil
}

func (u *Usecase) composite(ctx context.Context, asset domain.Asset, adj domain.ImageAdjustments) ([]byte, error) {
	raw, err := u.baseImage(ctx, asset)
	if err != nil {
		return nil, fmt.Errorf("failed to load base image: %w", err)
	}
	base, _, err := processor.Decode(raw)
	if err != nil {
		return nil, err
	}

	return u.compositor.Composite(base, asset.Dimensions, adj, u.loadLogos(ctx, adj.LogoOverlays))
}

// baseImage fetches the asset image once per asset version.
func (u *Usecase) baseImage(ctx context.Context, asset domain.Asset) ([]byte, error) {
	key := fmt.Sprintf("%s@%d", asset.AssetURL, asset.Version)
	if data, ok := u.images.Get(key); ok {
		return data, nil
	}

	data, err := u.api.FetchImage(ctx, asset.AssetURL)
	if err != nil {
		return nil, err
	}
	u.images.Add(key, data)
	return data, nil
}

// loadLogos fetches logos concurrently. A logo that cannot be loaded is
// skipped; the result keeps overlay order.
func (u *Usecase) loadLogos(ctx context.Context, overlays []domain.LogoOverlay) []processor.LogoImage {
	loaded := make([]image.Image, len(overlays))

	g, gctx := errgroup.WithContext(ctx)
	for i, l := range overlays {
		g.Go(func() error {
			img, err := u.loadLogo(gctx, l)
			if err != nil {
				u.logger.Warn().Err(err).Str("logo_id", l.ID).Msg("Logo draw failed")
				return nil
			}
			loaded[i] = img
			return nil
		})
	}
	_ = g.Wait()

	logos := make([]processor.LogoImage, 0, len(overlays))
	for i, img := range loaded {
		if img != nil {
			logos = append(logos, processor.LogoImage{Overlay: overlays[i], Image: img})
		}
	}
	return logos
}

func (u *Usecase) loadLogo(ctx context.Context, l domain.LogoOverlay) (image.Image, error) {
	var data []byte

	if l.IsLocal() {
		rc, _, err := u.blobs.Open(ctx, l.ImageURL)
		if err != nil {
			return nil, err
		}
		defer func() { _ = rc.Close() }()

		if data, err = readAll(rc, maxLogoBytes); err != nil {
			return nil, err
		}
	} else {
		var err error
		if data, err = u.api.FetchImage(ctx, l.ImageURL); err != nil {
			return nil, err
		}
	}

	img, _, err := processor.Decode(data)
	return img, err
}

func compositeFilename(asset domain.Asset) string {
	name := asset.Filename
	if name == "" {
		name = "image"
	}
	return name + "_edited.png"
}

// readAll is io.ReadAll bounded by limit bytes.
func readAll(r io.Reader, limit int64) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > limit {
		return nil, fmt.Errorf("content exceeds %d bytes", limit)
	}
	return data, nil
}
