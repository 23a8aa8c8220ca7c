// Package editor runs editor sessions against the creative API: opening an
// asset for editing, staging logos, applying edits and rendering the local
// composite download.
package editor

import (
	"context"
	"fmt"
	"io"
	"sync"

	"creative-editor/internal/domain"
	core "creative-editor/internal/editor"

	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/wb-go/wbf/retry"
	"github.com/wb-go/wbf/zlog"
)

type Usecase struct {
	api        creativeAPI
	poller     jobAwaiter
	blobs      blobStore
	previews   previewStore
	events     eventPublisher
	compositor compositor
	logger     *zlog.Zerolog
	refresh    retry.Strategy
	// base images by url and asset version
	images *lru.Cache[string, []byte]

	mu       sync.RWMutex
	sessions map[string]*core.Session
}

type Deps struct {
	API        creativeAPI
	Poller     jobAwaiter
	Blobs      blobStore
	Previews   previewStore
	Events     eventPublisher
	Compositor compositor
}

func NewEditorUsecase(deps Deps, logger *zlog.Zerolog, refresh retry.Strategy, imageCacheSize int) (*Usecase, error) {
	if imageCacheSize < 1 {
		imageCacheSize = 1
	}
	images, err := lru.New[string, []byte](imageCacheSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create image cache: %w", err)
	}

	return &Usecase{
		api:        deps.API,
		poller:     deps.Poller,
		blobs:      deps.Blobs,
		previews:   deps.Previews,
		events:     deps.Events,
		compositor: deps.Compositor,
		logger:     logger,
		refresh:    refresh,
		images:     images,
		sessions:   make(map[string]*core.Session),
	}, nil
}

// OpenRequest selects the asset to edit: an explicit asset id, or the first
// generated asset of a job.
type OpenRequest struct {
	AssetID string
	JobID   string
}

func (u *Usecase) OpenSession(ctx context.Context, req OpenRequest) (*core.Session, error) {
	asset, err := u.resolveAsset(ctx, req)
	if err != nil {
		return nil, err
	}
	if !asset.Dimensions.Valid() {
		return nil, fmt.Errorf("%w: asset %s has no dimensions", core.ErrNoAsset, asset.ID)
	}

	s := core.NewSession(uuid.NewString(), &asset)

	u.mu.Lock()
	u.sessions[s.ID()] = s
	u.mu.Unlock()

	u.logger.Info().
		Str("session_id", s.ID()).
		Str("asset_id", asset.ID).
		Int("width", asset.Dimensions.Width).
		Int("height", asset.Dimensions.Height).
		Msg("Editor session opened")
	return s, nil
}

func (u *Usecase) resolveAsset(ctx context.Context, req OpenRequest) (domain.Asset, error) {
	switch {
	case req.AssetID != "":
		asset, err := u.api.GetGeneratedAsset(ctx, req.AssetID)
		if err != nil {
			return domain.Asset{}, err
		}
		return asset, nil
	case req.JobID != "":
		results, err := u.api.JobResults(ctx, req.JobID)
		if err != nil {
			return domain.Asset{}, err
		}
		asset, ok := results.First()
		if !ok {
			return domain.Asset{}, fmt.Errorf("%w: %s", ErrNoResults, req.JobID)
		}
		return asset, nil
	default:
		return domain.Asset{}, ErrMissingTarget
	}
}

func (u *Usecase) Session(id string) (*core.Session, error) {
	u.mu.RLock()
	defer u.mu.RUnlock()

	s, ok := u.sessions[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	return s, nil
}

// CloseSession discards the session and revokes its staged logo blobs.
func (u *Usecase) CloseSession(ctx context.Context, id string) error {
	u.mu.Lock()
	s, ok := u.sessions[id]
	delete(u.sessions, id)
	u.mu.Unlock()

	if !ok {
		return fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}

	u.revokeLocal(ctx, s.Snapshot().LogoOverlays)
	u.logger.Info().Str("session_id", id).Msg("Editor session closed")
	return nil
}

// CloseAll closes every open session; used on shutdown.
func (u *Usecase) CloseAll(ctx context.Context) {
	u.mu.RLock()
	ids := make([]string, 0, len(u.sessions))
	for id := range u.sessions {
		ids = append(ids, id)
	}
	u.mu.RUnlock()

	for _, id := range ids {
		_ = u.CloseSession(ctx, id)
	}
}

// AddLogo stages the uploaded file as a local blob and places a logo overlay
// pointing at it. The blob is uploaded to the API only when edits are applied.
func (u *Usecase) AddLogo(ctx context.Context, sessionID, filename string, data io.Reader, size int64) (domain.LogoOverlay, error) {
	s, err := u.Session(sessionID)
	if err != nil {
		return domain.LogoOverlay{}, err
	}

	url, err := u.blobs.Stage(ctx, filename, data, size)
	if err != nil {
		return domain.LogoOverlay{}, fmt.Errorf("failed to stage logo: %w", err)
	}

	overlay, err := s.AddLogo(url)
	if err != nil {
		u.revoke(ctx, url)
		return domain.LogoOverlay{}, err
	}
	return overlay, nil
}

func (u *Usecase) RemoveLogo(ctx context.Context, sessionID, overlayID string) error {
	s, err := u.Session(sessionID)
	if err != nil {
		return err
	}

	removed, err := s.RemoveLogo(overlayID)
	if err != nil {
		return err
	}
	if removed.IsLocal() {
		u.revoke(ctx, removed.ImageURL)
	}
	return nil
}

// Preview returns the rendered preview of an asset version.
func (u *Usecase) Preview(ctx context.Context, assetID string, version int64) ([]byte, error) {
	data, err := u.previews.GetObject(ctx, domain.PreviewPath(assetID, version))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPreviewNotFound, err)
	}
	return data, nil
}

func (u *Usecase) revokeLocal(ctx context.Context, logos []domain.LogoOverlay) {
	for _, l := range logos {
		if l.IsLocal() {
			u.revoke(ctx, l.ImageURL)
		}
	}
}

func (u *Usecase) revoke(ctx context.Context, url string) {
	if err := u.blobs.Revoke(ctx, url); err != nil {
		u.logger.Warn().Err(err).Str("url", url).Msg("Failed to revoke blob")
	}
}
