package editor

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"creative-editor/internal/client/api"
	"creative-editor/internal/domain"
	core "creative-editor/internal/editor"

	"github.com/google/uuid"
	"github.com/wb-go/wbf/retry"
)

const staleWarning = "Edits applied, but the preview may be stale"

// ApplyResult reports a successful apply. Stale is set when the refreshed
// asset could not be fetched; Asset then holds what the edit call returned.
type ApplyResult struct {
	Asset        domain.Asset
	Stale        bool
	Warning      string
	SkippedLogos []string
}

// Apply submits the session's pending adjustments. Local logos are uploaded
// first; a logo whose upload fails is left out of the submission. On success
// the session is reset, the asset re-fetched with bounded retries and an
// EditAppliedEvent published. Only a session with unsaved edits submits; when
// the edit call fails the unsaved flag is cleared, so a retry needs a new edit.
func (u *Usecase) Apply(ctx context.Context, sessionID string) (*ApplyResult, error) {
	s, err := u.Session(sessionID)
	if err != nil {
		return nil, err
	}

	if err := s.BeginSubmit(); err != nil {
		return nil, err
	}
	defer s.EndSubmit()

	asset, ok := s.Asset()
	if !ok {
		return nil, core.ErrNoAsset
	}
	if !s.Dirty() || !s.HasChanges() {
		return nil, core.ErrNoChanges
	}

	skipped := u.uploadLocalLogos(ctx, s)

	adj := s.Snapshot()
	adj.LogoOverlays = withoutLocal(adj.LogoOverlays)

	payload, err := core.Normalize(adj, &asset)
	if err != nil {
		return nil, err
	}

	updated, err := u.api.ApplyEdits(ctx, asset.ID, payload)
	if err != nil {
		s.MarkClean()
		u.logger.Error().Err(err).Str("session_id", sessionID).Str("asset_id", asset.ID).Msg("Failed to apply edits")
		return nil, mapApplyError(err)
	}

	u.revokeLocal(ctx, s.ResetAfterApply())

	result := &ApplyResult{SkippedLogos: skipped}

	refreshed, err := u.refreshAsset(ctx, asset.ID)
	if err != nil {
		u.logger.Warn().Err(err).Str("asset_id", asset.ID).Msg("Asset refresh exhausted retries")
		result.Stale = true
		result.Warning = staleWarning
		refreshed = updated
	}
	if refreshed.ID == "" {
		refreshed = asset
	}
	if !refreshed.Dimensions.Valid() {
		refreshed.Dimensions = asset.Dimensions
	}
	result.Asset = s.SetAsset(refreshed)

	u.publishApplied(ctx, sessionID, result.Asset)

	kinds := make(map[domain.OverlayKind]int)
	for _, o := range payload.Overlays() {
		kinds[o.OverlayKind()]++
	}
	u.logger.Info().
		Str("session_id", sessionID).
		Str("asset_id", result.Asset.ID).
		Int64("version", result.Asset.Version).
		Int("text_overlays", kinds[domain.OverlayText]).
		Int("logo_overlays", kinds[domain.OverlayLogo]).
		Bool("stale", result.Stale).
		Msg("Edits applied")
	return result, nil
}

// uploadLocalLogos resolves every blob-backed logo to a durable server path
// and returns the ids of logos that could not be uploaded.
func (u *Usecase) uploadLocalLogos(ctx context.Context, s *core.Session) []string {
	var skipped []string

	for _, l := range s.Snapshot().LogoOverlays {
		if !l.IsLocal() {
			continue
		}

		path, err := u.uploadBlob(ctx, l.ImageURL)
		if err == nil {
			err = s.ResolveLogo(l.ID, path)
		}
		if err != nil {
			u.logger.Warn().Err(err).Str("logo_id", l.ID).Msg("Logo upload failed, skipping overlay")
			skipped = append(skipped, l.ID)
			continue
		}
		u.revoke(ctx, l.ImageURL)
	}
	return skipped
}

func (u *Usecase) uploadBlob(ctx context.Context, url string) (string, error) {
	rc, meta, err := u.blobs.Open(ctx, url)
	if err != nil {
		return "", err
	}
	defer func() { _ = rc.Close() }()

	resp, err := u.api.UploadLogo(ctx, meta.Filename, rc)
	if err != nil {
		return "", err
	}
	if resp.LogoPath == "" {
		return "", errors.New("upload returned an empty logo path")
	}
	return resp.LogoPath, nil
}

func (u *Usecase) refreshAsset(ctx context.Context, assetID string) (domain.Asset, error) {
	var asset domain.Asset
	err := retry.Do(func() error {
		if err := ctx.Err(); err != nil {
			return err
		}
		a, err := u.api.GetGeneratedAsset(ctx, assetID)
		if err != nil {
			return err
		}
		asset = a
		return nil
	}, u.refresh)
	if err != nil {
		return domain.Asset{}, fmt.Errorf("failed to refresh asset: %w", err)
	}
	return asset, nil
}

func (u *Usecase) publishApplied(ctx context.Context, sessionID string, asset domain.Asset) {
	if u.events == nil {
		return
	}

	event := domain.EditAppliedEvent{
		ID:        uuid.NewString(),
		SessionID: sessionID,
		AssetID:   asset.ID,
		AssetURL:  asset.AssetURL,
		Version:   asset.Version,
		AppliedAt: time.Now().UTC(),
	}
	if err := u.events.PublishEditApplied(ctx, event); err != nil {
		u.logger.Warn().Err(err).Str("asset_id", asset.ID).Msg("Failed to publish edit applied event")
	}
}

func withoutLocal(logos []domain.LogoOverlay) []domain.LogoOverlay {
	out := make([]domain.LogoOverlay, 0, len(logos))
	for _, l := range logos {
		if !l.IsLocal() {
			out = append(out, l)
		}
	}
	return out
}

// mapApplyError turns a missing source file on the server into ErrImageFileNotFound.
func mapApplyError(err error) error {
	var httpErr *api.HTTPError
	if errors.As(err, &httpErr) && strings.Contains(httpErr.UserMessage(), "No such file or directory") {
		return fmt.Errorf("%w: %v", ErrImageFileNotFound, err)
	}
	return err
}
