package editor

import (
	"context"
	"fmt"

	"creative-editor/internal/client/api"
	"creative-editor/internal/domain"
)

const (
	defaultProjectLimit = 20
	maxProjectLimit     = 100
)

func (u *Usecase) Me(ctx context.Context) (domain.User, error) {
	return u.api.Me(ctx)
}

func (u *Usecase) UpdatePreferences(ctx context.Context, prefs map[string]any) (domain.User, error) {
	user, err := u.api.UpdatePreferences(ctx, prefs)
	if err != nil {
		return domain.User{}, err
	}
	u.logger.Info().Str("user_id", user.ID).Int("preferences", len(prefs)).Msg("Preferences updated")
	return user, nil
}

// ListProjects pages through the caller's projects. A non-positive limit
// selects the default page size; larger pages are capped.
func (u *Usecase) ListProjects(ctx context.Context, limit, offset int) ([]domain.Project, error) {
	if limit <= 0 {
		limit = defaultProjectLimit
	}
	if limit > maxProjectLimit {
		limit = maxProjectLimit
	}
	if offset < 0 {
		offset = 0
	}
	return u.api.ListProjects(ctx, limit, offset)
}

func (u *Usecase) UploadProject(ctx context.Context, name string, files []api.File) (domain.UploadResponse, error) {
	resp, err := u.api.UploadProject(ctx, name, files)
	if err != nil {
		return domain.UploadResponse{}, err
	}
	u.logger.Info().Str("project_id", resp.ProjectID).Str("name", name).Int("files", len(files)).Msg("Project uploaded")
	return resp, nil
}

func (u *Usecase) ProjectPreview(ctx context.Context, projectID string) ([]domain.Asset, error) {
	return u.api.ProjectPreview(ctx, projectID)
}

func (u *Usecase) Providers(ctx context.Context) (domain.ProvidersResponse, error) {
	return u.api.Providers(ctx)
}

// StartGeneration queues a generation job and returns its handle. At least
// one preset format or custom size is required.
func (u *Usecase) StartGeneration(ctx context.Context, req domain.GenerationRequest) (string, error) {
	if len(req.FormatIDs) == 0 && len(req.CustomResizes) == 0 {
		return "", ErrNoFormats
	}
	for _, d := range req.CustomResizes {
		if !d.Valid() {
			return "", fmt.Errorf("%w: custom size %dx%d", ErrNoFormats, d.Width, d.Height)
		}
	}

	job, err := u.api.StartGeneration(ctx, req)
	if err != nil {
		return "", err
	}
	jobID := job.Handle()
	if jobID == "" {
		return "", fmt.Errorf("failed to start generation: server returned no job id")
	}

	u.logger.Info().
		Str("job_id", jobID).
		Str("project_id", req.ProjectID).
		Int("formats", len(req.FormatIDs)+len(req.CustomResizes)).
		Str("provider", req.Provider).
		Msg("Generation started")
	return jobID, nil
}

// RequestDownload asks the API to package the assets and returns the archive URL.
func (u *Usecase) RequestDownload(ctx context.Context, req domain.DownloadRequest) (string, error) {
	resp, err := u.api.RequestDownload(ctx, req)
	if err != nil {
		return "", err
	}
	u.logger.Info().Int("assets", len(req.AssetIDs)).Str("format", req.Format).Msg("Download prepared")
	return resp.DownloadURL, nil
}
