package editor

import (
	"context"
	"io"

	"creative-editor/internal/client/api"
	"creative-editor/internal/domain"
	core "creative-editor/internal/editor"
	editor_uc "creative-editor/internal/usecase/editor"
)

type editorUsecase interface {
	Login(ctx context.Context, username, password string) error
	Logout(ctx context.Context)
	Formats(ctx context.Context) (domain.FormatsResponse, error)
	AwaitJob(ctx context.Context, jobID string) (domain.JobStatus, domain.JobResults, error)
	Me(ctx context.Context) (domain.User, error)
	UpdatePreferences(ctx context.Context, prefs map[string]any) (domain.User, error)

	ListProjects(ctx context.Context, limit, offset int) ([]domain.Project, error)
	UploadProject(ctx context.Context, name string, files []api.File) (domain.UploadResponse, error)
	ProjectPreview(ctx context.Context, projectID string) ([]domain.Asset, error)
	Providers(ctx context.Context) (domain.ProvidersResponse, error)
	StartGeneration(ctx context.Context, req domain.GenerationRequest) (string, error)
	RequestDownload(ctx context.Context, req domain.DownloadRequest) (string, error)

	OpenSession(ctx context.Context, req editor_uc.OpenRequest) (*core.Session, error)
	Session(id string) (*core.Session, error)
	CloseSession(ctx context.Context, id string) error
	AddLogo(ctx context.Context, sessionID, filename string, data io.Reader, size int64) (domain.LogoOverlay, error)
	RemoveLogo(ctx context.Context, sessionID, overlayID string) error
	Apply(ctx context.Context, sessionID string) (*editor_uc.ApplyResult, error)
	CompositeDownload(ctx context.Context, sessionID string) (*editor_uc.Download, error)
	Preview(ctx context.Context, assetID string, version int64) ([]byte, error)
}
