package editor

import (
	"context"
	"image"
	"io"

	"creative-editor/internal/client/api"
	"creative-editor/internal/domain"
	"creative-editor/internal/repository/blob"
	"creative-editor/internal/usecase/processor"
)

type creativeAPI interface {
	Login(ctx context.Context, username, password string) (domain.LoginResponse, error)
	Logout(ctx context.Context) error
	Formats(ctx context.Context) (domain.FormatsResponse, error)
	JobResults(ctx context.Context, jobID string) (domain.JobResults, error)
	GetGeneratedAsset(ctx context.Context, assetID string) (domain.Asset, error)
	ApplyEdits(ctx context.Context, assetID string, edits *domain.EditPayload) (domain.Asset, error)
	UploadLogo(ctx context.Context, filename string, data io.Reader) (domain.LogoUploadResponse, error)
	FetchImage(ctx context.Context, imageURL string) ([]byte, error)
	DownloadAsset(ctx context.Context, assetID string) (io.ReadCloser, string, error)

	Me(ctx context.Context) (domain.User, error)
	UpdatePreferences(ctx context.Context, prefs map[string]any) (domain.User, error)
	ListProjects(ctx context.Context, limit, offset int) ([]domain.Project, error)
	UploadProject(ctx context.Context, name string, files []api.File) (domain.UploadResponse, error)
	ProjectPreview(ctx context.Context, projectID string) ([]domain.Asset, error)
	Providers(ctx context.Context) (domain.ProvidersResponse, error)
	StartGeneration(ctx context.Context, req domain.GenerationRequest) (domain.GenerationJob, error)
	RequestDownload(ctx context.Context, req domain.DownloadRequest) (domain.DownloadResponse, error)
}

type jobAwaiter interface {
	Await(ctx context.Context, jobID string, onProgress func(domain.JobStatus)) (domain.JobStatus, error)
}

type blobStore interface {
	Stage(ctx context.Context, filename string, data io.Reader, size int64) (string, error)
	Open(ctx context.Context, url string) (io.ReadCloser, blob.Meta, error)
	Revoke(ctx context.Context, url string) error
}

type previewStore interface {
	GetObject(ctx context.Context, key string) ([]byte, error)
}

type eventPublisher interface {
	PublishEditApplied(ctx context.Context, event domain.EditAppliedEvent) error
}

type compositor interface {
	Composite(base image.Image, dims domain.Dimensions, adj domain.ImageAdjustments, logos []processor.LogoImage) ([]byte, error)
}
