package editor

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"sync"
	"testing"
	"time"

	"creative-editor/internal/client/api"
	"creative-editor/internal/domain"
	"creative-editor/internal/repository/blob"
	"creative-editor/internal/usecase/processor"

	"github.com/stretchr/testify/require"
	"github.com/wb-go/wbf/retry"
	"github.com/wb-go/wbf/zlog"
)

type fakeAPI struct {
	mu sync.Mutex

	assets      map[string]domain.Asset
	results     domain.JobResults
	refreshErr  error
	applyErr    error
	uploadErr   error
	fetchErr    error
	images      map[string][]byte
	applied     []*domain.EditPayload
	uploads     []string
	assetCalls  int
	fetchCalls  map[string]int
	loggedOut   bool
	downloadHit bool

	listed      [2]int
	projects    []string
	generations []domain.GenerationRequest
	jobID       string
	prefs       map[string]any
}

func (f *fakeAPI) Login(ctx context.Context, username, password string) (domain.LoginResponse, error) {
	return domain.LoginResponse{AccessToken: "tok"}, nil
}

func (f *fakeAPI) Logout(ctx context.Context) error {
	f.loggedOut = true
	return errors.New("server down")
}

func (f *fakeAPI) Formats(ctx context.Context) (domain.FormatsResponse, error) {
	return domain.FormatsResponse{}, nil
}

func (f *fakeAPI) JobResults(ctx context.Context, jobID string) (domain.JobResults, error) {
	return f.results, nil
}

func (f *fakeAPI) GetGeneratedAsset(ctx context.Context, assetID string) (domain.Asset, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.assetCalls++
	if f.assetCalls > 1 && f.refreshErr != nil {
		return domain.Asset{}, f.refreshErr
	}
	a, ok := f.assets[assetID]
	if !ok {
		return domain.Asset{}, fmt.Errorf("asset %s not found", assetID)
	}
	return a, nil
}

func (f *fakeAPI) ApplyEdits(ctx context.Context, assetID string, edits *domain.EditPayload) (domain.Asset, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.applied = append(f.applied, edits)
	if f.applyErr != nil {
		return domain.Asset{}, f.applyErr
	}
	return f.assets[assetID], nil
}

func (f *fakeAPI) UploadLogo(ctx context.Context, filename string, data io.Reader) (domain.LogoUploadResponse, error) {
	if f.uploadErr != nil {
		return domain.LogoUploadResponse{}, f.uploadErr
	}
	f.uploads = append(f.uploads, filename)
	return domain.LogoUploadResponse{LogoPath: "/logos/" + filename}, nil
}

func (f *fakeAPI) FetchImage(ctx context.Context, imageURL string) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.fetchCalls == nil {
		f.fetchCalls = map[string]int{}
	}
	f.fetchCalls[imageURL]++
	if f.fetchErr != nil {
		return nil, f.fetchErr
	}
	data, ok := f.images[imageURL]
	if !ok {
		return nil, fmt.Errorf("no image at %s", imageURL)
	}
	return data, nil
}

func (f *fakeAPI) DownloadAsset(ctx context.Context, assetID string) (io.ReadCloser, string, error) {
	f.downloadHit = true
	return io.NopCloser(bytes.NewReader([]byte("original"))), "image/jpeg", nil
}

func (f *fakeAPI) Me(ctx context.Context) (domain.User, error) {
	return domain.User{ID: "u1", Username: "designer"}, nil
}

func (f *fakeAPI) UpdatePreferences(ctx context.Context, prefs map[string]any) (domain.User, error) {
	f.prefs = prefs
	return domain.User{ID: "u1", Preferences: prefs}, nil
}

func (f *fakeAPI) ListProjects(ctx context.Context, limit, offset int) ([]domain.Project, error) {
	f.listed = [2]int{limit, offset}
	return []domain.Project{{ID: "p1", Name: "Spring"}}, nil
}

func (f *fakeAPI) UploadProject(ctx context.Context, name string, files []api.File) (domain.UploadResponse, error) {
	if len(files) == 0 {
		return domain.UploadResponse{}, api.ErrEmptyUpload
	}
	for _, file := range files {
		f.projects = append(f.projects, name+"/"+file.Name)
	}
	return domain.UploadResponse{ProjectID: "p1"}, nil
}

func (f *fakeAPI) ProjectPreview(ctx context.Context, projectID string) ([]domain.Asset, error) {
	return []domain.Asset{testAsset()}, nil
}

func (f *fakeAPI) Providers(ctx context.Context) (domain.ProvidersResponse, error) {
	return domain.ProvidersResponse{Providers: []string{"openai"}, DefaultProvider: "openai"}, nil
}

func (f *fakeAPI) StartGeneration(ctx context.Context, req domain.GenerationRequest) (domain.GenerationJob, error) {
	f.generations = append(f.generations, req)
	return domain.GenerationJob{ID: f.jobID}, nil
}

func (f *fakeAPI) RequestDownload(ctx context.Context, req domain.DownloadRequest) (domain.DownloadResponse, error) {
	return domain.DownloadResponse{DownloadURL: "/downloads/" + req.Format + ".zip"}, nil
}

type fakeBlobs struct {
	mu      sync.Mutex
	objects map[string][]byte
	names   map[string]string
	revoked []string
}

func newFakeBlobs() *fakeBlobs {
	return &fakeBlobs{objects: map[string][]byte{}, names: map[string]string{}}
}

func (b *fakeBlobs) Stage(ctx context.Context, filename string, data io.Reader, size int64) (string, error) {
	raw, err := io.ReadAll(data)
	if err != nil {
		return "", err
	}
	b.mu.Lock()
	defer b.mu.Unlock()

	url := blob.URL(blob.NewKey(filename))
	b.objects[url] = raw
	b.names[url] = filename
	return url, nil
}

func (b *fakeBlobs) Open(ctx context.Context, url string) (io.ReadCloser, blob.Meta, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	raw, ok := b.objects[url]
	if !ok {
		return nil, blob.Meta{}, blob.ErrBlobNotFound
	}
	return io.NopCloser(bytes.NewReader(raw)), blob.Meta{Filename: b.names[url], Size: int64(len(raw))}, nil
}

func (b *fakeBlobs) Revoke(ctx context.Context, url string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	delete(b.objects, url)
	b.revoked = append(b.revoked, url)
	return nil
}

func (b *fakeBlobs) GetObject(ctx context.Context, key string) ([]byte, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	raw, ok := b.objects[key]
	if !ok {
		return nil, blob.ErrObjectNotFound
	}
	return raw, nil
}

type fakeEvents struct {
	events []domain.EditAppliedEvent
}

func (e *fakeEvents) PublishEditApplied(ctx context.Context, event domain.EditAppliedEvent) error {
	e.events = append(e.events, event)
	return nil
}

type fakePoller struct {
	status domain.JobStatus
	err    error
}

func (p *fakePoller) Await(ctx context.Context, jobID string, onProgress func(domain.JobStatus)) (domain.JobStatus, error) {
	if onProgress != nil {
		onProgress(p.status)
	}
	return p.status, p.err
}

var testRed = color.RGBA{255, 0, 0, 255}

type fixture struct {
	uc     *Usecase
	api    *fakeAPI
	blobs  *fakeBlobs
	events *fakeEvents
	poller *fakePoller
}

func testAsset() domain.Asset {
	return domain.Asset{
		ID:         "asset-1",
		Filename:   "banner",
		AssetURL:   "/files/asset-1.png",
		Dimensions: domain.Dimensions{Width: 1000, Height: 1000},
	}
}

func pngBytes(t *testing.T, w, h int, c color.Color) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(c), image.Point{}, draw.Src)

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	zlog.Init()
	logger := &zlog.Logger

	compositor, err := processor.NewCompositor(logger)
	require.NoError(t, err)

	f := &fixture{
		api: &fakeAPI{
			assets: map[string]domain.Asset{"asset-1": testAsset()},
			images: map[string][]byte{},
		},
		blobs:  newFakeBlobs(),
		events: &fakeEvents{},
		poller: &fakePoller{status: domain.JobStatus{Status: domain.JobCompleted, Progress: 100}},
	}
	uc, err := NewEditorUsecase(Deps{
		API:        f.api,
		Poller:     f.poller,
		Blobs:      f.blobs,
		Previews:   f.blobs,
		Events:     f.events,
		Compositor: compositor,
	}, logger, retry.Strategy{Attempts: 3, Delay: time.Millisecond, Backoff: 1}, 8)
	require.NoError(t, err)
	f.uc = uc
	return f
}
