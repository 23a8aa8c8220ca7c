package editor

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"creative-editor/internal/client/api"
	"creative-editor/internal/domain"
	core "creative-editor/internal/editor"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenSession(t *testing.T) {
	ctx := context.Background()

	t.Run("by asset id", func(t *testing.T) {
		f := newFixture(t)
		s, err := f.uc.OpenSession(ctx, OpenRequest{AssetID: "asset-1"})
		require.NoError(t, err)

		asset, ok := s.Asset()
		require.True(t, ok)
		assert.Equal(t, "asset-1", asset.ID)

		got, err := f.uc.Session(s.ID())
		require.NoError(t, err)
		assert.Same(t, s, got)
	})

	t.Run("by job id picks first platform", func(t *testing.T) {
		f := newFixture(t)
		f.api.results = domain.JobResults{
			"Twitter":   {{ID: "tw", Dimensions: domain.Dimensions{Width: 10, Height: 10}}},
			"Instagram": {{ID: "ig", Dimensions: domain.Dimensions{Width: 10, Height: 10}}},
		}

		s, err := f.uc.OpenSession(ctx, OpenRequest{JobID: "job-1"})
		require.NoError(t, err)
		asset, _ := s.Asset()
		assert.Equal(t, "ig", asset.ID)
	})

	t.Run("empty job", func(t *testing.T) {
		f := newFixture(t)
		f.api.results = domain.JobResults{}
		_, err := f.uc.OpenSession(ctx, OpenRequest{JobID: "job-1"})
		assert.ErrorIs(t, err, ErrNoResults)
	})

	t.Run("no target", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.uc.OpenSession(ctx, OpenRequest{})
		assert.ErrorIs(t, err, ErrMissingTarget)
	})

	t.Run("asset without dimensions", func(t *testing.T) {
		f := newFixture(t)
		f.api.assets["flat"] = domain.Asset{ID: "flat"}
		_, err := f.uc.OpenSession(ctx, OpenRequest{AssetID: "flat"})
		assert.ErrorIs(t, err, core.ErrNoAsset)
	})
}

func openWithEdits(t *testing.T, f *fixture) (*core.Session, domain.LogoOverlay) {
	t.Helper()
	ctx := context.Background()

	s, err := f.uc.OpenSession(ctx, OpenRequest{AssetID: "asset-1"})
	require.NoError(t, err)

	_, err = s.AddText("Sale", "")
	require.NoError(t, err)

	logo, err := f.uc.AddLogo(ctx, s.ID(), "acme.png", strings.NewReader("png"), 3)
	require.NoError(t, err)
	require.True(t, logo.IsLocal())
	return s, logo
}

func TestApply_UploadsLogosAndResets(t *testing.T) {
	f := newFixture(t)
	s, logo := openWithEdits(t, f)

	result, err := f.uc.Apply(context.Background(), s.ID())
	require.NoError(t, err)

	require.Len(t, f.api.applied, 1)
	payload := f.api.applied[0]
	require.Len(t, payload.LogoOverlays, 1)
	assert.Equal(t, "/logos/acme.png", payload.LogoOverlays[0].LogoPath)
	assert.InDelta(t, 0.1, payload.LogoOverlays[0].X, 1e-9)
	assert.Equal(t, 200.0, payload.LogoOverlays[0].Width)
	require.Len(t, payload.TextOverlays, 1)
	assert.Equal(t, "Sale", payload.TextOverlays[0].Text)

	assert.False(t, result.Stale)
	assert.Empty(t, result.SkippedLogos)
	assert.Equal(t, int64(1), result.Asset.Version)

	adj := s.Snapshot()
	assert.Empty(t, adj.TextOverlays)
	assert.Empty(t, adj.LogoOverlays)
	assert.Equal(t, 0.0, adj.ColorSaturation)
	assert.Equal(t, domain.Rect{X: 0, Y: 0, Width: 1000, Height: 1000}, adj.CropBox)
	assert.False(t, s.Dirty())
	assert.False(t, s.Submitting())

	assert.Contains(t, f.blobs.revoked, logo.ImageURL)

	require.Len(t, f.events.events, 1)
	assert.Equal(t, "asset-1", f.events.events[0].AssetID)
	assert.Equal(t, int64(1), f.events.events[0].Version)
	assert.Equal(t, s.ID(), f.events.events[0].SessionID)
}

func TestApply_SkipsLogoWhoseUploadFails(t *testing.T) {
	f := newFixture(t)
	f.api.uploadErr = errors.New("upload rejected")
	s, logo := openWithEdits(t, f)

	result, err := f.uc.Apply(context.Background(), s.ID())
	require.NoError(t, err)

	assert.Equal(t, []string{logo.ID}, result.SkippedLogos)
	assert.Empty(t, f.api.applied[0].LogoOverlays)
	assert.Len(t, f.api.applied[0].TextOverlays, 1)
	assert.Contains(t, f.blobs.revoked, logo.ImageURL)
}

func TestApply_FailureClearsUnsavedFlag(t *testing.T) {
	f := newFixture(t)
	f.api.applyErr = &api.HTTPError{StatusCode: 500, Detail: "compositor crashed"}
	s, _ := openWithEdits(t, f)
	require.True(t, s.Dirty())

	_, err := f.uc.Apply(context.Background(), s.ID())

	var httpErr *api.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, "compositor crashed", httpErr.UserMessage())
	assert.False(t, s.Dirty())
	assert.False(t, s.Submitting())
	assert.Len(t, s.Snapshot().TextOverlays, 1)
	assert.Empty(t, f.events.events)
}

func TestApply_MapsMissingSourceFile(t *testing.T) {
	f := newFixture(t)
	f.api.applyErr = &api.HTTPError{StatusCode: 500, Detail: "[Errno 2] No such file or directory: '/data/a.png'"}
	s, _ := openWithEdits(t, f)

	_, err := f.uc.Apply(context.Background(), s.ID())
	assert.ErrorIs(t, err, ErrImageFileNotFound)
}

func TestApply_StaleWhenRefreshExhausted(t *testing.T) {
	f := newFixture(t)
	f.api.refreshErr = errors.New("file not readable yet")
	s, _ := openWithEdits(t, f)

	result, err := f.uc.Apply(context.Background(), s.ID())
	require.NoError(t, err)

	assert.True(t, result.Stale)
	assert.NotEmpty(t, result.Warning)
	assert.Equal(t, "asset-1", result.Asset.ID)
	assert.Equal(t, int64(1), result.Asset.Version)
	assert.Greater(t, f.api.assetCalls, 2)
}

func TestApply_RefusesWithoutChanges(t *testing.T) {
	f := newFixture(t)
	s, err := f.uc.OpenSession(context.Background(), OpenRequest{AssetID: "asset-1"})
	require.NoError(t, err)
	require.NoError(t, s.Set(domain.KeyCropArea, 100))

	_, err = f.uc.Apply(context.Background(), s.ID())
	assert.ErrorIs(t, err, core.ErrNoChanges)
	assert.Empty(t, f.api.applied)
}

func TestApply_RefusesUntouchedSession(t *testing.T) {
	f := newFixture(t)
	s, err := f.uc.OpenSession(context.Background(), OpenRequest{AssetID: "asset-1"})
	require.NoError(t, err)
	require.True(t, s.HasChanges())
	require.False(t, s.Dirty())

	_, err = f.uc.Apply(context.Background(), s.ID())
	assert.ErrorIs(t, err, core.ErrNoChanges)
	assert.Empty(t, f.api.applied)
}

func TestApply_RetryAfterFailureNeedsNewEdit(t *testing.T) {
	f := newFixture(t)
	f.api.applyErr = &api.HTTPError{StatusCode: 500, Detail: "compositor crashed"}
	s, _ := openWithEdits(t, f)
	ctx := context.Background()

	_, err := f.uc.Apply(ctx, s.ID())
	require.Error(t, err)
	require.Len(t, f.api.applied, 1)

	for i := 0; i < 3; i++ {
		_, err = f.uc.Apply(ctx, s.ID())
		assert.ErrorIs(t, err, core.ErrNoChanges)
	}
	assert.Len(t, f.api.applied, 1)

	f.api.mu.Lock()
	f.api.applyErr = nil
	f.api.mu.Unlock()
	require.NoError(t, s.Set(domain.KeyColorSaturation, 30))

	_, err = f.uc.Apply(ctx, s.ID())
	require.NoError(t, err)
	require.Len(t, f.api.applied, 2)
	assert.InDelta(t, 0.3, f.api.applied[1].Saturation, 1e-9)
}

func TestAddLogo_RefusedWhileSubmitting(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	s, _ := openWithEdits(t, f)
	require.NoError(t, s.BeginSubmit())

	_, err := f.uc.AddLogo(ctx, s.ID(), "late.png", strings.NewReader("png"), 3)
	assert.ErrorIs(t, err, core.ErrSubmitInFlight)
	assert.Len(t, f.blobs.revoked, 1)
	assert.Len(t, s.Snapshot().LogoOverlays, 1)
}

func TestApply_SingleSubmissionInFlight(t *testing.T) {
	f := newFixture(t)
	s, _ := openWithEdits(t, f)
	require.NoError(t, s.BeginSubmit())

	_, err := f.uc.Apply(context.Background(), s.ID())
	assert.ErrorIs(t, err, core.ErrSubmitInFlight)
	assert.Empty(t, f.api.applied)
}

func TestRemoveLogoAndCloseSessionRevokeBlobs(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	s, logo := openWithEdits(t, f)

	require.NoError(t, f.uc.RemoveLogo(ctx, s.ID(), logo.ID))
	assert.Equal(t, []string{logo.ImageURL}, f.blobs.revoked)

	second, err := f.uc.AddLogo(ctx, s.ID(), "b.png", strings.NewReader("b"), 1)
	require.NoError(t, err)

	require.NoError(t, f.uc.CloseSession(ctx, s.ID()))
	assert.Contains(t, f.blobs.revoked, second.ImageURL)

	_, err = f.uc.Session(s.ID())
	assert.ErrorIs(t, err, ErrSessionNotFound)
	assert.ErrorIs(t, f.uc.CloseSession(ctx, s.ID()), ErrSessionNotFound)
}

func TestCompositeDownload(t *testing.T) {
	ctx := context.Background()

	t.Run("renders locally", func(t *testing.T) {
		f := newFixture(t)
		f.api.images["/files/asset-1.png"] = pngBytes(t, 100, 100, testRed)
		s, err := f.uc.OpenSession(ctx, OpenRequest{AssetID: "asset-1"})
		require.NoError(t, err)

		logo, err := f.uc.AddLogo(ctx, s.ID(), "l.png", strings.NewReader(string(pngBytes(t, 4, 4, testRed))), 1)
		require.NoError(t, err)
		require.NotEmpty(t, logo.ID)

		dl, err := f.uc.CompositeDownload(ctx, s.ID())
		require.NoError(t, err)
		defer dl.Body.Close()

		assert.False(t, dl.Fallback)
		assert.Equal(t, "banner_edited.png", dl.Filename)
		assert.Equal(t, "image/png", dl.ContentType)
		data, err := io.ReadAll(dl.Body)
		require.NoError(t, err)
		assert.NotEmpty(t, data)
	})

	t.Run("caches base image per version", func(t *testing.T) {
		f := newFixture(t)
		f.api.images["/files/asset-1.png"] = pngBytes(t, 100, 100, testRed)
		f.api.images["/logos/a.png"] = pngBytes(t, 4, 4, testRed)
		s, err := f.uc.OpenSession(ctx, OpenRequest{AssetID: "asset-1"})
		require.NoError(t, err)
		_, err = s.AddLogo("/logos/a.png")
		require.NoError(t, err)
		_, err = s.AddLogo("/logos/missing.png")
		require.NoError(t, err)

		for i := 0; i < 2; i++ {
			dl, err := f.uc.CompositeDownload(ctx, s.ID())
			require.NoError(t, err)
			assert.False(t, dl.Fallback)
			dl.Body.Close()
		}
		assert.Equal(t, 1, f.api.fetchCalls["/files/asset-1.png"])
		assert.Equal(t, 2, f.api.fetchCalls["/logos/a.png"])

		s.SetAsset(testAsset())
		dl, err := f.uc.CompositeDownload(ctx, s.ID())
		require.NoError(t, err)
		dl.Body.Close()
		assert.Equal(t, 2, f.api.fetchCalls["/files/asset-1.png"])
	})

	t.Run("falls back to original", func(t *testing.T) {
		f := newFixture(t)
		f.api.fetchErr = errors.New("cors")
		s, err := f.uc.OpenSession(ctx, OpenRequest{AssetID: "asset-1"})
		require.NoError(t, err)

		dl, err := f.uc.CompositeDownload(ctx, s.ID())
		require.NoError(t, err)
		defer dl.Body.Close()

		assert.True(t, dl.Fallback)
		assert.True(t, f.api.downloadHit)
		assert.Equal(t, "asset_asset-1.jpg", dl.Filename)
	})
}

func TestAwaitJobAndLogout(t *testing.T) {
	f := newFixture(t)
	f.api.results = domain.JobResults{"Instagram": {testAsset()}}

	status, results, err := f.uc.AwaitJob(context.Background(), "job-1")
	require.NoError(t, err)
	assert.Equal(t, domain.JobCompleted, status.Status)
	assert.Equal(t, 1, results.Count())

	f.uc.Logout(context.Background())
	assert.True(t, f.api.loggedOut)
}

func TestPreview(t *testing.T) {
	f := newFixture(t)
	f.blobs.objects[domain.PreviewPath("asset-1", 2)] = []byte("jpeg")

	data, err := f.uc.Preview(context.Background(), "asset-1", 2)
	require.NoError(t, err)
	assert.Equal(t, []byte("jpeg"), data)

	_, err = f.uc.Preview(context.Background(), "asset-1", 3)
	assert.ErrorIs(t, err, ErrPreviewNotFound)
}

func TestProjectsAndGeneration(t *testing.T) {
	ctx := context.Background()

	t.Run("list clamps paging", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.uc.ListProjects(ctx, 0, -5)
		require.NoError(t, err)
		assert.Equal(t, [2]int{20, 0}, f.api.listed)

		_, err = f.uc.ListProjects(ctx, 500, 40)
		require.NoError(t, err)
		assert.Equal(t, [2]int{100, 40}, f.api.listed)
	})

	t.Run("upload", func(t *testing.T) {
		f := newFixture(t)
		resp, err := f.uc.UploadProject(ctx, "Spring", []api.File{{Name: "hero.png", Data: strings.NewReader("png")}})
		require.NoError(t, err)
		assert.Equal(t, "p1", resp.ProjectID)
		assert.Equal(t, []string{"Spring/hero.png"}, f.api.projects)

		_, err = f.uc.UploadProject(ctx, "Empty", nil)
		assert.ErrorIs(t, err, api.ErrEmptyUpload)
	})

	t.Run("generation needs a format", func(t *testing.T) {
		f := newFixture(t)
		f.api.jobID = "job-7"

		_, err := f.uc.StartGeneration(ctx, domain.GenerationRequest{ProjectID: "p1"})
		assert.ErrorIs(t, err, ErrNoFormats)

		_, err = f.uc.StartGeneration(ctx, domain.GenerationRequest{
			ProjectID:     "p1",
			CustomResizes: []domain.Dimensions{{Width: 0, Height: 100}},
		})
		assert.ErrorIs(t, err, ErrNoFormats)
		assert.Empty(t, f.api.generations)

		jobID, err := f.uc.StartGeneration(ctx, domain.GenerationRequest{ProjectID: "p1", FormatIDs: []string{"ig-square"}})
		require.NoError(t, err)
		assert.Equal(t, "job-7", jobID)
	})

	t.Run("generation without job id", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.uc.StartGeneration(ctx, domain.GenerationRequest{ProjectID: "p1", FormatIDs: []string{"ig-square"}})
		assert.Error(t, err)
	})

	t.Run("download and account passthrough", func(t *testing.T) {
		f := newFixture(t)

		url, err := f.uc.RequestDownload(ctx, domain.DownloadRequest{AssetIDs: []string{"asset-1"}, Format: "png"})
		require.NoError(t, err)
		assert.Equal(t, "/downloads/png.zip", url)

		user, err := f.uc.UpdatePreferences(ctx, map[string]any{"theme": "dark"})
		require.NoError(t, err)
		assert.Equal(t, "dark", user.Preferences["theme"])

		me, err := f.uc.Me(ctx)
		require.NoError(t, err)
		assert.Equal(t, "designer", me.Username)

		providers, err := f.uc.Providers(ctx)
		require.NoError(t, err)
		assert.Equal(t, "openai", providers.DefaultProvider)

		assets, err := f.uc.ProjectPreview(ctx, "p1")
		require.NoError(t, err)
		assert.Len(t, assets, 1)
	})
}
