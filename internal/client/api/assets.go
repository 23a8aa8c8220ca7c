package api

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"

	"creative-editor/internal/domain"
)

var maxImageBytes int64 = 32 << 20

func (c *Client) GetGeneratedAsset(ctx context.Context, assetID string) (domain.Asset, error) {
	var asset domain.Asset
	if err := c.getJSON(ctx, "/generated-assets/"+url.PathEscape(assetID), &asset); err != nil {
		return domain.Asset{}, fmt.Errorf("failed to get generated asset: %w", err)
	}
	return asset, nil
}

// ApplyEdits submits a normalized edit payload; the server bakes it into a
// new image and returns the updated asset.
func (c *Client) ApplyEdits(ctx context.Context, assetID string, edits *domain.EditPayload) (domain.Asset, error) {
	var asset domain.Asset
	body := domain.ApplyEditsRequest{Edits: *edits}
	if err := c.doJSON(ctx, http.MethodPut, "/generated-assets/"+url.PathEscape(assetID), body, &asset); err != nil {
		return domain.Asset{}, fmt.Errorf("failed to apply edits: %w", err)
	}
	return asset, nil
}

// UploadLogo stores a logo image server-side and returns its durable path.
func (c *Client) UploadLogo(ctx context.Context, filename string, data io.Reader) (domain.LogoUploadResponse, error) {
	var resp domain.LogoUploadResponse
	err := c.postMultipart(ctx, "/logos/upload", func(w *multipart.Writer) error {
		return writeFilePart(w, "file", File{Name: filename, Data: data})
	}, &resp)
	if err != nil {
		return domain.LogoUploadResponse{}, fmt.Errorf("failed to upload logo: %w", err)
	}
	return resp, nil
}

func (c *Client) RequestDownload(ctx context.Context, req domain.DownloadRequest) (domain.DownloadResponse, error) {
	var resp domain.DownloadResponse
	if err := c.doJSON(ctx, http.MethodPost, "/download", req, &resp); err != nil {
		return domain.DownloadResponse{}, fmt.Errorf("failed to request download: %w", err)
	}
	return resp, nil
}

// DownloadAsset streams the unmodified asset binary. The caller closes the reader.
func (c *Client) DownloadAsset(ctx context.Context, assetID string) (io.ReadCloser, string, error) {
	req, err := c.newRequest(ctx, http.MethodGet, c.url("/assets/"+url.PathEscape(assetID)+"/download"), nil)
	if err != nil {
		return nil, "", err
	}
	req.Header.Set("Accept", "*/*")

	resp, err := c.do(req)
	if err != nil {
		return nil, "", fmt.Errorf("failed to download asset: %w", err)
	}
	return resp.Body, resp.Header.Get("Content-Type"), nil
}

// FetchImage loads an image by URL. A plain GET is tried first; if it fails
// the image is fetched again with the bearer token. Relative URLs are
// resolved against the API base URL.
func (c *Client) FetchImage(ctx context.Context, imageURL string) ([]byte, error) {
	if strings.HasPrefix(imageURL, "/") {
		imageURL = c.baseURL + imageURL
	}

	data, err := c.fetchPlain(ctx, imageURL)
	if err == nil || errors.Is(err, ErrImageTooLarge) {
		return data, err
	}

	req, err := c.newRequest(ctx, http.MethodGet, imageURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "image/*")

	resp, err := c.do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch image: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	return readImage(resp.Body)
}

func (c *Client) fetchPlain(ctx context.Context, imageURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, imageURL, nil)
	if err != nil {
		return nil, err
	}
	if err := c.wait(ctx); err != nil {
		return nil, err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("image returned status: %d", resp.StatusCode)
	}
	return readImage(resp.Body)
}

// readImage reads at most maxImageBytes and fails with ErrImageTooLarge beyond that.
func readImage(r io.Reader) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, maxImageBytes+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read image: %w", err)
	}
	if int64(len(data)) > maxImageBytes {
		return nil, fmt.Errorf("%w: limit is %d bytes", ErrImageTooLarge, maxImageBytes)
	}
	return data, nil
}
