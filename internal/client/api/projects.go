package api

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"

	"creative-editor/internal/domain"
)

// File is one part of a multipart upload.
type File struct {
	Name string
	Data io.Reader
}

func (c *Client) ListProjects(ctx context.Context, limit, offset int) ([]domain.Project, error) {
	q := url.Values{}
	q.Set("limit", strconv.Itoa(limit))
	q.Set("offset", strconv.Itoa(offset))

	var projects []domain.Project
	if err := c.getJSON(ctx, "/projects?"+q.Encode(), &projects); err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	return projects, nil
}

// UploadProject sends the creative files of a new project as multipart form data.
func (c *Client) UploadProject(ctx context.Context, name string, files []File) (domain.UploadResponse, error) {
	if len(files) == 0 {
		return domain.UploadResponse{}, ErrEmptyUpload
	}

	var resp domain.UploadResponse
	err := c.postMultipart(ctx, "/projects/upload", func(w *multipart.Writer) error {
		if err := w.WriteField("projectName", name); err != nil {
			return err
		}
		for _, f := range files {
			if err := writeFilePart(w, "files", f); err != nil {
				return err
			}
		}
		return nil
	}, &resp)
	if err != nil {
		return domain.UploadResponse{}, fmt.Errorf("failed to upload project: %w", err)
	}
	return resp, nil
}

func (c *Client) ProjectPreview(ctx context.Context, projectID string) ([]domain.Asset, error) {
	var assets []domain.Asset
	if err := c.getJSON(ctx, "/projects/"+url.PathEscape(projectID)+"/preview", &assets); err != nil {
		return nil, fmt.Errorf("failed to get project preview: %w", err)
	}
	return assets, nil
}

func (c *Client) postMultipart(ctx context.Context, path string, build func(*multipart.Writer) error, out any) error {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	if err := build(w); err != nil {
		return fmt.Errorf("failed to build multipart body: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("failed to close multipart body: %w", err)
	}

	req, err := c.newRequest(ctx, http.MethodPost, c.url(path), &buf)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	return c.send(req, out)
}

func writeFilePart(w *multipart.Writer, field string, f File) error {
	part, err := w.CreateFormFile(field, f.Name)
	if err != nil {
		return err
	}
	_, err = io.Copy(part, f.Data)
	return err
}
