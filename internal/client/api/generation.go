package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"creative-editor/internal/domain"
)

func (c *Client) Formats(ctx context.Context) (domain.FormatsResponse, error) {
	var formats domain.FormatsResponse
	if err := c.getJSON(ctx, "/formats", &formats); err != nil {
		return domain.FormatsResponse{}, fmt.Errorf("failed to get formats: %w", err)
	}
	return formats, nil
}

func (c *Client) Providers(ctx context.Context) (domain.ProvidersResponse, error) {
	var providers domain.ProvidersResponse
	if err := c.getJSON(ctx, "/providers", &providers); err != nil {
		return domain.ProvidersResponse{}, fmt.Errorf("failed to get providers: %w", err)
	}
	return providers, nil
}

func (c *Client) StartGeneration(ctx context.Context, req domain.GenerationRequest) (domain.GenerationJob, error) {
	var job domain.GenerationJob
	if err := c.doJSON(ctx, http.MethodPost, "/generate", req, &job); err != nil {
		return domain.GenerationJob{}, fmt.Errorf("failed to start generation: %w", err)
	}
	return job, nil
}

func (c *Client) JobStatus(ctx context.Context, jobID string) (domain.JobStatus, error) {
	var status domain.JobStatus
	if err := c.getJSON(ctx, "/generate/"+url.PathEscape(jobID)+"/status", &status); err != nil {
		return domain.JobStatus{}, fmt.Errorf("failed to get job status: %w", err)
	}
	return status, nil
}

func (c *Client) JobResults(ctx context.Context, jobID string) (domain.JobResults, error) {
	var results domain.JobResults
	if err := c.getJSON(ctx, "/generate/"+url.PathEscape(jobID)+"/results", &results); err != nil {
		return nil, fmt.Errorf("failed to get job results: %w", err)
	}
	return results, nil
}
