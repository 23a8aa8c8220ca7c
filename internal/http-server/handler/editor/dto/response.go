package dto

import (
	"creative-editor/internal/domain"
	core "creative-editor/internal/editor"
)

type SessionResponse struct {
	ID          string                  `json:"id"`
	Asset       *domain.Asset           `json:"asset,omitempty"`
	Adjustments domain.ImageAdjustments `json:"adjustments"`
	Dirty       bool                    `json:"dirty"`
	HasChanges  bool                    `json:"hasChanges"`
	Submitting  bool                    `json:"submitting"`
	// Layout is present when the request named a display container.
	Layout *core.Layout `json:"layout,omitempty"`
}

type ApplyResponse struct {
	Asset        domain.Asset    `json:"asset"`
	Stale        bool            `json:"stale"`
	Warning      string          `json:"warning,omitempty"`
	SkippedLogos []string        `json:"skippedLogos,omitempty"`
	Session      SessionResponse `json:"session"`
}

type JobResponse struct {
	Status  domain.JobStatus  `json:"status"`
	Results domain.JobResults `json:"results"`
}

type StatusResponse struct {
	Status string `json:"status"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

type GenerationResponse struct {
	JobID string `json:"jobId"`
}

type DownloadResponse struct {
	DownloadURL string `json:"downloadUrl"`
}
