package api

import (
	"context"
	"errors"
	"fmt"
	"time"

	"creative-editor/internal/domain"
)

const (
	DefaultPollInterval = 2 * time.Second
	DefaultPollBackoff  = 5 * time.Second
)

type StatusFetcher interface {
	JobStatus(ctx context.Context, jobID string) (domain.JobStatus, error)
}

// Poller waits for a generation job by re-arming a timer after every
// status request: a fixed interval while the API answers, error responses
// included, and a longer backoff when the API cannot be reached.
type Poller struct {
	fetcher  StatusFetcher
	interval time.Duration
	backoff  time.Duration
}

func NewPoller(fetcher StatusFetcher, interval, backoff time.Duration) *Poller {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	if backoff <= 0 {
		backoff = DefaultPollBackoff
	}
	return &Poller{fetcher: fetcher, interval: interval, backoff: backoff}
}

// Await polls until the job is completed or failed, or ctx is done.
// onProgress, if set, sees every successful status.
func (p *Poller) Await(ctx context.Context, jobID string, onProgress func(domain.JobStatus)) (domain.JobStatus, error) {
	timer := time.NewTimer(0)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return domain.JobStatus{}, ctx.Err()
		case <-timer.C:
		}

		status, err := p.fetcher.JobStatus(ctx, jobID)
		if err != nil {
			if errors.Is(err, ErrUnauthorized) || ctx.Err() != nil {
				return domain.JobStatus{}, err
			}
			if errors.Is(err, ErrNetwork) {
				timer.Reset(p.backoff)
			} else {
				timer.Reset(p.interval)
			}
			continue
		}

		if onProgress != nil {
			onProgress(status)
		}

		switch status.Status {
		case domain.JobCompleted:
			return status, nil
		case domain.JobFailed:
			return status, fmt.Errorf("%w: %s", ErrJobFailed, jobID)
		}
		timer.Reset(p.interval)
	}
}
