package editor

import (
	"context"
	"fmt"

	"creative-editor/internal/domain"
)

func (u *Usecase) Login(ctx context.Context, username, password string) error {
	if _, err := u.api.Login(ctx, username, password); err != nil {
		return err
	}
	u.logger.Info().Str("username", username).Msg("Logged in")
	return nil
}

// Logout never fails: the local token is dropped even if the server call does.
func (u *Usecase) Logout(ctx context.Context) {
	if err := u.api.Logout(ctx); err != nil {
		u.logger.Warn().Err(err).Msg("Logout request failed")
	}
}

func (u *Usecase) Formats(ctx context.Context) (domain.FormatsResponse, error) {
	return u.api.Formats(ctx)
}

// AwaitJob blocks until the generation job finishes and returns its results.
func (u *Usecase) AwaitJob(ctx context.Context, jobID string) (domain.JobStatus, domain.JobResults, error) {
	status, err := u.poller.Await(ctx, jobID, func(s domain.JobStatus) {
		u.logger.Debug().Str("job_id", jobID).Str("status", string(s.Status)).Float64("progress", s.Progress).Msg("Job progress")
	})
	if err != nil {
		return status, nil, err
	}

	results, err := u.api.JobResults(ctx, jobID)
	if err != nil {
		return status, nil, fmt.Errorf("failed to load job results: %w", err)
	}
	u.logger.Info().Str("job_id", jobID).Int("assets", results.Count()).Msg("Job finished")
	return status, results, nil
}
