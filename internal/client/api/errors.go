package api

import (
	"errors"
	"fmt"
)

var (
	ErrUnauthorized  = errors.New("unauthorized: please log in again")
	ErrNetwork       = errors.New("cannot connect to the creative API, please check your connection")
	ErrNoToken       = errors.New("no access token")
	ErrJobFailed     = errors.New("generation job failed")
	ErrEmptyUpload   = errors.New("no files to upload")
	ErrImageTooLarge = errors.New("image exceeds the size limit")
)

// HTTPError is a non-2xx answer from the API. Message and Detail come from
// the response body when the server provided them.
type HTTPError struct {
	StatusCode int
	Message    string
	Detail     string
}

func (e *HTTPError) Error() string {
	switch {
	case e.Detail != "":
		return fmt.Sprintf("api returned status %d: %s", e.StatusCode, e.Detail)
	case e.Message != "":
		return fmt.Sprintf("api returned status %d: %s", e.StatusCode, e.Message)
	default:
		return fmt.Sprintf("api returned status %d", e.StatusCode)
	}
}

// UserMessage prefers the server detail over the generic message.
func (e *HTTPError) UserMessage() string {
	if e.Detail != "" {
		return e.Detail
	}
	if e.Message != "" {
		return e.Message
	}
	return "An unexpected error occurred"
}
