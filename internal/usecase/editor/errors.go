package editor

import "errors"

var (
	ErrSessionNotFound   = errors.New("editor session not found")
	ErrNoResults         = errors.New("job has no generated assets")
	ErrMissingTarget     = errors.New("asset id or job id is required")
	ErrImageFileNotFound = errors.New("image file not found")
	ErrPreviewNotFound   = errors.New("preview not found")
	ErrNoFormats         = errors.New("at least one valid format or custom size is required")
)
