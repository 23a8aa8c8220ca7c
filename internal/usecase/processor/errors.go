package processor

import "errors"

var (
	ErrDecodeImage   = errors.New("failed to decode image")
	ErrInvalidCanvas = errors.New("invalid canvas dimensions")
)
