package blob

import "errors"

var (
	ErrBlobNotFound   = errors.New("blob not found")
	ErrNotLocalBlob   = errors.New("not a local blob url")
	ErrObjectNotFound = errors.New("object not found")
	ErrStorageError   = errors.New("storage error")
	ErrEmptyBlob      = errors.New("empty blob")
)
