package editor

import (
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"
)

var allowedLogoExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

var allowedCreativeExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".psd":  true,
	".tiff": true,
}

func validateCreative(header *multipart.FileHeader) error {
	if header.Size == 0 {
		return fmt.Errorf("%w: %s is empty", ErrInvalidUpload, header.Filename)
	}

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !allowedCreativeExtensions[ext] {
		return fmt.Errorf("%w: %s has an unsupported format, allowed: jpg, jpeg, png, psd, tiff", ErrInvalidUpload, header.Filename)
	}
	return nil
}

func validateLogo(header *multipart.FileHeader) error {
	if header.Size == 0 {
		return fmt.Errorf("%w: file is empty", ErrInvalidUpload)
	}

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !allowedLogoExtensions[ext] {
		return fmt.Errorf("%w: unsupported file format, allowed: jpg, jpeg, png, gif, webp", ErrInvalidUpload)
	}

	if contentType := header.Header.Get("Content-Type"); contentType != "" && !strings.HasPrefix(contentType, "image/") {
		return fmt.Errorf("%w: file must be an image", ErrInvalidUpload)
	}
	return nil
}
