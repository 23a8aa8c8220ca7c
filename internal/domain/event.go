package domain

import (
	"fmt"
	"time"
)

// EditAppliedEvent is published after the server accepted an edit and the
// asset was re-fetched.
type EditAppliedEvent struct {
	ID        string    `json:"id"`
	SessionID string    `json:"session_id"`
	AssetID   string    `json:"asset_id"`
	AssetURL  string    `json:"asset_url"`
	Version   int64     `json:"version"`
	AppliedAt time.Time `json:"applied_at"`
}

func PreviewPath(assetID string, version int64) string {
	return fmt.Sprintf("%s%s/%d.%s", PathPrefixPreview, assetID, version, FormatJPEG)
}

type ImageFormat string

const (
	FormatJPEG ImageFormat = "jpeg"
	FormatPNG  ImageFormat = "png"
	FormatGIF  ImageFormat = "gif"
	FormatWebP ImageFormat = "webp"
)
