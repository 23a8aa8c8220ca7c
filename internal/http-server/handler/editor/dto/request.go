package dto

import "creative-editor/internal/domain"

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// OpenSessionRequest opens an asset directly or the first asset of a finished job.
type OpenSessionRequest struct {
	AssetID string `json:"assetId" validate:"required_without=JobID"`
	JobID   string `json:"jobId" validate:"required_without=AssetID"`
}

type AdjustmentRequest struct {
	Value *float64 `json:"value" validate:"required"`
}

// DragRequest carries where a drag stopped, in display pixels of a container
// of the given size.
type DragRequest struct {
	Container domain.Size  `json:"container"`
	Position  domain.Point `json:"position"`
}

type ResizeRequest struct {
	Container domain.Size  `json:"container"`
	Size      domain.Size  `json:"size"`
	Position  domain.Point `json:"position"`
}

// AddTextRequest adds a preset-styled text when StyleID is set, custom text otherwise.
type AddTextRequest struct {
	Text    string `json:"text" validate:"required,max=500"`
	StyleID string `json:"styleId" validate:"omitempty,oneof=t1 t2 t3 t4 t5 t6"`
	Color   string `json:"color" validate:"omitempty,hexcolor"`
}

type GenerationRequest struct {
	ProjectID     string              `json:"projectId" validate:"required"`
	FormatIDs     []string            `json:"formatIds" validate:"required_without=CustomResizes,dive,required"`
	CustomResizes []domain.Dimensions `json:"customResizes" validate:"required_without=FormatIDs"`
	Provider      string              `json:"provider"`
}

type DownloadRequest struct {
	AssetIDs []string `json:"assetIds" validate:"required,min=1,dive,required"`
	Format   string   `json:"format" validate:"omitempty,oneof=png jpeg jpg webp"`
	Quality  string   `json:"quality" validate:"omitempty,oneof=low medium high"`
	Grouping string   `json:"grouping" validate:"omitempty,oneof=none platform format"`
}

type PreferencesRequest struct {
	Preferences map[string]any `json:"preferences" validate:"required"`
}
