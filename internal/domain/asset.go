package domain

type Asset struct {
	ID              string     `json:"id"`
	OriginalAssetID string     `json:"original_asset_id,omitempty"`
	Filename        string     `json:"filename"`
	AssetURL        string     `json:"assetUrl"`
	PlatformName    string     `json:"platformName,omitempty"`
	FormatName      string     `json:"formatName,omitempty"`
	Dimensions      Dimensions `json:"dimensions"`
	IsNSFW          bool       `json:"is_nsfw,omitempty"`
	// Version is bumped locally each time the asset is re-fetched after an
	// applied edit; previews and image URLs are keyed by it.
	Version int64 `json:"version"`
}

type Format struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	PlatformName string `json:"platformName"`
	Width        int    `json:"width"`
	Height       int    `json:"height"`
	Description  string `json:"description,omitempty"`
}

type FormatsResponse struct {
	Resizing    []Format `json:"resizing"`
	Repurposing []Format `json:"repurposing"`
}

type ProvidersResponse struct {
	Providers       []string `json:"providers"`
	DefaultProvider string   `json:"default_provider,omitempty"`
}

type User struct {
	ID          string         `json:"id"`
	Username    string         `json:"username"`
	Email       string         `json:"email,omitempty"`
	Preferences map[string]any `json:"preferences,omitempty"`
}

type Project struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Status    string `json:"status,omitempty"`
	CreatedAt string `json:"createdAt,omitempty"`
}

type UploadResponse struct {
	ProjectID string `json:"projectId"`
	Message   string `json:"message,omitempty"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginResponse struct {
	AccessToken string `json:"accessToken"`
}

type GenerationRequest struct {
	ProjectID     string       `json:"projectId"`
	FormatIDs     []string     `json:"formatIds"`
	CustomResizes []Dimensions `json:"customResizes,omitempty"`
	Provider      string       `json:"provider,omitempty"`
}

type GenerationJob struct {
	JobID  string `json:"jobId,omitempty"`
	ID     string `json:"id,omitempty"`
	Status string `json:"status,omitempty"`
}

// Handle returns whichever job identifier the server filled in.
func (j GenerationJob) Handle() string {
	if j.JobID != "" {
		return j.JobID
	}
	return j.ID
}

type JobState string

const (
	JobPending    JobState = "pending"
	JobProcessing JobState = "processing"
	JobCompleted  JobState = "completed"
	JobFailed     JobState = "failed"
)

func (s JobState) Terminal() bool {
	return s == JobCompleted || s == JobFailed
}

type JobStatus struct {
	Status   JobState `json:"status"`
	Progress float64  `json:"progress"`
}

// JobResults maps a platform name to the assets generated for it.
type JobResults map[string][]Asset

// First returns the first asset in platform-name order.
func (r JobResults) First() (Asset, bool) {
	var best string
	found := false
	for platform, assets := range r {
		if len(assets) == 0 {
			continue
		}
		if !found || platform < best {
			best = platform
			found = true
		}
	}
	if !found {
		return Asset{}, false
	}
	return r[best][0], true
}

func (r JobResults) Count() int {
	n := 0
	for _, assets := range r {
		n += len(assets)
	}
	return n
}

type DownloadRequest struct {
	AssetIDs []string `json:"assetIds"`
	Format   string   `json:"format"`
	Quality  string   `json:"quality"`
	Grouping string   `json:"grouping"`
}

type DownloadResponse struct {
	DownloadURL string `json:"downloadUrl"`
}

type LogoUploadResponse struct {
	LogoPath string `json:"logo_path"`
}
