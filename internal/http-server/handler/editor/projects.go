package editor

import (
	"fmt"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"creative-editor/internal/client/api"
	"creative-editor/internal/domain"
	"creative-editor/internal/http-server/handler/editor/dto"

	"github.com/go-chi/chi/v5"
)

func (h *EditorHandler) ListProjects(w http.ResponseWriter, r *http.Request) {
	limit, err := intQuery(r, "limit")
	if err != nil {
		h.respondError(w, err)
		return
	}
	offset, err := intQuery(r, "offset")
	if err != nil {
		h.respondError(w, err)
		return
	}

	projects, err := h.usecase.ListProjects(r.Context(), limit, offset)
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, projects)
}

// UploadProject forwards the creatives of a new project. The form carries a
// projectName field and one or more files parts.
func (h *EditorHandler) UploadProject(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)

	if err := r.ParseMultipartForm(maxMemory); err != nil {
		h.logger.Warn().Err(err).Msg("Failed to parse multipart form")
		h.respondError(w, fmt.Errorf("%w: %v", ErrInvalidUpload, err))
		return
	}
	defer func() { _ = r.MultipartForm.RemoveAll() }()

	name := strings.TrimSpace(r.FormValue("projectName"))
	if name == "" {
		h.respondError(w, fmt.Errorf("%w: projectName is required", ErrInvalidUpload))
		return
	}
	headers := r.MultipartForm.File["files"]
	if len(headers) == 0 {
		h.respondError(w, fmt.Errorf("%w: at least one file is required", ErrInvalidUpload))
		return
	}

	files := make([]api.File, 0, len(headers))
	for _, header := range headers {
		if err := validateCreative(header); err != nil {
			h.respondError(w, err)
			return
		}
		file, err := header.Open()
		if err != nil {
			h.respondError(w, fmt.Errorf("%w: %v", ErrInvalidUpload, err))
			return
		}
		defer func(f multipart.File) { _ = f.Close() }(file)
		files = append(files, api.File{Name: header.Filename, Data: file})
	}

	resp, err := h.usecase.UploadProject(r.Context(), name, files)
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.respondJSON(w, http.StatusCreated, resp)
}

func (h *EditorHandler) ProjectPreview(w http.ResponseWriter, r *http.Request) {
	assets, err := h.usecase.ProjectPreview(r.Context(), chi.URLParam(r, "projectID"))
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, assets)
}

func (h *EditorHandler) Providers(w http.ResponseWriter, r *http.Request) {
	providers, err := h.usecase.Providers(r.Context())
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, providers)
}

func (h *EditorHandler) StartGeneration(w http.ResponseWriter, r *http.Request) {
	var req dto.GenerationRequest
	if err := h.decode(r, &req); err != nil {
		h.respondError(w, err)
		return
	}

	jobID, err := h.usecase.StartGeneration(r.Context(), domain.GenerationRequest{
		ProjectID:     req.ProjectID,
		FormatIDs:     req.FormatIDs,
		CustomResizes: req.CustomResizes,
		Provider:      req.Provider,
	})
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.respondJSON(w, http.StatusAccepted, dto.GenerationResponse{JobID: jobID})
}

func (h *EditorHandler) RequestDownload(w http.ResponseWriter, r *http.Request) {
	var req dto.DownloadRequest
	if err := h.decode(r, &req); err != nil {
		h.respondError(w, err)
		return
	}

	url, err := h.usecase.RequestDownload(r.Context(), domain.DownloadRequest{
		AssetIDs: req.AssetIDs,
		Format:   req.Format,
		Quality:  req.Quality,
		Grouping: req.Grouping,
	})
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, dto.DownloadResponse{DownloadURL: url})
}

// intQuery reads an optional integer query parameter; absent means zero.
func intQuery(r *http.Request, name string) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be an integer", ErrInvalidQuery, name)
	}
	return v, nil
}
