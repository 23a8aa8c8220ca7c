package editor

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"strconv"

	"creative-editor/internal/domain"
	core "creative-editor/internal/editor"
	"creative-editor/internal/http-server/handler/editor/dto"
	editor_uc "creative-editor/internal/usecase/editor"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/wb-go/wbf/zlog"
)

const maxMemory = 8 << 20

type EditorHandler struct {
	usecase       editorUsecase
	validate      *validator.Validate
	logger        *zlog.Zerolog
	maxUploadSize int64
}

func NewEditorHandler(usecase editorUsecase, logger *zlog.Zerolog, maxUploadSize int64) *EditorHandler {
	if maxUploadSize <= 0 {
		maxUploadSize = domain.DefaultMaxUploadSize
	}
	return &EditorHandler{
		usecase:       usecase,
		validate:      validator.New(),
		logger:        logger,
		maxUploadSize: maxUploadSize,
	}
}

func (h *EditorHandler) OpenSession(w http.ResponseWriter, r *http.Request) {
	var req dto.OpenSessionRequest
	if err := h.decode(r, &req); err != nil {
		h.respondError(w, err)
		return
	}

	s, err := h.usecase.OpenSession(r.Context(), editor_uc.OpenRequest{AssetID: req.AssetID, JobID: req.JobID})
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.respondJSON(w, http.StatusCreated, sessionResponse(s))
}

// GetSession returns the session in image pixels. With containerWidth and
// containerHeight the response also carries the layout in display pixels.
func (h *EditorHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}

	resp := sessionResponse(s)
	q := r.URL.Query()
	if q.Has("containerWidth") || q.Has("containerHeight") {
		container, err := containerQuery(q.Get("containerWidth"), q.Get("containerHeight"))
		if err != nil {
			h.respondError(w, err)
			return
		}
		layout, err := s.Layout(container)
		if err != nil {
			h.respondError(w, err)
			return
		}
		resp.Layout = &layout
	}
	h.respondJSON(w, http.StatusOK, resp)
}

func (h *EditorHandler) CloseSession(w http.ResponseWriter, r *http.Request) {
	if err := h.usecase.CloseSession(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *EditorHandler) SetAdjustment(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}

	var req dto.AdjustmentRequest
	if err := h.decode(r, &req); err != nil {
		h.respondError(w, err)
		return
	}

	if err := s.Set(domain.AdjustmentKey(chi.URLParam(r, "key")), *req.Value); err != nil {
		h.respondError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, sessionResponse(s))
}

func (h *EditorHandler) DragCrop(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}

	var req dto.DragRequest
	if err := h.decode(r, &req); err != nil {
		h.respondError(w, err)
		return
	}

	if _, err := s.DragCrop(req.Container, req.Position); err != nil {
		h.respondError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, sessionResponse(s))
}

func (h *EditorHandler) ResizeCrop(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}

	var req dto.ResizeRequest
	if err := h.decode(r, &req); err != nil {
		h.respondError(w, err)
		return
	}

	if _, err := s.ResizeCrop(req.Container, req.Size, req.Position); err != nil {
		h.respondError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, sessionResponse(s))
}

func (h *EditorHandler) AddText(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}

	var req dto.AddTextRequest
	if err := h.decode(r, &req); err != nil {
		h.respondError(w, err)
		return
	}

	var (
		overlay domain.TextOverlay
		err     error
	)
	if req.StyleID != "" {
		overlay, err = s.AddText(req.Text, req.StyleID)
	} else {
		overlay, err = s.AddCustomText(req.Text, req.Color)
	}
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.respondJSON(w, http.StatusCreated, overlay)
}

func (h *EditorHandler) RemoveText(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	if err := s.RemoveText(chi.URLParam(r, "overlayID")); err != nil {
		h.respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// DragText and the other overlay handlers resolve the bound handler pair
// for the overlay named in the path.
func (h *EditorHandler) DragText(w http.ResponseWriter, r *http.Request) {
	h.dragOverlay(w, r, (*core.Session).TextHandlers)
}

func (h *EditorHandler) ResizeText(w http.ResponseWriter, r *http.Request) {
	h.resizeOverlay(w, r, (*core.Session).TextHandlers)
}

func (h *EditorHandler) DragLogo(w http.ResponseWriter, r *http.Request) {
	h.dragOverlay(w, r, (*core.Session).LogoHandlers)
}

func (h *EditorHandler) ResizeLogo(w http.ResponseWriter, r *http.Request) {
	h.resizeOverlay(w, r, (*core.Session).LogoHandlers)
}

type bindHandlers func(s *core.Session, id string, container domain.Size) core.OverlayHandlers

func (h *EditorHandler) dragOverlay(w http.ResponseWriter, r *http.Request, bind bindHandlers) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}

	var req dto.DragRequest
	if err := h.decode(r, &req); err != nil {
		h.respondError(w, err)
		return
	}

	handlers := bind(s, chi.URLParam(r, "overlayID"), req.Container)
	if err := handlers.OnDragStop(req.Position); err != nil {
		h.respondError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, sessionResponse(s))
}

func (h *EditorHandler) resizeOverlay(w http.ResponseWriter, r *http.Request, bind bindHandlers) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}

	var req dto.ResizeRequest
	if err := h.decode(r, &req); err != nil {
		h.respondError(w, err)
		return
	}

	handlers := bind(s, chi.URLParam(r, "overlayID"), req.Container)
	if err := handlers.OnResizeStop(req.Size, req.Position); err != nil {
		h.respondError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, sessionResponse(s))
}

func (h *EditorHandler) AddLogo(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "id")
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)

	if err := r.ParseMultipartForm(maxMemory); err != nil {
		h.logger.Warn().Err(err).Msg("Failed to parse multipart form")
		h.respondError(w, fmt.Errorf("%w: %v", ErrInvalidUpload, err))
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		h.respondError(w, fmt.Errorf("%w: file is required", ErrInvalidUpload))
		return
	}
	defer file.Close()

	if err := validateLogo(header); err != nil {
		h.respondError(w, err)
		return
	}

	overlay, err := h.usecase.AddLogo(r.Context(), sessionID, header.Filename, file, header.Size)
	if err != nil {
		h.respondError(w, err)
		return
	}

	h.logger.Info().
		Str("session_id", sessionID).
		Str("overlay_id", overlay.ID).
		Str("filename", header.Filename).
		Msg("Logo staged")
	h.respondJSON(w, http.StatusCreated, overlay)
}

func (h *EditorHandler) RemoveLogo(w http.ResponseWriter, r *http.Request) {
	if err := h.usecase.RemoveLogo(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "overlayID")); err != nil {
		h.respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *EditorHandler) Apply(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}

	result, err := h.usecase.Apply(r.Context(), s.ID())
	if err != nil {
		h.respondError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, dto.ApplyResponse{
		Asset:        result.Asset,
		Stale:        result.Stale,
		Warning:      result.Warning,
		SkippedLogos: result.SkippedLogos,
		Session:      sessionResponse(s),
	})
}

func (h *EditorHandler) Composite(w http.ResponseWriter, r *http.Request) {
	download, err := h.usecase.CompositeDownload(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.respondError(w, err)
		return
	}
	defer download.Body.Close()

	w.Header().Set("Content-Type", download.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", download.Filename))
	if download.Fallback {
		w.Header().Set("X-Composite-Fallback", "true")
	}
	w.WriteHeader(http.StatusOK)

	if _, err := io.Copy(w, download.Body); err != nil {
		h.logger.Error().Err(err).Str("filename", download.Filename).Msg("Failed to stream download")
	}
}

func (h *EditorHandler) Preview(w http.ResponseWriter, r *http.Request) {
	version, err := strconv.ParseInt(r.URL.Query().Get("version"), 10, 64)
	if err != nil || version < 0 {
		h.respondError(w, fmt.Errorf("%w: version must be a non-negative integer", ErrInvalidQuery))
		return
	}

	data, err := h.usecase.Preview(r.Context(), chi.URLParam(r, "assetID"), version)
	if err != nil {
		h.respondError(w, err)
		return
	}

	w.Header().Set("Content-Type", "image/jpeg")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		h.logger.Error().Err(err).Msg("Failed to write preview")
	}
}

func containerQuery(width, height string) (domain.Size, error) {
	w, err := strconv.ParseFloat(width, 64)
	if err != nil || math.IsNaN(w) || math.IsInf(w, 0) {
		return domain.Size{}, fmt.Errorf("%w: containerWidth must be a number", ErrInvalidQuery)
	}
	ht, err := strconv.ParseFloat(height, 64)
	if err != nil || math.IsNaN(ht) || math.IsInf(ht, 0) {
		return domain.Size{}, fmt.Errorf("%w: containerHeight must be a number", ErrInvalidQuery)
	}
	return domain.Size{Width: w, Height: ht}, nil
}

func (h *EditorHandler) session(w http.ResponseWriter, r *http.Request) (*core.Session, bool) {
	s, err := h.usecase.Session(chi.URLParam(r, "id"))
	if err != nil {
		h.respondError(w, err)
		return nil, false
	}
	return s, true
}

func (h *EditorHandler) decode(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidBody, err)
	}
	if err := h.validate.Struct(dst); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidBody, err)
	}
	return nil
}

func sessionResponse(s *core.Session) dto.SessionResponse {
	resp := dto.SessionResponse{
		ID:          s.ID(),
		Adjustments: s.Snapshot(),
		Dirty:       s.Dirty(),
		HasChanges:  s.HasChanges(),
		Submitting:  s.Submitting(),
	}
	if asset, ok := s.Asset(); ok {
		resp.Asset = &asset
	}
	return resp
}

func (h *EditorHandler) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error().Err(err).Msg("Failed to encode response")
	}
}

func (h *EditorHandler) respondError(w http.ResponseWriter, err error) {
	status, message := statusFor(err)
	if status >= http.StatusInternalServerError {
		h.logger.Error().Err(err).Int("status", status).Msg("Request failed")
	} else {
		h.logger.Warn().Err(err).Int("status", status).Msg("Request rejected")
	}

	response := dto.ErrorResponse{
		Error:   http.StatusText(status),
		Message: message,
	}
	if detail := err.Error(); detail != message {
		response.Details = detail
	}
	h.respondJSON(w, status, response)
}
