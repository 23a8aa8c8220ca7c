package editor

import (
	"net/http"

	"creative-editor/internal/http-server/handler/editor/dto"

	"github.com/go-chi/chi/v5"
)

func (h *EditorHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if err := h.decode(r, &req); err != nil {
		h.respondError(w, err)
		return
	}

	if err := h.usecase.Login(r.Context(), req.Username, req.Password); err != nil {
		h.respondError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, dto.StatusResponse{Status: "logged_in"})
}

func (h *EditorHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.usecase.Logout(r.Context())
	w.WriteHeader(http.StatusNoContent)
}

func (h *EditorHandler) Formats(w http.ResponseWriter, r *http.Request) {
	formats, err := h.usecase.Formats(r.Context())
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, formats)
}

// AwaitJob holds the request open until the job is terminal or the client goes away.
func (h *EditorHandler) AwaitJob(w http.ResponseWriter, r *http.Request) {
	status, results, err := h.usecase.AwaitJob(r.Context(), chi.URLParam(r, "jobID"))
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, dto.JobResponse{Status: status, Results: results})
}

func (h *EditorHandler) Me(w http.ResponseWriter, r *http.Request) {
	user, err := h.usecase.Me(r.Context())
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, user)
}

func (h *EditorHandler) UpdatePreferences(w http.ResponseWriter, r *http.Request) {
	var req dto.PreferencesRequest
	if err := h.decode(r, &req); err != nil {
		h.respondError(w, err)
		return
	}

	user, err := h.usecase.UpdatePreferences(r.Context(), req.Preferences)
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, user)
}
