package router

import (
	"net/http"

	"creative-editor/internal/http-server/handler/editor"
	"creative-editor/internal/http-server/middleware"

	"github.com/go-chi/chi/v5"
)

type Handler struct {
	EditorHandler *editor.EditorHandler
}

func SetupRouter(h *Handler) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestIDMiddleware)
	r.Use(middleware.RecoveryMiddleware)
	r.Use(middleware.LoggingMiddleware)

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"status":"ok"}`))
		})

		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", h.EditorHandler.Login)
			r.Post("/logout", h.EditorHandler.Logout)
		})

		r.Route("/users/me", func(r chi.Router) {
			r.Get("/", h.EditorHandler.Me)
			r.Put("/preferences", h.EditorHandler.UpdatePreferences)
		})

		r.Route("/projects", func(r chi.Router) {
			r.Get("/", h.EditorHandler.ListProjects)
			r.Post("/", h.EditorHandler.UploadProject)
			r.Get("/{projectID}/preview", h.EditorHandler.ProjectPreview)
		})

		r.Get("/formats", h.EditorHandler.Formats)
		r.Get("/providers", h.EditorHandler.Providers)
		r.Post("/jobs", h.EditorHandler.StartGeneration)
		r.Get("/jobs/{jobID}/await", h.EditorHandler.AwaitJob)
		r.Post("/downloads", h.EditorHandler.RequestDownload)
		r.Get("/assets/{assetID}/preview", h.EditorHandler.Preview)

		r.Route("/editor/sessions", func(r chi.Router) {
			r.Post("/", h.EditorHandler.OpenSession)

			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", h.EditorHandler.GetSession)
				r.Delete("/", h.EditorHandler.CloseSession)

				r.Put("/adjustments/{key}", h.EditorHandler.SetAdjustment)
				r.Post("/crop/drag", h.EditorHandler.DragCrop)
				r.Post("/crop/resize", h.EditorHandler.ResizeCrop)

				r.Post("/texts", h.EditorHandler.AddText)
				r.Post("/texts/{overlayID}/drag", h.EditorHandler.DragText)
				r.Post("/texts/{overlayID}/resize", h.EditorHandler.ResizeText)
				r.Delete("/texts/{overlayID}", h.EditorHandler.RemoveText)

				r.Post("/logos", h.EditorHandler.AddLogo)
				r.Post("/logos/{overlayID}/drag", h.EditorHandler.DragLogo)
				r.Post("/logos/{overlayID}/resize", h.EditorHandler.ResizeLogo)
				r.Delete("/logos/{overlayID}", h.EditorHandler.RemoveLogo)

				r.Post("/apply", h.EditorHandler.Apply)
				r.Get("/composite", h.EditorHandler.Composite)
			})
		})
	})

	return r
}
