// Package httpapi exposes enrollment over HTTP.
package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// NewRouter mounts the API routes on a chi router.
func NewRouter(handler *Handler) http.Handler {
	r := chi.NewRouter()
	r.Use(requestIDMiddleware)
	r.Use(loggingMiddleware)
	r.Use(recoverMiddleware)
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) { writeSuccess(w, http.StatusOK, "ok") })
	r.Route("/v1", func(r chi.Router) {
		r.Get("/programs", handler.listPrograms)
		r.Get("/programs/{program}", handler.getProgram)
		r.Post("/enrollments", handler.createEnrollment)
	})
	return r
}
