package httpapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/zjrosen/enroll/internal/catalog"
	"github.com/zjrosen/enroll/internal/enrollment"
	"github.com/zjrosen/enroll/internal/presentation"
	"github.com/zjrosen/enroll/internal/program"
)

// Enroller is the enrollment service as seen by the API.
type Enroller interface {
	Enroll(ctx context.Context, id program.ID, user string) (*enrollment.Enrollment, error)
	Programs() []program.ID
	IsRegistered(id program.ID) bool
}

var _ Enroller = (*enrollment.Service)(nil)

// EnrollRequest is the body of POST /v1/enrollments.
type EnrollRequest struct {
	Program string `json:"program"`
	User    string `json:"user"`
}

// Handler serves the API routes.
type Handler struct {
	service Enroller
	catalog *catalog.Catalog
}

// NewHandler creates a Handler. cat may be nil, in which case programs are
// listed by id only.
func NewHandler(service Enroller, cat *catalog.Catalog) *Handler {
	return &Handler{service: service, catalog: cat}
}

func (h *Handler) programs() []presentation.ProgramDTO {
	var entries []catalog.Entry
	if h.catalog != nil {
		entries = h.catalog.List()
	}
	return presentation.FromCatalog(entries, h.service.Programs())
}

func (h *Handler) listPrograms(w http.ResponseWriter, r *http.Request) {
	label := r.URL.Query().Get("label")
	out := make([]presentation.ProgramDTO, 0)
	for _, p := range h.programs() {
		if label == "" || hasLabel(p.Labels, label) {
			out = append(out, p)
		}
	}
	writeSuccess(w, http.StatusOK, out)
}

func (h *Handler) getProgram(w http.ResponseWriter, r *http.Request) {
	id := program.ID(chi.URLParam(r, "program"))
	for _, p := range h.programs() {
		if p.ID == string(id) {
			writeSuccess(w, http.StatusOK, p)
			return
		}
	}
	err := &program.UnknownProgramError{Program: id}
	writeError(w, http.StatusNotFound, "unknown_program", err.Error(), requestIDFromContext(r.Context()))
}

func (h *Handler) createEnrollment(w http.ResponseWriter, r *http.Request) {
	reqID := requestIDFromContext(r.Context())

	var req EnrollRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<16))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", err.Error(), reqID)
		return
	}

	e, err := h.service.Enroll(r.Context(), program.ID(req.Program), req.User)
	if err != nil {
		status, code := mapError(err)
		message := err.Error()
		if code == "collaborator_failed" {
			message = fmt.Sprintf("enrollment in %s failed: %v", req.Program, err)
		}
		writeError(w, status, code, message, reqID)
		return
	}
	writeSuccess(w, http.StatusCreated, presentation.FromEnrollment(e))
}

func hasLabel(labels []string, label string) bool {
	return catalog.Entry{Labels: labels}.HasLabel(label)
}
