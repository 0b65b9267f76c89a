package presentation

import (
	"time"

	"github.com/zjrosen/enroll/internal/catalog"
	"github.com/zjrosen/enroll/internal/enrollment"
	"github.com/zjrosen/enroll/internal/infrastructure/sqlite"
	"github.com/zjrosen/enroll/internal/program"
)

// ProgramDTO represents a training program for presentation
type ProgramDTO struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Labels      []string `json:"labels"`
	Available   bool     `json:"available"` // a handler is registered
}

// EnrollmentDTO represents a completed enrollment
type EnrollmentDTO struct {
	ID         string    `json:"id"`
	Program    string    `json:"program"`
	User       string    `json:"user"`
	EnrolledAt time.Time `json:"enrolled_at"`
}

// RequestDTO represents a tracked enrollment request
type RequestDTO struct {
	ID          string    `json:"id"`
	Program     string    `json:"program"`
	User        string    `json:"user"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

// FromCatalogEntry converts a catalog entry to a DTO.
func FromCatalogEntry(e catalog.Entry, available bool) ProgramDTO {
	labels := e.Labels
	if labels == nil {
		labels = []string{}
	}
	return ProgramDTO{
		ID:          string(e.ID),
		Title:       e.Title,
		Description: e.Description,
		Labels:      labels,
		Available:   available,
	}
}

// FromCatalog converts catalog entries to DTOs, marking which are enrollable.
// Registered programs missing from the catalog are appended with their id as title.
func FromCatalog(entries []catalog.Entry, registered []program.ID) []ProgramDTO {
	isRegistered := make(map[program.ID]bool, len(registered))
	for _, id := range registered {
		isRegistered[id] = true
	}

	dtos := make([]ProgramDTO, 0, len(entries))
	listed := make(map[program.ID]bool, len(entries))
	for _, e := range entries {
		dtos = append(dtos, FromCatalogEntry(e, isRegistered[e.ID]))
		listed[e.ID] = true
	}
	for _, id := range registered {
		if !listed[id] {
			dtos = append(dtos, ProgramDTO{ID: string(id), Title: string(id), Labels: []string{}, Available: true})
		}
	}
	return dtos
}

// FromEnrollment converts an enrollment to a DTO.
func FromEnrollment(e *enrollment.Enrollment) EnrollmentDTO {
	return EnrollmentDTO{
		ID:         e.ID,
		Program:    string(e.Program),
		User:       e.User,
		EnrolledAt: e.EnrolledAt,
	}
}

// FromTrackedRequests converts stored requests to DTOs.
func FromTrackedRequests(reqs []sqlite.TrackedRequest) []RequestDTO {
	dtos := make([]RequestDTO, len(reqs))
	for i, r := range reqs {
		dtos[i] = RequestDTO{
			ID:          r.ID,
			Program:     r.Program,
			User:        r.User,
			Title:       r.Title,
			Description: r.Description,
			CreatedAt:   r.CreatedAt,
		}
	}
	return dtos
}
