// Package inventory enrolls associates into inventory management training.
package inventory

import (
	"context"

	"github.com/zjrosen/enroll/internal/collaborator"
	"github.com/zjrosen/enroll/internal/log"
	"github.com/zjrosen/enroll/internal/program"
)

func init() {
	program.Register(program.Inventory, New)
}

// Handler assigns a mentor, provisions a training device, and records the
// enrollment request.
type Handler struct {
	mentors  collaborator.MentorMatcher
	devices  collaborator.DeviceProvisioner
	requests collaborator.RequestTracker
}

// New creates an inventory Handler.
func New(deps collaborator.Set) program.Handler {
	return &Handler{
		mentors:  deps.Mentors,
		devices:  deps.Devices,
		requests: deps.Requests,
	}
}

// Enroll enrolls user into inventory management training.
func (h *Handler) Enroll(ctx context.Context, user string) error {
	mentor, err := h.mentors.FindMentor(ctx, user)
	if err != nil {
		return err
	}
	log.Debug(log.CatEnroll, "mentor assigned", "user", user, "mentor", mentor)

	if err := h.devices.ProvisionTrainingDevice(ctx, user); err != nil {
		return err
	}

	_, err = h.requests.Submit(ctx, collaborator.Request{
		Title:       "enroll an inventory manager",
		Description: "request to enroll " + user + " to inventory management training",
		User:        user,
		Program:     string(program.Inventory),
	})
	return err
}

var _ program.Handler = (*Handler)(nil)
