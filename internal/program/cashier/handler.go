// Package cashier enrolls associates into cashier training.
package cashier

import (
	"context"

	"github.com/zjrosen/enroll/internal/collaborator"
	"github.com/zjrosen/enroll/internal/program"
)

func init() {
	program.Register(program.Cashier, New)
}

// Handler records the enrollment request, updates the cashier enrollment
// store, and provisions a register.
type Handler struct {
	requests  collaborator.RequestTracker
	store     collaborator.CashierEnrollments
	registers collaborator.RegisterProvisioner
}

// New creates a cashier Handler.
func New(deps collaborator.Set) program.Handler {
	return &Handler{
		requests:  deps.Requests,
		store:     deps.Cashiers,
		registers: deps.Registers,
	}
}

// Enroll enrolls user into cashier training. It stops at the first
// collaborator error and returns it unchanged.
func (h *Handler) Enroll(ctx context.Context, user string) error {
	if _, err := h.requests.Submit(ctx, collaborator.Request{
		Title:       "enroll a cashier",
		Description: "request to enroll " + user + " for cashier training",
		User:        user,
		Program:     string(program.Cashier),
	}); err != nil {
		return err
	}
	if err := h.store.UpdateEnrollment(ctx, user); err != nil {
		return err
	}
	return h.registers.ProvisionRegister(ctx)
}

var _ program.Handler = (*Handler)(nil)
