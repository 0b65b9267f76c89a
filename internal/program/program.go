package program

import (
	"context"

	"github.com/zjrosen/enroll/internal/collaborator"
)

// ID identifies a training program.
type ID string

const (
	// Cashier is cashier training.
	Cashier ID = "cashier"
	// Produce is produce search training.
	Produce ID = "produce"
	// Inventory is inventory management training.
	Inventory ID = "inventory"
)

func (id ID) String() string { return string(id) }

// Handler enrolls a user into one program.
type Handler interface {
	Enroll(ctx context.Context, user string) error
}

// HandlerFunc adapts a function to Handler.
type HandlerFunc func(ctx context.Context, user string) error

// Enroll calls f(ctx, user).
func (f HandlerFunc) Enroll(ctx context.Context, user string) error {
	return f(ctx, user)
}

// Factory constructs a Handler from the collaborators it needs.
// A Factory must never return nil.
type Factory func(deps collaborator.Set) Handler

// Middleware wraps the handler resolved for a program.
type Middleware func(id ID, next Handler) Handler
