// Package produce enrolls associates into produce search training.
package produce

import (
	"context"

	"github.com/zjrosen/enroll/internal/collaborator"
	"github.com/zjrosen/enroll/internal/log"
	"github.com/zjrosen/enroll/internal/program"
)

func init() {
	program.Register(program.Produce, New)
}

// Handler adds the user to the produce content system and schedules a
// training session.
type Handler struct {
	content   collaborator.ProduceContent
	scheduler collaborator.Scheduler
}

// New creates a produce Handler.
func New(deps collaborator.Set) program.Handler {
	return &Handler{
		content:   deps.Produce,
		scheduler: deps.Scheduler,
	}
}

// Enroll enrolls user into produce training.
func (h *Handler) Enroll(ctx context.Context, user string) error {
	if err := h.content.AddUser(ctx, user); err != nil {
		return err
	}
	startsAt, err := h.scheduler.ScheduleProduceTraining(ctx, user)
	if err != nil {
		return err
	}
	log.Debug(log.CatEnroll, "produce session scheduled", "user", user, "startsAt", startsAt)
	return nil
}

var _ program.Handler = (*Handler)(nil)
