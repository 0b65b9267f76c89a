package program

import (
	"context"
	"time"

	"github.com/zjrosen/enroll/internal/log"
)

// Logging logs every enrollment attempt with its outcome and duration.
func Logging() Middleware {
	return func(id ID, next Handler) Handler {
		return HandlerFunc(func(ctx context.Context, user string) error {
			start := time.Now()
			err := next.Enroll(ctx, user)
			if err != nil {
				log.ErrorErr(log.CatEnroll, "enrollment failed", err,
					"program", id, "user", user, "duration", time.Since(start))
				return err
			}
			log.Info(log.CatEnroll, "enrolled", "program", id, "user", user, "duration", time.Since(start))
			return nil
		})
	}
}
