package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/zjrosen/enroll/internal/collaborator"
)

const produceProgram = "produce"

// Scheduler books training sessions on the hour, leadTime after now.
type Scheduler struct {
	db       *sql.DB
	now      func() time.Time
	leadTime time.Duration
}

var _ collaborator.Scheduler = (*Scheduler)(nil)

// ScheduleProduceTraining books a produce session for user. A user who already
// has an upcoming produce session keeps it. The lookup and the booking share a
// transaction, and the pool holds a single connection, so concurrent callers
// for the same user book at most one session.
func (s *Scheduler) ScheduleProduceTraining(ctx context.Context, user string) (time.Time, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return time.Time{}, fmt.Errorf("begin schedule: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	now := s.now()

	var existing int64
	err = tx.QueryRowContext(ctx,
		`SELECT starts_at FROM training_sessions WHERE program = ? AND user = ? AND starts_at > ? ORDER BY starts_at LIMIT 1`,
		produceProgram, user, now.Unix(),
	).Scan(&existing)
	switch {
	case err == nil:
		return time.Unix(existing, 0), nil
	case !errors.Is(err, sql.ErrNoRows):
		return time.Time{}, fmt.Errorf("find produce session: %w", err)
	}

	startsAt := now.Add(s.leadTime).Truncate(time.Hour).Add(time.Hour)
	_, err = tx.ExecContext(ctx,
		`INSERT INTO training_sessions (program, user, starts_at, created_at) VALUES (?, ?, ?, ?)`,
		produceProgram, user, startsAt.Unix(), now.Unix(),
	)
	if err != nil {
		return time.Time{}, fmt.Errorf("schedule produce session: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return time.Time{}, fmt.Errorf("commit schedule: %w", err)
	}
	return startsAt, nil
}
