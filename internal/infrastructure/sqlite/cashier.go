package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/zjrosen/enroll/internal/collaborator"
)

// CashierEnrollments implements collaborator.CashierEnrollments.
type CashierEnrollments struct {
	db  *sql.DB
	now func() time.Time
}

var _ collaborator.CashierEnrollments = (*CashierEnrollments)(nil)

// UpdateEnrollment marks user as enrolled. Re-enrolling keeps the original
// enrollment time and bumps updated_at.
func (c *CashierEnrollments) UpdateEnrollment(ctx context.Context, user string) error {
	ts := c.now().Unix()
	_, err := c.db.ExecContext(ctx,
		`INSERT INTO cashier_enrollments (user, enrolled_at, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(user) DO UPDATE SET updated_at = excluded.updated_at`,
		user, ts, ts,
	)
	if err != nil {
		return fmt.Errorf("update cashier enrollment: %w", err)
	}
	return nil
}

// EnrolledAt returns when user was first enrolled, and false if never.
func (c *CashierEnrollments) EnrolledAt(ctx context.Context, user string) (time.Time, bool, error) {
	var ts int64
	err := c.db.QueryRowContext(ctx, `SELECT enrolled_at FROM cashier_enrollments WHERE user = ?`, user).Scan(&ts)
	if errors.Is(err, sql.ErrNoRows) {
		return time.Time{}, false, nil
	}
	if err != nil {
		return time.Time{}, false, fmt.Errorf("find cashier enrollment: %w", err)
	}
	return time.Unix(ts, 0), true, nil
}
