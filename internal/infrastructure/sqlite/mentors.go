package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// MentorAssignments persists which mentor each user was matched with.
type MentorAssignments struct {
	db  *sql.DB
	now func() time.Time
}

// Assignment returns the mentor assigned to user, and false if none.
func (m *MentorAssignments) Assignment(ctx context.Context, user string) (string, bool, error) {
	var mentor string
	err := m.db.QueryRowContext(ctx, `SELECT mentor FROM mentor_assignments WHERE user = ?`, user).Scan(&mentor)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("find mentor assignment: %w", err)
	}
	return mentor, true, nil
}

// Assign records mentor for user, replacing any earlier assignment.
func (m *MentorAssignments) Assign(ctx context.Context, user, mentor string) error {
	_, err := m.db.ExecContext(ctx,
		`INSERT INTO mentor_assignments (user, mentor, assigned_at) VALUES (?, ?, ?)
		ON CONFLICT(user) DO UPDATE SET mentor = excluded.mentor, assigned_at = excluded.assigned_at`,
		user, mentor, m.now().Unix(),
	)
	if err != nil {
		return fmt.Errorf("assign mentor: %w", err)
	}
	return nil
}
