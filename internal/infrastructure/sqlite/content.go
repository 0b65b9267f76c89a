package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/zjrosen/enroll/internal/collaborator"
)

// ContentSystem records membership in a training content system.
type ContentSystem struct {
	db     *sql.DB
	now    func() time.Time
	system string
}

var _ collaborator.ProduceContent = (*ContentSystem)(nil)

// AddUser adds user to the content system. Adding an existing member is a no-op.
func (c *ContentSystem) AddUser(ctx context.Context, user string) error {
	_, err := c.db.ExecContext(ctx,
		`INSERT INTO content_members (system, user, added_at) VALUES (?, ?, ?) ON CONFLICT DO NOTHING`,
		c.system, user, c.now().Unix(),
	)
	if err != nil {
		return fmt.Errorf("add %s content member: %w", c.system, err)
	}
	return nil
}

// IsMember reports whether user belongs to the content system.
func (c *ContentSystem) IsMember(ctx context.Context, user string) (bool, error) {
	var n int
	err := c.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM content_members WHERE system = ? AND user = ?`, c.system, user,
	).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("check %s content member: %w", c.system, err)
	}
	return n > 0, nil
}
