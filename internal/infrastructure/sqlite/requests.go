package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/zjrosen/enroll/internal/collaborator"
)

// TrackedRequest is a row of the requests table.
type TrackedRequest struct {
	ID          string
	Program     string
	User        string
	Title       string
	Description string
	CreatedAt   time.Time
}

// RequestTracker implements collaborator.RequestTracker.
type RequestTracker struct {
	db  *sql.DB
	now func() time.Time
}

var _ collaborator.RequestTracker = (*RequestTracker)(nil)

// Submit stores req under a new UUID and returns it.
func (r *RequestTracker) Submit(ctx context.Context, req collaborator.Request) (string, error) {
	id := uuid.NewString()
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO requests (id, program, user, title, description, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
		id, req.Program, req.User, req.Title, req.Description, r.now().UnixNano(),
	)
	if err != nil {
		return "", fmt.Errorf("insert request: %w", err)
	}
	return id, nil
}

// List returns the most recent requests first. A limit <= 0 returns all.
func (r *RequestTracker) List(ctx context.Context, limit int) ([]TrackedRequest, error) {
	query := `SELECT id, program, user, title, description, created_at FROM requests ORDER BY created_at DESC, rowid DESC`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list requests: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []TrackedRequest
	for rows.Next() {
		var (
			tr      TrackedRequest
			created int64
		)
		if err := rows.Scan(&tr.ID, &tr.Program, &tr.User, &tr.Title, &tr.Description, &created); err != nil {
			return nil, fmt.Errorf("scan request: %w", err)
		}
		tr.CreatedAt = time.Unix(0, created)
		out = append(out, tr)
	}
	return out, rows.Err()
}
