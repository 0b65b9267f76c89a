// Package sqlite implements the collaborator ports on a local SQLite database.
//
// It is the sandbox backend used when enroll runs without the real request
// tracking, provisioning, content and scheduling services: every collaborator
// call becomes a row, so enrollments can be inspected afterwards.
package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/golang-migrate/migrate/v4"
	migratesqlite "github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"

	"github.com/zjrosen/enroll/internal/log"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// DB owns the SQLite connection and hands out repositories.
type DB struct {
	conn *sql.DB
	path string
	now  func() time.Time
}

// Option configures a DB.
type Option func(*DB)

// WithClock overrides the clock used for timestamps.
func WithClock(now func() time.Time) Option {
	return func(d *DB) { d.now = now }
}

// NewDB opens (creating if needed) the database at path and applies
// migrations. The parent directory is created with 0700 permissions.
func NewDB(path string, opts ...Option) (*DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, fmt.Errorf("create database directory: %w", err)
	}

	conn, err := sql.Open("sqlite3", "file:"+path+"?_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	// SQLite serializes writers; one connection avoids SQLITE_BUSY churn.
	conn.SetMaxOpenConns(1)

	if err := conn.Ping(); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := runMigrations(conn); err != nil {
		_ = conn.Close()
		return nil, err
	}

	d := &DB{conn: conn, path: path, now: time.Now}
	for _, opt := range opts {
		opt(d)
	}
	log.Info(log.CatDB, "database ready", "path", path)
	return d, nil
}

func runMigrations(conn *sql.DB) error {
	src, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("load migrations: %w", err)
	}
	defer func() { _ = src.Close() }()

	driver, err := migratesqlite.WithInstance(conn, &migratesqlite.Config{})
	if err != nil {
		return fmt.Errorf("migration driver: %w", err)
	}

	// m.Close would close conn through the driver, so it is not called.
	m, err := migrate.NewWithInstance("iofs", src, "sqlite", driver)
	if err != nil {
		return fmt.Errorf("init migrations: %w", err)
	}
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("run migrations: %w", err)
	}

	version, dirty, err := m.Version()
	if err == nil {
		log.Debug(log.CatDB, "migrations applied", "version", version, "dirty", dirty)
	}
	return nil
}

// Close closes the database connection.
func (d *DB) Close() error {
	return d.conn.Close()
}

// Path returns the database file path.
func (d *DB) Path() string {
	return d.path
}

// RequestTracker returns the request-tracking repository.
func (d *DB) RequestTracker() *RequestTracker {
	return &RequestTracker{db: d.conn, now: d.now}
}

// CashierEnrollments returns the cashier enrollment store.
func (d *DB) CashierEnrollments() *CashierEnrollments {
	return &CashierEnrollments{db: d.conn, now: d.now}
}

// Provisioner returns the register and training-device provisioner.
func (d *DB) Provisioner() *Provisioner {
	return &Provisioner{db: d.conn, now: d.now}
}

// ContentSystem returns the produce training content system.
func (d *DB) ContentSystem() *ContentSystem {
	return &ContentSystem{db: d.conn, now: d.now, system: "produce"}
}

// Scheduler returns a scheduler that books sessions leadTime from now.
func (d *DB) Scheduler(leadTime time.Duration) *Scheduler {
	return &Scheduler{db: d.conn, now: d.now, leadTime: leadTime}
}

// MentorAssignments returns the mentor assignment store.
func (d *DB) MentorAssignments() *MentorAssignments {
	return &MentorAssignments{db: d.conn, now: d.now}
}

// ListRequests returns up to limit tracked requests, newest first.
func (d *DB) ListRequests(ctx context.Context, limit int) ([]TrackedRequest, error) {
	return d.RequestTracker().List(ctx, limit)
}
