package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/zjrosen/enroll/internal/collaborator"
)

const (
	KindRegister       = "register"
	KindTrainingDevice = "training_device"
)

// Provisioner records provisioning orders for registers and training devices.
type Provisioner struct {
	db  *sql.DB
	now func() time.Time
}

var (
	_ collaborator.RegisterProvisioner = (*Provisioner)(nil)
	_ collaborator.DeviceProvisioner   = (*Provisioner)(nil)
)

// ProvisionRegister orders a training register. Registers are not tied to a user.
func (p *Provisioner) ProvisionRegister(ctx context.Context) error {
	return p.order(ctx, KindRegister, nil)
}

// ProvisionTrainingDevice orders a training device for user.
func (p *Provisioner) ProvisionTrainingDevice(ctx context.Context, user string) error {
	return p.order(ctx, KindTrainingDevice, &user)
}

func (p *Provisioner) order(ctx context.Context, kind string, user *string) error {
	_, err := p.db.ExecContext(ctx,
		`INSERT INTO provisioning_orders (kind, user, created_at) VALUES (?, ?, ?)`,
		kind, user, p.now().Unix(),
	)
	if err != nil {
		return fmt.Errorf("provision %s: %w", kind, err)
	}
	return nil
}

// CountOrders returns how many orders of kind exist, optionally for one user.
func (p *Provisioner) CountOrders(ctx context.Context, kind, user string) (int, error) {
	query := `SELECT COUNT(*) FROM provisioning_orders WHERE kind = ?`
	args := []any{kind}
	if user != "" {
		query += ` AND user = ?`
		args = append(args, user)
	}
	var n int
	if err := p.db.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("count %s orders: %w", kind, err)
	}
	return n, nil
}
