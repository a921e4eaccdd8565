// Package store persists payment and plan facts in a sqlite database.
// It is plumbing around the recognition engine: the engine itself never
// touches I/O.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/shopspring/decimal"
	_ "modernc.org/sqlite"

	"github.com/etnz/revrec"
	"github.com/etnz/revrec/date"
)

// Store is a sqlite-backed payment and plan repository.
type Store struct {
	db *sql.DB
}

// Open opens (creating and migrating if needed) the database at path.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create db directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	if err := runMigrations(path); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate database: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// PutPlan inserts or replaces a plan definition.
func (s *Store) PutPlan(ctx context.Context, p revrec.Plan) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO plans (id, interval) VALUES (?, ?)
		 ON CONFLICT (id) DO UPDATE SET interval = excluded.interval`,
		p.ID, p.Interval.String())
	if err != nil {
		return fmt.Errorf("put plan %q: %w", p.ID, err)
	}
	return nil
}

// PutPayment inserts or replaces a payment fact.
func (s *Store) PutPayment(ctx context.Context, p revrec.Payment) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO payments (id, customer, plan, paid_on, amount, currency, state, zip)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT (id) DO UPDATE SET
		   customer = excluded.customer,
		   plan     = excluded.plan,
		   paid_on  = excluded.paid_on,
		   amount   = excluded.amount,
		   currency = excluded.currency,
		   state    = excluded.state,
		   zip      = excluded.zip`,
		p.ID, p.Customer, p.Plan, p.On.String(),
		p.Amount.Decimal().String(), p.Amount.Currency(),
		nullable(p.State), nullable(p.Zip))
	if err != nil {
		return fmt.Errorf("put payment %d: %w", p.ID, err)
	}
	return nil
}

// Plans returns all stored plans ordered by id.
func (s *Store) Plans(ctx context.Context) ([]revrec.Plan, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, interval FROM plans ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query plans: %w", err)
	}
	defer rows.Close()

	var plans []revrec.Plan
	for rows.Next() {
		var id, interval string
		if err := rows.Scan(&id, &interval); err != nil {
			return nil, fmt.Errorf("scan plan: %w", err)
		}
		parsed, err := revrec.ParseInterval(interval)
		if err != nil {
			return nil, fmt.Errorf("plan %q: %w", id, err)
		}
		plans = append(plans, revrec.Plan{ID: id, Interval: parsed})
	}
	return plans, rows.Err()
}

// Payments returns all stored payments ordered by customer then date.
func (s *Store) Payments(ctx context.Context) ([]revrec.Payment, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, customer, plan, paid_on, amount, currency, state, zip
		 FROM payments ORDER BY customer, paid_on, id`)
	if err != nil {
		return nil, fmt.Errorf("query payments: %w", err)
	}
	defer rows.Close()

	var payments []revrec.Payment
	for rows.Next() {
		var (
			p          revrec.Payment
			on, amount string
			currency   string
			state, zip sql.NullString
		)
		if err := rows.Scan(&p.ID, &p.Customer, &p.Plan, &on, &amount, &currency, &state, &zip); err != nil {
			return nil, fmt.Errorf("scan payment: %w", err)
		}
		if p.On, err = date.Parse(on); err != nil {
			return nil, fmt.Errorf("payment %d: %w", p.ID, err)
		}
		value, err := decimal.NewFromString(amount)
		if err != nil {
			return nil, fmt.Errorf("payment %d: invalid amount %q: %w", p.ID, amount, err)
		}
		p.Amount = revrec.M(value, currency)
		p.State = state.String
		p.Zip = zip.String
		payments = append(payments, p)
	}
	return payments, rows.Err()
}

// LoadLedger loads all plans and payments into a fresh ledger.
func (s *Store) LoadLedger(ctx context.Context) (*revrec.PaymentLedger, error) {
	ledger := revrec.NewPaymentLedger()

	plans, err := s.Plans(ctx)
	if err != nil {
		return nil, err
	}
	for _, p := range plans {
		ledger.DeclarePlan(p)
	}

	payments, err := s.Payments(ctx)
	if err != nil {
		return nil, err
	}
	ledger.Append(payments...)
	return ledger, nil
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
