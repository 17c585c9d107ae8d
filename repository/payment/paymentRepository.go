// repository/payment/paymentRepository.go
package paymentrepo

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"musicrental/model"
)

type Repo interface {
	// Insert persists a new payment. The payments table carries a unique
	// index on booking_id, so a concurrent duplicate initiate surfaces as
	// a unique violation here.
	Insert(ctx context.Context, tx *sqlx.Tx, p *model.Payment) (int64, error)
	Update(ctx context.Context, tx *sqlx.Tx, p *model.Payment) error
	ByID(ctx context.Context, id int64) (*model.Payment, error)
	ByIDForUpdate(ctx context.Context, tx *sqlx.Tx, id int64) (*model.Payment, error)
	ByBooking(ctx context.Context, bookingID int64) (*model.Payment, error)
	ExistsByBooking(ctx context.Context, tx *sqlx.Tx, bookingID int64) (bool, error)
	All(ctx context.Context) ([]model.Payment, error)
	ByRenter(ctx context.Context, renterID int64) ([]model.Payment, error)
}

type repo struct{ db *sqlx.DB }

func New(db *sqlx.DB) Repo { return &repo{db: db} }

const paymentColumns = `
	id, booking_id, amount, method, status, transaction_id,
	failure_reason, created_at, completed_at`

func (r *repo) Insert(ctx context.Context, tx *sqlx.Tx, p *model.Payment) (int64, error) {
	const q = `
		INSERT INTO payments (booking_id, amount, method, status)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at`
	if err := tx.QueryRowContext(ctx, q, p.BookingID, p.Amount, p.Method, p.Status).Scan(&p.ID, &p.CreatedAt); err != nil {
		return 0, err
	}
	return p.ID, nil
}

func (r *repo) Update(ctx context.Context, tx *sqlx.Tx, p *model.Payment) error {
	const q = `
		UPDATE payments
		SET status = $2,
		    transaction_id = $3,
		    failure_reason = $4,
		    completed_at = $5
		WHERE id = $1`
	_, err := tx.ExecContext(ctx, q, p.ID, p.Status, p.TransactionID, p.FailureReason, p.CompletedAt)
	return err
}

func (r *repo) ByID(ctx context.Context, id int64) (*model.Payment, error) {
	const q = `SELECT ` + paymentColumns + ` FROM payments WHERE id = $1`
	var p model.Payment
	if err := r.db.GetContext(ctx, &p, q, id); err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *repo) ByIDForUpdate(ctx context.Context, tx *sqlx.Tx, id int64) (*model.Payment, error) {
	const q = `SELECT ` + paymentColumns + ` FROM payments WHERE id = $1 FOR UPDATE`
	var p model.Payment
	if err := tx.GetContext(ctx, &p, q, id); err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *repo) ByBooking(ctx context.Context, bookingID int64) (*model.Payment, error) {
	const q = `SELECT ` + paymentColumns + ` FROM payments WHERE booking_id = $1 ORDER BY id DESC LIMIT 1`
	var p model.Payment
	if err := r.db.GetContext(ctx, &p, q, bookingID); err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *repo) ExistsByBooking(ctx context.Context, tx *sqlx.Tx, bookingID int64) (bool, error) {
	const q = `SELECT 1 FROM payments WHERE booking_id = $1 LIMIT 1`
	var one int
	err := tx.GetContext(ctx, &one, q, bookingID)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (r *repo) All(ctx context.Context) ([]model.Payment, error) {
	const q = `SELECT ` + paymentColumns + ` FROM payments ORDER BY id DESC`
	var out []model.Payment
	if err := r.db.SelectContext(ctx, &out, q); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *repo) ByRenter(ctx context.Context, renterID int64) ([]model.Payment, error) {
	const q = `
		SELECT p.id, p.booking_id, p.amount, p.method, p.status, p.transaction_id,
		       p.failure_reason, p.created_at, p.completed_at
		FROM payments p
		JOIN bookings b ON b.id = p.booking_id
		WHERE b.renter_id = $1
		ORDER BY p.id DESC`
	var out []model.Payment
	if err := r.db.SelectContext(ctx, &out, q, renterID); err != nil {
		return nil, err
	}
	return out, nil
}
