// repository/booking/bookingRepository.go
package bookingrepo

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"

	"musicrental/model"
)

// RevenueRow carries exactly what the admin revenue rollup needs from a
// booking joined with its item.
type RevenueRow struct {
	StartDate   time.Time `db:"start_date"`
	EndDate     time.Time `db:"end_date"`
	PricePerDay float64   `db:"price_per_day"`
}

type Repo interface {
	Insert(ctx context.Context, tx *sqlx.Tx, b *model.Booking) (int64, error)
	ByID(ctx context.Context, id int64) (*model.Booking, error)
	ByIDForUpdate(ctx context.Context, tx *sqlx.Tx, id int64) (*model.Booking, error)
	UpdateStatus(ctx context.Context, tx *sqlx.Tx, id int64, status model.BookingStatus) error

	// FindConflicting returns bookings for itemID with status in
	// {PENDING, APPROVED} whose closed date range overlaps [start, end].
	// Terminal and rejected bookings never conflict.
	FindConflicting(ctx context.Context, tx *sqlx.Tx, itemID int64, start, end time.Time) ([]model.Booking, error)

	All(ctx context.Context) ([]model.Booking, error)
	ByStatus(ctx context.Context, status model.BookingStatus) ([]model.Booking, error)
	ByRenter(ctx context.Context, renterID int64) ([]model.Booking, error)
	ByItem(ctx context.Context, itemID int64) ([]model.Booking, error)

	CountAll(ctx context.Context) (int64, error)
	CountByStatus(ctx context.Context, status model.BookingStatus) (int64, error)
	CountByRenter(ctx context.Context, renterID int64) (int64, error)
	CountByOwner(ctx context.Context, ownerID int64) (int64, error)

	RevenueRows(ctx context.Context, status model.BookingStatus) ([]RevenueRow, error)
	RevenueRowsByOwner(ctx context.Context, ownerID int64, status model.BookingStatus) ([]RevenueRow, error)
}

type repo struct{ db *sqlx.DB }

func New(db *sqlx.DB) Repo { return &repo{db: db} }

const bookingColumns = `id, item_id, renter_id, start_date, end_date, status, created_at`

func (r *repo) Insert(ctx context.Context, tx *sqlx.Tx, b *model.Booking) (int64, error) {
	const q = `
		INSERT INTO bookings (item_id, renter_id, start_date, end_date, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`
	var id int64
	if err := tx.QueryRowContext(ctx, q, b.ItemID, b.RenterID, b.StartDate, b.EndDate, b.Status).Scan(&id); err != nil {
		return 0, err
	}
	return id, nil
}

func (r *repo) ByID(ctx context.Context, id int64) (*model.Booking, error) {
	const q = `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`
	var b model.Booking
	if err := r.db.GetContext(ctx, &b, q, id); err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *repo) ByIDForUpdate(ctx context.Context, tx *sqlx.Tx, id int64) (*model.Booking, error) {
	const q = `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1 FOR UPDATE`
	var b model.Booking
	if err := tx.GetContext(ctx, &b, q, id); err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *repo) UpdateStatus(ctx context.Context, tx *sqlx.Tx, id int64, status model.BookingStatus) error {
	const q = `UPDATE bookings SET status = $2 WHERE id = $1`
	_, err := tx.ExecContext(ctx, q, id, status)
	return err
}

func (r *repo) FindConflicting(ctx context.Context, tx *sqlx.Tx, itemID int64, start, end time.Time) ([]model.Booking, error) {
	// Inclusive-inclusive overlap: s1 <= e2 AND s2 <= e1 (model.Overlaps).
	const q = `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE item_id = $1
		  AND status IN ('PENDING', 'APPROVED')
		  AND start_date <= $3
		  AND end_date >= $2`
	var out []model.Booking
	if err := tx.SelectContext(ctx, &out, q, itemID, start, end); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *repo) All(ctx context.Context) ([]model.Booking, error) {
	const q = `SELECT ` + bookingColumns + ` FROM bookings ORDER BY id DESC`
	var out []model.Booking
	if err := r.db.SelectContext(ctx, &out, q); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *repo) ByStatus(ctx context.Context, status model.BookingStatus) ([]model.Booking, error) {
	const q = `SELECT ` + bookingColumns + ` FROM bookings WHERE status = $1 ORDER BY id DESC`
	var out []model.Booking
	if err := r.db.SelectContext(ctx, &out, q, status); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *repo) ByRenter(ctx context.Context, renterID int64) ([]model.Booking, error) {
	const q = `SELECT ` + bookingColumns + ` FROM bookings WHERE renter_id = $1 ORDER BY id DESC`
	var out []model.Booking
	if err := r.db.SelectContext(ctx, &out, q, renterID); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *repo) ByItem(ctx context.Context, itemID int64) ([]model.Booking, error) {
	const q = `SELECT ` + bookingColumns + ` FROM bookings WHERE item_id = $1 ORDER BY start_date`
	var out []model.Booking
	if err := r.db.SelectContext(ctx, &out, q, itemID); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *repo) CountAll(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM bookings`)
	return n, err
}

func (r *repo) CountByStatus(ctx context.Context, status model.BookingStatus) (int64, error) {
	var n int64
	err := r.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM bookings WHERE status = $1`, status)
	return n, err
}

func (r *repo) CountByRenter(ctx context.Context, renterID int64) (int64, error) {
	var n int64
	err := r.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM bookings WHERE renter_id = $1`, renterID)
	return n, err
}

func (r *repo) CountByOwner(ctx context.Context, ownerID int64) (int64, error) {
	const q = `
		SELECT COUNT(*)
		FROM bookings b
		JOIN items i ON i.id = b.item_id
		WHERE i.owner_id = $1`
	var n int64
	err := r.db.GetContext(ctx, &n, q, ownerID)
	return n, err
}

func (r *repo) RevenueRows(ctx context.Context, status model.BookingStatus) ([]RevenueRow, error) {
	const q = `
		SELECT b.start_date, b.end_date, i.price_per_day
		FROM bookings b
		JOIN items i ON i.id = b.item_id
		WHERE b.status = $1`
	var out []RevenueRow
	if err := r.db.SelectContext(ctx, &out, q, status); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *repo) RevenueRowsByOwner(ctx context.Context, ownerID int64, status model.BookingStatus) ([]RevenueRow, error) {
	const q = `
		SELECT b.start_date, b.end_date, i.price_per_day
		FROM bookings b
		JOIN items i ON i.id = b.item_id
		WHERE i.owner_id = $1 AND b.status = $2`
	var out []RevenueRow
	if err := r.db.SelectContext(ctx, &out, q, ownerID, status); err != nil {
		return nil, err
	}
	return out, nil
}
