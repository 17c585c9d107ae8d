// repository/review/reviewRepository.go
package reviewrepo

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"musicrental/model"
)

type Repo interface {
	InsertReview(ctx context.Context, tx *sqlx.Tx, rv *model.Review) (int64, error)
	ReviewExistsByBooking(ctx context.Context, bookingID int64) (bool, error)
	ReviewByBooking(ctx context.Context, bookingID int64) (*model.Review, error)
	ReviewsByItem(ctx context.Context, itemID int64) ([]model.Review, error)
	// AvgScoreByItem returns 0.0 when the item has no reviews.
	AvgScoreByItem(ctx context.Context, itemID int64) (float64, error)

	InsertRenterReview(ctx context.Context, tx *sqlx.Tx, rv *model.RenterReview) (int64, error)
	RenterReviewExistsByBooking(ctx context.Context, bookingID int64) (bool, error)
	RenterReviewByBooking(ctx context.Context, bookingID int64) (*model.RenterReview, error)
	RenterReviewsByRenter(ctx context.Context, renterID int64) ([]model.RenterReview, error)
	AvgScoreByRenter(ctx context.Context, renterID int64) (float64, error)
}

type repo struct{ db *sqlx.DB }

func New(db *sqlx.DB) Repo { return &repo{db: db} }

func (r *repo) InsertReview(ctx context.Context, tx *sqlx.Tx, rv *model.Review) (int64, error) {
	const q = `
		INSERT INTO reviews (booking_id, score, comment)
		VALUES ($1, $2, $3)
		RETURNING id, created_at`
	if err := tx.QueryRowContext(ctx, q, rv.BookingID, rv.Score, rv.Comment).Scan(&rv.ID, &rv.CreatedAt); err != nil {
		return 0, err
	}
	return rv.ID, nil
}

func (r *repo) ReviewExistsByBooking(ctx context.Context, bookingID int64) (bool, error) {
	return r.exists(ctx, `SELECT 1 FROM reviews WHERE booking_id = $1 LIMIT 1`, bookingID)
}

func (r *repo) ReviewByBooking(ctx context.Context, bookingID int64) (*model.Review, error) {
	const q = `SELECT id, booking_id, score, comment, created_at FROM reviews WHERE booking_id = $1`
	var rv model.Review
	if err := r.db.GetContext(ctx, &rv, q, bookingID); err != nil {
		return nil, err
	}
	return &rv, nil
}

func (r *repo) ReviewsByItem(ctx context.Context, itemID int64) ([]model.Review, error) {
	const q = `
		SELECT r.id, r.booking_id, r.score, r.comment, r.created_at
		FROM reviews r
		JOIN bookings b ON b.id = r.booking_id
		WHERE b.item_id = $1
		ORDER BY r.id DESC`
	var out []model.Review
	if err := r.db.SelectContext(ctx, &out, q, itemID); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *repo) AvgScoreByItem(ctx context.Context, itemID int64) (float64, error) {
	const q = `
		SELECT AVG(r.score)
		FROM reviews r
		JOIN bookings b ON b.id = r.booking_id
		WHERE b.item_id = $1`
	return r.avg(ctx, q, itemID)
}

func (r *repo) InsertRenterReview(ctx context.Context, tx *sqlx.Tx, rv *model.RenterReview) (int64, error) {
	const q = `
		INSERT INTO renter_reviews (booking_id, score, comment)
		VALUES ($1, $2, $3)
		RETURNING id, created_at`
	if err := tx.QueryRowContext(ctx, q, rv.BookingID, rv.Score, rv.Comment).Scan(&rv.ID, &rv.CreatedAt); err != nil {
		return 0, err
	}
	return rv.ID, nil
}

func (r *repo) RenterReviewExistsByBooking(ctx context.Context, bookingID int64) (bool, error) {
	return r.exists(ctx, `SELECT 1 FROM renter_reviews WHERE booking_id = $1 LIMIT 1`, bookingID)
}

func (r *repo) RenterReviewByBooking(ctx context.Context, bookingID int64) (*model.RenterReview, error) {
	const q = `SELECT id, booking_id, score, comment, created_at FROM renter_reviews WHERE booking_id = $1`
	var rv model.RenterReview
	if err := r.db.GetContext(ctx, &rv, q, bookingID); err != nil {
		return nil, err
	}
	return &rv, nil
}

func (r *repo) RenterReviewsByRenter(ctx context.Context, renterID int64) ([]model.RenterReview, error) {
	const q = `
		SELECT r.id, r.booking_id, r.score, r.comment, r.created_at
		FROM renter_reviews r
		JOIN bookings b ON b.id = r.booking_id
		WHERE b.renter_id = $1
		ORDER BY r.id DESC`
	var out []model.RenterReview
	if err := r.db.SelectContext(ctx, &out, q, renterID); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *repo) AvgScoreByRenter(ctx context.Context, renterID int64) (float64, error) {
	const q = `
		SELECT AVG(r.score)
		FROM renter_reviews r
		JOIN bookings b ON b.id = r.booking_id
		WHERE b.renter_id = $1`
	return r.avg(ctx, q, renterID)
}

func (r *repo) exists(ctx context.Context, q string, arg int64) (bool, error) {
	var one int
	err := r.db.GetContext(ctx, &one, q, arg)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (r *repo) avg(ctx context.Context, q string, arg int64) (float64, error) {
	var avg sql.NullFloat64
	if err := r.db.GetContext(ctx, &avg, q, arg); err != nil {
		return 0, err
	}
	if !avg.Valid {
		return 0.0, nil
	}
	return avg.Float64, nil
}
