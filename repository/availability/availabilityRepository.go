// repository/availability/availabilityRepository.go
package availabilityrepo

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"

	"musicrental/model"
)

type Repo interface {
	Insert(ctx context.Context, a *model.Availability) (int64, error)
	// Delete is idempotent from the caller's perspective: deleting an id
	// that does not exist is not an error.
	Delete(ctx context.Context, id int64) error
	ByInstrument(ctx context.Context, instrumentID int64) ([]model.Availability, error)
	All(ctx context.Context) ([]model.Availability, error)
	// FindOverlapping returns the windows for instrumentID whose closed
	// [start_date, end_date] range shares at least one day with [start, end].
	FindOverlapping(ctx context.Context, instrumentID int64, start, end time.Time) ([]model.Availability, error)
}

type repo struct{ db *sqlx.DB }

func New(db *sqlx.DB) Repo { return &repo{db: db} }

func (r *repo) Insert(ctx context.Context, a *model.Availability) (int64, error) {
	const q = `
		INSERT INTO availabilities (instrument_id, start_date, end_date, reason)
		VALUES ($1, $2, $3, $4)
		RETURNING id`
	var id int64
	if err := r.db.QueryRowContext(ctx, q, a.InstrumentID, a.StartDate, a.EndDate, a.Reason).Scan(&id); err != nil {
		return 0, err
	}
	return id, nil
}

func (r *repo) Delete(ctx context.Context, id int64) error {
	const q = `DELETE FROM availabilities WHERE id = $1`
	_, err := r.db.ExecContext(ctx, q, id)
	return err
}

func (r *repo) ByInstrument(ctx context.Context, instrumentID int64) ([]model.Availability, error) {
	const q = `
		SELECT id, instrument_id, start_date, end_date, reason
		FROM availabilities
		WHERE instrument_id = $1
		ORDER BY start_date`
	var out []model.Availability
	if err := r.db.SelectContext(ctx, &out, q, instrumentID); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *repo) All(ctx context.Context) ([]model.Availability, error) {
	const q = `SELECT id, instrument_id, start_date, end_date, reason FROM availabilities ORDER BY id`
	var out []model.Availability
	if err := r.db.SelectContext(ctx, &out, q); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *repo) FindOverlapping(ctx context.Context, instrumentID int64, start, end time.Time) ([]model.Availability, error) {
	// Inclusive-inclusive overlap: s1 <= e2 AND s2 <= e1 (model.Overlaps).
	const q = `
		SELECT id, instrument_id, start_date, end_date, reason
		FROM availabilities
		WHERE instrument_id = $1
		  AND start_date <= $3
		  AND end_date >= $2`
	var out []model.Availability
	if err := r.db.SelectContext(ctx, &out, q, instrumentID, start, end); err != nil {
		return nil, err
	}
	return out, nil
}
