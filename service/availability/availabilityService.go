package availability

import (
	"context"
	"time"

	"musicrental/model"
	availabilityrepo "musicrental/repository/availability"
	"musicrental/util/apperr"
)

type Service interface {
	// CreateUnavailability blocks an instrument's calendar for the closed
	// range [start, end]. Equal dates declare a single-day block.
	CreateUnavailability(ctx context.Context, instrumentID int64, start, end time.Time, reason model.AvailabilityReason) (*model.Availability, error)

	// IsAvailable reports whether no unavailability window overlaps the
	// requested range. Booking conflicts are a separate check owned by the
	// booking service.
	IsAvailable(ctx context.Context, instrumentID int64, start, end time.Time) (bool, error)

	// DeleteUnavailability is idempotent: a missing id is not an error.
	DeleteUnavailability(ctx context.Context, id int64) error

	List(ctx context.Context) ([]model.Availability, error)
	ListByInstrument(ctx context.Context, instrumentID int64) ([]model.Availability, error)
}

type service struct {
	windows availabilityrepo.Repo
}

func New(windows availabilityrepo.Repo) Service { return &service{windows: windows} }

func (s *service) CreateUnavailability(ctx context.Context, instrumentID int64, start, end time.Time, reason model.AvailabilityReason) (*model.Availability, error) {
	if start.IsZero() || end.IsZero() || start.After(end) {
		return nil, apperr.InvalidArgument("invalid dates")
	}

	a := &model.Availability{
		InstrumentID: instrumentID,
		StartDate:    model.DateOnly(start),
		EndDate:      model.DateOnly(end),
		Reason:       reason,
	}
	id, err := s.windows.Insert(ctx, a)
	if err != nil {
		return nil, err
	}
	a.ID = id
	return a, nil
}

func (s *service) IsAvailable(ctx context.Context, instrumentID int64, start, end time.Time) (bool, error) {
	overlapping, err := s.windows.FindOverlapping(ctx, instrumentID, model.DateOnly(start), model.DateOnly(end))
	if err != nil {
		return false, err
	}
	return len(overlapping) == 0, nil
}

func (s *service) DeleteUnavailability(ctx context.Context, id int64) error {
	return s.windows.Delete(ctx, id)
}

func (s *service) List(ctx context.Context) ([]model.Availability, error) {
	return s.windows.All(ctx)
}

func (s *service) ListByInstrument(ctx context.Context, instrumentID int64) ([]model.Availability, error) {
	return s.windows.ByInstrument(ctx, instrumentID)
}
