package sheetbooking

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"musicrental/model"
	itemrepo "musicrental/repository/item"
	"musicrental/service/booking"
	"musicrental/util/apperr"
)

// Service is the music-sheet variant of the booking lifecycle. Unlike the
// generic lifecycle it enforces date ordering: same-day sheet bookings are
// rejected.
type Service interface {
	Create(ctx context.Context, sheetID, renterID int64, start, end time.Time) (*model.Booking, error)
	ListByRenter(ctx context.Context, renterID int64) ([]model.Booking, error)
	ListBySheet(ctx context.Context, sheetID int64) ([]model.Booking, error)
	List(ctx context.Context) ([]model.Booking, error)
	ByID(ctx context.Context, bookingID int64) (*model.Booking, error)
}

type service struct {
	bookings booking.Service
	items    itemrepo.Repo
}

func New(bookings booking.Service, items itemrepo.Repo) Service {
	return &service{bookings: bookings, items: items}
}

func (s *service) Create(ctx context.Context, sheetID, renterID int64, start, end time.Time) (*model.Booking, error) {
	if !model.DateOnly(start).Before(model.DateOnly(end)) {
		return nil, apperr.InvalidArgument("start date must be before end date")
	}

	sheet, err := s.items.ByID(ctx, sheetID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.NotFound("music sheet not found with id: %d", sheetID)
		}
		return nil, err
	}
	if !sheet.IsMusicSheet() {
		return nil, apperr.NotFound("music sheet not found with id: %d", sheetID)
	}

	return s.bookings.Create(ctx, sheetID, renterID, start, end)
}

func (s *service) ListByRenter(ctx context.Context, renterID int64) ([]model.Booking, error) {
	return s.bookings.ListByRenter(ctx, renterID)
}

func (s *service) ListBySheet(ctx context.Context, sheetID int64) ([]model.Booking, error) {
	sheet, err := s.items.ByID(ctx, sheetID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.NotFound("music sheet not found with id: %d", sheetID)
		}
		return nil, err
	}
	return s.bookings.ListByItem(ctx, sheet.ID)
}

func (s *service) List(ctx context.Context) ([]model.Booking, error) {
	return s.bookings.List(ctx)
}

func (s *service) ByID(ctx context.Context, bookingID int64) (*model.Booking, error) {
	return s.bookings.ByID(ctx, bookingID)
}
