package admin

import (
	"context"

	"musicrental/model"
	bookingrepo "musicrental/repository/booking"
	"musicrental/service/booking"
)

// Service is the read-mostly admin surface: rollups over bookings plus the
// privileged cancel override. It carries no state of its own.
type Service interface {
	AllBookings(ctx context.Context) ([]model.Booking, error)
	BookingsByStatus(ctx context.Context, status model.BookingStatus) ([]model.Booking, error)
	BookingsByRenter(ctx context.Context, renterID int64) ([]model.Booking, error)

	// CancelBooking overrides owner permissions.
	CancelBooking(ctx context.Context, bookingID int64) (*model.Booking, error)

	// BookingStatistics returns per-status counts keyed total, pending,
	// approved, rejected, cancelled.
	BookingStatistics(ctx context.Context) (map[string]int64, error)
	RenterActivity(ctx context.Context, renterID int64) (int64, error)
	OwnerActivity(ctx context.Context, ownerID int64) (int64, error)

	// RevenueByOwner and TotalRevenue sum price-per-day times the calendar
	// day difference (model.RevenueDays) over APPROVED bookings.
	RevenueByOwner(ctx context.Context, ownerID int64) (float64, error)
	TotalRevenue(ctx context.Context) (float64, error)
}

type service struct {
	bookings bookingrepo.Repo
	lifecycle booking.Service
}

func New(bookings bookingrepo.Repo, lifecycle booking.Service) Service {
	return &service{bookings: bookings, lifecycle: lifecycle}
}

func (s *service) AllBookings(ctx context.Context) ([]model.Booking, error) {
	return s.bookings.All(ctx)
}

func (s *service) BookingsByStatus(ctx context.Context, status model.BookingStatus) ([]model.Booking, error) {
	return s.bookings.ByStatus(ctx, status)
}

func (s *service) BookingsByRenter(ctx context.Context, renterID int64) ([]model.Booking, error) {
	return s.bookings.ByRenter(ctx, renterID)
}

func (s *service) CancelBooking(ctx context.Context, bookingID int64) (*model.Booking, error) {
	return s.lifecycle.AdminCancel(ctx, bookingID)
}

func (s *service) BookingStatistics(ctx context.Context) (map[string]int64, error) {
	stats := make(map[string]int64, 5)

	total, err := s.bookings.CountAll(ctx)
	if err != nil {
		return nil, err
	}
	stats["total"] = total

	for key, status := range map[string]model.BookingStatus{
		"pending":   model.BookingPending,
		"approved":  model.BookingApproved,
		"rejected":  model.BookingRejected,
		"cancelled": model.BookingCancelled,
	} {
		n, err := s.bookings.CountByStatus(ctx, status)
		if err != nil {
			return nil, err
		}
		stats[key] = n
	}
	return stats, nil
}

func (s *service) RenterActivity(ctx context.Context, renterID int64) (int64, error) {
	return s.bookings.CountByRenter(ctx, renterID)
}

func (s *service) OwnerActivity(ctx context.Context, ownerID int64) (int64, error) {
	return s.bookings.CountByOwner(ctx, ownerID)
}

func (s *service) RevenueByOwner(ctx context.Context, ownerID int64) (float64, error) {
	rows, err := s.bookings.RevenueRowsByOwner(ctx, ownerID, model.BookingApproved)
	if err != nil {
		return 0, err
	}
	return revenue(rows), nil
}

func (s *service) TotalRevenue(ctx context.Context) (float64, error) {
	rows, err := s.bookings.RevenueRows(ctx, model.BookingApproved)
	if err != nil {
		return 0, err
	}
	return revenue(rows), nil
}

func revenue(rows []bookingrepo.RevenueRow) float64 {
	var total float64
	for _, r := range rows {
		total += r.PricePerDay * float64(model.RevenueDays(r.StartDate, r.EndDate))
	}
	return total
}
