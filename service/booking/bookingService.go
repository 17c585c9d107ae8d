package booking

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"

	"musicrental/metrics"
	"musicrental/model"
	bookingrepo "musicrental/repository/booking"
	itemrepo "musicrental/repository/item"
	userrepo "musicrental/repository/user"
	"musicrental/util/apperr"
)

// TxRunner executes a function inside one database transaction.
type TxRunner interface {
	InTx(ctx context.Context, fn func(tx *sqlx.Tx) error) error
}

type Service interface {
	// Create persists a new PENDING booking for [start, end] unless another
	// PENDING or APPROVED booking on the same item overlaps the range.
	// Date ordering is not validated here; callers that require start < end
	// (the sheet-booking variant) enforce it themselves.
	Create(ctx context.Context, itemID, renterID int64, start, end time.Time) (*model.Booking, error)

	// Approve and Reject are owner decisions on a PENDING booking.
	Approve(ctx context.Context, bookingID, ownerID int64) (*model.Booking, error)
	Reject(ctx context.Context, bookingID, ownerID int64) (*model.Booking, error)

	// AdminCancel sets CANCELLED regardless of current status. No ownership
	// check; the caller is a privileged actor.
	AdminCancel(ctx context.Context, bookingID int64) (*model.Booking, error)

	ByID(ctx context.Context, bookingID int64) (*model.Booking, error)
	List(ctx context.Context) ([]model.Booking, error)
	ListByStatus(ctx context.Context, status model.BookingStatus) ([]model.Booking, error)
	ListByRenter(ctx context.Context, renterID int64) ([]model.Booking, error)
	ListByItem(ctx context.Context, itemID int64) ([]model.Booking, error)
}

type service struct {
	db       TxRunner
	bookings bookingrepo.Repo
	items    itemrepo.Repo
	users    userrepo.Repo
	rec      metrics.Recorder
}

func New(db TxRunner, bookings bookingrepo.Repo, items itemrepo.Repo, users userrepo.Repo, rec metrics.Recorder) Service {
	if rec == nil {
		rec = metrics.Noop{}
	}
	return &service{db: db, bookings: bookings, items: items, users: users, rec: rec}
}

func (s *service) Create(ctx context.Context, itemID, renterID int64, start, end time.Time) (*model.Booking, error) {
	var out *model.Booking
	err := s.db.InTx(ctx, func(tx *sqlx.Tx) error {
		// Locking the item row serializes concurrent creates for the same
		// item, so the conflict check and the insert are race-free.
		if _, err := s.items.ByIDForUpdate(ctx, tx, itemID); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return apperr.NotFound("item not found with id: %d", itemID)
			}
			return err
		}

		conflicts, err := s.bookings.FindConflicting(ctx, tx, itemID, model.DateOnly(start), model.DateOnly(end))
		if err != nil {
			return err
		}
		if len(conflicts) > 0 {
			return apperr.Conflict("item already booked for requested period")
		}

		if _, err := s.users.ByID(ctx, renterID); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return apperr.NotFound("user not found with id: %d", renterID)
			}
			return err
		}

		b := &model.Booking{
			ItemID:    itemID,
			RenterID:  renterID,
			StartDate: model.DateOnly(start),
			EndDate:   model.DateOnly(end),
			Status:    model.BookingPending,
		}
		id, err := s.bookings.Insert(ctx, tx, b)
		if err != nil {
			return err
		}
		b.ID = id
		out = b
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.rec.BookingCreated(ctx)
	return out, nil
}

func (s *service) Approve(ctx context.Context, bookingID, ownerID int64) (*model.Booking, error) {
	var out *model.Booking
	err := s.db.InTx(ctx, func(tx *sqlx.Tx) error {
		b, err := s.loadForDecision(ctx, tx, bookingID, ownerID, "you are not authorized to approve this booking")
		if err != nil {
			return err
		}
		switch b.Status {
		case model.BookingApproved:
			return apperr.Conflict("booking has already been approved")
		case model.BookingRejected:
			return apperr.Conflict("cannot approve a rejected booking")
		case model.BookingCancelled:
			return apperr.Conflict("cannot approve a cancelled booking")
		}
		if err := s.bookings.UpdateStatus(ctx, tx, b.ID, model.BookingApproved); err != nil {
			return err
		}
		b.Status = model.BookingApproved
		out = b
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.rec.BookingApproved(ctx)
	return out, nil
}

func (s *service) Reject(ctx context.Context, bookingID, ownerID int64) (*model.Booking, error) {
	var out *model.Booking
	err := s.db.InTx(ctx, func(tx *sqlx.Tx) error {
		b, err := s.loadForDecision(ctx, tx, bookingID, ownerID, "you are not authorized to reject this booking")
		if err != nil {
			return err
		}
		switch b.Status {
		case model.BookingRejected:
			return apperr.Conflict("booking has already been rejected")
		case model.BookingApproved:
			return apperr.Conflict("cannot reject an approved booking")
		case model.BookingCancelled:
			return apperr.Conflict("cannot reject a cancelled booking")
		}
		if err := s.bookings.UpdateStatus(ctx, tx, b.ID, model.BookingRejected); err != nil {
			return err
		}
		b.Status = model.BookingRejected
		out = b
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.rec.BookingRejected(ctx)
	return out, nil
}

// loadForDecision locks the booking row and verifies the acting user owns
// the booked item.
func (s *service) loadForDecision(ctx context.Context, tx *sqlx.Tx, bookingID, ownerID int64, denyMsg string) (*model.Booking, error) {
	b, err := s.bookings.ByIDForUpdate(ctx, tx, bookingID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.NotFound("booking not found with id: %d", bookingID)
		}
		return nil, err
	}
	item, err := s.items.ByID(ctx, b.ItemID)
	if err != nil {
		return nil, err
	}
	if err := apperr.RequireActor(item.OwnerID, ownerID, denyMsg); err != nil {
		return nil, err
	}
	return b, nil
}

func (s *service) AdminCancel(ctx context.Context, bookingID int64) (*model.Booking, error) {
	var out *model.Booking
	err := s.db.InTx(ctx, func(tx *sqlx.Tx) error {
		b, err := s.bookings.ByIDForUpdate(ctx, tx, bookingID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return apperr.NotFound("booking not found with id: %d", bookingID)
			}
			return err
		}
		if err := s.bookings.UpdateStatus(ctx, tx, b.ID, model.BookingCancelled); err != nil {
			return err
		}
		b.Status = model.BookingCancelled
		out = b
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *service) ByID(ctx context.Context, bookingID int64) (*model.Booking, error) {
	b, err := s.bookings.ByID(ctx, bookingID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.NotFound("booking not found with id: %d", bookingID)
	}
	return b, err
}

func (s *service) List(ctx context.Context) ([]model.Booking, error) {
	return s.bookings.All(ctx)
}

func (s *service) ListByStatus(ctx context.Context, status model.BookingStatus) ([]model.Booking, error) {
	return s.bookings.ByStatus(ctx, status)
}

func (s *service) ListByRenter(ctx context.Context, renterID int64) ([]model.Booking, error) {
	return s.bookings.ByRenter(ctx, renterID)
}

func (s *service) ListByItem(ctx context.Context, itemID int64) ([]model.Booking, error) {
	return s.bookings.ByItem(ctx, itemID)
}
