package payment

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"

	"musicrental/gateway"
	"musicrental/model"
	bookingrepo "musicrental/repository/booking"
	itemrepo "musicrental/repository/item"
	paymentrepo "musicrental/repository/payment"
	"musicrental/util/apperr"
	"musicrental/util/database"
)

// TxRunner executes a function inside one database transaction.
type TxRunner interface {
	InTx(ctx context.Context, fn func(tx *sqlx.Tx) error) error
}

// Request carries what a renter submits to pay for a booking. Card values
// are simulated test data, never real card numbers.
type Request struct {
	Method     string
	CardNumber string
	CardHolder string
}

type Service interface {
	// Initiate creates a PENDING payment for an APPROVED booking. The
	// amount is computed server-side, never taken from the caller.
	Initiate(ctx context.Context, bookingID int64, method string) (*model.Payment, error)

	// Process settles a payment through the gateway: COMPLETED with a
	// transaction id, or FAILED with a failure reason.
	Process(ctx context.Context, paymentID int64, req Request) (*model.Payment, error)

	// InitiateAndProcess composes both steps in a single transaction.
	InitiateAndProcess(ctx context.Context, bookingID int64, req Request) (*model.Payment, error)

	Refund(ctx context.Context, paymentID int64) (*model.Payment, error)
	Cancel(ctx context.Context, paymentID int64) (*model.Payment, error)

	IsBookingPaid(ctx context.Context, bookingID int64) (bool, error)
	ByID(ctx context.Context, paymentID int64) (*model.Payment, error)
	ByBooking(ctx context.Context, bookingID int64) (*model.Payment, error)
	List(ctx context.Context) ([]model.Payment, error)
	ListByRenter(ctx context.Context, renterID int64) ([]model.Payment, error)
}

type service struct {
	db       TxRunner
	payments paymentrepo.Repo
	bookings bookingrepo.Repo
	items    itemrepo.Repo
	gw       gateway.Processor
	now      func() time.Time
}

func New(db TxRunner, payments paymentrepo.Repo, bookings bookingrepo.Repo, items itemrepo.Repo, gw gateway.Processor) Service {
	return &service{db: db, payments: payments, bookings: bookings, items: items, gw: gw, now: time.Now}
}

// CalculateAmount computes the charge for a booking: price per day times
// the rental day count (model.RentalDays, one-day minimum for same-day
// bookings).
func CalculateAmount(b *model.Booking, pricePerDay float64) (float64, error) {
	if b == nil {
		return 0, apperr.InvalidArgument("booking cannot be null")
	}
	return pricePerDay * float64(model.RentalDays(b.StartDate, b.EndDate)), nil
}

func (s *service) Initiate(ctx context.Context, bookingID int64, method string) (*model.Payment, error) {
	var out *model.Payment
	err := s.db.InTx(ctx, func(tx *sqlx.Tx) error {
		p, err := s.initiateTx(ctx, tx, bookingID, method)
		if err != nil {
			return err
		}
		out = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *service) initiateTx(ctx context.Context, tx *sqlx.Tx, bookingID int64, method string) (*model.Payment, error) {
	b, err := s.bookings.ByIDForUpdate(ctx, tx, bookingID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.NotFound("booking not found with id: %d", bookingID)
		}
		return nil, err
	}
	if b.Status != model.BookingApproved {
		return nil, apperr.Conflict("booking is not approved for payment")
	}

	exists, err := s.payments.ExistsByBooking(ctx, tx, bookingID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperr.Conflict("payment already exists for this booking")
	}

	item, err := s.items.ByID(ctx, b.ItemID)
	if err != nil {
		return nil, err
	}
	amount, err := CalculateAmount(b, item.PricePerDay)
	if err != nil {
		return nil, err
	}

	p := &model.Payment{
		BookingID: bookingID,
		Amount:    amount,
		Method:    method,
		Status:    model.PaymentPending,
	}
	if _, err := s.payments.Insert(ctx, tx, p); err != nil {
		// The unique index on payments(booking_id) closes the window
		// between the existence check and the insert.
		if database.IsUniqueViolation(err) {
			return nil, apperr.Conflict("payment already exists for this booking")
		}
		return nil, err
	}
	return p, nil
}

func (s *service) Process(ctx context.Context, paymentID int64, req Request) (*model.Payment, error) {
	var out *model.Payment
	err := s.db.InTx(ctx, func(tx *sqlx.Tx) error {
		p, err := s.payments.ByIDForUpdate(ctx, tx, paymentID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return apperr.NotFound("payment not found with id: %d", paymentID)
			}
			return err
		}
		if err := s.applyCharge(ctx, tx, p, req); err != nil {
			return err
		}
		out = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *service) InitiateAndProcess(ctx context.Context, bookingID int64, req Request) (*model.Payment, error) {
	var out *model.Payment
	err := s.db.InTx(ctx, func(tx *sqlx.Tx) error {
		p, err := s.initiateTx(ctx, tx, bookingID, req.Method)
		if err != nil {
			return err
		}
		if err := s.applyCharge(ctx, tx, p, req); err != nil {
			return err
		}
		out = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *service) applyCharge(ctx context.Context, tx *sqlx.Tx, p *model.Payment, req Request) error {
	res := s.gw.Charge(ctx, gateway.ChargeRequest{CardNumber: req.CardNumber, CardHolder: req.CardHolder})
	if !res.Approved {
		reason := res.FailureReason
		p.Status = model.PaymentFailed
		p.FailureReason = &reason
		return s.payments.Update(ctx, tx, p)
	}

	now := s.now()
	p.Status = model.PaymentCompleted
	p.TransactionID = &res.TransactionID
	p.CompletedAt = &now
	return s.payments.Update(ctx, tx, p)
}

func (s *service) Refund(ctx context.Context, paymentID int64) (*model.Payment, error) {
	return s.transition(ctx, paymentID, model.PaymentCompleted, model.PaymentRefunded,
		"only completed payments can be refunded")
}

func (s *service) Cancel(ctx context.Context, paymentID int64) (*model.Payment, error) {
	return s.transition(ctx, paymentID, model.PaymentPending, model.PaymentCancelled,
		"only pending payments can be cancelled")
}

func (s *service) transition(ctx context.Context, paymentID int64, from, to model.PaymentStatus, conflictMsg string) (*model.Payment, error) {
	var out *model.Payment
	err := s.db.InTx(ctx, func(tx *sqlx.Tx) error {
		p, err := s.payments.ByIDForUpdate(ctx, tx, paymentID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return apperr.NotFound("payment not found with id: %d", paymentID)
			}
			return err
		}
		if p.Status != from {
			return apperr.Conflict("%s", conflictMsg)
		}
		p.Status = to
		if err := s.payments.Update(ctx, tx, p); err != nil {
			return err
		}
		out = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *service) IsBookingPaid(ctx context.Context, bookingID int64) (bool, error) {
	p, err := s.payments.ByBooking(ctx, bookingID)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return p.Status == model.PaymentCompleted, nil
}

func (s *service) ByID(ctx context.Context, paymentID int64) (*model.Payment, error) {
	p, err := s.payments.ByID(ctx, paymentID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.NotFound("payment not found with id: %d", paymentID)
	}
	return p, err
}

func (s *service) ByBooking(ctx context.Context, bookingID int64) (*model.Payment, error) {
	p, err := s.payments.ByBooking(ctx, bookingID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.NotFound("no payment found for booking %d", bookingID)
	}
	return p, err
}

func (s *service) List(ctx context.Context) ([]model.Payment, error) {
	return s.payments.All(ctx)
}

func (s *service) ListByRenter(ctx context.Context, renterID int64) ([]model.Payment, error) {
	return s.payments.ByRenter(ctx, renterID)
}
