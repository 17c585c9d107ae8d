package review

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"

	"musicrental/model"
	bookingrepo "musicrental/repository/booking"
	itemrepo "musicrental/repository/item"
	reviewrepo "musicrental/repository/review"
	"musicrental/util/apperr"
	"musicrental/util/database"
)

// TxRunner executes a function inside one database transaction.
type TxRunner interface {
	InTx(ctx context.Context, fn func(tx *sqlx.Tx) error) error
}

type CreateInput struct {
	BookingID int64
	Score     int
	Comment   string
}

type Service interface {
	// CreateReview records the renter's rating of the rented item. It fails
	// with a descriptive error per violated precondition, checked in order:
	// score range, booking existence, requesting role, end date, booking
	// status, duplicate.
	CreateReview(ctx context.Context, in CreateInput, renterID int64) (*model.Review, error)

	// CreateRenterReview records the owner's rating of the renter, with the
	// same precondition order as CreateReview.
	CreateRenterReview(ctx context.Context, in CreateInput, ownerID int64) (*model.RenterReview, error)

	// CanReviewBooking and CanReviewRenter are pure predicates: every
	// violated precondition, including a missing booking, yields false
	// rather than an error.
	CanReviewBooking(ctx context.Context, bookingID, renterID int64) bool
	CanReviewRenter(ctx context.Context, bookingID, ownerID int64) bool

	// AverageScoreByItem and AverageScoreByRenter return 0.0 when the
	// target has no reviews.
	AverageScoreByItem(ctx context.Context, itemID int64) (float64, error)
	AverageScoreByRenter(ctx context.Context, renterID int64) (float64, error)

	ReviewsByItem(ctx context.Context, itemID int64) ([]model.Review, error)
	RenterReviewsByRenter(ctx context.Context, renterID int64) ([]model.RenterReview, error)
	ReviewByBooking(ctx context.Context, bookingID int64) (*model.Review, error)
	RenterReviewByBooking(ctx context.Context, bookingID int64) (*model.RenterReview, error)
}

type service struct {
	db       TxRunner
	reviews  reviewrepo.Repo
	bookings bookingrepo.Repo
	items    itemrepo.Repo
	now      func() time.Time
}

func New(db TxRunner, reviews reviewrepo.Repo, bookings bookingrepo.Repo, items itemrepo.Repo) Service {
	return &service{db: db, reviews: reviews, bookings: bookings, items: items, now: time.Now}
}

func (s *service) CreateReview(ctx context.Context, in CreateInput, renterID int64) (*model.Review, error) {
	b, err := s.checkCreate(ctx, in, func(b *model.Booking) error {
		return apperr.RequireActor(b.RenterID, renterID, "you can only review your own bookings")
	})
	if err != nil {
		return nil, err
	}

	exists, err := s.reviews.ReviewExistsByBooking(ctx, b.ID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperr.Conflict("a review already exists for this booking")
	}

	rv := &model.Review{BookingID: b.ID, Score: in.Score, Comment: in.Comment}
	err = s.db.InTx(ctx, func(tx *sqlx.Tx) error {
		_, err := s.reviews.InsertReview(ctx, tx, rv)
		if database.IsUniqueViolation(err) {
			return apperr.Conflict("a review already exists for this booking")
		}
		return err
	})
	if err != nil {
		return nil, err
	}
	return rv, nil
}

func (s *service) CreateRenterReview(ctx context.Context, in CreateInput, ownerID int64) (*model.RenterReview, error) {
	b, err := s.checkCreate(ctx, in, func(b *model.Booking) error {
		item, err := s.items.ByID(ctx, b.ItemID)
		if err != nil {
			return err
		}
		return apperr.RequireActor(item.OwnerID, ownerID, "you can only review renters of your own items")
	})
	if err != nil {
		return nil, err
	}

	exists, err := s.reviews.RenterReviewExistsByBooking(ctx, b.ID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperr.Conflict("a review already exists for this booking")
	}

	rv := &model.RenterReview{BookingID: b.ID, Score: in.Score, Comment: in.Comment}
	err = s.db.InTx(ctx, func(tx *sqlx.Tx) error {
		_, err := s.reviews.InsertRenterReview(ctx, tx, rv)
		if database.IsUniqueViolation(err) {
			return apperr.Conflict("a review already exists for this booking")
		}
		return err
	})
	if err != nil {
		return nil, err
	}
	return rv, nil
}

// checkCreate runs the shared create preconditions in their fixed order:
// score, booking existence, role, end date, status. The duplicate check is
// kind-specific and stays with the caller.
func (s *service) checkCreate(ctx context.Context, in CreateInput, requireRole func(*model.Booking) error) (*model.Booking, error) {
	if in.Score < 1 || in.Score > 5 {
		return nil, apperr.InvalidArgument("score must be between 1 and 5")
	}

	b, err := s.bookings.ByID(ctx, in.BookingID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.NotFound("booking not found with id: %d", in.BookingID)
		}
		return nil, err
	}

	if err := requireRole(b); err != nil {
		return nil, err
	}

	if model.DateOnly(b.EndDate).After(model.DateOnly(s.now())) {
		return nil, apperr.InvalidArgument("cannot review a booking that hasn't ended yet")
	}
	if b.Status != model.BookingApproved {
		return nil, apperr.InvalidArgument("can only review approved bookings")
	}
	return b, nil
}

func (s *service) CanReviewBooking(ctx context.Context, bookingID, renterID int64) bool {
	b, ok := s.canReviewCommon(ctx, bookingID)
	if !ok {
		return false
	}
	if b.RenterID != renterID {
		return false
	}
	exists, err := s.reviews.ReviewExistsByBooking(ctx, bookingID)
	return err == nil && !exists
}

func (s *service) CanReviewRenter(ctx context.Context, bookingID, ownerID int64) bool {
	b, ok := s.canReviewCommon(ctx, bookingID)
	if !ok {
		return false
	}
	item, err := s.items.ByID(ctx, b.ItemID)
	if err != nil || item.OwnerID != ownerID {
		return false
	}
	exists, err := s.reviews.RenterReviewExistsByBooking(ctx, bookingID)
	return err == nil && !exists
}

func (s *service) canReviewCommon(ctx context.Context, bookingID int64) (*model.Booking, bool) {
	b, err := s.bookings.ByID(ctx, bookingID)
	if err != nil {
		return nil, false
	}
	if model.DateOnly(b.EndDate).After(model.DateOnly(s.now())) {
		return nil, false
	}
	if b.Status != model.BookingApproved {
		return nil, false
	}
	return b, true
}

func (s *service) AverageScoreByItem(ctx context.Context, itemID int64) (float64, error) {
	return s.reviews.AvgScoreByItem(ctx, itemID)
}

func (s *service) AverageScoreByRenter(ctx context.Context, renterID int64) (float64, error) {
	return s.reviews.AvgScoreByRenter(ctx, renterID)
}

func (s *service) ReviewsByItem(ctx context.Context, itemID int64) ([]model.Review, error) {
	return s.reviews.ReviewsByItem(ctx, itemID)
}

func (s *service) RenterReviewsByRenter(ctx context.Context, renterID int64) ([]model.RenterReview, error) {
	return s.reviews.RenterReviewsByRenter(ctx, renterID)
}

func (s *service) ReviewByBooking(ctx context.Context, bookingID int64) (*model.Review, error) {
	rv, err := s.reviews.ReviewByBooking(ctx, bookingID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.NotFound("no review found for booking %d", bookingID)
	}
	return rv, err
}

func (s *service) RenterReviewByBooking(ctx context.Context, bookingID int64) (*model.RenterReview, error) {
	rv, err := s.reviews.RenterReviewByBooking(ctx, bookingID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.NotFound("no renter review found for booking %d", bookingID)
	}
	return rv, err
}
