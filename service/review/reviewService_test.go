package review_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"musicrental/model"
	bookingrepo "musicrental/repository/booking"
	reviewsvc "musicrental/service/review"
	"musicrental/util/apperr"
)

type txRunnerMock struct{}

func (txRunnerMock) InTx(ctx context.Context, fn func(tx *sqlx.Tx) error) error { return fn(nil) }

type reviewRepoMock struct {
	reviewExists       bool
	renterReviewExists bool
	insertedReview     *model.Review
	insertedRenter     *model.RenterReview
	avgByItem          float64
	avgByRenter        float64
}

func (m *reviewRepoMock) InsertReview(ctx context.Context, tx *sqlx.Tx, rv *model.Review) (int64, error) {
	rv.ID = 1
	rv.CreatedAt = time.Now()
	m.insertedReview = rv
	return rv.ID, nil
}
func (m *reviewRepoMock) ReviewExistsByBooking(ctx context.Context, bookingID int64) (bool, error) {
	return m.reviewExists, nil
}
func (m *reviewRepoMock) ReviewByBooking(ctx context.Context, bookingID int64) (*model.Review, error) {
	if m.insertedReview == nil {
		return nil, sql.ErrNoRows
	}
	return m.insertedReview, nil
}
func (m *reviewRepoMock) ReviewsByItem(ctx context.Context, itemID int64) ([]model.Review, error) {
	return nil, nil
}
func (m *reviewRepoMock) AvgScoreByItem(ctx context.Context, itemID int64) (float64, error) {
	return m.avgByItem, nil
}
func (m *reviewRepoMock) InsertRenterReview(ctx context.Context, tx *sqlx.Tx, rv *model.RenterReview) (int64, error) {
	rv.ID = 1
	rv.CreatedAt = time.Now()
	m.insertedRenter = rv
	return rv.ID, nil
}
func (m *reviewRepoMock) RenterReviewExistsByBooking(ctx context.Context, bookingID int64) (bool, error) {
	return m.renterReviewExists, nil
}
func (m *reviewRepoMock) RenterReviewByBooking(ctx context.Context, bookingID int64) (*model.RenterReview, error) {
	if m.insertedRenter == nil {
		return nil, sql.ErrNoRows
	}
	return m.insertedRenter, nil
}
func (m *reviewRepoMock) RenterReviewsByRenter(ctx context.Context, renterID int64) ([]model.RenterReview, error) {
	return nil, nil
}
func (m *reviewRepoMock) AvgScoreByRenter(ctx context.Context, renterID int64) (float64, error) {
	return m.avgByRenter, nil
}

type bookingRepoMock struct {
	booking *model.Booking
}

func (m *bookingRepoMock) ByID(ctx context.Context, id int64) (*model.Booking, error) {
	if m.booking == nil || m.booking.ID != id {
		return nil, sql.ErrNoRows
	}
	return m.booking, nil
}
func (m *bookingRepoMock) ByIDForUpdate(ctx context.Context, tx *sqlx.Tx, id int64) (*model.Booking, error) {
	return m.ByID(ctx, id)
}
func (m *bookingRepoMock) Insert(ctx context.Context, tx *sqlx.Tx, b *model.Booking) (int64, error) {
	return 0, nil
}
func (m *bookingRepoMock) UpdateStatus(ctx context.Context, tx *sqlx.Tx, id int64, status model.BookingStatus) error {
	return nil
}
func (m *bookingRepoMock) FindConflicting(ctx context.Context, tx *sqlx.Tx, itemID int64, start, end time.Time) ([]model.Booking, error) {
	return nil, nil
}
func (m *bookingRepoMock) All(ctx context.Context) ([]model.Booking, error) { return nil, nil }
func (m *bookingRepoMock) ByStatus(ctx context.Context, status model.BookingStatus) ([]model.Booking, error) {
	return nil, nil
}
func (m *bookingRepoMock) ByRenter(ctx context.Context, renterID int64) ([]model.Booking, error) {
	return nil, nil
}
func (m *bookingRepoMock) ByItem(ctx context.Context, itemID int64) ([]model.Booking, error) {
	return nil, nil
}
func (m *bookingRepoMock) CountAll(ctx context.Context) (int64, error) { return 0, nil }
func (m *bookingRepoMock) CountByStatus(ctx context.Context, status model.BookingStatus) (int64, error) {
	return 0, nil
}
func (m *bookingRepoMock) CountByRenter(ctx context.Context, renterID int64) (int64, error) {
	return 0, nil
}
func (m *bookingRepoMock) CountByOwner(ctx context.Context, ownerID int64) (int64, error) {
	return 0, nil
}
func (m *bookingRepoMock) RevenueRows(ctx context.Context, status model.BookingStatus) ([]bookingrepo.RevenueRow, error) {
	return nil, nil
}
func (m *bookingRepoMock) RevenueRowsByOwner(ctx context.Context, ownerID int64, status model.BookingStatus) ([]bookingrepo.RevenueRow, error) {
	return nil, nil
}

type itemRepoMock struct {
	item *model.Item
}

func (m *itemRepoMock) ByID(ctx context.Context, id int64) (*model.Item, error) {
	if m.item == nil || m.item.ID != id {
		return nil, sql.ErrNoRows
	}
	return m.item, nil
}
func (m *itemRepoMock) ByIDForUpdate(ctx context.Context, tx *sqlx.Tx, id int64) (*model.Item, error) {
	return m.ByID(ctx, id)
}
func (m *itemRepoMock) ByOwner(ctx context.Context, ownerID int64) ([]model.Item, error) {
	return nil, nil
}
func (m *itemRepoMock) List(ctx context.Context) ([]model.Item, error) { return nil, nil }

const (
	bookingID = 5
	renterID  = 20
	ownerID   = 10
	itemID    = 1
)

// endedBooking ended yesterday, so it is always reviewable time-wise.
func endedBooking(status model.BookingStatus) *model.Booking {
	now := time.Now().UTC()
	return &model.Booking{
		ID:        bookingID,
		ItemID:    itemID,
		RenterID:  renterID,
		StartDate: now.AddDate(0, 0, -5),
		EndDate:   now.AddDate(0, 0, -1),
		Status:    status,
	}
}

func runningBooking() *model.Booking {
	b := endedBooking(model.BookingApproved)
	b.EndDate = time.Now().UTC().AddDate(0, 0, 3)
	return b
}

func newService(rr *reviewRepoMock, b *model.Booking) reviewsvc.Service {
	items := &itemRepoMock{item: &model.Item{ID: itemID, Kind: model.KindInstrument, OwnerID: ownerID}}
	return reviewsvc.New(txRunnerMock{}, rr, &bookingRepoMock{booking: b}, items)
}

func input(score int) reviewsvc.CreateInput {
	return reviewsvc.CreateInput{BookingID: bookingID, Score: score, Comment: "solid"}
}

func TestCreateReview_Success(t *testing.T) {
	rr := &reviewRepoMock{}
	s := newService(rr, endedBooking(model.BookingApproved))

	rv, err := s.CreateReview(context.Background(), input(4), renterID)
	require.NoError(t, err)
	require.Equal(t, bookingID, int(rv.BookingID))
	require.Equal(t, 4, rv.Score)
	require.NotNil(t, rr.insertedReview)
}

func TestCreateReview_ScoreRange(t *testing.T) {
	// Score is validated before anything else, even booking existence.
	s := newService(&reviewRepoMock{}, nil)
	for _, score := range []int{0, -1, 6, 100} {
		_, err := s.CreateReview(context.Background(), input(score), renterID)
		require.Equal(t, apperr.CodeInvalidArgument, apperr.CodeOf(err), "score %d", score)
		require.EqualError(t, err, "score must be between 1 and 5")
	}
}

func TestCreateReview_BookingNotFound(t *testing.T) {
	s := newService(&reviewRepoMock{}, nil)
	_, err := s.CreateReview(context.Background(), input(4), renterID)
	require.Equal(t, apperr.CodeNotFound, apperr.CodeOf(err))
}

func TestCreateReview_WrongRenter(t *testing.T) {
	s := newService(&reviewRepoMock{}, endedBooking(model.BookingApproved))
	_, err := s.CreateReview(context.Background(), input(4), 999)
	require.Equal(t, apperr.CodeUnauthorized, apperr.CodeOf(err))
	require.EqualError(t, err, "you can only review your own bookings")
}

func TestCreateReview_NotEnded(t *testing.T) {
	s := newService(&reviewRepoMock{}, runningBooking())
	_, err := s.CreateReview(context.Background(), input(4), renterID)
	require.Equal(t, apperr.CodeInvalidArgument, apperr.CodeOf(err))
	require.EqualError(t, err, "cannot review a booking that hasn't ended yet")
}

func TestCreateReview_NotApproved(t *testing.T) {
	for _, status := range []model.BookingStatus{
		model.BookingPending, model.BookingRejected, model.BookingCancelled,
	} {
		t.Run(string(status), func(t *testing.T) {
			s := newService(&reviewRepoMock{}, endedBooking(status))
			_, err := s.CreateReview(context.Background(), input(4), renterID)
			require.Equal(t, apperr.CodeInvalidArgument, apperr.CodeOf(err))
			require.EqualError(t, err, "can only review approved bookings")
		})
	}
}

func TestCreateReview_Duplicate(t *testing.T) {
	rr := &reviewRepoMock{reviewExists: true}
	s := newService(rr, endedBooking(model.BookingApproved))
	_, err := s.CreateReview(context.Background(), input(4), renterID)
	require.Equal(t, apperr.CodeConflict, apperr.CodeOf(err))
	require.EqualError(t, err, "a review already exists for this booking")
}

func TestCreateRenterReview_Success(t *testing.T) {
	rr := &reviewRepoMock{}
	s := newService(rr, endedBooking(model.BookingApproved))

	rv, err := s.CreateRenterReview(context.Background(), input(5), ownerID)
	require.NoError(t, err)
	require.Equal(t, 5, rv.Score)
	require.NotNil(t, rr.insertedRenter)
}

func TestCreateRenterReview_NotOwner(t *testing.T) {
	s := newService(&reviewRepoMock{}, endedBooking(model.BookingApproved))
	// The renter cannot review themselves through the owner-side endpoint.
	_, err := s.CreateRenterReview(context.Background(), input(5), renterID)
	require.Equal(t, apperr.CodeUnauthorized, apperr.CodeOf(err))
	require.EqualError(t, err, "you can only review renters of your own items")
}

func TestCreateRenterReview_IndependentOfItemReview(t *testing.T) {
	// An existing item review does not block the owner's renter review.
	rr := &reviewRepoMock{reviewExists: true}
	s := newService(rr, endedBooking(model.BookingApproved))
	_, err := s.CreateRenterReview(context.Background(), input(3), ownerID)
	require.NoError(t, err)
}

func TestCanReviewBooking(t *testing.T) {
	cases := []struct {
		name    string
		booking *model.Booking
		userID  int64
		exists  bool
		want    bool
	}{
		{"eligible", endedBooking(model.BookingApproved), renterID, false, true},
		{"missing booking", nil, renterID, false, false},
		{"wrong renter", endedBooking(model.BookingApproved), 999, false, false},
		{"not ended", runningBooking(), renterID, false, false},
		{"pending", endedBooking(model.BookingPending), renterID, false, false},
		{"rejected", endedBooking(model.BookingRejected), renterID, false, false},
		{"cancelled", endedBooking(model.BookingCancelled), renterID, false, false},
		{"already reviewed", endedBooking(model.BookingApproved), renterID, true, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rr := &reviewRepoMock{reviewExists: tc.exists}
			s := newService(rr, tc.booking)
			require.Equal(t, tc.want, s.CanReviewBooking(context.Background(), bookingID, tc.userID))
		})
	}
}

func TestCanReviewBooking_EndsToday(t *testing.T) {
	// A booking ending today is already reviewable.
	b := endedBooking(model.BookingApproved)
	b.EndDate = time.Now().UTC()
	s := newService(&reviewRepoMock{}, b)
	require.True(t, s.CanReviewBooking(context.Background(), bookingID, renterID))
}

func TestCanReviewRenter(t *testing.T) {
	s := newService(&reviewRepoMock{}, endedBooking(model.BookingApproved))
	require.True(t, s.CanReviewRenter(context.Background(), bookingID, ownerID))
	require.False(t, s.CanReviewRenter(context.Background(), bookingID, renterID))

	rr := &reviewRepoMock{renterReviewExists: true}
	s = newService(rr, endedBooking(model.BookingApproved))
	require.False(t, s.CanReviewRenter(context.Background(), bookingID, ownerID))
}

func TestAverageScore_Empty(t *testing.T) {
	s := newService(&reviewRepoMock{}, nil)

	avg, err := s.AverageScoreByItem(context.Background(), itemID)
	require.NoError(t, err)
	require.Equal(t, 0.0, avg)

	avg, err = s.AverageScoreByRenter(context.Background(), renterID)
	require.NoError(t, err)
	require.Equal(t, 0.0, avg)
}

func TestReviewByBooking_NotFound(t *testing.T) {
	s := newService(&reviewRepoMock{}, nil)
	_, err := s.ReviewByBooking(context.Background(), bookingID)
	require.Equal(t, apperr.CodeNotFound, apperr.CodeOf(err))
}
