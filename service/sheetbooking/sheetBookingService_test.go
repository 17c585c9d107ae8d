package sheetbooking_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"

	"musicrental/model"
	sheetsvc "musicrental/service/sheetbooking"
	"musicrental/util/apperr"
)

type lifecycleMock struct {
	createFn       func(ctx context.Context, itemID, renterID int64, start, end time.Time) (*model.Booking, error)
	listByItemFn   func(ctx context.Context, itemID int64) ([]model.Booking, error)
	listByRenterFn func(ctx context.Context, renterID int64) ([]model.Booking, error)
}

func (m *lifecycleMock) Create(ctx context.Context, itemID, renterID int64, start, end time.Time) (*model.Booking, error) {
	return m.createFn(ctx, itemID, renterID, start, end)
}
func (m *lifecycleMock) Approve(ctx context.Context, bookingID, ownerID int64) (*model.Booking, error) {
	return nil, nil
}
func (m *lifecycleMock) Reject(ctx context.Context, bookingID, ownerID int64) (*model.Booking, error) {
	return nil, nil
}
func (m *lifecycleMock) AdminCancel(ctx context.Context, bookingID int64) (*model.Booking, error) {
	return nil, nil
}
func (m *lifecycleMock) ByID(ctx context.Context, bookingID int64) (*model.Booking, error) {
	return nil, nil
}
func (m *lifecycleMock) List(ctx context.Context) ([]model.Booking, error) { return nil, nil }
func (m *lifecycleMock) ListByStatus(ctx context.Context, status model.BookingStatus) ([]model.Booking, error) {
	return nil, nil
}
func (m *lifecycleMock) ListByRenter(ctx context.Context, renterID int64) ([]model.Booking, error) {
	return m.listByRenterFn(ctx, renterID)
}
func (m *lifecycleMock) ListByItem(ctx context.Context, itemID int64) ([]model.Booking, error) {
	return m.listByItemFn(ctx, itemID)
}

type itemRepoMock struct {
	byIDFn func(ctx context.Context, id int64) (*model.Item, error)
}

func (m *itemRepoMock) ByID(ctx context.Context, id int64) (*model.Item, error) {
	return m.byIDFn(ctx, id)
}
func (m *itemRepoMock) ByIDForUpdate(ctx context.Context, tx *sqlx.Tx, id int64) (*model.Item, error) {
	return m.byIDFn(ctx, id)
}
func (m *itemRepoMock) ByOwner(ctx context.Context, ownerID int64) ([]model.Item, error) {
	return nil, nil
}
func (m *itemRepoMock) List(ctx context.Context) ([]model.Item, error) { return nil, nil }

func day(d int) time.Time {
	return time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, d)
}

func sheetItems() *itemRepoMock {
	return &itemRepoMock{byIDFn: func(ctx context.Context, id int64) (*model.Item, error) {
		switch id {
		case 1:
			return &model.Item{ID: 1, Kind: model.KindMusicSheet, OwnerID: 10}, nil
		case 2:
			return &model.Item{ID: 2, Kind: model.KindInstrument, OwnerID: 10}, nil
		default:
			return nil, sql.ErrNoRows
		}
	}}
}

func TestCreate_SameDayRejected(t *testing.T) {
	s := sheetsvc.New(&lifecycleMock{}, sheetItems())
	// Different times on the same calendar day still count as same-day.
	start := time.Date(2025, 6, 3, 9, 0, 0, 0, time.UTC)
	end := time.Date(2025, 6, 3, 18, 0, 0, 0, time.UTC)
	_, err := s.Create(context.Background(), 1, 20, start, end)
	if apperr.CodeOf(err) != apperr.CodeInvalidArgument {
		t.Fatalf("got %v", err)
	}
}

func TestCreate_StartAfterEndRejected(t *testing.T) {
	s := sheetsvc.New(&lifecycleMock{}, sheetItems())
	_, err := s.Create(context.Background(), 1, 20, day(5), day(2))
	if apperr.CodeOf(err) != apperr.CodeInvalidArgument {
		t.Fatalf("got %v", err)
	}
}

func TestCreate_SheetNotFound(t *testing.T) {
	s := sheetsvc.New(&lifecycleMock{}, sheetItems())
	_, err := s.Create(context.Background(), 999, 20, day(0), day(2))
	if apperr.CodeOf(err) != apperr.CodeNotFound {
		t.Fatalf("got %v", err)
	}
}

func TestCreate_InstrumentIsNotASheet(t *testing.T) {
	s := sheetsvc.New(&lifecycleMock{}, sheetItems())
	_, err := s.Create(context.Background(), 2, 20, day(0), day(2))
	if apperr.CodeOf(err) != apperr.CodeNotFound {
		t.Fatalf("instrument id must not book as sheet, got %v", err)
	}
}

func TestCreate_DelegatesToLifecycle(t *testing.T) {
	var gotItem, gotRenter int64
	lc := &lifecycleMock{createFn: func(ctx context.Context, itemID, renterID int64, start, end time.Time) (*model.Booking, error) {
		gotItem, gotRenter = itemID, renterID
		return &model.Booking{ID: 42, ItemID: itemID, RenterID: renterID, Status: model.BookingPending}, nil
	}}
	s := sheetsvc.New(lc, sheetItems())

	b, err := s.Create(context.Background(), 1, 20, day(0), day(3))
	if err != nil || b.ID != 42 {
		t.Fatalf("got %+v %v", b, err)
	}
	if gotItem != 1 || gotRenter != 20 {
		t.Fatalf("delegated with item=%d renter=%d", gotItem, gotRenter)
	}
}

func TestListBySheet(t *testing.T) {
	lc := &lifecycleMock{listByItemFn: func(ctx context.Context, itemID int64) ([]model.Booking, error) {
		return []model.Booking{{ID: 1, ItemID: itemID}}, nil
	}}
	s := sheetsvc.New(lc, sheetItems())

	out, err := s.ListBySheet(context.Background(), 1)
	if err != nil || len(out) != 1 {
		t.Fatalf("got %v %v", out, err)
	}

	if _, err := s.ListBySheet(context.Background(), 999); apperr.CodeOf(err) != apperr.CodeNotFound {
		t.Fatalf("got %v", err)
	}
}
