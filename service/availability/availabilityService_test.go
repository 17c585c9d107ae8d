package availability_test

import (
	"context"
	"testing"
	"time"

	"musicrental/model"
	availsvc "musicrental/service/availability"
	"musicrental/util/apperr"
)

type repoMock struct {
	insertFn          func(ctx context.Context, a *model.Availability) (int64, error)
	deleteFn          func(ctx context.Context, id int64) error
	byInstrumentFn    func(ctx context.Context, instrumentID int64) ([]model.Availability, error)
	allFn             func(ctx context.Context) ([]model.Availability, error)
	findOverlappingFn func(ctx context.Context, instrumentID int64, start, end time.Time) ([]model.Availability, error)
}

func (m *repoMock) Insert(ctx context.Context, a *model.Availability) (int64, error) {
	return m.insertFn(ctx, a)
}
func (m *repoMock) Delete(ctx context.Context, id int64) error { return m.deleteFn(ctx, id) }
func (m *repoMock) ByInstrument(ctx context.Context, instrumentID int64) ([]model.Availability, error) {
	return m.byInstrumentFn(ctx, instrumentID)
}
func (m *repoMock) All(ctx context.Context) ([]model.Availability, error) { return m.allFn(ctx) }
func (m *repoMock) FindOverlapping(ctx context.Context, instrumentID int64, start, end time.Time) ([]model.Availability, error) {
	return m.findOverlappingFn(ctx, instrumentID, start, end)
}

func day(d int) time.Time {
	return time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, d)
}

func TestCreateUnavailability_InvalidDates(t *testing.T) {
	s := availsvc.New(&repoMock{})

	cases := []struct {
		name       string
		start, end time.Time
	}{
		{"zero start", time.Time{}, day(1)},
		{"zero end", day(1), time.Time{}},
		{"start after end", day(5), day(1)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := s.CreateUnavailability(context.Background(), 1, tc.start, tc.end, model.ReasonOwnerUse)
			if apperr.CodeOf(err) != apperr.CodeInvalidArgument {
				t.Fatalf("got %v", err)
			}
		})
	}
}

func TestCreateUnavailability_SingleDayWindow(t *testing.T) {
	var inserted *model.Availability
	m := &repoMock{
		insertFn: func(ctx context.Context, a *model.Availability) (int64, error) {
			inserted = a
			return 11, nil
		},
	}
	s := availsvc.New(m)

	a, err := s.CreateUnavailability(context.Background(), 3, day(4), day(4), model.ReasonMaintenance)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a.ID != 11 || inserted == nil {
		t.Fatalf("insert not wired, got %+v", a)
	}
	if !inserted.StartDate.Equal(day(4)) || !inserted.EndDate.Equal(day(4)) {
		t.Fatalf("dates not preserved: %+v", inserted)
	}
}

func TestIsAvailable(t *testing.T) {
	windows := []model.Availability{{ID: 1, InstrumentID: 3, StartDate: day(2), EndDate: day(6)}}
	m := &repoMock{
		findOverlappingFn: func(ctx context.Context, instrumentID int64, start, end time.Time) ([]model.Availability, error) {
			var out []model.Availability
			for _, w := range windows {
				if w.InstrumentID == instrumentID && model.Overlaps(w.StartDate, w.EndDate, start, end) {
					out = append(out, w)
				}
			}
			return out, nil
		},
	}
	s := availsvc.New(m)

	ok, err := s.IsAvailable(context.Background(), 3, day(7), day(9))
	if err != nil || !ok {
		t.Fatalf("disjoint range should be available, got %v %v", ok, err)
	}

	// Touching the window's end day is still an overlap.
	ok, err = s.IsAvailable(context.Background(), 3, day(6), day(9))
	if err != nil || ok {
		t.Fatalf("touching range should be unavailable, got %v %v", ok, err)
	}
}

func TestDeleteUnavailability_Idempotent(t *testing.T) {
	m := &repoMock{deleteFn: func(ctx context.Context, id int64) error { return nil }}
	s := availsvc.New(m)
	if err := s.DeleteUnavailability(context.Background(), 9999); err != nil {
		t.Fatalf("delete of missing id should not error: %v", err)
	}
}
