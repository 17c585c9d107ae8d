// metrics/metrics.go
package metrics

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

// Recorder receives booking lifecycle events. It is strictly best-effort:
// implementations must never block and never return an error, so a missing
// or broken metrics backend cannot fail a transition.
type Recorder interface {
	BookingCreated(ctx context.Context)
	BookingApproved(ctx context.Context)
	BookingRejected(ctx context.Context)
}

type otelRecorder struct {
	created  metric.Int64Counter
	approved metric.Int64Counter
	rejected metric.Int64Counter
}

// New builds a Recorder on the global otel meter provider. Without a
// configured SDK the global provider is a no-op, which is exactly the
// fallback behavior we want.
func New() Recorder {
	m := otel.Meter("musicrental")
	created, err1 := m.Int64Counter("bookings.created")
	approved, err2 := m.Int64Counter("bookings.approved")
	rejected, err3 := m.Int64Counter("bookings.rejected")
	if err1 != nil || err2 != nil || err3 != nil {
		return Noop{}
	}
	return &otelRecorder{created: created, approved: approved, rejected: rejected}
}

func (r *otelRecorder) BookingCreated(ctx context.Context)  { r.created.Add(ctx, 1) }
func (r *otelRecorder) BookingApproved(ctx context.Context) { r.approved.Add(ctx, 1) }
func (r *otelRecorder) BookingRejected(ctx context.Context) { r.rejected.Add(ctx, 1) }

type Noop struct{}

func (Noop) BookingCreated(context.Context)  {}
func (Noop) BookingApproved(context.Context) {}
func (Noop) BookingRejected(context.Context) {}
