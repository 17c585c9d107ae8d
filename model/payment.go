// model/payment.go
package model

import "time"

type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "PENDING"
	PaymentCompleted PaymentStatus = "COMPLETED"
	PaymentFailed    PaymentStatus = "FAILED"
	PaymentRefunded  PaymentStatus = "REFUNDED"
	PaymentCancelled PaymentStatus = "CANCELLED"
)

type Payment struct {
	ID            int64         `db:"id" json:"id"`
	BookingID     int64         `db:"booking_id" json:"booking_id"`
	Amount        float64       `db:"amount" json:"amount"`
	Method        string        `db:"method" json:"method"`
	Status        PaymentStatus `db:"status" json:"status"`
	TransactionID *string       `db:"transaction_id" json:"transaction_id,omitempty"`
	FailureReason *string       `db:"failure_reason" json:"failure_reason,omitempty"`
	CreatedAt     time.Time     `db:"created_at" json:"created_at"`
	CompletedAt   *time.Time    `db:"completed_at" json:"completed_at,omitempty"`
}
