// model/booking.go
package model

import "time"

type BookingStatus string

const (
	BookingPending   BookingStatus = "PENDING"
	BookingApproved  BookingStatus = "APPROVED"
	BookingRejected  BookingStatus = "REJECTED"
	BookingCancelled BookingStatus = "CANCELLED"
)

// Booking is a renter's claim on an item for the closed date range
// [StartDate, EndDate]. For a given item no two bookings with status in
// {PENDING, APPROVED} may overlap.
type Booking struct {
	ID        int64         `db:"id" json:"id"`
	ItemID    int64         `db:"item_id" json:"item_id"`
	RenterID  int64         `db:"renter_id" json:"renter_id"`
	StartDate time.Time     `db:"start_date" json:"start_date"`
	EndDate   time.Time     `db:"end_date" json:"end_date"`
	Status    BookingStatus `db:"status" json:"status"`
	CreatedAt time.Time     `db:"created_at" json:"created_at"`
}
