// model/review.go
package model

import "time"

// Review is a renter's rating of the item they rented. One per booking.
type Review struct {
	ID        int64     `db:"id" json:"id"`
	BookingID int64     `db:"booking_id" json:"booking_id"`
	Score     int       `db:"score" json:"score"`
	Comment   string    `db:"comment" json:"comment"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// RenterReview is an owner's rating of the renter. One per booking.
type RenterReview struct {
	ID        int64     `db:"id" json:"id"`
	BookingID int64     `db:"booking_id" json:"booking_id"`
	Score     int       `db:"score" json:"score"`
	Comment   string    `db:"comment" json:"comment"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
