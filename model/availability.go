// model/availability.go
package model

import "time"

type AvailabilityReason string

const (
	ReasonOwnerUse    AvailabilityReason = "OWNER_USE"
	ReasonMaintenance AvailabilityReason = "MAINTENANCE"
	ReasonOther       AvailabilityReason = "OTHER"
)

// Availability is an owner-declared block on an instrument's calendar,
// independent of any booking. Both endpoints are inclusive.
type Availability struct {
	ID           int64              `db:"id" json:"id"`
	InstrumentID int64              `db:"instrument_id" json:"instrument_id"`
	StartDate    time.Time          `db:"start_date" json:"start_date"`
	EndDate      time.Time          `db:"end_date" json:"end_date"`
	Reason       AvailabilityReason `db:"reason" json:"reason"`
}
