package availability

type CreateUnavailabilityReq struct {
	InstrumentID int64  `json:"instrument_id" validate:"required,gt=0"`
	StartDate    string `json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate      string `json:"end_date" validate:"required,datetime=2006-01-02"`
	Reason       string `json:"reason" validate:"required,oneof=OWNER_USE MAINTENANCE OTHER"`
}
