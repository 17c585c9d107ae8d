package review

type CreateReviewReq struct {
	BookingID int64  `json:"booking_id" validate:"required,gt=0"`
	Score     int    `json:"score" validate:"required"`
	Comment   string `json:"comment" validate:"max=1000"`
}
