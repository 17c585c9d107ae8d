package payment

type InitiatePaymentReq struct {
	BookingID int64  `json:"booking_id" validate:"required,gt=0"`
	Method    string `json:"method" validate:"required"`
}

type ProcessPaymentReq struct {
	Method     string `json:"method"`
	CardNumber string `json:"card_number"`
	CardHolder string `json:"card_holder"`
}

type InitiateAndProcessReq struct {
	BookingID  int64  `json:"booking_id" validate:"required,gt=0"`
	Method     string `json:"method" validate:"required"`
	CardNumber string `json:"card_number"`
	CardHolder string `json:"card_holder"`
}
