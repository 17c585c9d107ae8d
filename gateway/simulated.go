// gateway/simulated.go
package gateway

import (
	"context"
	"strings"

	"github.com/google/uuid"
)

// DeclinedCard is the fixed test card number the simulated gateway declines.
const DeclinedCard = "4000000000000002"

type ChargeRequest struct {
	CardNumber string
	CardHolder string
}

type Result struct {
	Approved      bool
	TransactionID string
	FailureReason string
}

// Processor authorizes a charge. The payment service owns the payment state
// machine; the processor only decides the gateway outcome and mints the
// transaction id.
type Processor interface {
	Charge(ctx context.Context, req ChargeRequest) Result
}

// Simulated approves every card except the decline sentinel. An absent card
// number counts as success; this is a test gateway, not real authorization.
type Simulated struct{}

func (Simulated) Charge(_ context.Context, req ChargeRequest) Result {
	if req.CardNumber == DeclinedCard {
		return Result{Approved: false, FailureReason: "Card declined"}
	}
	return Result{Approved: true, TransactionID: newTransactionID()}
}

func newTransactionID() string {
	return "TXN-" + strings.ToUpper(uuid.NewString()[:8])
}
