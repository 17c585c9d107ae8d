package gateway_test

import (
	"context"
	"strings"
	"testing"

	"musicrental/gateway"
)

func TestSimulatedCharge_Approved(t *testing.T) {
	gw := gateway.Simulated{}
	res := gw.Charge(context.Background(), gateway.ChargeRequest{CardNumber: "4242424242424242"})
	if !res.Approved {
		t.Fatalf("expected approval, got %+v", res)
	}
	if !strings.HasPrefix(res.TransactionID, "TXN-") || len(res.TransactionID) != len("TXN-")+8 {
		t.Fatalf("bad transaction id %q", res.TransactionID)
	}
	if res.TransactionID != strings.ToUpper(res.TransactionID) {
		t.Fatalf("transaction id not uppercase: %q", res.TransactionID)
	}
}

func TestSimulatedCharge_EmptyCardApproved(t *testing.T) {
	res := gateway.Simulated{}.Charge(context.Background(), gateway.ChargeRequest{})
	if !res.Approved {
		t.Fatalf("empty card should be approved, got %+v", res)
	}
}

func TestSimulatedCharge_Declined(t *testing.T) {
	res := gateway.Simulated{}.Charge(context.Background(), gateway.ChargeRequest{CardNumber: gateway.DeclinedCard})
	if res.Approved {
		t.Fatal("decline card should not be approved")
	}
	if res.FailureReason != "Card declined" {
		t.Fatalf("reason %q", res.FailureReason)
	}
	if res.TransactionID != "" {
		t.Fatalf("declined charge must not mint a transaction id, got %q", res.TransactionID)
	}
}

func TestSimulatedCharge_UniqueIDs(t *testing.T) {
	gw := gateway.Simulated{}
	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		id := gw.Charge(context.Background(), gateway.ChargeRequest{}).TransactionID
		if seen[id] {
			t.Fatalf("duplicate transaction id %q", id)
		}
		seen[id] = true
	}
}
