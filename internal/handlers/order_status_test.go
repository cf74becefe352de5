package handlers

import "testing"

func TestNextOrderStatusAcceptsAnyValidTarget(t *testing.T) {
	// The transition graph is deliberately unconstrained today.
	for _, from := range validOrderStatuses {
		for _, to := range validOrderStatuses {
			got, ok := nextOrderStatus(from, to)
			if !ok || got != to {
				t.Fatalf("expected %s -> %s to be allowed", from, to)
			}
		}
	}
}

func TestNextOrderStatusRejectsUnknownTarget(t *testing.T) {
	got, ok := nextOrderStatus("pending", "shipped")
	if ok {
		t.Fatal("expected unknown status to be rejected")
	}
	if got != "pending" {
		t.Fatalf("expected current status to be kept, got %s", got)
	}
}

func TestPaymentValidators(t *testing.T) {
	if !isValidPaymentMethod("bkash") || !isValidPaymentMethod("nagad") || !isValidPaymentMethod("card") {
		t.Fatal("expected bkash, nagad and card to be valid payment methods")
	}
	if isValidPaymentMethod("cash") {
		t.Fatal("expected cash to be rejected")
	}
	if !isValidPaymentStatus("pending") || !isValidPaymentStatus("completed") {
		t.Fatal("expected pending and completed to be valid payment statuses")
	}
	if isValidPaymentStatus("refunded") {
		t.Fatal("expected refunded to be rejected")
	}
}
