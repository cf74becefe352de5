package handlers

import (
	"testing"
	"time"
)

func TestEstimateReadyTimeAbsentForTerminalStatuses(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	for _, status := range []string{"delivered", "cancelled"} {
		estimate := estimateReadyTime(etaByStatus, etaOrder{
			OrderType:   "instant",
			OrderStatus: status,
			CreatedAt:   now.Add(-30 * time.Minute),
		}, now)
		if estimate != nil {
			t.Fatalf("expected no estimate for status %q, got %v", status, estimate)
		}
	}
}

func TestEstimateReadyTimeReadyIsNow(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	estimate := estimateReadyTime(etaByStatus, etaOrder{
		OrderType:   "instant",
		OrderStatus: "ready",
		CreatedAt:   now.Add(-30 * time.Minute),
	}, now)
	if estimate == nil || !estimate.Equal(now) {
		t.Fatalf("expected estimate equal to now, got %v", estimate)
	}
}

func TestEstimateReadyTimePendingInstant(t *testing.T) {
	createdAt := time.Date(2026, 3, 1, 11, 0, 0, 0, time.UTC)
	now := createdAt.Add(5 * time.Minute)

	estimate := estimateReadyTime(etaByStatus, etaOrder{
		OrderType:   "instant",
		OrderStatus: "pending",
		CreatedAt:   createdAt,
	}, now)

	want := createdAt.Add(15 * time.Minute)
	if estimate == nil || !estimate.Equal(want) {
		t.Fatalf("expected createdAt+15m (%v), got %v", want, estimate)
	}
}

func TestEstimateReadyTimeStatusMultipliers(t *testing.T) {
	createdAt := time.Date(2026, 3, 1, 11, 0, 0, 0, time.UTC)
	now := createdAt

	tests := []struct {
		status      string
		orderType   string
		wantMinutes float64
	}{
		{"pending", "instant", 15},
		{"confirmed", "instant", 15 * 0.7},
		{"preparing", "instant", 15 * 0.3},
		{"pending", "scheduled", 25},
		{"confirmed", "scheduled", 25 * 0.7},
		{"unknown-status", "instant", 15},
	}

	for _, tt := range tests {
		estimate := estimateReadyTime(etaByStatus, etaOrder{
			OrderType:   tt.orderType,
			OrderStatus: tt.status,
			CreatedAt:   createdAt,
		}, now)
		want := createdAt.Add(time.Duration(tt.wantMinutes * float64(time.Minute)))
		if estimate == nil || !estimate.Equal(want) {
			t.Fatalf("status=%s type=%s: expected %v, got %v", tt.status, tt.orderType, want, estimate)
		}
	}
}

func TestEstimateReadyTimeItemsFormula(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	// 3 items: 15 + 3*2 = 21 minutes from now.
	estimate := estimateReadyTime(etaByItems, etaOrder{
		OrderType: "instant",
		ItemCount: 3,
		ItemNames: []string{"Tea", "Singara"},
	}, now)
	want := now.Add(21 * time.Minute)
	if estimate == nil || !estimate.Equal(want) {
		t.Fatalf("expected %v, got %v", want, estimate)
	}
}

func TestEstimateReadyTimeItemsFormulaCapsItemBonus(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	// 30 items would add 60 minutes uncapped; the bonus caps at 20.
	estimate := estimateReadyTime(etaByItems, etaOrder{
		OrderType: "instant",
		ItemCount: 30,
	}, now)
	want := now.Add(35 * time.Minute)
	if estimate == nil || !estimate.Equal(want) {
		t.Fatalf("expected %v, got %v", want, estimate)
	}
}

func TestEstimateReadyTimeItemsFormulaComplexItems(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	// scheduled +10, 2 items +4, "Special Combo" +10 => 39 minutes.
	estimate := estimateReadyTime(etaByItems, etaOrder{
		OrderType: "scheduled",
		ItemCount: 2,
		ItemNames: []string{"Special Combo", "Tea"},
	}, now)
	want := now.Add(39 * time.Minute)
	if estimate == nil || !estimate.Equal(want) {
		t.Fatalf("expected %v, got %v", want, estimate)
	}
}

func TestEstimateReadyTimeItemsFormulaIgnoresStatus(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	withStatus := estimateReadyTime(etaByItems, etaOrder{
		OrderType:   "instant",
		OrderStatus: "preparing",
		ItemCount:   1,
	}, now)
	withoutStatus := estimateReadyTime(etaByItems, etaOrder{
		OrderType: "instant",
		ItemCount: 1,
	}, now)
	if withStatus == nil || withoutStatus == nil || !withStatus.Equal(*withoutStatus) {
		t.Fatalf("items formula must not depend on status: %v vs %v", withStatus, withoutStatus)
	}
}

func TestHasComplexItems(t *testing.T) {
	if !hasComplexItems([]string{"Chicken SPECIAL roll"}) {
		t.Fatal("expected case-insensitive match on 'special'")
	}
	if !hasComplexItems([]string{"Breakfast Combo"}) {
		t.Fatal("expected match on 'combo'")
	}
	if hasComplexItems([]string{"Tea", "Puri"}) {
		t.Fatal("expected no match for plain items")
	}
}
