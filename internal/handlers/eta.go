package handlers

import (
	"strings"
	"time"
)

// The two formulas below disagree on purpose: the order list and the order
// confirmation screens historically computed their estimates independently
// and drifted apart. Both are kept behind one function until a canonical
// formula is picked with the stakeholders.
type etaFormula int

const (
	// etaByStatus is the list/admin formula: anchored at order creation,
	// scaled down as the status advances.
	etaByStatus etaFormula = iota
	// etaByItems is the confirmation formula: anchored at the current time,
	// grown with the item count, ignoring status.
	etaByItems
)

type etaOrder struct {
	OrderType   string
	OrderStatus string
	CreatedAt   time.Time
	ItemCount   int
	ItemNames   []string
}

// estimateReadyTime derives the estimated ready time for an order. Returns nil
// when no estimate applies. Never persisted; recomputed on every call.
func estimateReadyTime(formula etaFormula, order etaOrder, now time.Time) *time.Time {
	switch formula {
	case etaByItems:
		minutes := 15.0
		if order.OrderType == "scheduled" {
			minutes += 10
		}
		extra := float64(order.ItemCount * 2)
		if extra > 20 {
			extra = 20 // max 20 additional minutes
		}
		minutes += extra
		if hasComplexItems(order.ItemNames) {
			minutes += 10
		}
		estimate := now.Add(time.Duration(minutes * float64(time.Minute)))
		return &estimate

	default:
		switch order.OrderStatus {
		case "delivered", "cancelled":
			return nil
		case "ready":
			estimate := now
			return &estimate
		}

		minutes := 15.0
		if order.OrderType == "scheduled" {
			minutes += 10
		}
		minutes *= statusMultiplier(order.OrderStatus)

		estimate := order.CreatedAt.Add(time.Duration(minutes * float64(time.Minute)))
		return &estimate
	}
}

func statusMultiplier(orderStatus string) float64 {
	switch orderStatus {
	case "confirmed":
		return 0.7
	case "preparing":
		return 0.3
	default:
		return 1.0
	}
}

func hasComplexItems(names []string) bool {
	for _, name := range names {
		lower := strings.ToLower(name)
		if strings.Contains(lower, "special") || strings.Contains(lower, "combo") {
			return true
		}
	}
	return false
}
