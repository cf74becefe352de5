package handlers

var validOrderStatuses = []string{"pending", "confirmed", "preparing", "ready", "delivered", "cancelled"}

var validPaymentStatuses = []string{"pending", "completed"}

var validPaymentMethods = []string{"bkash", "nagad", "card"}

func isValidOrderStatus(status string) bool {
	return contains(validOrderStatuses, status)
}

func isValidPaymentStatus(status string) bool {
	return contains(validPaymentStatuses, status)
}

func isValidPaymentMethod(method string) bool {
	return contains(validPaymentMethods, method)
}

// nextOrderStatus is the single choke point for status transitions. Today any
// status is reachable from any other, matching the admin UI; a real state
// machine can be layered in here without touching call sites.
func nextOrderStatus(current, requested string) (string, bool) {
	if !isValidOrderStatus(requested) {
		return current, false
	}
	return requested, true
}

func contains(values []string, value string) bool {
	for _, v := range values {
		if v == value {
			return true
		}
	}
	return false
}
