package models

import "time"

// CartItem is one cart line: a snapshot of the menu item plus a quantity.
// The snapshot is not revalidated until checkout; stale prices never reach
// an order because checkout re-reads the catalog.
type CartItem struct {
	MenuItem MenuItem `bson:"menuItem" json:"menuItem"`
	Quantity int      `bson:"quantity" json:"quantity"`
}

// Cart is the persisted cart document, one per storage key. The key is
// "cart-storage-<userId>" for a logged-in user and "cart-storage-guest"
// otherwise.
type Cart struct {
	Key       string     `bson:"_id" json:"-"`
	Items     []CartItem `bson:"items" json:"items"`
	UpdatedAt time.Time  `bson:"updatedAt" json:"updatedAt"`
}
