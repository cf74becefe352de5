package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Order is the persisted order document. TotalAmount is computed from the
// catalog prices at creation time and never recomputed afterwards.
type Order struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID        primitive.ObjectID `bson:"userId" json:"userId"`
	OrderType     string             `bson:"orderType" json:"orderType"`
	ScheduledDate string             `bson:"scheduledDate,omitempty" json:"scheduledDate,omitempty"`
	TotalAmount   float64            `bson:"totalAmount" json:"totalAmount"`
	PaymentMethod string             `bson:"paymentMethod" json:"paymentMethod"`
	PaymentStatus string             `bson:"paymentStatus" json:"paymentStatus"`
	OrderStatus   string             `bson:"orderStatus" json:"orderStatus"`
	Department    string             `bson:"department" json:"department"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// OrderItem is one line of an order. Price is a point-in-time copy of the
// menu item price, immune to later catalog edits.
type OrderItem struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	OrderID    primitive.ObjectID `bson:"orderId" json:"orderId"`
	MenuItemID primitive.ObjectID `bson:"menuItemId" json:"menuItemId"`
	Quantity   int                `bson:"quantity" json:"quantity"`
	Price      float64            `bson:"price" json:"price"`
	CreatedAt  time.Time          `bson:"createdAt" json:"createdAt"`
}

// OrderItemDetail is an order line joined with its menu item, as returned by
// the order detail endpoint.
type OrderItemDetail struct {
	OrderItem `bson:",inline"`
	MenuItem  *MenuItemSummary `bson:"menuItem,omitempty" json:"menuItem"`
}
