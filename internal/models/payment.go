package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Payment records one payment attempt against an order. The amount is expected
// to equal the order total but is not cross-checked.
type Payment struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	OrderID       primitive.ObjectID `bson:"orderId" json:"orderId"`
	Amount        float64            `bson:"amount" json:"amount"`
	PaymentMethod string             `bson:"paymentMethod" json:"paymentMethod"`
	TransactionID string             `bson:"transactionId,omitempty" json:"transactionId,omitempty"`
	PaymentStatus string             `bson:"paymentStatus" json:"paymentStatus"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
}
