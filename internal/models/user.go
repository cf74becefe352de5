package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User is an account on the tea bar. Role is either "customer" or "admin";
// self-registration always produces a customer.
type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Email        string             `bson:"email" json:"email"`
	PasswordHash string             `bson:"passwordHash" json:"-"`
	Role         string             `bson:"role" json:"role"`
	Name         string             `bson:"name" json:"name"`
	Department   string             `bson:"department" json:"department"`
	Designation  string             `bson:"designation,omitempty" json:"designation,omitempty"`
	Phone        string             `bson:"phone,omitempty" json:"phone,omitempty"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
}

const (
	RoleCustomer = "customer"
	RoleAdmin    = "admin"
)
