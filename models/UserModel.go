package models

import (
	"time"
)

// User is the account record. UserID is the stable server-generated
// identifier; it never changes once the account exists. Username and email
// stay mutable but unique.
type User struct {
	UserID      string    `json:"userid" bson:"userid"`
	Username    string    `json:"username" bson:"username" validate:"required"`
	Email       string    `json:"email" bson:"email" validate:"required,email"`
	PhoneNumber string    `json:"phonenumber,omitempty" bson:"phonenumber,omitempty"`
	IsActive    bool      `json:"isActive" bson:"isActive"`
	IsAdmin     bool      `json:"isAdmin" bson:"isAdmin"`
	CreatedAt   time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt" bson:"updatedAt"`
}
