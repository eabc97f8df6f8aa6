package models

import (
	"time"
)

// PendingRegistration is carried only on registration challenges. Its
// presence is what distinguishes a registration challenge from a login one.
type PendingRegistration struct {
	Username    string `json:"username" bson:"username"`
	PhoneNumber string `json:"phonenumber,omitempty" bson:"phonenumber,omitempty"`
}

// OTPChallenge is a short-lived one-time-password record. At most one
// outstanding challenge per email (unique index); the collection carries a
// TTL index on ExpiresAt so expired challenges are removed by the store.
// OTPHash is the bcrypt hash of the 6-digit code; the plaintext only ever
// travels in the email.
type OTPChallenge struct {
	Email     string               `json:"email" bson:"email"`
	OTPHash   string               `json:"-" bson:"otpHash"`
	UserData  *PendingRegistration `json:"userData,omitempty" bson:"userData,omitempty"`
	ExpiresAt time.Time            `json:"expiresAt" bson:"expiresAt"`
	CreatedAt time.Time            `json:"createdAt" bson:"createdAt"`
}

func (c *OTPChallenge) IsRegistration() bool {
	return c.UserData != nil && c.UserData.Username != ""
}

func (c *OTPChallenge) Expired(now time.Time) bool {
	return c.ExpiresAt.Before(now)
}
