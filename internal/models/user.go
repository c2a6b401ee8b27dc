package models

import (
	"encoding/json"
	"fmt"
	"time"
)

// UserDB represents a user record in the database
type UserDB struct {
	UserID         int64     `db:"user_id"`         // Primary key, assigned once, never reused
	FirstName      string    `db:"first_name"`      // First name
	LastName       string    `db:"last_name"`       // Last name
	Email          string    `db:"email"`           // Unique across all records, deleted included
	Password       string    `db:"password"`        // Opaque text, never serialized outward
	Newsletter     bool      `db:"newsletter"`      // Newsletter opt-in
	SubscriptionID int64     `db:"subscription_id"` // Subscription tier
	CreatedAt      time.Time `db:"created_at"`      // Write-once creation timestamp
	Deleted        bool      `db:"deleted"`         // Soft-delete flag, monotonic
}

// View returns the public projection of the record. Password is excluded.
func (u *UserDB) View() UserView {
	return UserView{
		UserID:    u.UserID,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Email:     u.Email,
		Created:   DateTimePair(u.CreatedAt),
		Deleted:   u.Deleted,
	}
}

// UserPayload carries the writable user fields of create and update requests.
type UserPayload struct {
	FirstName string `json:"first_name" validate:"required"`
	LastName  string `json:"last_name" validate:"required"`
	Email     string `json:"email" validate:"required"`
	Password  string `json:"password" validate:"required"`
}

// UserView is the outward-facing projection of a user record
// swagger:model UserView
type UserView struct {
	// User id
	// example: 1
	UserID int64 `json:"user_id"`

	// First name
	// example: Ann
	FirstName string `json:"first_name"`

	// Last name
	// example: Lee
	LastName string `json:"last_name"`

	// Email
	// example: ann@example.com
	Email string `json:"email"`

	// Creation timestamp as a [date, time] pair
	// example: ["2025-01-02","15:04:05"]
	Created DateTimePair `json:"created"`

	// Soft-delete flag
	// example: false
	Deleted bool `json:"deleted"`
}

// DateTimePair serializes a timestamp as a ["YYYY-MM-DD", "HH:MM:SS"] pair.
type DateTimePair time.Time

func (d DateTimePair) MarshalJSON() ([]byte, error) {
	t := time.Time(d)
	return json.Marshal([2]string{t.Format("2006-01-02"), t.Format("15:04:05")})
}

func (d *DateTimePair) UnmarshalJSON(data []byte) error {
	var pair [2]string
	if err := json.Unmarshal(data, &pair); err != nil {
		return err
	}
	t, err := time.Parse("2006-01-02 15:04:05", pair[0]+" "+pair[1])
	if err != nil {
		return fmt.Errorf("invalid date/time pair: %w", err)
	}
	*d = DateTimePair(t)
	return nil
}
