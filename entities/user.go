package entities

import (
	"time"

	"github.com/google/uuid"
)

// User is an identity record. Profile data lives in the document store.
type User struct {
	ID           uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	Email        string     `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string     `json:"-"`
	Role         string     `json:"role"`
	SignedOutAt  *time.Time `json:"signed_out_at,omitempty"`
	// TokenVersion is embedded in every issued token; signing out bumps it.
	TokenVersion int `gorm:"not null;default:0" json:"-"`

	Timestamp
}
