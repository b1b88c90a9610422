package models

import (
	"time"

	"github.com/google/uuid"
)

// User is an account authenticated either by email+password or by wallet
// signature. Both credential groups are nullable: a password-only account
// has no wallet columns and vice versa. An account with neither can never
// authenticate; the service layer never creates one.
type User struct {
	ID             uuid.UUID `json:"id"`
	Email          *string   `json:"email,omitempty"`
	HashedPassword *string   `json:"-"`
	WalletAddress  *string   `json:"wallet_address,omitempty"`
	WalletNonce    *string   `json:"-"`
	IsActive       bool      `json:"is_active"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}
