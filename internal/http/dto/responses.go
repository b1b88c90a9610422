package dto

import (
	"time"

	"github.com/google/uuid"
)

type ErrorResponse struct {
	Error     string `json:"error"`
	RequestID string `json:"request_id,omitempty"`
}

type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// UserResponse никогда не содержит hashed_password и wallet_nonce.
type UserResponse struct {
	ID            uuid.UUID `json:"id"`
	Email         *string   `json:"email,omitempty"`
	WalletAddress *string   `json:"wallet_address,omitempty"`
	IsActive      bool      `json:"is_active"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

type WalletNonceResponse struct {
	WalletAddress string `json:"wallet_address"`
	Nonce         string `json:"nonce"`
}

type TranscriptionResponse struct {
	Text     string `json:"text"`
	Provider string `json:"provider"`
	Language string `json:"language,omitempty"`
}

type ImproveTextResponse struct {
	Text     string `json:"text"`
	Model    string `json:"model"`
	Provider string `json:"provider"`
}
