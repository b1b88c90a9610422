package services

import "errors"

// Outcomes surfaced to the HTTP boundary. All are final policy decisions,
// none are retryable.
var (
	ErrEmailTaken         = errors.New("user with this email already exists")
	ErrInvalidCredentials = errors.New("incorrect email or password")
	ErrUserInactive       = errors.New("inactive user")
	ErrUserNotFound       = errors.New("user not found")
	ErrNoPendingNonce     = errors.New("no nonce generated for this user")
	ErrInvalidSignature   = errors.New("invalid signature")
	ErrNoteNotFound       = errors.New("note not found")

	// ErrAIUpstream охватывает недоступность Whisper/LLM — для клиента это 502.
	ErrAIUpstream = errors.New("ai service unavailable")
)
