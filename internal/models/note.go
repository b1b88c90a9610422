package models

import (
	"time"

	"github.com/google/uuid"
)

// Note stores client-encrypted payloads: the API accepts and returns the
// encrypted_* fields as-is, decryption happens on the client.
type Note struct {
	ID     uuid.UUID `json:"id"`
	UserID uuid.UUID `json:"user_id"`

	EncryptedTitle   *string `json:"encrypted_title,omitempty"`
	EncryptedContent string  `json:"encrypted_content"`
	IsArchived       bool    `json:"is_archived"`

	// Voice notes
	AudioFilePath          *string `json:"audio_file_path,omitempty"`
	AudioDuration          *int    `json:"audio_duration,omitempty"` // seconds
	EncryptedTranscription *string `json:"encrypted_transcription,omitempty"`
	HasAudio               bool    `json:"has_audio"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
