package dto

type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type WalletNonceRequest struct {
	WalletAddress string `json:"wallet_address"`
}

type WalletVerifyRequest struct {
	WalletAddress string `json:"wallet_address"`
	Signature     string `json:"signature"`
}

type CreateNoteRequest struct {
	EncryptedTitle         *string `json:"encrypted_title,omitempty"`
	EncryptedContent       string  `json:"encrypted_content"`
	IsArchived             bool    `json:"is_archived"`
	AudioFilePath          *string `json:"audio_file_path,omitempty"`
	AudioDuration          *int    `json:"audio_duration,omitempty"`
	EncryptedTranscription *string `json:"encrypted_transcription,omitempty"`
	HasAudio               bool    `json:"has_audio"`
}

// UpdateNoteRequest: отсутствующее поле не трогает сохранённое значение.
type UpdateNoteRequest struct {
	EncryptedTitle         *string `json:"encrypted_title,omitempty"`
	EncryptedContent       *string `json:"encrypted_content,omitempty"`
	IsArchived             *bool   `json:"is_archived,omitempty"`
	AudioFilePath          *string `json:"audio_file_path,omitempty"`
	AudioDuration          *int    `json:"audio_duration,omitempty"`
	EncryptedTranscription *string `json:"encrypted_transcription,omitempty"`
	HasAudio               *bool   `json:"has_audio,omitempty"`
}

type ImproveTextRequest struct {
	Text   string `json:"text"`
	Prompt string `json:"prompt"`
	Model  string `json:"model,omitempty"`
}
