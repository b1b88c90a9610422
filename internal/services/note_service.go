package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/vaulto-note/backend/internal/encryption"
	"github.com/vaulto-note/backend/internal/models"
)

type NoteStore interface {
	Create(ctx context.Context, n *models.Note) error
	GetByID(ctx context.Context, id, userID uuid.UUID) (*models.Note, error)
	List(ctx context.Context, userID uuid.UUID, offset, limit int) ([]models.Note, error)
	Update(ctx context.Context, n *models.Note) error
	Delete(ctx context.Context, id, userID uuid.UUID) (bool, error)
}

// NoteService scopes every operation to the owning user. A note owned by
// someone else is reported exactly like a missing note.
type NoteService struct {
	notes NoteStore
	log   *zap.Logger
}

func NewNoteService(notes NoteStore, log *zap.Logger) *NoteService {
	return &NoteService{notes: notes, log: log}
}

func (s *NoteService) Create(ctx context.Context, userID uuid.UUID, n *models.Note) error {
	n.UserID = userID
	n.EncryptedContent = encryption.EncryptContent(n.EncryptedContent)
	if err := s.notes.Create(ctx, n); err != nil {
		return fmt.Errorf("failed to create note: %w", err)
	}
	n.EncryptedContent = encryption.DecryptContent(n.EncryptedContent)
	return nil
}

func (s *NoteService) GetByID(ctx context.Context, id, userID uuid.UUID) (*models.Note, error) {
	n, err := s.notes.GetByID(ctx, id, userID)
	if err != nil || n == nil {
		return nil, ErrNoteNotFound
	}
	n.EncryptedContent = encryption.DecryptContent(n.EncryptedContent)
	return n, nil
}

func (s *NoteService) List(ctx context.Context, userID uuid.UUID, offset, limit int) ([]models.Note, error) {
	notes, err := s.notes.List(ctx, userID, offset, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list notes: %w", err)
	}
	for i := range notes {
		notes[i].EncryptedContent = encryption.DecryptContent(notes[i].EncryptedContent)
	}
	return notes, nil
}

// NoteUpdate carries the fields of a partial update; nil means "leave as is".
type NoteUpdate struct {
	EncryptedTitle         *string
	EncryptedContent       *string
	IsArchived             *bool
	AudioFilePath          *string
	AudioDuration          *int
	EncryptedTranscription *string
	HasAudio               *bool
}

func (s *NoteService) Update(ctx context.Context, id, userID uuid.UUID, upd NoteUpdate) (*models.Note, error) {
	n, err := s.notes.GetByID(ctx, id, userID)
	if err != nil || n == nil {
		return nil, ErrNoteNotFound
	}

	if upd.EncryptedTitle != nil {
		n.EncryptedTitle = upd.EncryptedTitle
	}
	if upd.EncryptedContent != nil {
		n.EncryptedContent = encryption.EncryptContent(*upd.EncryptedContent)
	}
	if upd.IsArchived != nil {
		n.IsArchived = *upd.IsArchived
	}
	if upd.AudioFilePath != nil {
		n.AudioFilePath = upd.AudioFilePath
	}
	if upd.AudioDuration != nil {
		n.AudioDuration = upd.AudioDuration
	}
	if upd.EncryptedTranscription != nil {
		n.EncryptedTranscription = upd.EncryptedTranscription
	}
	if upd.HasAudio != nil {
		n.HasAudio = *upd.HasAudio
	}

	if err := s.notes.Update(ctx, n); err != nil {
		return nil, fmt.Errorf("failed to update note: %w", err)
	}

	n.EncryptedContent = encryption.DecryptContent(n.EncryptedContent)
	return n, nil
}

func (s *NoteService) Delete(ctx context.Context, id, userID uuid.UUID) error {
	deleted, err := s.notes.Delete(ctx, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete note: %w", err)
	}
	if !deleted {
		return ErrNoteNotFound
	}
	return nil
}
