package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vaulto-note/backend/internal/models"
)

const noteColumns = `id, user_id, encrypted_title, encrypted_content, is_archived,
	audio_file_path, audio_duration, encrypted_transcription, has_audio,
	created_at, updated_at`

type NoteRepo struct {
	pool *pgxpool.Pool
}

func NewNoteRepo(pool *pgxpool.Pool) *NoteRepo {
	return &NoteRepo{pool: pool}
}

func (r *NoteRepo) scanNote(row interface{ Scan(...any) error }) (*models.Note, error) {
	var n models.Note
	err := row.Scan(&n.ID, &n.UserID, &n.EncryptedTitle, &n.EncryptedContent, &n.IsArchived,
		&n.AudioFilePath, &n.AudioDuration, &n.EncryptedTranscription, &n.HasAudio,
		&n.CreatedAt, &n.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &n, nil
}

func (r *NoteRepo) Create(ctx context.Context, n *models.Note) error {
	return r.pool.QueryRow(ctx, `
		INSERT INTO notes (user_id, encrypted_title, encrypted_content, is_archived,
			audio_file_path, audio_duration, encrypted_transcription, has_audio)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at, updated_at
	`, n.UserID, n.EncryptedTitle, n.EncryptedContent, n.IsArchived,
		n.AudioFilePath, n.AudioDuration, n.EncryptedTranscription, n.HasAudio,
	).Scan(&n.ID, &n.CreatedAt, &n.UpdatedAt)
}

// GetByID is always scoped by owner: a note that belongs to another user is
// the same as a note that does not exist.
func (r *NoteRepo) GetByID(ctx context.Context, id, userID uuid.UUID) (*models.Note, error) {
	return r.scanNote(r.pool.QueryRow(ctx, `
		SELECT `+noteColumns+` FROM notes WHERE id = $1 AND user_id = $2
	`, id, userID))
}

func (r *NoteRepo) List(ctx context.Context, userID uuid.UUID, offset, limit int) ([]models.Note, error) {
	if limit <= 0 || limit > 100 {
		limit = 100
	}

	rows, err := r.pool.Query(ctx, `
		SELECT `+noteColumns+` FROM notes
		WHERE user_id = $1
		ORDER BY created_at DESC
		OFFSET $2 LIMIT $3
	`, userID, offset, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var notes []models.Note
	for rows.Next() {
		var n models.Note
		if err := rows.Scan(&n.ID, &n.UserID, &n.EncryptedTitle, &n.EncryptedContent, &n.IsArchived,
			&n.AudioFilePath, &n.AudioDuration, &n.EncryptedTranscription, &n.HasAudio,
			&n.CreatedAt, &n.UpdatedAt); err != nil {
			return nil, err
		}
		notes = append(notes, n)
	}
	return notes, rows.Err()
}

func (r *NoteRepo) Update(ctx context.Context, n *models.Note) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE notes SET encrypted_title = $1, encrypted_content = $2, is_archived = $3,
			audio_file_path = $4, audio_duration = $5, encrypted_transcription = $6,
			has_audio = $7, updated_at = now()
		WHERE id = $8 AND user_id = $9
	`, n.EncryptedTitle, n.EncryptedContent, n.IsArchived,
		n.AudioFilePath, n.AudioDuration, n.EncryptedTranscription, n.HasAudio,
		n.ID, n.UserID)
	return err
}

func (r *NoteRepo) Delete(ctx context.Context, id, userID uuid.UUID) (bool, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM notes WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}
