package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vaulto-note/backend/internal/models"
)

const userColumns = `id, email, hashed_password, wallet_address, wallet_nonce, is_active, created_at, updated_at`

// ErrDuplicateKey сигналит о нарушении уникального индекса (SQLSTATE 23505).
// Сервисы по нему отличают конфликт от прочих ошибок базы.
var ErrDuplicateKey = errors.New("duplicate key")

func mapPgError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return ErrDuplicateKey
	}
	return err
}

type UserRepo struct {
	pool *pgxpool.Pool
}

func NewUserRepo(pool *pgxpool.Pool) *UserRepo {
	return &UserRepo{pool: pool}
}

func (r *UserRepo) scanUser(row interface{ Scan(...any) error }) (*models.User, error) {
	var u models.User
	err := row.Scan(&u.ID, &u.Email, &u.HashedPassword, &u.WalletAddress, &u.WalletNonce,
		&u.IsActive, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	return r.scanUser(r.pool.QueryRow(ctx, `
		SELECT `+userColumns+` FROM users WHERE id = $1
	`, id))
}

func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.scanUser(r.pool.QueryRow(ctx, `
		SELECT `+userColumns+` FROM users WHERE email = $1
	`, email))
}

// GetByWallet expects address already normalized to lowercase.
func (r *UserRepo) GetByWallet(ctx context.Context, address string) (*models.User, error) {
	return r.scanUser(r.pool.QueryRow(ctx, `
		SELECT `+userColumns+` FROM users WHERE wallet_address = $1
	`, address))
}

// CreateWithPassword inserts a password user. A concurrent insert of the
// same email surfaces as ErrDuplicateKey instead of a raw pg error.
func (r *UserRepo) CreateWithPassword(ctx context.Context, email, hashedPassword string) (*models.User, error) {
	user, err := r.scanUser(r.pool.QueryRow(ctx, `
		INSERT INTO users (email, hashed_password, is_active)
		VALUES ($1, $2, true)
		RETURNING `+userColumns+`
	`, email, hashedPassword))
	if err != nil {
		return nil, mapPgError(err)
	}
	return user, nil
}

// UpsertWalletNonce creates the wallet user on first sight or overwrites the
// stored nonce, in one statement. Two concurrent challenge requests both
// succeed; whichever statement lands last owns the pending nonce.
func (r *UserRepo) UpsertWalletNonce(ctx context.Context, address, nonce string) (*models.User, error) {
	return r.scanUser(r.pool.QueryRow(ctx, `
		INSERT INTO users (wallet_address, wallet_nonce, is_active)
		VALUES ($1, $2, true)
		ON CONFLICT (wallet_address) DO UPDATE
		SET wallet_nonce = EXCLUDED.wallet_nonce, updated_at = now()
		RETURNING `+userColumns+`
	`, address, nonce))
}

// RotateWalletNonce replaces consumed with fresh only if consumed is still
// the current nonce. Returns false when another verify already rotated it —
// the compare-and-swap that keeps a captured signature single-use under
// concurrent verify attempts.
func (r *UserRepo) RotateWalletNonce(ctx context.Context, id uuid.UUID, consumed, fresh string) (bool, error) {
	tag, err := r.pool.Exec(ctx, `
		UPDATE users SET wallet_nonce = $1, updated_at = now()
		WHERE id = $2 AND wallet_nonce = $3
	`, fresh, id, consumed)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}
