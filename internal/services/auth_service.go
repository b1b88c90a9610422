package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/vaulto-note/backend/internal/auth"
	"github.com/vaulto-note/backend/internal/config"
	"github.com/vaulto-note/backend/internal/models"
	"github.com/vaulto-note/backend/internal/repositories"
)

// UserStore is the persistence surface the auth flows need. Lookups report
// a missing row with an error; the concrete implementation is
// repositories.UserRepo.
type UserStore interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByWallet(ctx context.Context, address string) (*models.User, error)
	CreateWithPassword(ctx context.Context, email, hashedPassword string) (*models.User, error)
	UpsertWalletNonce(ctx context.Context, address, nonce string) (*models.User, error)
	RotateWalletNonce(ctx context.Context, id uuid.UUID, consumed, fresh string) (bool, error)
}

type AuthService struct {
	users UserStore
	cfg   *config.Config
	log   *zap.Logger
}

func NewAuthService(users UserStore, cfg *config.Config, log *zap.Logger) *AuthService {
	return &AuthService{users: users, cfg: cfg, log: log}
}

// Register создаёт пользователя по email+паролю. Хеш пароля наружу не отдаётся.
func (s *AuthService) Register(ctx context.Context, email, password string) (*models.User, error) {
	if existing, err := s.users.GetByEmail(ctx, email); err == nil && existing != nil {
		return nil, ErrEmailTaken
	}

	hash, err := auth.HashPassword(password, s.cfg.BcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user, err := s.users.CreateWithPassword(ctx, email, hash)
	if err != nil {
		// Предварительная проверка не закрывает гонку двух одновременных
		// регистраций: конфликт уникальности тоже отдаём как занятый email.
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.log.Info("user registered", zap.String("user_id", user.ID.String()))
	return user, nil
}

// Login verifies email+password and issues an access token. Missing user
// and wrong password are deliberately the same failure.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil || user == nil {
		return "", ErrInvalidCredentials
	}
	if user.HashedPassword == nil || !auth.CheckPassword(password, *user.HashedPassword) {
		return "", ErrInvalidCredentials
	}
	if !user.IsActive {
		return "", ErrUserInactive
	}

	token, err := auth.GenerateToken(s.cfg.JWTSecret, user.ID, s.cfg.TokenTTL)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return token, nil
}

// WalletNonce issues a fresh challenge for the wallet, creating the user on
// first sight. A single upsert makes the operation safe under concurrent
// requests for the same address: both callers get a nonce, the one stored
// last is the pending challenge. Returns the normalized address and the nonce.
func (s *AuthService) WalletNonce(ctx context.Context, walletAddress string) (string, string, error) {
	address := strings.ToLower(walletAddress)
	nonce := auth.GenerateNonce()

	if _, err := s.users.UpsertWalletNonce(ctx, address, nonce); err != nil {
		return "", "", fmt.Errorf("failed to store nonce: %w", err)
	}
	return address, nonce, nil
}

// WalletVerify checks the signature over the stored nonce and, on success,
// rotates the nonce and issues an access token.
//
// Rotation is a compare-and-swap on the consumed nonce value, so of two
// verify calls racing on the same challenge at most one wins; the loser
// fails as if the signature were invalid. A failed verification leaves the
// nonce in place and retryable.
func (s *AuthService) WalletVerify(ctx context.Context, walletAddress, signature string) (string, error) {
	address := strings.ToLower(walletAddress)

	user, err := s.users.GetByWallet(ctx, address)
	if err != nil || user == nil {
		return "", ErrUserNotFound
	}
	if user.WalletNonce == nil || *user.WalletNonce == "" {
		return "", ErrNoPendingNonce
	}

	consumed := *user.WalletNonce
	if !auth.VerifyWalletSignature(address, consumed, signature) {
		return "", ErrInvalidSignature
	}

	rotated, err := s.users.RotateWalletNonce(ctx, user.ID, consumed, auth.GenerateNonce())
	if err != nil {
		return "", fmt.Errorf("failed to rotate nonce: %w", err)
	}
	if !rotated {
		// Проигравший гонку получает тот же ответ, что и при неверной подписи.
		return "", ErrInvalidSignature
	}

	token, err := auth.GenerateToken(s.cfg.JWTSecret, user.ID, s.cfg.TokenTTL)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}

	s.log.Info("wallet verified", zap.String("user_id", user.ID.String()), zap.String("address", address))
	return token, nil
}
