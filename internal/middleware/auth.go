package middleware

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/vaulto-note/backend/internal/auth"
	"github.com/vaulto-note/backend/internal/config"
	"github.com/vaulto-note/backend/internal/http/dto"
	"github.com/vaulto-note/backend/internal/models"
)

const CtxIdentity = "identity"

// UserGetter is the single lookup the resolver needs from persistence.
type UserGetter interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
}

// AuthMiddleware resolves the bearer value into an identity, in strict order:
//
//  1. exact match against the configured operator secret — system identity,
//     no token decode, no DB hit;
//  2. JWT decode — failure is 403;
//  3. user lookup by subject — missing user is 404;
//  4. inactive user is 400.
//
// The operator check runs first so the self-hosted single-secret path stays
// cheap; the flip side is that the secret is an unscoped master key with no
// expiry.
func AuthMiddleware(cfg *config.Config, users UserGetter, log *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get("Authorization")
		if header == "" {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Error: "missing authorization header"})
		}

		bearer := strings.TrimPrefix(header, "Bearer ")
		if bearer == header {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Error: "invalid authorization format"})
		}

		if cfg.APISecretKey != "" && bearer == cfg.APISecretKey {
			c.Locals(CtxIdentity, auth.SystemIdentity())
			return c.Next()
		}

		userID, err := auth.ParseToken(cfg.JWTSecret, bearer)
		if err != nil {
			log.Debug("token parse error", zap.Error(err))
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Error: "could not validate credentials"})
		}

		user, err := users.GetByID(c.Context(), userID)
		if err != nil || user == nil {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: "user not found"})
		}
		if !user.IsActive {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "inactive user"})
		}

		c.Locals(CtxIdentity, auth.StoredIdentity(user))
		return c.Next()
	}
}

func GetIdentity(c *fiber.Ctx) auth.Identity {
	id, _ := c.Locals(CtxIdentity).(auth.Identity)
	return id
}

func GetUserID(c *fiber.Ctx) uuid.UUID {
	return GetIdentity(c).UserID()
}
