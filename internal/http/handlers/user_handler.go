package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/vaulto-note/backend/internal/http/dto"
	"github.com/vaulto-note/backend/internal/middleware"
)

type UserHandler struct {
	log *zap.Logger
}

func NewUserHandler(log *zap.Logger) *UserHandler {
	return &UserHandler{log: log}
}

func (h *UserHandler) GetMe(c *fiber.Ctx) error {
	identity := middleware.GetIdentity(c)

	if identity.IsSystem() {
		email := "system@api"
		return c.JSON(dto.UserResponse{
			ID:       uuid.Nil,
			Email:    &email,
			IsActive: true,
		})
	}

	if identity.User == nil {
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Error: "not authenticated"})
	}
	return c.JSON(userResponse(identity.User))
}
