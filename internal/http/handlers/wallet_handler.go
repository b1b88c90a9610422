package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/vaulto-note/backend/internal/http/dto"
	"github.com/vaulto-note/backend/internal/services"
)

type WalletHandler struct {
	authService *services.AuthService
	log         *zap.Logger
}

func NewWalletHandler(authService *services.AuthService, log *zap.Logger) *WalletHandler {
	return &WalletHandler{authService: authService, log: log}
}

// GetNonce issues a signing challenge, creating the user on first contact
// with an unseen wallet address.
func (h *WalletHandler) GetNonce(c *fiber.Ctx) error {
	var req dto.WalletNonceRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid request body"})
	}
	if req.WalletAddress == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "wallet_address is required"})
	}

	address, nonce, err := h.authService.WalletNonce(c.Context(), req.WalletAddress)
	if err != nil {
		h.log.Error("wallet nonce failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "internal server error"})
	}

	return c.JSON(dto.WalletNonceResponse{WalletAddress: address, Nonce: nonce})
}

func (h *WalletHandler) VerifySignature(c *fiber.Ctx) error {
	var req dto.WalletVerifyRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid request body"})
	}
	if req.WalletAddress == "" || req.Signature == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "wallet_address and signature are required"})
	}

	token, err := h.authService.WalletVerify(c.Context(), req.WalletAddress, req.Signature)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrUserNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: err.Error()})
		case errors.Is(err, services.ErrNoPendingNonce), errors.Is(err, services.ErrInvalidSignature):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: err.Error()})
		}
		h.log.Error("wallet verify failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "internal server error"})
	}

	return c.JSON(dto.TokenResponse{AccessToken: token, TokenType: "bearer"})
}
