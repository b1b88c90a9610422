package handlers

import (
	"errors"
	"io"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/vaulto-note/backend/internal/http/dto"
	"github.com/vaulto-note/backend/internal/services"
)

type AIHandler struct {
	ai  *services.AIClient
	log *zap.Logger
}

func NewAIHandler(ai *services.AIClient, log *zap.Logger) *AIHandler {
	return &AIHandler{ai: ai, log: log}
}

// Transcribe принимает multipart-загрузку аудио и проксирует её в Whisper.
func (h *AIHandler) Transcribe(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "audio file is required"})
	}

	f, err := fileHeader.Open()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "failed to read audio file"})
	}
	defer f.Close()

	audio, err := io.ReadAll(f)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "failed to read audio file"})
	}
	if len(audio) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "uploaded audio file is empty"})
	}

	language := c.FormValue("language")

	text, err := h.ai.Transcribe(c.Context(), fileHeader.Filename, fileHeader.Header.Get("Content-Type"), audio, language)
	if err != nil {
		if errors.Is(err, services.ErrAIUpstream) {
			return c.Status(fiber.StatusBadGateway).JSON(dto.ErrorResponse{Error: err.Error()})
		}
		h.log.Error("transcribe failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "internal server error"})
	}

	return c.JSON(dto.TranscriptionResponse{Text: text, Provider: "whisper", Language: language})
}

func (h *AIHandler) Improve(c *fiber.Ctx) error {
	var req dto.ImproveTextRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid request body"})
	}
	if req.Text == "" || req.Prompt == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "text and prompt are required"})
	}

	text, model, err := h.ai.Improve(c.Context(), req.Prompt, req.Text, req.Model)
	if err != nil {
		if errors.Is(err, services.ErrAIUpstream) {
			return c.Status(fiber.StatusBadGateway).JSON(dto.ErrorResponse{Error: err.Error()})
		}
		h.log.Error("improve failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "internal server error"})
	}

	return c.JSON(dto.ImproveTextResponse{Text: text, Model: model, Provider: "llama"})
}
