package handlers

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/vaulto-note/backend/internal/http/dto"
	"github.com/vaulto-note/backend/internal/middleware"
	"github.com/vaulto-note/backend/internal/models"
	"github.com/vaulto-note/backend/internal/services"
)

type NoteHandler struct {
	noteService *services.NoteService
	log         *zap.Logger
}

func NewNoteHandler(noteService *services.NoteService, log *zap.Logger) *NoteHandler {
	return &NoteHandler{noteService: noteService, log: log}
}

func (h *NoteHandler) ListNotes(c *fiber.Ctx) error {
	offset, limit := 0, 100
	if v := c.Query("skip"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			offset = n
		}
	}
	if v := c.Query("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}

	userID := middleware.GetUserID(c)
	notes, err := h.noteService.List(c.Context(), userID, offset, limit)
	if err != nil {
		h.log.Error("list notes failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "internal server error"})
	}
	if notes == nil {
		notes = []models.Note{}
	}
	return c.JSON(notes)
}

func (h *NoteHandler) CreateNote(c *fiber.Ctx) error {
	var req dto.CreateNoteRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid request body"})
	}
	if req.EncryptedContent == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "encrypted_content is required"})
	}

	note := &models.Note{
		EncryptedTitle:         req.EncryptedTitle,
		EncryptedContent:       req.EncryptedContent,
		IsArchived:             req.IsArchived,
		AudioFilePath:          req.AudioFilePath,
		AudioDuration:          req.AudioDuration,
		EncryptedTranscription: req.EncryptedTranscription,
		HasAudio:               req.HasAudio,
	}

	userID := middleware.GetUserID(c)
	if err := h.noteService.Create(c.Context(), userID, note); err != nil {
		h.log.Error("create note failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "internal server error"})
	}

	return c.Status(fiber.StatusCreated).JSON(note)
}

func (h *NoteHandler) GetNote(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid note id"})
	}

	note, err := h.noteService.GetByID(c.Context(), id, middleware.GetUserID(c))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: "note not found"})
	}
	return c.JSON(note)
}

func (h *NoteHandler) UpdateNote(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid note id"})
	}

	var req dto.UpdateNoteRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid request body"})
	}

	upd := services.NoteUpdate{
		EncryptedTitle:         req.EncryptedTitle,
		EncryptedContent:       req.EncryptedContent,
		IsArchived:             req.IsArchived,
		AudioFilePath:          req.AudioFilePath,
		AudioDuration:          req.AudioDuration,
		EncryptedTranscription: req.EncryptedTranscription,
		HasAudio:               req.HasAudio,
	}

	note, err := h.noteService.Update(c.Context(), id, middleware.GetUserID(c), upd)
	if err != nil {
		if errors.Is(err, services.ErrNoteNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: "note not found"})
		}
		h.log.Error("update note failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "internal server error"})
	}
	return c.JSON(note)
}

func (h *NoteHandler) DeleteNote(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid note id"})
	}

	userID := middleware.GetUserID(c)
	note, err := h.noteService.GetByID(c.Context(), id, userID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: "note not found"})
	}

	if err := h.noteService.Delete(c.Context(), id, userID); err != nil {
		if errors.Is(err, services.ErrNoteNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: "note not found"})
		}
		h.log.Error("delete note failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "internal server error"})
	}

	// Отдаём удалённую заметку, как и остальные ручки.
	return c.JSON(note)
}
