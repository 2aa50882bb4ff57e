package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/notehive/notehive-backend/internal/dto"
	"github.com/notehive/notehive-backend/internal/middleware"
	"github.com/notehive/notehive-backend/internal/services"
)

type NoteHandler struct {
	noteService   *services.NoteService
	enrichService *services.EnrichService
}

func NewNoteHandler(noteService *services.NoteService, enrichService *services.EnrichService) *NoteHandler {
	return &NoteHandler{noteService: noteService, enrichService: enrichService}
}

func (h *NoteHandler) Create(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	var input dto.CreateNoteInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	// Missing file is a validation error, not a transport one.
	fh, err := c.FormFile("file")
	if err != nil {
		fh = nil
	}

	note, err := h.noteService.Create(c.Context(), userID, &input, fh)
	if err != nil {
		if errors.Is(err, services.ErrMissingNoteFields) || errors.Is(err, services.ErrFileRequired) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to create note",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(dto.ToNoteResponse(note))
}

func (h *NoteHandler) List(c *fiber.Ctx) error {
	params := services.ListNotesParams{
		Search:  c.Query("search"),
		Subject: c.Query("subject"),
		Sort:    c.Query("sort"),
		Page:    c.QueryInt("page", 1),
		Limit:   c.QueryInt("limit", 20),
	}

	notes, total, err := h.noteService.List(params)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to list notes",
		})
	}

	return c.JSON(fiber.Map{
		"notes": dto.ToNoteResponses(notes),
		"total": total,
		"page":  params.Page,
		"limit": params.Limit,
	})
}

// AdminList is the moderation listing; unlike List it honors the status
// filter and shows rejected notes.
func (h *NoteHandler) AdminList(c *fiber.Ctx) error {
	params := services.ListNotesParams{
		Search:  c.Query("search"),
		Subject: c.Query("subject"),
		Sort:    c.Query("sort"),
		Status:  c.Query("status", "all"),
		Page:    c.QueryInt("page", 1),
		Limit:   c.QueryInt("limit", 20),
	}

	notes, total, err := h.noteService.List(params)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to list notes",
		})
	}

	return c.JSON(fiber.Map{
		"notes": dto.ToNoteResponses(notes),
		"total": total,
		"page":  params.Page,
		"limit": params.Limit,
	})
}

func (h *NoteHandler) Get(c *fiber.Ctx) error {
	noteID, err := parseUUIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid note id",
		})
	}

	note, err := h.noteService.Get(noteID)
	if err != nil {
		return noteError(c, err)
	}

	return c.JSON(dto.ToNoteResponse(note))
}

func (h *NoteHandler) Update(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	noteID, err := parseUUIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid note id",
		})
	}

	var input dto.UpdateNoteInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	fh, err := c.FormFile("file")
	if err != nil {
		fh = nil
	}

	note, err := h.noteService.Update(c.Context(), userID, noteID, &input, fh)
	if err != nil {
		if errors.Is(err, services.ErrMissingNoteFields) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return noteError(c, err)
	}

	return c.JSON(dto.ToNoteResponse(note))
}

func (h *NoteHandler) Delete(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	noteID, err := parseUUIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid note id",
		})
	}

	if err := h.noteService.Delete(userID, noteID); err != nil {
		return noteError(c, err)
	}

	return c.JSON(fiber.Map{"message": "Note deleted successfully"})
}

func (h *NoteHandler) Download(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	noteID, err := parseUUIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid note id",
		})
	}

	note, err := h.noteService.TrackDownload(userID, noteID)
	if err != nil {
		return noteError(c, err)
	}

	return c.JSON(dto.ToNoteResponse(note))
}

func (h *NoteHandler) Favorite(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	noteID, err := parseUUIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid note id",
		})
	}

	if err := h.noteService.Favorite(userID, noteID); err != nil {
		return noteError(c, err)
	}

	return c.JSON(fiber.Map{"message": "Note added to favorites"})
}

func (h *NoteHandler) Unfavorite(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	noteID, err := parseUUIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid note id",
		})
	}

	if err := h.noteService.Unfavorite(userID, noteID); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to remove favorite",
		})
	}

	return c.JSON(fiber.Map{"message": "Note removed from favorites"})
}

func (h *NoteHandler) ListFavorites(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	page := c.QueryInt("page", 1)
	limit := c.QueryInt("limit", 20)

	notes, total, err := h.noteService.ListFavorites(userID, page, limit)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to list favorites",
		})
	}

	return c.JSON(fiber.Map{
		"notes": dto.ToNoteResponses(notes),
		"total": total,
		"page":  page,
		"limit": limit,
	})
}

func (h *NoteHandler) Related(c *fiber.Ctx) error {
	noteID, err := parseUUIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid note id",
		})
	}

	note, err := h.noteService.Get(noteID)
	if err != nil {
		return noteError(c, err)
	}

	return c.JSON(h.enrichService.RelatedContent(c.Context(), note))
}

func (h *NoteHandler) SetModerationStatus(c *fiber.Ctx) error {
	noteID, err := parseUUIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid note id",
		})
	}

	var req dto.SetModerationRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	note, err := h.noteService.SetModerationStatus(noteID, req.Status)
	if err != nil {
		if errors.Is(err, services.ErrInvalidStatus) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return noteError(c, err)
	}

	return c.JSON(dto.ToNoteResponse(note))
}

func noteError(c *fiber.Ctx, err error) error {
	if errors.Is(err, services.ErrNoteNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Error: true, Message: "Note not found",
		})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
		Error: true, Message: "Internal server error",
	})
}

func parseUUIDParam(c *fiber.Ctx, name string) (uuid.UUID, error) {
	return uuid.Parse(c.Params(name))
}
