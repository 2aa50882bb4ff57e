package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/notehive/notehive-backend/internal/dto"
	"github.com/notehive/notehive-backend/internal/middleware"
	"github.com/notehive/notehive-backend/internal/services"
)

type DoubtHandler struct {
	doubtService *services.DoubtService
}

func NewDoubtHandler(doubtService *services.DoubtService) *DoubtHandler {
	return &DoubtHandler{doubtService: doubtService}
}

func (h *DoubtHandler) Create(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	var req dto.CreateDoubtRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	doubt, err := h.doubtService.Create(userID, &req)
	if err != nil {
		if isDoubtInputError(err) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Internal server error",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(doubt)
}

func (h *DoubtHandler) List(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)
	limit := c.QueryInt("limit", 20)

	doubts, total, err := h.doubtService.List(c.Query("subject"), page, limit)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to list doubts",
		})
	}

	return c.JSON(fiber.Map{
		"doubts": doubts,
		"total":  total,
		"page":   page,
		"limit":  limit,
	})
}

func (h *DoubtHandler) Get(c *fiber.Ctx) error {
	doubtID, err := parseUUIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid doubt id",
		})
	}

	doubt, err := h.doubtService.Get(doubtID)
	if err != nil {
		return doubtError(c, err)
	}

	return c.JSON(doubt)
}

func (h *DoubtHandler) Update(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	doubtID, err := parseUUIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid doubt id",
		})
	}

	var req dto.UpdateDoubtRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	doubt, err := h.doubtService.Update(userID, doubtID, &req)
	if err != nil {
		if errors.Is(err, services.ErrMissingDoubtFields) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return doubtError(c, err)
	}

	return c.JSON(doubt)
}

func (h *DoubtHandler) Delete(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	doubtID, err := parseUUIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid doubt id",
		})
	}

	if err := h.doubtService.Delete(userID, doubtID); err != nil {
		return doubtError(c, err)
	}

	return c.JSON(fiber.Map{"message": "Doubt deleted successfully"})
}

func (h *DoubtHandler) AddAnswer(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	doubtID, err := parseUUIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid doubt id",
		})
	}

	var req dto.CreateAnswerRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	answer, err := h.doubtService.AddAnswer(userID, doubtID, &req)
	if err != nil {
		if isDoubtInputError(err) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return doubtError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(answer)
}

func (h *DoubtHandler) UpdateAnswer(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	doubtID, err := parseUUIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid doubt id",
		})
	}

	answerID, err := parseUUIDParam(c, "answerId")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid answer id",
		})
	}

	var req dto.UpdateAnswerRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	answer, err := h.doubtService.UpdateAnswer(userID, doubtID, answerID, &req)
	if err != nil {
		if isDoubtInputError(err) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return doubtError(c, err)
	}

	return c.JSON(answer)
}

func (h *DoubtHandler) DeleteAnswer(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	doubtID, err := parseUUIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid doubt id",
		})
	}

	answerID, err := parseUUIDParam(c, "answerId")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid answer id",
		})
	}

	if err := h.doubtService.DeleteAnswer(userID, doubtID, answerID); err != nil {
		return doubtError(c, err)
	}

	return c.JSON(fiber.Map{"message": "Answer deleted successfully"})
}

// isDoubtInputError separates caller mistakes from store failures so the
// latter never leak through a 400.
func isDoubtInputError(err error) bool {
	var rejected *services.ContentRejectedError
	return errors.Is(err, services.ErrMissingDoubtFields) ||
		errors.Is(err, services.ErrMissingAnswer) ||
		errors.As(err, &rejected)
}

func doubtError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrDoubtNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Error: true, Message: "Doubt not found",
		})
	case errors.Is(err, services.ErrAnswerNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Error: true, Message: "Answer not found",
		})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Internal server error",
		})
	}
}
