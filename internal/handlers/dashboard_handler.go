package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/notehive/notehive-backend/internal/dto"
	"github.com/notehive/notehive-backend/internal/middleware"
	"github.com/notehive/notehive-backend/internal/services"
)

type DashboardHandler struct {
	noteService   *services.NoteService
	reviewService *services.ReviewService
	doubtService  *services.DoubtService
}

func NewDashboardHandler(noteService *services.NoteService, reviewService *services.ReviewService, doubtService *services.DoubtService) *DashboardHandler {
	return &DashboardHandler{
		noteService:   noteService,
		reviewService: reviewService,
		doubtService:  doubtService,
	}
}

// Get composes the caller's activity overview: their notes and aggregate
// downloads, recent uploads, recent reviews they wrote, and counts.
func (h *DashboardHandler) Get(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	noteCount, totalDownloads, favoriteCount, recentNotes, err := h.noteService.OwnerStats(userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to load dashboard",
		})
	}

	recentReviews, reviewCount, err := h.reviewService.ListByAuthor(userID, 5)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to load dashboard",
		})
	}

	doubtCount, err := h.doubtService.CountByAuthor(userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to load dashboard",
		})
	}

	return c.JSON(dto.DashboardResponse{
		NoteCount:      noteCount,
		TotalDownloads: totalDownloads,
		ReviewCount:    reviewCount,
		DoubtCount:     doubtCount,
		FavoriteCount:  favoriteCount,
		RecentNotes:    dto.ToNoteResponses(recentNotes),
		RecentReviews:  recentReviews,
	})
}
