package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/notehive/notehive-backend/internal/config"
	"github.com/notehive/notehive-backend/internal/handlers"
	"github.com/notehive/notehive-backend/internal/middleware"
	"gorm.io/gorm"
)

func Setup(
	app *fiber.App,
	cfg *config.Config,
	db *gorm.DB,
	authHandler *handlers.AuthHandler,
	noteHandler *handlers.NoteHandler,
	reviewHandler *handlers.ReviewHandler,
	doubtHandler *handlers.DoubtHandler,
	dashboardHandler *handlers.DashboardHandler,
	reportHandler *handlers.ReportHandler,
	healthHandler *handlers.HealthHandler,
) {
	api := app.Group("/api")

	// General API rate limiter: 60 req/min per IP
	api.Use(limiter.New(limiter.Config{
		Max:               60,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))

	api.Get("/health", healthHandler.Check)

	// Auth — public, with a stricter rate limit: 10 req/min per IP
	auth := api.Group("/auth")
	auth.Use(limiter.New(limiter.Config{
		Max:               10,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))
	auth.Post("/signup", authHandler.Register)
	auth.Post("/login", authHandler.Login)
	auth.Post("/refresh", authHandler.Refresh)
	auth.Post("/google", authHandler.GoogleSignIn)

	// Protected auth routes; middleware is applied per route so the JWT
	// check never shadows the public endpoints above.
	api.Post("/auth/logout", middleware.JWTProtected(cfg), authHandler.Logout)
	api.Get("/auth/me", middleware.JWTProtected(cfg), authHandler.Me)
	api.Delete("/auth/account", middleware.JWTProtected(cfg), authHandler.DeleteAccount)

	// Notes — browsing is public, everything else requires a login
	api.Get("/notes", noteHandler.List)
	api.Get("/notes/:id", noteHandler.Get)
	api.Get("/notes/:id/related", noteHandler.Related)
	api.Get("/notes/:id/reviews", reviewHandler.ListForNote)

	api.Post("/notes", middleware.JWTProtected(cfg), noteHandler.Create)
	api.Patch("/notes/:id", middleware.JWTProtected(cfg), noteHandler.Update)
	api.Delete("/notes/:id", middleware.JWTProtected(cfg), noteHandler.Delete)
	api.Put("/notes/:id/download", middleware.JWTProtected(cfg), noteHandler.Download)

	// Reviews
	api.Post("/notes/:id/reviews", middleware.JWTProtected(cfg), reviewHandler.CreateOrUpdate)
	api.Delete("/notes/:id/reviews", middleware.JWTProtected(cfg), reviewHandler.Delete)

	// Favorites
	api.Get("/me/favorites", middleware.JWTProtected(cfg), noteHandler.ListFavorites)
	api.Post("/notes/:id/favorite", middleware.JWTProtected(cfg), noteHandler.Favorite)
	api.Delete("/notes/:id/favorite", middleware.JWTProtected(cfg), noteHandler.Unfavorite)

	// Doubts and answers
	api.Get("/doubts", doubtHandler.List)
	api.Get("/doubts/:id", doubtHandler.Get)
	api.Post("/doubts", middleware.JWTProtected(cfg), doubtHandler.Create)
	api.Put("/doubts/:id", middleware.JWTProtected(cfg), doubtHandler.Update)
	api.Delete("/doubts/:id", middleware.JWTProtected(cfg), doubtHandler.Delete)
	api.Post("/doubts/:id/answers", middleware.JWTProtected(cfg), doubtHandler.AddAnswer)
	api.Put("/doubts/:id/answers/:answerId", middleware.JWTProtected(cfg), doubtHandler.UpdateAnswer)
	api.Delete("/doubts/:id/answers/:answerId", middleware.JWTProtected(cfg), doubtHandler.DeleteAnswer)

	// Dashboard
	api.Get("/dashboard", middleware.JWTProtected(cfg), dashboardHandler.Get)

	// Reports — any logged-in user can flag content
	api.Post("/reports", middleware.JWTProtected(cfg), reportHandler.Create)

	// Admin moderation panel
	admin := api.Group("/admin", middleware.JWTProtected(cfg), middleware.AdminRequired(db, cfg))
	admin.Get("/notes", noteHandler.AdminList)
	admin.Put("/notes/:id/moderation", noteHandler.SetModerationStatus)
	admin.Get("/moderation/reports", reportHandler.List)
	admin.Put("/moderation/reports/:id", reportHandler.Action)
}
