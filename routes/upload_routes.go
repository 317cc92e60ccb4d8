package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/anjiri1684/tutor_cards/handlers"
	"github.com/anjiri1684/tutor_cards/middleware"
)

func UploadRoutes(app *fiber.App, h *handlers.Handler, jwtSecret string) {
	api := app.Group("/api/v1")

	uploads := api.Group("/uploads", middleware.Protected(jwtSecret))
	uploads.Post("/:kind", h.UploadMedia)
}
