package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/anjiri1684/tutor_cards/handlers"
	"github.com/anjiri1684/tutor_cards/middleware"
)

func TeacherRoutes(app *fiber.App, h *handlers.Handler, jwtSecret string) {
	api := app.Group("/api/v1")

	teacher := api.Group("/teacher", middleware.Protected(jwtSecret))
	teacher.Get("/profile", h.GetMyTeacherProfile)
	teacher.Put("/profile", h.SaveTeacherProfile)
	teacher.Put("/trial-materials", h.SetTrialMaterials)
	teacher.Get("/notifications", h.ListMyNotifications)

	card := teacher.Group("/card")
	card.Get("/draft", h.GetDraftCard)
	card.Put("/draft", h.SaveDraftCard)
	card.Post("/publish", h.PublishCard)
	card.Get("/publications", h.ListMyPublications)
}
