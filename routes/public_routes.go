package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/anjiri1684/tutor_cards/handlers"
	"github.com/anjiri1684/tutor_cards/media"
)

// PublicRoutes needs no identity: the card listing, public teacher
// profiles, trial materials and locally stored uploads.
func PublicRoutes(app *fiber.App, h *handlers.Handler, uploadDir string) {
	app.Static(media.PublicPrefix, uploadDir, fiber.Static{
		Browse: false,
		MaxAge: 3600,
	})

	api := app.Group("/api/v1")
	api.Get("/cards", h.ListPublishedCards)
	api.Get("/teachers/:email", h.GetTeacherProfile)
	api.Get("/courses/:courseName/trial-materials", h.GetTrialMaterialsByCourse)
}
