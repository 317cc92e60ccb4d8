package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/anjiri1684/tutor_cards/handlers"
	"github.com/anjiri1684/tutor_cards/middleware"
)

func StudentRoutes(app *fiber.App, h *handlers.Handler, jwtSecret string) {
	api := app.Group("/api/v1")
	protected := middleware.Protected(jwtSecret)

	student := api.Group("/student", protected)
	student.Get("/profile", h.GetStudentProfile)
	student.Put("/profile", h.SaveStudentProfile)
	student.Get("/enrollments", h.ListMyEnrollments)

	checkout := api.Group("/checkout/sessions", protected)
	checkout.Post("", h.CreateCheckoutSession)
	checkout.Post("/:sessionId/confirm", h.ConfirmCheckoutSession)

	api.Post("/notifications", protected, h.RecordNotification)
}
