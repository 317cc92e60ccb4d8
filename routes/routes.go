package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/anjiri1684/tutor_cards/handlers"
)

// Setup registers every route group on app.
func Setup(app *fiber.App, h *handlers.Handler, jwtSecret, uploadDir string) {
	PublicRoutes(app, h, uploadDir)
	TeacherRoutes(app, h, jwtSecret)
	StudentRoutes(app, h, jwtSecret)
	UploadRoutes(app, h, jwtSecret)
}
