package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/anjiri1684/tutor_cards/apperrors"
	"github.com/anjiri1684/tutor_cards/logger"
	"github.com/anjiri1684/tutor_cards/media"
	"github.com/anjiri1684/tutor_cards/services"
)

// Handler serves the HTTP API on top of the services.
type Handler struct {
	Cards         *services.CardService
	Teachers      *services.TeacherService
	Students      *services.StudentService
	Notifications *services.NotificationService
	Materials     *services.TrialMaterialService
	Enrollments   *services.EnrollmentService
	Uploader      media.Uploader

	// PublicBaseURL overrides the request origin when resolving media
	// references, e.g. behind a proxy.
	PublicBaseURL string
}

func (h *Handler) origin(c *fiber.Ctx) string {
	if h.PublicBaseURL != "" {
		return h.PublicBaseURL
	}
	return c.BaseURL()
}

// respondError maps an error kind to its HTTP status.
func respondError(c *fiber.Ctx, err error) error {
	var (
		validation *apperrors.ValidationError
		upload     *apperrors.UploadError
	)
	switch {
	case errors.As(err, &validation):
		body := fiber.Map{"error": validation.Error()}
		if len(validation.MissingFields) > 0 {
			body["missingFields"] = validation.MissingFields
		}
		if len(validation.Fields) > 0 {
			body["fields"] = validation.Fields
		}
		return c.Status(fiber.StatusBadRequest).JSON(body)
	case apperrors.IsNotFound(err):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	case errors.As(err, &upload):
		if upload.Rejected {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": upload.Err.Error()})
		}
		logger.Log.WithError(err).WithField("path", c.Path()).Error("Upload failed")
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": "Failed to store file"})
	case errors.Is(err, services.ErrPaymentNotCompleted):
		return c.Status(fiber.StatusPaymentRequired).JSON(fiber.Map{"error": err.Error()})
	}

	logger.Log.WithFields(logrus.Fields{
		"path":   c.Path(),
		"method": c.Method(),
	}).WithError(err).Error("Request failed")
	if apperrors.IsStorage(err) {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Database error"})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Internal server error"})
}

func badJSON(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
}
