package handlers

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/anjiri1684/tutor_cards/middleware"
)

var validate = validator.New()

type RecordNotificationRequest struct {
	CourseName  string `json:"courseName" validate:"required"`
	TeacherName string `json:"teacherName" validate:"required"`
	StudentID   string `json:"studentId"`
	StudentName string `json:"studentName"`
}

// RecordNotification lets a signed-in student log an enrollment directly.
// The student fields default to the caller's identity.
func (h *Handler) RecordNotification(c *fiber.Ctx) error {
	var req RecordNotificationRequest
	if err := c.BodyParser(&req); err != nil {
		return badJSON(c)
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	id := middleware.CurrentIdentity(c)
	if req.StudentID == "" {
		req.StudentID = id.Email
	}
	if req.StudentName == "" {
		req.StudentName = id.Username
	}

	n, err := h.Notifications.Record(c.UserContext(), req.CourseName, req.TeacherName, req.StudentID, req.StudentName)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(n)
}

func (h *Handler) ListMyNotifications(c *fiber.Ctx) error {
	list, err := h.Notifications.ListForTeacher(c.UserContext(), middleware.CurrentIdentity(c).Email)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(list)
}
