package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/anjiri1684/tutor_cards/middleware"
	"github.com/anjiri1684/tutor_cards/services"
)

type CheckoutRequest struct {
	CourseName string `json:"courseName" validate:"required"`
}

func student(c *fiber.Ctx) services.Student {
	id := middleware.CurrentIdentity(c)
	return services.Student{Email: id.Email, Username: id.Username}
}

func (h *Handler) CreateCheckoutSession(c *fiber.Ctx) error {
	var req CheckoutRequest
	if err := c.BodyParser(&req); err != nil {
		return badJSON(c)
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	enrollment, err := h.Enrollments.Checkout(c.UserContext(), student(c), req.CourseName)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(enrollment)
}

func (h *Handler) ConfirmCheckoutSession(c *fiber.Ctx) error {
	enrollment, err := h.Enrollments.Confirm(c.UserContext(), student(c), c.Params("sessionId"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(enrollment)
}

func (h *Handler) ListMyEnrollments(c *fiber.Ctx) error {
	list, err := h.Enrollments.ListForStudent(c.UserContext(), middleware.CurrentIdentity(c).Email)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(list)
}
