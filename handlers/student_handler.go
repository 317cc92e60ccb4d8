package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/anjiri1684/tutor_cards/middleware"
)

type SaveStudentRequest struct {
	Username string   `json:"username"`
	Subjects []string `json:"subjects"`
}

func (h *Handler) SaveStudentProfile(c *fiber.Ctx) error {
	var req SaveStudentRequest
	if err := c.BodyParser(&req); err != nil {
		return badJSON(c)
	}
	id := middleware.CurrentIdentity(c)
	if strings.TrimSpace(req.Username) == "" {
		req.Username = id.Username
	}
	student, err := h.Students.SaveStudent(c.UserContext(), id.Email, req.Username, req.Subjects)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(student)
}

func (h *Handler) GetStudentProfile(c *fiber.Ctx) error {
	student, err := h.Students.GetStudent(c.UserContext(), middleware.CurrentIdentity(c).Email)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(student)
}
