package handlers

import (
	"net/url"

	"github.com/gofiber/fiber/v2"

	"github.com/anjiri1684/tutor_cards/middleware"
	"github.com/anjiri1684/tutor_cards/models"
)

type SetTrialMaterialsRequest struct {
	Materials []models.TrialMaterial `json:"materials"`
}

func (h *Handler) SetTrialMaterials(c *fiber.Ctx) error {
	var req SetTrialMaterialsRequest
	if err := c.BodyParser(&req); err != nil {
		return badJSON(c)
	}
	teacher, err := h.Materials.SetMaterials(c.UserContext(), middleware.CurrentIdentity(c).Email, req.Materials)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(h.resolveTeacher(c, teacher))
}

func (h *Handler) GetTrialMaterialsByCourse(c *fiber.Ctx) error {
	courseName, err := url.PathUnescape(c.Params("courseName"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid course name"})
	}
	materials, err := h.Materials.GetMaterialsByCourse(c.UserContext(), courseName)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(materials)
}
