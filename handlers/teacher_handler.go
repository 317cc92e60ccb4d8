package handlers

import (
	"net/url"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/anjiri1684/tutor_cards/middleware"
	"github.com/anjiri1684/tutor_cards/models"
	"github.com/anjiri1684/tutor_cards/services"
)

func (h *Handler) SaveTeacherProfile(c *fiber.Ctx) error {
	var profile models.TeacherProfile
	if err := c.BodyParser(&profile); err != nil {
		return badJSON(c)
	}
	id := middleware.CurrentIdentity(c)
	if strings.TrimSpace(profile.Username) == "" {
		profile.Username = id.Username
	}
	teacher, err := h.Teachers.SaveProfile(c.UserContext(), id.Email, profile)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(h.resolveTeacher(c, teacher))
}

func (h *Handler) GetMyTeacherProfile(c *fiber.Ctx) error {
	teacher, err := h.Teachers.GetTeacher(c.UserContext(), middleware.CurrentIdentity(c).Email)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(h.resolveTeacher(c, teacher))
}

func (h *Handler) GetTeacherProfile(c *fiber.Ctx) error {
	email, err := url.PathUnescape(c.Params("email"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid teacher email"})
	}
	teacher, err := h.Teachers.GetTeacher(c.UserContext(), strings.ToLower(email))
	if err != nil {
		return respondError(c, err)
	}
	// The draft is private to its owner.
	teacher.DraftCard = nil
	return c.JSON(h.resolveTeacher(c, teacher))
}

func (h *Handler) resolveTeacher(c *fiber.Ctx, t *models.Teacher) *models.Teacher {
	origin := h.origin(c)
	t.ProfilePhotoPath = services.ResolveMediaURL(origin, t.ProfilePhotoPath)
	if t.PublishedCard != nil {
		t.PublishedCard.Photo = services.ResolveMediaURL(origin, t.PublishedCard.Photo)
		t.PublishedCard.CardPhoto = services.ResolveMediaURL(origin, t.PublishedCard.CardPhoto)
	}
	return t
}
