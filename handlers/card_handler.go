package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/anjiri1684/tutor_cards/middleware"
	"github.com/anjiri1684/tutor_cards/models"
	"github.com/anjiri1684/tutor_cards/services"
)

func (h *Handler) SaveDraftCard(c *fiber.Ctx) error {
	var card models.Card
	if err := c.BodyParser(&card); err != nil {
		return badJSON(c)
	}
	saved, err := h.Cards.SaveDraft(c.UserContext(), middleware.CurrentIdentity(c).Email, card)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(saved)
}

func (h *Handler) GetDraftCard(c *fiber.Ctx) error {
	card, err := h.Cards.GetDraft(c.UserContext(), middleware.CurrentIdentity(c).Email)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(card)
}

func (h *Handler) PublishCard(c *fiber.Ctx) error {
	var card models.Card
	if err := c.BodyParser(&card); err != nil {
		return badJSON(c)
	}
	published, err := h.Cards.Publish(c.UserContext(), middleware.CurrentIdentity(c).Email, card)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(published)
}

func (h *Handler) ListPublishedCards(c *fiber.Ctx) error {
	filter := services.CardFilter{Subject: c.Query("subject"), Q: c.Query("q")}
	cards, err := h.Cards.ListPublished(c.UserContext(), h.origin(c), filter)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(cards)
}

func (h *Handler) ListMyPublications(c *fiber.Ctx) error {
	pubs, err := h.Cards.ListPublications(c.UserContext(), middleware.CurrentIdentity(c).Email)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(pubs)
}
