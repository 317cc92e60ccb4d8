package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/anjiri1684/tutor_cards/apperrors"
	"github.com/anjiri1684/tutor_cards/media"
)

// UploadMedia stores the multipart file of the kind named in the path and
// returns its reference, ready to be put on a card or profile. The file is
// read from the kind's form field, e.g. cardPhoto for card-photo.
func (h *Handler) UploadMedia(c *fiber.Ctx) error {
	kind, err := media.ParseKind(c.Params("kind"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	}

	field := kind.FormField()
	file, err := c.FormFile(field)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "No file uploaded in field " + field})
	}
	if _, err := media.CheckFile(file.Filename, file.Size); err != nil {
		return respondError(c, err)
	}

	src, err := file.Open()
	if err != nil {
		return respondError(c, apperrors.NewUploadError(err))
	}
	defer src.Close()

	ref, err := h.Uploader.Upload(c.UserContext(), kind, file.Filename, src)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"url": ref})
}
