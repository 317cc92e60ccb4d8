package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	jwtware "github.com/gofiber/jwt/v3"
	"github.com/golang-jwt/jwt/v4"
)

// Identity is the verified caller handed over by the auth provider. Email
// is the key every teacher and student record is stored under.
type Identity struct {
	Email    string
	Username string
	Subject  string
}

func Protected(secret string) fiber.Handler {
	return jwtware.New(jwtware.Config{
		SigningKey:     []byte(secret),
		SuccessHandler: requireEmail,
		ErrorHandler:   jwtError,
	})
}

func jwtError(c *fiber.Ctx, err error) error {
	if err.Error() == "Missing or malformed JWT" {
		return c.Status(fiber.StatusBadRequest).
			JSON(fiber.Map{"status": "error", "message": "Missing or malformed JWT", "data": nil})
	}
	return c.Status(fiber.StatusUnauthorized).
		JSON(fiber.Map{"status": "error", "message": "Invalid or expired JWT", "data": nil})
}

func requireEmail(c *fiber.Ctx) error {
	if CurrentIdentity(c).Email == "" {
		return c.Status(fiber.StatusUnauthorized).
			JSON(fiber.Map{"status": "error", "message": "Token carries no email claim", "data": nil})
	}
	return c.Next()
}

// CurrentIdentity reads the identity from the verified token. It returns
// the zero Identity on unauthenticated routes.
func CurrentIdentity(c *fiber.Ctx) Identity {
	token, ok := c.Locals("user").(*jwt.Token)
	if !ok {
		return Identity{}
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return Identity{}
	}
	id := Identity{
		Email:    claimString(claims, "email"),
		Username: claimString(claims, "username"),
		Subject:  claimString(claims, "sub"),
	}
	if id.Username == "" {
		id.Username = claimString(claims, "name")
	}
	id.Email = strings.ToLower(strings.TrimSpace(id.Email))
	return id
}

func claimString(claims jwt.MapClaims, key string) string {
	s, _ := claims[key].(string)
	return s
}
