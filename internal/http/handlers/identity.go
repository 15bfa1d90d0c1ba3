package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"samysilks/internal/domain"
	"samysilks/internal/services"
)

// ensureSID returns the session cookie, minting one for first-time visitors.
func ensureSID(c *fiber.Ctx) string {
	sid := c.Cookies("sid")
	if sid == "" {
		sid = uuid.NewString()
		c.Cookie(&fiber.Cookie{
			Name:     "sid",
			Value:    sid,
			Path:     "/",
			HTTPOnly: true,
			SameSite: fiber.CookieSameSiteLaxMode,
			Secure:   false, // enable true behind TLS
		})
	}
	return sid
}

func currentUser(c *fiber.Ctx) *domain.User {
	u, _ := c.Locals("user").(*domain.User)
	return u
}

// cartOwner resolves the cart scope for the request: the signed-in user's
// cart, or the guest cart tied to the session cookie. Signing in or out
// switches scopes; carts are never merged.
func cartOwner(c *fiber.Ctx) string {
	if u := currentUser(c); u != nil {
		return services.UserOwner(u.ID)
	}
	return services.GuestOwner(ensureSID(c))
}
