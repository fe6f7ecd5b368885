package auth

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// SessionCookieName analitik korelasyonu için kullanılan çerez; yetkilendirme
// amaçlı değildir.
const SessionCookieName = "ruzgar_session_id"

// SessionCookieMiddleware assigns a session id cookie to first-time visitors.
func SessionCookieMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if c.Cookies(SessionCookieName) == "" {
			c.Cookie(&fiber.Cookie{
				Name:     SessionCookieName,
				Value:    uuid.NewString(),
				Expires:  time.Now().Add(30 * 24 * time.Hour),
				HTTPOnly: true,
				SameSite: "Strict",
				Path:     "/",
			})
		}
		return c.Next()
	}
}
