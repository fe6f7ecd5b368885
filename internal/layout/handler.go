package layout

import (
	"encoding/json"

	"github.com/gofiber/fiber/v2"
)

// GET /api/layout
func GetLayoutHandler(m *Manager) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"layout": m.GetLayout(c.Context())})
	}
}

// POST /api/layout
func ReplaceLayoutHandler(m *Manager) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body struct {
			Layout json.RawMessage `json:"layout"`
		}
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		if _, ok := m.ReplaceLayout(c.Context(), body.Layout); !ok {
			return fiber.NewError(fiber.StatusInternalServerError, "Düzen kaydedilemedi")
		}
		return c.JSON(fiber.Map{"success": true})
	}
}

// DELETE /api/layout — varsayılan düzene sıfırla.
func ResetLayoutHandler(m *Manager) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !m.ResetLayout(c.Context()) {
			return fiber.NewError(fiber.StatusInternalServerError, "Düzen sıfırlanamadı")
		}
		return c.JSON(fiber.Map{"success": true})
	}
}

// PUT /api/layout — raf silmeden önce ürün sayısı kontrolü.
func LayoutActionHandler(m *Manager) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body struct {
			Action  string `json:"action"`
			ShelfID string `json:"shelfId"`
		}
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		switch body.Action {
		case "checkProducts":
			if body.ShelfID == "" {
				return fiber.NewError(fiber.StatusBadRequest, "shelfId zorunlu")
			}
			count := m.CountProductsOnShelf(c.Context(), body.ShelfID)
			return c.JSON(fiber.Map{"productCount": count})
		default:
			return fiber.NewError(fiber.StatusBadRequest, "Bilinmeyen action: "+body.Action)
		}
	}
}
