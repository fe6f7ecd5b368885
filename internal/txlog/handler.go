package txlog

import (
	"github.com/gofiber/fiber/v2"
)

// GET /api/logs?warehouseId=
// Tek depo kurulumunda warehouseId şimdilik bilgilendirme amaçlı; filtreleme
// çağıran tarafta yapılır (log hacmi küçük varsayılır).
func ListLogsHandler(repo *Repository) fiber.Handler {
	return func(c *fiber.Ctx) error {
		logs := repo.ListAll(c.Context())
		return c.JSON(fiber.Map{"logs": logs})
	}
}

// GET /api/logs/export
func ExportLogsHandler(repo *Repository) fiber.Handler {
	return func(c *fiber.Ctx) error {
		buf, err := repo.ExportXLSX(c.Context())
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Kayıtlar dışa aktarılamadı")
		}

		c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Set(fiber.HeaderContentDisposition, `attachment; filename="islem-kayitlari.xlsx"`)
		return c.Send(buf.Bytes())
	}
}
