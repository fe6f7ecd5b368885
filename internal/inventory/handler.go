package inventory

import (
	"slices"
	"strings"
	"time"

	"ruzgar-backend/internal/layout"
	"ruzgar-backend/internal/models"

	"github.com/go-playground/validator"
	"github.com/gofiber/fiber/v2"
)

type productInput struct {
	ID        string                 `json:"id" validate:"required"`
	Name      string                 `json:"name" validate:"required"`
	Category  models.ProductCategory `json:"category" validate:"required,oneof=washer screw nut bolt stud other"`
	Size      string                 `json:"size"`
	Shelf     string                 `json:"shelf" validate:"required"`
	Layer     string                 `json:"layer" validate:"required"`
	Kilogram  float64                `json:"kilogram" validate:"gte=0"`
	Notes     string                 `json:"notes"`
	CreatedAt time.Time              `json:"createdAt"`
}

type saveProductRequest struct {
	Product  productInput `json:"product" validate:"required"`
	Username string       `json:"username" validate:"required"`
	IsUpdate *bool        `json:"isUpdate"`
}

type deleteProductRequest struct {
	// Silme isteği ürünün tamamını değil kimliğini gerektirir, bu yüzden iç
	// alan doğrulaması atlanır.
	Product  productInput `json:"product" validate:"-"`
	Username string       `json:"username" validate:"required"`
}

func (in *productInput) toModel() models.Product {
	return models.Product{
		ID:        strings.TrimSpace(in.ID),
		Name:      strings.TrimSpace(in.Name),
		Category:  in.Category,
		Size:      strings.TrimSpace(in.Size),
		Shelf:     in.Shelf,
		Layer:     in.Layer,
		Kilogram:  in.Kilogram,
		Notes:     in.Notes,
		CreatedAt: in.CreatedAt,
	}
}

// GET /api/products?shelfId=&layer=
// Parametresiz çağrı tüm ürünleri döndürür.
func ListProductsHandler(repo *Repository) fiber.Handler {
	return func(c *fiber.Ctx) error {
		shelfID := c.Query("shelfId")
		layer := c.Query("layer")

		var products []models.Product
		if shelfID != "" && layer != "" {
			products = repo.ListByShelfAndLayer(c.Context(), shelfID, layer)
		} else {
			products = repo.ListAll(c.Context())
		}
		return c.JSON(fiber.Map{"products": products})
	}
}

// POST /api/products
func SaveProductHandler(repo *Repository, layouts *layout.Manager) fiber.Handler {
	validate := validator.New()

	return func(c *fiber.Ctx) error {
		var body saveProductRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}
		if err := validate.Struct(body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Eksik veya hatalı ürün bilgisi: "+err.Error())
		}

		p := body.Product.toModel()

		// Raf/katman kontrolü yalnızca yeni kayıt için yapılır: mevcut bir
		// ürünün katmanı sonradan yeniden adlandırılmış olabilir ve
		// güncelleme bunu engellememeli.
		isCreate := !repo.Exists(c.Context(), p.ID)
		if body.IsUpdate != nil {
			isCreate = !*body.IsUpdate
		}
		if isCreate {
			current := layouts.GetLayout(c.Context())
			if current.FindShelf(p.Shelf) == nil {
				return fiber.NewError(fiber.StatusBadRequest, "Raf bulunamadı: "+p.Shelf)
			}
			if !slices.Contains(models.ResolveLayers(p.Shelf, current), p.Layer) {
				return fiber.NewError(fiber.StatusBadRequest, "Katman bulunamadı: "+p.Layer)
			}
		}

		if !repo.Save(c.Context(), p, body.Username, body.IsUpdate) {
			return fiber.NewError(fiber.StatusInternalServerError, "Ürün kaydedilemedi")
		}
		return c.JSON(fiber.Map{"success": true})
	}
}

// DELETE /api/products
func DeleteProductHandler(repo *Repository) fiber.Handler {
	validate := validator.New()

	return func(c *fiber.Ctx) error {
		var body deleteProductRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}
		if err := validate.Struct(body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Eksik silme bilgisi: "+err.Error())
		}
		if body.Product.ID == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Ürün kimliği zorunlu")
		}

		if !repo.Delete(c.Context(), body.Product.toModel(), body.Username) {
			return fiber.NewError(fiber.StatusInternalServerError, "Ürün silinemedi")
		}
		return c.JSON(fiber.Map{"success": true})
	}
}
