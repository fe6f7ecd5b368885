package inventory

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"ruzgar-backend/internal/layout"
	"ruzgar-backend/internal/models"
	"ruzgar-backend/internal/store"
	"ruzgar-backend/internal/txlog"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newHandlerApp(t *testing.T) (*fiber.App, *Repository) {
	t.Helper()

	st := store.NewMemory()
	logger := zap.NewNop()
	repo := NewRepository(st, txlog.NewRepository(st, logger), logger)
	layouts := layout.NewManager(st, logger)

	app := fiber.New()
	app.Get("/api/products", ListProductsHandler(repo))
	app.Post("/api/products", SaveProductHandler(repo, layouts))
	app.Delete("/api/products", DeleteProductHandler(repo))
	return app, repo
}

func postJSON(t *testing.T, app *fiber.App, method, target string, body any) *http.Response {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(method, target, bytes.NewReader(raw))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func validSaveBody() fiber.Map {
	return fiber.Map{
		"product": fiber.Map{
			"id":       "p1",
			"name":     "M8 Civata",
			"category": "bolt",
			"size":     "M8",
			"shelf":    "A",
			"layer":    "üst kat",
			"kilogram": 0.5,
		},
		"username": "alice",
	}
}

func TestSaveAndListProducts(t *testing.T) {
	app, _ := newHandlerApp(t)

	resp := postJSON(t, app, http.MethodPost, "/api/products", validSaveBody())
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp = postJSON(t, app, http.MethodGet, "/api/products?shelfId=A&layer="+url.QueryEscape("üst kat"), nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body struct {
		Products []models.Product `json:"products"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Len(t, body.Products, 1)
	assert.Equal(t, "M8 Civata", body.Products[0].Name)

	// Parametresiz liste tüm ürünleri döndürür.
	resp = postJSON(t, app, http.MethodGet, "/api/products", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Len(t, body.Products, 1)
}

func TestSaveProductValidation(t *testing.T) {
	app, _ := newHandlerApp(t)

	// Kullanıcı adı eksik.
	body := validSaveBody()
	delete(body, "username")
	resp := postJSON(t, app, http.MethodPost, "/api/products", body)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	// Bilinmeyen kategori.
	body = validSaveBody()
	body["product"].(fiber.Map)["category"] = "gadget"
	resp = postJSON(t, app, http.MethodPost, "/api/products", body)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	// Negatif kilo.
	body = validSaveBody()
	body["product"].(fiber.Map)["kilogram"] = -1
	resp = postJSON(t, app, http.MethodPost, "/api/products", body)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestSaveProductUnknownShelfOrLayer(t *testing.T) {
	app, _ := newHandlerApp(t)

	body := validSaveBody()
	body["product"].(fiber.Map)["shelf"] = "Z9"
	resp := postJSON(t, app, http.MethodPost, "/api/products", body)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	body = validSaveBody()
	body["product"].(fiber.Map)["layer"] = "bodrum"
	resp = postJSON(t, app, http.MethodPost, "/api/products", body)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestUpdateSkipsLayerCheck(t *testing.T) {
	app, repo := newHandlerApp(t)

	resp := postJSON(t, app, http.MethodPost, "/api/products", validSaveBody())
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	// Kayıtlı ürünün katmanı sözlükte olmasa da güncelleme geçer.
	body := validSaveBody()
	body["product"].(fiber.Map)["layer"] = "eski katman"
	body["isUpdate"] = true
	resp = postJSON(t, app, http.MethodPost, "/api/products", body)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	products := repo.ListAll(context.Background())
	require.Len(t, products, 1)
	assert.Equal(t, "eski katman", products[0].Layer)
}

func TestDeleteProduct(t *testing.T) {
	app, repo := newHandlerApp(t)

	resp := postJSON(t, app, http.MethodPost, "/api/products", validSaveBody())
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp = postJSON(t, app, http.MethodDelete, "/api/products", fiber.Map{
		"product":  fiber.Map{"id": "p1"},
		"username": "alice",
	})
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Empty(t, repo.ListAll(context.Background()))

	// Kimlik boşsa istek reddedilir.
	resp = postJSON(t, app, http.MethodDelete, "/api/products", fiber.Map{
		"product":  fiber.Map{},
		"username": "alice",
	})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}
