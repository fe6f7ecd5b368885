package main

import (
	"context"
	"log"
	"strings"

	"ruzgar-backend/internal/auth"
	"ruzgar-backend/internal/config"
	"ruzgar-backend/internal/database"
	"ruzgar-backend/internal/inventory"
	"ruzgar-backend/internal/layout"
	"ruzgar-backend/internal/logging"
	"ruzgar-backend/internal/store"
	"ruzgar-backend/internal/txlog"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"go.uber.org/zap"
)

func main() {
	cfg := config.Load()
	logger := logging.New(cfg.Environment)
	defer logger.Sync()

	// Birincil depo seçimi; bağlantı kurulamazsa bellek içi depoyla devam
	// edilir, sağlık durumu /api/health üzerinden izlenebilir.
	var primary store.Store
	switch cfg.StorageDriver {
	case "postgres":
		db, err := database.Open(cfg)
		if err != nil {
			logger.Warn("Postgres bağlantısı kurulamadı", zap.Error(err))
		} else {
			primary = store.NewGorm(db)
		}
	case "redis":
		primary = store.NewRedis(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	case "memory":
		logger.Warn("STORAGE_DRIVER=memory: veriler süreç ömrüyle sınırlı")
	default:
		log.Fatalf("[FATAL] Bilinmeyen STORAGE_DRIVER: %s", cfg.StorageDriver)
	}

	st := store.NewFallback(primary, store.NewMemory(), logger, cfg.StorageProbeInterval)
	auth.EnsurePassword(context.Background(), st, cfg, logger)

	logs := txlog.NewRepository(st, logger)
	products := inventory.NewRepository(st, logs, logger)
	layouts := layout.NewManager(st, logger)

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if e, ok := err.(*fiber.Error); ok {
				return c.Status(e.Code).JSON(fiber.Map{
					"error": e.Message,
				})
			}
			logger.Error("beklenmeyen hata", zap.Error(err))
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Beklenmeyen sunucu hatası",
			})
		},
	})

	corsOrigins := strings.Split(cfg.CORSOrigins, ",")
	for i := range corsOrigins {
		corsOrigins[i] = strings.TrimSpace(corsOrigins[i])
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(corsOrigins, ","),
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
	}))
	app.Use(auth.SessionCookieMiddleware())

	api := app.Group("/api")

	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "storageMode": st.Mode()})
	})

	// Envanter
	api.Get("/products", inventory.ListProductsHandler(products))
	api.Post("/products", inventory.SaveProductHandler(products, layouts))
	api.Delete("/products", inventory.DeleteProductHandler(products))

	// Depo düzeni
	api.Get("/layout", layout.GetLayoutHandler(layouts))
	api.Post("/layout", layout.ReplaceLayoutHandler(layouts))
	api.Delete("/layout", layout.ResetLayoutHandler(layouts))
	api.Put("/layout", layout.LayoutActionHandler(layouts))

	// İşlem kayıtları
	api.Get("/logs", txlog.ListLogsHandler(logs))
	api.Get("/logs/export", txlog.ExportLogsHandler(logs))

	// Erişim kontrolü
	api.Post("/auth/verify", auth.VerifyPasswordHandler(cfg, st))
	api.Put("/auth/password", auth.RequireToken(cfg), auth.ChangePasswordHandler(st))
	api.Post("/auth/login-log", auth.LoginLogHandler(logs))
	api.Post("/auth/logout-log", auth.LogoutLogHandler(logs))

	logger.Info("Server çalışıyor", zap.String("port", cfg.HTTPPort), zap.String("storageMode", st.Mode()))
	if err := app.Listen(":" + cfg.HTTPPort); err != nil {
		log.Fatal(err)
	}
}
