package auth

import (
	"context"
	"strings"
	"time"

	"ruzgar-backend/internal/config"
	"ruzgar-backend/internal/models"
	"ruzgar-backend/internal/store"
	"ruzgar-backend/internal/txlog"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type verifyRequest struct {
	Password string `json:"password"`
}

type sessionLogRequest struct {
	Username  string `json:"username"`
	LoginTime string `json:"loginTime"`
}

// EnsurePassword seeds the stored bcrypt hash from config on first run.
func EnsurePassword(ctx context.Context, st store.Store, cfg *config.Config, logger *zap.Logger) {
	hash, err := st.GetPasswordHash(ctx)
	if err != nil {
		logger.Error("şifre hash'i okunamadı", zap.Error(err))
		return
	}
	if hash != "" || cfg.AdminPassword == "" {
		return
	}

	newHash, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		logger.Error("şifre hashlenemedi", zap.Error(err))
		return
	}
	if err := st.SetPasswordHash(ctx, string(newHash)); err != nil {
		logger.Error("şifre hash'i kaydedilemedi", zap.Error(err))
		return
	}
	logger.Info("yönetim şifresi ADMIN_PASSWORD üzerinden tanımlandı")
}

// POST /api/auth/verify
func VerifyPasswordHandler(cfg *config.Config, st store.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body verifyRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		hash, err := st.GetPasswordHash(c.Context())
		if err != nil || hash == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"success": false})
		}
		if bcrypt.CompareHashAndPassword([]byte(hash), []byte(body.Password)) != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"success": false})
		}

		token, err := GenerateToken(cfg.JWTSecret)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Token oluşturulamadı")
		}
		return c.JSON(fiber.Map{"success": true, "token": token})
	}
}

// PUT /api/auth/password — token korumalı şifre değişimi.
func ChangePasswordHandler(st store.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body verifyRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}
		if len(body.Password) < 4 {
			return fiber.NewError(fiber.StatusBadRequest, "Şifre en az 4 karakter olmalı")
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(body.Password), bcrypt.DefaultCost)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Şifre hashlenemedi")
		}
		if err := st.SetPasswordHash(c.Context(), string(hash)); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Şifre kaydedilemedi")
		}
		return c.JSON(fiber.Map{"success": true})
	}
}

// POST /api/auth/login-log
func LoginLogHandler(logs *txlog.Repository) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return recordSession(c, logs, models.ActionLogin)
	}
}

// POST /api/auth/logout-log
func LogoutLogHandler(logs *txlog.Repository) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return recordSession(c, logs, models.ActionLogout)
	}
}

func recordSession(c *fiber.Ctx, logs *txlog.Repository, action models.ActionType) error {
	var body sessionLogRequest
	if err := c.BodyParser(&body); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
	}
	if body.Username == "" {
		return fiber.NewError(fiber.StatusBadRequest, "Kullanıcı adı zorunlu")
	}

	now := time.Now().Format(time.RFC3339)
	info := &models.SessionInfo{
		IPAddress: clientIP(c),
		UserAgent: c.Get(fiber.HeaderUserAgent),
	}
	switch action {
	case models.ActionLogin:
		info.LoginTime = now
		if body.LoginTime != "" {
			info.LoginTime = body.LoginTime
		}
	case models.ActionLogout:
		info.LogoutTime = now
		info.LoginTime = body.LoginTime
	}

	logs.Append(c.Context(), &models.TransactionLog{
		ActionType:  action,
		Username:    body.Username,
		SessionInfo: info,
	})
	return c.JSON(fiber.Map{"success": true})
}

// clientIP prefers the first X-Forwarded-For hop, falling back to the
// connection address.
func clientIP(c *fiber.Ctx) string {
	if forwarded := c.Get(fiber.HeaderXForwardedFor); forwarded != "" {
		return strings.TrimSpace(strings.Split(forwarded, ",")[0])
	}
	return c.IP()
}
