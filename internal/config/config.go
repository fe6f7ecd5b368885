package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	HTTPPort    string
	Environment string // development | production
	CORSOrigins string

	// Depolama: postgres | redis | memory
	StorageDriver string
	DatabaseDSN   string
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// Birincil depo düştüğünde yeniden denenme aralığı
	StorageProbeInterval time.Duration

	JWTSecret     string
	AdminPassword string // İlk açılışta hash'lenip kaydedilen varsayılan şifre
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("[WARN] .env dosyası bulunamadı, sistem environment değişkenleri kullanılıyor")
	}

	cfg := &Config{
		HTTPPort:             getEnv("HTTP_PORT", "8080"),
		Environment:          getEnv("APP_ENV", "development"),
		CORSOrigins:          getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:3000"),
		StorageDriver:        getEnv("STORAGE_DRIVER", "postgres"),
		DatabaseDSN:          getEnv("DATABASE_DSN", "host=localhost user=postgres password=postgres dbname=ruzgar port=5432 sslmode=disable"),
		RedisAddr:            getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:        getEnv("REDIS_PASSWORD", ""),
		RedisDB:              getEnvAsInt("REDIS_DB", 0),
		StorageProbeInterval: time.Duration(getEnvAsInt("STORAGE_PROBE_INTERVAL_SECONDS", 30)) * time.Second,
		JWTSecret:            getEnv("JWT_SECRET", ""),
		AdminPassword:        getEnv("ADMIN_PASSWORD", ""),
	}

	// Production güvenlik kontrolleri
	if cfg.JWTSecret == "" {
		log.Fatal("[FATAL] JWT_SECRET environment değişkeni tanımlanmamış! Production için zorunludur.")
	}
	if len(cfg.JWTSecret) < 32 {
		log.Fatal("[FATAL] JWT_SECRET en az 32 karakter olmalıdır! Güvenlik riski.")
	}
	if cfg.AdminPassword == "" {
		log.Println("[WARN] ADMIN_PASSWORD tanımlanmamış, mevcut bir şifre hash'i yoksa giriş yapılamaz.")
	}
	if cfg.StorageDriver == "postgres" && cfg.DatabaseDSN == "host=localhost user=postgres password=postgres dbname=ruzgar port=5432 sslmode=disable" {
		log.Println("[WARN] DATABASE_DSN varsayılan değer kullanılıyor, production için mutlaka kendi Postgres bağlantı bilgisini tanımla.")
	}

	return cfg
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvAsInt(key string, def int) int {
	if v, err := strconv.Atoi(getEnv(key, "")); err == nil {
		return v
	}
	return def
}
