package models

import "time"

// AuthPassword tek satırlık tablo: yönetim şifresinin bcrypt hash'i.
type AuthPassword struct {
	ID           uint   `gorm:"primaryKey"`
	PasswordHash string `gorm:"size:255;not null"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
