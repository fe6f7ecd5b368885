package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

type ActionType string

const (
	ActionCreate ActionType = "create"
	ActionUpdate ActionType = "update"
	ActionDelete ActionType = "delete"
	ActionLogin  ActionType = "login"
	ActionLogout ActionType = "logout"
)

// FieldChange bir güncellemede tek bir alanın eski/yeni değeri.
// Tek başına saklanmaz, yalnızca TransactionLog içinde gömülü yaşar.
type FieldChange struct {
	Field    string `json:"field"`
	OldValue any    `json:"oldValue"`
	NewValue any    `json:"newValue"`
}

type FieldChangeList []FieldChange

// ProductDetail ürünün log kaydına gömülen anlık görüntüsü.
type ProductDetail Product

// SessionInfo login/logout kayıtlarına eklenen oturum bilgisi.
type SessionInfo struct {
	LoginTime  string `json:"loginTime,omitempty"`
	LogoutTime string `json:"logoutTime,omitempty"`
	IPAddress  string `json:"ipAddress"`
	UserAgent  string `json:"userAgent,omitempty"`
}

// TransactionLog append-only denetim kaydı. ActionType'a göre
// Changes / ProductDetails / SessionInfo alanlarından tam olarak biri dolu olur.
type TransactionLog struct {
	ID          string     `gorm:"primaryKey;size:32" json:"id"`
	Timestamp   time.Time  `gorm:"index" json:"timestamp"`
	ActionType  ActionType `gorm:"size:20;index" json:"actionType"`
	Shelf       string     `gorm:"size:50" json:"shelf"`
	Layer       string     `gorm:"size:50" json:"layer"`
	ProductName string     `gorm:"size:100" json:"productName"`
	Username    string     `gorm:"size:100" json:"username"`

	Changes        FieldChangeList `gorm:"type:jsonb" json:"changes,omitempty"`
	ProductDetails *ProductDetail  `gorm:"type:jsonb" json:"productDetails,omitempty"`
	SessionInfo    *SessionInfo    `gorm:"type:jsonb" json:"sessionInfo,omitempty"`
}

// jsonb kolonları için Valuer/Scanner implementasyonları.

func (l FieldChangeList) Value() (driver.Value, error) {
	if len(l) == 0 {
		return nil, nil
	}
	return json.Marshal(l)
}

func (l *FieldChangeList) Scan(value any) error {
	return scanJSON(value, l)
}

func (d ProductDetail) Value() (driver.Value, error) {
	return json.Marshal(d)
}

func (d *ProductDetail) Scan(value any) error {
	return scanJSON(value, d)
}

func (s SessionInfo) Value() (driver.Value, error) {
	return json.Marshal(s)
}

func (s *SessionInfo) Scan(value any) error {
	return scanJSON(value, s)
}

func scanJSON(value, dest any) error {
	if value == nil {
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, dest)
	case string:
		return json.Unmarshal([]byte(v), dest)
	default:
		return fmt.Errorf("jsonb kolonu beklenmeyen tipte: %T", value)
	}
}
