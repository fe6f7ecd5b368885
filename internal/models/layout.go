package models

import (
	"database/sql/driver"
	"encoding/json"
	"time"
)

// DefaultLayoutID tek depo kurulumunda kullanılan singleton layout kimliği.
const DefaultLayoutID = "default"

// ShelfLayout depo haritasında dikdörtgen bir raf bölgesi. ID aynı zamanda
// görünen etikettir; x/y/width/height yüzde cinsinden, rotation 0/90/180/270.
type ShelfLayout struct {
	ID           string   `json:"id"`
	X            float64  `json:"x"`
	Y            float64  `json:"y"`
	Width        float64  `json:"width"`
	Height       float64  `json:"height"`
	Rotation     int      `json:"rotation"`
	IsCommonArea bool     `json:"isCommonArea"`
	CustomLayers []string `json:"customLayers,omitempty"`
}

type ShelfLayoutList []ShelfLayout

// WarehouseLayout aggregate kökü: depo haritasının tamamı. Storage katmanında
// her zaman bütün olarak okunur/yazılır, kısmi raf güncellemesi yoktur.
type WarehouseLayout struct {
	ID        string          `gorm:"primaryKey;size:64" json:"id"`
	Name      string          `gorm:"size:100" json:"name"`
	Shelves   ShelfLayoutList `gorm:"type:jsonb" json:"shelves"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

// FindShelf returns the shelf with the given id, or nil.
func (w *WarehouseLayout) FindShelf(shelfID string) *ShelfLayout {
	if w == nil {
		return nil
	}
	for i := range w.Shelves {
		if w.Shelves[i].ID == shelfID {
			return &w.Shelves[i]
		}
	}
	return nil
}

func (l ShelfLayoutList) Value() (driver.Value, error) {
	if l == nil {
		l = ShelfLayoutList{}
	}
	return json.Marshal(l)
}

func (l *ShelfLayoutList) Scan(value any) error {
	return scanJSON(value, l)
}
