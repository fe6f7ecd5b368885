package layout

import (
	"strconv"
	"time"

	"ruzgar-backend/internal/models"
)

// Eksik sayısal alanlar için konumsal varsayılanlar.
const (
	defaultShelfWidth  = 20.0
	defaultShelfHeight = 15.0
	defaultShelfY      = 10.0
)

func defaultShelfX(index int) float64 {
	return 10 + float64(index)*25
}

// DefaultLayout depo haritasının sabit 9 raflı açılış düzeni: A–G rafları
// artı iki ortak alan.
func DefaultLayout(now time.Time) *models.WarehouseLayout {
	return &models.WarehouseLayout{
		ID:   models.DefaultLayoutID,
		Name: "Rüzgar Depo",
		Shelves: models.ShelfLayoutList{
			{ID: "A", X: 5, Y: 8, Width: 18, Height: 14},
			{ID: "B", X: 28, Y: 8, Width: 18, Height: 14},
			{ID: "C", X: 51, Y: 8, Width: 18, Height: 14},
			{ID: "D", X: 74, Y: 8, Width: 18, Height: 14},
			{ID: "E", X: 5, Y: 40, Width: 18, Height: 14},
			{ID: "F", X: 28, Y: 40, Width: 18, Height: 14},
			{ID: "G", X: 51, Y: 40, Width: 18, Height: 14},
			{ID: "orta alan", X: 74, Y: 40, Width: 21, Height: 26, IsCommonArea: true},
			{ID: "arka alan", X: 5, Y: 72, Width: 64, Height: 20, IsCommonArea: true},
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// defaultShelves geçersiz raf koleksiyonu geldiğinde kullanılan üç raflı
// yedek düzen.
func defaultShelves() models.ShelfLayoutList {
	shelves := make(models.ShelfLayoutList, 0, 3)
	for i, id := range []string{"A", "B", "C"} {
		shelves = append(shelves, models.ShelfLayout{
			ID:     id,
			X:      defaultShelfX(i),
			Y:      defaultShelfY,
			Width:  defaultShelfWidth,
			Height: defaultShelfHeight,
		})
	}
	return shelves
}

// NextShelfID boş olan ilk tek harfli raf kimliğini üretir, harfler
// tükenirse sayısal kimliklere düşer.
func NextShelfID(layout *models.WarehouseLayout) string {
	used := make(map[string]bool, len(layout.Shelves))
	for _, shelf := range layout.Shelves {
		used[shelf.ID] = true
	}
	for ch := 'A'; ch <= 'Z'; ch++ {
		id := string(ch)
		if !used[id] {
			return id
		}
	}
	for i := 1; ; i++ {
		id := strconv.Itoa(i)
		if !used[id] {
			return id
		}
	}
}
