package layout

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"ruzgar-backend/internal/models"
)

// ParseLayout güvenilmeyen bir layout gövdesini doğrular ve normalize eder.
// Reddetmek yerine onarır: raf koleksiyonu yoksa veya bozuksa üç raflı
// varsayılan düzen konur, obje şeklinde gelen koleksiyon belge sırası
// korunarak listeye çevrilir, eksik ya da geçersiz sayısal alanlar konumsal
// varsayılanlarla doldurulur. Uygulanan her onarım notes listesinde geri
// döner; böylece bozuk girdi testte ve logda görünür kalır.
func ParseLayout(raw []byte, now time.Time) (*models.WarehouseLayout, []string) {
	var notes []string

	var payload map[string]json.RawMessage
	if err := json.Unmarshal(raw, &payload); err != nil {
		payload = nil
		notes = append(notes, "gövde çözümlenemedi, tamamen varsayılan düzen kullanıldı")
	}

	layout := &models.WarehouseLayout{
		ID:        models.DefaultLayoutID,
		Name:      "Rüzgar Depo",
		CreatedAt: now,
		UpdatedAt: now,
	}

	if rawID, ok := payload["id"]; ok {
		var id string
		if err := json.Unmarshal(rawID, &id); err == nil && id != "" {
			layout.ID = id
		}
	}
	if rawName, ok := payload["name"]; ok {
		var name string
		if err := json.Unmarshal(rawName, &name); err == nil && name != "" {
			layout.Name = name
		}
	}
	if rawCreated, ok := payload["createdAt"]; ok {
		var created time.Time
		if err := json.Unmarshal(rawCreated, &created); err == nil && !created.IsZero() {
			layout.CreatedAt = created
		}
	}

	shelves, shelfNotes := parseShelves(payload["shelves"])
	notes = append(notes, shelfNotes...)
	layout.Shelves = shelves

	return layout, notes
}

// parseShelves raf koleksiyonunu çözer: dizi ya da anahtarlı obje kabul
// edilir, obje belge sırasıyla diziye çevrilir.
func parseShelves(raw json.RawMessage) (models.ShelfLayoutList, []string) {
	var notes []string

	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return defaultShelves(), []string{"raf koleksiyonu yok, üç raflı varsayılan düzen kullanıldı"}
	}

	var entries []map[string]any
	switch trimmed[0] {
	case '[':
		var rows []map[string]any
		if err := json.Unmarshal(trimmed, &rows); err != nil {
			return defaultShelves(), []string{"raf koleksiyonu bozuk, üç raflı varsayılan düzen kullanıldı"}
		}
		entries = rows
	case '{':
		rows, err := decodeShelfObject(trimmed)
		if err != nil {
			return defaultShelves(), []string{"raf koleksiyonu bozuk, üç raflı varsayılan düzen kullanıldı"}
		}
		entries = rows
		notes = append(notes, "raf koleksiyonu obje olarak geldi, listeye çevrildi")
	default:
		return defaultShelves(), []string{"raf koleksiyonu bozuk, üç raflı varsayılan düzen kullanıldı"}
	}

	shelves := make(models.ShelfLayoutList, 0, len(entries))
	layout := &models.WarehouseLayout{}
	for i, entry := range entries {
		shelf, shelfNotes := normalizeShelf(entry, i)
		if shelf.ID == "" {
			layout.Shelves = shelves
			shelf.ID = NextShelfID(layout)
			shelfNotes = append(shelfNotes, fmt.Sprintf("%d. rafa kimlik atandı: %s", i+1, shelf.ID))
		}
		shelves = append(shelves, shelf)
		notes = append(notes, shelfNotes...)
	}
	if len(shelves) == 0 {
		return defaultShelves(), append(notes, "raf koleksiyonu boş, üç raflı varsayılan düzen kullanıldı")
	}

	return shelves, notes
}

// decodeShelfObject obje şeklindeki koleksiyonu belge sırasını koruyarak
// okur; map'e çevirip dolaşmak sırayı kaybederdi.
func decodeShelfObject(raw []byte) ([]map[string]any, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))

	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("obje bekleniyordu")
	}

	var rows []map[string]any
	for dec.More() {
		if _, err := dec.Token(); err != nil { // anahtar
			return nil, err
		}
		var row map[string]any
		if err := dec.Decode(&row); err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func normalizeShelf(entry map[string]any, index int) (models.ShelfLayout, []string) {
	var notes []string

	shelf := models.ShelfLayout{}
	if id, ok := entry["id"].(string); ok {
		shelf.ID = id
	}

	numeric := func(field string, def float64) float64 {
		if v, ok := entry[field].(float64); ok {
			return v
		}
		notes = append(notes, fmt.Sprintf("raf %q: %s alanı eksik/geçersiz, %.0f kullanıldı", shelf.ID, field, def))
		return def
	}

	shelf.X = numeric("x", defaultShelfX(index))
	shelf.Y = numeric("y", defaultShelfY)
	shelf.Width = numeric("width", defaultShelfWidth)
	shelf.Height = numeric("height", defaultShelfHeight)

	rotation := numeric("rotation", 0)
	switch int(rotation) {
	case 0, 90, 180, 270:
		shelf.Rotation = int(rotation)
	default:
		notes = append(notes, fmt.Sprintf("raf %q: rotation %v geçersiz, 0 kullanıldı", shelf.ID, rotation))
		shelf.Rotation = 0
	}

	if isCommon, ok := entry["isCommonArea"].(bool); ok {
		shelf.IsCommonArea = isCommon
	}

	if rawLayers, ok := entry["customLayers"].([]any); ok {
		for _, rawLayer := range rawLayers {
			if layer, ok := rawLayer.(string); ok && layer != "" {
				shelf.CustomLayers = append(shelf.CustomLayers, layer)
			}
		}
	}

	return shelf, notes
}
