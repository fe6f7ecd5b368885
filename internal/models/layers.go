package models

// Katman adları raflara göre iki şekilde belirlenir: normal raflar üç katlı
// varsayılan seti kullanır, bilinen ortak alanlar kendi sabit setlerini alır.
// Bir rafın CustomLayers listesi doluysa her zaman o kazanır (sıra anlamlıdır,
// ilk giriş arayüzde varsayılan aktif katmandır).

var DefaultLayers = []string{"üst kat", "orta kat", "alt kat"}

var CommonAreaLayers = map[string][]string{
	"orta alan": {"kesim alanı", "paketleme alanı", "palet sahası", "kasa bölümü", "sevkiyat alanı"},
	"arka alan": {"yedek parça", "hurda bölümü", "iade sahası"},
}

// ResolveLayers bir rafın geçerli katman listesini döndürür: önce rafın kendi
// özel listesi, sonra ortak alan setleri, en son üç katlı varsayılan.
func ResolveLayers(shelfID string, layout *WarehouseLayout) []string {
	if shelf := layout.FindShelf(shelfID); shelf != nil && len(shelf.CustomLayers) > 0 {
		return shelf.CustomLayers
	}
	if layers, ok := CommonAreaLayers[shelfID]; ok {
		return layers
	}
	return DefaultLayers
}

// LayerVocabulary bir raf için bilinen bütün katman adlarının birleşimi:
// varsayılan set, ortak alan setleri ve rafın özel katmanları. Katmanı sonradan
// yeniden adlandırılmış ürünler de ancak bu tam liste taranarak bulunabilir.
func LayerVocabulary(shelfID string, layout *WarehouseLayout) []string {
	seen := make(map[string]bool)
	var all []string
	appendLayers := func(layers []string) {
		for _, layer := range layers {
			if !seen[layer] {
				seen[layer] = true
				all = append(all, layer)
			}
		}
	}

	appendLayers(DefaultLayers)
	for _, layers := range [][]string{CommonAreaLayers["orta alan"], CommonAreaLayers["arka alan"]} {
		appendLayers(layers)
	}
	if shelf := layout.FindShelf(shelfID); shelf != nil {
		appendLayers(shelf.CustomLayers)
	}

	return all
}
