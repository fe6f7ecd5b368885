package layout

import (
	"testing"
	"time"

	"ruzgar-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLayoutFillsMissingDimensions(t *testing.T) {
	raw := []byte(`{"id":"default","shelves":[{"id":"A","x":5,"y":8}]}`)

	layout, notes := ParseLayout(raw, time.Now())
	require.Len(t, layout.Shelves, 1)

	shelf := layout.Shelves[0]
	assert.Equal(t, 5.0, shelf.X)
	assert.Equal(t, 8.0, shelf.Y)
	assert.Equal(t, 20.0, shelf.Width)
	assert.Equal(t, 15.0, shelf.Height)
	assert.Equal(t, 0, shelf.Rotation)
	assert.NotEmpty(t, notes)
}

func TestParseLayoutPositionalDefaults(t *testing.T) {
	raw := []byte(`{"shelves":[{"id":"A"},{"id":"B"},{"id":"C"}]}`)

	layout, _ := ParseLayout(raw, time.Now())
	require.Len(t, layout.Shelves, 3)

	for i, shelf := range layout.Shelves {
		assert.Equal(t, 10+float64(i)*25, shelf.X)
		assert.Equal(t, 10.0, shelf.Y)
	}
}

func TestParseLayoutObjectShapedShelves(t *testing.T) {
	// Obje şeklinde koleksiyon: belge sırası korunarak listeye çevrilir.
	raw := []byte(`{"shelves":{"s1":{"id":"B","x":1,"y":2,"width":3,"height":4,"rotation":90},"s2":{"id":"A","x":5,"y":6,"width":7,"height":8,"rotation":0}}}`)

	layout, notes := ParseLayout(raw, time.Now())
	require.Len(t, layout.Shelves, 2)
	assert.Equal(t, "B", layout.Shelves[0].ID)
	assert.Equal(t, "A", layout.Shelves[1].ID)
	assert.Equal(t, 90, layout.Shelves[0].Rotation)
	assert.Contains(t, notes, "raf koleksiyonu obje olarak geldi, listeye çevrildi")
}

func TestParseLayoutMalformedShelvesFallsBackToDefault(t *testing.T) {
	for _, raw := range [][]byte{
		[]byte(`{"shelves":"bozuk"}`),
		[]byte(`{"shelves":42}`),
		[]byte(`{}`),
		[]byte(`çöp`),
	} {
		layout, notes := ParseLayout(raw, time.Now())
		require.Len(t, layout.Shelves, 3, "girdi: %s", raw)
		assert.Equal(t, "A", layout.Shelves[0].ID)
		assert.Equal(t, "B", layout.Shelves[1].ID)
		assert.Equal(t, "C", layout.Shelves[2].ID)
		assert.NotEmpty(t, notes)
	}
}

func TestParseLayoutInvalidRotation(t *testing.T) {
	raw := []byte(`{"shelves":[{"id":"A","x":1,"y":2,"width":3,"height":4,"rotation":45}]}`)

	layout, _ := ParseLayout(raw, time.Now())
	require.Len(t, layout.Shelves, 1)
	assert.Equal(t, 0, layout.Shelves[0].Rotation)
}

func TestParseLayoutCustomLayersPreserved(t *testing.T) {
	raw := []byte(`{"shelves":[{"id":"A","x":1,"y":2,"width":3,"height":4,"rotation":0,"customLayers":["raf üstü","çekmece",7,"zemin"]}]}`)

	layout, _ := ParseLayout(raw, time.Now())
	require.Len(t, layout.Shelves, 1)
	// String olmayan girişler atlanır, sıra korunur.
	assert.Equal(t, []string{"raf üstü", "çekmece", "zemin"}, layout.Shelves[0].CustomLayers)
}

func TestParseLayoutAssignsMissingShelfIDs(t *testing.T) {
	raw := []byte(`{"shelves":[{"id":"A","x":1,"y":2,"width":3,"height":4,"rotation":0},{"x":1,"y":2,"width":3,"height":4,"rotation":0}]}`)

	layout, _ := ParseLayout(raw, time.Now())
	require.Len(t, layout.Shelves, 2)
	assert.Equal(t, "A", layout.Shelves[0].ID)
	assert.Equal(t, "B", layout.Shelves[1].ID)
}

func TestNextShelfID(t *testing.T) {
	layout := &models.WarehouseLayout{Shelves: models.ShelfLayoutList{
		{ID: "A"}, {ID: "B"}, {ID: "D"},
	}}
	assert.Equal(t, "C", NextShelfID(layout))

	// Bütün harfler doluysa sayısal kimliklere düşer.
	full := &models.WarehouseLayout{}
	for ch := 'A'; ch <= 'Z'; ch++ {
		full.Shelves = append(full.Shelves, models.ShelfLayout{ID: string(ch)})
	}
	assert.Equal(t, "1", NextShelfID(full))
}
