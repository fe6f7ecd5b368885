package inventory

import (
	"context"
	"testing"

	"ruzgar-backend/internal/models"
	"ruzgar-backend/internal/store"
	"ruzgar-backend/internal/txlog"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestRepo(t *testing.T) (*Repository, *txlog.Repository, *store.Memory) {
	t.Helper()
	mem := store.NewMemory()
	logs := txlog.NewRepository(mem, zap.NewNop())
	return NewRepository(mem, logs, zap.NewNop()), logs, mem
}

func boltProduct() models.Product {
	return models.Product{
		ID:       "p1",
		Name:     "M8 Bolt",
		Category: models.CategoryBolt,
		Size:     "M8x20",
		Shelf:    "A",
		Layer:    "üst kat",
		Kilogram: 0.5,
		Notes:    "",
	}
}

func TestSaveThenListRoundTrip(t *testing.T) {
	repo, _, _ := newTestRepo(t)
	ctx := context.Background()

	p := boltProduct()
	require.True(t, repo.Save(ctx, p, "alice", nil))

	list := repo.ListByShelfAndLayer(ctx, "A", "üst kat")
	require.Len(t, list, 1)
	assert.Equal(t, p.ID, list[0].ID)
	assert.Equal(t, p.Name, list[0].Name)
	assert.Equal(t, p.Category, list[0].Category)
	assert.Equal(t, p.Kilogram, list[0].Kilogram)
	assert.False(t, list[0].CreatedAt.IsZero())
}

func TestCreateWritesSnapshotLog(t *testing.T) {
	repo, logs, _ := newTestRepo(t)
	ctx := context.Background()

	require.True(t, repo.Save(ctx, boltProduct(), "alice", nil))

	entries := logs.ListAll(ctx)
	require.Len(t, entries, 1)
	entry := entries[0]
	assert.Equal(t, models.ActionCreate, entry.ActionType)
	assert.Equal(t, "alice", entry.Username)
	assert.Equal(t, "A", entry.Shelf)
	assert.Equal(t, "üst kat", entry.Layer)
	assert.Empty(t, entry.Changes)
	require.NotNil(t, entry.ProductDetails)
	assert.Equal(t, "p1", entry.ProductDetails.ID)
	assert.Equal(t, 0.5, entry.ProductDetails.Kilogram)
	assert.Nil(t, entry.SessionInfo)
}

func TestUpdateDiffSingleField(t *testing.T) {
	repo, logs, _ := newTestRepo(t)
	ctx := context.Background()

	p := boltProduct()
	require.True(t, repo.Save(ctx, p, "alice", nil))

	p.Notes = "paslanmaz"
	require.True(t, repo.Save(ctx, p, "bob", nil))

	entries := logs.ListAll(ctx)
	require.Len(t, entries, 2)
	update := entries[0]
	assert.Equal(t, models.ActionUpdate, update.ActionType)
	assert.Equal(t, "bob", update.Username)
	require.Len(t, update.Changes, 1)
	assert.Equal(t, "notes", update.Changes[0].Field)
	assert.Equal(t, "", update.Changes[0].OldValue)
	assert.Equal(t, "paslanmaz", update.Changes[0].NewValue)
	assert.Nil(t, update.ProductDetails)
}

func TestNoOpUpdateIsSilent(t *testing.T) {
	repo, logs, _ := newTestRepo(t)
	ctx := context.Background()

	p := boltProduct()
	require.True(t, repo.Save(ctx, p, "alice", nil))
	require.Len(t, logs.ListAll(ctx), 1)

	// Birebir aynı kayıt: yeni log girişi oluşmamalı.
	require.True(t, repo.Save(ctx, p, "alice", nil))
	assert.Len(t, logs.ListAll(ctx), 1)
}

func TestUpdateHintIsTrusted(t *testing.T) {
	repo, logs, _ := newTestRepo(t)
	ctx := context.Background()

	// Hint false: mevcut olmayan ürün yeni kayıt olarak loglanır.
	isUpdate := false
	require.True(t, repo.Save(ctx, boltProduct(), "alice", &isUpdate))

	entries := logs.ListAll(ctx)
	require.Len(t, entries, 1)
	assert.Equal(t, models.ActionCreate, entries[0].ActionType)
}

func TestDeleteRemovesAndLogsSnapshot(t *testing.T) {
	repo, logs, _ := newTestRepo(t)
	ctx := context.Background()

	p := boltProduct()
	require.True(t, repo.Save(ctx, p, "alice", nil))
	require.True(t, repo.Delete(ctx, p, "alice"))

	assert.Empty(t, repo.ListByShelfAndLayer(ctx, "A", "üst kat"))

	entries := logs.ListAll(ctx)
	require.Len(t, entries, 2)
	del := entries[0]
	assert.Equal(t, models.ActionDelete, del.ActionType)
	require.NotNil(t, del.ProductDetails)
	assert.Equal(t, "p1", del.ProductDetails.ID)
}

func TestDeleteMissingProductReturnsFalse(t *testing.T) {
	repo, logs, _ := newTestRepo(t)
	ctx := context.Background()

	assert.False(t, repo.Delete(ctx, boltProduct(), "alice"))
	assert.Empty(t, logs.ListAll(ctx))
}

func TestShelfLayerMoveCleansOldPartition(t *testing.T) {
	repo, _, mem := newTestRepo(t)
	ctx := context.Background()

	p := boltProduct()
	require.True(t, repo.Save(ctx, p, "alice", nil))

	p.Layer = "alt kat"
	require.True(t, repo.Save(ctx, p, "alice", nil))

	old, err := mem.ListProducts(ctx, "A", "üst kat")
	require.NoError(t, err)
	assert.Empty(t, old)

	moved := repo.ListByShelfAndLayer(ctx, "A", "alt kat")
	require.Len(t, moved, 1)
	assert.Equal(t, "p1", moved[0].ID)
}

// Senaryo: alice oluşturur, bob ağırlığı günceller, alice siler.
func TestCreateUpdateDeleteScenario(t *testing.T) {
	repo, logs, _ := newTestRepo(t)
	ctx := context.Background()

	p := boltProduct()
	require.True(t, repo.Save(ctx, p, "alice", nil))

	p.Kilogram = 0.6
	require.True(t, repo.Save(ctx, p, "bob", nil))

	require.True(t, repo.Delete(ctx, p, "alice"))

	entries := logs.ListAll(ctx)
	require.Len(t, entries, 3)

	del, update, create := entries[0], entries[1], entries[2]

	assert.Equal(t, models.ActionCreate, create.ActionType)
	require.NotNil(t, create.ProductDetails)
	assert.Equal(t, 0.5, create.ProductDetails.Kilogram)

	assert.Equal(t, models.ActionUpdate, update.ActionType)
	assert.Equal(t, "bob", update.Username)
	require.Len(t, update.Changes, 1)
	assert.Equal(t, "kilogram", update.Changes[0].Field)
	assert.Equal(t, 0.5, update.Changes[0].OldValue)
	assert.Equal(t, 0.6, update.Changes[0].NewValue)

	assert.Equal(t, models.ActionDelete, del.ActionType)
	assert.Equal(t, "alice", del.Username)
	require.NotNil(t, del.ProductDetails)
	assert.Equal(t, 0.6, del.ProductDetails.Kilogram)

	assert.Empty(t, repo.ListByShelfAndLayer(ctx, "A", "üst kat"))
}
