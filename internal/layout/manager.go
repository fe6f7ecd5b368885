package layout

import (
	"context"
	"time"

	"ruzgar-backend/internal/models"
	"ruzgar-backend/internal/store"

	"go.uber.org/zap"
)

// Manager owns the WarehouseLayout aggregate. The layout is always read and
// written as a whole; every shelf mutation arrives as a full-layout
// replacement with no optimistic concurrency check, so concurrent editors
// race at whole-document last-write-wins granularity.
type Manager struct {
	store  store.Store
	logger *zap.Logger
}

func NewManager(st store.Store, logger *zap.Logger) *Manager {
	return &Manager{store: st, logger: logger}
}

// GetLayout returns the stored layout; when none exists yet the fixed
// 9-shelf default is persisted and returned.
func (m *Manager) GetLayout(ctx context.Context) *models.WarehouseLayout {
	layout, err := m.store.GetLayout(ctx, models.DefaultLayoutID)
	if err != nil {
		m.logger.Error("düzen okunamadı", zap.Error(err))
	}
	if layout != nil {
		return layout
	}

	def := DefaultLayout(time.Now())
	if err := m.store.PutLayout(ctx, def); err != nil {
		m.logger.Error("varsayılan düzen kaydedilemedi", zap.Error(err))
	}
	return def
}

// ReplaceLayout normalizes the incoming payload and persists it whole.
// Applied repairs are logged so malformed input stays observable.
func (m *Manager) ReplaceLayout(ctx context.Context, raw []byte) (*models.WarehouseLayout, bool) {
	now := time.Now()
	layout, notes := ParseLayout(raw, now)
	for _, note := range notes {
		m.logger.Warn("düzen normalize edildi", zap.String("note", note))
	}

	// CreatedAt gövdede yoksa saklanan değeri koru.
	if stored, err := m.store.GetLayout(ctx, layout.ID); err == nil && stored != nil {
		if layout.CreatedAt.Equal(now) {
			layout.CreatedAt = stored.CreatedAt
		}
	}
	layout.UpdatedAt = now

	if err := m.store.PutLayout(ctx, layout); err != nil {
		m.logger.Error("düzen kaydedilemedi", zap.Error(err))
		return nil, false
	}
	return layout, true
}

// ResetLayout overwrites the current layout with the 9-shelf default.
func (m *Manager) ResetLayout(ctx context.Context) bool {
	if err := m.store.PutLayout(ctx, DefaultLayout(time.Now())); err != nil {
		m.logger.Error("düzen sıfırlanamadı", zap.Error(err))
		return false
	}
	return true
}

// CountProductsOnShelf sums product counts across the full layer vocabulary
// for the shelf, not just its current custom layers: products left under
// renamed or removed layer names must still be counted before a shelf is
// deleted.
func (m *Manager) CountProductsOnShelf(ctx context.Context, shelfID string) int {
	layout := m.GetLayout(ctx)

	var total int64
	for _, layer := range models.LayerVocabulary(shelfID, layout) {
		n, err := m.store.CountProducts(ctx, shelfID, layer)
		if err != nil {
			m.logger.Error("ürün sayısı okunamadı",
				zap.String("shelf", shelfID), zap.String("layer", layer), zap.Error(err))
			continue
		}
		total += n
	}
	return int(total)
}

// ResolveLayersForShelf returns the shelf's custom layers verbatim when
// present, otherwise the common-area set or the three-tier default.
func (m *Manager) ResolveLayersForShelf(shelfID string, layout *models.WarehouseLayout) []string {
	return models.ResolveLayers(shelfID, layout)
}
