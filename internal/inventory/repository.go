package inventory

import (
	"context"
	"sync"
	"time"

	"ruzgar-backend/internal/models"
	"ruzgar-backend/internal/store"
	"ruzgar-backend/internal/txlog"

	"go.uber.org/zap"
)

// Repository is the inventory facade: it reads and writes products through
// the (fallback-wrapped) store and emits transaction log entries for every
// effective mutation. Log append failures never fail the inventory
// operation.
type Repository struct {
	store  store.Store
	logs   *txlog.Repository
	logger *zap.Logger

	// mu serializes the read-diff-write sequence of Save/Delete so two
	// concurrent saves in this process cannot compute diffs against state
	// the other has already replaced. Cross-process writers still race at
	// last-write-wins granularity.
	mu sync.Mutex
}

func NewRepository(st store.Store, logs *txlog.Repository, logger *zap.Logger) *Repository {
	return &Repository{store: st, logs: logs, logger: logger}
}

// ListByShelfAndLayer never fails; on store errors the facade has already
// degraded, and any residual error yields an empty list.
func (r *Repository) ListByShelfAndLayer(ctx context.Context, shelf, layer string) []models.Product {
	products, err := r.store.ListProducts(ctx, shelf, layer)
	if err != nil {
		r.logger.Error("ürünler listelenemedi", zap.String("shelf", shelf), zap.String("layer", layer), zap.Error(err))
		return []models.Product{}
	}
	if products == nil {
		products = []models.Product{}
	}
	return products
}

func (r *Repository) ListAll(ctx context.Context) []models.Product {
	products, err := r.store.ListAllProducts(ctx)
	if err != nil {
		r.logger.Error("ürünler listelenemedi", zap.Error(err))
		return []models.Product{}
	}
	if products == nil {
		products = []models.Product{}
	}
	return products
}

// Exists reports whether a product with the given id is currently stored.
func (r *Repository) Exists(ctx context.Context, id string) bool {
	p, err := r.store.GetProduct(ctx, id)
	return err == nil && p != nil
}

// Save upserts by id. Update-vs-create: the hint wins when supplied,
// otherwise a product existing under the same id means update. No-op
// updates (empty diff) are silent: no write to the log. Returns false only
// when the underlying write itself fails after the fallback is exhausted.
func (r *Repository) Save(ctx context.Context, p models.Product, actingUser string, isUpdateHint *bool) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, err := r.store.GetProduct(ctx, p.ID)
	if err != nil {
		r.logger.Error("mevcut ürün okunamadı", zap.String("id", p.ID), zap.Error(err))
	}

	isUpdate := existing != nil
	if isUpdateHint != nil {
		isUpdate = *isUpdateHint
	}

	var changes []models.FieldChange
	if isUpdate && existing != nil {
		changes = models.DiffProducts(existing, &p)
		if len(changes) == 0 {
			return true
		}
		if p.CreatedAt.IsZero() {
			p.CreatedAt = existing.CreatedAt
		}
		// Raf/katman değiştiyse eski bölümdeki kayıt kaldırılır, aksi halde
		// key-value backend iki kopya tutar.
		if existing.Shelf != p.Shelf || existing.Layer != p.Layer {
			if _, err := r.store.DeleteProduct(ctx, existing); err != nil {
				r.logger.Error("eski bölümdeki ürün kaldırılamadı", zap.String("id", p.ID), zap.Error(err))
			}
		}
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now()
	}

	if err := r.store.UpsertProduct(ctx, &p); err != nil {
		r.logger.Error("ürün kaydedilemedi", zap.String("id", p.ID), zap.Error(err))
		return false
	}

	entry := &models.TransactionLog{
		Shelf:       p.Shelf,
		Layer:       p.Layer,
		ProductName: p.Name,
		Username:    actingUser,
	}
	if isUpdate && existing != nil {
		entry.ActionType = models.ActionUpdate
		entry.Changes = changes
	} else {
		entry.ActionType = models.ActionCreate
		detail := models.ProductDetail(p)
		entry.ProductDetails = &detail
	}
	r.logs.Append(ctx, entry)

	return true
}

// Delete removes by id; false when the product was not found. A successful
// delete logs a snapshot of the removed product.
func (r *Repository) Delete(ctx context.Context, p models.Product, actingUser string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	// Log kaydına en güncel hali girsin diye depodaki kopyayı tercih et.
	stored, err := r.store.GetProduct(ctx, p.ID)
	if err != nil {
		r.logger.Error("mevcut ürün okunamadı", zap.String("id", p.ID), zap.Error(err))
	}
	if stored != nil {
		p = *stored
	}

	found, err := r.store.DeleteProduct(ctx, &p)
	if err != nil {
		r.logger.Error("ürün silinemedi", zap.String("id", p.ID), zap.Error(err))
		return false
	}
	if !found {
		return false
	}

	detail := models.ProductDetail(p)
	r.logs.Append(ctx, &models.TransactionLog{
		ActionType:     models.ActionDelete,
		Shelf:          p.Shelf,
		Layer:          p.Layer,
		ProductName:    p.Name,
		Username:       actingUser,
		ProductDetails: &detail,
	})

	return true
}
