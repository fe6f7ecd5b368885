package store

import (
	"context"
	"sort"
	"sync"

	"ruzgar-backend/internal/models"
)

// Memory is the in-memory stand-in used whenever the durable store is
// unreachable, and as the primary store in tests. State lives for the
// lifetime of the process. Instances are explicitly constructed and
// injectable; there is no package-level singleton.
type Memory struct {
	mu       sync.RWMutex
	products map[string]models.Product // id -> product
	logs     []models.TransactionLog   // newest first
	layouts  map[string]models.WarehouseLayout
	password string
}

func NewMemory() *Memory {
	return &Memory{
		products: make(map[string]models.Product),
		layouts:  make(map[string]models.WarehouseLayout),
	}
}

func (m *Memory) Ping(ctx context.Context) error {
	return nil
}

func (m *Memory) GetProduct(ctx context.Context, id string) (*models.Product, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if p, ok := m.products[id]; ok {
		return &p, nil
	}
	return nil, nil
}

func (m *Memory) ListProducts(ctx context.Context, shelf, layer string) ([]models.Product, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []models.Product
	for _, p := range m.products {
		if p.Shelf == shelf && p.Layer == layer {
			out = append(out, p)
		}
	}
	sortProducts(out)
	return out, nil
}

func (m *Memory) ListAllProducts(ctx context.Context) ([]models.Product, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]models.Product, 0, len(m.products))
	for _, p := range m.products {
		out = append(out, p)
	}
	sortProducts(out)
	return out, nil
}

func (m *Memory) UpsertProduct(ctx context.Context, p *models.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.products[p.ID] = *p
	return nil
}

func (m *Memory) DeleteProduct(ctx context.Context, p *models.Product) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.products[p.ID]; !ok {
		return false, nil
	}
	delete(m.products, p.ID)
	return true, nil
}

func (m *Memory) CountProducts(ctx context.Context, shelf, layer string) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var n int64
	for _, p := range m.products {
		if p.Shelf == shelf && p.Layer == layer {
			n++
		}
	}
	return n, nil
}

func (m *Memory) AppendLog(ctx context.Context, entry *models.TransactionLog) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.logs = append([]models.TransactionLog{*entry}, m.logs...)
	if len(m.logs) > LogCap {
		m.logs = m.logs[:LogCap]
	}
	return nil
}

func (m *Memory) ListLogs(ctx context.Context) ([]models.TransactionLog, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]models.TransactionLog, len(m.logs))
	copy(out, m.logs)
	return out, nil
}

func (m *Memory) GetLayout(ctx context.Context, id string) (*models.WarehouseLayout, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if layout, ok := m.layouts[id]; ok {
		copied := layout
		copied.Shelves = append(models.ShelfLayoutList(nil), layout.Shelves...)
		return &copied, nil
	}
	return nil, nil
}

func (m *Memory) PutLayout(ctx context.Context, layout *models.WarehouseLayout) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	copied := *layout
	copied.Shelves = append(models.ShelfLayoutList(nil), layout.Shelves...)
	m.layouts[layout.ID] = copied
	return nil
}

func (m *Memory) GetPasswordHash(ctx context.Context) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.password, nil
}

func (m *Memory) SetPasswordHash(ctx context.Context, hash string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.password = hash
	return nil
}

// sortProducts keeps listings deterministic: oldest first, id as tiebreaker.
func sortProducts(products []models.Product) {
	sort.Slice(products, func(i, j int) bool {
		if !products[i].CreatedAt.Equal(products[j].CreatedAt) {
			return products[i].CreatedAt.Before(products[j].CreatedAt)
		}
		return products[i].ID < products[j].ID
	})
}
