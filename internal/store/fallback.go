package store

import (
	"context"
	"sync"
	"time"

	"ruzgar-backend/internal/models"

	"go.uber.org/zap"
)

// Storage modes reported by Fallback.Mode.
const (
	ModeDurable = "durable"
	ModeMemory  = "memory"
)

// Fallback wraps a durable primary store with an in-memory fallback. Instead
// of probing the primary on every call, it keeps a cached health state: the
// first failing operation (or a failed startup Ping) flips it into memory
// mode, and the primary is re-probed at most once per probe interval. The
// current mode is observable through Mode, so degradation is visible to
// callers instead of silently flapping call by call.
type Fallback struct {
	primary Store // nil means memory-only deployment
	memory  *Memory
	logger  *zap.Logger

	probeInterval time.Duration
	now           func() time.Time

	mu        sync.Mutex
	healthy   bool
	lastProbe time.Time
}

func NewFallback(primary Store, memory *Memory, logger *zap.Logger, probeInterval time.Duration) *Fallback {
	f := &Fallback{
		primary:       primary,
		memory:        memory,
		logger:        logger,
		probeInterval: probeInterval,
		now:           time.Now,
	}
	if primary != nil {
		if err := primary.Ping(context.Background()); err != nil {
			logger.Warn("birincil depoya ulaşılamıyor, bellek içi depoya geçildi", zap.Error(err))
		} else {
			f.healthy = true
		}
		f.lastProbe = f.now()
	}
	return f
}

// Mode returns the current storage mode: durable or memory.
func (f *Fallback) Mode() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.primary != nil && f.healthy {
		return ModeDurable
	}
	return ModeMemory
}

// pick returns the primary store if it is considered healthy, re-probing it
// when the probe interval has elapsed. Returns nil when the memory store
// should be used.
func (f *Fallback) pick(ctx context.Context) Store {
	if f.primary == nil {
		return nil
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if f.healthy {
		return f.primary
	}
	if f.now().Sub(f.lastProbe) < f.probeInterval {
		return nil
	}
	f.lastProbe = f.now()
	if err := f.primary.Ping(ctx); err != nil {
		f.logger.Debug("birincil depo hala erişilemez durumda", zap.Error(err))
		return nil
	}
	f.healthy = true
	f.logger.Info("birincil depo tekrar erişilebilir, kalıcı moda dönüldü")
	return f.primary
}

func (f *Fallback) markDown(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.healthy {
		f.healthy = false
		f.lastProbe = f.now()
		f.logger.Warn("birincil depo hatası, bellek içi depoya düşüldü", zap.Error(err))
	}
}

// call runs op against the primary when healthy and degrades to the memory
// store on any primary error. Memory errors (there are none in practice)
// are returned as-is.
func call[T any](f *Fallback, ctx context.Context, op func(Store) (T, error)) (T, error) {
	if primary := f.pick(ctx); primary != nil {
		v, err := op(primary)
		if err == nil {
			return v, nil
		}
		f.markDown(err)
	}
	return op(f.memory)
}

func (f *Fallback) Ping(ctx context.Context) error {
	if primary := f.pick(ctx); primary != nil {
		return primary.Ping(ctx)
	}
	return f.memory.Ping(ctx)
}

func (f *Fallback) GetProduct(ctx context.Context, id string) (*models.Product, error) {
	return call(f, ctx, func(s Store) (*models.Product, error) { return s.GetProduct(ctx, id) })
}

func (f *Fallback) ListProducts(ctx context.Context, shelf, layer string) ([]models.Product, error) {
	return call(f, ctx, func(s Store) ([]models.Product, error) { return s.ListProducts(ctx, shelf, layer) })
}

func (f *Fallback) ListAllProducts(ctx context.Context) ([]models.Product, error) {
	return call(f, ctx, func(s Store) ([]models.Product, error) { return s.ListAllProducts(ctx) })
}

func (f *Fallback) UpsertProduct(ctx context.Context, p *models.Product) error {
	_, err := call(f, ctx, func(s Store) (struct{}, error) { return struct{}{}, s.UpsertProduct(ctx, p) })
	return err
}

func (f *Fallback) DeleteProduct(ctx context.Context, p *models.Product) (bool, error) {
	return call(f, ctx, func(s Store) (bool, error) { return s.DeleteProduct(ctx, p) })
}

func (f *Fallback) CountProducts(ctx context.Context, shelf, layer string) (int64, error) {
	return call(f, ctx, func(s Store) (int64, error) { return s.CountProducts(ctx, shelf, layer) })
}

func (f *Fallback) AppendLog(ctx context.Context, entry *models.TransactionLog) error {
	_, err := call(f, ctx, func(s Store) (struct{}, error) { return struct{}{}, s.AppendLog(ctx, entry) })
	return err
}

func (f *Fallback) ListLogs(ctx context.Context) ([]models.TransactionLog, error) {
	return call(f, ctx, func(s Store) ([]models.TransactionLog, error) { return s.ListLogs(ctx) })
}

func (f *Fallback) GetLayout(ctx context.Context, id string) (*models.WarehouseLayout, error) {
	return call(f, ctx, func(s Store) (*models.WarehouseLayout, error) { return s.GetLayout(ctx, id) })
}

func (f *Fallback) PutLayout(ctx context.Context, layout *models.WarehouseLayout) error {
	_, err := call(f, ctx, func(s Store) (struct{}, error) { return struct{}{}, s.PutLayout(ctx, layout) })
	return err
}

func (f *Fallback) GetPasswordHash(ctx context.Context) (string, error) {
	return call(f, ctx, func(s Store) (string, error) { return s.GetPasswordHash(ctx) })
}

func (f *Fallback) SetPasswordHash(ctx context.Context, hash string) error {
	_, err := call(f, ctx, func(s Store) (struct{}, error) { return struct{}{}, s.SetPasswordHash(ctx, hash) })
	return err
}
