package store

import (
	"context"
	"errors"

	"ruzgar-backend/internal/models"
)

// LogCap is the retention cap for transaction logs on backends that trim
// (Redis and memory). The relational backend keeps everything.
const LogCap = 1000

// ErrSchemaMissing is returned by Ping when the backing store is reachable
// but its schema has not been created yet.
var ErrSchemaMissing = errors.New("depo şeması mevcut değil")

// Store is the narrow persistence contract shared by the Postgres, Redis and
// in-memory backends. Repositories never talk to a backend directly; they go
// through the Fallback facade which also implements this interface.
type Store interface {
	// Ping reports whether the backend is reachable and its schema exists.
	Ping(ctx context.Context) error

	// GetProduct returns nil, nil when the product does not exist.
	GetProduct(ctx context.Context, id string) (*models.Product, error)
	ListProducts(ctx context.Context, shelf, layer string) ([]models.Product, error)
	ListAllProducts(ctx context.Context) ([]models.Product, error)
	UpsertProduct(ctx context.Context, p *models.Product) error
	// DeleteProduct reports whether the product was found.
	DeleteProduct(ctx context.Context, p *models.Product) (bool, error)
	CountProducts(ctx context.Context, shelf, layer string) (int64, error)

	AppendLog(ctx context.Context, entry *models.TransactionLog) error
	ListLogs(ctx context.Context) ([]models.TransactionLog, error)

	// GetLayout returns nil, nil when no layout is stored under the id.
	GetLayout(ctx context.Context, id string) (*models.WarehouseLayout, error)
	PutLayout(ctx context.Context, layout *models.WarehouseLayout) error

	// GetPasswordHash returns "" when no hash has been stored yet.
	GetPasswordHash(ctx context.Context) (string, error)
	SetPasswordHash(ctx context.Context, hash string) error
}
