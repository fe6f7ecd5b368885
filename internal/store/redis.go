package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"ruzgar-backend/internal/models"

	"github.com/go-redis/redis/v8"
)

const (
	productKeyPrefix = "products:"
	logsKey          = "transaction_logs"
	layoutKeyPrefix  = "warehouse_layout:"
	passwordKey      = "auth:password_hash"
)

// Redis is the key-value backend. Products are stored as one JSON list per
// shelf×layer partition, the transaction log as a single Redis list trimmed
// to LogCap, the layout as one document per id.
type Redis struct {
	client *redis.Client
}

func NewRedis(addr, password string, db int) *Redis {
	client := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     password,
		DB:           db,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})
	return &Redis{client: client}
}

func productKey(shelf, layer string) string {
	return fmt.Sprintf("%s%s:%s", productKeyPrefix, shelf, layer)
}

func (r *Redis) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func (r *Redis) readPartition(ctx context.Context, key string) ([]models.Product, error) {
	raw, err := r.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var products []models.Product
	if err := json.Unmarshal([]byte(raw), &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (r *Redis) writePartition(ctx context.Context, key string, products []models.Product) error {
	if len(products) == 0 {
		return r.client.Del(ctx, key).Err()
	}
	raw, err := json.Marshal(products)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, key, raw, 0).Err()
}

// partitionKeys enumerates every shelf×layer key. The stored layout drives
// the enumeration; without one we fall back to a key scan so that data
// written before the layout existed stays reachable.
func (r *Redis) partitionKeys(ctx context.Context) ([]string, error) {
	layout, err := r.GetLayout(ctx, models.DefaultLayoutID)
	if err != nil {
		return nil, err
	}
	if layout == nil {
		return r.client.Keys(ctx, productKeyPrefix+"*").Result()
	}

	var keys []string
	for _, shelf := range layout.Shelves {
		for _, layer := range models.LayerVocabulary(shelf.ID, layout) {
			keys = append(keys, productKey(shelf.ID, layer))
		}
	}
	return keys, nil
}

func (r *Redis) GetProduct(ctx context.Context, id string) (*models.Product, error) {
	keys, err := r.partitionKeys(ctx)
	if err != nil {
		return nil, err
	}
	for _, key := range keys {
		products, err := r.readPartition(ctx, key)
		if err != nil {
			return nil, err
		}
		for i := range products {
			if products[i].ID == id {
				return &products[i], nil
			}
		}
	}
	return nil, nil
}

func (r *Redis) ListProducts(ctx context.Context, shelf, layer string) ([]models.Product, error) {
	return r.readPartition(ctx, productKey(shelf, layer))
}

func (r *Redis) ListAllProducts(ctx context.Context) ([]models.Product, error) {
	keys, err := r.partitionKeys(ctx)
	if err != nil {
		return nil, err
	}
	var all []models.Product
	for _, key := range keys {
		products, err := r.readPartition(ctx, key)
		if err != nil {
			return nil, err
		}
		all = append(all, products...)
	}
	return all, nil
}

func (r *Redis) UpsertProduct(ctx context.Context, p *models.Product) error {
	key := productKey(p.Shelf, p.Layer)
	products, err := r.readPartition(ctx, key)
	if err != nil {
		return err
	}

	replaced := false
	for i := range products {
		if products[i].ID == p.ID {
			products[i] = *p
			replaced = true
			break
		}
	}
	if !replaced {
		products = append(products, *p)
	}
	return r.writePartition(ctx, key, products)
}

func (r *Redis) DeleteProduct(ctx context.Context, p *models.Product) (bool, error) {
	key := productKey(p.Shelf, p.Layer)
	products, err := r.readPartition(ctx, key)
	if err != nil {
		return false, err
	}

	kept := products[:0]
	found := false
	for _, existing := range products {
		if existing.ID == p.ID {
			found = true
			continue
		}
		kept = append(kept, existing)
	}
	if !found {
		return false, nil
	}
	return true, r.writePartition(ctx, key, kept)
}

func (r *Redis) CountProducts(ctx context.Context, shelf, layer string) (int64, error) {
	products, err := r.readPartition(ctx, productKey(shelf, layer))
	if err != nil {
		return 0, err
	}
	return int64(len(products)), nil
}

func (r *Redis) AppendLog(ctx context.Context, entry *models.TransactionLog) error {
	raw, err := json.Marshal(entry)
	if err != nil {
		return err
	}
	pipe := r.client.TxPipeline()
	pipe.LPush(ctx, logsKey, raw)
	pipe.LTrim(ctx, logsKey, 0, LogCap-1)
	_, err = pipe.Exec(ctx)
	return err
}

func (r *Redis) ListLogs(ctx context.Context) ([]models.TransactionLog, error) {
	rows, err := r.client.LRange(ctx, logsKey, 0, -1).Result()
	if err != nil {
		return nil, err
	}
	logs := make([]models.TransactionLog, 0, len(rows))
	for _, row := range rows {
		var entry models.TransactionLog
		if err := json.Unmarshal([]byte(row), &entry); err != nil {
			return nil, err
		}
		logs = append(logs, entry)
	}
	return logs, nil
}

func (r *Redis) GetLayout(ctx context.Context, id string) (*models.WarehouseLayout, error) {
	raw, err := r.client.Get(ctx, layoutKeyPrefix+id).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var layout models.WarehouseLayout
	if err := json.Unmarshal([]byte(raw), &layout); err != nil {
		return nil, err
	}
	return &layout, nil
}

func (r *Redis) PutLayout(ctx context.Context, layout *models.WarehouseLayout) error {
	raw, err := json.Marshal(layout)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, layoutKeyPrefix+layout.ID, raw, 0).Err()
}

func (r *Redis) GetPasswordHash(ctx context.Context) (string, error) {
	hash, err := r.client.Get(ctx, passwordKey).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	return hash, err
}

func (r *Redis) SetPasswordHash(ctx context.Context, hash string) error {
	return r.client.Set(ctx, passwordKey, hash, 0).Err()
}
