package store

import (
	"context"
	"errors"

	"ruzgar-backend/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Gorm is the relational backend. All products live in a single table;
// partition queries filter on shelf+layer. Transaction logs are never
// trimmed here.
type Gorm struct {
	db *gorm.DB
}

func NewGorm(db *gorm.DB) *Gorm {
	return &Gorm{db: db}
}

func (g *Gorm) Ping(ctx context.Context) error {
	sqlDB, err := g.db.DB()
	if err != nil {
		return err
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return err
	}
	if !g.db.WithContext(ctx).Migrator().HasTable(&models.Product{}) {
		return ErrSchemaMissing
	}
	return nil
}

func (g *Gorm) GetProduct(ctx context.Context, id string) (*models.Product, error) {
	var p models.Product
	err := g.db.WithContext(ctx).First(&p, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (g *Gorm) ListProducts(ctx context.Context, shelf, layer string) ([]models.Product, error) {
	var products []models.Product
	err := g.db.WithContext(ctx).
		Where("shelf = ? AND layer = ?", shelf, layer).
		Order("created_at asc, id asc").
		Find(&products).Error
	return products, err
}

func (g *Gorm) ListAllProducts(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	err := g.db.WithContext(ctx).Order("created_at asc, id asc").Find(&products).Error
	return products, err
}

func (g *Gorm) UpsertProduct(ctx context.Context, p *models.Product) error {
	return g.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "id"}}, UpdateAll: true}).
		Create(p).Error
}

func (g *Gorm) DeleteProduct(ctx context.Context, p *models.Product) (bool, error) {
	res := g.db.WithContext(ctx).Delete(&models.Product{}, "id = ?", p.ID)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (g *Gorm) CountProducts(ctx context.Context, shelf, layer string) (int64, error) {
	var n int64
	err := g.db.WithContext(ctx).Model(&models.Product{}).
		Where("shelf = ? AND layer = ?", shelf, layer).
		Count(&n).Error
	return n, err
}

func (g *Gorm) AppendLog(ctx context.Context, entry *models.TransactionLog) error {
	return g.db.WithContext(ctx).Create(entry).Error
}

func (g *Gorm) ListLogs(ctx context.Context) ([]models.TransactionLog, error) {
	var logs []models.TransactionLog
	err := g.db.WithContext(ctx).Order("timestamp desc").Find(&logs).Error
	return logs, err
}

func (g *Gorm) GetLayout(ctx context.Context, id string) (*models.WarehouseLayout, error) {
	var layout models.WarehouseLayout
	err := g.db.WithContext(ctx).First(&layout, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &layout, nil
}

func (g *Gorm) PutLayout(ctx context.Context, layout *models.WarehouseLayout) error {
	return g.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "id"}}, UpdateAll: true}).
		Create(layout).Error
}

func (g *Gorm) GetPasswordHash(ctx context.Context) (string, error) {
	var row models.AuthPassword
	err := g.db.WithContext(ctx).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return row.PasswordHash, nil
}

func (g *Gorm) SetPasswordHash(ctx context.Context, hash string) error {
	var row models.AuthPassword
	err := g.db.WithContext(ctx).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return g.db.WithContext(ctx).Create(&models.AuthPassword{PasswordHash: hash}).Error
	}
	if err != nil {
		return err
	}
	row.PasswordHash = hash
	return g.db.WithContext(ctx).Save(&row).Error
}
