package models

import "time"

type ProductCategory string

const (
	CategoryWasher ProductCategory = "washer"
	CategoryScrew  ProductCategory = "screw"
	CategoryNut    ProductCategory = "nut"
	CategoryBolt   ProductCategory = "bolt"
	CategoryStud   ProductCategory = "stud"
	CategoryOther  ProductCategory = "other"
)

// Product bir raf katmanında duran fiziksel envanter kalemi.
// JSON alan adları frontend ile sözleşmedir, değiştirilmemeli.
type Product struct {
	ID        string          `gorm:"primaryKey;size:64" json:"id"`
	Name      string          `gorm:"size:100;not null" json:"name"`
	Category  ProductCategory `gorm:"size:20;not null" json:"category"`
	Size      string          `gorm:"size:50" json:"size"`
	Shelf     string          `gorm:"size:50;index:idx_products_location" json:"shelf"`
	Layer     string          `gorm:"size:50;index:idx_products_location" json:"layer"`
	Kilogram  float64         `gorm:"not null;default:0" json:"kilogram"`
	Notes     string          `gorm:"size:500" json:"notes"`
	CreatedAt time.Time       `json:"createdAt"`
}

// DiffProducts compares two versions of a product field by field and returns
// the deltas. Field names are the JSON wire names because the audit log is
// rendered straight from them. ID and CreatedAt never change in place, so
// they are not compared.
func DiffProducts(old, new *Product) []FieldChange {
	var changes []FieldChange
	add := func(field string, oldVal, newVal any) {
		changes = append(changes, FieldChange{Field: field, OldValue: oldVal, NewValue: newVal})
	}

	if old.Name != new.Name {
		add("name", old.Name, new.Name)
	}
	if old.Category != new.Category {
		add("category", string(old.Category), string(new.Category))
	}
	if old.Size != new.Size {
		add("size", old.Size, new.Size)
	}
	if old.Shelf != new.Shelf {
		add("shelf", old.Shelf, new.Shelf)
	}
	if old.Layer != new.Layer {
		add("layer", old.Layer, new.Layer)
	}
	if old.Kilogram != new.Kilogram {
		add("kilogram", old.Kilogram, new.Kilogram)
	}
	if old.Notes != new.Notes {
		add("notes", old.Notes, new.Notes)
	}

	return changes
}
