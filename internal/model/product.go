package model

import "github.com/google/uuid"

// Units a product can be sold in.
const (
	UnitPiece = "piece"
	UnitKg    = "kg"
	UnitGram  = "g"
	UnitLiter = "l"
	UnitMl    = "ml"
	UnitBox   = "box"
	UnitPack  = "pack"
)

type Product struct {
	BaseModel
	Name        string  `gorm:"type:varchar(255);not null" json:"name" validate:"required"`
	Description string  `gorm:"type:text" json:"description"`
	SKU         string  `gorm:"type:varchar(50);uniqueIndex;not null" json:"sku" validate:"required"`
	Barcode     *string `gorm:"type:varchar(64);uniqueIndex" json:"barcode,omitempty"`
	Price       float64 `gorm:"not null;default:0" json:"price" validate:"gte=0"`
	Cost        float64 `gorm:"not null;default:0" json:"cost" validate:"gte=0"`

	// Stock is mutated exclusively through ProductRepository.ReserveStock and
	// ReleaseStock; the reservation guard keeps it from going negative.
	Stock    int    `gorm:"not null;default:0" json:"stock" validate:"gte=0"`
	MinStock int    `gorm:"not null;default:0" json:"minStock" validate:"gte=0"`
	Unit     string `gorm:"type:varchar(20);not null" json:"unit" validate:"required,oneof=piece kg g l ml box pack"`

	CategoryID uuid.UUID `gorm:"type:uuid;not null;index" json:"categoryId" validate:"uuid_required"`
	Category   *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty" validate:"-"`
	SupplierID uuid.UUID `gorm:"type:uuid;not null;index" json:"supplierId" validate:"uuid_required"`
	Supplier   *Supplier `gorm:"foreignKey:SupplierID" json:"supplier,omitempty" validate:"-"`

	IsActive bool `gorm:"default:true" json:"isActive"`
}
