package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Product is a catalog entry. The catalog is owned elsewhere; this service only
// reads it (sale pricing is snapshotted into SaleItem, profit reads CostPrice
// live at report time).
type Product struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Name      string    `gorm:"size:255;not null" json:"name"`
	Barcode   *string   `gorm:"size:100;uniqueIndex" json:"barcode,omitempty"`
	CostPrice int64     `gorm:"default:0" json:"cost_price"`
	SalePrice int64     `gorm:"default:0" json:"sale_price"`
	StockQty  int       `gorm:"default:0" json:"stock_qty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BeforeCreate generates a UUID before creating a new product
func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Product model
func (Product) TableName() string {
	return "products"
}
