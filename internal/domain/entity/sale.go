package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/tokoberkah/kasir-api/internal/domain/enum"
	"gorm.io/gorm"
)

// Sale represents one checkout: a header plus its line items, created atomically.
// A CASH sale settles on creation; a CREDIT sale carries a remaining balance that
// is worked down by Payment rows, and only the remaining amount and status may
// change after creation.
type Sale struct {
	ID              uuid.UUID          `gorm:"type:uuid;primary_key" json:"id"`
	CustomerID      *uuid.UUID         `gorm:"type:uuid;index" json:"customer_id,omitempty"`
	TotalAmount     int64              `gorm:"not null" json:"total_amount"`
	PaymentMethod   enum.PaymentMethod `gorm:"not null;index" json:"payment_method"`
	PaymentStatus   enum.PaymentStatus `gorm:"not null;index" json:"payment_status"`
	RemainingAmount int64              `gorm:"not null" json:"remaining_amount"`
	CreatedAt       time.Time          `gorm:"index" json:"created_at"`
	UpdatedAt       time.Time          `json:"updated_at"`

	// Relationships
	Customer *Customer  `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	Items    []SaleItem `gorm:"foreignKey:SaleID" json:"items,omitempty"`
	Payments []Payment  `gorm:"foreignKey:SaleID" json:"payments,omitempty"`
}

// BeforeCreate generates a UUID before creating a new sale
func (s *Sale) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Sale model
func (Sale) TableName() string {
	return "sales"
}

// IsCredit reports whether this sale is a receivable
func (s *Sale) IsCredit() bool {
	return s.PaymentMethod == enum.PaymentMethodCredit
}

// SaleItem is a line item of a sale. PriceAtSale is the unit price snapshotted
// at checkout time and never follows later catalog edits.
type SaleItem struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	SaleID      uuid.UUID `gorm:"type:uuid;not null;index" json:"sale_id"`
	ProductID   uuid.UUID `gorm:"type:uuid;not null;index" json:"product_id"`
	Quantity    int       `gorm:"not null" json:"quantity"`
	PriceAtSale int64     `gorm:"not null" json:"price_at_sale"`
	CreatedAt   time.Time `json:"created_at"`

	// Relationships
	Sale    Sale    `gorm:"foreignKey:SaleID" json:"-"`
	Product Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}

// Subtotal returns quantity times the snapshotted unit price
func (i *SaleItem) Subtotal() int64 {
	return int64(i.Quantity) * i.PriceAtSale
}

// BeforeCreate generates a UUID before creating a new sale item
func (i *SaleItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the SaleItem model
func (SaleItem) TableName() string {
	return "sale_items"
}

// Payment is one installment against a credit sale. Rows are append-only and
// never updated or deleted; they are the audit trail behind RemainingAmount.
type Payment struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	SaleID    uuid.UUID `gorm:"type:uuid;not null;index" json:"sale_id"`
	Amount    int64     `gorm:"not null" json:"amount"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`

	// Relationships
	Sale Sale `gorm:"foreignKey:SaleID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new payment
func (p *Payment) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Payment model
func (Payment) TableName() string {
	return "payments"
}
