package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/tokoberkah/kasir-api/internal/domain/entity"
	"github.com/tokoberkah/kasir-api/internal/domain/enum"
	"github.com/tokoberkah/kasir-api/pkg/pagination"
)

// SaleRepository defines the interface for sale data operations
type SaleRepository interface {
	// CreateWithItems persists the sale header and all line items as a single
	// atomic commit. On failure nothing from the call remains visible.
	CreateWithItems(ctx context.Context, sale *entity.Sale, items []entity.SaleItem) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Sale, error)
	GetWithDetails(ctx context.Context, id uuid.UUID) (*entity.Sale, error)
	List(ctx context.Context, params *SaleFilterParams) ([]entity.Sale, int64, error)
	// ListOutstanding returns all UNPAID sales, newest first
	ListOutstanding(ctx context.Context) ([]entity.Sale, error)
}

// SaleFilterParams contains filtering parameters for sale queries
type SaleFilterParams struct {
	Pagination    *pagination.PaginationParams
	PaymentMethod *enum.PaymentMethod
	PaymentStatus *enum.PaymentStatus
	CustomerID    *uuid.UUID
	StartDate     *time.Time
	EndDate       *time.Time
}

// PaymentRepository defines the interface for installment payments against
// credit sales. Payment rows are append-only.
type PaymentRepository interface {
	// ApplyPayment performs the atomic read-modify-write for one installment:
	// read the current remaining, reject overpayment, append the payment row and
	// update the sale's remaining/status in one transaction. The sale update is
	// a compare-and-swap on the remaining amount read at the start; if another
	// payment landed in between, entity.ErrPaymentConflict is returned and the
	// caller may retry with a fresh read.
	ApplyPayment(ctx context.Context, saleID uuid.UUID, amount int64) (*entity.Sale, error)
	ListBySale(ctx context.Context, saleID uuid.UUID) ([]entity.Payment, error)
}
