package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/tokoberkah/kasir-api/internal/domain/entity"
	"github.com/tokoberkah/kasir-api/internal/domain/enum"
	domainRepo "github.com/tokoberkah/kasir-api/internal/domain/repository"
	"gorm.io/gorm"
)

type saleRepository struct {
	db *gorm.DB
}

// NewSaleRepository creates a new sale repository
func NewSaleRepository(db *gorm.DB) domainRepo.SaleRepository {
	return &saleRepository{db: db}
}

// CreateWithItems writes the header and all line items inside one transaction.
// A failure on any row rolls back everything, so no orphan header can remain.
func (r *saleRepository) CreateWithItems(ctx context.Context, sale *entity.Sale, items []entity.SaleItem) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(sale).Error; err != nil {
			return err
		}
		for i := range items {
			items[i].SaleID = sale.ID
		}
		if err := tx.Create(&items).Error; err != nil {
			return err
		}
		return nil
	})
}

func (r *saleRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Sale, error) {
	var sale entity.Sale
	err := r.db.WithContext(ctx).
		Preload("Customer").
		First(&sale, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &sale, err
}

func (r *saleRepository) GetWithDetails(ctx context.Context, id uuid.UUID) (*entity.Sale, error) {
	var sale entity.Sale
	err := r.db.WithContext(ctx).
		Preload("Customer").
		Preload("Items").
		Preload("Items.Product").
		Preload("Payments").
		First(&sale, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &sale, err
}

func (r *saleRepository) List(ctx context.Context, params *domainRepo.SaleFilterParams) ([]entity.Sale, int64, error) {
	var sales []entity.Sale
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Sale{})

	if params.PaymentMethod != nil {
		query = query.Where("payment_method = ?", *params.PaymentMethod)
	}

	if params.PaymentStatus != nil {
		query = query.Where("payment_status = ?", *params.PaymentStatus)
	}

	if params.CustomerID != nil {
		query = query.Where("customer_id = ?", *params.CustomerID)
	}

	if params.StartDate != nil {
		query = query.Where("created_at >= ?", *params.StartDate)
	}

	if params.EndDate != nil {
		query = query.Where("created_at < ?", *params.EndDate)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Pagination.Validate()
	err := query.Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage).
		Preload("Customer").
		Order("created_at DESC").
		Find(&sales).Error

	return sales, total, err
}

func (r *saleRepository) ListOutstanding(ctx context.Context) ([]entity.Sale, error) {
	var sales []entity.Sale
	err := r.db.WithContext(ctx).
		Where("payment_status = ?", enum.PaymentStatusUnpaid).
		Preload("Customer").
		Order("created_at DESC").
		Find(&sales).Error
	return sales, err
}

type paymentRepository struct {
	db *gorm.DB
}

// NewPaymentRepository creates a new payment repository
func NewPaymentRepository(db *gorm.DB) domainRepo.PaymentRepository {
	return &paymentRepository{db: db}
}

// ApplyPayment runs the installment as one transaction. The final sale update
// is guarded by the remaining amount read at the start of the transaction: if a
// concurrent payment changed it, zero rows match, the transaction rolls back
// and entity.ErrPaymentConflict is returned instead of committing over stale
// data.
func (r *paymentRepository) ApplyPayment(ctx context.Context, saleID uuid.UUID, amount int64) (*entity.Sale, error) {
	var updated *entity.Sale

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var sale entity.Sale
		if err := tx.First(&sale, "id = ?", saleID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return entity.ErrSaleNotFound
			}
			return err
		}

		if amount > sale.RemainingAmount {
			return &entity.OverpaymentError{Remaining: sale.RemainingAmount}
		}

		payment := entity.Payment{SaleID: sale.ID, Amount: amount}
		if err := tx.Create(&payment).Error; err != nil {
			return err
		}

		readRemaining := sale.RemainingAmount
		newRemaining := readRemaining - amount
		newStatus := enum.PaymentStatusUnpaid
		if newRemaining <= 0 {
			newRemaining = 0
			newStatus = enum.PaymentStatusPaid
		}

		res := tx.Model(&entity.Sale{}).
			Where("id = ? AND remaining_amount = ?", sale.ID, readRemaining).
			Updates(map[string]interface{}{
				"remaining_amount": newRemaining,
				"payment_status":   newStatus,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return entity.ErrPaymentConflict
		}

		sale.RemainingAmount = newRemaining
		sale.PaymentStatus = newStatus
		updated = &sale
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (r *paymentRepository) ListBySale(ctx context.Context, saleID uuid.UUID) ([]entity.Payment, error) {
	var payments []entity.Payment
	err := r.db.WithContext(ctx).
		Where("sale_id = ?", saleID).
		Order("created_at ASC").
		Find(&payments).Error
	return payments, err
}
