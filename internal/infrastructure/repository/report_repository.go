package repository

import (
	"context"
	"time"

	"github.com/tokoberkah/kasir-api/internal/domain/entity"
	"github.com/tokoberkah/kasir-api/internal/domain/enum"
	domainRepo "github.com/tokoberkah/kasir-api/internal/domain/repository"
	"gorm.io/gorm"
)

type reportRepository struct {
	db *gorm.DB
}

// NewReportRepository creates a new report repository
func NewReportRepository(db *gorm.DB) domainRepo.ReportRepository {
	return &reportRepository{db: db}
}

func (r *reportRepository) CashSalesTotal(ctx context.Context, from, to time.Time) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Raw(`
		SELECT COALESCE(SUM(total_amount), 0)
		FROM sales
		WHERE payment_method = ?
			AND created_at >= ?
			AND created_at < ?
	`, enum.PaymentMethodCash, from, to).Scan(&total).Error
	return total, err
}

func (r *reportRepository) PaymentsTotal(ctx context.Context, from, to time.Time) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Raw(`
		SELECT COALESCE(SUM(amount), 0)
		FROM payments
		WHERE created_at >= ?
			AND created_at < ?
	`, from, to).Scan(&total).Error
	return total, err
}

func (r *reportRepository) OutstandingTotal(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Raw(`
		SELECT COALESCE(SUM(remaining_amount), 0)
		FROM sales
		WHERE payment_status = ?
	`, enum.PaymentStatusUnpaid).Scan(&total).Error
	return total, err
}

func (r *reportRepository) SalesWithItems(ctx context.Context, startDate, endDate *time.Time) ([]entity.Sale, error) {
	var sales []entity.Sale

	query := r.db.WithContext(ctx).Model(&entity.Sale{})
	if startDate != nil {
		query = query.Where("created_at >= ?", *startDate)
	}
	if endDate != nil {
		query = query.Where("created_at < ?", *endDate)
	}

	err := query.
		Preload("Customer").
		Preload("Items").
		Preload("Items.Product").
		Order("created_at DESC").
		Find(&sales).Error
	return sales, err
}
