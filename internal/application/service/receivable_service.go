package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/tokoberkah/kasir-api/internal/domain/entity"
	"github.com/tokoberkah/kasir-api/internal/domain/repository"
	"github.com/tokoberkah/kasir-api/internal/infrastructure/cache"
	"go.uber.org/zap"
)

// maxPaymentRetries bounds how often a payment is retried after losing a
// compare-and-swap race before the conflict is surfaced to the caller.
const maxPaymentRetries = 3

// ReceivableService tracks unpaid credit sales and applies installments
type ReceivableService struct {
	saleRepo    repository.SaleRepository
	paymentRepo repository.PaymentRepository
	reportCache *cache.ReportCache
	logger      *zap.Logger
}

// NewReceivableService creates a new receivable service
func NewReceivableService(
	saleRepo repository.SaleRepository,
	paymentRepo repository.PaymentRepository,
	reportCache *cache.ReportCache,
	logger *zap.Logger,
) *ReceivableService {
	return &ReceivableService{
		saleRepo:    saleRepo,
		paymentRepo: paymentRepo,
		reportCache: reportCache,
		logger:      logger,
	}
}

// ListOutstanding returns every UNPAID sale, newest first
func (s *ReceivableService) ListOutstanding(ctx context.Context) ([]entity.Sale, error) {
	return s.saleRepo.ListOutstanding(ctx)
}

// RecordPayment applies one installment against a credit sale. The repository
// runs the read-modify-write atomically; a lost race comes back as
// ErrPaymentConflict and is retried here against a fresh read, so a payment is
// never committed over a stale remaining amount.
func (s *ReceivableService) RecordPayment(ctx context.Context, saleID uuid.UUID, amount int64) (*entity.Sale, error) {
	if amount <= 0 {
		return nil, entity.ErrNonPositiveAmount
	}

	var sale *entity.Sale
	var err error
	for attempt := 1; attempt <= maxPaymentRetries; attempt++ {
		sale, err = s.paymentRepo.ApplyPayment(ctx, saleID, amount)
		if err == nil {
			break
		}
		if !errors.Is(err, entity.ErrPaymentConflict) {
			return nil, err
		}
		s.logger.Warn("payment lost update race, retrying",
			zap.String("sale_id", saleID.String()),
			zap.Int("attempt", attempt))
	}
	if err != nil {
		return nil, err
	}

	s.reportCache.Invalidate()

	s.logger.Info("installment recorded",
		zap.String("sale_id", sale.ID.String()),
		zap.Int64("amount", amount),
		zap.Int64("remaining_amount", sale.RemainingAmount),
		zap.String("payment_status", sale.PaymentStatus.String()))

	return sale, nil
}

// ListPayments returns the installment history of a sale, oldest first
func (s *ReceivableService) ListPayments(ctx context.Context, saleID uuid.UUID) ([]entity.Payment, error) {
	sale, err := s.saleRepo.GetByID(ctx, saleID)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, entity.ErrSaleNotFound
	}
	return s.paymentRepo.ListBySale(ctx, saleID)
}
