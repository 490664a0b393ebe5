package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/tokoberkah/kasir-api/internal/domain/entity"
	"github.com/tokoberkah/kasir-api/internal/domain/enum"
	"github.com/tokoberkah/kasir-api/internal/domain/repository"
	"github.com/tokoberkah/kasir-api/internal/infrastructure/cache"
	"github.com/tokoberkah/kasir-api/pkg/apperror"
	"go.uber.org/zap"
)

// SaleService records checkouts
type SaleService struct {
	saleRepo     repository.SaleRepository
	productRepo  repository.ProductRepository
	customerRepo repository.CustomerRepository
	reportCache  *cache.ReportCache
	logger       *zap.Logger
}

// NewSaleService creates a new sale service
func NewSaleService(
	saleRepo repository.SaleRepository,
	productRepo repository.ProductRepository,
	customerRepo repository.CustomerRepository,
	reportCache *cache.ReportCache,
	logger *zap.Logger,
) *SaleService {
	return &SaleService{
		saleRepo:     saleRepo,
		productRepo:  productRepo,
		customerRepo: customerRepo,
		reportCache:  reportCache,
		logger:       logger,
	}
}

// SaleItemInput represents one cart line submitted at checkout
type SaleItemInput struct {
	ProductID   uuid.UUID
	Quantity    int
	PriceAtSale int64
}

// RecordSaleInput represents the checkout request. The cart is request-local
// input, never shared state.
type RecordSaleInput struct {
	Items         []SaleItemInput
	PaymentMethod enum.PaymentMethod
	CustomerID    *uuid.UUID
}

// RecordSale creates a sale header and its line items as one atomic unit.
// Prices are accepted as submitted; they are the snapshot stored on each line
// item and are not re-checked against the live catalog.
func (s *SaleService) RecordSale(ctx context.Context, input *RecordSaleInput) (*entity.Sale, error) {
	if len(input.Items) == 0 {
		return nil, entity.ErrEmptyCart
	}
	if !input.PaymentMethod.IsValid() {
		return nil, apperror.NewBadRequestError("Unknown payment method")
	}

	var total int64
	items := make([]entity.SaleItem, 0, len(input.Items))
	for _, item := range input.Items {
		if item.Quantity <= 0 {
			return nil, entity.ErrInvalidQuantity
		}
		total += int64(item.Quantity) * item.PriceAtSale
		items = append(items, entity.SaleItem{
			ProductID:   item.ProductID,
			Quantity:    item.Quantity,
			PriceAtSale: item.PriceAtSale,
		})
	}

	// Submitted prices are trusted, but every line must reference a real
	// product: the sale rows point at the catalog and the profit report
	// joins against it.
	productIDs := make([]uuid.UUID, 0, len(items))
	seen := make(map[uuid.UUID]struct{}, len(items))
	for _, item := range items {
		if _, ok := seen[item.ProductID]; ok {
			continue
		}
		seen[item.ProductID] = struct{}{}
		productIDs = append(productIDs, item.ProductID)
	}
	products, err := s.productRepo.GetByIDs(ctx, productIDs)
	if err != nil {
		return nil, err
	}
	if len(products) != len(productIDs) {
		return nil, apperror.NewNotFoundError("Product")
	}

	sale := &entity.Sale{
		CustomerID:    input.CustomerID,
		TotalAmount:   total,
		PaymentMethod: input.PaymentMethod,
	}

	if input.PaymentMethod == enum.PaymentMethodCredit {
		if input.CustomerID == nil {
			return nil, entity.ErrMissingCustomerForCredit
		}
		customer, err := s.customerRepo.GetByID(ctx, *input.CustomerID)
		if err != nil {
			return nil, err
		}
		if customer == nil {
			return nil, apperror.NewNotFoundError("Customer")
		}
		sale.PaymentStatus = enum.PaymentStatusUnpaid
		sale.RemainingAmount = total
	} else {
		// Cash settles at the till: nothing remains and no payment rows follow
		sale.PaymentStatus = enum.PaymentStatusPaid
		sale.RemainingAmount = 0
	}

	if err := s.saleRepo.CreateWithItems(ctx, sale, items); err != nil {
		s.logger.Error("failed to persist sale",
			zap.String("payment_method", input.PaymentMethod.String()),
			zap.Int64("total_amount", total),
			zap.Error(err))
		return nil, fmt.Errorf("failed to persist sale: %w", err)
	}

	s.reportCache.Invalidate()

	s.logger.Info("sale recorded",
		zap.String("sale_id", sale.ID.String()),
		zap.String("payment_method", sale.PaymentMethod.String()),
		zap.Int64("total_amount", sale.TotalAmount),
		zap.Int("item_count", len(items)))

	return s.saleRepo.GetWithDetails(ctx, sale.ID)
}

// GetSale retrieves a sale with items, payments and customer
func (s *SaleService) GetSale(ctx context.Context, id uuid.UUID) (*entity.Sale, error) {
	sale, err := s.saleRepo.GetWithDetails(ctx, id)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, entity.ErrSaleNotFound
	}
	return sale, nil
}

// ListSales lists sales with filtering and pagination
func (s *SaleService) ListSales(ctx context.Context, params *repository.SaleFilterParams) ([]entity.Sale, int64, error) {
	return s.saleRepo.List(ctx, params)
}
