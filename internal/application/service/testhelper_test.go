package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/tokoberkah/kasir-api/internal/domain/entity"
	"github.com/tokoberkah/kasir-api/internal/domain/enum"
	"github.com/tokoberkah/kasir-api/internal/infrastructure/cache"
	infraRepo "github.com/tokoberkah/kasir-api/internal/infrastructure/repository"
	"go.uber.org/zap/zaptest"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// testEnv wires the services against a throwaway in-memory database so the
// real repositories and transactions are exercised, not mocks.
type testEnv struct {
	db          *gorm.DB
	reportCache *cache.ReportCache
	sales       *SaleService
	receivables *ReceivableService
	reports     *ReportService
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	// A unique shared-cache name keeps every pooled connection on the same
	// in-memory database while isolating parallel tests from each other.
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&entity.Product{},
		&entity.Customer{},
		&entity.Sale{},
		&entity.SaleItem{},
		&entity.Payment{},
		&entity.IdempotencyKey{},
	))
	return db
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db := newTestDB(t)
	log := zaptest.NewLogger(t)
	reportCache := cache.NewReportCache()

	saleRepo := infraRepo.NewSaleRepository(db)
	paymentRepo := infraRepo.NewPaymentRepository(db)
	productRepo := infraRepo.NewProductRepository(db)
	customerRepo := infraRepo.NewCustomerRepository(db)
	reportRepo := infraRepo.NewReportRepository(db)

	return &testEnv{
		db:          db,
		reportCache: reportCache,
		sales:       NewSaleService(saleRepo, productRepo, customerRepo, reportCache, log),
		receivables: NewReceivableService(saleRepo, paymentRepo, reportCache, log),
		reports:     NewReportService(reportRepo, reportCache),
	}
}

func seedProduct(t *testing.T, db *gorm.DB, name string, costPrice, salePrice int64) *entity.Product {
	t.Helper()

	product := &entity.Product{
		Name:      name,
		CostPrice: costPrice,
		SalePrice: salePrice,
		StockQty:  100,
	}
	require.NoError(t, db.Create(product).Error)
	return product
}

func seedCustomer(t *testing.T, db *gorm.DB, name string) *entity.Customer {
	t.Helper()

	customer := &entity.Customer{Name: name}
	require.NoError(t, db.Create(customer).Error)
	return customer
}

// recordCreditSale creates an UNPAID credit sale for the given total using a
// single line item priced at the full amount.
func recordCreditSale(t *testing.T, env *testEnv, customerID uuid.UUID, total int64) *entity.Sale {
	t.Helper()

	product := seedProduct(t, env.db, "credit item", 0, total)
	sale, err := env.sales.RecordSale(context.Background(), &RecordSaleInput{
		Items: []SaleItemInput{
			{ProductID: product.ID, Quantity: 1, PriceAtSale: total},
		},
		PaymentMethod: enum.PaymentMethodCredit,
		CustomerID:    &customerID,
	})
	require.NoError(t, err)
	return sale
}
