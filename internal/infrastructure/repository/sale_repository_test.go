package repository

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tokoberkah/kasir-api/internal/domain/entity"
	"github.com/tokoberkah/kasir-api/internal/domain/enum"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

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
	))
	return db
}

func seedCreditSale(t *testing.T, db *gorm.DB, total int64) *entity.Sale {
	t.Helper()

	customer := &entity.Customer{Name: "Siti"}
	require.NoError(t, db.Create(customer).Error)

	sale := &entity.Sale{
		CustomerID:      &customer.ID,
		TotalAmount:     total,
		PaymentMethod:   enum.PaymentMethodCredit,
		PaymentStatus:   enum.PaymentStatusUnpaid,
		RemainingAmount: total,
	}
	require.NoError(t, db.Create(sale).Error)
	return sale
}

func TestCreateWithItems_PersistsHeaderAndLines(t *testing.T) {
	db := newTestDB(t)
	repo := NewSaleRepository(db)

	product := &entity.Product{Name: "Teh Botol", SalePrice: 5000}
	require.NoError(t, db.Create(product).Error)

	sale := &entity.Sale{
		TotalAmount:   10000,
		PaymentMethod: enum.PaymentMethodCash,
		PaymentStatus: enum.PaymentStatusPaid,
	}
	items := []entity.SaleItem{
		{ProductID: product.ID, Quantity: 2, PriceAtSale: 5000},
	}
	require.NoError(t, repo.CreateWithItems(context.Background(), sale, items))

	stored, err := repo.GetWithDetails(context.Background(), sale.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	require.Len(t, stored.Items, 1)
	assert.Equal(t, sale.ID, stored.Items[0].SaleID)
}

func TestCreateWithItems_RollsBackHeaderWhenItemsFail(t *testing.T) {
	db := newTestDB(t)
	repo := NewSaleRepository(db)

	product := &entity.Product{Name: "Teh Botol", SalePrice: 5000}
	require.NoError(t, db.Create(product).Error)

	sale := &entity.Sale{
		TotalAmount:   10000,
		PaymentMethod: enum.PaymentMethodCash,
		PaymentStatus: enum.PaymentStatusPaid,
	}

	// A duplicated primary key makes the batch insert fail after the header
	// was written inside the transaction
	dupID := uuid.New()
	items := []entity.SaleItem{
		{ID: dupID, ProductID: product.ID, Quantity: 1, PriceAtSale: 5000},
		{ID: dupID, ProductID: product.ID, Quantity: 1, PriceAtSale: 5000},
	}
	err := repo.CreateWithItems(context.Background(), sale, items)
	require.Error(t, err)

	// No orphan header may survive the rollback
	var count int64
	require.NoError(t, db.Model(&entity.Sale{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestApplyPayment_WritesInstallmentAndBalanceTogether(t *testing.T) {
	db := newTestDB(t)
	repo := NewPaymentRepository(db)

	sale := seedCreditSale(t, db, 100000)

	updated, err := repo.ApplyPayment(context.Background(), sale.ID, 40000)
	require.NoError(t, err)
	assert.Equal(t, int64(60000), updated.RemainingAmount)
	assert.Equal(t, enum.PaymentStatusUnpaid, updated.PaymentStatus)

	var payments []entity.Payment
	require.NoError(t, db.Where("sale_id = ?", sale.ID).Find(&payments).Error)
	require.Len(t, payments, 1)
	assert.Equal(t, int64(40000), payments[0].Amount)
}

func TestApplyPayment_SettlingPaymentFlipsStatus(t *testing.T) {
	db := newTestDB(t)
	repo := NewPaymentRepository(db)

	sale := seedCreditSale(t, db, 100000)

	updated, err := repo.ApplyPayment(context.Background(), sale.ID, 100000)
	require.NoError(t, err)
	assert.Equal(t, int64(0), updated.RemainingAmount)
	assert.Equal(t, enum.PaymentStatusPaid, updated.PaymentStatus)
}

func TestApplyPayment_OverpaymentRollsBackInstallment(t *testing.T) {
	db := newTestDB(t)
	repo := NewPaymentRepository(db)

	sale := seedCreditSale(t, db, 30000)

	_, err := repo.ApplyPayment(context.Background(), sale.ID, 50000)
	overpay, ok := entity.IsOverpayment(err)
	require.True(t, ok, "expected overpayment rejection, got %v", err)
	assert.Equal(t, int64(30000), overpay.Remaining)

	// Neither the payment row nor the balance change survives
	var count int64
	require.NoError(t, db.Model(&entity.Payment{}).Count(&count).Error)
	assert.Zero(t, count)

	var stored entity.Sale
	require.NoError(t, db.First(&stored, "id = ?", sale.ID).Error)
	assert.Equal(t, int64(30000), stored.RemainingAmount)
}

func TestApplyPayment_UnknownSale(t *testing.T) {
	db := newTestDB(t)
	repo := NewPaymentRepository(db)

	_, err := repo.ApplyPayment(context.Background(), uuid.New(), 10000)
	assert.ErrorIs(t, err, entity.ErrSaleNotFound)
}

func TestListOutstanding_SkipsSettledSales(t *testing.T) {
	db := newTestDB(t)
	repo := NewSaleRepository(db)

	open := seedCreditSale(t, db, 40000)
	settled := seedCreditSale(t, db, 25000)
	require.NoError(t, db.Model(&entity.Sale{}).
		Where("id = ?", settled.ID).
		Updates(map[string]interface{}{
			"remaining_amount": 0,
			"payment_status":   enum.PaymentStatusPaid,
		}).Error)

	sales, err := repo.ListOutstanding(context.Background())
	require.NoError(t, err)
	require.Len(t, sales, 1)
	assert.Equal(t, open.ID, sales[0].ID)
}
