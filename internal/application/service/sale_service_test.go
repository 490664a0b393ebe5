package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tokoberkah/kasir-api/internal/domain/entity"
	"github.com/tokoberkah/kasir-api/internal/domain/enum"
	"github.com/tokoberkah/kasir-api/pkg/apperror"
)

func TestRecordSale_CashSettlesImmediately(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	kopi := seedProduct(t, env.db, "Kopi Sachet", 7000, 10000)
	gula := seedProduct(t, env.db, "Gula 1kg", 4000, 5000)

	sale, err := env.sales.RecordSale(ctx, &RecordSaleInput{
		Items: []SaleItemInput{
			{ProductID: kopi.ID, Quantity: 2, PriceAtSale: 10000},
			{ProductID: gula.ID, Quantity: 1, PriceAtSale: 5000},
		},
		PaymentMethod: enum.PaymentMethodCash,
	})
	require.NoError(t, err)

	assert.Equal(t, int64(25000), sale.TotalAmount)
	assert.Equal(t, int64(0), sale.RemainingAmount)
	assert.Equal(t, enum.PaymentStatusPaid, sale.PaymentStatus)
	assert.Equal(t, enum.PaymentMethodCash, sale.PaymentMethod)
	require.Len(t, sale.Items, 2)

	// Header total always equals the sum of its line items
	var itemSum int64
	for _, item := range sale.Items {
		itemSum += item.Subtotal()
	}
	assert.Equal(t, sale.TotalAmount, itemSum)
}

func TestRecordSale_CreditStartsUnpaidAtFullBalance(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	budi := seedCustomer(t, env.db, "Budi")
	beras := seedProduct(t, env.db, "Beras 5kg", 60000, 70000)

	sale, err := env.sales.RecordSale(ctx, &RecordSaleInput{
		Items: []SaleItemInput{
			{ProductID: beras.ID, Quantity: 2, PriceAtSale: 70000},
		},
		PaymentMethod: enum.PaymentMethodCredit,
		CustomerID:    &budi.ID,
	})
	require.NoError(t, err)

	assert.Equal(t, int64(140000), sale.TotalAmount)
	assert.Equal(t, int64(140000), sale.RemainingAmount)
	assert.Equal(t, enum.PaymentStatusUnpaid, sale.PaymentStatus)
	require.NotNil(t, sale.Customer)
	assert.Equal(t, "Budi", sale.Customer.Name)
}

func TestRecordSale_EmptyCartRejected(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.sales.RecordSale(context.Background(), &RecordSaleInput{
		Items:         nil,
		PaymentMethod: enum.PaymentMethodCash,
	})
	assert.ErrorIs(t, err, entity.ErrEmptyCart)
}

func TestRecordSale_NonPositiveQuantityRejected(t *testing.T) {
	env := newTestEnv(t)
	kopi := seedProduct(t, env.db, "Kopi Sachet", 7000, 10000)

	for _, qty := range []int{0, -1} {
		_, err := env.sales.RecordSale(context.Background(), &RecordSaleInput{
			Items: []SaleItemInput{
				{ProductID: kopi.ID, Quantity: qty, PriceAtSale: 10000},
			},
			PaymentMethod: enum.PaymentMethodCash,
		})
		assert.ErrorIs(t, err, entity.ErrInvalidQuantity)
	}

	// Nothing was persisted
	var count int64
	require.NoError(t, env.db.Model(&entity.Sale{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestRecordSale_CreditWithoutCustomerRejected(t *testing.T) {
	env := newTestEnv(t)
	kopi := seedProduct(t, env.db, "Kopi Sachet", 7000, 10000)

	_, err := env.sales.RecordSale(context.Background(), &RecordSaleInput{
		Items: []SaleItemInput{
			{ProductID: kopi.ID, Quantity: 1, PriceAtSale: 10000},
		},
		PaymentMethod: enum.PaymentMethodCredit,
	})
	assert.ErrorIs(t, err, entity.ErrMissingCustomerForCredit)
}

func TestRecordSale_UnknownProductRejected(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.sales.RecordSale(context.Background(), &RecordSaleInput{
		Items: []SaleItemInput{
			{ProductID: uuid.New(), Quantity: 1, PriceAtSale: 10000},
		},
		PaymentMethod: enum.PaymentMethodCash,
	})
	require.Error(t, err)
	assert.Equal(t, 404, apperror.GetAppError(err).Code)
}

func TestRecordSale_CreditWithUnknownCustomerRejected(t *testing.T) {
	env := newTestEnv(t)
	kopi := seedProduct(t, env.db, "Kopi Sachet", 7000, 10000)
	ghost := uuid.New()

	_, err := env.sales.RecordSale(context.Background(), &RecordSaleInput{
		Items: []SaleItemInput{
			{ProductID: kopi.ID, Quantity: 1, PriceAtSale: 10000},
		},
		PaymentMethod: enum.PaymentMethodCredit,
		CustomerID:    &ghost,
	})
	require.Error(t, err)
	assert.Equal(t, 404, apperror.GetAppError(err).Code)
}

func TestRecordSale_InvalidatesReportCache(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	kopi := seedProduct(t, env.db, "Kopi Sachet", 7000, 10000)

	// Prime the cache
	_, err := env.reports.DailySummary(ctx, time.Now())
	require.NoError(t, err)
	require.Equal(t, 1, env.reportCache.Len())

	_, err = env.sales.RecordSale(ctx, &RecordSaleInput{
		Items: []SaleItemInput{
			{ProductID: kopi.ID, Quantity: 1, PriceAtSale: 10000},
		},
		PaymentMethod: enum.PaymentMethodCash,
	})
	require.NoError(t, err)

	assert.Zero(t, env.reportCache.Len())
}

func TestGetSale_NotFound(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.sales.GetSale(context.Background(), uuid.New())
	assert.ErrorIs(t, err, entity.ErrSaleNotFound)
}
