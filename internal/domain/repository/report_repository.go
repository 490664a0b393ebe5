package repository

import (
	"context"
	"time"

	"github.com/tokoberkah/kasir-api/internal/domain/entity"
)

// ReportRepository provides the read-only aggregates behind the reports.
// All queries join committed Sale/SaleItem/Payment/Product rows and never write.
type ReportRepository interface {
	// CashSalesTotal sums total_amount of CASH sales created in [from, to)
	CashSalesTotal(ctx context.Context, from, to time.Time) (int64, error)
	// PaymentsTotal sums installment payments recorded in [from, to)
	PaymentsTotal(ctx context.Context, from, to time.Time) (int64, error)
	// OutstandingTotal sums remaining_amount over all currently UNPAID sales
	OutstandingTotal(ctx context.Context) (int64, error)
	// SalesWithItems returns sales in the optional date range, newest first,
	// with items, live product rows and customer preloaded
	SalesWithItems(ctx context.Context, startDate, endDate *time.Time) ([]entity.Sale, error)
}
