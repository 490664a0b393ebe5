package service

import (
	"context"
	"time"

	"github.com/tokoberkah/kasir-api/internal/domain/entity"
	"github.com/tokoberkah/kasir-api/internal/domain/enum"
	"github.com/tokoberkah/kasir-api/internal/domain/repository"
	"github.com/tokoberkah/kasir-api/internal/infrastructure/cache"
)

// ReportService computes the financial reports
type ReportService struct {
	reportRepo  repository.ReportRepository
	reportCache *cache.ReportCache
}

// NewReportService creates a new report service
func NewReportService(reportRepo repository.ReportRepository, reportCache *cache.ReportCache) *ReportService {
	return &ReportService{
		reportRepo:  reportRepo,
		reportCache: reportCache,
	}
}

// FilteredReport is the date-filtered profit view. Every sale in range is
// listed, but unpaid credit sales are excluded from the omset and profit sums
// until the money actually arrives.
type FilteredReport struct {
	Transactions   []entity.Sale `json:"transactions"`
	OmsetFiltered  int64         `json:"omset_filtered"`
	ProfitFiltered int64         `json:"profit_filtered"`
	MarginPercent  float64       `json:"margin_percent"`
}

// DailySummary returns the cash-flow total for one day (CASH sales plus
// installments received that day) and the global outstanding receivables.
// Results are cached per date until the next ledger write.
func (s *ReportService) DailySummary(ctx context.Context, date time.Time) (*cache.DailySummary, error) {
	from := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	to := from.AddDate(0, 0, 1)
	key := from.Format("2006-01-02")

	if cached, ok := s.reportCache.Get(key); ok {
		return &cached, nil
	}

	cashTotal, err := s.reportRepo.CashSalesTotal(ctx, from, to)
	if err != nil {
		return nil, err
	}

	paymentsTotal, err := s.reportRepo.PaymentsTotal(ctx, from, to)
	if err != nil {
		return nil, err
	}

	// Outstanding is global, not scoped to the requested day
	outstanding, err := s.reportRepo.OutstandingTotal(ctx)
	if err != nil {
		return nil, err
	}

	summary := cache.DailySummary{
		Date:             key,
		SalesTotal:       cashTotal + paymentsTotal,
		OutstandingTotal: outstanding,
	}
	s.reportCache.Put(summary)

	return &summary, nil
}

// Filtered computes omset and profit over an optional date range. Profit per
// line item is (price at sale - current product cost) * quantity; the cost is
// read live at report time, so editing a product's cost later shifts
// historical profit.
func (s *ReportService) Filtered(ctx context.Context, startDate, endDate *time.Time) (*FilteredReport, error) {
	sales, err := s.reportRepo.SalesWithItems(ctx, startDate, endDate)
	if err != nil {
		return nil, err
	}

	report := &FilteredReport{Transactions: sales}
	for i := range sales {
		sale := &sales[i]
		if sale.PaymentMethod == enum.PaymentMethodCredit && sale.PaymentStatus == enum.PaymentStatusUnpaid {
			// Unrealized revenue: listed but not counted
			continue
		}

		report.OmsetFiltered += sale.TotalAmount
		for _, item := range sale.Items {
			report.ProfitFiltered += (item.PriceAtSale - item.Product.CostPrice) * int64(item.Quantity)
		}
	}

	if report.OmsetFiltered > 0 {
		report.MarginPercent = float64(report.ProfitFiltered) / float64(report.OmsetFiltered) * 100
	}

	return report, nil
}
