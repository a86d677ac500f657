package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go-retail-pos/internal/cache"
	"go-retail-pos/internal/model"
	"go-retail-pos/internal/repository"

	log "github.com/sirupsen/logrus"
)

const (
	dashboardCacheKey = "dashboard:snapshot"
	dashboardCacheTTL = 30 * time.Second

	lowStockFallback = 5
)

// TransactionStats is the GET /transactions/stats shape.
type TransactionStats struct {
	TotalSales              float64            `json:"totalSales"`
	TotalTransactions       int64              `json:"totalTransactions"`
	AverageTransactionValue float64            `json:"averageTransactionValue"`
	PaymentMethodBreakdown  map[string]float64 `json:"paymentMethodBreakdown"`
}

// MonthProfit is one point of the monthly profit chart.
type MonthProfit struct {
	Month  string  `json:"month"`
	Profit float64 `json:"profit"`
}

// ActivityItem summarizes a completed sale for the dashboard feed.
type ActivityItem struct {
	Action string `json:"action"`
	Item   string `json:"item"`
	Amount string `json:"amount"`
	Time   string `json:"time"`
}

// DashboardSnapshot is the GET /dashboard shape.
type DashboardSnapshot struct {
	TotalProducts     int64          `json:"totalProducts"`
	LowStockItems     int64          `json:"lowStockItems"`
	TotalSales        float64        `json:"totalSales"`
	TotalTransactions int64          `json:"totalTransactions"`
	ProfitSeries      []MonthProfit  `json:"profitSeries"`
	RecentActivity    []ActivityItem `json:"recentActivity"`
}

// ReportService derives read-only statistics from the persisted transaction
// set; it never mutates state.
type ReportService interface {
	Stats(start, end time.Time) (*TransactionStats, error)
	ProfitSeries(monthsBack int) ([]MonthProfit, error)
	RecentActivity(limit int) ([]ActivityItem, error)
	Dashboard(ctx context.Context) (*DashboardSnapshot, error)
}

type reportService struct {
	txRepo      repository.TransactionRepository
	productRepo repository.ProductRepository
	cache       cache.Cache
	now         func() time.Time
}

func NewReportService(txRepo repository.TransactionRepository, productRepo repository.ProductRepository, c cache.Cache) ReportService {
	return &reportService{
		txRepo:      txRepo,
		productRepo: productRepo,
		cache:       c,
		now:         time.Now,
	}
}

func (s *reportService) Stats(start, end time.Time) (*TransactionStats, error) {
	totalSales, count, err := s.txRepo.SalesTotals(start, end)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	byMethod, err := s.txRepo.PaymentMethodTotals(start, end)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	stats := &TransactionStats{
		TotalSales:             totalSales,
		TotalTransactions:      count,
		PaymentMethodBreakdown: make(map[string]float64, len(byMethod)),
	}
	if count > 0 {
		stats.AverageTransactionValue = totalSales / float64(count)
	}
	for _, row := range byMethod {
		stats.PaymentMethodBreakdown[row.Method] += row.Amount
	}
	return stats, nil
}

func (s *reportService) ProfitSeries(monthsBack int) ([]MonthProfit, error) {
	now := s.now()
	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).
		AddDate(0, -(monthsBack - 1), 0)

	revenue, err := s.txRepo.MonthlyRevenue(start, now)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}
	cost, err := s.txRepo.MonthlyCost(start, now)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	return buildProfitSeries(start, monthsBack, revenue, cost), nil
}

// buildProfitSeries merges revenue and cost buckets into a chronological,
// zero-filled trailing window of monthly profit.
func buildProfitSeries(start time.Time, months int, revenue, cost []repository.MonthlyAmount) []MonthProfit {
	type key struct{ year, month int }

	profit := make(map[key]float64, months)
	for _, row := range revenue {
		profit[key{row.Year, row.Month}] += row.Amount
	}
	for _, row := range cost {
		profit[key{row.Year, row.Month}] -= row.Amount
	}

	series := make([]MonthProfit, 0, months)
	for i := 0; i < months; i++ {
		m := start.AddDate(0, i, 0)
		series = append(series, MonthProfit{
			Month:  m.Format("Jan 2006"),
			Profit: profit[key{m.Year(), int(m.Month())}],
		})
	}
	return series
}

func (s *reportService) RecentActivity(limit int) ([]ActivityItem, error) {
	transactions, err := s.txRepo.RecentCompleted(limit)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	items := make([]ActivityItem, 0, len(transactions))
	for _, tx := range transactions {
		items = append(items, ActivityItem{
			Action: "Sale completed",
			Item:   saleLabel(tx.Items),
			Amount: fmt.Sprintf("$%.2f", tx.Total),
			Time:   tx.CreatedAt.Format("Jan 2, 2006 15:04"),
		})
	}
	return items, nil
}

// saleLabel names a sale by its first product plus a count of the rest.
func saleLabel(items []model.TransactionItem) string {
	if len(items) == 0 {
		return ""
	}
	name := items[0].ProductID.String()
	if items[0].Product != nil {
		name = items[0].Product.Name
	}
	if extra := len(items) - 1; extra > 0 {
		return fmt.Sprintf("%s +%d more", name, extra)
	}
	return name
}

func (s *reportService) Dashboard(ctx context.Context) (*DashboardSnapshot, error) {
	if cached, ok := s.cache.Get(ctx, dashboardCacheKey); ok {
		var snapshot DashboardSnapshot
		if err := json.Unmarshal([]byte(cached), &snapshot); err == nil {
			return &snapshot, nil
		}
		log.Warn("discarding unreadable dashboard cache entry")
	}

	totalProducts, err := s.productRepo.Count()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}
	lowStock, err := s.productRepo.CountLowStock(lowStockFallback)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	now := s.now()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	totalSales, totalTransactions, err := s.txRepo.SalesTotals(monthStart, now)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	profitSeries, err := s.ProfitSeries(6)
	if err != nil {
		return nil, err
	}
	recent, err := s.RecentActivity(10)
	if err != nil {
		return nil, err
	}

	snapshot := &DashboardSnapshot{
		TotalProducts:     totalProducts,
		LowStockItems:     lowStock,
		TotalSales:        totalSales,
		TotalTransactions: totalTransactions,
		ProfitSeries:      profitSeries,
		RecentActivity:    recent,
	}

	if encoded, err := json.Marshal(snapshot); err == nil {
		s.cache.Set(ctx, dashboardCacheKey, string(encoded), dashboardCacheTTL)
	}
	return snapshot, nil
}
