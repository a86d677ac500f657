package service

import (
	"context"
	"testing"
	"time"

	"go-retail-pos/internal/cache"
	"go-retail-pos/internal/model"
	"go-retail-pos/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStats(t *testing.T) {
	txRepo := newMockTransactionRepo()
	txRepo.totalSales = 125
	txRepo.totalCount = 2
	txRepo.byMethod = []repository.PaymentMethodTotal{
		{Method: "cash", Amount: 50},
		{Method: "card", Amount: 75},
	}
	svc := NewReportService(txRepo, newMockProductRepo(), cache.NewNoop())

	stats, err := svc.Stats(time.Now().AddDate(0, 0, -30), time.Now())
	require.NoError(t, err)

	assert.Equal(t, 125.0, stats.TotalSales)
	assert.Equal(t, int64(2), stats.TotalTransactions)
	assert.Equal(t, 62.5, stats.AverageTransactionValue)
	assert.Equal(t, 50.0, stats.PaymentMethodBreakdown["cash"])
	assert.Equal(t, 75.0, stats.PaymentMethodBreakdown["card"])
}

func TestStatsEmptyRange(t *testing.T) {
	svc := NewReportService(newMockTransactionRepo(), newMockProductRepo(), cache.NewNoop())

	stats, err := svc.Stats(time.Now().AddDate(0, 0, -30), time.Now())
	require.NoError(t, err)

	assert.Equal(t, 0.0, stats.TotalSales)
	assert.Equal(t, int64(0), stats.TotalTransactions)
	assert.Equal(t, 0.0, stats.AverageTransactionValue)
	assert.Empty(t, stats.PaymentMethodBreakdown)
}

func TestBuildProfitSeries(t *testing.T) {
	start := time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)
	revenue := []repository.MonthlyAmount{
		{Year: 2026, Month: 3, Amount: 500},
		{Year: 2026, Month: 5, Amount: 300},
	}
	cost := []repository.MonthlyAmount{
		{Year: 2026, Month: 3, Amount: 200},
		{Year: 2026, Month: 4, Amount: 50},
	}

	series := buildProfitSeries(start, 4, revenue, cost)

	require.Len(t, series, 4)
	assert.Equal(t, MonthProfit{Month: "Mar 2026", Profit: 300}, series[0])
	assert.Equal(t, MonthProfit{Month: "Apr 2026", Profit: -50}, series[1])
	assert.Equal(t, MonthProfit{Month: "May 2026", Profit: 300}, series[2])
	assert.Equal(t, MonthProfit{Month: "Jun 2026", Profit: 0}, series[3])
}

func TestRecentActivity(t *testing.T) {
	cola := &model.Product{Name: "Cola"}
	chips := &model.Product{Name: "Chips"}

	single := model.Transaction{
		Items: []model.TransactionItem{{Product: cola, Quantity: 1}},
		Total: 12.5,
	}
	single.CreatedAt = time.Date(2026, time.August, 30, 14, 5, 0, 0, time.UTC)

	multi := model.Transaction{
		Items: []model.TransactionItem{
			{Product: cola, Quantity: 2},
			{Product: chips, Quantity: 1},
			{Product: chips, Quantity: 3},
		},
		Total: 99,
	}
	multi.CreatedAt = time.Date(2026, time.August, 31, 9, 30, 0, 0, time.UTC)

	txRepo := newMockTransactionRepo()
	txRepo.recent = []model.Transaction{multi, single}
	svc := NewReportService(txRepo, newMockProductRepo(), cache.NewNoop())

	items, err := svc.RecentActivity(10)
	require.NoError(t, err)
	require.Len(t, items, 2)

	assert.Equal(t, "Sale completed", items[0].Action)
	assert.Equal(t, "Cola +2 more", items[0].Item)
	assert.Equal(t, "$99.00", items[0].Amount)
	assert.Equal(t, "Aug 31, 2026 09:30", items[0].Time)

	assert.Equal(t, "Cola", items[1].Item)
	assert.Equal(t, "$12.50", items[1].Amount)
}

func TestDashboard(t *testing.T) {
	products := newMockProductRepo(
		newProduct("Cola", "A-1", 10, 2),  // below fallback threshold
		newProduct("Chips", "B-1", 20, 50),
	)
	txRepo := newMockTransactionRepo()
	txRepo.totalSales = 200
	txRepo.totalCount = 4

	svc := NewReportService(txRepo, products, cache.NewNoop())

	snapshot, err := svc.Dashboard(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(2), snapshot.TotalProducts)
	assert.Equal(t, int64(1), snapshot.LowStockItems)
	assert.Equal(t, 200.0, snapshot.TotalSales)
	assert.Equal(t, int64(4), snapshot.TotalTransactions)
	assert.Len(t, snapshot.ProfitSeries, 6)
	assert.Empty(t, snapshot.RecentActivity)
}
