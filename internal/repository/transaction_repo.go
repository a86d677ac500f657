package repository

import (
	"database/sql"
	"time"

	"go-retail-pos/internal/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// TransactionFilter narrows List results. Zero values mean "no filter".
type TransactionFilter struct {
	Page          int
	Limit         int
	Status        model.TransactionStatus
	PaymentMethod model.PaymentMethod
	StartDate     *time.Time
	EndDate       *time.Time
}

// PaymentMethodTotal is the per-method revenue sum used by the stats report.
type PaymentMethodTotal struct {
	Method string  `json:"method"`
	Amount float64 `json:"amount"`
}

// MonthlyAmount is one (year, month) bucket of an aggregation.
type MonthlyAmount struct {
	Year   int
	Month  int
	Amount float64
}

type TransactionRepository interface {
	Create(tx *model.Transaction) error
	FindByID(id uuid.UUID) (*model.Transaction, error)
	List(filter TransactionFilter) ([]model.Transaction, int64, error)
	MarkCancelled(id uuid.UUID, updatedBy string) (bool, error)
	SalesTotals(start, end time.Time) (float64, int64, error)
	PaymentMethodTotals(start, end time.Time) ([]PaymentMethodTotal, error)
	MonthlyRevenue(start, end time.Time) ([]MonthlyAmount, error)
	MonthlyCost(start, end time.Time) ([]MonthlyAmount, error)
	RecentCompleted(limit int) ([]model.Transaction, error)
}

type transactionRepo struct {
	db *gorm.DB
}

func NewTransactionRepo(db *gorm.DB) TransactionRepository {
	return &transactionRepo{db}
}

func (r *transactionRepo) Create(tx *model.Transaction) error {
	return errors.Wrap(r.db.Create(tx).Error, "create transaction")
}

func (r *transactionRepo) FindByID(id uuid.UUID) (*model.Transaction, error) {
	var tx model.Transaction
	err := r.db.Preload("Items").Preload("Items.Product").First(&tx, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &tx, nil
}

func (r *transactionRepo) List(filter TransactionFilter) ([]model.Transaction, int64, error) {
	var transactions []model.Transaction
	var total int64

	q := r.db.Model(&model.Transaction{})
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.PaymentMethod != "" {
		q = q.Where("payment_method = ?", filter.PaymentMethod)
	}
	if filter.StartDate != nil {
		q = q.Where("created_at >= ?", *filter.StartDate)
	}
	if filter.EndDate != nil {
		q = q.Where("created_at <= ?", *filter.EndDate)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, errors.Wrap(err, "count transactions")
	}

	err := q.Preload("Items").Preload("Items.Product").
		Order("created_at DESC").
		Offset((filter.Page - 1) * filter.Limit).
		Limit(filter.Limit).
		Find(&transactions).Error
	if err != nil {
		return nil, 0, errors.Wrap(err, "list transactions")
	}
	return transactions, total, nil
}

// MarkCancelled flips status to cancelled with a guard on the current status,
// so a racing second cancel matches no row and stock is only restored once.
func (r *transactionRepo) MarkCancelled(id uuid.UUID, updatedBy string) (bool, error) {
	res := r.db.Model(&model.Transaction{}).
		Where("id = ? AND status <> ?", id, model.StatusCancelled).
		Updates(map[string]interface{}{
			"status":     model.StatusCancelled,
			"updated_by": updatedBy,
		})
	if res.Error != nil {
		return false, errors.Wrap(res.Error, "mark cancelled")
	}
	return res.RowsAffected > 0, nil
}

func (r *transactionRepo) SalesTotals(start, end time.Time) (float64, int64, error) {
	var row struct {
		TotalSales        float64
		TotalTransactions int64
	}
	err := r.db.Model(&model.Transaction{}).
		Select("COALESCE(SUM(total), 0) AS total_sales, COUNT(*) AS total_transactions").
		Where("status = ? AND created_at BETWEEN ? AND ?", model.StatusCompleted, start, end).
		Scan(&row).Error
	if err != nil {
		return 0, 0, errors.Wrap(err, "sales totals")
	}
	return row.TotalSales, row.TotalTransactions, nil
}

func (r *transactionRepo) PaymentMethodTotals(start, end time.Time) ([]PaymentMethodTotal, error) {
	var results []PaymentMethodTotal
	err := r.db.Model(&model.Transaction{}).
		Select("payment_method AS method, COALESCE(SUM(total), 0) AS amount").
		Where("status = ? AND created_at BETWEEN ? AND ?", model.StatusCompleted, start, end).
		Group("payment_method").
		Scan(&results).Error
	if err != nil {
		return nil, errors.Wrap(err, "payment method totals")
	}
	return results, nil
}

func (r *transactionRepo) MonthlyRevenue(start, end time.Time) ([]MonthlyAmount, error) {
	rows, err := r.db.Model(&model.Transaction{}).
		Select(`
			EXTRACT(YEAR FROM created_at)::int AS year,
			EXTRACT(MONTH FROM created_at)::int AS month,
			COALESCE(SUM(total), 0) AS amount
		`).
		Where("status = ? AND created_at BETWEEN ? AND ?", model.StatusCompleted, start, end).
		Group("1, 2").
		Order("year, month").
		Rows()
	if err != nil {
		return nil, errors.Wrap(err, "monthly revenue")
	}
	defer rows.Close()

	return scanMonthly(rows)
}

// MonthlyCost sums quantity * product cost per month across completed
// transactions. Lines whose product has since been deleted contribute zero.
func (r *transactionRepo) MonthlyCost(start, end time.Time) ([]MonthlyAmount, error) {
	rows, err := r.db.Raw(`
		SELECT
			EXTRACT(YEAR FROM t.created_at)::int AS year,
			EXTRACT(MONTH FROM t.created_at)::int AS month,
			COALESCE(SUM(ti.quantity * COALESCE(p.cost, 0)), 0) AS amount
		FROM transaction_items ti
		JOIN transactions t ON t.id = ti.transaction_id
		LEFT JOIN products p ON p.id = ti.product_id
		WHERE t.status = ? AND t.deleted_at IS NULL AND t.created_at BETWEEN ? AND ?
		GROUP BY 1, 2
		ORDER BY 1, 2
	`, model.StatusCompleted, start, end).Rows()
	if err != nil {
		return nil, errors.Wrap(err, "monthly cost")
	}
	defer rows.Close()

	return scanMonthly(rows)
}

func scanMonthly(rows *sql.Rows) ([]MonthlyAmount, error) {
	var results []MonthlyAmount
	for rows.Next() {
		var m MonthlyAmount
		if err := rows.Scan(&m.Year, &m.Month, &m.Amount); err != nil {
			return nil, errors.Wrap(err, "scan monthly row")
		}
		results = append(results, m)
	}
	return results, nil
}

func (r *transactionRepo) RecentCompleted(limit int) ([]model.Transaction, error) {
	var transactions []model.Transaction
	err := r.db.Preload("Items").Preload("Items.Product").
		Where("status = ?", model.StatusCompleted).
		Order("created_at DESC").
		Limit(limit).
		Find(&transactions).Error
	if err != nil {
		return nil, errors.Wrap(err, "recent transactions")
	}
	return transactions, nil
}
