package service

import (
	"time"

	"go-retail-pos/internal/model"
	"go-retail-pos/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type mockProductRepo struct {
	store map[uuid.UUID]*model.Product
}

func newMockProductRepo(products ...*model.Product) *mockProductRepo {
	repo := &mockProductRepo{store: make(map[uuid.UUID]*model.Product)}
	for _, p := range products {
		repo.store[p.ID] = p
	}
	return repo
}

func (m *mockProductRepo) Create(product *model.Product) error {
	if product.ID == uuid.Nil {
		product.ID = uuid.New()
	}
	m.store[product.ID] = product
	return nil
}

func (m *mockProductRepo) Search(query string, page, limit int) ([]model.Product, int64, error) {
	var products []model.Product
	for _, p := range m.store {
		products = append(products, *p)
	}
	return products, int64(len(products)), nil
}

func (m *mockProductRepo) FindByID(id uuid.UUID) (*model.Product, error) {
	p, ok := m.store[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return p, nil
}

func (m *mockProductRepo) FindBySKU(sku string) (*model.Product, error) {
	for _, p := range m.store {
		if p.SKU == sku {
			return p, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockProductRepo) FindByBarcode(barcode string) (*model.Product, error) {
	for _, p := range m.store {
		if p.Barcode != nil && *p.Barcode == barcode {
			return p, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockProductRepo) Update(product *model.Product) error {
	m.store[product.ID] = product
	return nil
}

func (m *mockProductRepo) Delete(id uuid.UUID, deletedBy string) error {
	if _, ok := m.store[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(m.store, id)
	return nil
}

func (m *mockProductRepo) ReserveStock(id uuid.UUID, quantity int) (*model.Product, error) {
	p, ok := m.store[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	if p.Stock < quantity {
		snapshot := *p
		return &snapshot, repository.ErrInsufficientStock
	}
	p.Stock -= quantity
	snapshot := *p
	return &snapshot, nil
}

func (m *mockProductRepo) ReleaseStock(id uuid.UUID, quantity int) error {
	p, ok := m.store[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	p.Stock += quantity
	return nil
}

func (m *mockProductRepo) Count() (int64, error) {
	return int64(len(m.store)), nil
}

func (m *mockProductRepo) CountLowStock(fallbackThreshold int) (int64, error) {
	var count int64
	for _, p := range m.store {
		threshold := fallbackThreshold
		if p.MinStock > 0 {
			threshold = p.MinStock
		}
		if p.Stock < threshold {
			count++
		}
	}
	return count, nil
}

type mockTransactionRepo struct {
	store     map[uuid.UUID]*model.Transaction
	createErr error

	// canned aggregation results for report tests
	totalSales float64
	totalCount int64
	byMethod   []repository.PaymentMethodTotal
	revenue    []repository.MonthlyAmount
	cost       []repository.MonthlyAmount
	recent     []model.Transaction
}

func newMockTransactionRepo() *mockTransactionRepo {
	return &mockTransactionRepo{store: make(map[uuid.UUID]*model.Transaction)}
}

func (m *mockTransactionRepo) Create(tx *model.Transaction) error {
	if m.createErr != nil {
		return m.createErr
	}
	if tx.ID == uuid.Nil {
		tx.ID = uuid.New()
	}
	tx.CreatedAt = time.Now()
	m.store[tx.ID] = tx
	return nil
}

func (m *mockTransactionRepo) FindByID(id uuid.UUID) (*model.Transaction, error) {
	tx, ok := m.store[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	snapshot := *tx
	return &snapshot, nil
}

func (m *mockTransactionRepo) List(filter repository.TransactionFilter) ([]model.Transaction, int64, error) {
	var transactions []model.Transaction
	for _, tx := range m.store {
		if filter.Status != "" && tx.Status != filter.Status {
			continue
		}
		if filter.PaymentMethod != "" && tx.PaymentMethod != filter.PaymentMethod {
			continue
		}
		transactions = append(transactions, *tx)
	}
	return transactions, int64(len(transactions)), nil
}

func (m *mockTransactionRepo) MarkCancelled(id uuid.UUID, updatedBy string) (bool, error) {
	tx, ok := m.store[id]
	if !ok || tx.Status == model.StatusCancelled {
		return false, nil
	}
	tx.Status = model.StatusCancelled
	tx.UpdatedBy = updatedBy
	return true, nil
}

func (m *mockTransactionRepo) SalesTotals(start, end time.Time) (float64, int64, error) {
	return m.totalSales, m.totalCount, nil
}

func (m *mockTransactionRepo) PaymentMethodTotals(start, end time.Time) ([]repository.PaymentMethodTotal, error) {
	return m.byMethod, nil
}

func (m *mockTransactionRepo) MonthlyRevenue(start, end time.Time) ([]repository.MonthlyAmount, error) {
	return m.revenue, nil
}

func (m *mockTransactionRepo) MonthlyCost(start, end time.Time) ([]repository.MonthlyAmount, error) {
	return m.cost, nil
}

func (m *mockTransactionRepo) RecentCompleted(limit int) ([]model.Transaction, error) {
	if len(m.recent) > limit {
		return m.recent[:limit], nil
	}
	return m.recent, nil
}
