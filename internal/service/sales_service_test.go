package service

import (
	"testing"

	"go-retail-pos/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newProduct(name, sku string, price float64, stock int) *model.Product {
	p := &model.Product{
		Name:  name,
		SKU:   sku,
		Price: price,
		Stock: stock,
		Unit:  model.UnitPiece,
	}
	p.ID = uuid.New()
	return p
}

func setupSales(products ...*model.Product) (SalesService, *mockProductRepo, *mockTransactionRepo) {
	productRepo := newMockProductRepo(products...)
	txRepo := newMockTransactionRepo()
	svc := NewSalesService(NewStockLedger(productRepo), txRepo, nil)
	return svc, productRepo, txRepo
}

func TestCreateSale(t *testing.T) {
	t.Run("multi-line sale prices, totals and decrements stock", func(t *testing.T) {
		a := newProduct("Cola", "A-1", 10, 3)
		b := newProduct("Chips", "B-1", 20, 10)
		svc, products, _ := setupSales(a, b)

		tx, err := svc.Create(&model.CreateSaleRequest{
			Items: []model.SaleLine{
				{Product: a.ID, Quantity: 2},
				{Product: b.ID, Quantity: 1},
			},
			PaymentMethod: model.PaymentCash,
		}, "cashier-1")

		require.NoError(t, err)
		assert.Equal(t, model.StatusCompleted, tx.Status)
		assert.Equal(t, 40.0, tx.Subtotal)
		assert.Equal(t, 0.0, tx.DiscountAmount)
		assert.Equal(t, 40.0, tx.Total)
		require.Len(t, tx.Items, 2)
		assert.Equal(t, 20.0, tx.Items[0].Subtotal)
		assert.Equal(t, 10.0, tx.Items[0].Price)

		assert.Equal(t, 1, products.store[a.ID].Stock)
		assert.Equal(t, 9, products.store[b.ID].Stock)
	})

	t.Run("selling exactly the remaining stock drains it to zero", func(t *testing.T) {
		a := newProduct("Cola", "A-1", 10, 5)
		svc, products, _ := setupSales(a)

		_, err := svc.Create(&model.CreateSaleRequest{
			Items:         []model.SaleLine{{Product: a.ID, Quantity: 5}},
			PaymentMethod: model.PaymentCash,
		}, "cashier-1")

		require.NoError(t, err)
		assert.Equal(t, 0, products.store[a.ID].Stock)
	})

	t.Run("insufficient stock fails without mutating anything", func(t *testing.T) {
		a := newProduct("Cola", "A-1", 10, 3)
		svc, products, txRepo := setupSales(a)

		_, err := svc.Create(&model.CreateSaleRequest{
			Items:         []model.SaleLine{{Product: a.ID, Quantity: 5}},
			PaymentMethod: model.PaymentCash,
		}, "cashier-1")

		assert.ErrorIs(t, err, ErrInsufficientStock)
		assert.Contains(t, err.Error(), "Cola")
		assert.Equal(t, 3, products.store[a.ID].Stock)
		assert.Empty(t, txRepo.store)
	})

	t.Run("failure on a later line releases earlier reservations", func(t *testing.T) {
		a := newProduct("Cola", "A-1", 10, 3)
		b := newProduct("Chips", "B-1", 20, 1)
		svc, products, _ := setupSales(a, b)

		_, err := svc.Create(&model.CreateSaleRequest{
			Items: []model.SaleLine{
				{Product: a.ID, Quantity: 2},
				{Product: b.ID, Quantity: 5},
			},
			PaymentMethod: model.PaymentCash,
		}, "cashier-1")

		assert.ErrorIs(t, err, ErrInsufficientStock)
		assert.Equal(t, 3, products.store[a.ID].Stock)
		assert.Equal(t, 1, products.store[b.ID].Stock)
	})

	t.Run("missing product fails the whole sale", func(t *testing.T) {
		a := newProduct("Cola", "A-1", 10, 3)
		svc, products, _ := setupSales(a)

		_, err := svc.Create(&model.CreateSaleRequest{
			Items: []model.SaleLine{
				{Product: a.ID, Quantity: 1},
				{Product: uuid.New(), Quantity: 1},
			},
			PaymentMethod: model.PaymentCash,
		}, "cashier-1")

		assert.ErrorIs(t, err, ErrProductNotFound)
		assert.Equal(t, 3, products.store[a.ID].Stock)
	})

	t.Run("percentage discount", func(t *testing.T) {
		a := newProduct("Cola", "A-1", 100, 10)
		svc, _, _ := setupSales(a)

		tx, err := svc.Create(&model.CreateSaleRequest{
			Items:         []model.SaleLine{{Product: a.ID, Quantity: 1}},
			PaymentMethod: model.PaymentCard,
			Discount:      &model.Discount{Type: model.DiscountPercentage, Value: 10},
		}, "cashier-1")

		require.NoError(t, err)
		assert.Equal(t, 100.0, tx.Subtotal)
		assert.Equal(t, 10.0, tx.DiscountAmount)
		assert.Equal(t, 90.0, tx.Total)
	})

	t.Run("fixed discount larger than subtotal is rejected and stock restored", func(t *testing.T) {
		a := newProduct("Cola", "A-1", 10, 3)
		svc, products, txRepo := setupSales(a)

		_, err := svc.Create(&model.CreateSaleRequest{
			Items:         []model.SaleLine{{Product: a.ID, Quantity: 1}},
			PaymentMethod: model.PaymentCash,
			Discount:      &model.Discount{Type: model.DiscountFixed, Value: 50},
		}, "cashier-1")

		assert.ErrorIs(t, err, ErrDiscountExceedsSubtotal)
		assert.Equal(t, 3, products.store[a.ID].Stock)
		assert.Empty(t, txRepo.store)
	})

	t.Run("percentage above 100 is rejected", func(t *testing.T) {
		a := newProduct("Cola", "A-1", 10, 3)
		svc, _, _ := setupSales(a)

		_, err := svc.Create(&model.CreateSaleRequest{
			Items:         []model.SaleLine{{Product: a.ID, Quantity: 1}},
			PaymentMethod: model.PaymentCash,
			Discount:      &model.Discount{Type: model.DiscountPercentage, Value: 120},
		}, "cashier-1")

		assert.ErrorIs(t, err, ErrInvalidDiscount)
	})

	t.Run("empty item list is rejected", func(t *testing.T) {
		svc, _, _ := setupSales()

		_, err := svc.Create(&model.CreateSaleRequest{
			Items:         nil,
			PaymentMethod: model.PaymentCash,
		}, "cashier-1")

		assert.Error(t, err)
	})

	t.Run("persist failure releases all reservations", func(t *testing.T) {
		a := newProduct("Cola", "A-1", 10, 3)
		svc, products, txRepo := setupSales(a)
		txRepo.createErr = assert.AnError

		_, err := svc.Create(&model.CreateSaleRequest{
			Items:         []model.SaleLine{{Product: a.ID, Quantity: 2}},
			PaymentMethod: model.PaymentCash,
		}, "cashier-1")

		assert.ErrorIs(t, err, ErrInternal)
		assert.Equal(t, 3, products.store[a.ID].Stock)
	})
}

func TestCancelSale(t *testing.T) {
	t.Run("cancel restores stock and keeps monetary fields", func(t *testing.T) {
		a := newProduct("Cola", "A-1", 10, 3)
		svc, products, _ := setupSales(a)

		tx, err := svc.Create(&model.CreateSaleRequest{
			Items:         []model.SaleLine{{Product: a.ID, Quantity: 2}},
			PaymentMethod: model.PaymentCash,
		}, "cashier-1")
		require.NoError(t, err)
		require.Equal(t, 1, products.store[a.ID].Stock)

		cancelled, err := svc.Cancel(tx.ID, "manager-1")
		require.NoError(t, err)
		assert.Equal(t, model.StatusCancelled, cancelled.Status)
		assert.Equal(t, 20.0, cancelled.Total)
		assert.Equal(t, 3, products.store[a.ID].Stock)
	})

	t.Run("cancelling twice fails and restores stock only once", func(t *testing.T) {
		a := newProduct("Cola", "A-1", 10, 3)
		svc, products, _ := setupSales(a)

		tx, err := svc.Create(&model.CreateSaleRequest{
			Items:         []model.SaleLine{{Product: a.ID, Quantity: 2}},
			PaymentMethod: model.PaymentCash,
		}, "cashier-1")
		require.NoError(t, err)

		_, err = svc.Cancel(tx.ID, "manager-1")
		require.NoError(t, err)

		_, err = svc.Cancel(tx.ID, "manager-1")
		assert.ErrorIs(t, err, ErrAlreadyCancelled)
		assert.Equal(t, 3, products.store[a.ID].Stock)
	})

	t.Run("cancel tolerates a product deleted from the catalog", func(t *testing.T) {
		a := newProduct("Cola", "A-1", 10, 3)
		svc, products, _ := setupSales(a)

		tx, err := svc.Create(&model.CreateSaleRequest{
			Items:         []model.SaleLine{{Product: a.ID, Quantity: 2}},
			PaymentMethod: model.PaymentCash,
		}, "cashier-1")
		require.NoError(t, err)

		delete(products.store, a.ID)

		cancelled, err := svc.Cancel(tx.ID, "manager-1")
		require.NoError(t, err)
		assert.Equal(t, model.StatusCancelled, cancelled.Status)
	})

	t.Run("unknown transaction", func(t *testing.T) {
		svc, _, _ := setupSales()

		_, err := svc.Cancel(uuid.New(), "manager-1")
		assert.ErrorIs(t, err, ErrTransactionNotFound)
	})
}
