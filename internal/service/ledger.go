package service

import (
	"errors"
	"fmt"

	"go-retail-pos/internal/model"
	"go-retail-pos/internal/repository"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// StockLedger is the single authority over product on-hand quantity. Reserve
// checks and decrements in one guarded statement; Release puts quantity back.
type StockLedger interface {
	// Reserve takes quantity out of stock and returns the product snapshot the
	// sale line is priced at. Fails with ErrProductNotFound or
	// ErrInsufficientStock, leaving stock untouched.
	Reserve(productID uuid.UUID, quantity int) (*model.Product, error)

	// Release returns quantity to stock. Best-effort: a product deleted from
	// the catalog since the sale is logged and skipped, so catalog changes
	// never block cancelling a financial record.
	Release(productID uuid.UUID, quantity int)
}

type stockLedger struct {
	products repository.ProductRepository
}

func NewStockLedger(products repository.ProductRepository) StockLedger {
	return &stockLedger{products: products}
}

func (l *stockLedger) Reserve(productID uuid.UUID, quantity int) (*model.Product, error) {
	product, err := l.products.ReserveStock(productID, quantity)
	switch {
	case err == nil:
		return product, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil, fmt.Errorf("%w: %s", ErrProductNotFound, productID)
	case errors.Is(err, repository.ErrInsufficientStock):
		return nil, fmt.Errorf("%w for product: %s", ErrInsufficientStock, product.Name)
	default:
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}
}

func (l *stockLedger) Release(productID uuid.UUID, quantity int) {
	if err := l.products.ReleaseStock(productID, quantity); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			log.WithFields(log.Fields{
				"product_id": productID,
				"quantity":   quantity,
			}).Warn("release skipped: product no longer in catalog")
			return
		}
		log.WithError(err).WithField("product_id", productID).Error("release failed")
	}
}
