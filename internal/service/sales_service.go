package service

import (
	"encoding/json"
	"errors"
	"fmt"

	"go-retail-pos/internal/model"
	"go-retail-pos/internal/repository"
	"go-retail-pos/internal/ws"
	"go-retail-pos/pkg/validator"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// SalesService is the transaction state machine: a sale is created directly in
// completed state with all stock effects applied, and cancellation reverses
// the stock effects without touching the monetary record.
type SalesService interface {
	Create(req *model.CreateSaleRequest, userID string) (*model.Transaction, error)
	Cancel(id uuid.UUID, userID string) (*model.Transaction, error)
	List(filter repository.TransactionFilter) ([]model.Transaction, int64, error)
	GetByID(id uuid.UUID) (*model.Transaction, error)
}

type salesService struct {
	ledger StockLedger
	txRepo repository.TransactionRepository
	hub    *ws.Hub
}

func NewSalesService(ledger StockLedger, txRepo repository.TransactionRepository, hub *ws.Hub) SalesService {
	return &salesService{
		ledger: ledger,
		txRepo: txRepo,
		hub:    hub,
	}
}

// Create prices and commits a sale in one step. Each line is reserved through
// the ledger; if any later line fails, every earlier reservation is released
// again, so a failed sale never leaves partial stock mutations behind.
func (s *salesService) Create(req *model.CreateSaleRequest, userID string) (*model.Transaction, error) {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		first := errs[0]
		return nil, fmt.Errorf("validation failed: field '%s' failed on tag '%s'", first.FailedField, first.Tag)
	}
	if req.Discount != nil {
		if req.Discount.Value < 0 {
			return nil, ErrInvalidDiscount
		}
		if req.Discount.Type == model.DiscountPercentage && req.Discount.Value > 100 {
			return nil, ErrInvalidDiscount
		}
	}

	var reserved []model.TransactionItem
	rollback := func() {
		for _, item := range reserved {
			s.ledger.Release(item.ProductID, item.Quantity)
		}
	}

	for _, line := range req.Items {
		product, err := s.ledger.Reserve(line.Product, line.Quantity)
		if err != nil {
			rollback()
			return nil, err
		}
		reserved = append(reserved, model.TransactionItem{
			ProductID: product.ID,
			Product:   product,
			Quantity:  line.Quantity,
			Price:     product.Price,
		})
	}

	tx := &model.Transaction{
		Items:         reserved,
		Discount:      req.Discount,
		PaymentMethod: req.PaymentMethod,
		Status:        model.StatusCompleted,
	}
	tx.CreatedBy = userID
	tx.UpdatedBy = userID
	tx.CalculateTotals()

	if tx.Total < 0 {
		rollback()
		return nil, ErrDiscountExceedsSubtotal
	}

	if err := s.txRepo.Create(tx); err != nil {
		rollback()
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	s.broadcastSale("sale_completed", tx, userID)
	return tx, nil
}

// Cancel restores stock for every line and flips the record to cancelled.
// The status flip happens first, through a guarded update, so stock is
// restored at most once even under concurrent cancels. Monetary fields are
// left as sold, for audit.
func (s *salesService) Cancel(id uuid.UUID, userID string) (*model.Transaction, error) {
	tx, err := s.txRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTransactionNotFound
		}
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	flipped, err := s.txRepo.MarkCancelled(id, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}
	if !flipped {
		return nil, ErrAlreadyCancelled
	}

	for _, item := range tx.Items {
		s.ledger.Release(item.ProductID, item.Quantity)
	}

	tx.Status = model.StatusCancelled
	tx.UpdatedBy = userID

	s.broadcastSale("sale_cancelled", tx, userID)
	return tx, nil
}

func (s *salesService) List(filter repository.TransactionFilter) ([]model.Transaction, int64, error) {
	return s.txRepo.List(filter)
}

func (s *salesService) GetByID(id uuid.UUID) (*model.Transaction, error) {
	tx, err := s.txRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTransactionNotFound
		}
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}
	return tx, nil
}

func (s *salesService) broadcastSale(action string, tx *model.Transaction, userID string) {
	if s.hub == nil {
		return
	}
	go func() {
		lines := make([]map[string]interface{}, 0, len(tx.Items))
		for _, item := range tx.Items {
			line := map[string]interface{}{
				"product_id": item.ProductID,
				"quantity":   item.Quantity,
			}
			if item.Product != nil {
				line["name"] = item.Product.Name
				line["sku"] = item.Product.SKU
				line["stock"] = item.Product.Stock
			}
			lines = append(lines, line)
		}
		payload := map[string]interface{}{
			"type":   "stock_update",
			"action": action,
			"transaction": map[string]interface{}{
				"id":     tx.ID,
				"total":  tx.Total,
				"status": tx.Status,
				"items":  lines,
			},
			"user_id": userID,
		}
		msg, err := json.Marshal(payload)
		if err != nil {
			log.WithError(err).Warn("failed to marshal stock update broadcast")
			return
		}
		s.hub.Broadcast <- msg
	}()
}
