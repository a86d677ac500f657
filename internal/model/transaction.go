package model

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PaymentMethod string

const (
	PaymentCash       PaymentMethod = "cash"
	PaymentCard       PaymentMethod = "card"
	PaymentCreditCard PaymentMethod = "credit_card"
	PaymentGCash      PaymentMethod = "gcash"
)

type TransactionStatus string

const (
	StatusPending   TransactionStatus = "pending"
	StatusCompleted TransactionStatus = "completed"
	StatusCancelled TransactionStatus = "cancelled"
)

type DiscountType string

const (
	DiscountPercentage DiscountType = "percentage"
	DiscountFixed      DiscountType = "fixed"
)

// Discount describes how a reduction is derived from the transaction subtotal.
type Discount struct {
	Type  DiscountType `gorm:"type:varchar(20)" json:"type" validate:"required,oneof=percentage fixed"`
	Value float64      `gorm:"default:0" json:"value" validate:"gte=0"`
	Code  string       `gorm:"type:varchar(50)" json:"code,omitempty"`
}

// AmountFor derives the discount amount from a subtotal.
func (d Discount) AmountFor(subtotal float64) float64 {
	if d.Type == DiscountPercentage {
		return subtotal * d.Value / 100
	}
	return d.Value
}

// TransactionItem is one sale line: the product, the quantity sold and the
// unit price captured at sale time. The price snapshot never changes when the
// catalog price does.
type TransactionItem struct {
	ID            uuid.UUID `gorm:"type:uuid;primary_key" json:"-"`
	TransactionID uuid.UUID `gorm:"type:uuid;not null;index" json:"-"`
	ProductID     uuid.UUID `gorm:"type:uuid;not null" json:"productId"`
	Product       *Product  `gorm:"foreignKey:ProductID" json:"product,omitempty" validate:"-"`
	Quantity      int       `gorm:"not null" json:"quantity" validate:"required,gt=0"`
	Price         float64   `gorm:"not null" json:"price"`
	Subtotal      float64   `gorm:"not null" json:"subtotal"`
}

func (item *TransactionItem) BeforeCreate(tx *gorm.DB) (err error) {
	if item.ID == uuid.Nil {
		item.ID = uuid.New()
	}
	return
}

type Transaction struct {
	BaseModel
	Items          []TransactionItem `gorm:"foreignKey:TransactionID;constraint:OnDelete:CASCADE" json:"items"`
	Subtotal       float64           `gorm:"not null" json:"subtotal"`
	Discount       *Discount         `gorm:"embedded;embeddedPrefix:discount_" json:"discount,omitempty"`
	DiscountAmount float64           `gorm:"not null;default:0" json:"discountAmount"`
	Total          float64           `gorm:"not null" json:"total"`
	PaymentMethod  PaymentMethod     `gorm:"type:varchar(20);not null;index" json:"paymentMethod"`
	Status         TransactionStatus `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
}

// CalculateTotals recomputes every derived monetary field from the line items
// and the discount descriptor. Callers never supply subtotal, discountAmount
// or total directly; this runs before each persist.
func (t *Transaction) CalculateTotals() {
	var subtotal float64
	for i := range t.Items {
		t.Items[i].Subtotal = t.Items[i].Price * float64(t.Items[i].Quantity)
		subtotal += t.Items[i].Subtotal
	}
	t.Subtotal = subtotal

	t.DiscountAmount = 0
	if t.Discount != nil {
		t.DiscountAmount = t.Discount.AmountFor(subtotal)
	}
	t.Total = subtotal - t.DiscountAmount
}

// SaleLine is one requested (product, quantity) pair in a checkout.
type SaleLine struct {
	Product  uuid.UUID `json:"product" validate:"uuid_required"`
	Quantity int       `json:"quantity" validate:"required,gt=0"`
}

// CreateSaleRequest is the POST /transactions payload.
type CreateSaleRequest struct {
	Items         []SaleLine    `json:"items" validate:"required,min=1,dive"`
	PaymentMethod PaymentMethod `json:"paymentMethod" validate:"required,oneof=cash card credit_card gcash"`
	Discount      *Discount     `json:"discount,omitempty"`
}
