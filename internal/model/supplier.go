package model

// Payment terms a supplier can be contracted on.
const (
	TermsImmediate = "immediate"
	TermsNet15     = "net15"
	TermsNet30     = "net30"
	TermsNet60     = "net60"
)

type Supplier struct {
	BaseModel
	Name          string `gorm:"type:varchar(255);not null" json:"name" validate:"required"`
	ContactPerson string `gorm:"type:varchar(255);not null" json:"contactPerson" validate:"required"`
	Email         string `gorm:"type:varchar(255);uniqueIndex;not null" json:"email" validate:"required,email"`
	Phone         string `gorm:"type:varchar(30);not null" json:"phone" validate:"required"`

	Street  string `gorm:"type:varchar(255)" json:"street"`
	City    string `gorm:"type:varchar(100)" json:"city"`
	State   string `gorm:"type:varchar(100)" json:"state"`
	Country string `gorm:"type:varchar(100)" json:"country"`
	ZipCode string `gorm:"type:varchar(20)" json:"zipCode"`

	TaxID        string `gorm:"type:varchar(50)" json:"taxId,omitempty"`
	PaymentTerms string `gorm:"type:varchar(20);not null" json:"paymentTerms" validate:"required,oneof=immediate net15 net30 net60"`
	IsActive     bool   `gorm:"default:true" json:"isActive"`
}
