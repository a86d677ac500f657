package model

import "time"

// Investor records an outside investment: principal placed at a given interest
// rate (decimal, 0.1 = 10%) over a number of months.
type Investor struct {
	BaseModel
	Name      string    `gorm:"type:varchar(255);not null" json:"name" validate:"required"`
	Email     string    `gorm:"type:varchar(255);not null" json:"email" validate:"required,email"`
	Principal float64   `gorm:"not null" json:"principal" validate:"gte=0"`
	Interest  float64   `gorm:"not null" json:"interest" validate:"gte=0"`
	Months    int       `gorm:"not null" json:"months" validate:"required,gte=1"`
	StartDate time.Time `gorm:"not null" json:"startDate" validate:"required"`
}
