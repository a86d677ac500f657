package model

import "github.com/google/uuid"

type Category struct {
	BaseModel
	Name        string     `gorm:"type:varchar(255);uniqueIndex;not null" json:"name" validate:"required"`
	Description string     `gorm:"type:text" json:"description"`
	ParentID    *uuid.UUID `gorm:"type:uuid;index" json:"parentId,omitempty"`
	Parent      *Category  `gorm:"foreignKey:ParentID" json:"parent,omitempty" validate:"-"`
	IsActive    bool       `gorm:"default:true" json:"isActive"`
}
