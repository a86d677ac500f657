package repository

import (
	"go-retail-pos/internal/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type InvestorRepository interface {
	Create(investor *model.Investor) error
	FindAll() ([]model.Investor, error)
	FindByID(id uuid.UUID) (*model.Investor, error)
	Update(investor *model.Investor) error
	Delete(id uuid.UUID) error
}

type investorRepo struct {
	db *gorm.DB
}

func NewInvestorRepo(db *gorm.DB) InvestorRepository {
	return &investorRepo{db}
}

func (r *investorRepo) Create(investor *model.Investor) error {
	return errors.Wrap(r.db.Create(investor).Error, "create investor")
}

func (r *investorRepo) FindAll() ([]model.Investor, error) {
	var investors []model.Investor
	err := r.db.Order("created_at DESC").Find(&investors).Error
	return investors, errors.Wrap(err, "list investors")
}

func (r *investorRepo) FindByID(id uuid.UUID) (*model.Investor, error) {
	var investor model.Investor
	if err := r.db.First(&investor, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &investor, nil
}

func (r *investorRepo) Update(investor *model.Investor) error {
	return errors.Wrap(r.db.Save(investor).Error, "update investor")
}

func (r *investorRepo) Delete(id uuid.UUID) error {
	res := r.db.Where("id = ?", id).Delete(&model.Investor{})
	if res.Error != nil {
		return errors.Wrap(res.Error, "delete investor")
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
