package repository

import (
	"go-retail-pos/internal/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// ErrInsufficientStock is returned by ReserveStock when the guarded decrement
// matches no row because the remaining stock is below the requested quantity.
var ErrInsufficientStock = errors.New("insufficient stock")

type ProductRepository interface {
	Create(product *model.Product) error
	Search(query string, page, limit int) ([]model.Product, int64, error)
	FindByID(id uuid.UUID) (*model.Product, error)
	FindBySKU(sku string) (*model.Product, error)
	FindByBarcode(barcode string) (*model.Product, error)
	Update(product *model.Product) error
	Delete(id uuid.UUID, deletedBy string) error
	ReserveStock(id uuid.UUID, quantity int) (*model.Product, error)
	ReleaseStock(id uuid.UUID, quantity int) error
	Count() (int64, error)
	CountLowStock(fallbackThreshold int) (int64, error)
}

type productRepo struct {
	db *gorm.DB
}

func NewProductRepo(db *gorm.DB) ProductRepository {
	return &productRepo{db}
}

func (r *productRepo) Create(product *model.Product) error {
	return errors.Wrap(r.db.Create(product).Error, "create product")
}

func (r *productRepo) Search(query string, page, limit int) ([]model.Product, int64, error) {
	var products []model.Product
	var total int64

	q := r.db.Model(&model.Product{})
	if query != "" {
		pattern := "%" + query + "%"
		q = q.Where("name ILIKE ? OR sku ILIKE ? OR description ILIKE ?", pattern, pattern, pattern)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, errors.Wrap(err, "count products")
	}

	err := q.Preload("Category").Preload("Supplier").
		Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&products).Error
	if err != nil {
		return nil, 0, errors.Wrap(err, "search products")
	}
	return products, total, nil
}

func (r *productRepo) FindByID(id uuid.UUID) (*model.Product, error) {
	var product model.Product
	err := r.db.Preload("Category").Preload("Supplier").First(&product, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *productRepo) FindBySKU(sku string) (*model.Product, error) {
	var product model.Product
	if err := r.db.First(&product, "sku = ?", sku).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *productRepo) FindByBarcode(barcode string) (*model.Product, error) {
	var product model.Product
	if err := r.db.First(&product, "barcode = ?", barcode).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *productRepo) Update(product *model.Product) error {
	return errors.Wrap(r.db.Save(product).Error, "update product")
}

func (r *productRepo) Delete(id uuid.UUID, deletedBy string) error {
	res := r.db.Where("id = ?", id).Delete(&model.Product{})
	if res.Error != nil {
		return errors.Wrap(res.Error, "delete product")
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ReserveStock decrements stock by quantity in a single guarded statement, so
// two concurrent sales can never both pass the availability check. It returns
// the product snapshot whose price the sale line is priced at.
// Missing product -> gorm.ErrRecordNotFound; not enough stock -> ErrInsufficientStock.
func (r *productRepo) ReserveStock(id uuid.UUID, quantity int) (*model.Product, error) {
	var product model.Product
	if err := r.db.First(&product, "id = ?", id).Error; err != nil {
		return nil, err
	}

	res := r.db.Model(&model.Product{}).
		Where("id = ? AND stock >= ?", id, quantity).
		UpdateColumn("stock", gorm.Expr("stock - ?", quantity))
	if res.Error != nil {
		return nil, errors.Wrap(res.Error, "reserve stock")
	}
	if res.RowsAffected == 0 {
		return &product, ErrInsufficientStock
	}

	product.Stock -= quantity
	return &product, nil
}

// ReleaseStock puts quantity back. Missing product -> gorm.ErrRecordNotFound;
// the caller decides whether that blocks anything.
func (r *productRepo) ReleaseStock(id uuid.UUID, quantity int) error {
	res := r.db.Model(&model.Product{}).
		Where("id = ?", id).
		UpdateColumn("stock", gorm.Expr("stock + ?", quantity))
	if res.Error != nil {
		return errors.Wrap(res.Error, "release stock")
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *productRepo) Count() (int64, error) {
	var total int64
	err := r.db.Model(&model.Product{}).Count(&total).Error
	return total, errors.Wrap(err, "count products")
}

// CountLowStock counts products under their own min_stock when one is set,
// otherwise under the fallback threshold.
func (r *productRepo) CountLowStock(fallbackThreshold int) (int64, error) {
	var total int64
	err := r.db.Model(&model.Product{}).
		Where("stock < CASE WHEN min_stock > 0 THEN min_stock ELSE ? END", fallbackThreshold).
		Count(&total).Error
	return total, errors.Wrap(err, "count low stock")
}
