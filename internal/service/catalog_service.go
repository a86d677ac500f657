package service

import (
	"errors"
	"fmt"

	"go-retail-pos/internal/model"
	"go-retail-pos/internal/repository"
	"go-retail-pos/pkg/validator"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProductPage is the paginated GET /products envelope.
type ProductPage struct {
	Products      []model.Product `json:"products"`
	CurrentPage   int             `json:"currentPage"`
	TotalPages    int64           `json:"totalPages"`
	TotalProducts int64           `json:"totalProducts"`
}

// CatalogService manages the product catalog and its reference data.
// Stock is intentionally absent here beyond initial values: once a product
// exists, only the ledger moves its stock.
type CatalogService interface {
	CreateProduct(req *model.Product, userID string) error
	UpdateProduct(id uuid.UUID, req *model.Product, userID string) (*model.Product, error)
	DeleteProduct(id uuid.UUID, userID string) error
	GetProduct(id uuid.UUID) (*model.Product, error)
	SearchProducts(query string, page, limit int) (*ProductPage, error)

	CreateCategory(req *model.Category, userID string) error
	UpdateCategory(id uuid.UUID, req *model.Category, userID string) (*model.Category, error)
	DeleteCategory(id uuid.UUID) error
	ListCategories() ([]model.Category, error)

	CreateSupplier(req *model.Supplier, userID string) error
	UpdateSupplier(id uuid.UUID, req *model.Supplier, userID string) (*model.Supplier, error)
	DeleteSupplier(id uuid.UUID) error
	ListSuppliers() ([]model.Supplier, error)

	CreateInvestor(req *model.Investor, userID string) error
	UpdateInvestor(id uuid.UUID, req *model.Investor, userID string) (*model.Investor, error)
	DeleteInvestor(id uuid.UUID) error
	ListInvestors() ([]model.Investor, error)
}

type catalogService struct {
	products   repository.ProductRepository
	categories repository.CategoryRepository
	suppliers  repository.SupplierRepository
	investors  repository.InvestorRepository
}

func NewCatalogService(
	products repository.ProductRepository,
	categories repository.CategoryRepository,
	suppliers repository.SupplierRepository,
	investors repository.InvestorRepository,
) CatalogService {
	return &catalogService{
		products:   products,
		categories: categories,
		suppliers:  suppliers,
		investors:  investors,
	}
}

func validationError(errs []*validator.ErrorResponse) error {
	first := errs[0]
	return fmt.Errorf("validation failed: field '%s' failed on tag '%s'", first.FailedField, first.Tag)
}

func (s *catalogService) CreateProduct(req *model.Product, userID string) error {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		return validationError(errs)
	}

	if existing, _ := s.products.FindBySKU(req.SKU); existing != nil {
		return ErrDuplicateSKU
	}
	if req.Barcode != nil && *req.Barcode != "" {
		if existing, _ := s.products.FindByBarcode(*req.Barcode); existing != nil {
			return ErrDuplicateBarcode
		}
	}

	req.CreatedBy = userID
	req.UpdatedBy = userID
	if err := s.products.Create(req); err != nil {
		return fmt.Errorf("%w: %v", ErrInternal, err)
	}
	return nil
}

func (s *catalogService) UpdateProduct(id uuid.UUID, req *model.Product, userID string) (*model.Product, error) {
	existing, err := s.products.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	if req.SKU != existing.SKU {
		if other, _ := s.products.FindBySKU(req.SKU); other != nil && other.ID != id {
			return nil, ErrDuplicateSKU
		}
	}
	if req.Barcode != nil && *req.Barcode != "" {
		if other, _ := s.products.FindByBarcode(*req.Barcode); other != nil && other.ID != id {
			return nil, ErrDuplicateBarcode
		}
	}

	existing.Name = req.Name
	existing.Description = req.Description
	existing.SKU = req.SKU
	existing.Barcode = req.Barcode
	existing.Price = req.Price
	existing.Cost = req.Cost
	existing.MinStock = req.MinStock
	existing.Unit = req.Unit
	existing.CategoryID = req.CategoryID
	existing.SupplierID = req.SupplierID
	existing.IsActive = req.IsActive
	existing.UpdatedBy = userID

	if errs := validator.ValidateStruct(existing); len(errs) > 0 {
		return nil, validationError(errs)
	}
	if err := s.products.Update(existing); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}
	return existing, nil
}

func (s *catalogService) DeleteProduct(id uuid.UUID, userID string) error {
	if err := s.products.Delete(id, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProductNotFound
		}
		return fmt.Errorf("%w: %v", ErrInternal, err)
	}
	return nil
}

func (s *catalogService) GetProduct(id uuid.UUID) (*model.Product, error) {
	product, err := s.products.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}
	return product, nil
}

func (s *catalogService) SearchProducts(query string, page, limit int) (*ProductPage, error) {
	products, total, err := s.products.Search(query, page, limit)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}
	totalPages := total / int64(limit)
	if total%int64(limit) != 0 {
		totalPages++
	}
	return &ProductPage{
		Products:      products,
		CurrentPage:   page,
		TotalPages:    totalPages,
		TotalProducts: total,
	}, nil
}

func (s *catalogService) CreateCategory(req *model.Category, userID string) error {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		return validationError(errs)
	}
	if existing, _ := s.categories.FindByName(req.Name); existing != nil {
		return ErrDuplicateCategory
	}
	req.CreatedBy = userID
	req.UpdatedBy = userID
	if err := s.categories.Create(req); err != nil {
		return fmt.Errorf("%w: %v", ErrInternal, err)
	}
	return nil
}

func (s *catalogService) UpdateCategory(id uuid.UUID, req *model.Category, userID string) (*model.Category, error) {
	existing, err := s.categories.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}
	if req.Name != existing.Name {
		if other, _ := s.categories.FindByName(req.Name); other != nil && other.ID != id {
			return nil, ErrDuplicateCategory
		}
	}

	existing.Name = req.Name
	existing.Description = req.Description
	existing.ParentID = req.ParentID
	existing.IsActive = req.IsActive
	existing.UpdatedBy = userID

	if errs := validator.ValidateStruct(existing); len(errs) > 0 {
		return nil, validationError(errs)
	}
	if err := s.categories.Update(existing); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}
	return existing, nil
}

func (s *catalogService) DeleteCategory(id uuid.UUID) error {
	if err := s.categories.Delete(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCategoryNotFound
		}
		return fmt.Errorf("%w: %v", ErrInternal, err)
	}
	return nil
}

func (s *catalogService) ListCategories() ([]model.Category, error) {
	categories, err := s.categories.FindAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}
	return categories, nil
}

func (s *catalogService) CreateSupplier(req *model.Supplier, userID string) error {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		return validationError(errs)
	}
	if existing, _ := s.suppliers.FindByEmail(req.Email); existing != nil {
		return ErrDuplicateSupplier
	}
	req.CreatedBy = userID
	req.UpdatedBy = userID
	if err := s.suppliers.Create(req); err != nil {
		return fmt.Errorf("%w: %v", ErrInternal, err)
	}
	return nil
}

func (s *catalogService) UpdateSupplier(id uuid.UUID, req *model.Supplier, userID string) (*model.Supplier, error) {
	existing, err := s.suppliers.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSupplierNotFound
		}
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}
	if req.Email != existing.Email {
		if other, _ := s.suppliers.FindByEmail(req.Email); other != nil && other.ID != id {
			return nil, ErrDuplicateSupplier
		}
	}

	existing.Name = req.Name
	existing.ContactPerson = req.ContactPerson
	existing.Email = req.Email
	existing.Phone = req.Phone
	existing.Street = req.Street
	existing.City = req.City
	existing.State = req.State
	existing.Country = req.Country
	existing.ZipCode = req.ZipCode
	existing.TaxID = req.TaxID
	existing.PaymentTerms = req.PaymentTerms
	existing.IsActive = req.IsActive
	existing.UpdatedBy = userID

	if errs := validator.ValidateStruct(existing); len(errs) > 0 {
		return nil, validationError(errs)
	}
	if err := s.suppliers.Update(existing); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}
	return existing, nil
}

func (s *catalogService) DeleteSupplier(id uuid.UUID) error {
	if err := s.suppliers.Delete(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrSupplierNotFound
		}
		return fmt.Errorf("%w: %v", ErrInternal, err)
	}
	return nil
}

func (s *catalogService) ListSuppliers() ([]model.Supplier, error) {
	suppliers, err := s.suppliers.FindAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}
	return suppliers, nil
}

func (s *catalogService) CreateInvestor(req *model.Investor, userID string) error {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		return validationError(errs)
	}
	req.CreatedBy = userID
	req.UpdatedBy = userID
	if err := s.investors.Create(req); err != nil {
		return fmt.Errorf("%w: %v", ErrInternal, err)
	}
	return nil
}

func (s *catalogService) UpdateInvestor(id uuid.UUID, req *model.Investor, userID string) (*model.Investor, error) {
	existing, err := s.investors.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvestorNotFound
		}
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	existing.Name = req.Name
	existing.Email = req.Email
	existing.Principal = req.Principal
	existing.Interest = req.Interest
	existing.Months = req.Months
	existing.StartDate = req.StartDate
	existing.UpdatedBy = userID

	if errs := validator.ValidateStruct(existing); len(errs) > 0 {
		return nil, validationError(errs)
	}
	if err := s.investors.Update(existing); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}
	return existing, nil
}

func (s *catalogService) DeleteInvestor(id uuid.UUID) error {
	if err := s.investors.Delete(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrInvestorNotFound
		}
		return fmt.Errorf("%w: %v", ErrInternal, err)
	}
	return nil
}

func (s *catalogService) ListInvestors() ([]model.Investor, error) {
	investors, err := s.investors.FindAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}
	return investors, nil
}
