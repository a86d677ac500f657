package service

import (
	"testing"

	"go-retail-pos/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type mockCategoryRepo struct {
	store map[uuid.UUID]*model.Category
}

func (m *mockCategoryRepo) Create(c *model.Category) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	m.store[c.ID] = c
	return nil
}

func (m *mockCategoryRepo) FindAll() ([]model.Category, error) {
	var categories []model.Category
	for _, c := range m.store {
		categories = append(categories, *c)
	}
	return categories, nil
}

func (m *mockCategoryRepo) FindByID(id uuid.UUID) (*model.Category, error) {
	c, ok := m.store[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return c, nil
}

func (m *mockCategoryRepo) FindByName(name string) (*model.Category, error) {
	for _, c := range m.store {
		if c.Name == name {
			return c, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockCategoryRepo) Update(c *model.Category) error {
	m.store[c.ID] = c
	return nil
}

func (m *mockCategoryRepo) Delete(id uuid.UUID) error {
	if _, ok := m.store[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(m.store, id)
	return nil
}

func setupCatalog(products ...*model.Product) (CatalogService, *mockProductRepo) {
	productRepo := newMockProductRepo(products...)
	svc := NewCatalogService(productRepo, &mockCategoryRepo{store: make(map[uuid.UUID]*model.Category)}, nil, nil)
	return svc, productRepo
}

func validProduct(sku string) *model.Product {
	return &model.Product{
		Name:       "Cola",
		SKU:        sku,
		Price:      10,
		Cost:       6,
		Unit:       model.UnitPiece,
		CategoryID: uuid.New(),
		SupplierID: uuid.New(),
	}
}

func TestCreateProduct(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		svc, products := setupCatalog()

		p := validProduct("A-1")
		require.NoError(t, svc.CreateProduct(p, "admin-1"))
		assert.Contains(t, products.store, p.ID)
		assert.Equal(t, "admin-1", p.CreatedBy)
	})

	t.Run("duplicate SKU rejected", func(t *testing.T) {
		existing := validProduct("A-1")
		existing.ID = uuid.New()
		svc, _ := setupCatalog(existing)

		err := svc.CreateProduct(validProduct("A-1"), "admin-1")
		assert.ErrorIs(t, err, ErrDuplicateSKU)
	})

	t.Run("duplicate barcode rejected", func(t *testing.T) {
		code := "4800000001"
		existing := validProduct("A-1")
		existing.ID = uuid.New()
		existing.Barcode = &code
		svc, _ := setupCatalog(existing)

		p := validProduct("B-2")
		p.Barcode = &code
		err := svc.CreateProduct(p, "admin-1")
		assert.ErrorIs(t, err, ErrDuplicateBarcode)
	})

	t.Run("missing category fails validation", func(t *testing.T) {
		svc, _ := setupCatalog()

		p := validProduct("A-1")
		p.CategoryID = uuid.Nil
		assert.Error(t, svc.CreateProduct(p, "admin-1"))
	})
}

func TestCreateCategory(t *testing.T) {
	svc, _ := setupCatalog()

	require.NoError(t, svc.CreateCategory(&model.Category{Name: "Drinks"}, "admin-1"))

	err := svc.CreateCategory(&model.Category{Name: "Drinks"}, "admin-1")
	assert.ErrorIs(t, err, ErrDuplicateCategory)
}
