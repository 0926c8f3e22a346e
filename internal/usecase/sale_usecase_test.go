package usecase

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/Nhlapo2003/wings-Application/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeProductRepo struct {
	products map[int]*domain.Product
	nextID   int
}

func newFakeProductRepo(products ...domain.Product) *fakeProductRepo {
	repo := &fakeProductRepo{products: map[int]*domain.Product{}, nextID: 1}
	for _, product := range products {
		stored := product
		if stored.ID == 0 {
			stored.ID = repo.nextID
		}
		if stored.ID >= repo.nextID {
			repo.nextID = stored.ID + 1
		}
		repo.products[stored.ID] = &stored
	}
	return repo
}

func (r *fakeProductRepo) CreateProduct(product *domain.Product) (*domain.Product, error) {
	for _, existing := range r.products {
		if existing.Name == product.Name {
			return nil, fmt.Errorf("product with name '%s' already exists", product.Name)
		}
	}
	stored := *product
	stored.ID = r.nextID
	r.nextID++
	r.products[stored.ID] = &stored
	result := stored
	return &result, nil
}

func (r *fakeProductRepo) GetProductByID(id int) (*domain.Product, error) {
	product, ok := r.products[id]
	if !ok {
		return nil, fmt.Errorf("product with id %d: %w", id, domain.ErrProductNotFound)
	}
	result := *product
	return &result, nil
}

func (r *fakeProductRepo) GetProductByName(name string) (*domain.Product, error) {
	for _, product := range r.products {
		if product.Name == name {
			result := *product
			return &result, nil
		}
	}
	return nil, fmt.Errorf("product with name '%s': %w", name, domain.ErrProductNotFound)
}

func (r *fakeProductRepo) UpdateProductByName(name string, product *domain.Product) (*domain.Product, error) {
	current, err := r.GetProductByName(name)
	if err != nil {
		return nil, err
	}
	stored := *product
	stored.ID = current.ID
	r.products[stored.ID] = &stored
	result := stored
	return &result, nil
}

func (r *fakeProductRepo) DeleteProductByName(name string) error {
	current, err := r.GetProductByName(name)
	if err != nil {
		return err
	}
	delete(r.products, current.ID)
	return nil
}

func (r *fakeProductRepo) ListProducts() ([]domain.Product, error) {
	products := []domain.Product{}
	for _, product := range r.products {
		products = append(products, *product)
	}
	return products, nil
}

func (r *fakeProductRepo) DecrementStock(id, quantity int) (*domain.Product, error) {
	product, ok := r.products[id]
	if !ok {
		return nil, fmt.Errorf("product with id %d: %w", id, domain.ErrProductNotFound)
	}
	if product.Stock < quantity {
		return nil, fmt.Errorf("product id %d (requested: %d, available: %d): %w",
			id, quantity, product.Stock, domain.ErrInsufficientStock)
	}
	product.Stock -= quantity
	result := *product
	return &result, nil
}

func (r *fakeProductRepo) DecrementStockByName(name string, quantity int) (*domain.Product, error) {
	current, err := r.GetProductByName(name)
	if err != nil {
		return nil, err
	}
	return r.DecrementStock(current.ID, quantity)
}

type fakeSaleRepo struct {
	sales     []domain.Sale
	createErr error
}

func (r *fakeSaleRepo) CreateSale(sale *domain.Sale) (*domain.Sale, error) {
	if r.createErr != nil {
		return nil, r.createErr
	}
	stored := *sale
	stored.ID = len(r.sales) + 1
	stored.SoldAt = time.Now()
	r.sales = append(r.sales, stored)
	result := stored
	return &result, nil
}

func (r *fakeSaleRepo) ListSales(limit, offset int) ([]domain.Sale, error) {
	sales := make([]domain.Sale, len(r.sales))
	copy(sales, r.sales)
	return sales, nil
}

func TestSellProduct(t *testing.T) {
	productRepo := newFakeProductRepo(domain.Product{
		Name: "Coffee", Price: decimal.RequireFromString("12.50"), Stock: 10,
	})
	saleRepo := &fakeSaleRepo{}
	uc := NewSaleUseCase(saleRepo, productRepo, testLogger())

	sale, err := uc.SellProduct(1, 1, 3)
	require.NoError(t, err)
	assert.Equal(t, 1, sale.ID)
	assert.Equal(t, 3, sale.Quantity)

	product, err := productRepo.GetProductByID(1)
	require.NoError(t, err)
	assert.Equal(t, 7, product.Stock)
	require.Len(t, saleRepo.sales, 1)
}

func TestSellProductValidation(t *testing.T) {
	uc := NewSaleUseCase(&fakeSaleRepo{}, newFakeProductRepo(), testLogger())

	_, err := uc.SellProduct(0, 1, 1)
	assert.ErrorIs(t, err, domain.ErrValidation)
	_, err = uc.SellProduct(1, 0, 1)
	assert.ErrorIs(t, err, domain.ErrValidation)
	_, err = uc.SellProduct(1, 1, 0)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestSellProductInsufficientStock(t *testing.T) {
	productRepo := newFakeProductRepo(domain.Product{
		Name: "Tea", Price: decimal.RequireFromString("8.00"), Stock: 2,
	})
	saleRepo := &fakeSaleRepo{}
	uc := NewSaleUseCase(saleRepo, productRepo, testLogger())

	_, err := uc.SellProduct(1, 1, 5)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	// Nothing journaled and the shelf untouched.
	assert.Empty(t, saleRepo.sales)
	product, _ := productRepo.GetProductByID(1)
	assert.Equal(t, 2, product.Stock)
}

func TestSellProductJournalFailure(t *testing.T) {
	productRepo := newFakeProductRepo(domain.Product{
		Name: "Coffee", Price: decimal.RequireFromString("12.50"), Stock: 10,
	})
	saleRepo := &fakeSaleRepo{createErr: errors.New("disk full")}
	uc := NewSaleUseCase(saleRepo, productRepo, testLogger())

	_, err := uc.SellProduct(1, 1, 2)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to record sale after stock update")

	// The decrement is not rolled back.
	product, _ := productRepo.GetProductByID(1)
	assert.Equal(t, 8, product.Stock)
}
