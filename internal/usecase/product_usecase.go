package usecase

import (
	"fmt"

	"github.com/Nhlapo2003/wings-Application/internal/domain"
	"github.com/sirupsen/logrus"
)

type ProductUseCase interface {
	CreateProduct(product *domain.Product) (*domain.Product, error)
	UpdateProduct(name string, product *domain.Product) (*domain.Product, error)
	DeleteProduct(name string) error
	ListProducts() ([]domain.Product, error)
	SellOne(name string) (*domain.Product, error)
}

type productUseCase struct {
	productRepo domain.ProductRepository
	log         *logrus.Logger
}

func NewProductUseCase(repo domain.ProductRepository, logger *logrus.Logger) ProductUseCase {
	return &productUseCase{
		productRepo: repo,
		log:         logger,
	}
}

func validateProduct(product *domain.Product) error {
	if product.Name == "" {
		return fmt.Errorf("product name cannot be empty: %w", domain.ErrValidation)
	}
	if product.Price.IsNegative() {
		return fmt.Errorf("product price cannot be negative: %w", domain.ErrValidation)
	}
	if product.Stock < 0 {
		return fmt.Errorf("product stock cannot be negative: %w", domain.ErrValidation)
	}
	return nil
}

func (uc *productUseCase) CreateProduct(product *domain.Product) (*domain.Product, error) {
	if err := validateProduct(product); err != nil {
		uc.log.Warnf("Use Case: Rejected product creation: %v", err)
		return nil, err
	}

	uc.log.Infof("Use Case: Attempting to create product '%s'", product.Name)
	createdProduct, err := uc.productRepo.CreateProduct(product)
	if err != nil {
		uc.log.Errorf("Use Case: Repository failed to create product '%s': %v", product.Name, err)
		return nil, err
	}

	uc.log.Infof("Use Case: Product '%s' created successfully with ID %d", createdProduct.Name, createdProduct.ID)
	return createdProduct, nil
}

func (uc *productUseCase) UpdateProduct(name string, product *domain.Product) (*domain.Product, error) {
	if name == "" {
		uc.log.Warn("Use Case: Attempted update with empty product name")
		return nil, fmt.Errorf("product name cannot be empty: %w", domain.ErrValidation)
	}
	if err := validateProduct(product); err != nil {
		uc.log.Warnf("Use Case: Rejected product update for '%s': %v", name, err)
		return nil, err
	}

	uc.log.Infof("Use Case: Attempting to update product '%s'", name)
	updatedProduct, err := uc.productRepo.UpdateProductByName(name, product)
	if err != nil {
		uc.log.Warnf("Use Case: Repository failed to update product '%s': %v", name, err)
		return nil, err
	}

	uc.log.Infof("Use Case: Product updated successfully for ID %d", updatedProduct.ID)
	return updatedProduct, nil
}

func (uc *productUseCase) DeleteProduct(name string) error {
	if name == "" {
		uc.log.Warn("Use Case: Attempted delete with empty product name")
		return fmt.Errorf("product name cannot be empty: %w", domain.ErrValidation)
	}
	uc.log.Infof("Use Case: Attempting to delete product '%s'", name)
	err := uc.productRepo.DeleteProductByName(name)
	if err != nil {
		uc.log.Warnf("Use Case: Repository failed to delete product '%s': %v", name, err)
		return err
	}
	uc.log.Infof("Use Case: Product deleted successfully: %s", name)
	return nil
}

func (uc *productUseCase) ListProducts() ([]domain.Product, error) {
	uc.log.Info("Use Case: Attempting to list products")
	products, err := uc.productRepo.ListProducts()
	if err != nil {
		uc.log.Errorf("Use Case: Repository failed to list products: %v", err)
		return nil, fmt.Errorf("could not retrieve products: %w", err)
	}
	uc.log.Infof("Use Case: Retrieved %d products", len(products))
	return products, nil
}

// SellOne backs PUT /products/sell/{name}: one unit off the shelf.
func (uc *productUseCase) SellOne(name string) (*domain.Product, error) {
	if name == "" {
		uc.log.Warn("Use Case: Attempted single sell with empty product name")
		return nil, fmt.Errorf("product name cannot be empty: %w", domain.ErrValidation)
	}
	uc.log.Infof("Use Case: Attempting to sell one unit of '%s'", name)
	product, err := uc.productRepo.DecrementStockByName(name, 1)
	if err != nil {
		uc.log.Warnf("Use Case: Failed to sell one unit of '%s': %v", name, err)
		return nil, err
	}
	uc.log.Infof("Use Case: Sold one unit of '%s' (remaining stock: %d)", product.Name, product.Stock)
	return product, nil
}
