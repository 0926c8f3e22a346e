package usecase

import (
	"fmt"

	"github.com/Nhlapo2003/wings-Application/internal/domain"
	"github.com/sirupsen/logrus"
)

type SaleUseCase interface {
	SellProduct(userID, productID, quantity int) (*domain.Sale, error)
	ListSales(limit, offset int) ([]domain.Sale, error)
}

type saleUseCase struct {
	saleRepo    domain.SaleRepository
	productRepo domain.ProductRepository
	log         *logrus.Logger
}

func NewSaleUseCase(saleRepo domain.SaleRepository, productRepo domain.ProductRepository, logger *logrus.Logger) SaleUseCase {
	return &saleUseCase{
		saleRepo:    saleRepo,
		productRepo: productRepo,
		log:         logger,
	}
}

// SellProduct backs POST /sell: decrement stock, then journal the sale.
// The guarded decrement is what rejects oversells; the journal insert
// failing afterwards is logged loudly but the stock change stands (a
// unit already left the shelf).
func (uc *saleUseCase) SellProduct(userID, productID, quantity int) (*domain.Sale, error) {
	if userID <= 0 {
		uc.log.Warnf("Use Case: Attempted sale with invalid user ID: %d", userID)
		return nil, fmt.Errorf("invalid user ID: %w", domain.ErrValidation)
	}
	if productID <= 0 {
		uc.log.Warnf("Use Case: Attempted sale with invalid product ID: %d", productID)
		return nil, fmt.Errorf("invalid product ID: %w", domain.ErrValidation)
	}
	if quantity <= 0 {
		uc.log.Warnf("Use Case: Attempted sale of product %d with non-positive quantity: %d", productID, quantity)
		return nil, fmt.Errorf("quantity must be positive: %w", domain.ErrValidation)
	}

	uc.log.Infof("Use Case: Attempting to sell product %d (quantity %d) for user %d", productID, quantity, userID)
	product, err := uc.productRepo.DecrementStock(productID, quantity)
	if err != nil {
		uc.log.Warnf("Use Case: Stock decrement failed for product %d: %v", productID, err)
		return nil, err
	}

	sale, err := uc.saleRepo.CreateSale(&domain.Sale{
		UserID:    userID,
		ProductID: productID,
		Quantity:  quantity,
	})
	if err != nil {
		uc.log.Errorf("Use Case: CRITICAL! Stock decremented for product %d but sale journal insert failed: %v. Manual reconciliation required!", productID, err)
		return nil, fmt.Errorf("failed to record sale after stock update: %w", err)
	}

	uc.log.Infof("Use Case: Sale %d recorded: product %d x%d for user %d (remaining stock: %d)",
		sale.ID, productID, quantity, userID, product.Stock)
	return sale, nil
}

func (uc *saleUseCase) ListSales(limit, offset int) ([]domain.Sale, error) {
	uc.log.Infof("Use Case: Attempting to list sales (limit: %d, offset: %d)", limit, offset)
	sales, err := uc.saleRepo.ListSales(limit, offset)
	if err != nil {
		uc.log.Errorf("Use Case: Repository failed to list sales: %v", err)
		return nil, fmt.Errorf("could not retrieve sales: %w", err)
	}
	uc.log.Infof("Use Case: Retrieved %d sales", len(sales))
	return sales, nil
}
