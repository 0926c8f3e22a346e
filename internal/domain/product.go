package domain

import "github.com/shopspring/decimal"

type Product struct {
	ID          int             `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Category    string          `json:"category"`
	Price       decimal.Decimal `json:"price"`
	Stock       int             `json:"stock"`
}

type ProductRepository interface {
	CreateProduct(product *Product) (*Product, error)
	GetProductByID(id int) (*Product, error)
	GetProductByName(name string) (*Product, error)
	UpdateProductByName(name string, product *Product) (*Product, error)
	DeleteProductByName(name string) error
	ListProducts() ([]Product, error)

	// DecrementStock atomically subtracts quantity from the product's
	// stock, failing with ErrInsufficientStock if it would go negative.
	DecrementStock(id, quantity int) (*Product, error)
	DecrementStockByName(name string, quantity int) (*Product, error)
}
