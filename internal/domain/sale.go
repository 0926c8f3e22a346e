package domain

import "time"

// Sale is one journal row recorded by POST /sell.
type Sale struct {
	ID        int       `json:"id"`
	UserID    int       `json:"user_id"`
	ProductID int       `json:"product_id"`
	Quantity  int       `json:"quantity"`
	SoldAt    time.Time `json:"sold_at"`
}

type SaleRepository interface {
	CreateSale(sale *Sale) (*Sale, error)
	ListSales(limit, offset int) ([]Sale, error)
}
