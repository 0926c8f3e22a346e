package engine

import (
	"context"
	"fmt"
	"sort"

	"github.com/Nhlapo2003/wings-Application/internal/domain"
	"github.com/Nhlapo2003/wings-Application/internal/pos/client"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// Engine owns one operator session's catalog snapshot and cart, and is
// the only mutation surface for either. Catalog stock is the available
// stock: the backend's stock minus whatever the cart has reserved, and
// it never goes negative.
//
// The engine is not safe for concurrent use; callers serialize access
// (the terminal facade holds one lock per session).
type Engine struct {
	backend client.Backend
	log     *logrus.Logger

	catalog map[int]*domain.Product
	cart    domain.Cart
}

func New(backend client.Backend, logger *logrus.Logger) *Engine {
	return &Engine{
		backend: backend,
		log:     logger,
		catalog: map[int]*domain.Product{},
	}
}

// LoadCatalog fetches the full product list and starts a fresh session:
// empty cart, zero reservations. A backend failure leaves the previous
// state untouched and reports ErrCatalogUnavailable so the caller can
// render an empty catalog instead of crashing.
func (e *Engine) LoadCatalog(ctx context.Context) error {
	products, err := e.backend.ListProducts(ctx)
	if err != nil {
		e.log.Warnf("Engine: Failed to load catalog: %v", err)
		return fmt.Errorf("%v: %w", err, domain.ErrCatalogUnavailable)
	}

	catalog := make(map[int]*domain.Product, len(products))
	for i := range products {
		p := products[i]
		catalog[p.ID] = &p
	}

	e.catalog = catalog
	e.cart = domain.Cart{Total: decimal.Zero}
	e.log.Infof("Engine: Catalog loaded with %d products, cart reset", len(catalog))
	return nil
}

// Refresh re-fetches the catalog while keeping the cart's reservations
// applied. If the backend's stock no longer covers a reservation, or a
// reserved product vanished, nothing is replaced and ErrStockConflict
// is returned.
func (e *Engine) Refresh(ctx context.Context) error {
	products, err := e.backend.ListProducts(ctx)
	if err != nil {
		e.log.Warnf("Engine: Failed to refresh catalog: %v", err)
		return fmt.Errorf("%v: %w", err, domain.ErrCatalogUnavailable)
	}

	catalog := make(map[int]*domain.Product, len(products))
	for i := range products {
		p := products[i]
		catalog[p.ID] = &p
	}

	for _, line := range e.cart.Lines {
		p, ok := catalog[line.ProductID]
		if !ok {
			e.log.Warnf("Engine: Reserved product %d ('%s') no longer exists on the backend", line.ProductID, line.Name)
			return fmt.Errorf("product '%s' was removed on the backend: %w", line.Name, domain.ErrStockConflict)
		}
		if p.Stock < line.Quantity {
			e.log.Warnf("Engine: Backend stock for product %d dropped below reservation (server: %d, reserved: %d)",
				line.ProductID, p.Stock, line.Quantity)
			return fmt.Errorf("product '%s' has %d units on the backend but %d reserved: %w",
				line.Name, p.Stock, line.Quantity, domain.ErrStockConflict)
		}
		p.Stock -= line.Quantity
	}

	e.catalog = catalog
	e.log.Infof("Engine: Catalog refreshed with %d products, %d reservations re-applied", len(catalog), len(e.cart.Lines))
	return nil
}

// AddToCart reserves quantity units of a product: merge into the
// existing line or append a new one with the price snapshotted now.
// On any failure the catalog and cart are left exactly as they were.
func (e *Engine) AddToCart(productID, quantity int) error {
	if quantity < 1 {
		e.log.Warnf("Engine: Rejected add to cart with non-positive quantity %d", quantity)
		return fmt.Errorf("quantity must be at least 1: %w", domain.ErrValidation)
	}

	product, ok := e.catalog[productID]
	if !ok {
		e.log.Warnf("Engine: Rejected add to cart for unknown product %d", productID)
		return fmt.Errorf("product %d: %w", productID, domain.ErrProductNotFound)
	}

	if quantity > product.Stock {
		e.log.Warnf("Engine: Insufficient stock for product %d (requested: %d, available: %d)",
			productID, quantity, product.Stock)
		return fmt.Errorf("product '%s' (requested: %d, available: %d): %w",
			product.Name, quantity, product.Stock, domain.ErrInsufficientStock)
	}

	if _, line := e.cart.LineFor(productID); line != nil {
		line.Quantity += quantity
	} else {
		e.cart.Lines = append(e.cart.Lines, domain.CartLine{
			ProductID: productID,
			Name:      product.Name,
			UnitPrice: product.Price,
			Quantity:  quantity,
		})
	}

	e.cart.Total = e.cart.Total.Add(product.Price.Mul(decimal.NewFromInt(int64(quantity))))
	product.Stock -= quantity

	e.log.Infof("Engine: Added %d x product %d to cart (total: %s, available stock: %d)",
		quantity, productID, e.cart.Total, product.Stock)
	return nil
}

// RemoveOneFromCart releases exactly one unit of the product's
// reservation, dropping the line entirely when it reaches zero.
func (e *Engine) RemoveOneFromCart(productID int) error {
	idx, line := e.cart.LineFor(productID)
	if line == nil {
		e.log.Warnf("Engine: Rejected removal of product %d: %v", productID, domain.ErrNotInCart)
		return fmt.Errorf("product %d: %w", productID, domain.ErrNotInCart)
	}

	e.cart.Total = e.cart.Total.Sub(line.UnitPrice)
	line.Quantity--
	if line.Quantity == 0 {
		e.cart.Lines = append(e.cart.Lines[:idx], e.cart.Lines[idx+1:]...)
	}

	if product, ok := e.catalog[productID]; ok {
		product.Stock++
	}

	e.log.Infof("Engine: Removed one unit of product %d from cart (total: %s)", productID, e.cart.Total)
	return nil
}

// Products returns a copy of the catalog snapshot, ordered by id.
func (e *Engine) Products() []domain.Product {
	products := make([]domain.Product, 0, len(e.catalog))
	for _, p := range e.catalog {
		products = append(products, *p)
	}
	sort.Slice(products, func(i, j int) bool { return products[i].ID < products[j].ID })
	return products
}

// Cart returns a copy of the current cart.
func (e *Engine) Cart() domain.Cart {
	lines := make([]domain.CartLine, len(e.cart.Lines))
	copy(lines, e.cart.Lines)
	return domain.Cart{Lines: lines, Total: e.cart.Total}
}
