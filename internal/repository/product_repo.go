package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/Nhlapo2003/wings-Application/internal/domain"
	"github.com/lib/pq"
	"github.com/sirupsen/logrus"
)

type postgresProductRepository struct {
	db  *sql.DB
	log *logrus.Logger
}

func NewPostgresProductRepository(db *sql.DB, logger *logrus.Logger) domain.ProductRepository {
	return &postgresProductRepository{
		db:  db,
		log: logger,
	}
}

func (r *postgresProductRepository) CreateProduct(product *domain.Product) (*domain.Product, error) {
	query := `
        INSERT INTO products (name, description, category, price, stock)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id`

	err := r.db.QueryRow(query, product.Name, product.Description, product.Category, product.Price, product.Stock).Scan(&product.ID)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			r.log.Warnf("Attempted to create product with duplicate name: %s", product.Name)
			return nil, fmt.Errorf("product with name '%s' already exists", product.Name)
		}
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23514" {
			r.log.Warnf("Check constraint violation for product '%s': %s", product.Name, pqErr.Message)
			return nil, fmt.Errorf("product data constraint violation: %s", pqErr.Message)
		}
		r.log.Errorf("Failed to create product '%s': %v", product.Name, err)
		return nil, fmt.Errorf("could not create product: %w", err)
	}
	r.log.Infof("Product created successfully with ID: %d, Name: %s", product.ID, product.Name)
	return product, nil
}

func (r *postgresProductRepository) GetProductByID(id int) (*domain.Product, error) {
	query := `
        SELECT id, name, description, category, price, stock
        FROM products
        WHERE id = $1`
	return r.scanOne(r.db.QueryRow(query, id), fmt.Sprintf("id %d", id))
}

func (r *postgresProductRepository) GetProductByName(name string) (*domain.Product, error) {
	query := `
        SELECT id, name, description, category, price, stock
        FROM products
        WHERE name = $1`
	return r.scanOne(r.db.QueryRow(query, name), fmt.Sprintf("name '%s'", name))
}

func (r *postgresProductRepository) scanOne(row *sql.Row, ref string) (*domain.Product, error) {
	product := &domain.Product{}
	err := row.Scan(
		&product.ID,
		&product.Name,
		&product.Description,
		&product.Category,
		&product.Price,
		&product.Stock,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			r.log.Warnf("Product with %s not found", ref)
			return nil, fmt.Errorf("product with %s: %w", ref, domain.ErrProductNotFound)
		}
		r.log.Errorf("Failed to get product by %s: %v", ref, err)
		return nil, fmt.Errorf("could not get product: %w", err)
	}
	return product, nil
}

func (r *postgresProductRepository) UpdateProductByName(name string, product *domain.Product) (*domain.Product, error) {
	query := `
        UPDATE products
        SET name = $1, description = $2, category = $3, price = $4, stock = $5
        WHERE name = $6
        RETURNING id, name, description, category, price, stock`

	updated := &domain.Product{}
	err := r.db.QueryRow(query, product.Name, product.Description, product.Category, product.Price, product.Stock, name).Scan(
		&updated.ID,
		&updated.Name,
		&updated.Description,
		&updated.Category,
		&updated.Price,
		&updated.Stock,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			r.log.Warnf("Product with name '%s' not found for update", name)
			return nil, fmt.Errorf("product with name '%s': %w", name, domain.ErrProductNotFound)
		}
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			r.log.Warnf("Attempted to rename product '%s' to duplicate name '%s'", name, product.Name)
			return nil, fmt.Errorf("product with name '%s' already exists", product.Name)
		}
		r.log.Errorf("Failed to update product '%s': %v", name, err)
		return nil, fmt.Errorf("could not update product: %w", err)
	}
	r.log.Infof("Product updated successfully: ID %d, Name %s", updated.ID, updated.Name)
	return updated, nil
}

func (r *postgresProductRepository) DeleteProductByName(name string) error {
	query := `DELETE FROM products WHERE name = $1`
	result, err := r.db.Exec(query, name)
	if err != nil {
		r.log.Errorf("Failed to delete product '%s': %v", name, err)
		return fmt.Errorf("could not delete product: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		r.log.Errorf("Failed to get rows affected after deleting product '%s': %v", name, err)
		return fmt.Errorf("could not confirm product deletion: %w", err)
	}
	if rowsAffected == 0 {
		r.log.Warnf("Attempted to delete non-existent product '%s'", name)
		return fmt.Errorf("product with name '%s': %w", name, domain.ErrProductNotFound)
	}
	r.log.Infof("Product deleted successfully: %s", name)
	return nil
}

func (r *postgresProductRepository) ListProducts() ([]domain.Product, error) {
	query := `
        SELECT id, name, description, category, price, stock
        FROM products
        ORDER BY id ASC`
	rows, err := r.db.Query(query)
	if err != nil {
		r.log.Errorf("Failed to list products: %v", err)
		return nil, fmt.Errorf("could not list products: %w", err)
	}
	defer rows.Close()

	products := []domain.Product{}
	for rows.Next() {
		var product domain.Product
		if err := rows.Scan(&product.ID, &product.Name, &product.Description, &product.Category, &product.Price, &product.Stock); err != nil {
			r.log.Errorf("Failed to scan product row: %v", err)
			return nil, fmt.Errorf("error scanning product data: %w", err)
		}
		products = append(products, product)
	}
	if err = rows.Err(); err != nil {
		r.log.Errorf("Error during products list iteration: %v", err)
		return nil, fmt.Errorf("error iterating products: %w", err)
	}
	r.log.Infof("Retrieved %d products", len(products))
	return products, nil
}

func (r *postgresProductRepository) DecrementStock(id, quantity int) (*domain.Product, error) {
	query := `
        UPDATE products
        SET stock = stock - $2
        WHERE id = $1 AND stock >= $2
        RETURNING id, name, description, category, price, stock`
	return r.decrement(r.db.QueryRow(query, id, quantity), func() (*domain.Product, error) {
		return r.GetProductByID(id)
	}, fmt.Sprintf("id %d", id), quantity)
}

func (r *postgresProductRepository) DecrementStockByName(name string, quantity int) (*domain.Product, error) {
	query := `
        UPDATE products
        SET stock = stock - $2
        WHERE name = $1 AND stock >= $2
        RETURNING id, name, description, category, price, stock`
	return r.decrement(r.db.QueryRow(query, name, quantity), func() (*domain.Product, error) {
		return r.GetProductByName(name)
	}, fmt.Sprintf("name '%s'", name), quantity)
}

// decrement distinguishes "no such product" from "not enough stock" by
// re-reading the row when the guarded UPDATE matched nothing.
func (r *postgresProductRepository) decrement(row *sql.Row, reload func() (*domain.Product, error), ref string, quantity int) (*domain.Product, error) {
	product := &domain.Product{}
	err := row.Scan(
		&product.ID,
		&product.Name,
		&product.Description,
		&product.Category,
		&product.Price,
		&product.Stock,
	)
	if err == nil {
		r.log.Infof("Stock decremented by %d for product %s (remaining: %d)", quantity, ref, product.Stock)
		return product, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		r.log.Errorf("Failed to decrement stock for product %s: %v", ref, err)
		return nil, fmt.Errorf("could not decrement stock: %w", err)
	}

	current, loadErr := reload()
	if loadErr != nil {
		return nil, loadErr
	}
	r.log.Warnf("Insufficient stock for product %s (requested: %d, available: %d)", ref, quantity, current.Stock)
	return nil, fmt.Errorf("product %s (requested: %d, available: %d): %w", ref, quantity, current.Stock, domain.ErrInsufficientStock)
}
