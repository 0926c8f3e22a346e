package repository

import (
	"database/sql"
	"fmt"

	"github.com/Nhlapo2003/wings-Application/internal/domain"
	"github.com/lib/pq"
	"github.com/sirupsen/logrus"
)

type postgresSaleRepository struct {
	db  *sql.DB
	log *logrus.Logger
}

func NewPostgresSaleRepository(db *sql.DB, logger *logrus.Logger) domain.SaleRepository {
	return &postgresSaleRepository{
		db:  db,
		log: logger,
	}
}

func (r *postgresSaleRepository) CreateSale(sale *domain.Sale) (*domain.Sale, error) {
	query := `
        INSERT INTO sales (user_id, product_id, quantity)
        VALUES ($1, $2, $3)
        RETURNING id, sold_at`

	err := r.db.QueryRow(query, sale.UserID, sale.ProductID, sale.Quantity).Scan(&sale.ID, &sale.SoldAt)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23503" {
			r.log.Warnf("Attempted to record sale against missing reference (user %d, product %d)", sale.UserID, sale.ProductID)
			return nil, fmt.Errorf("sale references a missing user or product: %s", pqErr.Message)
		}
		r.log.Errorf("Failed to record sale (user %d, product %d, qty %d): %v", sale.UserID, sale.ProductID, sale.Quantity, err)
		return nil, fmt.Errorf("could not record sale: %w", err)
	}
	r.log.Infof("Sale recorded successfully with ID: %d (product %d, qty %d)", sale.ID, sale.ProductID, sale.Quantity)
	return sale, nil
}

func (r *postgresSaleRepository) ListSales(limit, offset int) ([]domain.Sale, error) {
	if limit <= 0 {
		limit = 50
	}
	if limit > 500 {
		limit = 500
	}
	if offset < 0 {
		offset = 0
	}

	query := `
        SELECT id, user_id, product_id, quantity, sold_at
        FROM sales
        ORDER BY sold_at DESC, id DESC
        LIMIT $1 OFFSET $2`
	rows, err := r.db.Query(query, limit, offset)
	if err != nil {
		r.log.Errorf("Failed to list sales (limit %d, offset %d): %v", limit, offset, err)
		return nil, fmt.Errorf("could not list sales: %w", err)
	}
	defer rows.Close()

	sales := []domain.Sale{}
	for rows.Next() {
		var sale domain.Sale
		if err := rows.Scan(&sale.ID, &sale.UserID, &sale.ProductID, &sale.Quantity, &sale.SoldAt); err != nil {
			r.log.Errorf("Failed to scan sale row: %v", err)
			return nil, fmt.Errorf("error scanning sale data: %w", err)
		}
		sales = append(sales, sale)
	}
	if err = rows.Err(); err != nil {
		r.log.Errorf("Error during sales list iteration: %v", err)
		return nil, fmt.Errorf("error iterating sales: %w", err)
	}
	r.log.Infof("Retrieved %d sales (limit: %d, offset: %d)", len(sales), limit, offset)
	return sales, nil
}
