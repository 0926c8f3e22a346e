package repository

import (
	"io"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/Nhlapo2003/wings-Application/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func newProductRepo(t *testing.T) (domain.ProductRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewPostgresProductRepository(db, testLogger()), mock
}

func productColumns() []string {
	return []string{"id", "name", "description", "category", "price", "stock"}
}

func TestCreateProduct(t *testing.T) {
	repo, mock := newProductRepo(t)

	price := decimal.RequireFromString("12.50")
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO products")).
		WithArgs("Coffee", "hot", "drinks", price, 10).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))

	product, err := repo.CreateProduct(&domain.Product{
		Name:        "Coffee",
		Description: "hot",
		Category:    "drinks",
		Price:       price,
		Stock:       10,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, product.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetProductByIDNotFound(t *testing.T) {
	repo, mock := newProductRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, name, description, category, price, stock")).
		WithArgs(99).
		WillReturnRows(sqlmock.NewRows(productColumns()))

	_, err := repo.GetProductByID(99)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListProducts(t *testing.T) {
	repo, mock := newProductRepo(t)

	rows := sqlmock.NewRows(productColumns()).
		AddRow(1, "Coffee", "hot", "drinks", "12.50", 10).
		AddRow(2, "Tea", "", "drinks", "8.00", 2)
	mock.ExpectQuery(regexp.QuoteMeta("FROM products")).WillReturnRows(rows)

	products, err := repo.ListProducts()
	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.Equal(t, "Coffee", products[0].Name)
	assert.True(t, products[0].Price.Equal(decimal.RequireFromString("12.50")))
	assert.Equal(t, 2, products[1].Stock)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDecrementStock(t *testing.T) {
	repo, mock := newProductRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("SET stock = stock - $2")).
		WithArgs(1, 3).
		WillReturnRows(sqlmock.NewRows(productColumns()).
			AddRow(1, "Coffee", "hot", "drinks", "12.50", 7))

	product, err := repo.DecrementStock(1, 3)
	require.NoError(t, err)
	assert.Equal(t, 7, product.Stock)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// The guarded UPDATE matches no row when stock is too low, so the
// repository re-reads the product to tell "missing" from "insufficient".
func TestDecrementStockInsufficient(t *testing.T) {
	repo, mock := newProductRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("SET stock = stock - $2")).
		WithArgs(2, 5).
		WillReturnRows(sqlmock.NewRows(productColumns()))
	mock.ExpectQuery(regexp.QuoteMeta("WHERE id = $1")).
		WithArgs(2).
		WillReturnRows(sqlmock.NewRows(productColumns()).
			AddRow(2, "Tea", "", "drinks", "8.00", 2))

	_, err := repo.DecrementStock(2, 5)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Contains(t, err.Error(), "available: 2")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDecrementStockMissingProduct(t *testing.T) {
	repo, mock := newProductRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("SET stock = stock - $2")).
		WithArgs(99, 1).
		WillReturnRows(sqlmock.NewRows(productColumns()))
	mock.ExpectQuery(regexp.QuoteMeta("WHERE id = $1")).
		WithArgs(99).
		WillReturnRows(sqlmock.NewRows(productColumns()))

	_, err := repo.DecrementStock(99, 1)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteProductByNameNotFound(t *testing.T) {
	repo, mock := newProductRepo(t)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM products WHERE name = $1")).
		WithArgs("Nope").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.DeleteProductByName("Nope")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateProductByName(t *testing.T) {
	repo, mock := newProductRepo(t)

	price := decimal.RequireFromString("13.00")
	mock.ExpectQuery(regexp.QuoteMeta("UPDATE products")).
		WithArgs("Coffee", "fresh", "drinks", price, 12, "Coffee").
		WillReturnRows(sqlmock.NewRows(productColumns()).
			AddRow(1, "Coffee", "fresh", "drinks", "13.00", 12))

	updated, err := repo.UpdateProductByName("Coffee", &domain.Product{
		Name:        "Coffee",
		Description: "fresh",
		Category:    "drinks",
		Price:       price,
		Stock:       12,
	})
	require.NoError(t, err)
	assert.Equal(t, 12, updated.Stock)
	assert.True(t, updated.Price.Equal(price))
	assert.NoError(t, mock.ExpectationsWereMet())
}
