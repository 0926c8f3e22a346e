package engine

import (
	"context"
	"io"
	"math/rand"
	"sync"
	"testing"

	"github.com/Nhlapo2003/wings-Application/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockBackend struct {
	mu       sync.Mutex
	products []domain.Product
	listErr  error

	sellFn    func(userID, productID, quantity int) (string, error)
	sellCalls []sellCall
}

type sellCall struct {
	UserID    int
	ProductID int
	Quantity  int
}

func (m *mockBackend) ListProducts(context.Context) ([]domain.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.listErr != nil {
		return nil, m.listErr
	}
	products := make([]domain.Product, len(m.products))
	copy(products, m.products)
	return products, nil
}

func (m *mockBackend) Sell(_ context.Context, userID, productID, quantity int) (string, error) {
	m.mu.Lock()
	m.sellCalls = append(m.sellCalls, sellCall{UserID: userID, ProductID: productID, Quantity: quantity})
	m.mu.Unlock()
	if m.sellFn != nil {
		return m.sellFn(userID, productID, quantity)
	}
	return "Product sold successfully", nil
}

func (m *mockBackend) CreateProduct(context.Context, *domain.Product) (*domain.Product, error) {
	return nil, nil
}
func (m *mockBackend) UpdateProduct(context.Context, string, *domain.Product) (*domain.Product, error) {
	return nil, nil
}
func (m *mockBackend) DeleteProduct(context.Context, string) error { return nil }
func (m *mockBackend) SellOne(context.Context, string) (*domain.Product, error) {
	return nil, nil
}
func (m *mockBackend) ListUsers(context.Context) ([]domain.User, error) { return nil, nil }
func (m *mockBackend) CreateUser(context.Context, string, string, string) (*domain.User, error) {
	return nil, nil
}
func (m *mockBackend) UpdateUser(context.Context, int, string, string, string) (*domain.User, error) {
	return nil, nil
}
func (m *mockBackend) DeleteUser(context.Context, int) error { return nil }
func (m *mockBackend) Login(context.Context, string, string) (string, error) {
	return "Success", nil
}
func (m *mockBackend) Signup(context.Context, string, string, string) (*domain.User, error) {
	return nil, nil
}

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func price(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func newTestEngine(t *testing.T, products ...domain.Product) (*Engine, *mockBackend) {
	t.Helper()
	backend := &mockBackend{products: products}
	e := New(backend, testLogger())
	require.NoError(t, e.LoadCatalog(context.Background()))
	return e, backend
}

func coffeeAndTea() []domain.Product {
	return []domain.Product{
		{ID: 1, Name: "Coffee", Category: "drinks", Price: price("12.50"), Stock: 10},
		{ID: 2, Name: "Tea", Category: "drinks", Price: price("8.00"), Stock: 2},
	}
}

func TestLoadCatalogFailure(t *testing.T) {
	backend := &mockBackend{listErr: domain.ErrBackendUnavailable}
	e := New(backend, testLogger())

	err := e.LoadCatalog(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrCatalogUnavailable)

	// The terminal renders an empty state, not a crash.
	assert.Empty(t, e.Products())
	assert.Empty(t, e.Cart().Lines)
}

func TestAddToCartScenario(t *testing.T) {
	e, _ := newTestEngine(t, coffeeAndTea()...)

	require.NoError(t, e.AddToCart(1, 3))

	cart := e.Cart()
	require.Len(t, cart.Lines, 1)
	assert.Equal(t, 1, cart.Lines[0].ProductID)
	assert.Equal(t, 3, cart.Lines[0].Quantity)
	assert.True(t, cart.Total.Equal(price("37.50")), "total = %s", cart.Total)
	assert.Equal(t, 7, e.Products()[0].Stock)

	require.NoError(t, e.RemoveOneFromCart(1))

	cart = e.Cart()
	require.Len(t, cart.Lines, 1)
	assert.Equal(t, 2, cart.Lines[0].Quantity)
	assert.True(t, cart.Total.Equal(price("25.00")), "total = %s", cart.Total)
	assert.Equal(t, 8, e.Products()[0].Stock)
}

func TestAddToCartMergesExistingLine(t *testing.T) {
	e, _ := newTestEngine(t, coffeeAndTea()...)

	require.NoError(t, e.AddToCart(1, 2))
	require.NoError(t, e.AddToCart(1, 3))

	cart := e.Cart()
	require.Len(t, cart.Lines, 1)
	assert.Equal(t, 5, cart.Lines[0].Quantity)
	assert.True(t, cart.Total.Equal(price("62.50")))
	assert.Equal(t, 5, e.Products()[0].Stock)
}

func TestAddToCartInsufficientStock(t *testing.T) {
	e, _ := newTestEngine(t, coffeeAndTea()...)

	err := e.AddToCart(2, 5)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	// State unchanged.
	assert.Empty(t, e.Cart().Lines)
	assert.True(t, e.Cart().Total.IsZero())
	assert.Equal(t, 2, e.Products()[1].Stock)
}

func TestAddToCartCountsExistingReservations(t *testing.T) {
	e, _ := newTestEngine(t, coffeeAndTea()...)

	require.NoError(t, e.AddToCart(2, 2))
	err := e.AddToCart(2, 1)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
}

func TestAddToCartValidation(t *testing.T) {
	e, _ := newTestEngine(t, coffeeAndTea()...)

	err := e.AddToCart(1, 0)
	assert.ErrorIs(t, err, domain.ErrValidation)

	err = e.AddToCart(99, 1)
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}

func TestRemoveOneFromCartNotInCart(t *testing.T) {
	e, _ := newTestEngine(t, coffeeAndTea()...)

	err := e.RemoveOneFromCart(1)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNotInCart)
	assert.True(t, e.Cart().Total.IsZero())
	assert.Equal(t, 10, e.Products()[0].Stock)
}

func TestAddRemoveRoundTrip(t *testing.T) {
	e, _ := newTestEngine(t, coffeeAndTea()...)

	require.NoError(t, e.AddToCart(1, 4))
	for i := 0; i < 4; i++ {
		require.NoError(t, e.RemoveOneFromCart(1))
	}

	cart := e.Cart()
	assert.Empty(t, cart.Lines)
	assert.True(t, cart.Total.IsZero(), "total = %s", cart.Total)
	assert.Equal(t, 10, e.Products()[0].Stock)

	// Gone means gone: a fifth removal is NotInCart.
	assert.ErrorIs(t, e.RemoveOneFromCart(1), domain.ErrNotInCart)
}

// TestCartInvariantsUnderRandomOps drives the engine with a random
// add/remove sequence and checks after every step that the total equals
// the sum over the lines and that no stock went negative.
func TestCartInvariantsUnderRandomOps(t *testing.T) {
	products := []domain.Product{
		{ID: 1, Name: "Coffee", Price: price("12.50"), Stock: 10},
		{ID: 2, Name: "Tea", Price: price("8.00"), Stock: 2},
		{ID: 3, Name: "Scone", Price: price("5.25"), Stock: 25},
		{ID: 4, Name: "Juice", Price: price("15.99"), Stock: 0},
	}
	e, _ := newTestEngine(t, products...)

	serverStock := map[int]int{1: 10, 2: 2, 3: 25, 4: 0}
	rng := rand.New(rand.NewSource(42))

	for step := 0; step < 2000; step++ {
		productID := 1 + rng.Intn(4)
		if rng.Intn(2) == 0 {
			_ = e.AddToCart(productID, 1+rng.Intn(4))
		} else {
			_ = e.RemoveOneFromCart(productID)
		}

		cart := e.Cart()
		sum := decimal.Zero
		reserved := map[int]int{}
		for _, line := range cart.Lines {
			require.Positive(t, line.Quantity, "step %d: line quantity must stay positive", step)
			sum = sum.Add(line.UnitPrice.Mul(decimal.NewFromInt(int64(line.Quantity))))
			reserved[line.ProductID] += line.Quantity
		}
		require.True(t, cart.Total.Equal(sum), "step %d: total %s != line sum %s", step, cart.Total, sum)

		for _, p := range e.Products() {
			require.GreaterOrEqual(t, p.Stock, 0, "step %d: stock for product %d went negative", step, p.ID)
			require.Equal(t, serverStock[p.ID]-reserved[p.ID], p.Stock,
				"step %d: displayed stock for product %d must be server stock minus reservations", step, p.ID)
		}
	}
}

func TestRefreshReappliesReservations(t *testing.T) {
	e, backend := newTestEngine(t, coffeeAndTea()...)

	require.NoError(t, e.AddToCart(1, 3))

	// Another terminal sold two units; the backend now reports 8.
	backend.mu.Lock()
	backend.products[0].Stock = 8
	backend.mu.Unlock()

	require.NoError(t, e.Refresh(context.Background()))
	assert.Equal(t, 5, e.Products()[0].Stock)

	// Cart untouched by the refresh.
	cart := e.Cart()
	require.Len(t, cart.Lines, 1)
	assert.Equal(t, 3, cart.Lines[0].Quantity)
	assert.True(t, cart.Total.Equal(price("37.50")))
}

func TestRefreshDetectsConflict(t *testing.T) {
	e, backend := newTestEngine(t, coffeeAndTea()...)

	require.NoError(t, e.AddToCart(1, 3))

	backend.mu.Lock()
	backend.products[0].Stock = 2
	backend.mu.Unlock()

	err := e.Refresh(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrStockConflict)

	// Conflict leaves the previous snapshot in place.
	assert.Equal(t, 7, e.Products()[0].Stock)
}

func TestRefreshDetectsDeletedProduct(t *testing.T) {
	e, backend := newTestEngine(t, coffeeAndTea()...)

	require.NoError(t, e.AddToCart(2, 1))

	backend.mu.Lock()
	backend.products = backend.products[:1]
	backend.mu.Unlock()

	err := e.Refresh(context.Background())
	assert.ErrorIs(t, err, domain.ErrStockConflict)
}

func TestPriceSnapshotSurvivesRefresh(t *testing.T) {
	e, backend := newTestEngine(t, coffeeAndTea()...)

	require.NoError(t, e.AddToCart(1, 2))

	backend.mu.Lock()
	backend.products[0].Price = price("20.00")
	backend.mu.Unlock()

	require.NoError(t, e.Refresh(context.Background()))

	cart := e.Cart()
	assert.True(t, cart.Lines[0].UnitPrice.Equal(price("12.50")), "line keeps the add-time price")
	assert.True(t, cart.Total.Equal(price("25.00")))
	assert.True(t, e.Products()[0].Price.Equal(price("20.00")), "catalog shows the new price")
}
