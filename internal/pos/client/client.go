package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/Nhlapo2003/wings-Application/internal/domain"
	"github.com/sirupsen/logrus"
)

// Backend is the fetch-style interface the terminal uses to reach the
// café backend. Everything the engine and the CRUD pass-through need
// goes through here.
type Backend interface {
	ListProducts(ctx context.Context) ([]domain.Product, error)
	CreateProduct(ctx context.Context, product *domain.Product) (*domain.Product, error)
	UpdateProduct(ctx context.Context, name string, product *domain.Product) (*domain.Product, error)
	DeleteProduct(ctx context.Context, name string) error
	SellOne(ctx context.Context, name string) (*domain.Product, error)

	// Sell posts one cart line to POST /sell and returns the backend's
	// plain-text result.
	Sell(ctx context.Context, userID, productID, quantity int) (string, error)

	ListUsers(ctx context.Context) ([]domain.User, error)
	CreateUser(ctx context.Context, name, email, password string) (*domain.User, error)
	UpdateUser(ctx context.Context, id int, name, email, password string) (*domain.User, error)
	DeleteUser(ctx context.Context, id int) error

	// Login returns the backend's response body; the contract is the
	// literal string "Success" on valid credentials.
	Login(ctx context.Context, email, password string) (string, error)
	Signup(ctx context.Context, name, email, password string) (*domain.User, error)
}

type httpBackend struct {
	baseURL string
	http    *http.Client
	log     *logrus.Logger
}

func NewHTTPBackend(baseURL string, timeout time.Duration, logger *logrus.Logger) Backend {
	return &httpBackend{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
		log:     logger,
	}
}

func (b *httpBackend) do(ctx context.Context, method, path string, body interface{}) ([]byte, error) {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, b.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	res, err := b.http.Do(req)
	if err != nil {
		b.log.Warnf("Backend request %s %s failed: %v", method, path, err)
		return nil, fmt.Errorf("%s %s: %v: %w", method, path, err, domain.ErrBackendUnavailable)
	}
	defer res.Body.Close()

	payload, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if res.StatusCode < 200 || res.StatusCode > 299 {
		b.log.Warnf("Backend request %s %s returned status %d: %s", method, path, res.StatusCode, payload)
		return nil, fmt.Errorf("%s %s: status %d: %s: %w", method, path, res.StatusCode, payload, domain.ErrServerStatus)
	}
	return payload, nil
}

func (b *httpBackend) ListProducts(ctx context.Context) ([]domain.Product, error) {
	payload, err := b.do(ctx, http.MethodGet, "/products", nil)
	if err != nil {
		return nil, err
	}

	var wire []productPayload
	if err := json.Unmarshal(payload, &wire); err != nil {
		return nil, fmt.Errorf("failed to decode products: %w", err)
	}

	products := make([]domain.Product, 0, len(wire))
	for i := range wire {
		products = append(products, wire[i].toDomain())
	}
	b.log.Infof("Fetched %d products from backend", len(products))
	return products, nil
}

func (b *httpBackend) CreateProduct(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	payload, err := b.do(ctx, http.MethodPost, "/products", product)
	if err != nil {
		return nil, err
	}
	return decodeProduct(payload)
}

func (b *httpBackend) UpdateProduct(ctx context.Context, name string, product *domain.Product) (*domain.Product, error) {
	payload, err := b.do(ctx, http.MethodPut, "/products/"+url.PathEscape(name), product)
	if err != nil {
		return nil, err
	}
	return decodeProduct(payload)
}

func (b *httpBackend) DeleteProduct(ctx context.Context, name string) error {
	_, err := b.do(ctx, http.MethodDelete, "/products/"+url.PathEscape(name), nil)
	return err
}

func (b *httpBackend) SellOne(ctx context.Context, name string) (*domain.Product, error) {
	payload, err := b.do(ctx, http.MethodPut, "/products/sell/"+url.PathEscape(name), nil)
	if err != nil {
		return nil, err
	}
	return decodeProduct(payload)
}

type sellBody struct {
	UserID    int `json:"userId"`
	ProductID int `json:"productId"`
	Quantity  int `json:"quantity"`
}

func (b *httpBackend) Sell(ctx context.Context, userID, productID, quantity int) (string, error) {
	payload, err := b.do(ctx, http.MethodPost, "/sell", sellBody{
		UserID:    userID,
		ProductID: productID,
		Quantity:  quantity,
	})
	if err != nil {
		return "", err
	}
	return string(payload), nil
}

func (b *httpBackend) ListUsers(ctx context.Context) ([]domain.User, error) {
	payload, err := b.do(ctx, http.MethodGet, "/users", nil)
	if err != nil {
		return nil, err
	}

	var wire []userPayload
	if err := json.Unmarshal(payload, &wire); err != nil {
		return nil, fmt.Errorf("failed to decode users: %w", err)
	}

	users := make([]domain.User, 0, len(wire))
	for i := range wire {
		users = append(users, wire[i].toDomain())
	}
	return users, nil
}

type userBody struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password,omitempty"`
}

func (b *httpBackend) CreateUser(ctx context.Context, name, email, password string) (*domain.User, error) {
	payload, err := b.do(ctx, http.MethodPost, "/users", userBody{Name: name, Email: email, Password: password})
	if err != nil {
		return nil, err
	}
	return decodeUser(payload)
}

func (b *httpBackend) UpdateUser(ctx context.Context, id int, name, email, password string) (*domain.User, error) {
	payload, err := b.do(ctx, http.MethodPut, "/users/"+strconv.Itoa(id), userBody{Name: name, Email: email, Password: password})
	if err != nil {
		return nil, err
	}
	return decodeUser(payload)
}

func (b *httpBackend) DeleteUser(ctx context.Context, id int) error {
	_, err := b.do(ctx, http.MethodDelete, "/users/"+strconv.Itoa(id), nil)
	return err
}

type loginBody struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (b *httpBackend) Login(ctx context.Context, email, password string) (string, error) {
	payload, err := b.do(ctx, http.MethodPost, "/login", loginBody{Email: email, Password: password})
	if err != nil {
		return "", err
	}
	return string(payload), nil
}

func (b *httpBackend) Signup(ctx context.Context, name, email, password string) (*domain.User, error) {
	payload, err := b.do(ctx, http.MethodPost, "/signup", userBody{Name: name, Email: email, Password: password})
	if err != nil {
		return nil, err
	}
	return decodeUser(payload)
}

func decodeProduct(payload []byte) (*domain.Product, error) {
	var wire productPayload
	if err := json.Unmarshal(payload, &wire); err != nil {
		return nil, fmt.Errorf("failed to decode product: %w", err)
	}
	product := wire.toDomain()
	return &product, nil
}

func decodeUser(payload []byte) (*domain.User, error) {
	var wire userPayload
	if err := json.Unmarshal(payload, &wire); err != nil {
		return nil, fmt.Errorf("failed to decode user: %w", err)
	}
	user := wire.toDomain()
	return &user, nil
}
