package domain

import "errors"

// Sentinel errors shared by the backend and the terminal side. Callers
// classify with errors.Is; wrapped messages carry the detail.
var (
	// ErrValidation covers missing or malformed input on any operation.
	ErrValidation = errors.New("invalid input")

	// ErrProductNotFound is returned when a product id or name resolves
	// to nothing.
	ErrProductNotFound = errors.New("product not found")

	// ErrUserNotFound is returned for unknown user ids or emails.
	ErrUserNotFound = errors.New("user not found")

	// ErrInsufficientStock is returned when a requested quantity exceeds
	// the available (reservation-adjusted) stock.
	ErrInsufficientStock = errors.New("insufficient stock")

	// ErrNotInCart is returned when removing a product that has no cart
	// line.
	ErrNotInCart = errors.New("product is not in the cart")

	// ErrCatalogUnavailable means the product catalog could not be
	// fetched from the backend.
	ErrCatalogUnavailable = errors.New("catalog unavailable")

	// ErrStockConflict means the backend's stock no longer covers the
	// cart's reservations; the commit was aborted before any line was
	// sent.
	ErrStockConflict = errors.New("stock changed on the backend")

	// ErrBackendUnavailable wraps transport-level failures reaching the
	// backend.
	ErrBackendUnavailable = errors.New("backend unavailable")

	// ErrServerStatus wraps non-2xx responses from the backend.
	ErrServerStatus = errors.New("backend returned an error status")
)
