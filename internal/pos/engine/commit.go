package engine

import (
	"context"
	"fmt"
	"sync"

	"github.com/Nhlapo2003/wings-Application/internal/domain"
	"github.com/shopspring/decimal"
)

// LineResult reports the outcome of one cart line's commit.
type LineResult struct {
	ProductID int    `json:"product_id"`
	Name      string `json:"name"`
	Quantity  int    `json:"quantity"`
	Message   string `json:"message,omitempty"`
	Error     string `json:"error,omitempty"`
}

func (r LineResult) Committed() bool { return r.Error == "" }

// CommitReport is what a best-effort commit hands back: one result per
// line, in cart order.
type CommitReport struct {
	Results   []LineResult `json:"results"`
	Committed int          `json:"committed"`
	Failed    int          `json:"failed"`
}

// CommitSale records the cart against the backend, one POST /sell per
// line. The commits are best-effort: lines are sent concurrently, a
// failed line neither blocks nor rolls back the others, and every
// line's outcome is reported.
//
// Before anything is sent the catalog is refreshed; if the backend's
// stock no longer covers the cart's reservations the whole commit is
// aborted with ErrStockConflict and no line is committed.
//
// Lines that commit leave the cart (the backend's decrement now matches
// the reservation, so the local snapshot is already consistent). Lines
// that fail stay in the cart with their reservation intact for retry,
// so a partial failure does not clear the cart.
func (e *Engine) CommitSale(ctx context.Context, userID int) (*CommitReport, error) {
	if userID <= 0 {
		return nil, fmt.Errorf("invalid user ID: %w", domain.ErrValidation)
	}
	if len(e.cart.Lines) == 0 {
		return nil, fmt.Errorf("cart is empty: %w", domain.ErrValidation)
	}

	if err := e.Refresh(ctx); err != nil {
		e.log.Warnf("Engine: Aborting commit, pre-commit refresh failed: %v", err)
		return nil, err
	}

	lines := make([]domain.CartLine, len(e.cart.Lines))
	copy(lines, e.cart.Lines)

	results := make([]LineResult, len(lines))
	var wg sync.WaitGroup
	for i := range lines {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			line := lines[i]
			result := LineResult{
				ProductID: line.ProductID,
				Name:      line.Name,
				Quantity:  line.Quantity,
			}

			message, err := e.backend.Sell(ctx, userID, line.ProductID, line.Quantity)
			if err != nil {
				result.Error = err.Error()
			} else {
				result.Message = message
			}
			results[i] = result
		}(i)
	}
	wg.Wait()

	report := &CommitReport{Results: results}
	remaining := e.cart.Lines[:0]
	total := decimal.Zero
	for i, result := range results {
		if result.Committed() {
			report.Committed++
			continue
		}
		report.Failed++
		line := lines[i]
		remaining = append(remaining, line)
		total = total.Add(line.UnitPrice.Mul(decimal.NewFromInt(int64(line.Quantity))))
		e.log.Warnf("Engine: Commit failed for product %d x%d: %s", line.ProductID, line.Quantity, result.Error)
	}
	e.cart.Lines = remaining
	e.cart.Total = total

	e.log.Infof("Engine: Commit finished for user %d: %d committed, %d failed, %d lines left in cart",
		userID, report.Committed, report.Failed, len(e.cart.Lines))
	return report, nil
}
