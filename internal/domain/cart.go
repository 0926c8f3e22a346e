package domain

import "github.com/shopspring/decimal"

// CartLine is one product's reserved quantity and snapshotted unit
// price within the active cart. Lines are matched by product id; the
// name is carried for display only.
type CartLine struct {
	ProductID int             `json:"product_id"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Quantity  int             `json:"quantity"`
}

// Cart keeps its lines in insertion order. Total always equals the sum
// of UnitPrice*Quantity over the lines.
type Cart struct {
	Lines []CartLine      `json:"lines"`
	Total decimal.Decimal `json:"total"`
}

func (c *Cart) LineFor(productID int) (int, *CartLine) {
	for i := range c.Lines {
		if c.Lines[i].ProductID == productID {
			return i, &c.Lines[i]
		}
	}
	return -1, nil
}
