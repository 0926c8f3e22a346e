package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/Nhlapo2003/wings-Application/internal/domain"
	"github.com/shopspring/decimal"
)

// looseInt decodes from a JSON number or a quoted numeric string. The
// backend's numeric fields have historically arrived both ways.
type looseInt int

func (l *looseInt) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		*l = 0
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		if s == "" {
			*l = 0
			return nil
		}
		n, err := strconv.Atoi(s)
		if err != nil {
			return fmt.Errorf("invalid integer %q: %w", s, err)
		}
		*l = looseInt(n)
		return nil
	}

	var n int
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*l = looseInt(n)
	return nil
}

// productPayload is the wire shape of a product. decimal's JSON codec
// already accepts string- or number-typed prices.
type productPayload struct {
	ID          looseInt        `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Category    string          `json:"category"`
	Price       decimal.Decimal `json:"price"`
	Stock       looseInt        `json:"stock"`
}

func (p *productPayload) toDomain() domain.Product {
	return domain.Product{
		ID:          int(p.ID),
		Name:        p.Name,
		Description: p.Description,
		Category:    p.Category,
		Price:       p.Price,
		Stock:       int(p.Stock),
	}
}

type userPayload struct {
	ID    looseInt `json:"id"`
	Name  string   `json:"name"`
	Email string   `json:"email"`
}

func (u *userPayload) toDomain() domain.User {
	return domain.User{
		ID:    int(u.ID),
		Name:  u.Name,
		Email: u.Email,
	}
}
