// internal/domain/product/entity.go
package product

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrNotFound     = errors.New("product: not found")
	ErrInvalidID    = errors.New("product: invalid id")
	ErrInvalidName  = errors.New("product: invalid name")
	ErrInvalidPrice = errors.New("product: invalid price")
	ErrInvalidStock = errors.New("product: invalid stock")
)

// OutOfStockError reports a requested quantity that exceeds the product's
// current stock at the moment of the check.
type OutOfStockError struct {
	ProductID string
	Requested int
	Available int
}

func (e *OutOfStockError) Error() string {
	return fmt.Sprintf("product %s: out of stock (requested %d, available %d)",
		e.ProductID, e.Requested, e.Available)
}

// Product is the catalog record the checkout core reads price/stock from.
// Creation, pricing and activation are owned by the catalog collaborator;
// the core only ever writes Stock.
type Product struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Stock       int             `json:"stock"`
	Active      bool            `json:"active"`
	ImageURL    *string         `json:"imageUrl,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func New(id, name, description string, price decimal.Decimal, stock int, active bool, now time.Time) (Product, error) {
	p := Product{
		ID:          strings.TrimSpace(id),
		Name:        strings.TrimSpace(name),
		Description: strings.TrimSpace(description),
		Price:       price,
		Stock:       stock,
		Active:      active,
		CreatedAt:   now.UTC(),
		UpdatedAt:   now.UTC(),
	}
	if err := p.validate(); err != nil {
		return Product{}, err
	}
	return p, nil
}

// DecrementStock lowers stock by qty. The caller is expected to hold the
// product row lock and to have validated qty <= Stock beforehand.
func (p *Product) DecrementStock(qty int, now time.Time) error {
	if qty <= 0 || qty > p.Stock {
		return ErrInvalidStock
	}
	p.Stock -= qty
	p.UpdatedAt = now.UTC()
	return nil
}

func (p Product) validate() error {
	if p.ID == "" {
		return ErrInvalidID
	}
	if p.Name == "" {
		return ErrInvalidName
	}
	if p.Price.IsNegative() {
		return ErrInvalidPrice
	}
	if p.Stock < 0 {
		return ErrInvalidStock
	}
	return nil
}
