// internal/domain/cart/entity.go
package cart

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrNotFound        = errors.New("cart: not found")
	ErrInvalidCart     = errors.New("cart: invalid")
	ErrInvalidQuantity = errors.New("cart: invalid quantity")
	ErrItemNotFound    = errors.New("cart: item not in cart")
)

// Item is one line item in a cart. Product is referenced by id only and
// resolved by lookup on every read; the same product with a different Size
// is a distinct line.
type Item struct {
	ID        string  `json:"id"`
	ProductID string  `json:"productId"`
	Size      *string `json:"size,omitempty"`
	Quantity  int     `json:"quantity"`
}

// Cart is a user's pending, mutable collection of line items. Totals are
// derived values: they are recomputed from the lines after every mutation
// and never incrementally trusted.
type Cart struct {
	ID            string          `json:"id"`
	UserID        string          `json:"userId"`
	Items         []Item          `json:"items"`
	TotalPrice    decimal.Decimal `json:"totalPrice"`
	TotalQuantity int             `json:"totalQuantity"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// New creates an empty cart for userID.
func New(id, userID string, now time.Time) (*Cart, error) {
	c := &Cart{
		ID:         strings.TrimSpace(id),
		UserID:     strings.TrimSpace(userID),
		Items:      []Item{},
		TotalPrice: decimal.Zero,
		CreatedAt:  now.UTC(),
		UpdatedAt:  now.UTC(),
	}
	if c.ID == "" || c.UserID == "" {
		return nil, ErrInvalidCart
	}
	return c, nil
}

// Empty returns a non-persisted empty cart value for userID, used when the
// user has no cart row yet.
func Empty(userID string) *Cart {
	return &Cart{
		UserID:     strings.TrimSpace(userID),
		Items:      []Item{},
		TotalPrice: decimal.Zero,
	}
}

// FindItem returns the index of the line matching (productID, size), or -1.
func (c *Cart) FindItem(productID string, size *string) int {
	pid := strings.TrimSpace(productID)
	for i := range c.Items {
		if c.Items[i].ProductID == pid && sameSize(c.Items[i].Size, size) {
			return i
		}
	}
	return -1
}

// FindItemByProduct returns the index of the first line for productID
// regardless of size, or -1.
func (c *Cart) FindItemByProduct(productID string) int {
	pid := strings.TrimSpace(productID)
	for i := range c.Items {
		if c.Items[i].ProductID == pid {
			return i
		}
	}
	return -1
}

// SetLine merges qty into the existing (productID, size) line or appends a
// new one with id itemID. Stock validation is the caller's responsibility;
// the quantity passed here is the final line quantity.
func (c *Cart) SetLine(itemID, productID string, size *string, qty int, now time.Time) error {
	pid := strings.TrimSpace(productID)
	if pid == "" {
		return ErrInvalidCart
	}
	if qty < 1 {
		return ErrInvalidQuantity
	}

	size = normalizeSize(size)
	if idx := c.FindItem(pid, size); idx >= 0 {
		c.Items[idx].Quantity = qty
	} else {
		c.Items = append(c.Items, Item{
			ID:        strings.TrimSpace(itemID),
			ProductID: pid,
			Size:      size,
			Quantity:  qty,
		})
	}
	c.touch(now)
	return nil
}

// RemoveProduct deletes the first line for productID.
func (c *Cart) RemoveProduct(productID string, now time.Time) error {
	idx := c.FindItemByProduct(productID)
	if idx < 0 {
		return ErrItemNotFound
	}
	c.Items = append(c.Items[:idx], c.Items[idx+1:]...)
	c.touch(now)
	return nil
}

// Clear empties all lines and zeroes totals.
func (c *Cart) Clear(now time.Time) {
	c.Items = []Item{}
	c.TotalPrice = decimal.Zero
	c.TotalQuantity = 0
	c.touch(now)
}

// RecalcTotals recomputes TotalPrice and TotalQuantity from scratch against
// the current unit prices. Every line's product must be present in prices.
func (c *Cart) RecalcTotals(prices map[string]decimal.Decimal) error {
	total := decimal.Zero
	qty := 0
	for _, it := range c.Items {
		price, ok := prices[it.ProductID]
		if !ok {
			return ErrInvalidCart
		}
		total = total.Add(price.Mul(decimal.NewFromInt(int64(it.Quantity))))
		qty += it.Quantity
	}
	c.TotalPrice = total
	c.TotalQuantity = qty
	return nil
}

// IsEmpty reports whether the cart has no lines.
func (c *Cart) IsEmpty() bool {
	return c == nil || len(c.Items) == 0
}

func (c *Cart) touch(now time.Time) {
	c.UpdatedAt = now.UTC()
}

// ----------------------------
// Helpers
// ----------------------------

func normalizeSize(size *string) *string {
	if size == nil {
		return nil
	}
	s := strings.TrimSpace(*size)
	if s == "" {
		return nil
	}
	return &s
}

func sameSize(a, b *string) bool {
	a = normalizeSize(a)
	b = normalizeSize(b)
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}
