// internal/domain/wishlist/entity.go
package wishlist

import (
	"errors"
	"strings"
	"time"
)

var (
	ErrNotFound      = errors.New("wishlist: not found")
	ErrInvalid       = errors.New("wishlist: invalid")
	ErrItemNotFound  = errors.New("wishlist: item not in wishlist")
	ErrAlreadyExists = errors.New("wishlist: product already in wishlist with this size")
)

// Item is one saved product reference. Unlike a cart line it carries no
// quantity; duplicates on (productId, size) are rejected.
type Item struct {
	ID        string  `json:"id"`
	ProductID string  `json:"productId"`
	Size      *string `json:"size,omitempty"`
}

type Wishlist struct {
	ID     string `json:"id"`
	UserID string `json:"userId"`
	Items  []Item `json:"items"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func New(id, userID string, now time.Time) (*Wishlist, error) {
	w := &Wishlist{
		ID:        strings.TrimSpace(id),
		UserID:    strings.TrimSpace(userID),
		Items:     []Item{},
		CreatedAt: now.UTC(),
		UpdatedAt: now.UTC(),
	}
	if w.ID == "" || w.UserID == "" {
		return nil, ErrInvalid
	}
	return w, nil
}

// Empty returns a non-persisted empty wishlist value for userID.
func Empty(userID string) *Wishlist {
	return &Wishlist{UserID: strings.TrimSpace(userID), Items: []Item{}}
}

// Add appends a new (productID, size) item, rejecting duplicates.
func (w *Wishlist) Add(itemID, productID string, size *string, now time.Time) error {
	pid := strings.TrimSpace(productID)
	if pid == "" {
		return ErrInvalid
	}
	size = normalizeSize(size)
	for _, it := range w.Items {
		if it.ProductID == pid && sameSize(it.Size, size) {
			return ErrAlreadyExists
		}
	}
	w.Items = append(w.Items, Item{
		ID:        strings.TrimSpace(itemID),
		ProductID: pid,
		Size:      size,
	})
	w.UpdatedAt = now.UTC()
	return nil
}

// RemoveProduct deletes the first item for productID regardless of size.
func (w *Wishlist) RemoveProduct(productID string, now time.Time) error {
	pid := strings.TrimSpace(productID)
	for i := range w.Items {
		if w.Items[i].ProductID == pid {
			w.Items = append(w.Items[:i], w.Items[i+1:]...)
			w.UpdatedAt = now.UTC()
			return nil
		}
	}
	return ErrItemNotFound
}

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
