// internal/domain/cart/repository_port.go
package cart

import "context"

// Repository is the persistence port for Cart.
//
// Storage (PostgreSQL):
// - carts: one row per user (user_id unique), totals denormalized
// - cart_items: one row per line, unique on (cart_id, product_id, size)
//
// Not-found policy: Get* return (nil, nil) when the user has no cart row;
// the application layer decides between "empty cart value" and ErrNotFound.
type Repository interface {
	// GetByUserID returns the user's cart with its lines, or (nil, nil).
	GetByUserID(ctx context.Context, userID string) (*Cart, error)

	// GetByUserIDForUpdate locks the cart row (SELECT ... FOR UPDATE) so a
	// user's concurrent mutations serialize. Must run inside a transaction.
	GetByUserIDForUpdate(ctx context.Context, userID string) (*Cart, error)

	// Upsert saves the whole aggregate (cart row + lines).
	Upsert(ctx context.Context, c *Cart) error

	// DeleteByUserID removes the cart row and its lines. Deleting an absent
	// cart is not an error.
	DeleteByUserID(ctx context.Context, userID string) error
}
