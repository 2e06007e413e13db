// internal/domain/order/repository_port.go
package order

import "context"

// Repository is the persistence port for Order.
//
// Storage (PostgreSQL):
// - orders: lifecycle + refund columns (refund columns written by the
//   external refund collaborator after creation)
// - order_items: frozen snapshots, append-only
type Repository interface {
	// Create inserts the order and all its items. Called inside the
	// checkout transaction.
	Create(ctx context.Context, o Order) (Order, error)

	// GetByIDAndUserID returns the order only when it belongs to userID;
	// a foreign order id is ErrNotFound, not a permission error.
	GetByIDAndUserID(ctx context.Context, id, userID string) (Order, error)

	// ListByUserID returns the user's orders, newest first.
	ListByUserID(ctx context.Context, userID string) ([]Order, error)

	// Save persists status/refund mutations made by the order-management
	// collaborator. Items are never touched.
	Save(ctx context.Context, o Order) (Order, error)
}
