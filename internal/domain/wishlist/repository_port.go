// internal/domain/wishlist/repository_port.go
package wishlist

import "context"

// Repository is the persistence port for Wishlist.
// Get returns (nil, nil) when the user has no wishlist row.
type Repository interface {
	GetByUserID(ctx context.Context, userID string) (*Wishlist, error)
	Upsert(ctx context.Context, w *Wishlist) error
	DeleteByUserID(ctx context.Context, userID string) error
}
