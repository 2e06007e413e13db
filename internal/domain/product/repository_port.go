// internal/domain/product/repository_port.go
package product

import "context"

// Repository is the persistence port for Product.
//
// Storage (PostgreSQL):
// - table: products
// - Stock is mutated-by-many state; any check-then-decrement sequence must go
//   through GetByIDForUpdate inside a transaction so the row stays locked
//   until commit.
type Repository interface {
	// GetByID returns the product, or ErrNotFound.
	GetByID(ctx context.Context, id string) (Product, error)

	// GetByIDForUpdate returns the product with its row locked
	// (SELECT ... FOR UPDATE). Must be called inside a transaction.
	GetByIDForUpdate(ctx context.Context, id string) (Product, error)

	// ListByIDs returns the products for ids (missing ids are absent from
	// the result, not an error).
	ListByIDs(ctx context.Context, ids []string) (map[string]Product, error)

	// ListActive returns the browsable catalog, name-ordered.
	ListActive(ctx context.Context) ([]Product, error)

	// Create inserts a new product (seeding / catalog collaborator surface).
	Create(ctx context.Context, p Product) (Product, error)

	// Save persists the whole product row, including stock.
	Save(ctx context.Context, p Product) (Product, error)

	// Count returns the number of products (used by the seeder).
	Count(ctx context.Context) (int, error)
}
