// internal/application/usecase/catalog_usecase.go
package usecase

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	productdom "storefront/internal/domain/product"
)

var ErrCatalogInvalidArgument = errors.New("catalog_usecase: invalid argument")

// CatalogUsecase serves the browsable product surface. Catalog ownership
// (pricing, activation) lives with the catalog collaborator; this usecase
// only reads, plus seeds a sample catalog for fresh databases.
type CatalogUsecase struct {
	products productdom.Repository
	clock    Clock
}

func NewCatalogUsecase(products productdom.Repository) *CatalogUsecase {
	return &CatalogUsecase{products: products, clock: systemClock{}}
}

func (uc *CatalogUsecase) ListProducts(ctx context.Context) ([]productdom.Product, error) {
	return uc.products.ListActive(ctx)
}

func (uc *CatalogUsecase) GetProduct(ctx context.Context, id string) (productdom.Product, error) {
	pid := strings.TrimSpace(id)
	if pid == "" {
		return productdom.Product{}, ErrCatalogInvalidArgument
	}
	return uc.products.GetByID(ctx, pid)
}

// SeedSample inserts a small demo catalog when the products table is empty.
// Returns the number of products inserted (0 when already seeded).
func (uc *CatalogUsecase) SeedSample(ctx context.Context) (int, error) {
	n, err := uc.products.Count(ctx)
	if err != nil {
		return 0, err
	}
	if n > 0 {
		return 0, nil
	}

	now := uc.clock.Now()
	samples := []struct {
		name, description string
		price             string
		stock             int
	}{
		{"Classic Tee", "Plain cotton t-shirt", "19.90", 120},
		{"Denim Jacket", "Mid-weight denim jacket", "89.50", 35},
		{"Canvas Sneakers", "Low-top canvas sneakers", "54.00", 80},
		{"Wool Scarf", "Merino wool scarf", "32.75", 50},
		{"Leather Belt", "Full-grain leather belt", "27.00", 60},
	}

	inserted := 0
	for _, s := range samples {
		price, err := decimal.NewFromString(s.price)
		if err != nil {
			return inserted, err
		}
		p, err := productdom.New(uuid.NewString(), s.name, s.description, price, s.stock, true, now)
		if err != nil {
			return inserted, err
		}
		if _, err := uc.products.Create(ctx, p); err != nil {
			return inserted, err
		}
		inserted++
	}
	return inserted, nil
}
