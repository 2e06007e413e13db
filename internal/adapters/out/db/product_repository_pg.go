// internal/adapters/out/db/product_repository_pg.go
package db

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/lib/pq"
	pkgerrors "github.com/pkg/errors"
	"github.com/shopspring/decimal"

	dbcommon "storefront/internal/adapters/out/db/common"
	productdom "storefront/internal/domain/product"
)

// PostgreSQL implementation of product.Repository.
type ProductRepositoryPG struct {
	DB *sql.DB
}

func NewProductRepositoryPG(db *sql.DB) *ProductRepositoryPG {
	return &ProductRepositoryPG{DB: db}
}

const productColumns = `id, name, description, price, stock, active, image_url, created_at, updated_at`

// ========================
// Repository impl
// ========================

func (r *ProductRepositoryPG) GetByID(ctx context.Context, id string) (productdom.Product, error) {
	run := dbcommon.GetRunner(ctx, r.DB)
	q := fmt.Sprintf(`SELECT %s FROM products WHERE id = $1`, productColumns)
	row := run.QueryRowContext(ctx, q, strings.TrimSpace(id))
	p, err := scanProduct(row)
	if err != nil {
		if pkgerrors.Is(err, sql.ErrNoRows) {
			return productdom.Product{}, productdom.ErrNotFound
		}
		return productdom.Product{}, err
	}
	return p, nil
}

// GetByIDForUpdate takes the row lock that serializes every
// check-then-decrement on this product's stock until the transaction ends.
func (r *ProductRepositoryPG) GetByIDForUpdate(ctx context.Context, id string) (productdom.Product, error) {
	run := dbcommon.GetRunner(ctx, r.DB)
	q := fmt.Sprintf(`SELECT %s FROM products WHERE id = $1 FOR UPDATE`, productColumns)
	row := run.QueryRowContext(ctx, q, strings.TrimSpace(id))
	p, err := scanProduct(row)
	if err != nil {
		if pkgerrors.Is(err, sql.ErrNoRows) {
			return productdom.Product{}, productdom.ErrNotFound
		}
		return productdom.Product{}, err
	}
	return p, nil
}

func (r *ProductRepositoryPG) ListByIDs(ctx context.Context, ids []string) (map[string]productdom.Product, error) {
	out := make(map[string]productdom.Product, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	run := dbcommon.GetRunner(ctx, r.DB)
	q := fmt.Sprintf(`SELECT %s FROM products WHERE id = ANY($1)`, productColumns)
	rows, err := run.QueryContext(ctx, q, pq.Array(ids))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		out[p.ID] = p
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *ProductRepositoryPG) ListActive(ctx context.Context) ([]productdom.Product, error) {
	run := dbcommon.GetRunner(ctx, r.DB)
	q := fmt.Sprintf(`SELECT %s FROM products WHERE active ORDER BY name, id`, productColumns)
	rows, err := run.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []productdom.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *ProductRepositoryPG) Create(ctx context.Context, p productdom.Product) (productdom.Product, error) {
	run := dbcommon.GetRunner(ctx, r.DB)
	q := fmt.Sprintf(`
INSERT INTO products (%s)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
RETURNING %s`, productColumns, productColumns)
	row := run.QueryRowContext(ctx, q,
		strings.TrimSpace(p.ID),
		strings.TrimSpace(p.Name),
		p.Description,
		p.Price.String(),
		p.Stock,
		p.Active,
		dbcommon.ToDBText(p.ImageURL),
		p.CreatedAt.UTC(),
		p.UpdatedAt.UTC(),
	)
	out, err := scanProduct(row)
	if err != nil {
		if dbcommon.IsUniqueViolation(err) {
			return productdom.Product{}, pkgerrors.Wrap(err, "product already exists")
		}
		return productdom.Product{}, err
	}
	return out, nil
}

func (r *ProductRepositoryPG) Save(ctx context.Context, p productdom.Product) (productdom.Product, error) {
	run := dbcommon.GetRunner(ctx, r.DB)
	q := fmt.Sprintf(`
UPDATE products SET
  name        = $2,
  description = $3,
  price       = $4,
  stock       = $5,
  active      = $6,
  image_url   = $7,
  updated_at  = $8
WHERE id = $1
RETURNING %s`, productColumns)
	row := run.QueryRowContext(ctx, q,
		strings.TrimSpace(p.ID),
		strings.TrimSpace(p.Name),
		p.Description,
		p.Price.String(),
		p.Stock,
		p.Active,
		dbcommon.ToDBText(p.ImageURL),
		p.UpdatedAt.UTC(),
	)
	out, err := scanProduct(row)
	if err != nil {
		if pkgerrors.Is(err, sql.ErrNoRows) {
			return productdom.Product{}, productdom.ErrNotFound
		}
		return productdom.Product{}, err
	}
	return out, nil
}

func (r *ProductRepositoryPG) Count(ctx context.Context) (int, error) {
	run := dbcommon.GetRunner(ctx, r.DB)
	var total int
	if err := run.QueryRowContext(ctx, `SELECT COUNT(*) FROM products`).Scan(&total); err != nil {
		return 0, err
	}
	return total, nil
}

// ========================
// Helpers
// ========================

func scanProduct(s dbcommon.RowScanner) (productdom.Product, error) {
	var (
		id, name, description string
		priceRaw              string
		stock                 int
		active                bool
		imageURLNS            sql.NullString
		createdAt, updatedAt  sql.NullTime
	)
	if err := s.Scan(&id, &name, &description, &priceRaw, &stock, &active, &imageURLNS, &createdAt, &updatedAt); err != nil {
		return productdom.Product{}, err
	}

	price, err := decimal.NewFromString(strings.TrimSpace(priceRaw))
	if err != nil {
		return productdom.Product{}, pkgerrors.Wrap(err, "parse product price")
	}

	p := productdom.Product{
		ID:          strings.TrimSpace(id),
		Name:        strings.TrimSpace(name),
		Description: description,
		Price:       price,
		Stock:       stock,
		Active:      active,
		ImageURL:    dbcommon.FromNullString(imageURLNS),
	}
	if createdAt.Valid {
		p.CreatedAt = createdAt.Time.UTC()
	}
	if updatedAt.Valid {
		p.UpdatedAt = updatedAt.Time.UTC()
	}
	return p, nil
}
