// internal/adapters/out/db/cart_repository_pg.go
package db

import (
	"context"
	"database/sql"
	"strings"

	pkgerrors "github.com/pkg/errors"
	"github.com/shopspring/decimal"

	dbcommon "storefront/internal/adapters/out/db/common"
	cartdom "storefront/internal/domain/cart"
)

// PostgreSQL implementation of cart.Repository. The aggregate spans two
// tables: carts (one row per user, denormalized totals) and cart_items
// (position-ordered lines). Upsert rewrites the lines wholesale; line-level
// diffing is not worth the bookkeeping at cart sizes.
type CartRepositoryPG struct {
	DB *sql.DB
}

func NewCartRepositoryPG(db *sql.DB) *CartRepositoryPG {
	return &CartRepositoryPG{DB: db}
}

// ========================
// Repository impl
// ========================

func (r *CartRepositoryPG) GetByUserID(ctx context.Context, userID string) (*cartdom.Cart, error) {
	return r.getByUserID(ctx, userID, false)
}

func (r *CartRepositoryPG) GetByUserIDForUpdate(ctx context.Context, userID string) (*cartdom.Cart, error) {
	return r.getByUserID(ctx, userID, true)
}

func (r *CartRepositoryPG) getByUserID(ctx context.Context, userID string, forUpdate bool) (*cartdom.Cart, error) {
	run := dbcommon.GetRunner(ctx, r.DB)

	q := `
SELECT id, user_id, total_price, total_quantity, created_at, updated_at
FROM carts
WHERE user_id = $1`
	if forUpdate {
		q += `
FOR UPDATE`
	}

	row := run.QueryRowContext(ctx, q, strings.TrimSpace(userID))
	c, err := scanCart(row)
	if err != nil {
		if pkgerrors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	items, err := r.loadItems(ctx, c.ID)
	if err != nil {
		return nil, err
	}
	c.Items = items
	return c, nil
}

func (r *CartRepositoryPG) loadItems(ctx context.Context, cartID string) ([]cartdom.Item, error) {
	run := dbcommon.GetRunner(ctx, r.DB)

	const q = `
SELECT id, product_id, size, quantity
FROM cart_items
WHERE cart_id = $1
ORDER BY position, id`
	rows, err := run.QueryContext(ctx, q, cartID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []cartdom.Item{}
	for rows.Next() {
		var (
			id, productID string
			sizeNS        sql.NullString
			qty           int
		)
		if err := rows.Scan(&id, &productID, &sizeNS, &qty); err != nil {
			return nil, err
		}
		items = append(items, cartdom.Item{
			ID:        id,
			ProductID: productID,
			Size:      dbcommon.FromNullString(sizeNS),
			Quantity:  qty,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *CartRepositoryPG) Upsert(ctx context.Context, c *cartdom.Cart) error {
	if c == nil {
		return cartdom.ErrInvalidCart
	}
	run := dbcommon.GetRunner(ctx, r.DB)

	const q = `
INSERT INTO carts (id, user_id, total_price, total_quantity, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6)
ON CONFLICT (user_id) DO UPDATE SET
  total_price    = EXCLUDED.total_price,
  total_quantity = EXCLUDED.total_quantity,
  updated_at     = EXCLUDED.updated_at
RETURNING id`
	var cartID string
	if err := run.QueryRowContext(ctx, q,
		strings.TrimSpace(c.ID),
		strings.TrimSpace(c.UserID),
		c.TotalPrice.String(),
		c.TotalQuantity,
		c.CreatedAt.UTC(),
		c.UpdatedAt.UTC(),
	).Scan(&cartID); err != nil {
		return err
	}
	// The row may predate c (get-or-create races); keep the persisted id.
	c.ID = cartID

	if _, err := run.ExecContext(ctx, `DELETE FROM cart_items WHERE cart_id = $1`, cartID); err != nil {
		return err
	}

	const qi = `
INSERT INTO cart_items (id, cart_id, product_id, size, quantity, position)
VALUES ($1, $2, $3, $4, $5, $6)`
	for i, it := range c.Items {
		if _, err := run.ExecContext(ctx, qi,
			strings.TrimSpace(it.ID),
			cartID,
			strings.TrimSpace(it.ProductID),
			dbcommon.ToDBText(it.Size),
			it.Quantity,
			i,
		); err != nil {
			return err
		}
	}
	return nil
}

func (r *CartRepositoryPG) DeleteByUserID(ctx context.Context, userID string) error {
	run := dbcommon.GetRunner(ctx, r.DB)
	// cart_items go with the cart via ON DELETE CASCADE.
	_, err := run.ExecContext(ctx, `DELETE FROM carts WHERE user_id = $1`, strings.TrimSpace(userID))
	return err
}

// ========================
// Helpers
// ========================

func scanCart(s dbcommon.RowScanner) (*cartdom.Cart, error) {
	var (
		id, userID           string
		totalPriceRaw        string
		totalQty             int
		createdAt, updatedAt sql.NullTime
	)
	if err := s.Scan(&id, &userID, &totalPriceRaw, &totalQty, &createdAt, &updatedAt); err != nil {
		return nil, err
	}

	totalPrice, err := decimal.NewFromString(strings.TrimSpace(totalPriceRaw))
	if err != nil {
		return nil, pkgerrors.Wrap(err, "parse cart total price")
	}

	c := &cartdom.Cart{
		ID:            strings.TrimSpace(id),
		UserID:        strings.TrimSpace(userID),
		Items:         []cartdom.Item{},
		TotalPrice:    totalPrice,
		TotalQuantity: totalQty,
	}
	if createdAt.Valid {
		c.CreatedAt = createdAt.Time.UTC()
	}
	if updatedAt.Valid {
		c.UpdatedAt = updatedAt.Time.UTC()
	}
	return c, nil
}
