// internal/adapters/out/db/wishlist_repository_pg.go
package db

import (
	"context"
	"database/sql"
	"strings"

	pkgerrors "github.com/pkg/errors"

	dbcommon "storefront/internal/adapters/out/db/common"
	wishdom "storefront/internal/domain/wishlist"
)

// PostgreSQL implementation of wishlist.Repository. Same two-table aggregate
// shape as the cart, minus totals.
type WishlistRepositoryPG struct {
	DB *sql.DB
}

func NewWishlistRepositoryPG(db *sql.DB) *WishlistRepositoryPG {
	return &WishlistRepositoryPG{DB: db}
}

func (r *WishlistRepositoryPG) GetByUserID(ctx context.Context, userID string) (*wishdom.Wishlist, error) {
	run := dbcommon.GetRunner(ctx, r.DB)

	const q = `
SELECT id, user_id, created_at, updated_at
FROM wishlists
WHERE user_id = $1`
	var (
		id, uid              string
		createdAt, updatedAt sql.NullTime
	)
	if err := run.QueryRowContext(ctx, q, strings.TrimSpace(userID)).
		Scan(&id, &uid, &createdAt, &updatedAt); err != nil {
		if pkgerrors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	w := &wishdom.Wishlist{
		ID:     strings.TrimSpace(id),
		UserID: strings.TrimSpace(uid),
		Items:  []wishdom.Item{},
	}
	if createdAt.Valid {
		w.CreatedAt = createdAt.Time.UTC()
	}
	if updatedAt.Valid {
		w.UpdatedAt = updatedAt.Time.UTC()
	}

	const qi = `
SELECT id, product_id, size
FROM wishlist_items
WHERE wishlist_id = $1
ORDER BY position, id`
	rows, err := run.QueryContext(ctx, qi, w.ID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			itemID, productID string
			sizeNS            sql.NullString
		)
		if err := rows.Scan(&itemID, &productID, &sizeNS); err != nil {
			return nil, err
		}
		w.Items = append(w.Items, wishdom.Item{
			ID:        itemID,
			ProductID: productID,
			Size:      dbcommon.FromNullString(sizeNS),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return w, nil
}

func (r *WishlistRepositoryPG) Upsert(ctx context.Context, w *wishdom.Wishlist) error {
	if w == nil {
		return wishdom.ErrInvalid
	}
	run := dbcommon.GetRunner(ctx, r.DB)

	const q = `
INSERT INTO wishlists (id, user_id, created_at, updated_at)
VALUES ($1, $2, $3, $4)
ON CONFLICT (user_id) DO UPDATE SET
  updated_at = EXCLUDED.updated_at
RETURNING id`
	var wishlistID string
	if err := run.QueryRowContext(ctx, q,
		strings.TrimSpace(w.ID),
		strings.TrimSpace(w.UserID),
		w.CreatedAt.UTC(),
		w.UpdatedAt.UTC(),
	).Scan(&wishlistID); err != nil {
		return err
	}
	w.ID = wishlistID

	if _, err := run.ExecContext(ctx, `DELETE FROM wishlist_items WHERE wishlist_id = $1`, wishlistID); err != nil {
		return err
	}

	const qi = `
INSERT INTO wishlist_items (id, wishlist_id, product_id, size, position)
VALUES ($1, $2, $3, $4, $5)`
	for i, it := range w.Items {
		if _, err := run.ExecContext(ctx, qi,
			strings.TrimSpace(it.ID),
			wishlistID,
			strings.TrimSpace(it.ProductID),
			dbcommon.ToDBText(it.Size),
			i,
		); err != nil {
			if dbcommon.IsUniqueViolation(err) {
				return wishdom.ErrAlreadyExists
			}
			return err
		}
	}
	return nil
}

func (r *WishlistRepositoryPG) DeleteByUserID(ctx context.Context, userID string) error {
	run := dbcommon.GetRunner(ctx, r.DB)
	_, err := run.ExecContext(ctx, `DELETE FROM wishlists WHERE user_id = $1`, strings.TrimSpace(userID))
	return err
}
