// internal/adapters/out/db/order_repository_pg.go
package db

import (
	"context"
	"database/sql"
	"strings"

	pkgerrors "github.com/pkg/errors"
	"github.com/shopspring/decimal"

	dbcommon "storefront/internal/adapters/out/db/common"
	orderdom "storefront/internal/domain/order"
)

// PostgreSQL implementation of order.Repository. orders carries the
// lifecycle and refund columns the external collaborators mutate;
// order_items is append-only snapshot data.
type OrderRepositoryPG struct {
	DB *sql.DB
}

func NewOrderRepositoryPG(db *sql.DB) *OrderRepositoryPG {
	return &OrderRepositoryPG{DB: db}
}

const orderColumns = `id, user_id, status, total_price, order_date,
  refund_status, refund_reason, refund_requested_at, refund_processed_at, delivered_at`

// ========================
// Repository impl
// ========================

func (r *OrderRepositoryPG) Create(ctx context.Context, o orderdom.Order) (orderdom.Order, error) {
	run := dbcommon.GetRunner(ctx, r.DB)

	const q = `
INSERT INTO orders (
  id, user_id, status, total_price, order_date,
  refund_status, refund_reason, refund_requested_at, refund_processed_at, delivered_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	if _, err := run.ExecContext(ctx, q,
		strings.TrimSpace(o.ID),
		strings.TrimSpace(o.UserID),
		string(o.Status),
		o.TotalPrice.String(),
		o.OrderDate.UTC(),
		string(o.RefundStatus),
		dbcommon.ToDBText(o.RefundReason),
		dbcommon.ToDBTime(o.RefundRequestedAt),
		dbcommon.ToDBTime(o.RefundProcessedAt),
		dbcommon.ToDBTime(o.DeliveredAt),
	); err != nil {
		if dbcommon.IsUniqueViolation(err) {
			return orderdom.Order{}, pkgerrors.Wrap(err, "order already exists")
		}
		return orderdom.Order{}, err
	}

	const qi = `
INSERT INTO order_items (id, order_id, product_id, quantity, unit_price)
VALUES ($1, $2, $3, $4, $5)`
	for _, it := range o.Items {
		if _, err := run.ExecContext(ctx, qi,
			strings.TrimSpace(it.ID),
			strings.TrimSpace(o.ID),
			strings.TrimSpace(it.ProductID),
			it.Quantity,
			it.UnitPrice.String(),
		); err != nil {
			return orderdom.Order{}, err
		}
	}
	return o, nil
}

func (r *OrderRepositoryPG) GetByIDAndUserID(ctx context.Context, id, userID string) (orderdom.Order, error) {
	run := dbcommon.GetRunner(ctx, r.DB)

	q := `
SELECT ` + orderColumns + `
FROM orders
WHERE id = $1 AND user_id = $2`
	row := run.QueryRowContext(ctx, q, strings.TrimSpace(id), strings.TrimSpace(userID))
	o, err := scanOrder(row)
	if err != nil {
		if pkgerrors.Is(err, sql.ErrNoRows) {
			return orderdom.Order{}, orderdom.ErrNotFound
		}
		return orderdom.Order{}, err
	}

	items, err := r.loadItems(ctx, o.ID)
	if err != nil {
		return orderdom.Order{}, err
	}
	o.Items = items
	return o, nil
}

func (r *OrderRepositoryPG) ListByUserID(ctx context.Context, userID string) ([]orderdom.Order, error) {
	run := dbcommon.GetRunner(ctx, r.DB)

	q := `
SELECT ` + orderColumns + `
FROM orders
WHERE user_id = $1
ORDER BY order_date DESC, id DESC`
	rows, err := run.QueryContext(ctx, q, strings.TrimSpace(userID))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []orderdom.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range orders {
		items, err := r.loadItems(ctx, orders[i].ID)
		if err != nil {
			return nil, err
		}
		orders[i].Items = items
	}
	return orders, nil
}

// Save persists the collaborator-owned lifecycle columns. Items are frozen
// snapshots and never rewritten.
func (r *OrderRepositoryPG) Save(ctx context.Context, o orderdom.Order) (orderdom.Order, error) {
	run := dbcommon.GetRunner(ctx, r.DB)

	const q = `
UPDATE orders SET
  status              = $2,
  refund_status       = $3,
  refund_reason       = $4,
  refund_requested_at = $5,
  refund_processed_at = $6,
  delivered_at        = $7
WHERE id = $1`
	res, err := run.ExecContext(ctx, q,
		strings.TrimSpace(o.ID),
		string(o.Status),
		string(o.RefundStatus),
		dbcommon.ToDBText(o.RefundReason),
		dbcommon.ToDBTime(o.RefundRequestedAt),
		dbcommon.ToDBTime(o.RefundProcessedAt),
		dbcommon.ToDBTime(o.DeliveredAt),
	)
	if err != nil {
		return orderdom.Order{}, err
	}
	aff, _ := res.RowsAffected()
	if aff == 0 {
		return orderdom.Order{}, orderdom.ErrNotFound
	}
	return o, nil
}

// ========================
// Helpers
// ========================

func (r *OrderRepositoryPG) loadItems(ctx context.Context, orderID string) ([]orderdom.Item, error) {
	run := dbcommon.GetRunner(ctx, r.DB)

	const q = `
SELECT id, product_id, quantity, unit_price
FROM order_items
WHERE order_id = $1
ORDER BY id`
	rows, err := run.QueryContext(ctx, q, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []orderdom.Item{}
	for rows.Next() {
		var (
			id, productID string
			qty           int
			unitPriceRaw  string
		)
		if err := rows.Scan(&id, &productID, &qty, &unitPriceRaw); err != nil {
			return nil, err
		}
		unitPrice, err := decimal.NewFromString(strings.TrimSpace(unitPriceRaw))
		if err != nil {
			return nil, pkgerrors.Wrap(err, "parse order item unit price")
		}
		items = append(items, orderdom.Item{
			ID:        id,
			ProductID: productID,
			Quantity:  qty,
			UnitPrice: unitPrice,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

func scanOrder(s dbcommon.RowScanner) (orderdom.Order, error) {
	var (
		id, userID, status, refundStatus string
		totalPriceRaw                    string
		orderDate                        sql.NullTime
		refundReasonNS                   sql.NullString
		refundRequestedAtNS              sql.NullTime
		refundProcessedAtNS              sql.NullTime
		deliveredAtNS                    sql.NullTime
	)
	if err := s.Scan(
		&id, &userID, &status, &totalPriceRaw, &orderDate,
		&refundStatus, &refundReasonNS, &refundRequestedAtNS, &refundProcessedAtNS, &deliveredAtNS,
	); err != nil {
		return orderdom.Order{}, err
	}

	totalPrice, err := decimal.NewFromString(strings.TrimSpace(totalPriceRaw))
	if err != nil {
		return orderdom.Order{}, pkgerrors.Wrap(err, "parse order total price")
	}

	o := orderdom.Order{
		ID:                strings.TrimSpace(id),
		UserID:            strings.TrimSpace(userID),
		Status:            orderdom.Status(strings.TrimSpace(status)),
		TotalPrice:        totalPrice,
		RefundStatus:      orderdom.RefundStatus(strings.TrimSpace(refundStatus)),
		RefundReason:      dbcommon.FromNullString(refundReasonNS),
		RefundRequestedAt: dbcommon.FromNullTime(refundRequestedAtNS),
		RefundProcessedAt: dbcommon.FromNullTime(refundProcessedAtNS),
		DeliveredAt:       dbcommon.FromNullTime(deliveredAtNS),
	}
	if orderDate.Valid {
		o.OrderDate = orderDate.Time.UTC()
	}
	return o, nil
}
