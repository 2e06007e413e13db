// internal/application/usecase/cart_usecase.go
package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	cartdom "storefront/internal/domain/cart"
	productdom "storefront/internal/domain/product"
)

var (
	ErrCartInvalidArgument = errors.New("cart_usecase: invalid argument")
)

// CartUsecase coordinates all cart mutation and read access. Every mutation
// runs inside one transaction with the product row locked before the stock
// comparison, so no line's quantity can exceed the product's stock at the
// moment the mutation commits.
type CartUsecase struct {
	carts    cartdom.Repository
	products productdom.Repository
	tx       Tx
	clock    Clock
}

func NewCartUsecase(carts cartdom.Repository, products productdom.Repository, tx Tx) *CartUsecase {
	return &CartUsecase{
		carts:    carts,
		products: products,
		tx:       tx,
		clock:    systemClock{},
	}
}

// NewCartUsecaseWithClock is useful for tests.
func NewCartUsecaseWithClock(carts cartdom.Repository, products productdom.Repository, tx Tx, clock Clock) *CartUsecase {
	if clock == nil {
		clock = systemClock{}
	}
	return &CartUsecase{carts: carts, products: products, tx: tx, clock: clock}
}

// GetCart returns the user's cart, or an empty non-persisted cart value when
// the user has no cart row yet.
func (uc *CartUsecase) GetCart(ctx context.Context, userID string) (*cartdom.Cart, error) {
	uid := strings.TrimSpace(userID)
	if uid == "" {
		return nil, ErrCartInvalidArgument
	}

	c, err := uc.carts.GetByUserID(ctx, uid)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return cartdom.Empty(uid), nil
	}
	return c, nil
}

// AddToCart adds qty of (productID, size) to the user's cart, creating the
// cart on first use. The merged line quantity must not exceed current stock.
func (uc *CartUsecase) AddToCart(ctx context.Context, userID, productID string, qty int, size *string) (*cartdom.Cart, error) {
	uid := strings.TrimSpace(userID)
	pid := strings.TrimSpace(productID)
	if uid == "" || pid == "" {
		return nil, ErrCartInvalidArgument
	}
	if qty < 1 {
		return nil, cartdom.ErrInvalidQuantity
	}

	var out *cartdom.Cart
	err := uc.tx.WithTx(ctx, func(ctx context.Context) error {
		now := uc.clock.Now()

		c, err := uc.getOrNewCart(ctx, uid, now)
		if err != nil {
			return err
		}
		if err := uc.addLine(ctx, c, pid, qty, size, now); err != nil {
			return err
		}
		if err := uc.persist(ctx, c); err != nil {
			return err
		}
		out = c
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// UpdateItemQuantity sets the line quantity for productID. qty == 0 removes
// the line; qty < 0 is rejected; otherwise the new quantity must not exceed
// current stock or the line is left at its prior quantity.
func (uc *CartUsecase) UpdateItemQuantity(ctx context.Context, userID, productID string, qty int) (*cartdom.Cart, error) {
	uid := strings.TrimSpace(userID)
	pid := strings.TrimSpace(productID)
	if uid == "" || pid == "" {
		return nil, ErrCartInvalidArgument
	}
	if qty < 0 {
		return nil, cartdom.ErrInvalidQuantity
	}

	var out *cartdom.Cart
	err := uc.tx.WithTx(ctx, func(ctx context.Context) error {
		now := uc.clock.Now()

		c, err := uc.carts.GetByUserIDForUpdate(ctx, uid)
		if err != nil {
			return err
		}
		if c == nil {
			return cartdom.ErrNotFound
		}

		idx := c.FindItemByProduct(pid)
		if idx < 0 {
			return cartdom.ErrItemNotFound
		}

		if qty == 0 {
			if err := c.RemoveProduct(pid, now); err != nil {
				return err
			}
		} else {
			p, err := uc.products.GetByIDForUpdate(ctx, pid)
			if err != nil {
				return err
			}
			if qty > p.Stock {
				return &productdom.OutOfStockError{ProductID: p.ID, Requested: qty, Available: p.Stock}
			}
			if err := c.SetLine(c.Items[idx].ID, pid, c.Items[idx].Size, qty, now); err != nil {
				return err
			}
		}

		if err := uc.persist(ctx, c); err != nil {
			return err
		}
		out = c
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// RemoveFromCart deletes the line for productID.
func (uc *CartUsecase) RemoveFromCart(ctx context.Context, userID, productID string) (*cartdom.Cart, error) {
	uid := strings.TrimSpace(userID)
	pid := strings.TrimSpace(productID)
	if uid == "" || pid == "" {
		return nil, ErrCartInvalidArgument
	}

	var out *cartdom.Cart
	err := uc.tx.WithTx(ctx, func(ctx context.Context) error {
		now := uc.clock.Now()

		c, err := uc.carts.GetByUserIDForUpdate(ctx, uid)
		if err != nil {
			return err
		}
		if c == nil {
			return cartdom.ErrNotFound
		}
		if err := c.RemoveProduct(pid, now); err != nil {
			return err
		}
		if err := uc.persist(ctx, c); err != nil {
			return err
		}
		out = c
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// ClearCart empties all lines and zeroes totals. An absent cart is created
// empty, so the result is the same either way.
func (uc *CartUsecase) ClearCart(ctx context.Context, userID string) (*cartdom.Cart, error) {
	uid := strings.TrimSpace(userID)
	if uid == "" {
		return nil, ErrCartInvalidArgument
	}

	var out *cartdom.Cart
	err := uc.tx.WithTx(ctx, func(ctx context.Context) error {
		now := uc.clock.Now()

		c, err := uc.getOrNewCart(ctx, uid, now)
		if err != nil {
			return err
		}
		c.Clear(now)
		if err := uc.carts.Upsert(ctx, c); err != nil {
			return err
		}
		out = c
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// MergeCarts reconciles the guest cart into the target user's cart on login.
// Every guest line goes through the same path as AddToCart, so the merge
// obeys the identical stock cap and line-merging rule; any failing line
// aborts the whole merge. The guest cart row is deleted afterward, never
// left empty.
func (uc *CartUsecase) MergeCarts(ctx context.Context, guestUserID, targetUserID string) (*cartdom.Cart, error) {
	gid := strings.TrimSpace(guestUserID)
	uid := strings.TrimSpace(targetUserID)
	if gid == "" || uid == "" || gid == uid {
		return nil, ErrCartInvalidArgument
	}

	var out *cartdom.Cart
	err := uc.tx.WithTx(ctx, func(ctx context.Context) error {
		now := uc.clock.Now()

		guest, err := uc.carts.GetByUserIDForUpdate(ctx, gid)
		if err != nil {
			return err
		}
		target, err := uc.getOrNewCart(ctx, uid, now)
		if err != nil {
			return err
		}

		if guest == nil || guest.IsEmpty() {
			if guest != nil {
				if err := uc.carts.DeleteByUserID(ctx, gid); err != nil {
					return err
				}
			}
			if err := uc.carts.Upsert(ctx, target); err != nil {
				return err
			}
			out = target
			return nil
		}

		for _, it := range guest.Items {
			if err := uc.addLine(ctx, target, it.ProductID, it.Quantity, it.Size, now); err != nil {
				return err
			}
		}
		if err := uc.persist(ctx, target); err != nil {
			return err
		}
		if err := uc.carts.DeleteByUserID(ctx, gid); err != nil {
			return err
		}
		out = target
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// ----------------------------
// internals
// ----------------------------

func (uc *CartUsecase) getOrNewCart(ctx context.Context, userID string, now time.Time) (*cartdom.Cart, error) {
	c, err := uc.carts.GetByUserIDForUpdate(ctx, userID)
	if err != nil {
		return nil, err
	}
	if c != nil {
		return c, nil
	}
	return cartdom.New(uuid.NewString(), userID, now)
}

// addLine validates (existing + qty) against the locked product's stock and
// merges the quantity into the cart. Shared by AddToCart and MergeCarts.
func (uc *CartUsecase) addLine(ctx context.Context, c *cartdom.Cart, productID string, qty int, size *string, now time.Time) error {
	if qty < 1 {
		return cartdom.ErrInvalidQuantity
	}

	p, err := uc.products.GetByIDForUpdate(ctx, productID)
	if err != nil {
		return err
	}

	newQty := qty
	if idx := c.FindItem(p.ID, size); idx >= 0 {
		newQty = c.Items[idx].Quantity + qty
	}
	if newQty > p.Stock {
		return &productdom.OutOfStockError{ProductID: p.ID, Requested: newQty, Available: p.Stock}
	}
	return c.SetLine(uuid.NewString(), p.ID, size, newQty, now)
}

// persist recomputes totals from scratch against current prices and saves
// the aggregate. A line whose product no longer exists fails the mutation.
func (uc *CartUsecase) persist(ctx context.Context, c *cartdom.Cart) error {
	prices, err := uc.resolvePrices(ctx, c)
	if err != nil {
		return err
	}
	if err := c.RecalcTotals(prices); err != nil {
		return err
	}
	return uc.carts.Upsert(ctx, c)
}

func (uc *CartUsecase) resolvePrices(ctx context.Context, c *cartdom.Cart) (map[string]decimal.Decimal, error) {
	ids := make([]string, 0, len(c.Items))
	for _, it := range c.Items {
		ids = append(ids, it.ProductID)
	}
	found, err := uc.products.ListByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	prices := make(map[string]decimal.Decimal, len(found))
	for id, p := range found {
		prices[id] = p.Price
	}
	for _, it := range c.Items {
		if _, ok := prices[it.ProductID]; !ok {
			return nil, productdom.ErrNotFound
		}
	}
	return prices, nil
}
