// internal/application/usecase/checkout_usecase.go
package usecase

import (
	"context"
	"errors"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	cartdom "storefront/internal/domain/cart"
	orderdom "storefront/internal/domain/order"
	productdom "storefront/internal/domain/product"
)

var (
	ErrCheckoutInvalidArgument = errors.New("checkout_usecase: invalid argument")
	ErrEmptyCart               = errors.New("checkout_usecase: cannot create order from empty cart")
)

// CheckoutUsecase converts a validated cart into an immutable order as one
// unit of work: stock re-validation, order creation, stock decrement and
// cart reset all commit together or not at all.
type CheckoutUsecase struct {
	carts    cartdom.Repository
	products productdom.Repository
	orders   orderdom.Repository
	tx       Tx
	clock    Clock

	notifier OrderNotifier
	log      *logrus.Entry
}

func NewCheckoutUsecase(
	carts cartdom.Repository,
	products productdom.Repository,
	orders orderdom.Repository,
	tx Tx,
	notifier OrderNotifier,
	log *logrus.Logger,
) *CheckoutUsecase {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &CheckoutUsecase{
		carts:    carts,
		products: products,
		orders:   orders,
		tx:       tx,
		clock:    systemClock{},
		notifier: notifier,
		log:      log.WithField("component", "checkout_usecase"),
	}
}

// WithClock replaces the clock (for tests).
func (uc *CheckoutUsecase) WithClock(clock Clock) *CheckoutUsecase {
	if clock != nil {
		uc.clock = clock
	}
	return uc
}

// CreateOrder checks out the user's cart.
//
// Every product row involved is locked (sorted by id, so two concurrent
// checkouts cannot deadlock) and every line re-validated against current
// stock BEFORE any mutation; the first failure aborts the transaction with
// OutOfStockError naming the offending product. On success the order is
// created with status PROCESSING, each line becomes a frozen snapshot at the
// product's current price, stock is decremented and the cart emptied.
func (uc *CheckoutUsecase) CreateOrder(ctx context.Context, userID string) (orderdom.Order, error) {
	uid := strings.TrimSpace(userID)
	if uid == "" {
		return orderdom.Order{}, ErrCheckoutInvalidArgument
	}

	var out orderdom.Order
	err := uc.tx.WithTx(ctx, func(ctx context.Context) error {
		now := uc.clock.Now()

		c, err := uc.carts.GetByUserIDForUpdate(ctx, uid)
		if err != nil {
			return err
		}
		if c == nil {
			return cartdom.ErrNotFound
		}
		if c.IsEmpty() {
			return ErrEmptyCart
		}

		// Needed quantity per product: lines of the same product in
		// different sizes draw from the same stock pool.
		needed := map[string]int{}
		for _, it := range c.Items {
			needed[it.ProductID] += it.Quantity
		}
		ids := make([]string, 0, len(needed))
		for id := range needed {
			ids = append(ids, id)
		}
		sort.Strings(ids)

		// Phase 1: lock and validate everything, mutate nothing.
		locked := make(map[string]productdom.Product, len(ids))
		for _, id := range ids {
			p, err := uc.products.GetByIDForUpdate(ctx, id)
			if err != nil {
				return err
			}
			if needed[id] > p.Stock {
				return &productdom.OutOfStockError{ProductID: p.ID, Requested: needed[id], Available: p.Stock}
			}
			locked[id] = p
		}

		// Phase 2: snapshot lines at the current unit price.
		items := make([]orderdom.Item, 0, len(c.Items))
		for _, it := range c.Items {
			items = append(items, orderdom.Item{
				ID:        uuid.NewString(),
				ProductID: it.ProductID,
				Quantity:  it.Quantity,
				UnitPrice: locked[it.ProductID].Price,
			})
		}

		o, err := orderdom.New(uuid.NewString(), uid, c.TotalPrice, items, now)
		if err != nil {
			return err
		}
		created, err := uc.orders.Create(ctx, o)
		if err != nil {
			return err
		}

		// Phase 3: decrement stock and empty the cart.
		for _, id := range ids {
			p := locked[id]
			if err := p.DecrementStock(needed[id], now); err != nil {
				return err
			}
			if _, err := uc.products.Save(ctx, p); err != nil {
				return err
			}
		}

		c.Clear(now)
		if err := uc.carts.Upsert(ctx, c); err != nil {
			return err
		}

		out = created
		return nil
	})
	if err != nil {
		return orderdom.Order{}, err
	}

	// Post-commit, best-effort: the order exists either way.
	if uc.notifier != nil {
		if nErr := uc.notifier.NotifyOrderCreated(ctx, out); nErr != nil {
			uc.log.WithError(nErr).WithField("orderId", out.ID).
				Warn("order confirmation notification failed")
		}
	}

	return out, nil
}

// GetOrder is an ownership-scoped lookup: an order id that does not belong
// to userID is treated as not found.
func (uc *CheckoutUsecase) GetOrder(ctx context.Context, orderID, userID string) (orderdom.Order, error) {
	oid := strings.TrimSpace(orderID)
	uid := strings.TrimSpace(userID)
	if oid == "" || uid == "" {
		return orderdom.Order{}, ErrCheckoutInvalidArgument
	}
	return uc.orders.GetByIDAndUserID(ctx, oid, uid)
}

// GetUserOrders returns the user's orders, newest first.
func (uc *CheckoutUsecase) GetUserOrders(ctx context.Context, userID string) ([]orderdom.Order, error) {
	uid := strings.TrimSpace(userID)
	if uid == "" {
		return nil, ErrCheckoutInvalidArgument
	}
	return uc.orders.ListByUserID(ctx, uid)
}
