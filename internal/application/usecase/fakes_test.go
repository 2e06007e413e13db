// internal/application/usecase/fakes_test.go
package usecase

import (
	"context"
	"sort"
	"sync"
	"time"

	cartdom "storefront/internal/domain/cart"
	orderdom "storefront/internal/domain/order"
	productdom "storefront/internal/domain/product"
	wishdom "storefront/internal/domain/wishlist"
)

// ----------------------------
// In-memory fakes
// ----------------------------

type fakeTx struct{}

func (fakeTx) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fixedClock struct{ t time.Time }

func (c fixedClock) Now() time.Time { return c.t }

var testNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

type fakeProductRepo struct {
	mu       sync.Mutex
	products map[string]productdom.Product
}

func newFakeProductRepo(ps ...productdom.Product) *fakeProductRepo {
	r := &fakeProductRepo{products: map[string]productdom.Product{}}
	for _, p := range ps {
		r.products[p.ID] = p
	}
	return r
}

func (r *fakeProductRepo) GetByID(_ context.Context, id string) (productdom.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.products[id]
	if !ok {
		return productdom.Product{}, productdom.ErrNotFound
	}
	return p, nil
}

func (r *fakeProductRepo) GetByIDForUpdate(ctx context.Context, id string) (productdom.Product, error) {
	return r.GetByID(ctx, id)
}

func (r *fakeProductRepo) ListByIDs(_ context.Context, ids []string) (map[string]productdom.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := map[string]productdom.Product{}
	for _, id := range ids {
		if p, ok := r.products[id]; ok {
			out[id] = p
		}
	}
	return out, nil
}

func (r *fakeProductRepo) ListActive(_ context.Context) ([]productdom.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []productdom.Product{}
	for _, p := range r.products {
		if p.Active {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *fakeProductRepo) Create(_ context.Context, p productdom.Product) (productdom.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.products[p.ID] = p
	return p, nil
}

func (r *fakeProductRepo) Save(_ context.Context, p productdom.Product) (productdom.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.products[p.ID]; !ok {
		return productdom.Product{}, productdom.ErrNotFound
	}
	r.products[p.ID] = p
	return p, nil
}

func (r *fakeProductRepo) Count(_ context.Context) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.products), nil
}

func (r *fakeProductRepo) stock(id string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.products[id].Stock
}

type fakeCartRepo struct {
	mu    sync.Mutex
	carts map[string]*cartdom.Cart // keyed by userID
}

func newFakeCartRepo() *fakeCartRepo {
	return &fakeCartRepo{carts: map[string]*cartdom.Cart{}}
}

func (r *fakeCartRepo) GetByUserID(_ context.Context, userID string) (*cartdom.Cart, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.carts[userID]
	if !ok {
		return nil, nil
	}
	cp := *c
	cp.Items = append([]cartdom.Item{}, c.Items...)
	return &cp, nil
}

func (r *fakeCartRepo) GetByUserIDForUpdate(ctx context.Context, userID string) (*cartdom.Cart, error) {
	return r.GetByUserID(ctx, userID)
}

func (r *fakeCartRepo) Upsert(_ context.Context, c *cartdom.Cart) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *c
	cp.Items = append([]cartdom.Item{}, c.Items...)
	r.carts[c.UserID] = &cp
	return nil
}

func (r *fakeCartRepo) DeleteByUserID(_ context.Context, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.carts, userID)
	return nil
}

func (r *fakeCartRepo) has(userID string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.carts[userID]
	return ok
}

type fakeOrderRepo struct {
	mu     sync.Mutex
	orders map[string]orderdom.Order
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{orders: map[string]orderdom.Order{}}
}

func (r *fakeOrderRepo) Create(_ context.Context, o orderdom.Order) (orderdom.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.orders[o.ID] = o
	return o, nil
}

func (r *fakeOrderRepo) GetByIDAndUserID(_ context.Context, id, userID string) (orderdom.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.orders[id]
	if !ok || o.UserID != userID {
		return orderdom.Order{}, orderdom.ErrNotFound
	}
	return o, nil
}

func (r *fakeOrderRepo) ListByUserID(_ context.Context, userID string) ([]orderdom.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []orderdom.Order{}
	for _, o := range r.orders {
		if o.UserID == userID {
			out = append(out, o)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].OrderDate.After(out[j].OrderDate) })
	return out, nil
}

func (r *fakeOrderRepo) Save(_ context.Context, o orderdom.Order) (orderdom.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.orders[o.ID]; !ok {
		return orderdom.Order{}, orderdom.ErrNotFound
	}
	r.orders[o.ID] = o
	return o, nil
}

func (r *fakeOrderRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.orders)
}

type fakeWishlistRepo struct {
	mu        sync.Mutex
	wishlists map[string]*wishdom.Wishlist
}

func newFakeWishlistRepo() *fakeWishlistRepo {
	return &fakeWishlistRepo{wishlists: map[string]*wishdom.Wishlist{}}
}

func (r *fakeWishlistRepo) GetByUserID(_ context.Context, userID string) (*wishdom.Wishlist, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	w, ok := r.wishlists[userID]
	if !ok {
		return nil, nil
	}
	cp := *w
	cp.Items = append([]wishdom.Item{}, w.Items...)
	return &cp, nil
}

func (r *fakeWishlistRepo) Upsert(_ context.Context, w *wishdom.Wishlist) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *w
	cp.Items = append([]wishdom.Item{}, w.Items...)
	r.wishlists[w.UserID] = &cp
	return nil
}

func (r *fakeWishlistRepo) DeleteByUserID(_ context.Context, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.wishlists, userID)
	return nil
}

type recordingNotifier struct {
	mu     sync.Mutex
	orders []orderdom.Order
}

func (n *recordingNotifier) NotifyOrderCreated(_ context.Context, o orderdom.Order) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.orders = append(n.orders, o)
	return nil
}
