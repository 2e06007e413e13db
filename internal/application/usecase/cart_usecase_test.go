// internal/application/usecase/cart_usecase_test.go
package usecase

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cartdom "storefront/internal/domain/cart"
	productdom "storefront/internal/domain/product"
)

func mustProduct(t *testing.T, id, name, price string, stock int) productdom.Product {
	t.Helper()
	d, err := decimal.NewFromString(price)
	require.NoError(t, err)
	p, err := productdom.New(id, name, "", d, stock, true, testNow)
	require.NoError(t, err)
	return p
}

func newCartUC(products *fakeProductRepo, carts *fakeCartRepo) *CartUsecase {
	return NewCartUsecaseWithClock(carts, products, fakeTx{}, fixedClock{t: testNow})
}

func TestGetCart_AbsentReturnsEmpty(t *testing.T) {
	uc := newCartUC(newFakeProductRepo(), newFakeCartRepo())

	c, err := uc.GetCart(context.Background(), "u1")
	require.NoError(t, err)
	require.NotNil(t, c)
	assert.Equal(t, "u1", c.UserID)
	assert.Empty(t, c.Items)
	assert.True(t, c.TotalPrice.IsZero())
}

func TestAddToCart_CreatesCartAndComputesTotals(t *testing.T) {
	products := newFakeProductRepo(
		mustProduct(t, "p1", "Tee", "19.90", 10),
		mustProduct(t, "p2", "Jacket", "89.50", 5),
	)
	carts := newFakeCartRepo()
	uc := newCartUC(products, carts)

	_, err := uc.AddToCart(context.Background(), "u1", "p1", 2, nil)
	require.NoError(t, err)
	c, err := uc.AddToCart(context.Background(), "u1", "p2", 1, nil)
	require.NoError(t, err)

	assert.Len(t, c.Items, 2)
	assert.Equal(t, 3, c.TotalQuantity)
	assert.True(t, c.TotalPrice.Equal(decimal.RequireFromString("129.30")),
		"got total %s", c.TotalPrice)
	assert.True(t, carts.has("u1"))
}

func TestAddToCart_MergesSameProductAndSize(t *testing.T) {
	products := newFakeProductRepo(mustProduct(t, "p1", "Tee", "10.00", 10))
	uc := newCartUC(products, newFakeCartRepo())

	size := "M"
	_, err := uc.AddToCart(context.Background(), "u1", "p1", 2, &size)
	require.NoError(t, err)
	c, err := uc.AddToCart(context.Background(), "u1", "p1", 3, &size)
	require.NoError(t, err)

	require.Len(t, c.Items, 1)
	assert.Equal(t, 5, c.Items[0].Quantity)
	assert.Equal(t, 5, c.TotalQuantity)
}

func TestAddToCart_DifferentSizeIsSeparateLine(t *testing.T) {
	products := newFakeProductRepo(mustProduct(t, "p1", "Tee", "10.00", 10))
	uc := newCartUC(products, newFakeCartRepo())

	m, l := "M", "L"
	_, err := uc.AddToCart(context.Background(), "u1", "p1", 1, &m)
	require.NoError(t, err)
	c, err := uc.AddToCart(context.Background(), "u1", "p1", 1, &l)
	require.NoError(t, err)

	assert.Len(t, c.Items, 2)
}

func TestAddToCart_MergedQuantityExceedingStockFails(t *testing.T) {
	products := newFakeProductRepo(mustProduct(t, "p1", "Tee", "10.00", 5))
	carts := newFakeCartRepo()
	uc := newCartUC(products, carts)

	_, err := uc.AddToCart(context.Background(), "u1", "p1", 3, nil)
	require.NoError(t, err)

	_, err = uc.AddToCart(context.Background(), "u1", "p1", 3, nil)
	var oos *productdom.OutOfStockError
	require.ErrorAs(t, err, &oos)
	assert.Equal(t, "p1", oos.ProductID)
	assert.Equal(t, 6, oos.Requested)
	assert.Equal(t, 5, oos.Available)

	// Prior state untouched.
	c, err := uc.GetCart(context.Background(), "u1")
	require.NoError(t, err)
	require.Len(t, c.Items, 1)
	assert.Equal(t, 3, c.Items[0].Quantity)
}

func TestAddToCart_UnknownProduct(t *testing.T) {
	uc := newCartUC(newFakeProductRepo(), newFakeCartRepo())

	_, err := uc.AddToCart(context.Background(), "u1", "ghost", 1, nil)
	assert.ErrorIs(t, err, productdom.ErrNotFound)
}

func TestAddToCart_InvalidQuantity(t *testing.T) {
	products := newFakeProductRepo(mustProduct(t, "p1", "Tee", "10.00", 5))
	uc := newCartUC(products, newFakeCartRepo())

	_, err := uc.AddToCart(context.Background(), "u1", "p1", 0, nil)
	assert.ErrorIs(t, err, cartdom.ErrInvalidQuantity)
	_, err = uc.AddToCart(context.Background(), "u1", "p1", -2, nil)
	assert.ErrorIs(t, err, cartdom.ErrInvalidQuantity)
}

func TestUpdateItemQuantity_SetsFinalQuantity(t *testing.T) {
	products := newFakeProductRepo(mustProduct(t, "p1", "Tee", "10.00", 10))
	uc := newCartUC(products, newFakeCartRepo())

	_, err := uc.AddToCart(context.Background(), "u1", "p1", 2, nil)
	require.NoError(t, err)

	c, err := uc.UpdateItemQuantity(context.Background(), "u1", "p1", 7)
	require.NoError(t, err)
	require.Len(t, c.Items, 1)
	assert.Equal(t, 7, c.Items[0].Quantity)
	assert.True(t, c.TotalPrice.Equal(decimal.RequireFromString("70.00")))
}

func TestUpdateItemQuantity_ZeroRemovesLine(t *testing.T) {
	products := newFakeProductRepo(mustProduct(t, "p1", "Tee", "10.00", 10))
	uc := newCartUC(products, newFakeCartRepo())

	_, err := uc.AddToCart(context.Background(), "u1", "p1", 2, nil)
	require.NoError(t, err)

	c, err := uc.UpdateItemQuantity(context.Background(), "u1", "p1", 0)
	require.NoError(t, err)
	assert.Empty(t, c.Items)
	assert.True(t, c.TotalPrice.IsZero())
	assert.Equal(t, 0, c.TotalQuantity)
}

func TestUpdateItemQuantity_NegativeRejected(t *testing.T) {
	uc := newCartUC(newFakeProductRepo(), newFakeCartRepo())

	_, err := uc.UpdateItemQuantity(context.Background(), "u1", "p1", -1)
	assert.ErrorIs(t, err, cartdom.ErrInvalidQuantity)
}

func TestUpdateItemQuantity_ExceedingStockLeavesLineIntact(t *testing.T) {
	products := newFakeProductRepo(mustProduct(t, "p1", "Tee", "10.00", 5))
	uc := newCartUC(products, newFakeCartRepo())

	_, err := uc.AddToCart(context.Background(), "u1", "p1", 2, nil)
	require.NoError(t, err)

	_, err = uc.UpdateItemQuantity(context.Background(), "u1", "p1", 9)
	var oos *productdom.OutOfStockError
	require.ErrorAs(t, err, &oos)

	c, err := uc.GetCart(context.Background(), "u1")
	require.NoError(t, err)
	require.Len(t, c.Items, 1)
	assert.Equal(t, 2, c.Items[0].Quantity)
}

func TestUpdateItemQuantity_MissingCartOrLine(t *testing.T) {
	products := newFakeProductRepo(mustProduct(t, "p1", "Tee", "10.00", 5))
	uc := newCartUC(products, newFakeCartRepo())

	_, err := uc.UpdateItemQuantity(context.Background(), "u1", "p1", 1)
	assert.ErrorIs(t, err, cartdom.ErrNotFound)

	_, err = uc.AddToCart(context.Background(), "u1", "p1", 1, nil)
	require.NoError(t, err)
	_, err = uc.UpdateItemQuantity(context.Background(), "u1", "other", 1)
	assert.ErrorIs(t, err, cartdom.ErrItemNotFound)
}

func TestRemoveFromCart(t *testing.T) {
	products := newFakeProductRepo(
		mustProduct(t, "p1", "Tee", "10.00", 10),
		mustProduct(t, "p2", "Belt", "27.00", 10),
	)
	uc := newCartUC(products, newFakeCartRepo())

	_, err := uc.AddToCart(context.Background(), "u1", "p1", 1, nil)
	require.NoError(t, err)
	_, err = uc.AddToCart(context.Background(), "u1", "p2", 2, nil)
	require.NoError(t, err)

	c, err := uc.RemoveFromCart(context.Background(), "u1", "p1")
	require.NoError(t, err)
	require.Len(t, c.Items, 1)
	assert.Equal(t, "p2", c.Items[0].ProductID)
	assert.True(t, c.TotalPrice.Equal(decimal.RequireFromString("54.00")))

	_, err = uc.RemoveFromCart(context.Background(), "u1", "p1")
	assert.ErrorIs(t, err, cartdom.ErrItemNotFound)
}

func TestRemoveThenReAdd(t *testing.T) {
	products := newFakeProductRepo(mustProduct(t, "p1", "Tee", "10.00", 10))
	uc := newCartUC(products, newFakeCartRepo())

	_, err := uc.AddToCart(context.Background(), "u1", "p1", 4, nil)
	require.NoError(t, err)
	_, err = uc.RemoveFromCart(context.Background(), "u1", "p1")
	require.NoError(t, err)

	c, err := uc.AddToCart(context.Background(), "u1", "p1", 2, nil)
	require.NoError(t, err)
	require.Len(t, c.Items, 1)
	assert.Equal(t, 2, c.Items[0].Quantity, "old quantity must not resurrect")
}

func TestClearCart(t *testing.T) {
	products := newFakeProductRepo(mustProduct(t, "p1", "Tee", "10.00", 10))
	carts := newFakeCartRepo()
	uc := newCartUC(products, carts)

	_, err := uc.AddToCart(context.Background(), "u1", "p1", 3, nil)
	require.NoError(t, err)

	c, err := uc.ClearCart(context.Background(), "u1")
	require.NoError(t, err)
	assert.Empty(t, c.Items)
	assert.True(t, c.TotalPrice.IsZero())
	assert.Equal(t, 0, c.TotalQuantity)

	// Clearing an absent cart yields the same empty result.
	c2, err := uc.ClearCart(context.Background(), "u2")
	require.NoError(t, err)
	assert.Empty(t, c2.Items)
}

func TestMergeCarts_AdditiveAndDeletesGuest(t *testing.T) {
	products := newFakeProductRepo(
		mustProduct(t, "p1", "Tee", "10.00", 10),
		mustProduct(t, "p2", "Belt", "27.00", 10),
	)
	carts := newFakeCartRepo()
	uc := newCartUC(products, carts)

	_, err := uc.AddToCart(context.Background(), "guest", "p1", 2, nil)
	require.NoError(t, err)
	_, err = uc.AddToCart(context.Background(), "guest", "p2", 1, nil)
	require.NoError(t, err)
	_, err = uc.AddToCart(context.Background(), "u1", "p1", 3, nil)
	require.NoError(t, err)

	c, err := uc.MergeCarts(context.Background(), "guest", "u1")
	require.NoError(t, err)

	require.Len(t, c.Items, 2)
	idx := c.FindItem("p1", nil)
	require.GreaterOrEqual(t, idx, 0)
	assert.Equal(t, 5, c.Items[idx].Quantity)
	assert.Equal(t, 6, c.TotalQuantity)
	assert.False(t, carts.has("guest"), "guest cart row must be gone")
}

func TestMergeCarts_StockOverflowAbortsWholeMerge(t *testing.T) {
	products := newFakeProductRepo(
		mustProduct(t, "p1", "Tee", "10.00", 4),
		mustProduct(t, "p2", "Belt", "27.00", 10),
	)
	carts := newFakeCartRepo()
	uc := newCartUC(products, carts)

	_, err := uc.AddToCart(context.Background(), "guest", "p1", 3, nil)
	require.NoError(t, err)
	_, err = uc.AddToCart(context.Background(), "u1", "p1", 3, nil)
	require.NoError(t, err)

	_, err = uc.MergeCarts(context.Background(), "guest", "u1")
	var oos *productdom.OutOfStockError
	require.ErrorAs(t, err, &oos)
	assert.Equal(t, 6, oos.Requested)

	assert.True(t, carts.has("guest"), "failed merge must keep the guest cart")
}

func TestMergeCarts_EmptyOrAbsentGuest(t *testing.T) {
	products := newFakeProductRepo(mustProduct(t, "p1", "Tee", "10.00", 10))
	carts := newFakeCartRepo()
	uc := newCartUC(products, carts)

	_, err := uc.AddToCart(context.Background(), "u1", "p1", 2, nil)
	require.NoError(t, err)

	c, err := uc.MergeCarts(context.Background(), "guest", "u1")
	require.NoError(t, err)
	require.Len(t, c.Items, 1)
	assert.Equal(t, 2, c.Items[0].Quantity)

	// An emptied guest cart row is removed by the merge.
	_, err = uc.AddToCart(context.Background(), "g2", "p1", 1, nil)
	require.NoError(t, err)
	_, err = uc.ClearCart(context.Background(), "g2")
	require.NoError(t, err)
	_, err = uc.MergeCarts(context.Background(), "g2", "u1")
	require.NoError(t, err)
	assert.False(t, carts.has("g2"))
}

func TestMergeCarts_SameUserRejected(t *testing.T) {
	uc := newCartUC(newFakeProductRepo(), newFakeCartRepo())

	_, err := uc.MergeCarts(context.Background(), "u1", "u1")
	assert.ErrorIs(t, err, ErrCartInvalidArgument)
}

func TestCart_BlankUserIDRejected(t *testing.T) {
	uc := newCartUC(newFakeProductRepo(), newFakeCartRepo())

	_, err := uc.GetCart(context.Background(), "  ")
	assert.ErrorIs(t, err, ErrCartInvalidArgument)
	_, err = uc.AddToCart(context.Background(), "", "p1", 1, nil)
	assert.ErrorIs(t, err, ErrCartInvalidArgument)
}
