// internal/application/usecase/wishlist_usecase_test.go
package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	productdom "storefront/internal/domain/product"
	wishdom "storefront/internal/domain/wishlist"
)

func TestWishlist_GetAbsentReturnsEmpty(t *testing.T) {
	uc := NewWishlistUsecase(newFakeWishlistRepo(), newFakeProductRepo())

	w, err := uc.GetWishlist(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, "u1", w.UserID)
	assert.Empty(t, w.Items)
}

func TestWishlist_AddAndRemove(t *testing.T) {
	products := newFakeProductRepo(mustProduct(t, "p1", "Tee", "19.90", 10))
	uc := NewWishlistUsecase(newFakeWishlistRepo(), products)
	ctx := context.Background()

	size := "M"
	w, err := uc.AddToWishlist(ctx, "u1", "p1", &size)
	require.NoError(t, err)
	require.Len(t, w.Items, 1)
	assert.Equal(t, "p1", w.Items[0].ProductID)

	// Duplicate (product, size) rejected.
	_, err = uc.AddToWishlist(ctx, "u1", "p1", &size)
	assert.ErrorIs(t, err, wishdom.ErrAlreadyExists)

	// Different size is a separate item.
	l := "L"
	w, err = uc.AddToWishlist(ctx, "u1", "p1", &l)
	require.NoError(t, err)
	assert.Len(t, w.Items, 2)

	w, err = uc.RemoveFromWishlist(ctx, "u1", "p1")
	require.NoError(t, err)
	assert.Len(t, w.Items, 1)
}

func TestWishlist_AddUnknownProduct(t *testing.T) {
	uc := NewWishlistUsecase(newFakeWishlistRepo(), newFakeProductRepo())

	_, err := uc.AddToWishlist(context.Background(), "u1", "ghost", nil)
	assert.ErrorIs(t, err, productdom.ErrNotFound)
}

func TestWishlist_RemoveFromAbsent(t *testing.T) {
	uc := NewWishlistUsecase(newFakeWishlistRepo(), newFakeProductRepo())

	_, err := uc.RemoveFromWishlist(context.Background(), "u1", "p1")
	assert.ErrorIs(t, err, wishdom.ErrNotFound)
}
