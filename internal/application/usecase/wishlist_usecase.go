// internal/application/usecase/wishlist_usecase.go
package usecase

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	productdom "storefront/internal/domain/product"
	wishdom "storefront/internal/domain/wishlist"
)

var ErrWishlistInvalidArgument = errors.New("wishlist_usecase: invalid argument")

// WishlistUsecase manages a user's saved products. No stock interaction:
// a wishlist entry is a bookmark, not a reservation.
type WishlistUsecase struct {
	wishlists wishdom.Repository
	products  productdom.Repository
	clock     Clock
}

func NewWishlistUsecase(wishlists wishdom.Repository, products productdom.Repository) *WishlistUsecase {
	return &WishlistUsecase{wishlists: wishlists, products: products, clock: systemClock{}}
}

// GetWishlist returns the user's wishlist, or an empty value when absent.
func (uc *WishlistUsecase) GetWishlist(ctx context.Context, userID string) (*wishdom.Wishlist, error) {
	uid := strings.TrimSpace(userID)
	if uid == "" {
		return nil, ErrWishlistInvalidArgument
	}
	w, err := uc.wishlists.GetByUserID(ctx, uid)
	if err != nil {
		return nil, err
	}
	if w == nil {
		return wishdom.Empty(uid), nil
	}
	return w, nil
}

// AddToWishlist saves (productID, size) for the user; the product must
// exist and duplicates are rejected.
func (uc *WishlistUsecase) AddToWishlist(ctx context.Context, userID, productID string, size *string) (*wishdom.Wishlist, error) {
	uid := strings.TrimSpace(userID)
	pid := strings.TrimSpace(productID)
	if uid == "" || pid == "" {
		return nil, ErrWishlistInvalidArgument
	}

	p, err := uc.products.GetByID(ctx, pid)
	if err != nil {
		return nil, err
	}

	now := uc.clock.Now()
	w, err := uc.wishlists.GetByUserID(ctx, uid)
	if err != nil {
		return nil, err
	}
	if w == nil {
		w, err = wishdom.New(uuid.NewString(), uid, now)
		if err != nil {
			return nil, err
		}
	}
	if err := w.Add(uuid.NewString(), p.ID, size, now); err != nil {
		return nil, err
	}
	if err := uc.wishlists.Upsert(ctx, w); err != nil {
		return nil, err
	}
	return w, nil
}

// RemoveFromWishlist drops the item for productID.
func (uc *WishlistUsecase) RemoveFromWishlist(ctx context.Context, userID, productID string) (*wishdom.Wishlist, error) {
	uid := strings.TrimSpace(userID)
	pid := strings.TrimSpace(productID)
	if uid == "" || pid == "" {
		return nil, ErrWishlistInvalidArgument
	}

	w, err := uc.wishlists.GetByUserID(ctx, uid)
	if err != nil {
		return nil, err
	}
	if w == nil {
		return nil, wishdom.ErrNotFound
	}
	if err := w.RemoveProduct(pid, uc.clock.Now()); err != nil {
		return nil, err
	}
	if err := uc.wishlists.Upsert(ctx, w); err != nil {
		return nil, err
	}
	return w, nil
}
