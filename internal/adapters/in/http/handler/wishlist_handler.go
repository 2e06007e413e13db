// internal/adapters/in/http/handler/wishlist_handler.go
package handler

import (
	"net/http"

	"github.com/sirupsen/logrus"

	usecase "storefront/internal/application/usecase"
)

// WishlistHandler serves wishlist endpoints.
type WishlistHandler struct {
	uc  *usecase.WishlistUsecase
	log *logrus.Entry
}

func NewWishlistHandler(uc *usecase.WishlistUsecase, log *logrus.Logger) *WishlistHandler {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &WishlistHandler{
		uc:  uc,
		log: log.WithField("component", "wishlist_handler"),
	}
}

// Get handles GET /api/wishlist.
func (h *WishlistHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID := readUserID(r)
	if userID == "" {
		writeErr(w, http.StatusBadRequest, "userId is required")
		return
	}

	wl, err := h.uc.GetWishlist(r.Context(), userID)
	if err != nil {
		h.log.WithError(err).WithField("userId", userID).Error("get wishlist failed")
		writeDomainErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toWishlistView(wl))
}

// AddItem handles POST /api/wishlist/items.
func (h *WishlistHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	userID := readUserID(r)
	if userID == "" {
		writeErr(w, http.StatusBadRequest, "userId is required")
		return
	}

	var req struct {
		ProductID string  `json:"productId"`
		Size      *string `json:"size"`
	}
	if err := readJSON(r, &req); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	wl, err := h.uc.AddToWishlist(r.Context(), userID, req.ProductID, trimPtr(req.Size))
	if err != nil {
		h.log.WithError(err).WithFields(logrus.Fields{
			"userId":    userID,
			"productId": req.ProductID,
		}).Warn("add to wishlist failed")
		writeDomainErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toWishlistView(wl))
}

// RemoveItem handles DELETE /api/wishlist/items/{productId}.
func (h *WishlistHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	userID := readUserID(r)
	if userID == "" {
		writeErr(w, http.StatusBadRequest, "userId is required")
		return
	}
	productID := pathVar(r, "productId")

	wl, err := h.uc.RemoveFromWishlist(r.Context(), userID, productID)
	if err != nil {
		writeDomainErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toWishlistView(wl))
}
