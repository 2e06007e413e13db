// internal/adapters/in/http/handler/cart_handler.go
package handler

import (
	"net/http"

	"github.com/sirupsen/logrus"

	usecase "storefront/internal/application/usecase"
)

// CartHandler serves the cart endpoints. Every operation requires an
// explicit user id; requests without one are rejected before touching
// the usecase.
type CartHandler struct {
	uc  *usecase.CartUsecase
	log *logrus.Entry
}

func NewCartHandler(uc *usecase.CartUsecase, log *logrus.Logger) *CartHandler {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &CartHandler{
		uc:  uc,
		log: log.WithField("component", "cart_handler"),
	}
}

// GetCart handles GET /api/cart.
func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	userID := readUserID(r)
	if userID == "" {
		writeErr(w, http.StatusBadRequest, "userId is required")
		return
	}

	c, err := h.uc.GetCart(r.Context(), userID)
	if err != nil {
		h.log.WithError(err).WithField("userId", userID).Error("get cart failed")
		writeDomainErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toCartView(c))
}

// AddItem handles POST /api/cart/items.
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	userID := readUserID(r)
	if userID == "" {
		writeErr(w, http.StatusBadRequest, "userId is required")
		return
	}

	var req struct {
		ProductID string  `json:"productId"`
		Quantity  int     `json:"quantity"`
		Size      *string `json:"size"`
	}
	if err := readJSON(r, &req); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	c, err := h.uc.AddToCart(r.Context(), userID, req.ProductID, req.Quantity, trimPtr(req.Size))
	if err != nil {
		h.log.WithError(err).WithFields(logrus.Fields{
			"userId":    userID,
			"productId": req.ProductID,
			"quantity":  req.Quantity,
		}).Warn("add to cart failed")
		writeDomainErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toCartView(c))
}

// UpdateItem handles PUT /api/cart/items. The quantity is the final line
// quantity; zero removes the line.
func (h *CartHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	userID := readUserID(r)
	if userID == "" {
		writeErr(w, http.StatusBadRequest, "userId is required")
		return
	}

	var req struct {
		ProductID string `json:"productId"`
		Quantity  int    `json:"quantity"`
	}
	if err := readJSON(r, &req); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	c, err := h.uc.UpdateItemQuantity(r.Context(), userID, req.ProductID, req.Quantity)
	if err != nil {
		h.log.WithError(err).WithFields(logrus.Fields{
			"userId":    userID,
			"productId": req.ProductID,
			"quantity":  req.Quantity,
		}).Warn("update cart item failed")
		writeDomainErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toCartView(c))
}

// RemoveItem handles DELETE /api/cart/items/{productId}.
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	userID := readUserID(r)
	if userID == "" {
		writeErr(w, http.StatusBadRequest, "userId is required")
		return
	}
	productID := pathVar(r, "productId")

	c, err := h.uc.RemoveFromCart(r.Context(), userID, productID)
	if err != nil {
		h.log.WithError(err).WithFields(logrus.Fields{
			"userId":    userID,
			"productId": productID,
		}).Warn("remove cart item failed")
		writeDomainErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toCartView(c))
}

// ClearCart handles DELETE /api/cart.
func (h *CartHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	userID := readUserID(r)
	if userID == "" {
		writeErr(w, http.StatusBadRequest, "userId is required")
		return
	}

	c, err := h.uc.ClearCart(r.Context(), userID)
	if err != nil {
		h.log.WithError(err).WithField("userId", userID).Error("clear cart failed")
		writeDomainErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toCartView(c))
}

// MergeCarts handles POST /api/cart/merge: folds a guest cart into the
// authenticated user's cart in a single transaction.
func (h *CartHandler) MergeCarts(w http.ResponseWriter, r *http.Request) {
	userID := readUserID(r)
	if userID == "" {
		writeErr(w, http.StatusBadRequest, "userId is required")
		return
	}

	var req struct {
		GuestUserID string `json:"guestUserId"`
	}
	if err := readJSON(r, &req); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	c, err := h.uc.MergeCarts(r.Context(), req.GuestUserID, userID)
	if err != nil {
		h.log.WithError(err).WithFields(logrus.Fields{
			"guestUserId": req.GuestUserID,
			"userId":      userID,
		}).Warn("merge carts failed")
		writeDomainErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toCartView(c))
}
