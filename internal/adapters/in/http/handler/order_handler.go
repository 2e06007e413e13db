// internal/adapters/in/http/handler/order_handler.go
package handler

import (
	"net/http"

	"github.com/sirupsen/logrus"

	usecase "storefront/internal/application/usecase"
)

// OrderHandler serves checkout and order history endpoints.
type OrderHandler struct {
	uc  *usecase.CheckoutUsecase
	log *logrus.Entry
}

func NewOrderHandler(uc *usecase.CheckoutUsecase, log *logrus.Logger) *OrderHandler {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &OrderHandler{
		uc:  uc,
		log: log.WithField("component", "order_handler"),
	}
}

// CreateOrder handles POST /api/orders: converts the user's cart into an
// order, decrementing stock atomically.
func (h *OrderHandler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	userID := readUserID(r)
	if userID == "" {
		writeErr(w, http.StatusBadRequest, "userId is required")
		return
	}

	o, err := h.uc.CreateOrder(r.Context(), userID)
	if err != nil {
		h.log.WithError(err).WithField("userId", userID).Warn("create order failed")
		writeDomainErr(w, err)
		return
	}

	h.log.WithFields(logrus.Fields{
		"userId":  userID,
		"orderId": o.ID,
		"total":   o.TotalPrice.StringFixed(2),
	}).Info("order created")
	writeJSON(w, http.StatusCreated, toOrderView(o))
}

// GetOrder handles GET /api/orders/{orderId}. Orders belonging to another
// user are indistinguishable from missing ones.
func (h *OrderHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	userID := readUserID(r)
	if userID == "" {
		writeErr(w, http.StatusBadRequest, "userId is required")
		return
	}
	orderID := pathVar(r, "orderId")

	o, err := h.uc.GetOrder(r.Context(), orderID, userID)
	if err != nil {
		writeDomainErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toOrderView(o))
}

// ListOrders handles GET /api/orders: the user's order history, newest first.
func (h *OrderHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	userID := readUserID(r)
	if userID == "" {
		writeErr(w, http.StatusBadRequest, "userId is required")
		return
	}

	orders, err := h.uc.GetUserOrders(r.Context(), userID)
	if err != nil {
		h.log.WithError(err).WithField("userId", userID).Error("list orders failed")
		writeDomainErr(w, err)
		return
	}

	views := make([]orderView, 0, len(orders))
	for _, o := range orders {
		views = append(views, toOrderView(o))
	}
	writeJSON(w, http.StatusOK, map[string]any{"orders": views})
}
