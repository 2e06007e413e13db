// internal/adapters/in/http/handler/helper_handler.go
package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"

	usecase "storefront/internal/application/usecase"
	cartdom "storefront/internal/domain/cart"
	orderdom "storefront/internal/domain/order"
	productdom "storefront/internal/domain/product"
	wishdom "storefront/internal/domain/wishlist"
)

// ============================================================
// HTTP helpers
// ============================================================

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeErr(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]string{"error": strings.TrimSpace(msg)})
}

func readJSON(r *http.Request, dst any) error {
	if dst == nil {
		return errors.New("dst is nil")
	}
	dec := json.NewDecoder(http.MaxBytesReader(nil, r.Body, 1<<20)) // 1MB
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}

// readUserID resolves the acting user from the X-User-Id header, falling back
// to the userId query parameter. Identity is always explicit; there is no
// ambient session here.
func readUserID(r *http.Request) string {
	if v := strings.TrimSpace(r.Header.Get("X-User-Id")); v != "" {
		return v
	}
	return strings.TrimSpace(r.URL.Query().Get("userId"))
}

func toRFC3339(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

func pathVar(r *http.Request, name string) string {
	return strings.TrimSpace(mux.Vars(r)[name])
}

func trimPtr(p *string) *string {
	if p == nil {
		return nil
	}
	s := strings.TrimSpace(*p)
	if s == "" {
		return nil
	}
	return &s
}

// ============================================================
// Error mapping
// ============================================================

// writeDomainErr translates usecase/domain errors to HTTP statuses:
// unknown resources map to 404, stock conflicts to 409, caller mistakes
// to 400, everything else to 500.
func writeDomainErr(w http.ResponseWriter, err error) {
	var oos *productdom.OutOfStockError
	switch {
	case errors.As(err, &oos):
		writeJSON(w, http.StatusConflict, map[string]any{
			"error":     "out_of_stock",
			"productId": oos.ProductID,
			"requested": oos.Requested,
			"available": oos.Available,
		})
	case errors.Is(err, productdom.ErrNotFound),
		errors.Is(err, cartdom.ErrNotFound),
		errors.Is(err, orderdom.ErrNotFound),
		errors.Is(err, wishdom.ErrNotFound):
		writeErr(w, http.StatusNotFound, err.Error())
	case errors.Is(err, cartdom.ErrInvalidQuantity),
		errors.Is(err, cartdom.ErrItemNotFound),
		errors.Is(err, usecase.ErrEmptyCart),
		errors.Is(err, usecase.ErrCartInvalidArgument),
		errors.Is(err, usecase.ErrCheckoutInvalidArgument),
		errors.Is(err, usecase.ErrWishlistInvalidArgument),
		errors.Is(err, usecase.ErrCatalogInvalidArgument),
		errors.Is(err, wishdom.ErrAlreadyExists):
		writeErr(w, http.StatusBadRequest, err.Error())
	default:
		writeErr(w, http.StatusInternalServerError, "internal error")
	}
}

// ============================================================
// JSON views
// ============================================================

type productView struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       string  `json:"price"`
	Stock       int     `json:"stock"`
	ImageURL    *string `json:"imageUrl,omitempty"`
}

func toProductView(p productdom.Product) productView {
	return productView{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price.StringFixed(2),
		Stock:       p.Stock,
		ImageURL:    p.ImageURL,
	}
}

type cartItemView struct {
	ID        string  `json:"id"`
	ProductID string  `json:"productId"`
	Size      *string `json:"size,omitempty"`
	Quantity  int     `json:"quantity"`
}

type cartView struct {
	ID            string         `json:"id"`
	UserID        string         `json:"userId"`
	Items         []cartItemView `json:"items"`
	TotalPrice    string         `json:"totalPrice"`
	TotalQuantity int            `json:"totalQuantity"`
	UpdatedAt     string         `json:"updatedAt,omitempty"`
}

func toCartView(c *cartdom.Cart) cartView {
	v := cartView{
		ID:            c.ID,
		UserID:        c.UserID,
		Items:         []cartItemView{},
		TotalPrice:    c.TotalPrice.StringFixed(2),
		TotalQuantity: c.TotalQuantity,
		UpdatedAt:     toRFC3339(c.UpdatedAt),
	}
	for _, it := range c.Items {
		v.Items = append(v.Items, cartItemView{
			ID:        it.ID,
			ProductID: it.ProductID,
			Size:      it.Size,
			Quantity:  it.Quantity,
		})
	}
	return v
}

type orderItemView struct {
	ID        string `json:"id"`
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
	UnitPrice string `json:"unitPrice"`
}

type orderView struct {
	ID           string          `json:"id"`
	UserID       string          `json:"userId"`
	Status       string          `json:"status"`
	TotalPrice   string          `json:"totalPrice"`
	Items        []orderItemView `json:"items"`
	OrderDate    string          `json:"orderDate"`
	RefundStatus string          `json:"refundStatus"`
	RefundReason *string         `json:"refundReason,omitempty"`
}

func toOrderView(o orderdom.Order) orderView {
	v := orderView{
		ID:           o.ID,
		UserID:       o.UserID,
		Status:       string(o.Status),
		TotalPrice:   o.TotalPrice.StringFixed(2),
		Items:        []orderItemView{},
		OrderDate:    toRFC3339(o.OrderDate),
		RefundStatus: string(o.RefundStatus),
		RefundReason: o.RefundReason,
	}
	for _, it := range o.Items {
		v.Items = append(v.Items, orderItemView{
			ID:        it.ID,
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice.StringFixed(2),
		})
	}
	return v
}

type wishlistItemView struct {
	ID        string  `json:"id"`
	ProductID string  `json:"productId"`
	Size      *string `json:"size,omitempty"`
}

type wishlistView struct {
	ID     string             `json:"id"`
	UserID string             `json:"userId"`
	Items  []wishlistItemView `json:"items"`
}

func toWishlistView(wl *wishdom.Wishlist) wishlistView {
	v := wishlistView{
		ID:     wl.ID,
		UserID: wl.UserID,
		Items:  []wishlistItemView{},
	}
	for _, it := range wl.Items {
		v.Items = append(v.Items, wishlistItemView{
			ID:        it.ID,
			ProductID: it.ProductID,
			Size:      it.Size,
		})
	}
	return v
}
