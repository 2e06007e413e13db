// internal/adapters/in/http/handler/catalog_handler.go
package handler

import (
	"net/http"

	"github.com/sirupsen/logrus"

	usecase "storefront/internal/application/usecase"
)

// CatalogHandler serves read-only product endpoints.
type CatalogHandler struct {
	uc  *usecase.CatalogUsecase
	log *logrus.Entry
}

func NewCatalogHandler(uc *usecase.CatalogUsecase, log *logrus.Logger) *CatalogHandler {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &CatalogHandler{
		uc:  uc,
		log: log.WithField("component", "catalog_handler"),
	}
}

// ListProducts handles GET /api/products.
func (h *CatalogHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.uc.ListProducts(r.Context())
	if err != nil {
		h.log.WithError(err).Error("list products failed")
		writeDomainErr(w, err)
		return
	}

	views := make([]productView, 0, len(products))
	for _, p := range products {
		views = append(views, toProductView(p))
	}
	writeJSON(w, http.StatusOK, map[string]any{"products": views})
}

// GetProduct handles GET /api/products/{productId}.
func (h *CatalogHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	productID := pathVar(r, "productId")

	p, err := h.uc.GetProduct(r.Context(), productID)
	if err != nil {
		writeDomainErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toProductView(p))
}
