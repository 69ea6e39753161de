package api

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"sutra-be/internal/pricing"
	"sutra-be/internal/product"
	"sutra-be/internal/utils"
)

// ProductDetail is a product with its resolved variant and rendered prices.
type ProductDetail struct {
	Product         product.Product  `json:"product"`
	SelectedVariant *product.Variant `json:"selectedVariant"`
	DisplayPrice    string           `json:"displayPrice"`
}

func (h *Handler) ListProducts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page, _ := strconv.Atoi(q.Get("page"))
	limit, _ := strconv.Atoi(q.Get("limit"))

	res, err := h.Catalog.List(r.Context(), product.ListOptions{
		Category:  q.Get("category"),
		Search:    q.Get("search"),
		SortField: product.SortField(q.Get("sort")),
		SortDir:   product.SortDirection(q.Get("order")),
		Page:      page,
		Limit:     limit,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	items := make([]product.Product, len(res.Items))
	for i, p := range res.Items {
		items[i] = h.decorate(p)
	}
	res.Items = items
	utils.WriteJSON(w, http.StatusOK, res)
}

// GetProduct resolves ?variant= (sku or weight label) or the default variant.
func (h *Handler) GetProduct(w http.ResponseWriter, r *http.Request) {
	p, err := h.Catalog.GetProductBySlug(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		writeError(w, r, err)
		return
	}

	decorated := h.decorate(*p)
	detail := ProductDetail{Product: decorated}
	if v, ok := pricing.ResolveVariant(decorated, r.URL.Query().Get("variant")); ok {
		detail.SelectedVariant = &v
	}
	detail.DisplayPrice = pricing.DisplayPrice(detail.SelectedVariant)

	utils.WriteJSON(w, http.StatusOK, detail)
}

func (h *Handler) decorate(p product.Product) product.Product {
	return pricing.Decorate(p, h.PriceReferenceSize, h.PriceReferenceUnit)
}
