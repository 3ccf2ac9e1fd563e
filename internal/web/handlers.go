package web

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"

	"github.com/joao160197/InsanyShop/internal/cart"
	"github.com/joao160197/InsanyShop/internal/catalog"
)

// Catalog is the slice of the catalog client the handlers need.
type Catalog interface {
	ListProducts(ctx context.Context, params catalog.ListParams) (catalog.ProductList, error)
	GetProduct(ctx context.Context, id int) (catalog.Product, error)
	ListCategories(ctx context.Context) ([]catalog.Category, error)
}

type Handler struct {
	carts    *cart.Manager
	catalog  Catalog
	log      logrus.FieldLogger
	pageSize int
}

func NewHandler(carts *cart.Manager, cat Catalog, log logrus.FieldLogger, pageSize int) *Handler {
	if pageSize < 1 {
		pageSize = 6
	}
	return &Handler{carts: carts, catalog: cat, log: log, pageSize: pageSize}
}

func (h *Handler) store(r *http.Request) *cart.Store {
	return h.carts.Store(r.Context(), GetSessionID(r.Context()))
}

type pageData struct {
	Title     string
	Search    string
	CartCount int
}

type listingData struct {
	pageData
	Products   []catalog.Product
	Pagination catalog.Pagination
	Categories []catalog.Category
	Params     catalog.ListParams
	PrevURL    string
	NextURL    string
}

type productData struct {
	pageData
	Product catalog.Product
}

type cartData struct {
	pageData
	Items    []cart.Item
	Subtotal float64
	Shipping float64
	Total    float64
}

func (h *Handler) Home(w http.ResponseWriter, r *http.Request) {
	h.listing(w, r, "InsanyShop", h.listParams(r))
}

func (h *Handler) Category(w http.ResponseWriter, r *http.Request) {
	params := h.listParams(r)
	params.Category = chi.URLParam(r, "slug")
	h.listing(w, r, params.Category, params)
}

// listing renders the product grid. Catalog failures degrade to an empty
// page instead of an error: the cart and navigation keep working even when
// the catalog is down.
func (h *Handler) listing(w http.ResponseWriter, r *http.Request, title string, params catalog.ListParams) {
	ctx := r.Context()

	list, err := h.catalog.ListProducts(ctx, params)
	if err != nil {
		h.log.WithError(err).Warn("product listing unavailable")
	}
	categories, err := h.catalog.ListCategories(ctx)
	if err != nil {
		h.log.WithError(err).Warn("categories unavailable")
	}

	data := listingData{
		pageData:   h.page(r, title, params.Search),
		Products:   list.Products,
		Pagination: list.Pagination,
		Categories: categories,
		Params:     params,
	}
	if list.Pagination.HasPreviousPage {
		data.PrevURL = listingURL(params, params.Page-1)
	}
	if list.Pagination.HasNextPage {
		data.NextURL = listingURL(params, params.Page+1)
	}

	render(w, h.log, "home.html", data)
}

func (h *Handler) Product(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.NotFound(w, r)
		return
	}

	p, err := h.catalog.GetProduct(r.Context(), id)
	if err != nil {
		h.log.WithError(err).WithField("id", id).Warn("product lookup failed")
		http.NotFound(w, r)
		return
	}

	render(w, h.log, "product.html", productData{
		pageData: h.page(r, p.Name, ""),
		Product:  p,
	})
}

func (h *Handler) CartPage(w http.ResponseWriter, r *http.Request) {
	s := h.store(r)
	render(w, h.log, "cart.html", cartData{
		pageData: h.page(r, "Carrinho", ""),
		Items:    s.Items(),
		Subtotal: s.Subtotal(),
		Shipping: s.Shipping(),
		Total:    s.Total(),
	})
}

// AddToCart looks the product up in the catalog and hands the snapshot to
// the cart store. Quantity defaults to 1 when the form omits it.
func (h *Handler) AddToCart(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.PostFormValue("id"))
	if err != nil {
		http.Error(w, "invalid product id", http.StatusBadRequest)
		return
	}
	quantity := 1
	if q := r.PostFormValue("quantity"); q != "" {
		quantity, err = strconv.Atoi(q)
		if err != nil {
			http.Error(w, "invalid quantity", http.StatusBadRequest)
			return
		}
	}

	p, err := h.catalog.GetProduct(r.Context(), id)
	if err != nil {
		h.log.WithError(err).WithField("id", id).Warn("cannot add product, catalog lookup failed")
		http.Error(w, "product unavailable", http.StatusBadGateway)
		return
	}

	h.store(r).AddItem(r.Context(), p, quantity)
	http.Redirect(w, r, "/cart", http.StatusSeeOther)
}

func (h *Handler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid product id", http.StatusBadRequest)
		return
	}
	quantity, err := strconv.Atoi(r.PostFormValue("quantity"))
	if err != nil {
		http.Error(w, "invalid quantity", http.StatusBadRequest)
		return
	}

	h.store(r).SetQuantity(r.Context(), id, quantity)
	http.Redirect(w, r, "/cart", http.StatusSeeOther)
}

func (h *Handler) RemoveFromCart(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid product id", http.StatusBadRequest)
		return
	}

	h.store(r).RemoveItem(r.Context(), id)
	http.Redirect(w, r, "/cart", http.StatusSeeOther)
}

func (h *Handler) ClearCart(w http.ResponseWriter, r *http.Request) {
	h.store(r).Clear(r.Context())
	http.Redirect(w, r, "/cart", http.StatusSeeOther)
}

// CartJSON exposes the cart and its derived totals for client-side use.
func (h *Handler) CartJSON(w http.ResponseWriter, r *http.Request) {
	s := h.store(r)
	writeJSON(w, http.StatusOK, map[string]any{
		"items":    s.Items(),
		"subtotal": s.Subtotal(),
		"shipping": s.Shipping(),
		"total":    s.Total(),
		"count":    s.Count(),
	})
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "service": "storefront"})
}

func (h *Handler) page(r *http.Request, title, search string) pageData {
	return pageData{
		Title:     title,
		Search:    search,
		CartCount: h.store(r).Count(),
	}
}

func (h *Handler) listParams(r *http.Request) catalog.ListParams {
	q := r.URL.Query()
	page, _ := strconv.Atoi(q.Get("page"))
	if page < 1 {
		page = 1
	}
	return catalog.ListParams{
		Category: q.Get("category"),
		Search:   q.Get("search"),
		Sort:     q.Get("sort"),
		Page:     page,
		Limit:    h.pageSize,
	}
}

func listingURL(params catalog.ListParams, page int) string {
	q := url.Values{}
	if params.Category != "" {
		q.Set("category", params.Category)
	}
	if params.Search != "" {
		q.Set("search", params.Search)
	}
	if params.Sort != "" {
		q.Set("sort", params.Sort)
	}
	q.Set("page", strconv.Itoa(page))
	return "/?" + q.Encode()
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
