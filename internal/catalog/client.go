package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Client talks to the remote product catalog. It owns no state beyond the
// HTTP client; every call is a plain request/response against the API.
type Client struct {
	baseURL *url.URL
	http    *http.Client
	log     logrus.FieldLogger
}

func NewClient(baseURL string, httpClient *http.Client, log logrus.FieldLogger) *Client {
	u, err := url.Parse(baseURL)
	if err != nil {
		// Fail fast: config error
		panic(fmt.Sprintf("invalid catalog base url %q: %v", baseURL, err))
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{baseURL: u, http: httpClient, log: log}
}

// ListProducts returns one page of products. When params.Search is set the
// API only exposes a flat /api/search endpoint, so category filtering,
// sorting and pagination happen client-side over the search results.
func (c *Client) ListProducts(ctx context.Context, params ListParams) (ProductList, error) {
	if strings.TrimSpace(params.Search) != "" {
		return c.searchProducts(ctx, params)
	}

	q := url.Values{}
	if params.Category != "" && params.Category != "all" {
		q.Set("category", params.Category)
	}
	if params.Page > 0 {
		q.Set("page", strconv.Itoa(params.Page))
	}
	if params.Limit > 0 {
		q.Set("limit", strconv.Itoa(params.Limit))
	}
	if validSort(params.Sort) {
		q.Set("sort", params.Sort)
	}

	var body struct {
		Products   []rawProduct `json:"products"`
		Pagination Pagination   `json:"pagination"`
	}
	if err := c.getJSON(ctx, "/api/products", q, &body); err != nil {
		return ProductList{}, err
	}

	list := ProductList{Pagination: body.Pagination, Products: make([]Product, 0, len(body.Products))}
	for i, raw := range body.Products {
		list.Products = append(list.Products, raw.normalize(i+1))
	}
	return list, nil
}

// GetProduct fetches a single product by id. The API wraps the record in a
// "product" or "data" envelope depending on the route version.
func (c *Client) GetProduct(ctx context.Context, id int) (Product, error) {
	var body struct {
		Product *rawProduct `json:"product"`
		Data    *rawProduct `json:"data"`
		rawProduct
	}
	if err := c.getJSON(ctx, "/api/products/"+strconv.Itoa(id), nil, &body); err != nil {
		return Product{}, err
	}

	raw := body.rawProduct
	if body.Product != nil {
		raw = *body.Product
	} else if body.Data != nil {
		raw = *body.Data
	}
	return raw.normalize(id), nil
}

// ListCategories tolerates both the enveloped and the bare-array response.
func (c *Client) ListCategories(ctx context.Context) ([]Category, error) {
	var raw json.RawMessage
	if err := c.getJSON(ctx, "/api/categories", nil, &raw); err != nil {
		return nil, err
	}

	var envelope struct {
		Categories []Category `json:"categories"`
	}
	if err := json.Unmarshal(raw, &envelope); err == nil && envelope.Categories != nil {
		return envelope.Categories, nil
	}

	var list []Category
	if err := json.Unmarshal(raw, &list); err != nil {
		return nil, errors.Wrap(err, "decode categories response")
	}
	return list, nil
}

func (c *Client) searchProducts(ctx context.Context, params ListParams) (ProductList, error) {
	q := url.Values{}
	q.Set("q", strings.TrimSpace(params.Search))

	var raw json.RawMessage
	if err := c.getJSON(ctx, "/api/search", q, &raw); err != nil {
		return ProductList{}, err
	}

	// Results come back either as a bare array or under "results".
	var rawList []rawProduct
	if err := json.Unmarshal(raw, &rawList); err != nil {
		var envelope struct {
			Results []rawProduct `json:"results"`
		}
		if err := json.Unmarshal(raw, &envelope); err != nil {
			return ProductList{}, errors.Wrap(err, "decode search response")
		}
		rawList = envelope.Results
	}

	products := make([]Product, 0, len(rawList))
	for i, r := range rawList {
		products = append(products, r.normalize(i+1))
	}

	if params.Category != "" && params.Category != "all" {
		want := strings.ToLower(params.Category)
		filtered := products[:0]
		for _, p := range products {
			if strings.Contains(strings.ToLower(p.Category), want) {
				filtered = append(filtered, p)
			}
		}
		products = filtered
	}

	switch params.Sort {
	case SortPriceAsc:
		sort.SliceStable(products, func(i, j int) bool { return products[i].Price < products[j].Price })
	case SortPriceDesc:
		sort.SliceStable(products, func(i, j int) bool { return products[i].Price > products[j].Price })
	case SortBestSellers:
		sort.SliceStable(products, func(i, j int) bool { return products[i].Rating > products[j].Rating })
	}

	return paginate(products, params.Page, params.Limit), nil
}

func paginate(products []Product, page, limit int) ProductList {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 6
	}

	total := len(products)
	totalPages := (total + limit - 1) / limit
	start := (page - 1) * limit
	if start > total {
		start = total
	}
	end := start + limit
	if end > total {
		end = total
	}

	return ProductList{
		Products: products[start:end],
		Pagination: Pagination{
			CurrentPage:     page,
			TotalPages:      totalPages,
			TotalProducts:   total,
			HasNextPage:     page < totalPages,
			HasPreviousPage: page > 1,
		},
	}
}

func (c *Client) getJSON(ctx context.Context, path string, query url.Values, out any) error {
	rel := &url.URL{Path: path}
	if query != nil {
		rel.RawQuery = query.Encode()
	}
	u := c.baseURL.ResolveReference(rel)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return errors.Wrap(err, "build catalog request")
	}
	req.Header.Set("Accept", "application/json")

	c.log.WithFields(logrus.Fields{"path": path, "query": rel.RawQuery}).Debug("catalog request")

	resp, err := c.http.Do(req)
	if err != nil {
		return errors.Wrapf(err, "catalog request %s failed", path)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return errors.Errorf("catalog request %s: unexpected status %d", path, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return errors.Wrapf(err, "decode catalog response from %s", path)
	}
	return nil
}
