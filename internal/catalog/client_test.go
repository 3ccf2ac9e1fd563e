package catalog

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return NewClient(srv.URL, srv.Client(), log)
}

func TestListProducts(t *testing.T) {
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/products", r.URL.Path)
		assert.Equal(t, "eletronicos", r.URL.Query().Get("category"))
		assert.Equal(t, "2", r.URL.Query().Get("page"))
		assert.Equal(t, "6", r.URL.Query().Get("limit"))
		assert.Equal(t, "price-asc", r.URL.Query().Get("sort"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"products": [
				{"id": 1, "name": "Fone", "price": 70, "category": "eletronicos"},
				{"title": "Caneca", "value": "25.9", "category": {"name": "casa"}}
			],
			"pagination": {"currentPage": 2, "totalPages": 3, "totalProducts": 15, "hasNextPage": true, "hasPreviousPage": true}
		}`))
	}))

	list, err := client.ListProducts(context.Background(), ListParams{
		Category: "eletronicos",
		Sort:     SortPriceAsc,
		Page:     2,
		Limit:    6,
	})
	require.NoError(t, err)

	require.Len(t, list.Products, 2)
	assert.Equal(t, "Fone", list.Products[0].Name)
	assert.Equal(t, "Caneca", list.Products[1].Name)
	assert.InDelta(t, 25.9, list.Products[1].Price, 1e-9)
	assert.Equal(t, "casa", list.Products[1].Category)
	assert.Equal(t, 2, list.Pagination.CurrentPage)
	assert.True(t, list.Pagination.HasNextPage)
}

func TestListProductsOmitsCategoryAll(t *testing.T) {
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.URL.Query().Get("category"))
		_, _ = w.Write([]byte(`{"products": [], "pagination": {}}`))
	}))

	_, err := client.ListProducts(context.Background(), ListParams{Category: "all"})
	require.NoError(t, err)
}

func TestListProductsUpstreamError(t *testing.T) {
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusBadGateway)
	}))

	_, err := client.ListProducts(context.Background(), ListParams{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "502")
}

func TestSearchFiltersSortsAndPaginates(t *testing.T) {
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/search", r.URL.Path)
		require.Equal(t, "caneca", r.URL.Query().Get("q"))
		_, _ = w.Write([]byte(`[
			{"id": 1, "name": "Caneca azul", "price": 30, "category": "casa"},
			{"id": 2, "name": "Caneca verde", "price": 10, "category": "casa"},
			{"id": 3, "name": "Caneca gamer", "price": 20, "category": "eletronicos"}
		]`))
	}))

	list, err := client.ListProducts(context.Background(), ListParams{
		Search:   "caneca",
		Category: "casa",
		Sort:     SortPriceAsc,
		Page:     1,
		Limit:    6,
	})
	require.NoError(t, err)

	require.Len(t, list.Products, 2)
	assert.Equal(t, 2, list.Products[0].ID, "cheapest first")
	assert.Equal(t, 1, list.Products[1].ID)
	assert.Equal(t, 2, list.Pagination.TotalProducts)
}

func TestSearchResultsEnvelope(t *testing.T) {
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"results": [{"id": 1, "name": "Caneca", "price": 30}]}`))
	}))

	list, err := client.ListProducts(context.Background(), ListParams{Search: "caneca"})
	require.NoError(t, err)
	require.Len(t, list.Products, 1)
	assert.Equal(t, "Caneca", list.Products[0].Name)
}

func TestGetProduct(t *testing.T) {
	tests := map[string]string{
		"bare record":      `{"id": 3, "name": "Livro", "price": 42}`,
		"product envelope": `{"product": {"id": 3, "name": "Livro", "price": 42}}`,
		"data envelope":    `{"data": {"id": 3, "name": "Livro", "price": 42}}`,
	}

	for name, payload := range tests {
		t.Run(name, func(t *testing.T) {
			body := payload
			client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				require.Equal(t, "/api/products/3", r.URL.Path)
				_, _ = w.Write([]byte(body))
			}))

			p, err := client.GetProduct(context.Background(), 3)
			require.NoError(t, err)
			assert.Equal(t, 3, p.ID)
			assert.Equal(t, "Livro", p.Name)
			assert.InDelta(t, 42.0, p.Price, 1e-9)
		})
	}
}

func TestGetProductNotFound(t *testing.T) {
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))

	_, err := client.GetProduct(context.Background(), 404)
	require.Error(t, err)
}

func TestListCategories(t *testing.T) {
	tests := map[string]string{
		"enveloped":  `{"categories": [{"id": 1, "name": "Livros", "slug": "livros"}]}`,
		"bare array": `[{"id": 1, "name": "Livros", "slug": "livros"}]`,
	}

	for name, payload := range tests {
		t.Run(name, func(t *testing.T) {
			body := payload
			client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				require.Equal(t, "/api/categories", r.URL.Path)
				_, _ = w.Write([]byte(body))
			}))

			cats, err := client.ListCategories(context.Background())
			require.NoError(t, err)
			require.Len(t, cats, 1)
			assert.Equal(t, "livros", cats[0].Slug)
		})
	}
}
