package web

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"

	"github.com/joao160197/InsanyShop/internal/cart"
)

type Deps struct {
	Logger   logrus.FieldLogger
	Carts    *cart.Manager
	Catalog  Catalog
	PageSize int
}

func NewRouter(d Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(requestLogger(d.Logger))
	r.Use(Session)

	h := NewHandler(d.Carts, d.Catalog, d.Logger, d.PageSize)

	r.Get("/health", h.Health)

	r.Get("/", h.Home)
	r.Get("/category/{slug}", h.Category)
	r.Get("/product/{id}", h.Product)

	r.Route("/cart", func(r chi.Router) {
		r.Get("/", h.CartPage)
		r.Post("/items", h.AddToCart)
		r.Post("/items/{id}", h.UpdateQuantity)
		r.Post("/items/{id}/remove", h.RemoveFromCart)
		r.Post("/clear", h.ClearCart)
	})

	r.Get("/api/cart", h.CartJSON)

	return r
}

func requestLogger(log logrus.FieldLogger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)
			log.WithFields(logrus.Fields{
				"method":   r.Method,
				"path":     r.URL.Path,
				"status":   ww.Status(),
				"duration": time.Since(start).String(),
			}).Info("request")
		})
	}
}
