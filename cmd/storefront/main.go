package main

import (
	"context"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"

	"github.com/joao160197/InsanyShop/internal/cart"
	"github.com/joao160197/InsanyShop/internal/catalog"
	"github.com/joao160197/InsanyShop/internal/config"
	"github.com/joao160197/InsanyShop/internal/web"
)

func main() {
	cfg := config.Load()

	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})

	catalogClient := catalog.NewClient(cfg.CatalogURL, &http.Client{Timeout: cfg.CatalogTimeout}, log)

	slots := slotFactory(cfg, log)
	carts := cart.NewManager(slots, log)

	router := web.NewRouter(web.Deps{
		Logger:   log,
		Carts:    carts,
		Catalog:  catalogClient,
		PageSize: cfg.PageSize,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.WithField("port", cfg.Port).Info("storefront listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		log.Info("shutdown signal received")
	case err := <-errCh:
		log.WithError(err).Fatal("server error")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Warn("graceful shutdown error")
	}
}

// slotFactory picks the cart persistence backend. A Redis that is down at
// startup is not fatal: stores restore empty carts and keep serving from
// memory until writes succeed again.
func slotFactory(cfg config.Config, log logrus.FieldLogger) cart.SlotFactory {
	switch cfg.CartBackend {
	case config.BackendRedis:
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		pingCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := client.Ping(pingCtx).Err(); err != nil {
			log.WithError(err).Warn("redis unreachable, carts will not persist until it recovers")
		}
		return func(sessionID string) cart.Slot {
			return cart.NewRedisSlot(client, sessionID)
		}
	default:
		return func(sessionID string) cart.Slot {
			return cart.NewFileSlot(cfg.CartDir, sessionID)
		}
	}
}
