package main

import (
	"context"
	"log"

	"yams/internal/apiclient"
	"yams/internal/config"
	"yams/internal/guard"
	"yams/internal/model"
	"yams/internal/storage"
	"yams/internal/store"
)

func main() {
	cfg := config.Load()

	var persist storage.Store
	switch cfg.StorageBackend {
	case "redis":
		persist = storage.NewRedis(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	case "memory":
		persist = storage.NewMemory()
	default:
		fileStore, err := storage.NewFile(cfg.StorageDir)
		if err != nil {
			log.Fatalf("storage init: %v", err)
		}
		persist = fileStore
	}

	api := apiclient.New(cfg.APIBaseURL)
	appStore := store.New(api, persist, cfg.AppURL)
	routeGuard := guard.New(appStore)
	routes := guard.DefaultRoutes()

	appStore.OnSessionExpired(func() {
		log.Println("session expired, routing to login")
	})

	ctx := context.Background()
	if appStore.RestoreSession(ctx) {
		log.Printf("session restored: %s", appStore.User().Name)
	} else {
		log.Println("no persisted session")
	}

	appStore.FetchProducts(ctx, nil)
	log.Printf("catalog: %d products (featured: %v)", len(appStore.Products()), featuredTitle(appStore))
	log.Printf("cart: %d items, total %s %s", appStore.CartCount(), appStore.CartTotal(), model.DefaultCurrency)

	appStore.FetchNotifications(ctx)
	log.Printf("unread notifications: %d", appStore.NotificationCount())

	for _, route := range routes {
		decision := routeGuard.Evaluate(route)
		if decision.Proceed {
			log.Printf("route %-20s proceed", route.Path)
		} else {
			log.Printf("route %-20s redirect -> %s", route.Path, decision.RedirectTo)
		}
	}
}

func featuredTitle(s *store.Store) string {
	if featured := s.FeaturedProduct(); featured != nil {
		return featured.Title
	}
	return "none"
}
