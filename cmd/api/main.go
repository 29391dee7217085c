package main

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"

	cartapp "github.com/dwikikusuma/storefront/internal/cart/app"
	"github.com/dwikikusuma/storefront/internal/cart/infra/adapter"
	cartmongo "github.com/dwikikusuma/storefront/internal/cart/infra/mongodb"
	catalogapp "github.com/dwikikusuma/storefront/internal/catalog/app"
	catalogmongo "github.com/dwikikusuma/storefront/internal/catalog/infra/mongodb"
	"github.com/dwikikusuma/storefront/internal/httpapi"
	userapp "github.com/dwikikusuma/storefront/internal/user/app"
	usermongo "github.com/dwikikusuma/storefront/internal/user/infra/mongodb"
	"github.com/dwikikusuma/storefront/pkg/config"
	"github.com/dwikikusuma/storefront/pkg/logger"
	"github.com/dwikikusuma/storefront/pkg/shutdown"
)

func main() {
	cfg := config.Load()
	log, err := logger.New(logger.Options{
		Service: "storefront-api",
		Env:     cfg.AppEnv,
		Level:   cfg.LogLevel,
	})
	if err != nil {
		panic(err)
	}
	defer func() { _ = log.Sync() }()

	root := context.Background()
	ctx, cancel := shutdown.WithSignals(root)
	defer cancel()

	connectCtx, connectCancel := context.WithTimeout(ctx, cfg.MongoTimeout)
	defer connectCancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		log.Fatal("mongo connect", zap.Error(err))
	}
	if err := client.Ping(connectCtx, readpref.Primary()); err != nil {
		log.Fatal("mongo ping", zap.Error(err))
	}
	db := client.Database(cfg.MongoDB)

	productRepo := catalogmongo.NewProductRepo(db)
	cartRepo := cartmongo.NewCartRepo(db)
	userRepo := usermongo.NewUserRepo(db)

	if err := userRepo.EnsureIndexes(connectCtx); err != nil {
		log.Fatal("user indexes", zap.Error(err))
	}

	catalogSvc := catalogapp.NewService(productRepo)
	cartSvc := cartapp.NewService(cartRepo, adapter.NewCatalogServiceReader(catalogSvc), cfg.EnrichFanout)
	userSvc := userapp.NewService(userRepo, cfg.BcryptCost)

	router := httpapi.NewRouter(log, cfg.AllowedOrigins, httpapi.Handlers{
		Catalog: httpapi.NewCatalogHandler(catalogSvc),
		Cart:    httpapi.NewCartHandler(cartSvc),
		Users:   httpapi.NewUserHandler(userSvc),
	})

	addr := fmt.Sprintf(":%d", cfg.HTTPPort)
	server := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		log.Info("http server starting", zap.String("addr", addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("http server error", zap.Error(err))
			cancel()
		}
	}()

	<-ctx.Done()
	log.Info("shutdown requested")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("http shutdown error", zap.Error(err))
	}
	if err := client.Disconnect(shutdownCtx); err != nil {
		log.Error("mongo disconnect error", zap.Error(err))
	}

	wg.Wait()
	log.Info("bye")
}
