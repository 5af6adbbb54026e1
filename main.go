// File: sevahub/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"sevahub/config"
	"sevahub/database"
	"sevahub/database/docstore"
	"sevahub/database/sessioncache"
	"sevahub/handlers"
	"sevahub/middleware"
	"sevahub/routes"
	"sevahub/services/catalog"
	"sevahub/services/credential"
	"sevahub/services/directory"
	"sevahub/services/session"
	"sevahub/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()
	ctx := context.Background()

	// Probe each external capability once and inject the chosen adapter.
	// Everything degrades to a deterministic local implementation so the
	// application runs with no backing services at all.
	var store docstore.Store
	if err := database.InitDB(); err != nil {
		logger.Warn("main: MongoDB unreachable, using in-memory document store", zap.Error(err))
		store = docstore.NewSeededMemoryStore()
	} else {
		store = docstore.NewMongoStore(database.MongoClient.Database(config.AppConfig.DatabaseName))
	}

	var cache sessioncache.Cache
	if err := utils.InitSessionCache(); err != nil {
		logger.Warn("main: Redis unreachable, using in-memory session cache", zap.Error(err))
		cache = sessioncache.NewMemoryCache()
	} else {
		cache = sessioncache.NewRedisCache(utils.GetSessionCacheClient())
	}

	backend := credential.Probe(ctx)

	// Aggregates and services.
	directoryService := directory.NewDirectoryService(ctx, cache)
	sessionManager := session.NewManager(backend, store, cache, directoryService)
	catalogService := catalog.NewCatalogService(store)

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	handlerBundle := &routes.HandlerBundle{
		Session:  handlers.NewSessionHandler(sessionManager),
		Provider: handlers.NewProviderHandler(directoryService),
		Catalog:  handlers.NewCatalogHandler(catalogService),
	}
	routes.RegisterRoutes(router, handlerBundle)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
