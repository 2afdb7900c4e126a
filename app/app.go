// File: app/app.go
package app

import (
	"context"
	"livelib-api/cache"
	"livelib-api/config"
	"livelib-api/db"
	"livelib-api/handler"
	"livelib-api/logger"
	"livelib-api/repository"
	"livelib-api/router"
	"livelib-api/service"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
)

func Run() {
	config.LoadConfig(".")
	logger.Init()
	logger.Log.Info("Logger initialized")
	logger.Log.Info("Configuration loaded successfully")

	database, err := db.Connect()
	if err != nil {
		logger.Log.Fatalf("Error connecting to the database: %v", err)
	}
	defer database.Close()

	if err := db.RunMigrations("file://db/migrations"); err != nil {
		logger.Log.Fatalf("Error running migrations: %v", err)
	}

	redisClient, err := db.ConnectRedis()
	if err != nil {
		logger.Log.Fatalf("Error connecting to Redis: %v", err)
	}
	defer redisClient.Close()

	// --- Wiring All Layers Together ---

	// The auth core gets its configuration at construction; a missing
	// signing secret aborts here, before the server ever listens.
	issuer, err := service.NewTokenIssuer(config.AppConfig.JWT)
	if err != nil {
		logger.Log.Fatalf("Invalid JWT configuration: %v", err)
	}

	cacheProvider := cache.NewRedisProvider(redisClient)
	sessionRepo := repository.NewSessionRepository(cacheProvider)
	tokenProvider := service.NewTokenProvider(issuer, sessionRepo, config.AppConfig.JWT)

	userRepo := repository.NewUserRepository(database)
	userService := service.NewUserService(userRepo)

	bookRepo := repository.NewBookRepository(database)
	bookService := service.NewBookService(bookRepo, cacheProvider)

	handlers := router.Handlers{
		Auth:        handler.NewAuthHandler(userService, tokenProvider),
		Users:       handler.NewUserHandler(userService),
		Books:       handler.NewBookHandler(bookService),
		Genres:      handler.NewGenreHandler(repository.NewGenreRepository(database)),
		Publishers:  handler.NewPublisherHandler(repository.NewPublisherRepository(database)),
		Reviews:     handler.NewReviewHandler(repository.NewReviewRepository(database)),
		Collections: handler.NewCollectionHandler(repository.NewCollectionRepository(database)),
		Health:      handler.NewHealthHandler(database, redisClient),
	}

	r := router.NewRouter(handlers, issuer)

	// --- Start the Server with Graceful Shutdown ---
	port := config.AppConfig.Server.Port
	srv := &http.Server{
		Addr:    ":" + port,
		Handler: r,
	}

	go func() {
		logger.Log.Infof("Server starting on port :%s", port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Log.Warn("Shutdown signal received. Starting graceful shutdown...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Fatalf("Server forced to shutdown: %v", err)
	}

	logger.Log.Info("Server exited properly")
}
