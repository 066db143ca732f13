package main

import (
	"context"
	"net/http"

	_ "mazad/docs" // swagger docs

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	log "github.com/sirupsen/logrus"

	"mazad/internal/auth"
	"mazad/internal/cache"
	"mazad/internal/config"
	"mazad/internal/db"
	"mazad/internal/handler"
	"mazad/internal/model"
	"mazad/internal/repository"
	"mazad/internal/router"
	"mazad/internal/service"
	"mazad/internal/storage"
)

// @title Mazad Auction API
// @version 1.0
// @description Online auction marketplace API with bidding, lifecycle management, and JWT authentication. Prices are integers in cents.
// @host localhost:8080
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	log.SetFormatter(&log.JSONFormatter{})

	cfg := config.Load()

	e := echo.New()
	e.Use(middleware.RequestID())

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.WithError(err).Fatal("database init")
	}

	// Run migrations for all models
	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Category{},
		&model.Location{},
		&model.Auction{},
		&model.AuctionImage{},
		&model.Bid{},
		&model.WatchlistItem{},
		&model.Notification{},
	); err != nil {
		log.WithError(err).Fatal("auto-migrate")
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	objectStore, err := storage.NewMinioStore(
		cfg.MinioEndpoint,
		cfg.MinioAccessKey,
		cfg.MinioSecretKey,
		cfg.MinioBucket,
		cfg.MinioPublicURL,
		cfg.MinioUseSSL,
	)
	if err != nil {
		log.WithError(err).Fatal("object store init")
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(gormDB)
	categoryRepo := repository.NewCategoryRepository(gormDB)
	locationRepo := repository.NewLocationRepository(gormDB)
	auctionRepo := repository.NewAuctionRepository(gormDB)
	imageRepo := repository.NewImageRepository(gormDB)
	bidRepo := repository.NewBidRepository(gormDB)
	watchlistRepo := repository.NewWatchlistRepository(gormDB)
	notificationRepo := repository.NewNotificationRepository(gormDB)

	// Initialize auth components
	jwtService := auth.NewJWTService(cfg.JWTSecret)
	tokenStore := auth.NewTokenStore(cacheClient)

	// Initialize services
	settlementService := service.NewSettlementService(auctionRepo, bidRepo, notificationRepo, cacheClient)
	authService := service.NewAuthService(userRepo, jwtService, tokenStore, cfg.OwnerEmail)
	userService := service.NewUserService(userRepo, cacheClient)
	catalogService := service.NewCatalogService(categoryRepo, locationRepo)
	auctionService := service.NewAuctionService(auctionRepo, bidRepo, imageRepo, categoryRepo, locationRepo, settlementService, cacheClient)
	bidService := service.NewBidService(auctionRepo, bidRepo, settlementService, cacheClient, cfg.EnforceReserveAtBid)
	imageService := service.NewImageService(auctionRepo, imageRepo, objectStore, cacheClient)
	watchlistService := service.NewWatchlistService(watchlistRepo, auctionRepo)
	notificationService := service.NewNotificationService(notificationRepo)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService, userService)
	userHandler := handler.NewUserHandler(userService)
	catalogHandler := handler.NewCatalogHandler(catalogService)
	auctionHandler := handler.NewAuctionHandler(auctionService, imageService)
	bidHandler := handler.NewBidHandler(bidService)
	watchlistHandler := handler.NewWatchlistHandler(watchlistService)
	notificationHandler := handler.NewNotificationHandler(notificationService)

	// Register routes
	router.Register(
		e,
		cfg,
		authHandler,
		userHandler,
		catalogHandler,
		auctionHandler,
		bidHandler,
		watchlistHandler,
		notificationHandler,
	)

	// Background sweeper settles auctions whose end time has passed.
	sweeperCtx, cancelSweeper := context.WithCancel(context.Background())
	defer cancelSweeper()
	go settlementService.RunSweeper(sweeperCtx, cfg.SweepInterval)

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.WithError(err).Fatal("server start")
	}
}
