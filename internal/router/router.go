package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v4"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"mazad/internal/auth"
	"mazad/internal/config"
	"mazad/internal/handler"
	"mazad/internal/model"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	authHandler *handler.AuthHandler,
	userHandler *handler.UserHandler,
	catalogHandler *handler.CatalogHandler,
	auctionHandler *handler.AuctionHandler,
	bidHandler *handler.BidHandler,
	watchlistHandler *handler.WatchlistHandler,
	notificationHandler *handler.NotificationHandler,
) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	// Add validator
	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")

	// Public routes
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)
	api.POST("/auth/refresh", authHandler.Refresh)
	api.POST("/auth/logout", authHandler.Logout)

	api.GET("/categories", catalogHandler.ListCategories)
	api.GET("/categories/:id", catalogHandler.GetCategory)
	api.GET("/locations", catalogHandler.ListLocations)

	// Browsing is public; placement and management require a token.
	api.GET("/auctions", auctionHandler.Search)
	api.GET("/auctions/active", auctionHandler.GetActive)
	api.GET("/auctions/:id", auctionHandler.GetByID)
	api.GET("/auctions/:id/bids", bidHandler.GetByAuction)

	// Secured routes (require JWT authentication)
	secured := api.Group("", echojwt.WithConfig(echojwt.Config{
		SigningKey:  []byte(cfg.JWTSecret),
		TokenLookup: "header:" + echo.HeaderAuthorization,
		NewClaimsFunc: func(c echo.Context) jwt.Claims {
			return new(auth.Claims)
		},
	}))

	secured.GET("/auth/me", authHandler.Me)

	// Profile routes
	secured.GET("/users/me", userHandler.GetProfile)
	secured.PUT("/users/me", userHandler.UpdateProfile)

	// Auction routes
	secured.POST("/auctions", auctionHandler.Create)
	secured.GET("/auctions/my", auctionHandler.GetMy)
	secured.POST("/auctions/images", auctionHandler.UploadImage)
	secured.DELETE("/auctions/images/:id", auctionHandler.DeleteImage)

	// Bid routes
	secured.POST("/bids", bidHandler.Place)
	secured.GET("/bids/my", bidHandler.GetMy)

	// Watchlist routes
	secured.POST("/watchlist", watchlistHandler.Add)
	secured.GET("/watchlist", watchlistHandler.GetMy)
	secured.GET("/watchlist/:id", watchlistHandler.IsWatching)
	secured.DELETE("/watchlist/:id", watchlistHandler.Remove)

	// Notification routes
	secured.GET("/notifications", notificationHandler.GetMy)
	secured.GET("/notifications/unread", notificationHandler.UnreadCount)
	secured.PUT("/notifications/:id/read", notificationHandler.MarkAsRead)

	// Admin routes
	admin := secured.Group("/admin", AdminOnly)
	admin.GET("/users", userHandler.ListUsers)
	admin.PUT("/users/status", userHandler.UpdateUserStatus)
	admin.POST("/categories", catalogHandler.CreateCategory)
	admin.POST("/locations", catalogHandler.CreateLocation)
	admin.GET("/auctions/:status", auctionHandler.GetByStatus)
	admin.PUT("/auctions/status", auctionHandler.UpdateStatus)
}

// AdminOnly rejects requests whose token does not carry the admin role.
func AdminOnly(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		claims, err := handler.CurrentClaims(c)
		if err != nil {
			return err
		}
		if claims.Role != string(model.RoleAdmin) {
			return echo.NewHTTPError(http.StatusForbidden, "admin access required")
		}
		return next(c)
	}
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
