// internal/router/router.go
package router

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/javajoker/popgo-backend/internal/config"
	"github.com/javajoker/popgo-backend/internal/handlers"
	"github.com/javajoker/popgo-backend/internal/middleware"
	"github.com/javajoker/popgo-backend/internal/services"
	"github.com/javajoker/popgo-backend/internal/session"
	"github.com/javajoker/popgo-backend/internal/utils"
)

const version = "1.0.0"

// Handlers is the full set of route handlers.
type Handlers struct {
	Auth        *handlers.AuthHandler
	Catalog     *handlers.CatalogHandler
	Collection  *handlers.CollectionHandler
	Wishlist    *handlers.WishlistHandler
	Loyalty     *handlers.LoyaltyHandler
	Preferences *handlers.PreferencesHandler
	Session     *handlers.SessionHandler
}

// Initialize wires services over db and returns the engine plus a cleanup
// func that stops background work owned by the router.
func Initialize(db *gorm.DB, cfg *config.Config, sessions *session.Manager) (*gin.Engine, func(), error) {
	storageService, err := services.NewStorageService(cfg.AWS)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	authService := services.NewAuthService(db, cfg, sessions)
	catalogService := services.NewCatalogService(db)
	collectionService := services.NewCollectionService(db)
	wishlistService := services.NewWishlistService(db)
	loyaltyService := services.NewLoyaltyService(db)
	preferenceService := services.NewPreferenceService(db)

	h := Handlers{
		Auth:        handlers.NewAuthHandler(authService),
		Catalog:     handlers.NewCatalogHandler(catalogService),
		Collection:  handlers.NewCollectionHandler(collectionService, storageService),
		Wishlist:    handlers.NewWishlistHandler(wishlistService),
		Loyalty:     handlers.NewLoyaltyHandler(loyaltyService),
		Preferences: handlers.NewPreferencesHandler(preferenceService),
		Session:     handlers.NewSessionHandler(sessions),
	}

	utils.SetJWTSecret(cfg.JWT.SecretKey)

	limiters := middleware.NewLimiters(cfg.RateLimit)
	r := Setup(cfg, h, sessions, limiters)

	if dir := storageService.LocalDir(); dir != "" {
		r.Static("/uploads", dir)
	}

	return r, limiters.Close, nil
}

// Setup builds the route table.
func Setup(cfg *config.Config, h Handlers, sessions *session.Manager, limiters *middleware.Limiters) *gin.Engine {
	log := logrus.StandardLogger()
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery(log))
	r.Use(middleware.RequestLogger(log))
	r.Use(middleware.CORS(cfg.CORS))
	r.Use(middleware.I18nMiddleware(cfg.I18n.DefaultLocale))
	r.Use(limiters.General.Middleware())

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":          "healthy",
			"version":         version,
			"active_sessions": sessions.Len(),
		})
	})

	auth := middleware.AuthRequired(sessions)

	api := r.Group("/api")
	{
		// Authentication routes
		authRoutes := api.Group("")
		authRoutes.Use(limiters.Auth.Middleware())
		{
			authRoutes.POST("/register", h.Auth.Register)
			authRoutes.POST("/login", h.Auth.Login)
		}
		api.POST("/logout", auth, h.Auth.Logout)
		api.POST("/logout/all", auth, h.Auth.LogoutAll)
		api.GET("/me", auth, h.Auth.Me)

		// Catalog routes
		catalog := api.Group("/catalog")
		{
			catalog.GET("", h.Catalog.Search)
			catalog.GET("/categories", h.Catalog.Categories)
			catalog.GET("/:id", h.Catalog.Get)
		}

		// Collection routes
		collection := api.Group("/collection")
		collection.Use(auth)
		{
			collection.GET("", h.Collection.List)
			collection.GET("/stats", h.Collection.Stats)
			collection.POST("", h.Collection.Add)
			collection.PUT("/:id", h.Collection.Update)
			collection.DELETE("/:id", h.Collection.Delete)
			collection.POST("/:id/artwork", limiters.Upload.Middleware(), h.Collection.UploadArtwork)
		}

		// Wishlist routes
		wishlist := api.Group("/wishlist")
		wishlist.Use(auth)
		{
			wishlist.GET("", h.Wishlist.List)
			wishlist.POST("", h.Wishlist.Add)
			wishlist.DELETE("/:id", h.Wishlist.Delete)
			wishlist.POST("/:id/move", h.Wishlist.MoveToCollection)
		}

		// Loyalty routes
		loyalty := api.Group("/loyalty")
		{
			loyalty.POST("/calculate", auth, h.Loyalty.Calculate)
			loyalty.GET("/dashboard", auth, h.Loyalty.Dashboard)
			loyalty.GET("/leaderboard", h.Loyalty.Leaderboard)
		}

		// Preference routes
		preferences := api.Group("/preferences")
		preferences.Use(auth)
		{
			preferences.GET("", h.Preferences.Get)
			preferences.PUT("", h.Preferences.Update)
			preferences.POST("/visits/:id", h.Preferences.RecordVisit)
		}

		api.POST("/session/activity", auth, h.Session.Activity)
	}

	return r
}
