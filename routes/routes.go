package routes

import (
	"net/http"
	"time"

	"sevahub/handlers"
	"sevahub/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// HandlerBundle collects the handlers wired at startup.
type HandlerBundle struct {
	Session  *handlers.SessionHandler
	Provider *handlers.ProviderHandler
	Catalog  *handlers.CatalogHandler
}

// RegisterAuthRoutes registers session/authentication endpoints. Every
// endpoint is scoped to the caller's client session.
func RegisterAuthRoutes(r *gin.Engine, hb *HandlerBundle) {
	api := r.Group("/api/auth")
	api.Use(middleware.SessionMiddleware())
	{
		api.POST("/login", hb.Session.LoginHandler)
		api.POST("/signup", hb.Session.SignupHandler)
		api.POST("/logout", hb.Session.LogoutHandler)
		api.GET("/me", hb.Session.MeHandler)
	}
}

// RegisterBookingRoutes registers booking endpoints backed by the session
// aggregate.
func RegisterBookingRoutes(r *gin.Engine, hb *HandlerBundle) {
	api := r.Group("/api/bookings")
	api.Use(middleware.SessionMiddleware())
	{
		api.POST("", hb.Session.CreateBookingHandler)
		api.GET("", hb.Session.ListBookingsHandler)
		api.DELETE("/:id", hb.Session.DeleteBookingHandler)
	}
}

// RegisterProviderRoutes registers provider directory endpoints.
func RegisterProviderRoutes(r *gin.Engine, hb *HandlerBundle) {
	api := r.Group("/api/providers")
	{
		api.GET("", hb.Provider.ListProvidersHandler)
		api.POST("", hb.Provider.AddProviderHandler)
	}
}

// RegisterCatalogRoutes registers the read-only catalog endpoints.
func RegisterCatalogRoutes(r *gin.Engine, hb *HandlerBundle) {
	api := r.Group("/api")
	{
		api.GET("/services", hb.Catalog.GetServicesHandler)
		api.GET("/services/:id", hb.Catalog.GetServiceHandler)
		api.GET("/catalog/providers", hb.Catalog.GetCatalogProvidersHandler)
		api.GET("/catalog/providers/:id", hb.Catalog.GetCatalogProviderHandler)

		// Protected: bookings read requires a locally minted token.
		protected := api.Group("")
		protected.Use(middleware.JWTAuthMiddleware())
		protected.GET("/users/:id/bookings", hb.Catalog.GetUserBookingsHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "Hi, I'm SevaHub"})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type", middleware.SessionIDHeader},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterAuthRoutes(r, hb)
	RegisterBookingRoutes(r, hb)
	RegisterProviderRoutes(r, hb)
	RegisterCatalogRoutes(r, hb)
	RegisterHealthRoute(r)
}
