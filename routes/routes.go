package routes

import (
	"net/http"
	"time"

	"masarra/handlers"
	"masarra/middleware"
	"masarra/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterCartRoutes registers cart endpoints.
func RegisterCartRoutes(r *gin.Engine, ch *handlers.CartHandler, eh *handlers.CartEventsHandler) {
	api := r.Group("/api/cart")
	{
		// The websocket endpoint authenticates via query token inside the
		// handler; everything else goes through the JWT middleware.
		api.GET("/events", eh.CartEventsWSHandler)

		protected := api.Group("")
		protected.Use(middleware.JWTAuthUserMiddleware())
		protected.GET("", ch.GetCartHandler)
		protected.POST("", ch.AddToCartHandler)
		protected.PATCH("/:id/quantity", ch.UpdateCartQuantityHandler)
		protected.DELETE("/:id", ch.RemoveFromCartHandler)
		protected.DELETE("", ch.ClearCartHandler)
	}
}

// RegisterAvailabilityRoutes registers the availability endpoint.
func RegisterAvailabilityRoutes(r *gin.Engine, ah *handlers.AvailabilityHandler) {
	api := r.Group("/api/availability")
	{
		api.Use(middleware.JWTAuthUserMiddleware())
		api.GET("", ah.DayAvailabilityHandler)
	}
}

// RegisterCheckoutRoutes registers reconciliation and checkout endpoints.
func RegisterCheckoutRoutes(r *gin.Engine, ch *handlers.CheckoutHandler) {
	api := r.Group("/api/checkout")
	{
		api.Use(middleware.JWTAuthUserMiddleware())
		api.POST("/reconcile", ch.ReconcileHandler)
		api.POST("", ch.CheckoutHandler)
	}
}

// RegisterOrderRoutes registers the order-history endpoint.
func RegisterOrderRoutes(r *gin.Engine, oh *handlers.OrderHandler) {
	api := r.Group("/api/orders")
	{
		api.Use(middleware.JWTAuthUserMiddleware())
		api.GET("", oh.ListOrdersHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "health": utils.GetHealthStatus()})
	})
}

// Handlers bundles everything RegisterRoutes needs.
type Handlers struct {
	Cart         *handlers.CartHandler
	CartEvents   *handlers.CartEventsHandler
	Availability *handlers.AvailabilityHandler
	Checkout     *handlers.CheckoutHandler
	Orders       *handlers.OrderHandler
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, h Handlers) {
	// Setup global middleware (e.g., CORS) here.
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterCartRoutes(r, h.Cart, h.CartEvents)
	RegisterAvailabilityRoutes(r, h.Availability)
	RegisterCheckoutRoutes(r, h.Checkout)
	RegisterOrderRoutes(r, h.Orders)
	RegisterHealthRoute(r)
}
