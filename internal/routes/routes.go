package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/srilaxmialankar/storefront-golang/internal/handlers"
	"github.com/srilaxmialankar/storefront-golang/internal/middleware"
)

// CORSMiddleware tells the browser that the configured frontend origin may
// send data to us.
func CORSMiddleware(allowedOrigin string) gin.HandlerFunc {
	return func(c *gin.Context) {
		// 1. Strictly allow ONLY the configured frontend origin
		c.Writer.Header().Set("Access-Control-Allow-Origin", allowedOrigin)

		// 2. Allow standard security credentials
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")

		// 3. Allow the headers we actually use (specifically "Authorization" for JWT tokens)
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")

		// 4. Allow the HTTP methods we use in our API
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		// 5. Handle the "Preflight" OPTIONS request
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}

func SetupRouter(h *handlers.Handlers) *gin.Engine {
	router := gin.Default()

	// --- APPLY THE CORS GUARD ---
	// This must be the very first thing the router uses
	router.Use(CORSMiddleware(h.Cfg.AllowedOrigin))

	v1 := router.Group("/v1")
	{
		// --- Ping Route (Public) ---
		v1.GET("/ping", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"message": "pong!"})
		})

		// --- Auth Routes (Public) ---
		v1.POST("/login", h.Login)
		v1.POST("/signup", h.Signup)
		v1.POST("/auth/google", h.GoogleSignin)

		// --- Catalog Routes (Public) ---
		v1.GET("/products", h.GetProducts)
		v1.POST("/products/refresh", h.RefreshProducts)
		v1.GET("/products/featured", h.GetFeaturedProducts)
		v1.GET("/products/best-selling", h.GetBestSellingProducts)
		v1.GET("/products/everyday", h.GetEverydayProducts)
		v1.GET("/products/:id", h.GetProduct)

		// --- Category Routes (Public) ---
		v1.GET("/categories", h.GetAllCategories)

		// --- Gold Price Routes (Public) ---
		v1.GET("/goldprice/today", h.GetTodayPrices)
		v1.POST("/goldprice/refresh", h.RefreshPrices)

		// --- Cart Routes (Public: guests get a minted cart id) ---
		v1.GET("/cart", h.GetCart)
		v1.POST("/cart/items", h.AddToCart)
		v1.PUT("/cart/items/:product_id", h.UpdateCartItem)
		v1.DELETE("/cart/items/:product_id", h.DeleteCartItem)
		v1.DELETE("/cart", h.ClearCart)

		// --- Protected Routes (Login Required) ---
		auth := v1.Group("/")
		auth.Use(middleware.RequireSession(h.Session))
		{
			auth.POST("/logout", h.Logout)
			auth.GET("/profile/me", h.GetProfile)

			// --- Wishlist Routes ---
			auth.GET("/wishlist", h.GetWishlist)
			auth.POST("/wishlist/toggle", h.ToggleFavorite)

			// --- Order Routes ---
			auth.POST("/checkout", h.CreateOrder)
			auth.POST("/checkout/verify", h.VerifyPayment)
			auth.GET("/orders", h.GetMyOrders)
			auth.GET("/orders/:order_id", h.GetOrderDetails)
		}
	}

	return router
}
