package router

import (
	"github.com/gin-gonic/gin"

	"github.com/nchoi/atelier-backend/config"
	"github.com/nchoi/atelier-backend/internal/app/controller"
	"github.com/nchoi/atelier-backend/internal/middleware"
	"github.com/nchoi/atelier-backend/internal/websocket"
)

type Router struct {
	authController      *controller.AuthController
	productController   *controller.ProductController
	cartController      *controller.CartController
	wishlistController  *controller.WishlistController
	compareController   *controller.CompareController
	reviewController    *controller.ReviewController
	checkoutController  *controller.CheckoutController
	orderController     *controller.OrderController
	activityController  *controller.ActivityController
	assistantController *controller.AssistantController
	assistantHandler    *websocket.AssistantHandler
	authMiddleware      *middleware.AuthMiddleware
	config              *config.Config
}

func NewRouter(
	authController *controller.AuthController,
	productController *controller.ProductController,
	cartController *controller.CartController,
	wishlistController *controller.WishlistController,
	compareController *controller.CompareController,
	reviewController *controller.ReviewController,
	checkoutController *controller.CheckoutController,
	orderController *controller.OrderController,
	activityController *controller.ActivityController,
	assistantController *controller.AssistantController,
	assistantHandler *websocket.AssistantHandler,
	authMiddleware *middleware.AuthMiddleware,
	cfg *config.Config,
) *Router {
	return &Router{
		authController:      authController,
		productController:   productController,
		cartController:      cartController,
		wishlistController:  wishlistController,
		compareController:   compareController,
		reviewController:    reviewController,
		checkoutController:  checkoutController,
		orderController:     orderController,
		activityController:  activityController,
		assistantController: assistantController,
		assistantHandler:    assistantHandler,
		authMiddleware:      authMiddleware,
		config:              cfg,
	}
}

func (r *Router) Setup() *gin.Engine {
	gin.SetMode(r.config.Server.GinMode)

	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.LoggingMiddleware())
	router.Use(corsMiddleware(r.config.CORS.AllowedOrigins))
	router.Use(middleware.SessionMiddleware())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "healthy",
			"message": "ATELIER API is running",
		})
	})

	v1 := router.Group("/api/v1")
	{
		auth := v1.Group("/auth")
		{
			auth.POST("/register", r.authController.Register)
			auth.POST("/login", r.authController.Login)
			auth.POST("/provider", r.authController.LoginWithProvider)
			auth.GET("/me", r.authMiddleware.Authenticate(), r.authController.GetMe)
		}

		products := v1.Group("/products")
		{
			products.GET("", r.productController.GetProducts)
			products.GET("/popular", r.productController.GetPopularProducts)
			products.GET("/categories", r.productController.GetCategories)
			products.GET("/:id", r.productController.GetProduct)
			products.GET("/:id/reviews", r.reviewController.GetProductReviews)
			products.POST("/:id/reviews", r.reviewController.AddReview)
		}

		v1.POST("/reviews/:reviewId/helpful", r.reviewController.MarkHelpful)

		cart := v1.Group("/cart")
		{
			cart.GET("", r.cartController.GetCart)
			cart.POST("", r.cartController.AddToCart)
			cart.PUT("", r.cartController.UpdateCart)
			cart.DELETE("", r.cartController.RemoveFromCart)
			cart.DELETE("/all", r.cartController.ClearCart)
		}

		wishlist := v1.Group("/wishlist")
		{
			wishlist.GET("", r.wishlistController.GetWishlist)
			wishlist.POST("/:productId", r.wishlistController.AddToWishlist)
			wishlist.DELETE("/:productId", r.wishlistController.RemoveFromWishlist)
			wishlist.DELETE("", r.wishlistController.ClearWishlist)
		}

		closet := v1.Group("/closet")
		{
			closet.GET("", r.wishlistController.GetCloset)
			closet.POST("/:productId", r.wishlistController.AddToCloset)
			closet.DELETE("/:productId", r.wishlistController.RemoveFromCloset)
			closet.DELETE("", r.wishlistController.ClearCloset)
		}

		compare := v1.Group("/compare")
		{
			compare.GET("", r.compareController.GetCompareItems)
			compare.POST("/:productId", r.compareController.AddToCompare)
			compare.DELETE("/:productId", r.compareController.RemoveFromCompare)
			compare.DELETE("", r.compareController.ClearCompare)
		}

		checkout := v1.Group("/checkout")
		{
			checkout.POST("", r.checkoutController.Begin)
			checkout.GET("", r.checkoutController.GetStage)
			checkout.POST("/shipping", r.checkoutController.SubmitShipping)
			checkout.POST("/payment", r.checkoutController.SubmitPayment)
			checkout.POST("/back", r.checkoutController.Back)
			checkout.GET("/review", r.checkoutController.GetReview)
			checkout.POST("/place-order", r.checkoutController.PlaceOrder)
		}

		orders := v1.Group("/orders")
		{
			orders.GET("", r.orderController.GetOrders)
			orders.GET("/:id", r.orderController.GetOrder)
		}

		activity := v1.Group("/activity")
		{
			activity.GET("/recently-viewed", r.activityController.GetRecentlyViewed)
			activity.GET("/search-history", r.activityController.GetSearchHistory)
			activity.DELETE("/search-history", r.activityController.ClearSearchHistory)
		}

		assistant := v1.Group("/assistant")
		{
			assistant.POST("/chat", r.assistantController.Chat)
			assistant.GET("/ws", r.assistantHandler.Serve)
		}
	}

	return router
}

func corsMiddleware(allowedOrigins []string) gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")

		allowed := false
		for _, allowedOrigin := range allowedOrigins {
			if origin == allowedOrigin || allowedOrigin == "*" {
				allowed = true
				break
			}
		}

		if allowed {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		}

		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
