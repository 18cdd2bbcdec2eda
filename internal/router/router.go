package router

import (
	"github.com/gin-gonic/gin"
	"github.com/storefrontlab/storefront-backend/config"
	"github.com/storefrontlab/storefront-backend/internal/app/controller"
	"github.com/storefrontlab/storefront-backend/internal/app/model"
	"github.com/storefrontlab/storefront-backend/internal/middleware"
)

type Router struct {
	authController         *controller.AuthController
	collectionController   *controller.CollectionController
	productController      *controller.ProductController
	productImageController *controller.ProductImageController
	reviewController       *controller.ReviewController
	tagController          *controller.TagController
	cartController         *controller.CartController
	orderController        *controller.OrderController
	customerController     *controller.CustomerController
	adminController        *controller.AdminController
	uploadController       *controller.UploadController
	authMiddleware         *middleware.AuthMiddleware
	config                 *config.Config
}

func NewRouter(
	authController *controller.AuthController,
	collectionController *controller.CollectionController,
	productController *controller.ProductController,
	productImageController *controller.ProductImageController,
	reviewController *controller.ReviewController,
	tagController *controller.TagController,
	cartController *controller.CartController,
	orderController *controller.OrderController,
	customerController *controller.CustomerController,
	adminController *controller.AdminController,
	uploadController *controller.UploadController,
	authMiddleware *middleware.AuthMiddleware,
	cfg *config.Config,
) *Router {
	return &Router{
		authController:         authController,
		collectionController:   collectionController,
		productController:      productController,
		productImageController: productImageController,
		reviewController:       reviewController,
		tagController:          tagController,
		cartController:         cartController,
		orderController:        orderController,
		customerController:     customerController,
		adminController:        adminController,
		uploadController:       uploadController,
		authMiddleware:         authMiddleware,
		config:                 cfg,
	}
}

func (r *Router) Setup() *gin.Engine {
	gin.SetMode(r.config.Server.GinMode)

	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.LoggingMiddleware())
	router.Use(corsMiddleware(r.config.CORS.AllowedOrigins))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "healthy",
			"message": "Storefront API is running",
		})
	})

	admin := r.authMiddleware.RequireRole(string(model.RoleAdmin))

	v1 := router.Group("/api/v1")
	{
		auth := v1.Group("/auth")
		{
			auth.POST("/register", r.authController.Register)
			auth.POST("/login", r.authController.Login)
			auth.GET("/me", r.authMiddleware.Authenticate(), r.authController.Me)
		}

		collections := v1.Group("/collections")
		{
			collections.GET("", r.collectionController.List)
			collections.GET("/:id", r.collectionController.Get)
			collections.POST("", r.authMiddleware.Authenticate(), admin, r.collectionController.Create)
			collections.PATCH("/:id", r.authMiddleware.Authenticate(), admin, r.collectionController.Update)
			collections.DELETE("/:id", r.authMiddleware.Authenticate(), admin, r.collectionController.Delete)
		}

		products := v1.Group("/products")
		{
			products.GET("", r.productController.List)
			products.GET("/:id", r.productController.Get)
			products.POST("", r.authMiddleware.Authenticate(), admin, r.productController.Create)
			products.PATCH("/:id", r.authMiddleware.Authenticate(), admin, r.productController.Update)
			products.DELETE("/:id", r.authMiddleware.Authenticate(), admin, r.productController.Delete)

			products.GET("/:id/images", r.productImageController.List)
			products.POST("/:id/images", r.authMiddleware.Authenticate(), admin, r.productImageController.Create)
			products.DELETE("/:id/images/:image_id", r.authMiddleware.Authenticate(), admin, r.productImageController.Delete)

			products.GET("/:id/reviews", r.reviewController.List)
			products.GET("/:id/reviews/:review_id", r.reviewController.Get)
			products.POST("/:id/reviews", r.reviewController.Create)
			products.DELETE("/:id/reviews/:review_id", r.authMiddleware.Authenticate(), admin, r.reviewController.Delete)

			products.GET("/:id/tags", r.tagController.ListForProduct)
			products.POST("/:id/tags", r.authMiddleware.Authenticate(), admin, r.tagController.Attach)
			products.DELETE("/:id/tags/:tag_id", r.authMiddleware.Authenticate(), admin, r.tagController.Detach)
		}

		tags := v1.Group("/tags")
		{
			tags.GET("", r.tagController.List)
			tags.POST("", r.authMiddleware.Authenticate(), admin, r.tagController.Create)
			tags.DELETE("/:id", r.authMiddleware.Authenticate(), admin, r.tagController.Delete)
		}

		// Carts are anonymous: the uuid token is the only credential.
		carts := v1.Group("/carts")
		{
			carts.POST("", r.cartController.Create)
			carts.GET("/:cart_id", r.cartController.Get)
			carts.DELETE("/:cart_id", r.cartController.Delete)
			carts.POST("/:cart_id/items", r.cartController.AddItem)
			carts.PATCH("/:cart_id/items/:item_id", r.cartController.UpdateItem)
			carts.DELETE("/:cart_id/items/:item_id", r.cartController.RemoveItem)
		}

		orders := v1.Group("/orders")
		orders.Use(r.authMiddleware.Authenticate())
		{
			orders.POST("", r.orderController.Create)
			orders.GET("", r.orderController.List)
			orders.GET("/:id", r.orderController.Get)
			orders.PATCH("/:id", admin, r.orderController.UpdatePaymentStatus)
			orders.DELETE("/:id", admin, r.orderController.Delete)
		}

		customers := v1.Group("/customers")
		customers.Use(r.authMiddleware.Authenticate())
		{
			// Register /me before /:id so gin matches the static segment.
			customers.GET("/me", r.customerController.Me)
			customers.PUT("/me", r.customerController.UpdateMe)
			customers.GET("", admin, r.customerController.List)
			customers.GET("/:id", admin, r.customerController.Get)
			customers.PUT("/:id", admin, r.customerController.Update)
			customers.DELETE("/:id", admin, r.customerController.Delete)
			customers.GET("/:id/history",
				r.authMiddleware.RequireHistoryAccess(),
				r.customerController.History,
			)
		}

		adminGroup := v1.Group("/admin")
		adminGroup.Use(r.authMiddleware.Authenticate(), admin)
		{
			adminGroup.GET("/dashboard", r.adminController.Dashboard)
			adminGroup.POST("/products/clear-inventory", r.adminController.ClearInventory)
			adminGroup.GET("/products/export", r.adminController.ExportProducts)
		}

		uploads := v1.Group("/uploads")
		uploads.Use(r.authMiddleware.Authenticate(), admin)
		{
			uploads.POST("/images", r.uploadController.GeneratePresignedURL)
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
