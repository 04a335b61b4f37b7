package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/adityarajmishra/ShopEase/checkout"
	cartControllers "github.com/adityarajmishra/ShopEase/controllers/cart"
	orderControllers "github.com/adityarajmishra/ShopEase/controllers/order"
	userControllers "github.com/adityarajmishra/ShopEase/controllers/user"
	"github.com/adityarajmishra/ShopEase/middleware"
)

// SetupUserRoutes registers all "/user/*" endpoints. Requires JWT middleware.
func SetupUserRoutes(r *gin.Engine, db *gorm.DB, engine *checkout.Engine) {
	userGroup := r.Group("/user")
	userGroup.Use(middleware.ValidateToken)
	{
		// ──────────────── User Profile ────────────────
		userGroup.GET("/", userControllers.GetUser(db))
		userGroup.PUT("/", userControllers.UpdateUser(db))

		// ──────────────── Shopping Cart ────────────────
		cartGroup := userGroup.Group("/cart")
		{
			cartGroup.GET("/", cartControllers.GetUserCart(db))
			cartGroup.POST("/items", cartControllers.AddCartItem(db))
			cartGroup.PUT("/items/:product_id", cartControllers.UpdateCartItem(db))
			cartGroup.DELETE("/items/:product_id", cartControllers.DeleteCartItem(db))
			cartGroup.DELETE("/", cartControllers.ClearUserCart(db))
		}

		// ──────────────── Checkout & Orders ────────────────
		orderGroup := userGroup.Group("/orders")
		{
			orderGroup.POST("/", orderControllers.PlaceOrderHandler(engine))
			orderGroup.GET("/", orderControllers.GetUserOrdersHandler(engine))
			orderGroup.GET("/:orderID", orderControllers.GetOrderByIDHandler(engine))
			orderGroup.POST("/:orderID/payment", orderControllers.ConfirmPaymentHandler(engine))
			orderGroup.GET("/:orderID/payment", orderControllers.GetPaymentHandler(engine))
			orderGroup.POST("/:orderID/cancel", orderControllers.CancelOrderHandler(engine))
		}
	}
}
