package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	discountControllers "github.com/adityarajmishra/ShopEase/controllers/discount"
	orderControllers "github.com/adityarajmishra/ShopEase/controllers/order"
	productControllers "github.com/adityarajmishra/ShopEase/controllers/product"
	"github.com/adityarajmishra/ShopEase/middleware"
	"github.com/adityarajmishra/ShopEase/notify"
)

// SetupAdminRoutes registers all "/admin/*" endpoints. Requires the API key.
func SetupAdminRoutes(r *gin.Engine, db *gorm.DB, hub *notify.Hub) {
	admin := r.Group("/admin")
	admin.Use(middleware.ValidateAPIKey)
	{
		// ──────────────── Product Management ────────────────
		products := admin.Group("/products")
		{
			products.POST("/", productControllers.CreateProduct(db))
			products.PUT("/:id", productControllers.UpdateProduct(db))
			products.POST("/:id/discontinue", productControllers.DiscontinueProduct(db))
			products.DELETE("/:id", productControllers.DeleteProduct(db))
			products.GET("/export", productControllers.ExportProductsToExcel(db))
		}

		// ──────────────── Discount Management ────────────────
		discounts := admin.Group("/discounts")
		{
			discounts.GET("/", discountControllers.GetDiscounts(db))
			discounts.POST("/", discountControllers.CreateDiscount(db))
			discounts.PUT("/:id", discountControllers.UpdateDiscount(db))
			discounts.DELETE("/:id", discountControllers.DeleteDiscount(db))
		}

		// ──────────────── Orders ────────────────
		admin.GET("/orders", orderControllers.GetAllOrdersHandler(db))

		// Live order feed for the admin dashboard
		admin.GET("/orders/ws", hub.Handler)
	}
}
