package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	discountControllers "github.com/adityarajmishra/ShopEase/controllers/discount"
	productControllers "github.com/adityarajmishra/ShopEase/controllers/product"
	userControllers "github.com/adityarajmishra/ShopEase/controllers/user"
)

// SetupAuthRoutes registers the public endpoints: account creation, login
// and unauthenticated browsing.
func SetupAuthRoutes(r *gin.Engine, db *gorm.DB) {
	auth := r.Group("/auth")
	{
		auth.POST("/register", userControllers.Register(db))
		auth.POST("/login", userControllers.Login(db))
	}

	r.GET("/products", productControllers.GetProducts(db))
	r.GET("/products/:id", productControllers.GetProductByID(db))
	r.GET("/discounts/:code/validity", discountControllers.CheckDiscountValidity(db))
}
