package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/adityarajmishra/ShopEase/checkout"
	"github.com/adityarajmishra/ShopEase/notify"
)

// SetupRoutes is the single entry-point that wires up Auth, User, Order and
// Admin route groups.
func SetupRoutes(r *gin.Engine, db *gorm.DB, engine *checkout.Engine, hub *notify.Hub) {
	// Public auth routes (no middleware)
	SetupAuthRoutes(r, db)

	// User routes (JWT-protected): profile, cart, orders, browsing
	SetupUserRoutes(r, db, engine)

	// Admin routes (API-key-protected)
	SetupAdminRoutes(r, db, hub)
}
