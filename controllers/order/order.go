package orderControllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/adityarajmishra/ShopEase/checkout"
	"github.com/adityarajmishra/ShopEase/logging"
	"github.com/adityarajmishra/ShopEase/middleware"
	"github.com/adityarajmishra/ShopEase/models"
	"github.com/adityarajmishra/ShopEase/store"
)

type PlaceOrderRequest struct {
	DiscountCode string `json:"discount_code"`
}

// POST /user/orders
func PlaceOrderHandler(engine *checkout.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.UserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		var req PlaceOrderRequest
		if c.Request.ContentLength > 0 {
			if err := c.ShouldBindJSON(&req); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
				return
			}
		}

		order, err := engine.PlaceOrder(c.Request.Context(), userID, req.DiscountCode)
		if err != nil {
			respondCheckoutError(c, err)
			return
		}

		logging.From(c).Info("order placed", "order_id", order.ID, "user_id", userID)
		c.JSON(http.StatusCreated, order)
	}
}

// POST /user/orders/:orderID/payment
func ConfirmPaymentHandler(engine *checkout.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		orderID, ok := ownOrderID(c, engine)
		if !ok {
			return
		}

		order, err := engine.ConfirmPayment(c.Request.Context(), orderID)
		if errors.Is(err, checkout.ErrPaymentDeclined) {
			// The order stays pending; the caller may retry.
			c.JSON(http.StatusPaymentRequired, gin.H{
				"error": "Payment was declined",
				"order": order,
			})
			return
		}
		if err != nil {
			respondCheckoutError(c, err)
			return
		}

		c.JSON(http.StatusOK, order)
	}
}

// POST /user/orders/:orderID/cancel
func CancelOrderHandler(engine *checkout.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		orderID, ok := ownOrderID(c, engine)
		if !ok {
			return
		}

		order, err := engine.CancelOrder(c.Request.Context(), orderID)
		if err != nil {
			respondCheckoutError(c, err)
			return
		}

		c.JSON(http.StatusOK, order)
	}
}

// GET /user/orders
func GetUserOrdersHandler(engine *checkout.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.UserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		orders, err := engine.OrdersForUser(c.Request.Context(), userID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch orders"})
			return
		}
		c.JSON(http.StatusOK, orders)
	}
}

// GET /user/orders/:orderID
func GetOrderByIDHandler(engine *checkout.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		orderID, ok := ownOrderID(c, engine)
		if !ok {
			return
		}

		order, err := engine.OrderByID(c.Request.Context(), orderID)
		if err != nil {
			respondCheckoutError(c, err)
			return
		}
		c.JSON(http.StatusOK, order)
	}
}

// GET /user/orders/:orderID/payment
func GetPaymentHandler(engine *checkout.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		orderID, ok := ownOrderID(c, engine)
		if !ok {
			return
		}

		rec, err := engine.PaymentByOrder(c.Request.Context(), orderID)
		if err != nil {
			respondCheckoutError(c, err)
			return
		}
		c.JSON(http.StatusOK, rec)
	}
}

// GET /admin/orders
func GetAllOrdersHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var orders []models.Order
		if err := db.
			Preload("Items").
			Preload("PaymentRecord").
			Order("order_date DESC").
			Find(&orders).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, orders)
	}
}

// ownOrderID parses :orderID and rejects access to another user's order.
// Missing and foreign orders look the same to the caller.
func ownOrderID(c *gin.Context, engine *checkout.Engine) (uint, bool) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return 0, false
	}

	id, err := strconv.ParseUint(c.Param("orderID"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order id"})
		return 0, false
	}

	order, err := engine.OrderByID(c.Request.Context(), uint(id))
	if err != nil {
		respondCheckoutError(c, err)
		return 0, false
	}
	if order.UserID != userID {
		c.JSON(http.StatusNotFound, gin.H{"error": models.ErrOrderNotFound.Error()})
		return 0, false
	}
	return uint(id), true
}

// respondCheckoutError maps engine errors onto HTTP statuses: missing
// resources become 404, business-rule violations 400/409, a conflict that
// survived its retries 503, everything else 500.
func respondCheckoutError(c *gin.Context, err error) {
	var stockErr *checkout.InsufficientStockError
	switch {
	case errors.Is(err, models.ErrCartNotFound),
		errors.Is(err, models.ErrOrderNotFound),
		errors.Is(err, models.ErrProductNotFound),
		errors.Is(err, models.ErrDiscountNotFound),
		errors.Is(err, models.ErrPaymentNotFound),
		errors.Is(err, models.ErrUserNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.As(err, &stockErr),
		errors.Is(err, models.ErrEmptyCart),
		errors.Is(err, models.ErrInvalidQuantity),
		errors.Is(err, checkout.ErrInvalidDiscount):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, models.ErrInvalidOrderState):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, store.ErrConcurrencyConflict):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Temporary conflict, please retry"})
	default:
		logging.From(c).Error("checkout failed", "error", err.Error())
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal error"})
	}
}
