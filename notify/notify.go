// Package notify implements the engine's outbound event port. Delivery is
// fire-and-forget: publishers never block on listeners and never retry.
package notify

import (
	"log/slog"

	"github.com/adityarajmishra/ShopEase/models"
)

// Fanout forwards every event to each registered notifier in order.
type Fanout []interface {
	OrderCreated(order *models.Order)
	OrderCompleted(order *models.Order)
	OrderCancelled(order *models.Order)
	CartExpired(cart *models.Cart)
}

func (f Fanout) OrderCreated(order *models.Order) {
	for _, n := range f {
		n.OrderCreated(order)
	}
}

func (f Fanout) OrderCompleted(order *models.Order) {
	for _, n := range f {
		n.OrderCompleted(order)
	}
}

func (f Fanout) OrderCancelled(order *models.Order) {
	for _, n := range f {
		n.OrderCancelled(order)
	}
}

func (f Fanout) CartExpired(cart *models.Cart) {
	for _, n := range f {
		n.CartExpired(cart)
	}
}

// Logger writes each event as a structured log line.
type Logger struct {
	Log *slog.Logger
}

func (l *Logger) OrderCreated(order *models.Order) {
	l.Log.Info("order created",
		"order_id", order.ID,
		"user_id", order.UserID,
		"final_price", order.FinalPrice.String(),
	)
}

func (l *Logger) OrderCompleted(order *models.Order) {
	l.Log.Info("order completed", "order_id", order.ID, "user_id", order.UserID)
}

func (l *Logger) OrderCancelled(order *models.Order) {
	l.Log.Info("order cancelled", "order_id", order.ID, "user_id", order.UserID)
}

func (l *Logger) CartExpired(cart *models.Cart) {
	l.Log.Info("cart expired", "cart_id", cart.ID, "user_id", cart.UserID)
}
