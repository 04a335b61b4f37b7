package checkout

import (
	"context"
	"time"

	"github.com/adityarajmishra/ShopEase/models"
)

// Processor settles an order with the payment gateway.
type Processor interface {
	Process(ctx context.Context, order *models.Order) (PaymentResult, error)
}

type PaymentResult struct {
	Successful     bool
	TransactionRef string
}

// Notifier is the outbound event port. All calls are fire-and-forget: the
// engine never waits on delivery and ignores listener failures. Fan-out to
// actual listeners is the implementation's concern.
type Notifier interface {
	OrderCreated(order *models.Order)
	OrderCompleted(order *models.Order)
	OrderCancelled(order *models.Order)
	CartExpired(cart *models.Cart)
}

// NopNotifier discards all events.
type NopNotifier struct{}

func (NopNotifier) OrderCreated(*models.Order)   {}
func (NopNotifier) OrderCompleted(*models.Order) {}
func (NopNotifier) OrderCancelled(*models.Order) {}
func (NopNotifier) CartExpired(*models.Cart)     {}

// Clock supplies "now" so validity windows and timestamps are testable.
type Clock func() time.Time
