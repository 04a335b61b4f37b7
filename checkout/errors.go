package checkout

import "errors"

var (
	// ErrInvalidDiscount covers expired, not-yet-active and exhausted codes.
	ErrInvalidDiscount = errors.New("checkout: discount code is expired or exceeded usage limit")

	// ErrPaymentDeclined means the gateway refused settlement. The order
	// stays pending and payment may be retried.
	ErrPaymentDeclined = errors.New("checkout: payment was declined")
)

// InsufficientStockError names the first product that could not be served.
// Nothing has been reserved when it is returned.
type InsufficientStockError struct {
	Product string
}

func (e *InsufficientStockError) Error() string {
	return "checkout: not enough stock for product: " + e.Product
}
