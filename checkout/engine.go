package checkout

import (
	"context"
	"errors"
	"time"

	"github.com/adityarajmishra/ShopEase/models"
	"github.com/adityarajmishra/ShopEase/store"
)

// maxAttempts bounds retries of transactions that lose an isolation race.
const maxAttempts = 3

// Engine turns a mutable cart into an immutable order while keeping cart
// contents, stock levels, discount usage and order status consistent. Every
// operation runs as one store transaction: either all of its writes commit
// or none do.
type Engine struct {
	store    store.Store
	payments Processor
	notifier Notifier
	clock    Clock
}

func NewEngine(st store.Store, payments Processor, notifier Notifier, clock Clock) *Engine {
	if notifier == nil {
		notifier = NopNotifier{}
	}
	if clock == nil {
		clock = time.Now
	}
	return &Engine{store: st, payments: payments, notifier: notifier, clock: clock}
}

// PlaceOrder converts the user's cart into a pending order: it re-validates
// stock for every line under row locks, applies the discount code if one is
// given, snapshots prices, reserves stock, and consumes the cart. The cart
// row lock makes a double-submit lose cleanly: the second transaction finds
// the cart already gone.
func (e *Engine) PlaceOrder(ctx context.Context, userID uint, discountCode string) (*models.Order, error) {
	var placed *models.Order
	err := e.withRetry(ctx, func(tx store.Tx) error {
		placed = nil

		cart, err := tx.CartForUser(ctx, userID)
		if err != nil {
			return err
		}
		if len(cart.Items) == 0 {
			return models.ErrEmptyCart
		}

		// All-or-nothing pre-check: lock every product first, fail before
		// any stock moves.
		products := make(map[uint]*models.Product, len(cart.Items))
		for _, item := range cart.Items {
			product, err := tx.ProductForUpdate(ctx, item.ProductID)
			if err != nil {
				return err
			}
			if !product.HasStock(item.Quantity) {
				return &InsufficientStockError{Product: product.Name}
			}
			products[product.ID] = product
		}

		now := e.clock()
		order, err := models.NewOrderFromCart(cart, products, now)
		if err != nil {
			return err
		}

		if discountCode != "" {
			discount, err := tx.DiscountByCodeForUpdate(ctx, discountCode)
			if err != nil {
				return err
			}
			if !discount.IsValid(now) {
				return ErrInvalidDiscount
			}
			if err := order.ApplyDiscount(discount); err != nil {
				return err
			}
			discount.IncrementUsage()
			if err := tx.SaveDiscount(ctx, discount); err != nil {
				return err
			}
		}

		if err := tx.CreateOrder(ctx, order); err != nil {
			return err
		}

		for _, line := range order.Items {
			product := products[line.ProductID]
			if err := product.ReduceStock(line.Quantity); err != nil {
				return &InsufficientStockError{Product: product.Name}
			}
			if err := tx.SaveProduct(ctx, product); err != nil {
				return err
			}
		}

		if err := tx.DeleteCart(ctx, cart.ID); err != nil {
			return err
		}

		placed = order
		return nil
	})
	if err != nil {
		return nil, err
	}

	e.notifier.OrderCreated(placed)
	return placed, nil
}

// ConfirmPayment settles a pending order. Success completes the order; a
// decline leaves it pending with its payment record marked failed, and the
// caller gets ErrPaymentDeclined alongside the unchanged order. Payment may
// be retried any number of times.
func (e *Engine) ConfirmPayment(ctx context.Context, orderID uint) (*models.Order, error) {
	var (
		order    *models.Order
		declined bool
	)
	err := e.withRetry(ctx, func(tx store.Tx) error {
		order, declined = nil, false

		o, err := tx.OrderForUpdate(ctx, orderID)
		if err != nil {
			return err
		}
		if o.Status != models.OrderStatusPending {
			return models.ErrInvalidOrderState
		}

		now := e.clock()
		rec, err := tx.PaymentByOrder(ctx, o.ID)
		if errors.Is(err, models.ErrPaymentNotFound) {
			rec = models.NewPaymentRecord(o, now)
		} else if err != nil {
			return err
		}

		result, err := e.payments.Process(ctx, o)
		if err != nil {
			return err
		}

		if result.Successful {
			rec.MarkSuccessful(result.TransactionRef, now)
			if err := o.UpdateStatus(models.OrderStatusCompleted); err != nil {
				return err
			}
			if err := tx.SaveOrder(ctx, o); err != nil {
				return err
			}
		} else {
			rec.MarkFailed(now)
			declined = true
		}
		if err := tx.SavePayment(ctx, rec); err != nil {
			return err
		}

		order = o
		return nil
	})
	if err != nil {
		return nil, err
	}

	if declined {
		return order, ErrPaymentDeclined
	}
	e.notifier.OrderCompleted(order)
	return order, nil
}

// CancelOrder cancels a pending order and releases every line's stock,
// compensating the reservation made at placement. Discount usage is not
// given back.
func (e *Engine) CancelOrder(ctx context.Context, orderID uint) (*models.Order, error) {
	var cancelled *models.Order
	err := e.withRetry(ctx, func(tx store.Tx) error {
		cancelled = nil

		o, err := tx.OrderForUpdate(ctx, orderID)
		if err != nil {
			return err
		}
		if o.Status != models.OrderStatusPending {
			return models.ErrInvalidOrderState
		}

		for _, line := range o.Items {
			product, err := tx.ProductForUpdate(ctx, line.ProductID)
			if err != nil {
				return err
			}
			product.RestoreStock(line.Quantity)
			if err := tx.SaveProduct(ctx, product); err != nil {
				return err
			}
		}

		if err := o.UpdateStatus(models.OrderStatusCancelled); err != nil {
			return err
		}
		if err := tx.SaveOrder(ctx, o); err != nil {
			return err
		}

		cancelled = o
		return nil
	})
	if err != nil {
		return nil, err
	}

	e.notifier.OrderCancelled(cancelled)
	return cancelled, nil
}

// OrderByID loads an order with its lines and payment record.
func (e *Engine) OrderByID(ctx context.Context, orderID uint) (*models.Order, error) {
	return e.store.OrderByID(ctx, orderID)
}

// OrdersForUser lists a user's orders, newest first.
func (e *Engine) OrdersForUser(ctx context.Context, userID uint) ([]models.Order, error) {
	return e.store.OrdersForUser(ctx, userID)
}

// PaymentByOrder loads the payment record for an order.
func (e *Engine) PaymentByOrder(ctx context.Context, orderID uint) (*models.PaymentRecord, error) {
	return e.store.PaymentByOrder(ctx, orderID)
}

// withRetry re-runs the transaction on concurrency conflicts, up to
// maxAttempts. Every other error is terminal for the call.
func (e *Engine) withRetry(ctx context.Context, fn func(tx store.Tx) error) error {
	var err error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		err = e.store.WithinTx(ctx, fn)
		if !errors.Is(err, store.ErrConcurrencyConflict) {
			return err
		}
	}
	return err
}
