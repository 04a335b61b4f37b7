package store

import (
	"context"
	"errors"
	"time"

	"github.com/adityarajmishra/ShopEase/models"
)

// ErrConcurrencyConflict is returned when a transaction loses an isolation
// race (serialization failure, deadlock victim, duplicate insert from a
// concurrent writer). Callers may retry the whole transaction.
var ErrConcurrencyConflict = errors.New("store: concurrent transaction conflict")

// Store groups all persistence the checkout engine needs. WithinTx runs fn
// inside one transaction: every mutation made through the Tx it passes either
// commits as a whole or rolls back as a whole.
type Store interface {
	WithinTx(ctx context.Context, fn func(tx Tx) error) error

	OrderByID(ctx context.Context, id uint) (*models.Order, error)
	OrdersForUser(ctx context.Context, userID uint) ([]models.Order, error)
	PaymentByOrder(ctx context.Context, orderID uint) (*models.PaymentRecord, error)
}

// Tx is the transactional view handed to WithinTx callbacks. The ForUpdate
// reads take row locks so that stock counters, discount usage and order
// status cannot be lost-updated by a concurrent checkout.
type Tx interface {
	CartForUser(ctx context.Context, userID uint) (*models.Cart, error)
	DeleteCart(ctx context.Context, cartID uint) error
	ExpiredCarts(ctx context.Context, cutoff time.Time) ([]models.Cart, error)

	ProductForUpdate(ctx context.Context, id uint) (*models.Product, error)
	SaveProduct(ctx context.Context, p *models.Product) error

	DiscountByCodeForUpdate(ctx context.Context, code string) (*models.Discount, error)
	SaveDiscount(ctx context.Context, d *models.Discount) error

	CreateOrder(ctx context.Context, o *models.Order) error
	OrderForUpdate(ctx context.Context, id uint) (*models.Order, error)
	SaveOrder(ctx context.Context, o *models.Order) error

	PaymentByOrder(ctx context.Context, orderID uint) (*models.PaymentRecord, error)
	SavePayment(ctx context.Context, p *models.PaymentRecord) error
}
