package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/adityarajmishra/ShopEase/models"
)

// Gorm is the Postgres-backed Store. Transactions run at repeatable read;
// rows the engine mutates are read with SELECT ... FOR UPDATE so concurrent
// checkouts against the same product, discount or order serialize instead of
// losing updates.
type Gorm struct {
	db *gorm.DB
}

func NewGorm(db *gorm.DB) *Gorm {
	return &Gorm{db: db}
}

func (s *Gorm) WithinTx(ctx context.Context, fn func(tx Tx) error) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormTx{db: tx})
	}, &sql.TxOptions{Isolation: sql.LevelRepeatableRead})
	return translateConflict(err)
}

func (s *Gorm) OrderByID(ctx context.Context, id uint) (*models.Order, error) {
	var order models.Order
	err := s.db.WithContext(ctx).Preload("Items").Preload("PaymentRecord").
		First(&order, "id = ?", id).Error
	if err != nil {
		return nil, notFound(err, models.ErrOrderNotFound)
	}
	return &order, nil
}

func (s *Gorm) OrdersForUser(ctx context.Context, userID uint) ([]models.Order, error) {
	var orders []models.Order
	err := s.db.WithContext(ctx).Preload("Items").
		Where("user_id = ?", userID).
		Order("order_date DESC").
		Find(&orders).Error
	return orders, err
}

func (s *Gorm) PaymentByOrder(ctx context.Context, orderID uint) (*models.PaymentRecord, error) {
	var rec models.PaymentRecord
	err := s.db.WithContext(ctx).First(&rec, "order_id = ?", orderID).Error
	if err != nil {
		return nil, notFound(err, models.ErrPaymentNotFound)
	}
	return &rec, nil
}

type gormTx struct {
	db *gorm.DB
}

func (t *gormTx) CartForUser(ctx context.Context, userID uint) (*models.Cart, error) {
	var cart models.Cart
	err := t.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("user_id = ?", userID).
		First(&cart).Error
	if err != nil {
		return nil, notFound(err, models.ErrCartNotFound)
	}
	if err := t.db.WithContext(ctx).
		Where("cart_id = ?", cart.ID).
		Order("added_at").
		Find(&cart.Items).Error; err != nil {
		return nil, err
	}
	return &cart, nil
}

func (t *gormTx) DeleteCart(ctx context.Context, cartID uint) error {
	if err := t.db.WithContext(ctx).Where("cart_id = ?", cartID).
		Delete(&models.CartItem{}).Error; err != nil {
		return err
	}
	return t.db.WithContext(ctx).Delete(&models.Cart{}, cartID).Error
}

func (t *gormTx) ExpiredCarts(ctx context.Context, cutoff time.Time) ([]models.Cart, error) {
	var carts []models.Cart
	err := t.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE", Options: "SKIP LOCKED"}).
		Where("last_accessed < ?", cutoff).
		Find(&carts).Error
	return carts, err
}

func (t *gormTx) ProductForUpdate(ctx context.Context, id uint) (*models.Product, error) {
	var product models.Product
	err := t.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&product, "id = ?", id).Error
	if err != nil {
		return nil, notFound(err, models.ErrProductNotFound)
	}
	return &product, nil
}

func (t *gormTx) SaveProduct(ctx context.Context, p *models.Product) error {
	return t.db.WithContext(ctx).Save(p).Error
}

func (t *gormTx) DiscountByCodeForUpdate(ctx context.Context, code string) (*models.Discount, error) {
	var discount models.Discount
	err := t.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("code = ?", code).
		First(&discount).Error
	if err != nil {
		return nil, notFound(err, models.ErrDiscountNotFound)
	}
	return &discount, nil
}

func (t *gormTx) SaveDiscount(ctx context.Context, d *models.Discount) error {
	return t.db.WithContext(ctx).Save(d).Error
}

func (t *gormTx) CreateOrder(ctx context.Context, o *models.Order) error {
	return t.db.WithContext(ctx).Create(o).Error
}

func (t *gormTx) OrderForUpdate(ctx context.Context, id uint) (*models.Order, error) {
	var order models.Order
	err := t.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&order, "id = ?", id).Error
	if err != nil {
		return nil, notFound(err, models.ErrOrderNotFound)
	}
	if err := t.db.WithContext(ctx).
		Where("order_id = ?", order.ID).
		Find(&order.Items).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

func (t *gormTx) SaveOrder(ctx context.Context, o *models.Order) error {
	return t.db.WithContext(ctx).Omit("Items").Save(o).Error
}

func (t *gormTx) PaymentByOrder(ctx context.Context, orderID uint) (*models.PaymentRecord, error) {
	var rec models.PaymentRecord
	err := t.db.WithContext(ctx).First(&rec, "order_id = ?", orderID).Error
	if err != nil {
		return nil, notFound(err, models.ErrPaymentNotFound)
	}
	return &rec, nil
}

func (t *gormTx) SavePayment(ctx context.Context, p *models.PaymentRecord) error {
	return t.db.WithContext(ctx).Save(p).Error
}

func notFound(err, sentinel error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return sentinel
	}
	return err
}

// translateConflict maps Postgres isolation failures to the retryable
// sentinel: 40001 serialization_failure, 40P01 deadlock_detected, and 23505
// unique_violation (two checkouts racing to consume the same cart or create
// the same per-order payment row).
func translateConflict(err error) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "40001", "40P01", "23505":
			return ErrConcurrencyConflict
		}
	}
	return err
}
