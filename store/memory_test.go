package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/adityarajmishra/ShopEase/models"
)

func TestMemoryRollsBackOnError(t *testing.T) {
	ctx := context.Background()
	mem := NewMemory()
	product := mem.PutProduct(models.Product{
		Name:          "Keyboard",
		Price:         decimal.RequireFromString("49.99"),
		StockQuantity: 7,
		Status:        models.ProductStatusActive,
	})
	cart := mem.PutCart(models.Cart{
		UserID:       1,
		Items:        []models.CartItem{{ProductID: product.ID, Quantity: 1}},
		LastAccessed: time.Now(),
	})

	boom := errors.New("boom")
	err := mem.WithinTx(ctx, func(tx Tx) error {
		p, err := tx.ProductForUpdate(ctx, product.ID)
		if err != nil {
			return err
		}
		p.StockQuantity = 0
		if err := tx.SaveProduct(ctx, p); err != nil {
			return err
		}
		if err := tx.DeleteCart(ctx, cart.ID); err != nil {
			return err
		}
		if err := tx.CreateOrder(ctx, &models.Order{UserID: 1, Status: models.OrderStatusPending}); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	got, ok := mem.ProductByID(product.ID)
	require.True(t, ok)
	require.Equal(t, 7, got.StockQuantity)
	require.Equal(t, 1, mem.CartCount())
	require.Zero(t, mem.OrderCount())
}

func TestMemoryCommitsOnSuccess(t *testing.T) {
	ctx := context.Background()
	mem := NewMemory()
	product := mem.PutProduct(models.Product{
		Name:          "Keyboard",
		Price:         decimal.RequireFromString("49.99"),
		StockQuantity: 7,
		Status:        models.ProductStatusActive,
	})

	var orderID uint
	err := mem.WithinTx(ctx, func(tx Tx) error {
		p, err := tx.ProductForUpdate(ctx, product.ID)
		if err != nil {
			return err
		}
		if err := p.ReduceStock(2); err != nil {
			return err
		}
		if err := tx.SaveProduct(ctx, p); err != nil {
			return err
		}
		order := &models.Order{
			UserID:     1,
			Status:     models.OrderStatusPending,
			Items:      []models.OrderItem{{ProductID: product.ID, Quantity: 2, UnitPrice: p.Price}},
			TotalPrice: decimal.RequireFromString("99.98"),
			FinalPrice: decimal.RequireFromString("99.98"),
			OrderDate:  time.Now(),
		}
		if err := tx.CreateOrder(ctx, order); err != nil {
			return err
		}
		orderID = order.ID
		return nil
	})
	require.NoError(t, err)
	require.NotZero(t, orderID)

	got, _ := mem.ProductByID(product.ID)
	require.Equal(t, 5, got.StockQuantity)

	order, err := mem.OrderByID(ctx, orderID)
	require.NoError(t, err)
	require.Len(t, order.Items, 1)
	require.Equal(t, orderID, order.Items[0].OrderID)
}

func TestMemoryNotFound(t *testing.T) {
	ctx := context.Background()
	mem := NewMemory()

	_, err := mem.OrderByID(ctx, 1)
	require.ErrorIs(t, err, models.ErrOrderNotFound)
	_, err = mem.PaymentByOrder(ctx, 1)
	require.ErrorIs(t, err, models.ErrPaymentNotFound)

	err = mem.WithinTx(ctx, func(tx Tx) error {
		if _, err := tx.CartForUser(ctx, 1); !errors.Is(err, models.ErrCartNotFound) {
			return errors.New("expected cart miss")
		}
		if _, err := tx.ProductForUpdate(ctx, 1); !errors.Is(err, models.ErrProductNotFound) {
			return errors.New("expected product miss")
		}
		if _, err := tx.DiscountByCodeForUpdate(ctx, "NOPE"); !errors.Is(err, models.ErrDiscountNotFound) {
			return errors.New("expected discount miss")
		}
		return nil
	})
	require.NoError(t, err)
}
