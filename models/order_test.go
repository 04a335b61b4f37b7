package models

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

var orderNow = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

func snapshotFixture() (*Cart, map[uint]*Product) {
	cart := &Cart{ID: 3, UserID: 1, Items: []CartItem{
		{ProductID: 1, Quantity: 2},
		{ProductID: 2, Quantity: 1},
	}}
	products := map[uint]*Product{
		1: {ID: 1, Name: "widget", Price: decimal.RequireFromString("99.99")},
		2: {ID: 2, Name: "gadget", Price: decimal.RequireFromString("10.02")},
	}
	return cart, products
}

func TestOrderStatusTransitions(t *testing.T) {
	tests := []struct {
		from OrderStatus
		to   OrderStatus
		want bool
	}{
		{OrderStatusPending, OrderStatusCompleted, true},
		{OrderStatusPending, OrderStatusCancelled, true},
		{OrderStatusPending, OrderStatusPending, false},
		{OrderStatusCompleted, OrderStatusCancelled, false},
		{OrderStatusCompleted, OrderStatusPending, false},
		{OrderStatusCompleted, OrderStatusCompleted, false},
		{OrderStatusCancelled, OrderStatusCompleted, false},
		{OrderStatusCancelled, OrderStatusPending, false},
		{OrderStatusCancelled, OrderStatusCancelled, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"_to_"+string(tt.to), func(t *testing.T) {
			require.Equal(t, tt.want, tt.from.CanTransitionTo(tt.to))

			o := Order{Status: tt.from}
			err := o.UpdateStatus(tt.to)
			if tt.want {
				require.NoError(t, err)
				require.Equal(t, tt.to, o.Status)
			} else {
				require.ErrorIs(t, err, ErrInvalidOrderState)
				require.Equal(t, tt.from, o.Status)
			}
		})
	}
}

func TestNewOrderFromCart(t *testing.T) {
	cart, products := snapshotFixture()

	order, err := NewOrderFromCart(cart, products, orderNow)
	require.NoError(t, err)

	require.Equal(t, cart.UserID, order.UserID)
	require.Equal(t, OrderStatusPending, order.Status)
	require.Equal(t, orderNow, order.OrderDate)
	require.Len(t, order.Items, 2)
	require.True(t, order.TotalPrice.Equal(decimal.RequireFromString("210.00")), "got %s", order.TotalPrice)
	require.True(t, order.DiscountAmount.IsZero())
	require.True(t, order.FinalPrice.Equal(order.TotalPrice))

	// Line prices are frozen at placement: later price changes do not
	// touch the order.
	products[1].Price = decimal.RequireFromString("1.00")
	require.True(t, order.Items[0].UnitPrice.Equal(decimal.RequireFromString("99.99")))
}

func TestNewOrderFromCartEmpty(t *testing.T) {
	_, err := NewOrderFromCart(&Cart{UserID: 1}, nil, orderNow)
	require.ErrorIs(t, err, ErrEmptyCart)
}

func TestNewOrderFromCartMissingProduct(t *testing.T) {
	cart := &Cart{UserID: 1, Items: []CartItem{{ProductID: 42, Quantity: 1}}}
	_, err := NewOrderFromCart(cart, map[uint]*Product{}, orderNow)
	require.ErrorIs(t, err, ErrProductNotFound)
}

func TestOrderApplyDiscount(t *testing.T) {
	cart := &Cart{UserID: 1, Items: []CartItem{{ProductID: 1, Quantity: 2}}}
	products := map[uint]*Product{1: {ID: 1, Price: decimal.RequireFromString("99.99")}}

	order, err := NewOrderFromCart(cart, products, orderNow)
	require.NoError(t, err)
	require.True(t, order.TotalPrice.Equal(decimal.RequireFromString("199.98")))

	discount := &Discount{ID: 5, Percentage: decimal.RequireFromString("10")}
	require.NoError(t, order.ApplyDiscount(discount))

	require.Equal(t, discount.ID, *order.DiscountID)
	require.True(t, order.DiscountAmount.Equal(decimal.RequireFromString("20.00")), "got %s", order.DiscountAmount)
	require.True(t, order.FinalPrice.Equal(decimal.RequireFromString("179.98")), "got %s", order.FinalPrice)
}

func TestOrderApplyDiscountNonPending(t *testing.T) {
	for _, status := range []OrderStatus{OrderStatusCompleted, OrderStatusCancelled} {
		o := Order{Status: status, TotalPrice: decimal.RequireFromString("50.00")}
		err := o.ApplyDiscount(&Discount{Percentage: decimal.RequireFromString("10")})
		require.ErrorIs(t, err, ErrInvalidOrderState)
		require.Nil(t, o.DiscountID)
	}
}

func TestOrderIsModifiable(t *testing.T) {
	require.True(t, (&Order{Status: OrderStatusPending}).IsModifiable())
	require.False(t, (&Order{Status: OrderStatusCompleted}).IsModifiable())
	require.False(t, (&Order{Status: OrderStatusCancelled}).IsModifiable())
}
