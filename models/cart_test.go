package models

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

var cartNow = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

func TestCartAddItem(t *testing.T) {
	widget := &Product{ID: 1, Name: "widget", Price: decimal.RequireFromString("9.99")}
	gadget := &Product{ID: 2, Name: "gadget", Price: decimal.RequireFromString("24.50")}

	cart := Cart{ID: 7, UserID: 1}

	require.NoError(t, cart.AddItem(widget, 2, cartNow))
	require.NoError(t, cart.AddItem(gadget, 1, cartNow))
	require.Len(t, cart.Items, 2)
	require.Equal(t, cartNow, cart.LastAccessed)

	// Adding the same product accumulates onto the existing line.
	later := cartNow.Add(time.Minute)
	require.NoError(t, cart.AddItem(widget, 3, later))
	require.Len(t, cart.Items, 2)
	require.Equal(t, 5, cart.Item(widget.ID).Quantity)
	require.Equal(t, later, cart.LastAccessed)

	require.ErrorIs(t, cart.AddItem(widget, 0, later), ErrInvalidQuantity)
}

func TestCartUpdateItemQuantity(t *testing.T) {
	widget := &Product{ID: 1, Price: decimal.RequireFromString("9.99")}
	cart := Cart{UserID: 1}
	require.NoError(t, cart.AddItem(widget, 2, cartNow))

	require.NoError(t, cart.UpdateItemQuantity(1, 7, cartNow))
	require.Equal(t, 7, cart.Item(1).Quantity)

	// Unknown product is a no-op, not an error.
	require.NoError(t, cart.UpdateItemQuantity(99, 3, cartNow))
	require.Len(t, cart.Items, 1)

	require.ErrorIs(t, cart.UpdateItemQuantity(1, -1, cartNow), ErrInvalidQuantity)
	require.Equal(t, 7, cart.Item(1).Quantity)
}

func TestCartRemoveItem(t *testing.T) {
	widget := &Product{ID: 1, Price: decimal.RequireFromString("9.99")}
	cart := Cart{UserID: 1}
	require.NoError(t, cart.AddItem(widget, 2, cartNow))

	cart.RemoveItem(1, cartNow)
	require.Empty(t, cart.Items)

	cart.RemoveItem(99, cartNow) // absent: no-op
	require.Empty(t, cart.Items)
}

func TestCartCalculateTotal(t *testing.T) {
	prices := map[uint]decimal.Decimal{
		1: decimal.RequireFromString("99.99"),
		2: decimal.RequireFromString("0.50"),
	}
	priceOf := func(id uint) (decimal.Decimal, error) { return prices[id], nil }

	cart := Cart{Items: []CartItem{
		{ProductID: 1, Quantity: 2},
		{ProductID: 2, Quantity: 3},
	}}

	total, err := cart.CalculateTotal(priceOf)
	require.NoError(t, err)
	require.True(t, total.Equal(decimal.RequireFromString("201.48")), "got %s", total)

	// Cart totals are live: a later price change shows up immediately.
	prices[1] = decimal.RequireFromString("79.99")
	total, err = cart.CalculateTotal(priceOf)
	require.NoError(t, err)
	require.True(t, total.Equal(decimal.RequireFromString("161.48")), "got %s", total)
}

func TestCartIsExpired(t *testing.T) {
	cart := Cart{LastAccessed: cartNow}

	require.False(t, cart.IsExpired(24, cartNow.Add(23*time.Hour)))
	require.False(t, cart.IsExpired(24, cartNow.Add(24*time.Hour)))
	require.True(t, cart.IsExpired(24, cartNow.Add(24*time.Hour+time.Second)))
}
