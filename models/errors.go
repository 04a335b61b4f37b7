package models

import "errors"

var (
	ErrCartNotFound     = errors.New("cart not found")
	ErrOrderNotFound    = errors.New("order not found")
	ErrProductNotFound  = errors.New("product not found")
	ErrDiscountNotFound = errors.New("discount not found")
	ErrPaymentNotFound  = errors.New("payment record not found")
	ErrUserNotFound     = errors.New("user not found")

	ErrInsufficientStock = errors.New("insufficient stock")
	ErrInvalidQuantity   = errors.New("quantity must be positive")
	ErrEmptyCart         = errors.New("cannot create order from empty cart")
	ErrInvalidOrderState = errors.New("invalid order state transition")
)
