package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Cart struct {
	ID           uint       `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID       uint       `gorm:"uniqueIndex;not null" json:"user_id"` // one cart per user
	Items        []CartItem `gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE" json:"items"`
	LastAccessed time.Time  `gorm:"not null" json:"last_accessed"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

type CartItem struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	CartID    uint      `gorm:"index:idx_cart_product,unique" json:"cart_id"`
	ProductID uint      `gorm:"index:idx_cart_product,unique" json:"product_id"`
	Quantity  int       `gorm:"not null" json:"quantity"`
	AddedAt   time.Time `json:"added_at"`
}

// AddItem puts quantity units of the product into the cart, accumulating
// onto an existing line when one exists.
func (c *Cart) AddItem(product *Product, quantity int, now time.Time) error {
	if quantity <= 0 {
		return ErrInvalidQuantity
	}
	for i := range c.Items {
		if c.Items[i].ProductID == product.ID {
			c.Items[i].Quantity += quantity
			c.Touch(now)
			return nil
		}
	}
	c.Items = append(c.Items, CartItem{
		CartID:    c.ID,
		ProductID: product.ID,
		Quantity:  quantity,
		AddedAt:   now,
	})
	c.Touch(now)
	return nil
}

// UpdateItemQuantity replaces the quantity of the matching line. Missing
// lines are a no-op.
func (c *Cart) UpdateItemQuantity(productID uint, quantity int, now time.Time) error {
	if quantity <= 0 {
		return ErrInvalidQuantity
	}
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			c.Items[i].Quantity = quantity
			c.Touch(now)
			return nil
		}
	}
	return nil
}

// RemoveItem drops the line for the product, if present.
func (c *Cart) RemoveItem(productID uint, now time.Time) {
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			c.Items = append(c.Items[:i], c.Items[i+1:]...)
			c.Touch(now)
			return
		}
	}
}

// Item returns the line for the product, or nil.
func (c *Cart) Item(productID uint) *CartItem {
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			return &c.Items[i]
		}
	}
	return nil
}

// CalculateTotal sums quantity * current unit price over every line. Cart
// totals are live: they follow later price changes, unlike order totals.
func (c *Cart) CalculateTotal(priceOf func(productID uint) (decimal.Decimal, error)) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, item := range c.Items {
		price, err := priceOf(item.ProductID)
		if err != nil {
			return decimal.Zero, err
		}
		total = total.Add(price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return total, nil
}

// IsExpired reports whether the cart has been idle longer than expiryHours.
func (c *Cart) IsExpired(expiryHours int, now time.Time) bool {
	return c.LastAccessed.Add(time.Duration(expiryHours) * time.Hour).Before(now)
}

// Touch records cart activity.
func (c *Cart) Touch(now time.Time) {
	c.LastAccessed = now
}
