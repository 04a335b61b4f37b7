package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"   // placed, stock reserved, awaiting payment
	OrderStatusCompleted OrderStatus = "completed" // payment settled
	OrderStatusCancelled OrderStatus = "cancelled" // cancelled, stock released
)

// orderTransitions is the explicit state machine: everything not listed is
// forbidden. Both terminal states have no way out.
var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusPending:   {OrderStatusCompleted, OrderStatusCancelled},
	OrderStatusCompleted: {},
	OrderStatusCancelled: {},
}

// CanTransitionTo reports whether the state machine allows moving to next.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	for _, allowed := range orderTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

type Order struct {
	ID             uint            `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID         uint            `gorm:"index;not null" json:"user_id"`
	Items          []OrderItem     `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
	TotalPrice     decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"total_price"`
	DiscountID     *uint           `json:"discount_id,omitempty"`
	DiscountAmount decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"discount_amount"`
	FinalPrice     decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"final_price"`
	Status         OrderStatus     `gorm:"type:VARCHAR(20);default:'pending'" json:"status"`
	OrderDate      time.Time       `gorm:"not null" json:"order_date"`
	PaymentRecord  *PaymentRecord  `gorm:"foreignKey:OrderID" json:"payment_record,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// OrderItem is a frozen snapshot of a cart line: UnitPrice is the product's
// price at the moment the order was placed and never changes afterwards.
type OrderItem struct {
	ID        uint            `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID   uint            `gorm:"index" json:"order_id"`
	ProductID uint            `gorm:"not null" json:"product_id"`
	Quantity  int             `gorm:"not null" json:"quantity"`
	UnitPrice decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"unit_price"`
}

// NewOrderFromCart snapshots a non-empty cart into a pending order, freezing
// each line at the product's current price. products must contain an entry
// for every cart line.
func NewOrderFromCart(cart *Cart, products map[uint]*Product, now time.Time) (*Order, error) {
	if len(cart.Items) == 0 {
		return nil, ErrEmptyCart
	}

	order := &Order{
		UserID:         cart.UserID,
		Status:         OrderStatusPending,
		OrderDate:      now,
		DiscountAmount: decimal.Zero,
	}
	total := decimal.Zero
	for _, item := range cart.Items {
		product, ok := products[item.ProductID]
		if !ok {
			return nil, ErrProductNotFound
		}
		order.Items = append(order.Items, OrderItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitPrice: product.Price,
		})
		total = total.Add(product.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	order.TotalPrice = total
	order.FinalPrice = total
	return order, nil
}

// IsModifiable reports whether the order still accepts changes.
func (o *Order) IsModifiable() bool {
	return o.Status == OrderStatusPending
}

// ApplyDiscount attaches the discount and recomputes the price breakdown.
// Only pending orders can be discounted.
func (o *Order) ApplyDiscount(d *Discount) error {
	if !o.IsModifiable() {
		return ErrInvalidOrderState
	}
	o.DiscountID = &d.ID
	o.DiscountAmount = d.CalculateDiscount(o.TotalPrice)
	o.FinalPrice = o.TotalPrice.Sub(o.DiscountAmount)
	return nil
}

// UpdateStatus advances the order through the state machine.
func (o *Order) UpdateStatus(next OrderStatus) error {
	if !o.Status.CanTransitionTo(next) {
		return ErrInvalidOrderState
	}
	o.Status = next
	return nil
}
