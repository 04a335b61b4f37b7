package models

import (
	"time"

	"github.com/shopspring/decimal"
)

var oneHundred = decimal.NewFromInt(100)

type Discount struct {
	ID           uint            `gorm:"primaryKey;autoIncrement" json:"id"`
	Code         string          `gorm:"uniqueIndex;not null" json:"code"`
	Percentage   decimal.Decimal `gorm:"type:numeric(5,2);not null" json:"percentage"`
	StartDate    time.Time       `gorm:"not null" json:"start_date"`
	ExpiryDate   time.Time       `gorm:"not null" json:"expiry_date"`
	MaxUsage     int             `gorm:"not null" json:"max_usage"`
	CurrentUsage int             `gorm:"not null;default:0" json:"current_usage"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// IsValid reports whether the discount can be applied at the given instant:
// inside its validity window and under its usage cap.
func (d *Discount) IsValid(now time.Time) bool {
	return now.After(d.StartDate) && now.Before(d.ExpiryDate) && d.CurrentUsage < d.MaxUsage
}

// CalculateDiscount returns amount * percentage/100, rounded half-up to two
// decimal places.
func (d *Discount) CalculateDiscount(amount decimal.Decimal) decimal.Decimal {
	return amount.Mul(d.Percentage).Div(oneHundred).Round(2)
}

// IncrementUsage consumes one unit of the usage budget. Callers must check
// IsValid first; usage is never given back, not even when the order that
// consumed it gets cancelled.
func (d *Discount) IncrementUsage() {
	d.CurrentUsage++
}
