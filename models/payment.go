package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type PaymentStatus string

const (
	PaymentStatusPending    PaymentStatus = "pending"
	PaymentStatusSuccessful PaymentStatus = "successful"
	PaymentStatusFailed     PaymentStatus = "failed"
)

// PaymentRecord tracks the settlement of one order. There is exactly one
// record per order; repeated attempts overwrite its status rather than
// appending history.
type PaymentRecord struct {
	ID                   uint            `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID              uint            `gorm:"uniqueIndex;not null" json:"order_id"`
	Amount               decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"amount"`
	Status               PaymentStatus   `gorm:"type:VARCHAR(20);not null" json:"status"`
	PaymentDate          time.Time       `gorm:"not null" json:"payment_date"`
	TransactionReference string          `json:"transaction_reference,omitempty"`
	CreatedAt            time.Time       `json:"created_at"`
	UpdatedAt            time.Time       `json:"updated_at"`
}

// NewPaymentRecord opens a pending record for the order's final price.
func NewPaymentRecord(order *Order, now time.Time) *PaymentRecord {
	return &PaymentRecord{
		OrderID:     order.ID,
		Amount:      order.FinalPrice,
		Status:      PaymentStatusPending,
		PaymentDate: now,
	}
}

// MarkSuccessful records a settled payment with its gateway reference.
func (p *PaymentRecord) MarkSuccessful(transactionRef string, now time.Time) {
	p.Status = PaymentStatusSuccessful
	p.TransactionReference = transactionRef
	p.PaymentDate = now
}

// MarkFailed records a declined attempt. The reference from any earlier
// attempt is cleared.
func (p *PaymentRecord) MarkFailed(now time.Time) {
	p.Status = PaymentStatusFailed
	p.TransactionReference = ""
	p.PaymentDate = now
}
