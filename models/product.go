package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type ProductStatus string

const (
	ProductStatusActive       ProductStatus = "active"
	ProductStatusOutOfStock   ProductStatus = "out_of_stock"
	ProductStatusDiscontinued ProductStatus = "discontinued"
)

type Product struct {
	ID            uint            `gorm:"primaryKey;autoIncrement" json:"id"`
	Name          string          `gorm:"uniqueIndex;not null" json:"name"`
	Description   string          `gorm:"size:1000" json:"description"`
	Price         decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"price"`
	StockQuantity int             `gorm:"not null" json:"stock_quantity"`
	Category      string          `gorm:"index" json:"category"`
	Status        ProductStatus   `gorm:"type:VARCHAR(20);default:'active'" json:"status"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// HasStock reports whether the requested quantity can be served from stock.
func (p *Product) HasStock(quantity int) bool {
	return p.StockQuantity >= quantity
}

// ReduceStock reserves quantity units, flipping the product to out_of_stock
// when the last unit is taken.
func (p *Product) ReduceStock(quantity int) error {
	if quantity <= 0 {
		return ErrInvalidQuantity
	}
	if !p.HasStock(quantity) {
		return ErrInsufficientStock
	}
	p.StockQuantity -= quantity
	p.refreshStatus()
	return nil
}

// RestoreStock returns quantity units to stock. A discontinued product stays
// discontinued no matter how much stock comes back.
func (p *Product) RestoreStock(quantity int) {
	if quantity <= 0 {
		return
	}
	p.StockQuantity += quantity
	p.refreshStatus()
}

func (p *Product) refreshStatus() {
	if p.StockQuantity == 0 {
		if p.Status == ProductStatusActive {
			p.Status = ProductStatusOutOfStock
		}
		return
	}
	if p.Status == ProductStatusOutOfStock {
		p.Status = ProductStatusActive
	}
}
