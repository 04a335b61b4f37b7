package models

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func testDiscount(percentage string, start, expiry time.Time, maxUsage, currentUsage int) Discount {
	return Discount{
		Code:         "SAVE",
		Percentage:   decimal.RequireFromString(percentage),
		StartDate:    start,
		ExpiryDate:   expiry,
		MaxUsage:     maxUsage,
		CurrentUsage: currentUsage,
	}
}

func TestDiscountIsValid(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	yesterday := now.Add(-24 * time.Hour)
	tomorrow := now.Add(24 * time.Hour)

	tests := []struct {
		name string
		d    Discount
		want bool
	}{
		{"inside window with budget", testDiscount("10", yesterday, tomorrow, 5, 0), true},
		{"last usage available", testDiscount("10", yesterday, tomorrow, 5, 4), true},
		{"usage exhausted", testDiscount("10", yesterday, tomorrow, 5, 5), false},
		{"not yet active", testDiscount("10", tomorrow, tomorrow.Add(time.Hour), 5, 0), false},
		{"expired", testDiscount("10", yesterday.Add(-time.Hour), yesterday, 5, 0), false},
		{"starts exactly now", testDiscount("10", now, tomorrow, 5, 0), false},
		{"expires exactly now", testDiscount("10", yesterday, now, 5, 0), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, tt.d.IsValid(now))
		})
	}
}

func TestDiscountCalculateDiscount(t *testing.T) {
	tests := []struct {
		percentage string
		amount     string
		want       string
	}{
		{"10", "199.98", "20.00"}, // 19.998 rounds half-up
		{"10", "100.00", "10.00"},
		{"12.5", "100.00", "12.50"},
		{"50", "0.01", "0.01"}, // 0.005 rounds half-up
		{"33", "9.99", "3.30"}, // 3.2967
		{"0", "100.00", "0.00"},
		{"100", "59.90", "59.90"},
	}

	for _, tt := range tests {
		t.Run(tt.percentage+"pct_of_"+tt.amount, func(t *testing.T) {
			d := testDiscount(tt.percentage, time.Time{}, time.Time{}, 1, 0)
			got := d.CalculateDiscount(decimal.RequireFromString(tt.amount))
			require.True(t, got.Equal(decimal.RequireFromString(tt.want)),
				"got %s, want %s", got, tt.want)
		})
	}
}

func TestDiscountIncrementUsage(t *testing.T) {
	d := testDiscount("10", time.Time{}, time.Time{}, 2, 0)
	d.IncrementUsage()
	d.IncrementUsage()
	require.Equal(t, 2, d.CurrentUsage)
}
