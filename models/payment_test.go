package models

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestPaymentRecordLifecycle(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	order := &Order{ID: 9, FinalPrice: decimal.RequireFromString("179.98")}

	rec := NewPaymentRecord(order, now)
	require.Equal(t, order.ID, rec.OrderID)
	require.True(t, rec.Amount.Equal(order.FinalPrice))
	require.Equal(t, PaymentStatusPending, rec.Status)
	require.Empty(t, rec.TransactionReference)

	later := now.Add(time.Minute)
	rec.MarkSuccessful("TX-abc12345", later)
	require.Equal(t, PaymentStatusSuccessful, rec.Status)
	require.Equal(t, "TX-abc12345", rec.TransactionReference)
	require.Equal(t, later, rec.PaymentDate)

	// A later failed attempt overwrites the record and clears the ref.
	rec.MarkFailed(later.Add(time.Minute))
	require.Equal(t, PaymentStatusFailed, rec.Status)
	require.Empty(t, rec.TransactionReference)
}
