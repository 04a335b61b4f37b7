package payment

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/adityarajmishra/ShopEase/models"
)

func TestSimulatorOutcomes(t *testing.T) {
	ctx := context.Background()
	order := &models.Order{ID: 1}

	t.Run("always succeeds at rate 1", func(t *testing.T) {
		sim := NewSimulator(1)
		for i := 0; i < 50; i++ {
			res, err := sim.Process(ctx, order)
			require.NoError(t, err)
			require.True(t, res.Successful)
			require.True(t, strings.HasPrefix(res.TransactionRef, "TX-"))
			require.Len(t, res.TransactionRef, 11)
		}
	})

	t.Run("always declines at rate 0", func(t *testing.T) {
		sim := NewSimulator(0)
		for i := 0; i < 50; i++ {
			res, err := sim.Process(ctx, order)
			require.NoError(t, err)
			require.False(t, res.Successful)
			require.Empty(t, res.TransactionRef)
		}
	})
}

func TestNewSimulatorClampsRate(t *testing.T) {
	require.InDelta(t, 0, NewSimulator(-3).successRate, 0)
	require.InDelta(t, 1, NewSimulator(7).successRate, 0)
	require.InDelta(t, 0.5, NewSimulator(0.5).successRate, 0)
}

func TestNewSimulatorFromEnv(t *testing.T) {
	t.Setenv("PAYMENT_SUCCESS_RATE", "0.25")
	require.InDelta(t, 0.25, NewSimulatorFromEnv().successRate, 0)

	t.Setenv("PAYMENT_SUCCESS_RATE", "not-a-number")
	require.InDelta(t, DefaultSuccessRate, NewSimulatorFromEnv().successRate, 0)
}
