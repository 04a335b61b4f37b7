package payment

import (
	"context"
	"math/rand"
	"os"
	"strconv"

	"github.com/google/uuid"

	"github.com/adityarajmishra/ShopEase/checkout"
	"github.com/adityarajmishra/ShopEase/models"
)

// DefaultSuccessRate matches the stubbed gateway: 9 out of 10 settlements
// succeed.
const DefaultSuccessRate = 0.9

// Simulator is a stand-in payment gateway with a probabilistic outcome.
// Successful settlements get a TX-prefixed transaction reference.
type Simulator struct {
	successRate float64
	random      func() float64
}

// NewSimulator builds a simulator with the given success rate (clamped to
// [0,1]).
func NewSimulator(successRate float64) *Simulator {
	if successRate < 0 {
		successRate = 0
	}
	if successRate > 1 {
		successRate = 1
	}
	return &Simulator{successRate: successRate, random: rand.Float64}
}

// NewSimulatorFromEnv reads PAYMENT_SUCCESS_RATE, falling back to the
// default when unset or unparseable.
func NewSimulatorFromEnv() *Simulator {
	rate := DefaultSuccessRate
	if v := os.Getenv("PAYMENT_SUCCESS_RATE"); v != "" {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil {
			rate = parsed
		}
	}
	return NewSimulator(rate)
}

func (s *Simulator) Process(ctx context.Context, order *models.Order) (checkout.PaymentResult, error) {
	if s.random() < s.successRate {
		return checkout.PaymentResult{
			Successful:     true,
			TransactionRef: "TX-" + uuid.NewString()[:8],
		}, nil
	}
	return checkout.PaymentResult{}, nil
}
