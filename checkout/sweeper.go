package checkout

import (
	"context"
	"time"

	"github.com/adityarajmishra/ShopEase/models"
	"github.com/adityarajmishra/ShopEase/store"
)

// SweepExpiredCarts deletes carts idle for longer than expiryHours and
// reports how many were removed. Carts held by an in-flight checkout are
// skipped (their rows are locked) and picked up on a later sweep.
func (e *Engine) SweepExpiredCarts(ctx context.Context, expiryHours int) (int, error) {
	cutoff := e.clock().Add(-time.Duration(expiryHours) * time.Hour)

	var expired []models.Cart
	err := e.withRetry(ctx, func(tx store.Tx) error {
		expired = nil
		carts, err := tx.ExpiredCarts(ctx, cutoff)
		if err != nil {
			return err
		}
		for i := range carts {
			if err := tx.DeleteCart(ctx, carts[i].ID); err != nil {
				return err
			}
		}
		expired = carts
		return nil
	})
	if err != nil {
		return 0, err
	}

	for i := range expired {
		e.notifier.CartExpired(&expired[i])
	}
	return len(expired), nil
}
