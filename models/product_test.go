package models

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestProductReduceStock(t *testing.T) {
	tests := []struct {
		name       string
		start      int
		status     ProductStatus
		qty        int
		wantErr    error
		wantStock  int
		wantStatus ProductStatus
	}{
		{"partial", 10, ProductStatusActive, 4, nil, 6, ProductStatusActive},
		{"to zero flips out_of_stock", 2, ProductStatusActive, 2, nil, 0, ProductStatusOutOfStock},
		{"not enough", 3, ProductStatusActive, 4, ErrInsufficientStock, 3, ProductStatusActive},
		{"zero quantity", 3, ProductStatusActive, 0, ErrInvalidQuantity, 3, ProductStatusActive},
		{"negative quantity", 3, ProductStatusActive, -1, ErrInvalidQuantity, 3, ProductStatusActive},
		{"discontinued stays discontinued at zero", 1, ProductStatusDiscontinued, 1, nil, 0, ProductStatusDiscontinued},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Product{Name: "widget", StockQuantity: tt.start, Status: tt.status}
			err := p.ReduceStock(tt.qty)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
			}
			require.Equal(t, tt.wantStock, p.StockQuantity)
			require.Equal(t, tt.wantStatus, p.Status)
		})
	}
}

func TestProductRestoreStock(t *testing.T) {
	t.Run("out_of_stock becomes active again", func(t *testing.T) {
		p := Product{StockQuantity: 0, Status: ProductStatusOutOfStock}
		p.RestoreStock(3)
		require.Equal(t, 3, p.StockQuantity)
		require.Equal(t, ProductStatusActive, p.Status)
	})

	t.Run("discontinued is never auto-reverted", func(t *testing.T) {
		p := Product{StockQuantity: 0, Status: ProductStatusDiscontinued}
		p.RestoreStock(5)
		require.Equal(t, 5, p.StockQuantity)
		require.Equal(t, ProductStatusDiscontinued, p.Status)
	})

	t.Run("non-positive quantity is ignored", func(t *testing.T) {
		p := Product{StockQuantity: 2, Status: ProductStatusActive}
		p.RestoreStock(0)
		p.RestoreStock(-3)
		require.Equal(t, 2, p.StockQuantity)
	})
}

func TestProductHasStock(t *testing.T) {
	p := Product{StockQuantity: 5}
	require.True(t, p.HasStock(5))
	require.True(t, p.HasStock(1))
	require.False(t, p.HasStock(6))
}
