package billing

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eventops/backend/internal/domain/shared"
	"github.com/eventops/backend/internal/domain/shared/valueobject"
)

func TestNewLineItem(t *testing.T) {
	t.Run("derives base discount tax and amount", func(t *testing.T) {
		// 3 x 1000.00 with 10% discount and 18% tax:
		// base 300000, discount 30000, tax on 270000 = 48600, amount 318600
		item, err := NewLineItem("Stage decoration",
			decimal.NewFromInt(3),
			valueobject.NewMoneyFromPaise(100000),
			decimal.NewFromInt(10),
			decimal.NewFromInt(18))
		require.NoError(t, err)

		assert.Equal(t, int64(300000), item.Base.Paise())
		assert.Equal(t, int64(30000), item.DiscountAmount.Paise())
		assert.Equal(t, int64(48600), item.TaxAmount.Paise())
		assert.Equal(t, int64(318600), item.Amount.Paise())
	})

	t.Run("rounds each derived amount exactly once", func(t *testing.T) {
		// 1.5 x 0.33 = 0.495 rupees = 49.5 paise, rounds half up to 50.
		// 5% discount of 50 = 2.5, rounds to 3. Tax 18% of 47 = 8.46, rounds to 8.
		item, err := NewLineItem("Misc",
			decimal.RequireFromString("1.5"),
			valueobject.NewMoneyFromPaise(33),
			decimal.NewFromInt(5),
			decimal.NewFromInt(18))
		require.NoError(t, err)

		assert.Equal(t, int64(50), item.Base.Paise())
		assert.Equal(t, int64(3), item.DiscountAmount.Paise())
		assert.Equal(t, int64(8), item.TaxAmount.Paise())
		assert.Equal(t, int64(55), item.Amount.Paise())
	})

	t.Run("zero quantity yields zero amount", func(t *testing.T) {
		item, err := NewLineItem("Unused slot",
			decimal.Zero,
			valueobject.NewMoneyFromPaise(500000),
			decimal.NewFromInt(10),
			decimal.NewFromInt(18))
		require.NoError(t, err)
		assert.True(t, item.Amount.IsZero())
	})

	t.Run("hundred percent discount yields zero amount", func(t *testing.T) {
		item, err := NewLineItem("Comped",
			decimal.NewFromInt(2),
			valueobject.NewMoneyFromPaise(10000),
			decimal.NewFromInt(100),
			decimal.NewFromInt(18))
		require.NoError(t, err)
		assert.True(t, item.Amount.IsZero())
		assert.Equal(t, item.Base, item.DiscountAmount)
	})

	t.Run("rejects invalid inputs", func(t *testing.T) {
		tests := []struct {
			name     string
			quantity decimal.Decimal
			rate     valueobject.Money
			discount decimal.Decimal
			tax      decimal.Decimal
			wantCode string
		}{
			{"negative quantity", decimal.NewFromInt(-1), 100, decimal.Zero, decimal.Zero, shared.ErrCodeInvalidAmount},
			{"negative rate", decimal.NewFromInt(1), -100, decimal.Zero, decimal.Zero, shared.ErrCodeInvalidAmount},
			{"negative discount", decimal.NewFromInt(1), 100, decimal.NewFromInt(-1), decimal.Zero, shared.ErrCodeInvalidAmount},
			{"discount above hundred", decimal.NewFromInt(1), 100, decimal.NewFromInt(101), decimal.Zero, shared.ErrCodeInvalidAmount},
			{"negative tax", decimal.NewFromInt(1), 100, decimal.Zero, decimal.NewFromInt(-5), shared.ErrCodeInvalidAmount},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				_, err := NewLineItem("x", tt.quantity, tt.rate, tt.discount, tt.tax)
				require.Error(t, err)
				var derr *shared.DomainError
				require.ErrorAs(t, err, &derr)
				assert.Equal(t, tt.wantCode, derr.Code)
			})
		}
	})

	t.Run("rejects empty description", func(t *testing.T) {
		_, err := NewLineItem("", decimal.NewFromInt(1), 100, decimal.Zero, decimal.Zero)
		assert.Error(t, err)
	})
}

func TestLineItemDeterminism(t *testing.T) {
	build := func() LineItem {
		item, err := NewLineItem("Catering",
			decimal.RequireFromString("7.25"),
			valueobject.NewMoneyFromPaise(123457),
			decimal.RequireFromString("12.5"),
			decimal.RequireFromString("18"))
		require.NoError(t, err)
		return item
	}

	first := build()
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, build())
	}
}

func TestLineItemsScanValue(t *testing.T) {
	item, err := NewLineItem("Sound system",
		decimal.NewFromInt(2),
		valueobject.NewMoneyFromPaise(250000),
		decimal.Zero,
		decimal.NewFromInt(18))
	require.NoError(t, err)

	items := LineItems{item}
	v, err := items.Value()
	require.NoError(t, err)

	var scanned LineItems
	require.NoError(t, scanned.Scan(v))
	require.Len(t, scanned, 1)
	assert.Equal(t, item.Amount, scanned[0].Amount)
	assert.True(t, item.Quantity.Equal(scanned[0].Quantity))

	t.Run("nil slice stores as empty array", func(t *testing.T) {
		var empty LineItems
		v, err := empty.Value()
		require.NoError(t, err)

		var raw []json.RawMessage
		require.NoError(t, json.Unmarshal(v.([]byte), &raw))
		assert.Empty(t, raw)
	})
}
