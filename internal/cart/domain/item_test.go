package domain

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAdHocItem(t *testing.T) {
	t.Run("non-positive price -> invalid line item", func(t *testing.T) {
		_, err := NewAdHocItem(0, 1)
		assert.ErrorIs(t, err, ErrInvalidLineItem)
	})

	t.Run("zero quantity -> invalid quantity", func(t *testing.T) {
		_, err := NewAdHocItem(500, 0)
		assert.ErrorIs(t, err, ErrInvalidQuantity)
	})

	t.Run("identity depends on price only", func(t *testing.T) {
		a, err := NewAdHocItem(500, 1)
		require.NoError(t, err)
		b, err := NewAdHocItem(500, 4)
		require.NoError(t, err)
		assert.Equal(t, a.Identity(), b.Identity())
		assert.Equal(t, Identity("adhoc:500"), a.Identity())
	})
}

func TestNewCatalogItem(t *testing.T) {
	t.Run("blank id -> invalid line item", func(t *testing.T) {
		_, err := NewCatalogItem("", "Tea", 4000, 1)
		assert.ErrorIs(t, err, ErrInvalidLineItem)
	})

	t.Run("negative quantity -> invalid quantity", func(t *testing.T) {
		_, err := NewCatalogItem("p1", "Tea", 4000, -1)
		assert.ErrorIs(t, err, ErrInvalidQuantity)
	})

	t.Run("identity depends on catalog id, not price", func(t *testing.T) {
		a, err := NewCatalogItem("p1", "Tea", 4000, 1)
		require.NoError(t, err)
		b, err := NewCatalogItem("p1", "Tea (promo)", 3500, 1)
		require.NoError(t, err)
		assert.Equal(t, a.Identity(), b.Identity())
		assert.NotEqual(t, Identity("adhoc:4000"), a.Identity())
	})
}

func TestSubtotalAndTotal(t *testing.T) {
	total, err := Total(nil)
	require.NoError(t, err)
	assert.Equal(t, int64(0), total)

	sub, err := Subtotal(1000, 3)
	require.NoError(t, err)
	assert.Equal(t, int64(3000), sub)

	items := []LineItem{
		{Kind: KindAdHoc, UnitPrice: 1000, Quantity: 2},
		{Kind: KindCatalog, CatalogID: "p1", UnitPrice: 4000, Quantity: 1},
	}
	total, err = Total(items)
	require.NoError(t, err)
	assert.Equal(t, int64(6000), total)
}

func TestSubtotalAndTotalRejectOverflow(t *testing.T) {
	t.Run("subtotal overflow", func(t *testing.T) {
		_, err := Subtotal(1000, math.MaxInt64/100)
		assert.ErrorIs(t, err, ErrInvalidAmount)
	})

	t.Run("largest representable subtotal", func(t *testing.T) {
		sub, err := Subtotal(1, math.MaxInt64)
		require.NoError(t, err)
		assert.Equal(t, int64(math.MaxInt64), sub)
	})

	t.Run("invalid inputs", func(t *testing.T) {
		_, err := Subtotal(0, 1)
		assert.ErrorIs(t, err, ErrInvalidAmount)
		_, err = Subtotal(100, 0)
		assert.ErrorIs(t, err, ErrInvalidQuantity)
	})

	t.Run("sum overflow", func(t *testing.T) {
		items := []LineItem{
			{Kind: KindAdHoc, UnitPrice: math.MaxInt64, Quantity: 1},
			{Kind: KindAdHoc, UnitPrice: 1, Quantity: 1},
		}
		_, err := Total(items)
		assert.ErrorIs(t, err, ErrInvalidAmount)
	})
}
