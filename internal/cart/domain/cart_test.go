package domain

import (
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assertTotal(t *testing.T, c *Cart) {
	t.Helper()
	var want int64
	for _, it := range c.Items() {
		want += it.UnitPrice * it.Quantity
	}
	assert.Equal(t, want, c.TotalAmount())
}

func TestCart_AddAdHocMergesSamePrice(t *testing.T) {
	c := NewCart()
	for i := 0; i < 5; i++ {
		require.NoError(t, c.AddAdHoc(500))
		assertTotal(t, c)
	}

	items := c.Items()
	require.Len(t, items, 1)
	assert.Equal(t, KindAdHoc, items[0].Kind)
	assert.Equal(t, int64(500), items[0].UnitPrice)
	assert.Equal(t, int64(5), items[0].Quantity)
	assert.Equal(t, int64(2500), c.TotalAmount())
}

func TestCart_AdHocPricesAreSeparateBuckets(t *testing.T) {
	c := NewCart()
	require.NoError(t, c.AddAdHoc(500))
	require.NoError(t, c.AddAdHoc(1000))
	require.NoError(t, c.AddAdHoc(500))

	items := c.Items()
	require.Len(t, items, 2)
	assert.Equal(t, Identity("adhoc:500"), items[0].Identity())
	assert.Equal(t, int64(2), items[0].Quantity)
	assert.Equal(t, Identity("adhoc:1000"), items[1].Identity())
	assert.Equal(t, int64(2000), c.TotalAmount())
}

func TestCart_AddRejectsInvalidInput(t *testing.T) {
	c := NewCart()
	require.NoError(t, c.AddAdHoc(1000))

	t.Run("zero ad-hoc price", func(t *testing.T) {
		assert.ErrorIs(t, c.AddAdHoc(0), ErrInvalidAmount)
	})
	t.Run("negative catalog price", func(t *testing.T) {
		assert.ErrorIs(t, c.AddCatalogItem("p1", "Tea", -5), ErrInvalidAmount)
	})
	t.Run("blank catalog id", func(t *testing.T) {
		assert.ErrorIs(t, c.AddCatalogItem("  ", "Tea", 4000), ErrInvalidLineItem)
	})

	require.Len(t, c.Items(), 1)
	assert.Equal(t, int64(1000), c.TotalAmount())
}

func TestCart_ExampleScenario(t *testing.T) {
	c := NewCart()
	require.NoError(t, c.AddAdHoc(1000))
	require.NoError(t, c.AddAdHoc(1000))
	require.NoError(t, c.AddCatalogItem("p1", "Tea", 4000))

	items := c.Items()
	require.Len(t, items, 2)
	assert.Equal(t, LineItem{Kind: KindAdHoc, UnitPrice: 1000, Quantity: 2}, items[0])
	assert.Equal(t, LineItem{Kind: KindCatalog, CatalogID: "p1", DisplayName: "Tea", UnitPrice: 4000, Quantity: 1}, items[1])
	assert.Equal(t, int64(6000), c.TotalAmount())

	c.Decrement(Identity("catalog:p1"))
	require.Len(t, c.Items(), 1)
	_, found := c.Find(Identity("catalog:p1"))
	assert.False(t, found)
	assert.Equal(t, int64(2000), c.TotalAmount())
}

func TestCart_MergeKeepsFirstPosition(t *testing.T) {
	c := NewCart()
	require.NoError(t, c.AddCatalogItem("p1", "Tea", 4000))
	require.NoError(t, c.AddAdHoc(500))
	require.NoError(t, c.AddCatalogItem("p2", "Indomie", 3000))
	require.NoError(t, c.AddCatalogItem("p1", "Tea", 4000))

	items := c.Items()
	require.Len(t, items, 3)
	assert.Equal(t, "p1", items[0].CatalogID)
	assert.Equal(t, int64(2), items[0].Quantity)
	assert.Equal(t, KindAdHoc, items[1].Kind)
	assert.Equal(t, "p2", items[2].CatalogID)
	assertTotal(t, c)
}

func TestCart_IncrementUsesAddPath(t *testing.T) {
	c := NewCart()
	require.NoError(t, c.AddAdHoc(2000))
	require.NoError(t, c.AddCatalogItem("p1", "Tea", 4000))

	require.NoError(t, c.Increment(Identity("adhoc:2000")))
	require.NoError(t, c.Increment(Identity("catalog:p1")))
	require.NoError(t, c.Increment(Identity("catalog:missing")))

	items := c.Items()
	require.Len(t, items, 2)
	assert.Equal(t, int64(2), items[0].Quantity)
	assert.Equal(t, int64(2), items[1].Quantity)
	assert.Equal(t, "Tea", items[1].DisplayName)
	assert.Equal(t, int64(12000), c.TotalAmount())
}

func TestCart_DecrementRemovesAtZero(t *testing.T) {
	c := NewCart()
	require.NoError(t, c.AddAdHoc(500))
	require.NoError(t, c.AddAdHoc(500))

	c.Decrement(Identity("adhoc:500"))
	item, ok := c.Find(Identity("adhoc:500"))
	require.True(t, ok)
	assert.Equal(t, int64(1), item.Quantity)

	c.Decrement(Identity("adhoc:500"))
	assert.True(t, c.IsEmpty())
	assert.Equal(t, int64(0), c.TotalAmount())

	// absent identity is a no-op
	c.Decrement(Identity("adhoc:500"))
	assert.True(t, c.IsEmpty())
}

func TestCart_SetQuantity(t *testing.T) {
	c := NewCart()
	require.NoError(t, c.AddCatalogItem("p1", "Tea", 4000))
	require.NoError(t, c.AddAdHoc(1000))

	require.NoError(t, c.SetQuantity(Identity("catalog:p1"), 7))
	item, _ := c.Find(Identity("catalog:p1"))
	assert.Equal(t, int64(7), item.Quantity)
	assert.Equal(t, int64(29000), c.TotalAmount())

	require.NoError(t, c.SetQuantity(Identity("catalog:p1"), 0))
	_, ok := c.Find(Identity("catalog:p1"))
	assert.False(t, ok)
	assert.Equal(t, int64(1000), c.TotalAmount())

	require.NoError(t, c.SetQuantity(Identity("catalog:nope"), 3))
	assert.Equal(t, 1, c.Len())
}

func TestCart_RemoveAndClear(t *testing.T) {
	c := NewCart()
	require.NoError(t, c.AddAdHoc(500))
	require.NoError(t, c.AddAdHoc(500))
	require.NoError(t, c.AddAdHoc(500))
	require.NoError(t, c.AddCatalogItem("p1", "Tea", 4000))

	c.Remove(Identity("adhoc:500"))
	require.Equal(t, 1, c.Len())
	assert.Equal(t, int64(4000), c.TotalAmount())

	c.Clear()
	assert.True(t, c.IsEmpty())
	assert.Equal(t, int64(0), c.TotalAmount())
}

func TestCart_ItemsReturnsCopy(t *testing.T) {
	c := NewCart()
	require.NoError(t, c.AddAdHoc(500))

	items := c.Items()
	items[0].Quantity = 99

	item, _ := c.Find(Identity("adhoc:500"))
	assert.Equal(t, int64(1), item.Quantity)
}

func TestCart_OverflowLeavesCartUnchanged(t *testing.T) {
	t.Run("set quantity", func(t *testing.T) {
		c := NewCart()
		require.NoError(t, c.AddAdHoc(1000))

		err := c.SetQuantity(Identity("adhoc:1000"), math.MaxInt64/100)
		assert.ErrorIs(t, err, ErrInvalidAmount)

		item, ok := c.Find(Identity("adhoc:1000"))
		require.True(t, ok)
		assert.Equal(t, int64(1), item.Quantity)
		assert.Equal(t, int64(1000), c.TotalAmount())
	})

	t.Run("ad-hoc merge", func(t *testing.T) {
		c := NewCart()
		require.NoError(t, c.AddAdHoc(math.MaxInt64))

		err := c.AddAdHoc(math.MaxInt64)
		assert.ErrorIs(t, err, ErrInvalidAmount)

		items := c.Items()
		require.Len(t, items, 1)
		assert.Equal(t, int64(1), items[0].Quantity)
		assert.Equal(t, int64(math.MaxInt64), c.TotalAmount())
	})

	t.Run("new ad-hoc line", func(t *testing.T) {
		c := NewCart()
		require.NoError(t, c.AddAdHoc(math.MaxInt64))

		err := c.AddAdHoc(1)
		assert.ErrorIs(t, err, ErrInvalidAmount)
		assert.Equal(t, 1, c.Len())
		assert.Equal(t, int64(math.MaxInt64), c.TotalAmount())
	})

	t.Run("catalog merge", func(t *testing.T) {
		c := NewCart()
		require.NoError(t, c.AddCatalogItem("p1", "Gold", math.MaxInt64/2+1))

		err := c.AddCatalogItem("p1", "Gold", math.MaxInt64/2+1)
		assert.ErrorIs(t, err, ErrInvalidAmount)

		item, _ := c.Find(Identity("catalog:p1"))
		assert.Equal(t, int64(1), item.Quantity)
		assertTotal(t, c)
	})

	t.Run("increment", func(t *testing.T) {
		c := NewCart()
		require.NoError(t, c.AddAdHoc(math.MaxInt64/2+1))

		err := c.Increment(Identity(fmt.Sprintf("adhoc:%d", int64(math.MaxInt64/2+1))))
		assert.ErrorIs(t, err, ErrInvalidAmount)
		assert.Equal(t, int64(math.MaxInt64/2+1), c.TotalAmount())
	})
}
