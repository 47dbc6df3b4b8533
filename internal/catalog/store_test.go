package catalog_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"TechStore/internal/catalog"
)

func price(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestStoreAdd_AssignsMonotonicIDs(t *testing.T) {
	s := catalog.NewStore()

	a, err := s.Add(catalog.Item{Name: "Coffee", Price: price("1500.00"), Stock: 20})
	require.NoError(t, err)
	b, err := s.Add(catalog.Item{Name: "Tea", Price: price("900.00"), Stock: 5})
	require.NoError(t, err)

	assert.Equal(t, 1, a.ID)
	assert.Equal(t, 2, b.ID)
	assert.False(t, s.IsEmpty())
}

func TestStoreAdd_MergesByNameAndPrice(t *testing.T) {
	s := catalog.NewStore()

	first, err := s.Add(catalog.Item{Name: "Coffee", Price: price("1500.00"), Stock: 20})
	require.NoError(t, err)

	// Same name (case-insensitive) and exact price accumulates stock.
	merged, err := s.Add(catalog.Item{Name: "  coffee ", Price: price("1500.00"), Stock: 15})
	require.NoError(t, err)

	assert.Same(t, first, merged)
	assert.Equal(t, 35, merged.Stock)
	assert.Len(t, s.List(), 1)

	// Same name at a different price is a distinct entry.
	other, err := s.Add(catalog.Item{Name: "Coffee", Price: price("1200.00"), Stock: 3})
	require.NoError(t, err)
	assert.Equal(t, 2, other.ID)
	assert.Len(t, s.List(), 2)
}

func TestStoreAdd_Validation(t *testing.T) {
	cases := []struct {
		name  string
		item  catalog.Item
		field string
	}{
		{"empty name", catalog.Item{Name: "  ", Price: price("1"), Stock: 1}, "name"},
		{"separator in name", catalog.Item{Name: "a;b", Price: price("1"), Stock: 1}, "name"},
		{"negative price", catalog.Item{Name: "X", Price: price("-0.01"), Stock: 1}, "price"},
		{"negative stock", catalog.Item{Name: "X", Price: price("1"), Stock: -1}, "stock"},
		{"drink without liters", catalog.Item{Name: "X", Price: price("1"), Stock: 1, Kind: catalog.KindDrink}, "liters"},
		{"drink with zero liters", catalog.Item{Name: "X", Price: price("1"), Stock: 1, Kind: catalog.KindDrink, Liters: 0}, "liters"},
		{"food without expiry", catalog.Item{Name: "X", Price: price("1"), Stock: 1, Kind: catalog.KindFood}, "expiry"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := catalog.NewStore()
			_, err := s.Add(tc.item)

			var vErr *catalog.ValidationError
			require.ErrorAs(t, err, &vErr)
			assert.Equal(t, tc.field, vErr.Field)
			assert.True(t, s.IsEmpty())
		})
	}
}

func TestStoreAdd_ZeroBoundariesAreValid(t *testing.T) {
	s := catalog.NewStore()

	it, err := s.Add(catalog.Item{Name: "Free", Price: price("0"), Stock: 0})
	require.NoError(t, err)
	assert.Equal(t, 0, it.Stock)

	_, err = s.Add(catalog.Item{Name: "Drop", Price: price("1"), Stock: 1, Kind: catalog.KindDrink, Liters: 0.1})
	require.NoError(t, err)
}

func TestStoreFind(t *testing.T) {
	s := catalog.NewStore()
	added, err := s.Add(catalog.Item{Name: "Coffee", Price: price("1500.00"), Stock: 20})
	require.NoError(t, err)

	byID, ok := s.FindByID(added.ID)
	require.True(t, ok)
	assert.Same(t, added, byID)

	byName, ok := s.FindByName("COFFEE")
	require.True(t, ok)
	assert.Same(t, added, byName)

	_, ok = s.FindByID(99)
	assert.False(t, ok)
	_, ok = s.FindByName("tea")
	assert.False(t, ok)
}

func TestStoreUpdate_PartialPatch(t *testing.T) {
	s := catalog.NewStore()
	it, err := s.Add(catalog.Item{Name: "Coffee", Price: price("1500.00"), Stock: 20})
	require.NoError(t, err)

	newPrice := price("1600.00")
	found, err := s.Update(it.ID, catalog.Patch{Price: &newPrice})
	require.NoError(t, err)
	require.True(t, found)

	assert.Equal(t, "Coffee", it.Name)
	assert.True(t, it.Price.Equal(newPrice))
	assert.Equal(t, 20, it.Stock)
}

func TestStoreUpdate_InvalidFieldLeavesItemUntouched(t *testing.T) {
	s := catalog.NewStore()
	it, err := s.Add(catalog.Item{Name: "Coffee", Price: price("1500.00"), Stock: 20})
	require.NoError(t, err)

	newName := "Espresso"
	badStock := -5
	found, err := s.Update(it.ID, catalog.Patch{Name: &newName, Stock: &badStock})
	require.True(t, found)

	var vErr *catalog.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "stock", vErr.Field)

	// Even the valid part of the patch must not have been applied.
	assert.Equal(t, "Coffee", it.Name)
	assert.Equal(t, 20, it.Stock)
}

func TestStoreUpdate_NotFound(t *testing.T) {
	s := catalog.NewStore()
	found, err := s.Update(42, catalog.Patch{})
	require.NoError(t, err)
	assert.False(t, found)
}

func TestStoreDelete_NeverReusesIDs(t *testing.T) {
	s := catalog.NewStore()

	a, err := s.Add(catalog.Item{Name: "A", Price: price("1"), Stock: 1})
	require.NoError(t, err)
	require.Equal(t, 1, a.ID)

	require.True(t, s.Delete(a.ID))
	require.False(t, s.Delete(a.ID))

	b, err := s.Add(catalog.Item{Name: "B", Price: price("1"), Stock: 1})
	require.NoError(t, err)
	assert.Equal(t, 2, b.ID)
}

func TestItemExpired(t *testing.T) {
	now := time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC)

	fresh := catalog.Item{Kind: catalog.KindFood, Expiry: time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)}
	stale := catalog.Item{Kind: catalog.KindFood, Expiry: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	generic := catalog.Item{Kind: catalog.KindGeneric}

	assert.False(t, fresh.Expired(now))
	assert.True(t, stale.Expired(now))
	assert.False(t, generic.Expired(now))
}
