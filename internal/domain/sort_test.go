package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func price(v int64) *int64 {
	return &v
}

func lineWithPrice(id string, p *int64) CatalogueLine {
	return CatalogueLine{ID: id, PriceAmount: p}
}

func TestParseSortOption(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    SortOption
		wantErr bool
	}{
		{name: "empty means none", raw: "", want: SortNone},
		{name: "low to high", raw: "price_low_to_high", want: SortPriceLowToHigh},
		{name: "high to low", raw: "price_high_to_low", want: SortPriceHighToLow},
		{name: "unknown rejected", raw: "name_asc", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseSortOption(tt.raw)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSortLinesByPriceAscending(t *testing.T) {
	lines := []CatalogueLine{
		lineWithPrice("a", price(10)),
		lineWithPrice("b", price(5)),
		lineWithPrice("c", nil),
		lineWithPrice("d", price(20)),
	}

	SortLinesByPrice(lines, SortPriceLowToHigh)

	for i := 0; i < len(lines)-1; i++ {
		if lines[i].PriceAmount != nil && lines[i+1].PriceAmount != nil {
			assert.LessOrEqual(t, *lines[i].PriceAmount, *lines[i+1].PriceAmount)
		}
	}
	assert.Equal(t, "b", lines[0].ID)
	assert.Equal(t, "a", lines[1].ID)
}

func TestSortLinesByPriceDescendingUnpricedLast(t *testing.T) {
	lines := []CatalogueLine{
		lineWithPrice("a", nil),
		lineWithPrice("b", price(5)),
		lineWithPrice("c", nil),
		lineWithPrice("d", price(20)),
		lineWithPrice("e", price(10)),
	}

	SortLinesByPrice(lines, SortPriceHighToLow)

	require.Len(t, lines, 5)
	assert.Equal(t, "d", lines[0].ID)
	assert.Equal(t, "e", lines[1].ID)
	assert.Equal(t, "b", lines[2].ID)

	// Every unpriced line comes strictly after every priced one.
	assert.Nil(t, lines[3].PriceAmount)
	assert.Nil(t, lines[4].PriceAmount)
}

func TestSortLinesByPriceNoneKeepsOrder(t *testing.T) {
	lines := []CatalogueLine{
		lineWithPrice("a", price(10)),
		lineWithPrice("b", price(5)),
	}

	SortLinesByPrice(lines, SortNone)

	assert.Equal(t, "a", lines[0].ID)
	assert.Equal(t, "b", lines[1].ID)
}

func TestSortIsStableForEqualPrices(t *testing.T) {
	lines := []CatalogueLine{
		lineWithPrice("a", price(5)),
		lineWithPrice("b", price(5)),
		lineWithPrice("c", price(5)),
	}

	SortLinesByPrice(lines, SortPriceLowToHigh)

	assert.Equal(t, "a", lines[0].ID)
	assert.Equal(t, "b", lines[1].ID)
	assert.Equal(t, "c", lines[2].ID)
}

func TestEmptyPage(t *testing.T) {
	page := EmptyPage()

	assert.Zero(t, page.TotalSize)
	assert.Nil(t, page.CatalogueUUID)
	assert.NotNil(t, page.CategoryNames)
	assert.Empty(t, page.CategoryNames)
	assert.NotNil(t, page.Lines)
	assert.Empty(t, page.Lines)
}
