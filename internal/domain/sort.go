package domain

import (
	"sort"

	apperrors "github.com/Kolanot/catalog-service/pkg/errors"
)

// SortOption selects the ordering applied to a page of catalogue lines
// after the page window has been resolved.
type SortOption string

const (
	// SortNone keeps the storage order of the resolved page.
	SortNone SortOption = ""
	// SortPriceLowToHigh orders lines by ascending price.
	SortPriceLowToHigh SortOption = "price_low_to_high"
	// SortPriceHighToLow orders lines by descending price, unpriced lines last.
	SortPriceHighToLow SortOption = "price_high_to_low"
)

// ParseSortOption validates a raw sort parameter. The empty string is the
// valid default and means no sorting.
func ParseSortOption(raw string) (SortOption, error) {
	switch SortOption(raw) {
	case SortNone, SortPriceLowToHigh, SortPriceHighToLow:
		return SortOption(raw), nil
	default:
		return SortNone, apperrors.InvalidInput("unknown sort option: " + raw)
	}
}

// SortLinesByPrice reorders lines in place according to the sort option.
// The sort is stable, so lines comparing equal keep their storage order.
//
// Lines without a price compare greater than any priced line when sorting
// ascending. When sorting descending, unpriced lines are placed strictly
// after all priced lines rather than first.
func SortLinesByPrice(lines []CatalogueLine, opt SortOption) {
	switch opt {
	case SortPriceLowToHigh:
		sort.SliceStable(lines, func(i, j int) bool {
			return lessByPriceAsc(&lines[i], &lines[j])
		})
	case SortPriceHighToLow:
		sort.SliceStable(lines, func(i, j int) bool {
			return lessByPriceDesc(&lines[i], &lines[j])
		})
	}
}

func lessByPriceAsc(a, b *CatalogueLine) bool {
	switch {
	case a.PriceAmount == nil:
		return false
	case b.PriceAmount == nil:
		return true
	default:
		return *a.PriceAmount < *b.PriceAmount
	}
}

func lessByPriceDesc(a, b *CatalogueLine) bool {
	switch {
	case a.PriceAmount == nil:
		return false
	case b.PriceAmount == nil:
		return true
	default:
		return *a.PriceAmount > *b.PriceAmount
	}
}
