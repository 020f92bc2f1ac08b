package model

import gDto "ihome/shared/dto"

const (
	SortBooking  = "booking"
	SortPriceInc = "price-inc"
	SortPriceDes = "price-des"
	SortNew      = "new"
)

// Ordering maps a search sort key to a column and direction. Unknown keys sort by newest.
// The repository appends "id ASC" as the tie-break.
func Ordering(sortKey string) (sortBy, sortDir string) {
	switch sortKey {
	case SortBooking:
		return TableName + "." + FieldOrderCount, gDto.SortDirDesc
	case SortPriceInc:
		return TableName + "." + FieldPrice, gDto.SortDirAsc
	case SortPriceDes:
		return TableName + "." + FieldPrice, gDto.SortDirDesc
	default:
		return TableName + "." + FieldCreatedAt, gDto.SortDirDesc
	}
}

// NormalizeSortKey folds unknown keys into SortNew so they share a cache entry.
func NormalizeSortKey(sortKey string) string {
	switch sortKey {
	case SortBooking, SortPriceInc, SortPriceDes:
		return sortKey
	default:
		return SortNew
	}
}
