package utils

import (
	"math"
	"strconv"
)

// ParsePositiveInt reads a query value. Missing or non-integer values fall
// back to def, integers below 1 are clamped to 1.
func ParsePositiveInt(value string, def int) int {
	if value == "" {
		return def
	}

	result, err := strconv.Atoi(value)
	if err != nil {
		return def
	}

	if result < 1 {
		return 1
	}

	return result
}

// CalculateTotalPages returns ceil(total / perPage), or 0 when either is not positive.
func CalculateTotalPages(total int64, perPage int) int {
	if perPage <= 0 || total <= 0 {
		return 0
	}
	return int((total + int64(perPage) - 1) / int64(perPage))
}

// CalculateOffset returns the number of rows before page. Offsets that would
// overflow saturate at math.MaxInt, which every store answers with an empty page.
func CalculateOffset(page, perPage int) int {
	if page < 1 || perPage < 1 {
		return 0
	}
	if page-1 > math.MaxInt/perPage {
		return math.MaxInt
	}
	return (page - 1) * perPage
}
