package product

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Filter describes a catalog read. Zero-value fields impose no constraint.
type Filter struct {
	Category string
	Search   string
	MinPrice *decimal.Decimal
	MaxPrice *decimal.Decimal
}

// Sort is a single order-by clause. Field is always one of sortFields.
type Sort struct {
	Field     string
	Ascending bool
}

var sortFields = map[string]bool{
	"created_at": true,
	"price":      true,
	"name":       true,
}

// DefaultSort matches the catalog page's initial dropdown value.
var DefaultSort = Sort{Field: "created_at", Ascending: true}

// ParseFilter maps raw query parameters onto a Filter. Bounds that fail to
// parse are treated as absent rather than rejected.
func ParseFilter(params map[string]string) Filter {
	f := Filter{
		Category: params["category"],
		Search:   params["search"],
	}
	if v, ok := params["minPrice"]; ok && v != "" {
		if d, err := decimal.NewFromString(v); err == nil {
			f.MinPrice = &d
		}
	}
	if v, ok := params["maxPrice"]; ok && v != "" {
		if d, err := decimal.NewFromString(v); err == nil {
			f.MaxPrice = &d
		}
	}
	return f
}

// ParseSort parses a combined "<field>-<direction>" dropdown token, e.g.
// "price-desc". The direction suffix is split off the last hyphen so fields
// containing hyphens or underscores ("created_at") survive intact. Unknown
// fields fall back to DefaultSort.
func ParseSort(token string) Sort {
	field := token
	ascending := true
	if i := strings.LastIndex(token, "-"); i > 0 {
		switch token[i+1:] {
		case "asc":
			field = token[:i]
		case "desc":
			field = token[:i]
			ascending = false
		}
	}
	if !sortFields[field] {
		return DefaultSort
	}
	return Sort{Field: field, Ascending: ascending}
}
