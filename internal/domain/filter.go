package domain

// SortKey selects the ordering of a catalog query.
type SortKey string

const (
	SortNewest    SortKey = "newest"
	SortOldest    SortKey = "oldest"
	SortPriceLow  SortKey = "price-low"
	SortPriceHigh SortKey = "price-high"
	SortRating    SortKey = "rating"
	SortViews     SortKey = "views"
)

// Filter is a conjunctive set of optional catalog constraints plus a sort key.
// A nil field means "no constraint". Constraints combine with AND semantics.
type Filter struct {
	Category   *string
	MinPrice   *float64
	MaxPrice   *float64
	Conditions []Condition
	University *string
	SortBy     SortKey
}

// Equal reports whether two filters are semantically identical. Re-fetch
// triggers compare by value, not by pointer identity.
func (f Filter) Equal(other Filter) bool {
	if f.SortBy != other.SortBy {
		return false
	}
	if !eqStringPtr(f.Category, other.Category) || !eqStringPtr(f.University, other.University) {
		return false
	}
	if !eqFloatPtr(f.MinPrice, other.MinPrice) || !eqFloatPtr(f.MaxPrice, other.MaxPrice) {
		return false
	}
	if len(f.Conditions) != len(other.Conditions) {
		return false
	}
	for i, c := range f.Conditions {
		if other.Conditions[i] != c {
			return false
		}
	}
	return true
}

func eqStringPtr(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func eqFloatPtr(a, b *float64) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
