package app

import (
	"math"
	"sort"

	"guest_reviews/internal/domain"
)

type SortKey string

const (
	SortNewest        SortKey = "newest"
	SortOldest        SortKey = "oldest"
	SortHighestRating SortKey = "highest-rating"
	SortLowestRating  SortKey = "lowest-rating"
)

func ParseSortKey(s string) (SortKey, error) {
	switch k := SortKey(s); k {
	case "":
		return SortNewest, nil
	case SortNewest, SortOldest, SortHighestRating, SortLowestRating:
		return k, nil
	}
	return "", domain.ErrInvalidSort
}

// Sort returns a stably sorted copy; equal keys keep their input order.
// Reviews without a parseable date order as the oldest.
func Sort(in []domain.Review, key SortKey) []domain.Review {
	out := make([]domain.Review, len(in))
	copy(out, in)

	ts := func(r domain.Review) int64 {
		t, ok := r.Time()
		if !ok {
			return math.MinInt64
		}
		return t.Unix()
	}

	var less func(a, b domain.Review) bool
	switch key {
	case SortOldest:
		less = func(a, b domain.Review) bool { return ts(a) < ts(b) }
	case SortHighestRating:
		less = func(a, b domain.Review) bool { return a.Rating > b.Rating }
	case SortLowestRating:
		less = func(a, b domain.Review) bool { return a.Rating < b.Rating }
	default:
		less = func(a, b domain.Review) bool { return ts(a) > ts(b) }
	}
	sort.SliceStable(out, func(i, j int) bool { return less(out[i], out[j]) })
	return out
}
