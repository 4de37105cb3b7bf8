package app_test

import (
	"errors"
	"sort"
	"testing"

	"guest_reviews/internal/app"
	"guest_reviews/internal/domain"
)

func TestSort_IsPermutationAndLeavesInput(t *testing.T) {
	revs := seedReviews(t)
	before := ids(revs)
	for _, key := range []app.SortKey{app.SortNewest, app.SortOldest, app.SortHighestRating, app.SortLowestRating} {
		out := app.Sort(revs, key)
		a, b := ids(out), ids(revs)
		sort.Strings(a)
		sort.Strings(b)
		if !equalIDs(a, b) {
			t.Fatalf("%s: not a permutation", key)
		}
	}
	if !equalIDs(before, ids(revs)) {
		t.Fatalf("input was reordered")
	}
}

func TestSort_Orders(t *testing.T) {
	revs := seedReviews(t)

	newest := app.Sort(revs, app.SortNewest)
	if newest[0].ID != "3" || newest[len(newest)-1].ID != "15" {
		t.Fatalf("newest: %v", ids(newest))
	}
	oldest := app.Sort(revs, app.SortOldest)
	if oldest[0].ID != "15" || oldest[len(oldest)-1].ID != "3" {
		t.Fatalf("oldest: %v", ids(oldest))
	}

	// stable: equal ratings keep input order
	high := ids(app.Sort(revs, app.SortHighestRating))
	if !equalIDs(high[:6], []string{"1", "4", "6", "9", "12", "15"}) {
		t.Fatalf("highest-rating: %v", high)
	}
	low := ids(app.Sort(revs, app.SortLowestRating))
	if !equalIDs(low[:4], []string{"13", "7", "3", "10"}) {
		t.Fatalf("lowest-rating: %v", low)
	}
}

func TestSort_UndatedAreOldest(t *testing.T) {
	revs := []domain.Review{{ID: "a", Date: ""}, {ID: "b", Date: "2025-01-01"}, {ID: "c", Date: "1970-01-01"}}
	if got := ids(app.Sort(revs, app.SortNewest)); !equalIDs(got, []string{"b", "c", "a"}) {
		t.Fatalf("newest: %v", got)
	}
	if got := ids(app.Sort(revs, app.SortOldest)); !equalIDs(got, []string{"a", "c", "b"}) {
		t.Fatalf("oldest: %v", got)
	}
}

func TestParseSortKey(t *testing.T) {
	if k, err := app.ParseSortKey(""); err != nil || k != app.SortNewest {
		t.Fatalf("empty key: %v %v", k, err)
	}
	if _, err := app.ParseSortKey("random"); !errors.Is(err, domain.ErrInvalidSort) {
		t.Fatalf("expected ErrInvalidSort, got %v", err)
	}
	// unknown keys passed straight to Sort behave as newest
	revs := seedReviews(t)
	if !equalIDs(ids(app.Sort(revs, "random")), ids(app.Sort(revs, app.SortNewest))) {
		t.Fatalf("unknown key should fall back to newest")
	}
}
