package app

import (
	"strings"
	"time"

	"guest_reviews/internal/domain"
)

// Criteria is a conjunctive set of optional predicates. The zero value of
// every field disables that predicate.
type Criteria struct {
	Property  string        // exact listingName
	Status    domain.Status // "" or StatusAll: any status
	MinRating float64       // rating >= MinRating; 0: any rating
	Search    string        // case-insensitive substring of content or author
	From, To  time.Time     // inclusive calendar-date bounds; zero: unbounded
	Source    domain.Source // exact source
}

// Filter returns the reviews matching every supplied predicate, in input order.
func Filter(in []domain.Review, c Criteria) []domain.Review {
	out := make([]domain.Review, 0, len(in))
	needle := strings.ToLower(c.Search)
	for _, r := range in {
		if c.matches(r, needle) {
			out = append(out, r)
		}
	}
	return out
}

func (c Criteria) matches(r domain.Review, needle string) bool {
	if c.Property != "" && r.ListingName != c.Property {
		return false
	}
	if c.Status != "" && c.Status != domain.StatusAll && r.Status != c.Status {
		return false
	}
	if c.MinRating > 0 && r.Rating < c.MinRating {
		return false
	}
	if needle != "" &&
		!strings.Contains(strings.ToLower(r.Content), needle) &&
		!strings.Contains(strings.ToLower(r.Author), needle) {
		return false
	}
	if !c.From.IsZero() || !c.To.IsZero() {
		t, ok := r.Time()
		if !ok {
			return false
		}
		if !c.From.IsZero() && t.Before(truncateDay(c.From)) {
			return false
		}
		if !c.To.IsZero() && t.After(truncateDay(c.To)) {
			return false
		}
	}
	if c.Source != "" && r.Source != c.Source {
		return false
	}
	return true
}

func truncateDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
