package app

import (
	"sort"
	"strings"

	"guest_reviews/internal/domain"
)

type PropertySort string

const (
	PropertySortName    PropertySort = "name"
	PropertySortRating  PropertySort = "rating"
	PropertySortReviews PropertySort = "reviews"
)

// PropertySummaries rolls every review up per listingName. The average
// counts approved reviews only, matching what guests can see.
func PropertySummaries(reviews []domain.Review) []domain.PropertySummary {
	idx := make(map[string]int)
	sums := make([]float64, 0)
	out := make([]domain.PropertySummary, 0)
	for _, r := range reviews {
		i, ok := idx[r.ListingName]
		if !ok {
			i = len(out)
			idx[r.ListingName] = i
			out = append(out, domain.PropertySummary{Name: r.ListingName})
			sums = append(sums, 0)
		}
		s := &out[i]
		s.TotalReviews++
		switch r.Status {
		case domain.StatusApproved:
			s.ApprovedReviews++
			sums[i] += r.Rating
		case domain.StatusPending:
			s.PendingReviews++
		case domain.StatusDenied:
			s.DeniedReviews++
		}
	}
	for i := range out {
		if out[i].ApprovedReviews > 0 {
			out[i].AverageRating = sums[i] / float64(out[i].ApprovedReviews)
		}
	}
	return out
}

// SortProperties orders summaries; unknown keys fall back to name order.
func SortProperties(in []domain.PropertySummary, by PropertySort) []domain.PropertySummary {
	out := make([]domain.PropertySummary, len(in))
	copy(out, in)
	switch by {
	case PropertySortRating:
		sort.SliceStable(out, func(i, j int) bool { return out[i].AverageRating > out[j].AverageRating })
	case PropertySortReviews:
		sort.SliceStable(out, func(i, j int) bool { return out[i].TotalReviews > out[j].TotalReviews })
	default:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	}
	return out
}

// SearchProperties keeps summaries whose name contains q, case-insensitively.
func SearchProperties(in []domain.PropertySummary, q string) []domain.PropertySummary {
	q = strings.ToLower(strings.TrimSpace(q))
	if q == "" {
		return in
	}
	out := make([]domain.PropertySummary, 0, len(in))
	for _, p := range in {
		if strings.Contains(strings.ToLower(p.Name), q) {
			out = append(out, p)
		}
	}
	return out
}

// BuildPropertyDetail is the public view of one property: approved reviews only.
// found is false when the property has no reviews in any status.
func BuildPropertyDetail(reviews []domain.Review, name string) (detail domain.PropertyDetail, found bool) {
	approved := make([]domain.Review, 0)
	for _, r := range reviews {
		if r.ListingName != name {
			continue
		}
		found = true
		if r.Status == domain.StatusApproved {
			approved = append(approved, r)
		}
	}
	detail = domain.PropertyDetail{
		Name:            name,
		TotalReviews:    len(approved),
		RatingBreakdown: ratingBreakdown(approved, len(approved)),
		Reviews:         approved,
	}
	if len(approved) > 0 {
		sum := 0.0
		for _, r := range approved {
			sum += r.Rating
		}
		detail.AverageRating = sum / float64(len(approved))
	}
	return detail, found
}

// Stats summarizes the whole collection across all statuses.
func Stats(reviews []domain.Review) domain.DashboardStats {
	var s domain.DashboardStats
	sum := 0.0
	for _, r := range reviews {
		s.Total++
		sum += r.Rating
		switch r.Status {
		case domain.StatusApproved:
			s.Approved++
		case domain.StatusPending:
			s.Pending++
		case domain.StatusDenied:
			s.Denied++
		}
	}
	if s.Total > 0 {
		s.AverageRating = sum / float64(s.Total)
	}
	return s
}

// DistinctProperties lists listing names in first-appearance order.
func DistinctProperties(reviews []domain.Review) []string {
	seen := make(map[string]struct{})
	out := make([]string, 0)
	for _, r := range reviews {
		if _, ok := seen[r.ListingName]; ok {
			continue
		}
		seen[r.ListingName] = struct{}{}
		out = append(out, r.ListingName)
	}
	return out
}

// DistinctSources lists non-empty sources in first-appearance order.
func DistinctSources(reviews []domain.Review) []domain.Source {
	seen := make(map[domain.Source]struct{})
	out := make([]domain.Source, 0)
	for _, r := range reviews {
		if r.Source == "" {
			continue
		}
		if _, ok := seen[r.Source]; ok {
			continue
		}
		seen[r.Source] = struct{}{}
		out = append(out, r.Source)
	}
	return out
}
