package app_test

import (
	"errors"
	"math"
	"testing"
	"time"

	"guest_reviews/internal/app"
	"guest_reviews/internal/domain"
)

var refNow = time.Date(2025, 8, 25, 12, 0, 0, 0, time.UTC)

func near(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestComputeAnalytics_Empty(t *testing.T) {
	a := app.ComputeAnalytics(nil, app.Window6M, refNow)
	if a.TotalReviews != 0 || a.AverageRating != 0 || a.ApprovalRate != 0 || a.MonthlyGrowth != 0 {
		t.Fatalf("expected zeros: %+v", a)
	}
	if len(a.MonthlyTrends) != 6 {
		t.Fatalf("expected 6 empty buckets, got %d", len(a.MonthlyTrends))
	}
	for _, b := range a.MonthlyTrends {
		if b.Reviews != 0 || b.Rating != 0 {
			t.Fatalf("non-empty bucket: %+v", b)
		}
	}
	if len(a.RatingDistribution) != 5 {
		t.Fatalf("distribution: %+v", a.RatingDistribution)
	}
	for _, rc := range a.RatingDistribution {
		if rc.Count != 0 || rc.Percentage != 0 {
			t.Fatalf("distribution not zero: %+v", rc)
		}
	}
	if len(a.PropertyPerformance) != 0 || len(a.TopPerformers) != 0 || len(a.NeedsAttention) != 0 {
		t.Fatalf("expected no properties: %+v", a)
	}
}

func TestComputeAnalytics_SeedOneMonth(t *testing.T) {
	a := app.ComputeAnalytics(seedReviews(t), app.Window1M, refNow)

	if len(a.MonthlyTrends) != 1 || a.MonthlyTrends[0].Month != "Aug" || a.MonthlyTrends[0].Year != 2025 {
		t.Fatalf("buckets: %+v", a.MonthlyTrends)
	}
	if a.TotalReviews != 10 || a.MonthlyTrends[0].Reviews != 10 {
		t.Fatalf("total: %+v", a)
	}
	if !near(a.ApprovalRate, 60) || !near(a.AverageRating, 28.0/6) {
		t.Fatalf("rates: approval=%v avg=%v", a.ApprovalRate, a.AverageRating)
	}

	wantCounts := []int{4, 3, 2, 1, 0}
	for i, rc := range a.RatingDistribution {
		if rc.Rating != 5-i || rc.Count != wantCounts[i] || !near(rc.Percentage, float64(wantCounts[i])*10) {
			t.Fatalf("distribution[%d]: %+v", i, rc)
		}
	}

	wantPerf := []struct {
		name    string
		rating  float64
		reviews int
	}{
		{"Skyline Penthouse", 5, 2},
		{"Garden District Home", 5, 1},
		{"Sunset Villa", 4, 3},
		{"Downtown Core Apartment", 11.0 / 3, 3},
		{"Waterfront Studio", 2, 1},
	}
	if len(a.PropertyPerformance) != len(wantPerf) {
		t.Fatalf("performance: %+v", a.PropertyPerformance)
	}
	for i, w := range wantPerf {
		p := a.PropertyPerformance[i]
		if p.Name != w.name || !near(p.Rating, w.rating) || p.Reviews != w.reviews || p.Trend != app.PseudoTrend(w.name) {
			t.Fatalf("performance[%d]: got %+v want %+v", i, p, w)
		}
	}

	if len(a.TopPerformers) != 3 || a.TopPerformers[2].Name != "Sunset Villa" {
		t.Fatalf("top performers: %+v", a.TopPerformers)
	}

	wantAttention := map[string][]string{
		"Skyline Penthouse":       {app.IssueFewReviews, app.IssueDecliningTrend},
		"Garden District Home":    {app.IssueFewReviews, app.IssueDecliningTrend},
		"Downtown Core Apartment": {app.IssueBelowAverage, app.IssueDecliningTrend},
		"Waterfront Studio":       {app.IssueLowRating, app.IssueBelowAverage, app.IssueFewReviews, app.IssueDecliningTrend},
	}
	if len(a.NeedsAttention) != len(wantAttention) {
		t.Fatalf("needs attention: %+v", a.NeedsAttention)
	}
	for _, item := range a.NeedsAttention {
		if !equalIDs(item.Issues, wantAttention[item.Name]) {
			t.Fatalf("%s: issues %v want %v", item.Name, item.Issues, wantAttention[item.Name])
		}
	}
}

func TestComputeAnalytics_SeedThreeMonths(t *testing.T) {
	a := app.ComputeAnalytics(seedReviews(t), app.Window3M, refNow)
	if a.TotalReviews != 15 {
		t.Fatalf("total: %d", a.TotalReviews)
	}
	got := []int{}
	for _, b := range a.MonthlyTrends {
		got = append(got, b.Reviews)
	}
	if len(got) != 3 || got[0] != 0 || got[1] != 5 || got[2] != 10 {
		t.Fatalf("buckets: %+v", a.MonthlyTrends)
	}
	if a.MonthlyTrends[0].Month != "Jun" || !near(a.MonthlyGrowth, 100) {
		t.Fatalf("growth: %v buckets %+v", a.MonthlyGrowth, a.MonthlyTrends)
	}
}

func TestComputeAnalytics_DistributionSumsTo100(t *testing.T) {
	for _, w := range []app.Window{app.Window1M, app.Window3M, app.Window6M, app.Window1Y} {
		a := app.ComputeAnalytics(seedReviews(t), w, refNow)
		sum := 0.0
		for _, rc := range a.RatingDistribution {
			sum += rc.Percentage
		}
		if !near(sum, 100) {
			t.Fatalf("%s: distribution sums to %v", w, sum)
		}
	}
}

func TestComputeAnalytics_WindowStartIsStrict(t *testing.T) {
	// Aug 31 minus six months normalizes to Mar 3, so the first days of March
	// fall outside the window even though March is a bucket.
	now := time.Date(2025, 8, 31, 0, 0, 0, 0, time.UTC)
	revs := []domain.Review{
		{ID: "early", Rating: 4, Date: "2025-03-02", ListingName: "L"},
		{ID: "in", Rating: 4, Date: "2025-03-03", ListingName: "L"},
		{ID: "undated", Rating: 4, Date: "", ListingName: "L"},
	}
	a := app.ComputeAnalytics(revs, app.Window6M, now)
	if a.MonthlyTrends[0].Month != "Mar" || a.MonthlyTrends[0].Reviews != 1 || a.TotalReviews != 1 {
		t.Fatalf("unexpected: %+v", a.MonthlyTrends)
	}
}

func TestComputeAnalytics_YearWindow(t *testing.T) {
	a := app.ComputeAnalytics(seedReviews(t), app.Window1Y, refNow)
	if len(a.MonthlyTrends) != 12 || a.MonthlyTrends[0].Month != "Sep" || a.MonthlyTrends[0].Year != 2024 {
		t.Fatalf("buckets: %+v", a.MonthlyTrends)
	}
}

func TestAttentionIssues(t *testing.T) {
	cases := []struct {
		p    domain.PropertyPerformance
		want []string
	}{
		{domain.PropertyPerformance{Rating: 3.9, Reviews: 10}, []string{app.IssueBelowAverage}},
		{domain.PropertyPerformance{Rating: 3.4, Reviews: 10}, []string{app.IssueLowRating, app.IssueBelowAverage}},
		{domain.PropertyPerformance{Rating: 5.0, Reviews: 2}, []string{app.IssueFewReviews}},
		{domain.PropertyPerformance{Rating: 4.5, Reviews: 5, Trend: -6}, []string{app.IssueDecliningTrend}},
		{domain.PropertyPerformance{Rating: 4.5, Reviews: 5, Trend: -5}, []string{}},
	}
	for _, tc := range cases {
		if got := app.AttentionIssues(tc.p); !equalIDs(got, tc.want) {
			t.Fatalf("%+v: got %v want %v", tc.p, got, tc.want)
		}
	}
}

func TestNeedsAttention_Thresholds(t *testing.T) {
	// "Business District Loft" has a trend of -1, so only rating and count matter
	mk := func(n int, rating float64) []domain.Review {
		out := make([]domain.Review, n)
		for i := range out {
			out[i] = domain.Review{ID: string(rune('a' + i)), Rating: rating, Date: "2025-08-01", ListingName: "Business District Loft"}
		}
		return out
	}
	if a := app.ComputeAnalytics(mk(3, 4), app.Window1M, refNow); len(a.NeedsAttention) != 0 {
		t.Fatalf("4.0 with 3 reviews is healthy: %+v", a.NeedsAttention)
	}
	if a := app.ComputeAnalytics(mk(10, 3.9), app.Window1M, refNow); len(a.NeedsAttention) != 1 {
		t.Fatalf("3.9 with 10 reviews needs attention: %+v", a.NeedsAttention)
	}
}

func TestPseudoTrend(t *testing.T) {
	cases := map[string]int{
		"Sunset Villa":               10,
		"Downtown Core Apartment":    -14,
		"Skyline Penthouse":          -20,
		"Historic Quarter Apartment": 19,
		"The Ritz London":            -18,
		"":                           -20,
	}
	for name, want := range cases {
		if got := app.PseudoTrend(name); got != want {
			t.Fatalf("PseudoTrend(%q) = %d, want %d", name, got, want)
		}
		if got := app.PseudoTrend(name); got < -20 || got > 20 {
			t.Fatalf("out of range: %d", got)
		}
	}
}

func TestParseWindow(t *testing.T) {
	if w, err := app.ParseWindow(""); err != nil || w != app.DefaultWindow {
		t.Fatalf("default: %v %v", w, err)
	}
	if w, _ := app.ParseWindow("1y"); w.Months() != 12 {
		t.Fatalf("1y months: %d", w.Months())
	}
	if _, err := app.ParseWindow("2w"); !errors.Is(err, domain.ErrInvalidWindow) {
		t.Fatalf("expected ErrInvalidWindow, got %v", err)
	}
}
