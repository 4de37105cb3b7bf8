package app

import (
	"sort"
	"time"
	"unicode/utf16"

	"guest_reviews/internal/domain"
)

type Window string

const (
	Window1M Window = "1m"
	Window3M Window = "3m"
	Window6M Window = "6m"
	Window1Y Window = "1y"

	DefaultWindow = Window6M
)

// Classification thresholds.
const (
	topPerformerCount   = 3
	attentionRating     = 4.0
	lowRating           = 3.5
	minReviewCount      = 3
	decliningTrendFloor = -5

	IssueLowRating      = "Low rating"
	IssueBelowAverage   = "Below average rating"
	IssueFewReviews     = "Few reviews"
	IssueDecliningTrend = "Declining trend"
)

func ParseWindow(s string) (Window, error) {
	switch w := Window(s); w {
	case "":
		return DefaultWindow, nil
	case Window1M, Window3M, Window6M, Window1Y:
		return w, nil
	}
	return "", domain.ErrInvalidWindow
}

// Months is the number of calendar-month buckets the window spans.
func (w Window) Months() int {
	switch w {
	case Window1M:
		return 1
	case Window3M:
		return 3
	case Window1Y:
		return 12
	default:
		return 6
	}
}

// Start is now minus the window length, keeping now's day and clock.
func (w Window) Start(now time.Time) time.Time {
	if w == Window1Y {
		return now.AddDate(-1, 0, 0)
	}
	return now.AddDate(0, -w.Months(), 0)
}

// ComputeAnalytics derives every windowed statistic from the month buckets.
// The union of bucket members is the windowed set; totals, rates and
// distributions are computed over it rather than over a plain date-range
// filter, so a review has to land in a bucket to count anywhere.
func ComputeAnalytics(reviews []domain.Review, w Window, now time.Time) domain.Analytics {
	now = now.UTC()
	buckets, windowed := monthBuckets(reviews, w, now)

	total := 0
	for _, b := range buckets {
		total += b.Reviews
	}

	approved := 0
	approvedSum := 0.0
	for _, r := range windowed {
		if r.Status == domain.StatusApproved {
			approved++
			approvedSum += r.Rating
		}
	}

	out := domain.Analytics{
		Window:             string(w),
		TotalReviews:       total,
		MonthlyTrends:      buckets,
		RatingDistribution: ratingBreakdown(windowed, total),
		MonthlyGrowth:      monthlyGrowth(buckets),
	}
	if total > 0 {
		out.ApprovalRate = float64(approved) / float64(total) * 100
	}
	if approved > 0 {
		out.AverageRating = approvedSum / float64(approved)
	}

	out.PropertyPerformance = propertyPerformance(windowed)
	out.TopPerformers = topPerformers(out.PropertyPerformance)
	out.NeedsAttention = needsAttention(out.PropertyPerformance)
	return out
}

func monthBuckets(reviews []domain.Review, w Window, now time.Time) ([]domain.MonthBucket, []domain.Review) {
	start := w.Start(now)
	n := w.Months()

	buckets := make([]domain.MonthBucket, 0, n)
	windowed := make([]domain.Review, 0)
	for i := n - 1; i >= 0; i-- {
		month := time.Date(now.Year(), now.Month()-time.Month(i), 1, 0, 0, 0, 0, time.UTC)
		b := domain.MonthBucket{Month: month.Format("Jan"), Year: month.Year()}
		sum := 0.0
		for _, r := range reviews {
			t, ok := r.Time()
			if !ok || t.Before(start) {
				continue
			}
			if t.Year() != month.Year() || t.Month() != month.Month() {
				continue
			}
			b.Reviews++
			sum += r.Rating
			windowed = append(windowed, r)
		}
		if b.Reviews > 0 {
			b.Rating = sum / float64(b.Reviews)
		}
		buckets = append(buckets, b)
	}
	return buckets, windowed
}

// ratingBreakdown counts exact ratings 5..1 with their share of total.
func ratingBreakdown(reviews []domain.Review, total int) []domain.RatingCount {
	out := make([]domain.RatingCount, 0, 5)
	for rating := 5; rating >= 1; rating-- {
		rc := domain.RatingCount{Rating: rating}
		for _, r := range reviews {
			if r.Rating == float64(rating) {
				rc.Count++
			}
		}
		if total > 0 {
			rc.Percentage = float64(rc.Count) / float64(total) * 100
		}
		out = append(out, rc)
	}
	return out
}

func monthlyGrowth(buckets []domain.MonthBucket) float64 {
	if len(buckets) < 2 {
		return 0
	}
	prev, last := buckets[len(buckets)-2].Reviews, buckets[len(buckets)-1].Reviews
	if prev == 0 {
		return 0
	}
	return float64(last-prev) / float64(prev) * 100
}

// propertyPerformance groups by listingName in first-appearance order (all
// statuses) and sorts by mean rating, highest first.
func propertyPerformance(reviews []domain.Review) []domain.PropertyPerformance {
	type acc struct {
		sum   float64
		count int
	}
	order := make([]string, 0)
	stats := make(map[string]*acc)
	for _, r := range reviews {
		a, ok := stats[r.ListingName]
		if !ok {
			a = &acc{}
			stats[r.ListingName] = a
			order = append(order, r.ListingName)
		}
		a.sum += r.Rating
		a.count++
	}

	out := make([]domain.PropertyPerformance, 0, len(order))
	for _, name := range order {
		a := stats[name]
		out = append(out, domain.PropertyPerformance{
			Name:    name,
			Rating:  a.sum / float64(a.count),
			Reviews: a.count,
			Trend:   PseudoTrend(name),
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Rating > out[j].Rating })
	return out
}

func topPerformers(perf []domain.PropertyPerformance) []domain.PropertyPerformance {
	n := topPerformerCount
	if len(perf) < n {
		n = len(perf)
	}
	out := make([]domain.PropertyPerformance, n)
	copy(out, perf[:n])
	return out
}

func needsAttention(perf []domain.PropertyPerformance) []domain.AttentionItem {
	out := make([]domain.AttentionItem, 0)
	for _, p := range perf {
		if p.Rating >= attentionRating && p.Reviews >= minReviewCount {
			continue
		}
		out = append(out, domain.AttentionItem{
			Name:    p.Name,
			Rating:  p.Rating,
			Reviews: p.Reviews,
			Issues:  AttentionIssues(p),
		})
	}
	return out
}

// AttentionIssues tags a property; several tags may apply at once.
func AttentionIssues(p domain.PropertyPerformance) []string {
	issues := make([]string, 0, 4)
	if p.Rating < lowRating {
		issues = append(issues, IssueLowRating)
	}
	if p.Rating < attentionRating {
		issues = append(issues, IssueBelowAverage)
	}
	if p.Reviews < minReviewCount {
		issues = append(issues, IssueFewReviews)
	}
	if p.Trend < decliningTrendFloor {
		issues = append(issues, IssueDecliningTrend)
	}
	return issues
}

// PseudoTrend is a placeholder trend indicator in [-20, 20]. It has no
// historical basis: it is a pure function of the property name (sum of its
// UTF-16 code units, mod 41, minus 20) so it stays stable across calls.
func PseudoTrend(name string) int {
	sum := 0
	for _, u := range utf16.Encode([]rune(name)) {
		sum += int(u)
	}
	return sum%41 - 20
}
