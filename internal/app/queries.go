package app

import (
	"strings"
	"time"

	"guest_reviews/internal/domain"
)

const DefaultPageSize = 6

// QueryService assembles read models from the current store snapshot.
// Nothing here is cached: every call recomputes from the snapshot so a
// moderation change is visible on the next read.
type QueryService struct {
	store    *ReviewStore
	pageSize int
}

func NewQueryService(store *ReviewStore, pageSize int) *QueryService {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &QueryService{store: store, pageSize: pageSize}
}

func (s *QueryService) ListReviews(c Criteria, key SortKey, pg domain.PageQuery) domain.ReviewsPage {
	snap := s.store.Snapshot()
	rs := Sort(Filter(snap, c), key)

	perPage := pg.PerPage
	if perPage <= 0 {
		perPage = s.pageSize
	}
	page := pg.Page
	if page < 1 {
		page = 1
	}

	out := domain.ReviewsPage{
		Items:      []domain.Review{},
		Total:      len(rs),
		Page:       page,
		PerPage:    perPage,
		TotalPages: pageCount(len(rs), perPage),
		Properties: DistinctProperties(snap),
		Channels:   DistinctSources(snap),
	}
	// page is bounded by TotalPages before multiplying, so lo cannot overflow
	if page <= out.TotalPages {
		lo := (page - 1) * perPage
		hi := len(rs)
		if hi-lo > perPage {
			hi = lo + perPage
		}
		out.Items = rs[lo:hi]
	}

	agg := s.store.Aggregation()
	out.Warnings = agg.WarningMessages()
	out.Advisory = agg.Advisory
	return out
}

func (s *QueryService) Analytics(w Window, now time.Time) domain.Analytics {
	return ComputeAnalytics(s.store.Snapshot(), w, now)
}

func (s *QueryService) Properties(q string, by PropertySort) []domain.PropertySummary {
	return SortProperties(SearchProperties(PropertySummaries(s.store.Snapshot()), q), by)
}

func (s *QueryService) Property(name string) (domain.PropertyDetail, error) {
	d, ok := BuildPropertyDetail(s.store.Snapshot(), strings.TrimSpace(name))
	if !ok {
		return domain.PropertyDetail{}, domain.ErrPropertyNotFound
	}
	return d, nil
}

func (s *QueryService) Stats() domain.DashboardStats {
	return Stats(s.store.Snapshot())
}

func pageCount(n, perPage int) int {
	if n == 0 {
		return 0
	}
	return (n-1)/perPage + 1
}
