package app

import (
	"sync"

	"guest_reviews/internal/domain"
)

// ReviewStore owns the in-memory review collection. Writes are
// copy-on-write: a snapshot handed to a reader is never mutated afterwards.
type ReviewStore struct {
	mu       sync.RWMutex
	reviews  []domain.Review
	index    map[string]int
	agg      Aggregation
	revision uint64
}

func NewReviewStore() *ReviewStore {
	return &ReviewStore{reviews: []domain.Review{}, index: map[string]int{}}
}

// Snapshot returns the current collection. Callers must treat it as read-only.
func (s *ReviewStore) Snapshot() []domain.Review {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.reviews
}

// Aggregation returns the warnings and advisory of the last load.
func (s *ReviewStore) Aggregation() Aggregation {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Aggregation{Warnings: s.agg.Warnings, Advisory: s.agg.Advisory}
}

func (s *ReviewStore) Revision() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.revision
}

// Replace swaps in a freshly aggregated collection.
func (s *ReviewStore) Replace(agg Aggregation) {
	reviews := make([]domain.Review, len(agg.Reviews))
	copy(reviews, agg.Reviews)
	index := make(map[string]int, len(reviews))
	for i, r := range reviews {
		index[r.ID] = i
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.reviews = reviews
	s.index = index
	s.agg = Aggregation{Warnings: agg.Warnings, Advisory: agg.Advisory}
	s.revision++
}

// SetStatus moves one review to status, leaving every other field and record untouched.
func (s *ReviewStore) SetStatus(id string, status domain.Status) (domain.Review, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i, ok := s.index[id]
	if !ok {
		return domain.Review{}, domain.ErrReviewNotFound
	}
	next := make([]domain.Review, len(s.reviews))
	copy(next, s.reviews)
	switch status {
	case domain.StatusApproved:
		next[i] = next[i].Approve()
	case domain.StatusDenied:
		next[i] = next[i].Deny()
	default:
		next[i].Status = status
	}
	s.reviews = next
	s.revision++
	return next[i], nil
}
