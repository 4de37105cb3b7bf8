package domain

import (
	"context"
	"encoding/json"
)

// ReviewSource yields normalized reviews from one origin.
type ReviewSource interface {
	Name() string
	Fetch(ctx context.Context) ([]Review, error)
}

type HostawayClient interface {
	// GetReviews returns the raw response body; shape validation belongs to the mapper.
	GetReviews(ctx context.Context) (json.RawMessage, error)
}

type PlacesClient interface {
	FindPlaceID(ctx context.Context, input string) (string, error)
	GetPlaceReviews(ctx context.Context, placeID string) ([]PlaceReview, error)
}

// PlaceReview is one entry of the maps details payload.
type PlaceReview struct {
	AuthorName string  `json:"author_name"`
	Rating     float64 `json:"rating"`
	Text       string  `json:"text"`
	Time       int64   `json:"time"`
}

type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any, ttlSec int) error
	Del(ctx context.Context, key string) error
}

// Read models & queries

type PageQuery struct {
	Page    int
	PerPage int
}

type ReviewsPage struct {
	Items      []Review `json:"items"`
	Total      int      `json:"total"`
	Page       int      `json:"page"`
	PerPage    int      `json:"perPage"`
	TotalPages int      `json:"totalPages"`
	Properties []string `json:"properties"`
	Channels   []Source `json:"channels"`
	Warnings   []string `json:"warnings,omitempty"`
	Advisory   string   `json:"advisory,omitempty"`
}

type DashboardStats struct {
	Total         int     `json:"total"`
	Approved      int     `json:"approved"`
	Pending       int     `json:"pending"`
	Denied        int     `json:"denied"`
	AverageRating float64 `json:"averageRating"`
}
