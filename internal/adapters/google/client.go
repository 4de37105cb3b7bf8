package google

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"guest_reviews/internal/adapters/upstream"
	"guest_reviews/internal/domain"
)

// Client talks to the Places web service: text lookup, then details.
type Client struct {
	base string
	key  string
	http *upstream.Client
}

func New(base, key string, timeout time.Duration, rps int) (*Client, error) {
	if key == "" {
		return nil, fmt.Errorf("google: API key is required")
	}
	return &Client{
		base: strings.TrimRight(base, "/"),
		key:  key,
		http: upstream.New("google", timeout, rps),
	}, nil
}

type findPlaceResponse struct {
	Status       string `json:"status"`
	ErrorMessage string `json:"error_message"`
	Candidates   []struct {
		PlaceID string `json:"place_id"`
	} `json:"candidates"`
}

type detailsResponse struct {
	Status       string `json:"status"`
	ErrorMessage string `json:"error_message"`
	Result       struct {
		Name    string               `json:"name"`
		Reviews []domain.PlaceReview `json:"reviews"`
	} `json:"result"`
}

// FindPlaceID returns the first candidate's place id, or "" when the
// lookup matched nothing.
func (c *Client) FindPlaceID(ctx context.Context, input string) (string, error) {
	q := url.Values{}
	q.Set("input", input)
	q.Set("inputtype", "textquery")
	q.Set("fields", "place_id")
	q.Set("key", c.key)

	var out findPlaceResponse
	if err := c.http.GetJSON(ctx, "findplacefromtext", c.base+"/findplacefromtext/json?"+q.Encode(), nil, &out); err != nil {
		return "", err
	}
	if err := statusErr(out.Status, out.ErrorMessage); err != nil {
		return "", err
	}
	if len(out.Candidates) == 0 {
		return "", nil
	}
	return out.Candidates[0].PlaceID, nil
}

func (c *Client) GetPlaceReviews(ctx context.Context, placeID string) ([]domain.PlaceReview, error) {
	q := url.Values{}
	q.Set("place_id", placeID)
	q.Set("fields", "name,reviews")
	q.Set("key", c.key)

	var out detailsResponse
	if err := c.http.GetJSON(ctx, "details", c.base+"/details/json?"+q.Encode(), nil, &out); err != nil {
		return nil, err
	}
	if out.Status == "NOT_FOUND" {
		return nil, domain.ErrPlaceNotFound
	}
	if err := statusErr(out.Status, out.ErrorMessage); err != nil {
		return nil, err
	}
	if out.Result.Reviews == nil {
		return []domain.PlaceReview{}, nil
	}
	return out.Result.Reviews, nil
}

// statusErr maps the service's in-body status; an empty status is accepted.
func statusErr(status, msg string) error {
	switch status {
	case "", "OK", "ZERO_RESULTS":
		return nil
	}
	if msg != "" {
		return fmt.Errorf("%w: google: %s: %s", domain.ErrUpstreamUnavailable, status, msg)
	}
	return fmt.Errorf("%w: google: %s", domain.ErrUpstreamUnavailable, status)
}
