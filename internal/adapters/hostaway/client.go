package hostaway

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"guest_reviews/internal/adapters/upstream"
)

// Client reads the account's review feed from the Hostaway API.
type Client struct {
	base      string
	accountID string
	key       string
	http      *upstream.Client
}

func New(base, accountID, key string, timeout time.Duration, rps int) (*Client, error) {
	if key == "" {
		return nil, fmt.Errorf("hostaway: API key is required")
	}
	if accountID == "" {
		return nil, fmt.Errorf("hostaway: account id is required")
	}
	return &Client{
		base:      strings.TrimRight(base, "/"),
		accountID: accountID,
		key:       key,
		http:      upstream.New("hostaway", timeout, rps),
	}, nil
}

func (c *Client) GetReviews(ctx context.Context) (json.RawMessage, error) {
	u := fmt.Sprintf("%s/reviews?accountId=%s", c.base, url.QueryEscape(c.accountID))
	h := http.Header{}
	h.Set("Authorization", "Bearer "+c.key)
	h.Set("Cache-Control", "no-cache")
	b, err := c.http.GetRaw(ctx, "reviews", u, h)
	if err != nil {
		return nil, err
	}
	return json.RawMessage(b), nil
}

//go:embed demo_reviews.json
var demoReviews []byte

// FixtureClient serves the bundled demo payload, shaped like a real
// account response (one host-to-guest entry and three guest reviews).
type FixtureClient struct{}

func (FixtureClient) GetReviews(ctx context.Context) (json.RawMessage, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	out := make(json.RawMessage, len(demoReviews))
	copy(out, demoReviews)
	return out, nil
}
