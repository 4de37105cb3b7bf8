package hostaway_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"guest_reviews/internal/adapters/hostaway"
	"guest_reviews/internal/app"
	"guest_reviews/internal/domain"
)

func TestClient_GetReviews(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/reviews" {
			t.Errorf("path: %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("accountId"); got != "61148" {
			t.Errorf("accountId: %q", got)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer secret" {
			t.Errorf("authorization: %q", got)
		}
		_, _ = w.Write([]byte(`{"status":"success","result":[]}`))
	}))
	defer ts.Close()

	cl, err := hostaway.New(ts.URL+"/v1/", "61148", "secret", time.Second, 100)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	body, err := cl.GetReviews(context.Background())
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if string(body) != `{"status":"success","result":[]}` {
		t.Fatalf("unexpected body: %s", body)
	}
}

func TestClient_UpstreamError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusUnauthorized)
	}))
	defer ts.Close()

	cl, _ := hostaway.New(ts.URL, "1", "bad", time.Second, 100)
	_, err := cl.GetReviews(context.Background())
	if !errors.Is(err, domain.ErrUpstreamUnavailable) {
		t.Fatalf("expected ErrUpstreamUnavailable, got %v", err)
	}
}

func TestNew_RequiresCredentials(t *testing.T) {
	if _, err := hostaway.New("http://x", "1", "", time.Second, 1); err == nil {
		t.Fatalf("expected error without key")
	}
	if _, err := hostaway.New("http://x", "", "k", time.Second, 1); err == nil {
		t.Fatalf("expected error without account id")
	}
}

func TestFixtureClient_NormalizesToThreeGuestReviews(t *testing.T) {
	body, err := hostaway.FixtureClient{}.GetReviews(context.Background())
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	revs, err := app.NormalizeHostaway(body)
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if len(revs) != 3 {
		t.Fatalf("expected 3 guest-to-host reviews, got %d: %+v", len(revs), revs)
	}
	want := map[string]float64{"7454": 5, "7455": 4, "7456": 4.5}
	for _, r := range revs {
		if r.Status != domain.StatusPending {
			t.Fatalf("status %q for %s", r.Status, r.ID)
		}
		if want[r.ID] != r.Rating {
			t.Fatalf("rating for %s: got %v want %v", r.ID, r.Rating, want[r.ID])
		}
	}
	if revs[0].Date != "2023-10-15" {
		t.Fatalf("date: %q", revs[0].Date)
	}
}
