package app

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"guest_reviews/internal/domain"
)

const (
	HostawayChannel = "Hostaway Platform"
	GoogleChannel   = "Google Reviews (fetched from Google)"

	// MaxGoogleReviews bounds how many maps reviews one fetch ingests.
	MaxGoogleReviews = 5

	guestToHost = "guest-to-host"
)

/********** hostaway payload **********/

type hostawayEnvelope struct {
	Status string          `json:"status"`
	Result json.RawMessage `json:"result"`
}

type hostawayReview struct {
	ID             flexID             `json:"id"`
	Type           string             `json:"type"`
	Status         string             `json:"status"`
	Rating         *float64           `json:"rating"`
	PublicReview   string             `json:"publicReview"`
	ReviewCategory []hostawayCategory `json:"reviewCategory"`
	SubmittedAt    string             `json:"submittedAt"`
	GuestName      string             `json:"guestName"`
	ListingName    string             `json:"listingName"`
}

type hostawayCategory struct {
	Category string  `json:"category"`
	Rating   float64 `json:"rating"` // 0-10
}

// flexID accepts numeric or string ids.
type flexID string

func (f *flexID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = flexID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*f = flexID(n.String())
	return nil
}

var submittedAtLayouts = []string{
	"2006-01-02 15:04:05",
	time.RFC3339,
	"2006-01-02T15:04:05",
	domain.DateLayout,
}

/********** hostaway mapper **********/

// NormalizeHostaway validates a Hostaway reviews response and maps its
// guest-to-host entries onto the canonical shape. Any shape mismatch fails
// the whole batch with ErrBadUpstreamFormat.
func NormalizeHostaway(body []byte) ([]domain.Review, error) {
	var env hostawayEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrBadUpstreamFormat, err)
	}
	if env.Status != "success" {
		return nil, fmt.Errorf("%w: status %q", domain.ErrBadUpstreamFormat, env.Status)
	}
	raw := bytes.TrimSpace(env.Result)
	if len(raw) == 0 || raw[0] != '[' {
		return nil, fmt.Errorf("%w: result is not a list", domain.ErrBadUpstreamFormat)
	}
	var in []hostawayReview
	if err := json.Unmarshal(raw, &in); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrBadUpstreamFormat, err)
	}

	out := make([]domain.Review, 0, len(in))
	for _, r := range in {
		if r.Type != guestToHost {
			continue
		}
		date := hostawayDate(r.SubmittedAt)
		if date == "" && r.SubmittedAt != "" {
			log.Warn().Str("id", string(r.ID)).Str("submittedAt", r.SubmittedAt).Msg("unparseable hostaway timestamp")
		}
		out = append(out, domain.Review{
			ID:          string(r.ID),
			Author:      r.GuestName,
			Rating:      hostawayRating(r),
			Content:     r.PublicReview,
			Date:        date,
			Status:      domain.StatusPending,
			ListingName: r.ListingName,
			Source:      domain.SourceHostaway,
			Channel:     HostawayChannel,
		})
	}
	return out, nil
}

// hostawayRating: direct rating, else category mean projected 10 -> 5, else 5.
func hostawayRating(r hostawayReview) float64 {
	rating := 0.0
	if r.Rating != nil {
		rating = *r.Rating
	}
	if rating == 0 && len(r.ReviewCategory) > 0 {
		sum := 0.0
		for _, c := range r.ReviewCategory {
			sum += c.Rating
		}
		rating = sum / float64(len(r.ReviewCategory)) / 2
	}
	// a zero mean (every category rated 0) is no signal either and becomes 5
	if rating == 0 {
		rating = 5
	}
	return RoundHalf(rating)
}

// RoundHalf rounds to the nearest 0.5.
func RoundHalf(f float64) float64 {
	return math.Round(f*2) / 2
}

func hostawayDate(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	for _, layout := range submittedAtLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return domain.FormatDate(t)
		}
	}
	return ""
}

/********** google mapper **********/

// NormalizeGoogle maps place reviews for one listing. Maps reviews are
// already public, so they enter as approved.
func NormalizeGoogle(listingName string, in []domain.PlaceReview) []domain.Review {
	if len(in) > MaxGoogleReviews {
		in = in[:MaxGoogleReviews]
	}
	out := make([]domain.Review, 0, len(in))
	for i, r := range in {
		rv := domain.Review{
			Author:      r.AuthorName,
			Rating:      r.Rating,
			Content:     r.Text,
			Status:      domain.StatusApproved,
			ListingName: listingName,
			Source:      domain.SourceGoogle,
			Channel:     GoogleChannel,
		}
		if r.Time > 0 {
			rv.ID = strconv.FormatInt(r.Time, 10)
			rv.Date = domain.FormatDate(time.Unix(r.Time, 0))
		} else {
			// no timestamp: stable name-based id so reloads keep the same key
			sig := strings.Join([]string{listingName, r.AuthorName, r.Text, strconv.Itoa(i)}, "|")
			rv.ID = uuid.NewSHA1(uuid.NameSpaceOID, []byte(sig)).String()
		}
		out = append(out, rv)
	}
	return out
}

/********** seed mapper **********/

// NormalizeSeed coerces unknown authored statuses to approved.
func NormalizeSeed(in []domain.Review) []domain.Review {
	out := make([]domain.Review, len(in))
	for i, r := range in {
		if !r.Status.Valid() {
			r.Status = domain.StatusApproved
		}
		out[i] = r
	}
	return out
}
