package domain

import (
	"strings"
	"time"
)

type Status string

const (
	StatusApproved Status = "approved"
	StatusPending  Status = "pending"
	StatusDenied   Status = "denied"

	// StatusAll is a filter value only; no review ever carries it.
	StatusAll Status = "all"
)

func (s Status) Valid() bool {
	switch s {
	case StatusApproved, StatusPending, StatusDenied:
		return true
	}
	return false
}

type Source string

const (
	SourceHostaway Source = "hostaway"
	SourceGoogle   Source = "google"
	SourceAirbnb   Source = "airbnb"
	SourceBooking  Source = "booking"
	SourceDirect   Source = "direct"
)

// DateLayout is the calendar-date form every review date is normalized to.
const DateLayout = "2006-01-02"

type Review struct {
	ID          string  `json:"id" validate:"required"`
	Author      string  `json:"author"`
	Rating      float64 `json:"rating" validate:"gte=1,lte=5"`
	Content     string  `json:"content"`
	Date        string  `json:"date" validate:"omitempty,datetime=2006-01-02"`
	Status      Status  `json:"status"`
	ListingName string  `json:"listingName" validate:"required"`
	Source      Source  `json:"source,omitempty" validate:"omitempty,oneof=hostaway google airbnb booking direct"`
	Channel     string  `json:"channel,omitempty"`
}

// Time parses Date as a UTC calendar date. ok is false for empty or malformed dates.
func (r Review) Time() (t time.Time, ok bool) {
	return ParseDate(r.Date)
}

// Approve and Deny are unconditional; the later transition wins.
func (r Review) Approve() Review {
	r.Status = StatusApproved
	return r
}

func (r Review) Deny() Review {
	r.Status = StatusDenied
	return r
}

func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	t, err := time.ParseInLocation(DateLayout, s, time.UTC)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

func FormatDate(t time.Time) string {
	return t.UTC().Format(DateLayout)
}
