package httpserver

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"guest_reviews/internal/app"
	"guest_reviews/internal/domain"
)

var validate = validator.New()

// listQuery is the bound form of GET /v1/reviews.
type listQuery struct {
	Property  string
	Status    string  `validate:"omitempty,oneof=approved pending denied all"`
	MinRating float64 `validate:"gte=0,lte=5"`
	Search    string  `validate:"max=200"`
	From      string  `validate:"omitempty,datetime=2006-01-02"`
	To        string  `validate:"omitempty,datetime=2006-01-02"`
	Channel   string  `validate:"omitempty,oneof=hostaway google airbnb booking direct"`
	Sort      string  `validate:"omitempty,oneof=newest oldest highest-rating lowest-rating"`
	Page      int     `validate:"gte=0,lte=100000"`
	PerPage   int     `validate:"gte=0,lte=100"`
}

func bindListQuery(q url.Values) (listQuery, error) {
	lq := listQuery{
		Property: strings.TrimSpace(q.Get("property")),
		Status:   strings.ToLower(strings.TrimSpace(q.Get("status"))),
		Search:   strings.TrimSpace(q.Get("q")),
		From:     strings.TrimSpace(q.Get("from")),
		To:       strings.TrimSpace(q.Get("to")),
		Channel:  strings.ToLower(strings.TrimSpace(q.Get("channel"))),
		Sort:     strings.TrimSpace(q.Get("sort")),
	}
	var err error
	if lq.MinRating, err = floatParam(q, "minRating"); err != nil {
		return lq, err
	}
	if lq.Page, err = intParam(q, "page"); err != nil {
		return lq, err
	}
	if lq.PerPage, err = intParam(q, "perPage"); err != nil {
		return lq, err
	}
	if err := validate.Struct(lq); err != nil {
		return lq, describe(err)
	}
	return lq, nil
}

func (lq listQuery) criteria() app.Criteria {
	c := app.Criteria{
		Property:  lq.Property,
		Status:    domain.Status(lq.Status),
		MinRating: lq.MinRating,
		Search:    lq.Search,
		Source:    domain.Source(lq.Channel),
	}
	// already validated as calendar dates
	c.From, _ = domain.ParseDate(lq.From)
	c.To, _ = domain.ParseDate(lq.To)
	return c
}

type analyticsQuery struct {
	Window string `validate:"omitempty,oneof=1m 3m 6m 1y"`
	Now    string `validate:"omitempty,datetime=2006-01-02"`
}

func bindAnalyticsQuery(q url.Values, now time.Time) (app.Window, time.Time, error) {
	aq := analyticsQuery{Window: strings.TrimSpace(q.Get("window")), Now: strings.TrimSpace(q.Get("now"))}
	if err := validate.Struct(aq); err != nil {
		return "", time.Time{}, describe(err)
	}
	w, err := app.ParseWindow(aq.Window)
	if err != nil {
		return "", time.Time{}, err
	}
	if t, ok := domain.ParseDate(aq.Now); ok {
		now = t
	}
	return w, now, nil
}

type propertiesQuery struct {
	Search string `validate:"max=200"`
	Sort   string `validate:"omitempty,oneof=name rating reviews"`
}

func bindPropertiesQuery(q url.Values) (propertiesQuery, error) {
	pq := propertiesQuery{Search: strings.TrimSpace(q.Get("q")), Sort: strings.TrimSpace(q.Get("sort"))}
	if err := validate.Struct(pq); err != nil {
		return pq, describe(err)
	}
	return pq, nil
}

type paramError struct{ msg string }

func (e paramError) Error() string { return e.msg }

func intParam(q url.Values, name string) (int, error) {
	s := strings.TrimSpace(q.Get(name))
	if s == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, paramError{fmt.Sprintf("%s must be an integer", name)}
	}
	return n, nil
}

func floatParam(q url.Values, name string) (float64, error) {
	s := strings.TrimSpace(q.Get(name))
	if s == "" {
		return 0, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, paramError{fmt.Sprintf("%s must be a number", name)}
	}
	return f, nil
}

// describe turns validator output into one readable line.
func describe(err error) error {
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return paramError{err.Error()}
	}
	parts := make([]string, 0, len(ve))
	for _, fe := range ve {
		if fe.Param() != "" {
			parts = append(parts, fmt.Sprintf("%s: failed %s=%s", fe.Field(), fe.Tag(), fe.Param()))
		} else {
			parts = append(parts, fmt.Sprintf("%s: failed %s", fe.Field(), fe.Tag()))
		}
	}
	return paramError{strings.Join(parts, "; ")}
}
