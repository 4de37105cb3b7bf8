// internal/adapters/http_server/handlers.go
package httpserver

import (
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"guest_reviews/internal/app"
	"guest_reviews/internal/domain"
)

type Handlers struct {
	Q   *app.QueryService
	C   *app.ReviewService
	Now func() time.Time // analytics reference time when ?now is absent
}

type problem struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail,omitempty"`
}

type refreshResponse struct {
	Reviews  int                 `json:"reviews"`
	Warnings []app.SourceWarning `json:"warnings,omitempty"`
	Advisory string              `json:"advisory,omitempty"`
}

func (s *Server) MountHandlers(h *Handlers) {
	if h.Now == nil {
		h.Now = time.Now
	}
	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("ok")) })
	s.mux.Route("/v1", func(r chi.Router) {
		r.Get("/reviews", h.listReviews)
		r.Post("/reviews/refresh", h.refresh)
		r.Post("/reviews/{id}/approve", h.approve)
		r.Post("/reviews/{id}/deny", h.deny)
		r.Get("/stats", h.stats)
		r.Get("/analytics", h.analytics)
		r.Get("/properties", h.listProperties)
		r.Get("/properties/{name}", h.getProperty)
	})
}

func writeProblem(w http.ResponseWriter, status int, title, detail string) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(problem{Type: "about:blank", Title: title, Status: status, Detail: detail}); err != nil {
		log.Error().Err(err).Msg("write JSON problem response failed")
	}
}

// writeError maps service errors onto problem responses.
func writeError(w http.ResponseWriter, err error) {
	var pe paramError
	switch {
	case errors.As(err, &pe):
		writeProblem(w, http.StatusBadRequest, "Invalid query", pe.Error())
	case errors.Is(err, domain.ErrInvalidWindow), errors.Is(err, domain.ErrInvalidSort):
		writeProblem(w, http.StatusBadRequest, "Invalid query", err.Error())
	case errors.Is(err, domain.ErrReviewNotFound):
		writeProblem(w, http.StatusNotFound, "Not Found", "review not found")
	case errors.Is(err, domain.ErrPropertyNotFound):
		writeProblem(w, http.StatusNotFound, "Not Found", "property not found")
	default:
		log.Error().Err(err).Msg("request failed")
		writeProblem(w, http.StatusInternalServerError, "Internal Server Error", "")
	}
}

// calcETagAndBody marshals once and hashes once, returning both ETag and body.
func calcETagAndBody(v any) (string, []byte) {
	body, err := json.Marshal(v)
	if err != nil {
		// Log but don't fail the whole response; return empty ETag and best-effort body.
		log.Error().Err(err).Msg("failed to marshal object for ETag/body")
		return "", nil
	}
	sum := sha1.Sum(body)
	etag := `W/"` + hex.EncodeToString(sum[:]) + `"`
	return etag, body
}

// writeCacheable writes v as JSON with a weak ETag, answering 304 when the
// client already holds this version.
func writeCacheable(w http.ResponseWriter, r *http.Request, v any) {
	etag, body := calcETagAndBody(v)
	if inm := r.Header.Get("If-None-Match"); etag != "" && inm == etag {
		w.Header().Set("ETag", etag) // include ETag on 304
		w.WriteHeader(http.StatusNotModified)
		return
	}
	if etag != "" {
		w.Header().Set("ETag", etag)
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		log.Error().Err(err).Str("path", r.URL.Path).Msg("failed to write body")
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("failed to write JSON body")
	}
}

func (h *Handlers) listReviews(w http.ResponseWriter, r *http.Request) {
	lq, err := bindListQuery(r.URL.Query())
	if err != nil {
		writeError(w, err)
		return
	}
	key, err := app.ParseSortKey(lq.Sort)
	if err != nil {
		writeError(w, err)
		return
	}
	out := h.Q.ListReviews(lq.criteria(), key, domain.PageQuery{Page: lq.Page, PerPage: lq.PerPage})
	writeCacheable(w, r, out)
}

func (h *Handlers) approve(w http.ResponseWriter, r *http.Request) {
	rv, err := h.C.Approve(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rv)
}

func (h *Handlers) deny(w http.ResponseWriter, r *http.Request) {
	rv, err := h.C.Deny(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rv)
}

func (h *Handlers) refresh(w http.ResponseWriter, r *http.Request) {
	agg, err := h.C.Refresh(r.Context())
	if err != nil {
		// the only error is a cancelled request context
		writeProblem(w, http.StatusServiceUnavailable, "Refresh aborted", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, refreshResponse{Reviews: len(agg.Reviews), Warnings: agg.Warnings, Advisory: agg.Advisory})
}

func (h *Handlers) stats(w http.ResponseWriter, r *http.Request) {
	writeCacheable(w, r, h.Q.Stats())
}

func (h *Handlers) analytics(w http.ResponseWriter, r *http.Request) {
	win, now, err := bindAnalyticsQuery(r.URL.Query(), h.Now())
	if err != nil {
		writeError(w, err)
		return
	}
	writeCacheable(w, r, h.Q.Analytics(win, now))
}

func (h *Handlers) listProperties(w http.ResponseWriter, r *http.Request) {
	pq, err := bindPropertiesQuery(r.URL.Query())
	if err != nil {
		writeError(w, err)
		return
	}
	writeCacheable(w, r, h.Q.Properties(pq.Search, app.PropertySort(pq.Sort)))
}

func (h *Handlers) getProperty(w http.ResponseWriter, r *http.Request) {
	name, err := url.PathUnescape(chi.URLParam(r, "name"))
	if err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid name", "property name is not valid path encoding")
		return
	}
	d, err := h.Q.Property(name)
	if err != nil {
		writeError(w, err)
		return
	}
	writeCacheable(w, r, d)
}
