package services

import (
	"context"
	"net/http"
	"net/url"
	"time"

	carelink "github.com/carelink/carelink-go"
)

// AnalyticsService exposes care-activity aggregates and event tracking.
type AnalyticsService struct {
	api *carelink.Client
}

func NewAnalyticsService(api *carelink.Client) *AnalyticsService {
	return &AnalyticsService{api: api}
}

// Summary returns aggregates for the [from, to] range. Bounds travel as
// ISO-8601 query parameters.
func (s *AnalyticsService) Summary(ctx context.Context, from, to time.Time) (*AnalyticsSummary, error) {
	q := url.Values{}
	q.Set("from", from.Format(time.RFC3339))
	q.Set("to", to.Format(time.RFC3339))

	var summary AnalyticsSummary
	ep := carelink.NewEndpoint("/analytics/summary?%s", q.Encode())
	if err := s.api.Request(ctx, http.MethodGet, ep, nil, &summary); err != nil {
		return nil, err
	}
	return &summary, nil
}

// TrackEvent reports a client-side event. Fire-and-forget from the
// caller's perspective; no response payload is expected.
func (s *AnalyticsService) TrackEvent(ctx context.Context, event Event) error {
	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now().UTC()
	}
	return s.api.Request(ctx, http.MethodPost, carelink.NewEndpoint("/analytics/events"), event, nil)
}
