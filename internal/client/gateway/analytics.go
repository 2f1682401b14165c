package gateway

import (
	"context"
	"fmt"
	"net/http"

	"github.com/noteboard/noteboard/internal/client/models"
)

// AnalyticsGateway wraps the analytics service. Its panels are best-effort:
// the orchestrator tolerates failures here without touching the session.
type AnalyticsGateway struct {
	api apiClient
}

// NewAnalyticsGateway builds a gateway over the analytics service base URL.
// Pass nil to use http.DefaultClient.
func NewAnalyticsGateway(baseURL string, httpClient *http.Client) *AnalyticsGateway {
	return &AnalyticsGateway{api: newAPIClient(baseURL, httpClient)}
}

// PersonalStatistics fetches the caller's usage snapshot.
func (g *AnalyticsGateway) PersonalStatistics(ctx context.Context, token string) (*models.PersonalStatistics, error) {
	var stats models.PersonalStatistics
	err := g.api.doJSON(ctx, "analytics.personal", http.MethodGet,
		"/analytics/users/me/statistics", token, nil, &stats)
	if err != nil {
		return nil, err
	}
	return &stats, nil
}

// SystemStatistics fetches the global snapshot. No authentication required.
func (g *AnalyticsGateway) SystemStatistics(ctx context.Context) (*models.SystemStatistics, error) {
	var stats models.SystemStatistics
	err := g.api.doJSON(ctx, "analytics.system", http.MethodGet,
		"/analytics/system/statistics", "", nil, &stats)
	if err != nil {
		return nil, err
	}
	return &stats, nil
}

// RecentNoteEvents fetches the newest note events for userID,
// most-recent-first, capped at limit.
func (g *AnalyticsGateway) RecentNoteEvents(ctx context.Context, token string, userID int64, limit int) ([]models.ActivityEvent, error) {
	var evs []models.ActivityEvent
	path := fmt.Sprintf("/analytics/users/%d/events/notes?limit=%d", userID, limit)
	err := g.api.doJSON(ctx, "analytics.events", http.MethodGet, path, token, nil, &evs)
	if err != nil {
		return nil, err
	}
	return evs, nil
}
