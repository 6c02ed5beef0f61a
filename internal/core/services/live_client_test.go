package services_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/comitanigiacomo/kanso-demo-engine/internal/core/domain"
	"github.com/comitanigiacomo/kanso-demo-engine/internal/core/services"
)

func newLiveBackend(t *testing.T, handler http.HandlerFunc) *services.LiveClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return services.NewLiveClient(srv.URL+"/", "live-token", 5*time.Second, nil)
}

func TestLiveClient(t *testing.T) {
	ctx := context.Background()

	t.Run("Sends bearer token and range query", func(t *testing.T) {
		client := newLiveBackend(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "Bearer live-token", r.Header.Get("Authorization"))
			assert.Equal(t, "/api/v1/health-metrics", r.URL.Path)
			assert.Equal(t, "2026-02-01", r.URL.Query().Get("start_date"))
			assert.Equal(t, "5", r.URL.Query().Get("limit"))
			assert.Empty(t, r.URL.Query().Get("end_date"))

			_ = json.NewEncoder(w).Encode([]domain.DailyMetric{{Date: "2026-02-01", RecoveryScore: 70}})
		})

		metrics, err := client.GetHealthMetrics(ctx, domain.DateRange{StartDate: "2026-02-01", Limit: 5})
		require.NoError(t, err)
		require.Len(t, metrics, 1)
		assert.Equal(t, 70, metrics[0].RecoveryScore)
	})

	t.Run("Posts JSON bodies", func(t *testing.T) {
		client := newLiveBackend(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

			var in domain.CreateMoodInput
			require.NoError(t, json.NewDecoder(r.Body).Decode(&in))
			_ = json.NewEncoder(w).Encode(domain.MoodRating{Date: in.Date, Rating: in.Rating})
		})

		got, err := client.CreateMoodRating(ctx, domain.CreateMoodInput{Date: "2026-02-02", Rating: 8})
		require.NoError(t, err)
		assert.Equal(t, 8, got.Rating)
	})

	t.Run("404 maps onto the not found family", func(t *testing.T) {
		client := newLiveBackend(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"detail":"No wearable connected"}`))
		})

		_, err := client.GetWearableConnection(ctx)
		assert.ErrorIs(t, err, domain.ErrConnectionNotFound)

		var apiErr *services.APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
		assert.Equal(t, "No wearable connected", apiErr.Message)
	})

	t.Run("Other failures keep the upstream status", func(t *testing.T) {
		client := newLiveBackend(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
			_, _ = w.Write([]byte("upstream down"))
		})

		_, err := client.SyncWearable(ctx)
		var apiErr *services.APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, http.StatusBadGateway, apiErr.StatusCode)
		assert.Equal(t, "upstream down", apiErr.Message)
		assert.NotErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("Connect returns the authorization url", func(t *testing.T) {
		client := newLiveBackend(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/api/v1/wearables/connect/whoop", r.URL.Path)
			_, _ = w.Write([]byte(`{"authorization_url":"https://auth.example.com/x"}`))
		})

		u, err := client.ConnectWearable(ctx, "whoop")
		require.NoError(t, err)
		assert.Equal(t, "https://auth.example.com/x", u)
	})

	t.Run("Delete with no content", func(t *testing.T) {
		client := newLiveBackend(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodDelete, r.Method)
			assert.Equal(t, "/api/v1/mood-ratings/2026-02-03", r.URL.Path)
			w.WriteHeader(http.StatusNoContent)
		})

		assert.NoError(t, client.DeleteMoodRating(ctx, "2026-02-03"))
	})

	t.Run("Invalid insight type never reaches the network", func(t *testing.T) {
		client := newLiveBackend(t, func(w http.ResponseWriter, r *http.Request) {
			t.Error("unexpected request")
		})

		_, err := client.GenerateInsight(ctx, domain.GenerateInsightInput{Type: "bogus"})
		assert.ErrorIs(t, err, domain.ErrInvalidInsightType)
	})
}
