package weather

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"
	"time"

	"github.com/daybook-app/daybook/internal/config"
	"github.com/daybook-app/daybook/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleBody = `{"latitude":35.7,"longitude":51.4,"current_weather":{"time":"2024-05-01T12:00","temperature":24.5,"weathercode":2,"windspeed":11.3}}`

func newTestClient(url string) *Client {
	return NewClient(ClientConfig{
		BaseURL:         url,
		Timeout:         2 * time.Second,
		BreakerFailures: 2,
		BreakerCooldown: time.Hour,
	}, nil)
}

func TestCurrentSendsQueryAndDecodes(t *testing.T) {
	var gotQuery atomic.Value
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery.Store(r.URL.Query())
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(sampleBody))
	}))
	defer srv.Close()

	c := newTestClient(srv.URL + "/v1/forecast")
	current, err := c.Current(context.Background(), "35.6892", " 51.3890")
	require.NoError(t, err)
	assert.Equal(t, &Current{Time: "2024-05-01T12:00", Temperature: 24.5, WeatherCode: 2, WindSpeed: 11.3}, current)

	q := gotQuery.Load().(url.Values)
	assert.Equal(t, []string{"35.6892"}, q["latitude"])
	assert.Equal(t, []string{"51.3890"}, q["longitude"])
	assert.Equal(t, []string{"true"}, q["current_weather"])
}

func TestCurrentErrors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr error
	}{
		{"server error", http.StatusInternalServerError, `{}`, ErrBadResponse},
		{"bad json", http.StatusOK, `{"current_weather":`, ErrBadResponse},
		{"missing field", http.StatusOK, `{"latitude":1}`, ErrBadResponse},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			_, err := newTestClient(srv.URL).Current(context.Background(), "1", "2")
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestBreakerOpensWithoutRetrying(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)
	for i := 0; i < 2; i++ {
		_, err := c.Current(context.Background(), "1", "2")
		require.ErrorIs(t, err, ErrBadResponse)
	}
	assert.Equal(t, "open", c.BreakerState())

	_, err := c.Current(context.Background(), "1", "2")
	require.ErrorIs(t, err, ErrUnavailable)
	assert.Equal(t, int32(2), calls.Load())
}

func TestCurrentHonorsTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer srv.Close()

	c := NewClient(ClientConfig{BaseURL: srv.URL, Timeout: 50 * time.Millisecond}, nil)
	_, err := c.Current(context.Background(), "1", "2")
	require.Error(t, err)
}

func TestClientConfigFromGlobal(t *testing.T) {
	tmp := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", tmp)
	t.Setenv("DAYBOOK_CONFIG_PATH", "")
	t.Setenv("DAYBOOK_WEATHER_API_URL", "http://example.test/forecast")
	t.Setenv("DAYBOOK_WEATHER_TIMEOUT", "4s")
	config.Load()

	cfg := ClientConfigFromGlobal()
	assert.Equal(t, "http://example.test/forecast", cfg.BaseURL)
	assert.Equal(t, 4*time.Second, cfg.Timeout)
	assert.Equal(t, uint32(3), cfg.BreakerFailures)
	assert.Equal(t, 30*time.Second, cfg.BreakerCooldown)
}

type stubFetcher struct {
	current *Current
	err     error
}

func (f stubFetcher) Current(context.Context, string, string) (*Current, error) {
	return f.current, f.err
}

func TestServiceLookup(t *testing.T) {
	rec := &recorder{}
	svc := NewService(stubFetcher{current: &Current{Temperature: 20, WeatherCode: 3}}, rec, nil)

	report, err := svc.Lookup(context.Background(), tehran)
	require.NoError(t, err)
	assert.Equal(t, "Overcast", report.Description)
	assert.Equal(t, tehran, report.City)
	assert.Empty(t, rec.errors)
}

func TestServiceLookupFailureEmitsOneError(t *testing.T) {
	rec := &recorder{}
	svc := NewService(stubFetcher{err: errors.New("dial tcp: refused")}, rec, func(err error) string {
		return "failed: " + err.Error()
	})

	_, err := svc.Lookup(context.Background(), tehran)
	require.Error(t, err)
	require.Len(t, rec.errors, 1)
	assert.Contains(t, rec.errors[0], "failed: weather for Tehran")
}

func TestServiceLookupRejectsIncompleteCity(t *testing.T) {
	rec := &recorder{}
	svc := NewService(stubFetcher{}, rec, nil)
	_, err := svc.Lookup(context.Background(), domain.SavedCity{City: "x"})
	require.ErrorIs(t, err, domain.ErrIncompleteCity)
	assert.Empty(t, rec.errors)
}
