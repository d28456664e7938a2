package weather

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/daybook-app/daybook/internal/colors"
	"github.com/daybook-app/daybook/internal/config"
	"github.com/sony/gobreaker/v2"
)

var (
	// ErrUnavailable is returned while the circuit breaker is open.
	ErrUnavailable = errors.New("weather service temporarily unavailable")
	// ErrBadResponse is returned for non-2xx statuses and undecodable bodies.
	ErrBadResponse = errors.New("unexpected weather service response")
)

const maxBodyBytes = 1 << 20

// Current is the current_weather object of the forecast response.
type Current struct {
	Time        string  `json:"time"`
	Temperature float64 `json:"temperature"`
	WeatherCode int     `json:"weathercode"`
	WindSpeed   float64 `json:"windspeed"`
}

type forecastResponse struct {
	CurrentWeather *Current `json:"current_weather"`
}

// ClientConfig configures the weather HTTP client.
type ClientConfig struct {
	// BaseURL is the forecast endpoint.
	BaseURL string

	// Timeout bounds each request.
	Timeout time.Duration

	// BreakerFailures is the number of consecutive failures that opens the breaker.
	BreakerFailures uint32

	// BreakerCooldown is how long the breaker stays open.
	BreakerCooldown time.Duration
}

// DefaultClientConfig returns the open-meteo endpoint with conservative limits.
func DefaultClientConfig() ClientConfig {
	return ClientConfig{
		BaseURL:         "https://api.open-meteo.com/v1/forecast",
		Timeout:         10 * time.Second,
		BreakerFailures: 3,
		BreakerCooldown: 30 * time.Second,
	}
}

// ClientConfigFromGlobal reads weather.* keys from the loaded configuration.
func ClientConfigFromGlobal() ClientConfig {
	def := DefaultClientConfig()
	failures := config.GetInt("weather.breaker_failures", int(def.BreakerFailures))
	if failures <= 0 {
		failures = int(def.BreakerFailures)
	}
	return ClientConfig{
		BaseURL:         config.Get("weather.api_url", def.BaseURL),
		Timeout:         config.GetDuration("weather.timeout", def.Timeout),
		BreakerFailures: uint32(failures),
		BreakerCooldown: config.GetDuration("weather.breaker_cooldown", def.BreakerCooldown),
	}
}

// Client fetches current weather. Requests are not retried.
type Client struct {
	cfg     ClientConfig
	http    *http.Client
	breaker *gobreaker.CircuitBreaker[*Current]
}

// NewClient creates a client. A nil httpClient uses one with cfg.Timeout.
func NewClient(cfg ClientConfig, httpClient *http.Client) *Client {
	def := DefaultClientConfig()
	if cfg.BaseURL == "" {
		cfg.BaseURL = def.BaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = def.Timeout
	}
	if cfg.BreakerFailures == 0 {
		cfg.BreakerFailures = def.BreakerFailures
	}
	if cfg.BreakerCooldown <= 0 {
		cfg.BreakerCooldown = def.BreakerCooldown
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}

	settings := gobreaker.Settings{
		Name:        "weather",
		MaxRequests: 1,
		Timeout:     cfg.BreakerCooldown,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= cfg.BreakerFailures
		},
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, context.Canceled)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			colors.StructuredWarn("weather", "breaker", to.String(), nil, name, map[string]interface{}{
				"from": from.String(),
			})
		},
	}

	return &Client{
		cfg:     cfg,
		http:    httpClient,
		breaker: gobreaker.NewCircuitBreaker[*Current](settings),
	}
}

// RequestURL builds the forecast URL for the coordinates.
func (c *Client) RequestURL(lat, lng string) (string, error) {
	u, err := url.Parse(c.cfg.BaseURL)
	if err != nil {
		return "", fmt.Errorf("parse weather api url: %w", err)
	}
	q := u.Query()
	q.Set("latitude", strings.TrimSpace(lat))
	q.Set("longitude", strings.TrimSpace(lng))
	q.Set("current_weather", "true")
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// Current fetches the current weather at lat, lng.
func (c *Client) Current(ctx context.Context, lat, lng string) (*Current, error) {
	endpoint, err := c.RequestURL(lat, lng)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	current, err := c.breaker.Execute(func() (*Current, error) {
		return c.fetch(ctx, endpoint)
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return nil, ErrUnavailable
	}
	return current, err
}

func (c *Client) fetch(ctx context.Context, endpoint string) (*Current, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build weather request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch weather: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: status %d", ErrBadResponse, resp.StatusCode)
	}

	var body forecastResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBodyBytes)).Decode(&body); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadResponse, err)
	}
	if body.CurrentWeather == nil {
		return nil, fmt.Errorf("%w: missing current_weather", ErrBadResponse)
	}
	return body.CurrentWeather, nil
}

// BreakerState reports the circuit breaker state, e.g. "closed" or "open".
func (c *Client) BreakerState() string {
	return c.breaker.State().String()
}
