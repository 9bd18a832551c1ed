// Package weather is a client for the OpenWeatherMap One Call API, used only
// for the current UV index.
package weather

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"uv-advisory-api/internal/observability"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const DefaultBaseURL = "https://api.openweathermap.org/data/3.0"

// ErrMalformedPayload is returned when a 200 response carries no usable UV index.
var ErrMalformedPayload = errors.New("weather: malformed UV payload")

// StatusError is returned for any non-2xx response from the API.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("weather API returned status %d: %s", e.StatusCode, e.Body)
}

// Client fetches the current UV index for a coordinate pair.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	metrics    *observability.Metrics
	logger     zerolog.Logger
}

// NewClient creates a UV client. Outgoing requests are traced.
func NewClient(baseURL, apiKey string, timeout time.Duration, metrics *observability.Metrics, logger zerolog.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		apiKey:  apiKey,
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		metrics: metrics,
		logger:  logger.With().Str("component", "weather").Logger(),
	}
}

// CurrentUV returns the current UV index at lat, lon. There is no retry.
func (c *Client) CurrentUV(ctx context.Context, lat, lon float64) (_ float64, err error) {
	start := time.Now()
	outcome := "success"
	defer func() {
		c.metrics.UVAPIDuration.Observe(time.Since(start).Seconds())
		c.metrics.UVRequests.WithLabelValues(outcome).Inc()
		if err != nil {
			c.logger.Warn().Err(err).Float64("lat", lat).Float64("lon", lon).Msg("uv lookup failed")
		}
	}()

	params := url.Values{
		"lat":     {strconv.FormatFloat(lat, 'f', -1, 64)},
		"lon":     {strconv.FormatFloat(lon, 'f', -1, 64)},
		"exclude": {"minutely,hourly,daily,alerts"},
		"units":   {"metric"},
		"appid":   {c.apiKey},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/onecall?"+params.Encode(), nil)
	if err != nil {
		outcome = "error"
		return 0, fmt.Errorf("weather: create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		outcome = "error"
		return 0, fmt.Errorf("weather: request failed: %w", redactURL(err))
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		outcome = "http_error"
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return 0, &StatusError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}

	var payload oneCallResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		outcome = "malformed"
		return 0, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}
	if payload.Current == nil || payload.Current.UVI == nil {
		outcome = "malformed"
		return 0, fmt.Errorf("%w: missing current.uvi", ErrMalformedPayload)
	}

	c.logger.Debug().Float64("lat", lat).Float64("lon", lon).Float64("uvi", *payload.Current.UVI).Msg("uv lookup")
	return *payload.Current.UVI, nil
}

// redactURL drops the request URL, which carries the API key, from transport
// errors while keeping the underlying cause unwrappable.
func redactURL(err error) error {
	var ue *url.Error
	if errors.As(err, &ue) {
		return fmt.Errorf("%s onecall: %w", ue.Op, ue.Err)
	}
	return err
}

// One Call API response, reduced to the fields we read.

type oneCallResponse struct {
	Lat     float64  `json:"lat"`
	Lon     float64  `json:"lon"`
	Current *current `json:"current"`
}

type current struct {
	Dt  int64    `json:"dt"`
	UVI *float64 `json:"uvi"`
}
