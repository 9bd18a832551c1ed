package handler

import (
	"fmt"
	"net/http"
	"net/url"
	"testing"

	"uv-advisory-api/internal/advisory"
	"uv-advisory-api/internal/models"
	"uv-advisory-api/internal/observability"
	"uv-advisory-api/internal/service"
	"uv-advisory-api/internal/weather"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

var melbourne = &models.Location{Postcode: "3000", Locality: "MELBOURNE", State: "VIC", Latitude: -37.81, Longitude: 144.97}

func melbourneReport(uv float64) *models.UVReport {
	level := advisory.Classify(uv)
	return &models.UVReport{
		Location:  "MELBOURNE",
		Postcode:  "3000",
		State:     "VIC",
		Latitude:  -37.81,
		Longitude: 144.97,
		UVIndex:   uv,
		RiskLevel: level.Risk,
		Advisory:  level.Advice,
	}
}

func TestUVHandler_GetUV(t *testing.T) {
	tests := []struct {
		name           string
		query          url.Values
		setup          func(*MockLocationResolver, *MockUVReporter)
		expectedStatus int
		expectedBody   map[string]any
		errorContains  string
	}{
		{
			name:           "missing location and coordinates",
			query:          url.Values{},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   map[string]any{"error": msgMissingQuery},
		},
		{
			name:           "latitude without longitude",
			query:          url.Values{"lat": {"-37.81"}},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   map[string]any{"error": msgIncompletePair},
		},
		{
			name:           "invalid latitude",
			query:          url.Values{"lat": {"north"}, "lon": {"144.97"}},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   map[string]any{"error": "invalid latitude format"},
		},
		{
			name:           "invalid longitude",
			query:          url.Values{"lat": {"-37.81"}, "lon": {"east"}},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   map[string]any{"error": "invalid longitude format"},
		},
		{
			name:           "latitude out of range",
			query:          url.Values{"lat": {"-95"}, "lon": {"144.97"}},
			expectedStatus: http.StatusBadRequest,
			errorContains:  "invalid latitude",
		},
		{
			name:           "location too long",
			query:          url.Values{"location": {"abcdefghijabcdefghijabcdefghijabcdefghijabcdefghijabcdefghijabcde"}},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   map[string]any{"error": "location must be at most 64 characters"},
		},
		{
			name:  "postcode resolves and reports",
			query: url.Values{"location": {"3000"}},
			setup: func(l *MockLocationResolver, u *MockUVReporter) {
				l.On("Resolve", mock.Anything, "3000").Return(melbourne, nil)
				u.On("Report", mock.Anything, *melbourne).Return(melbourneReport(6.2), nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody: map[string]any{
				"location":   "MELBOURNE",
				"postcode":   "3000",
				"state":      "VIC",
				"latitude":   -37.81,
				"longitude":  144.97,
				"uv_index":   6.2,
				"risk_level": advisory.High.Risk,
				"advisory":   advisory.High.Advice,
			},
		},
		{
			name:  "resolver rejects input",
			query: url.Values{"location": {"Melb<script>"}},
			setup: func(l *MockLocationResolver, _ *MockUVReporter) {
				l.On("Resolve", mock.Anything, "Melb<script>").
					Return(nil, fmt.Errorf("service: %w: location contains unsupported characters", service.ErrInvalidInput))
			},
			expectedStatus: http.StatusBadRequest,
			errorContains:  "unsupported characters",
		},
		{
			name:  "unknown suburb",
			query: url.Values{"location": {"Atlantis"}},
			setup: func(l *MockLocationResolver, _ *MockUVReporter) {
				l.On("Resolve", mock.Anything, "Atlantis").Return(nil, fmt.Errorf("service: %w", service.ErrNotFound))
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   map[string]any{"error": msgNotFound},
		},
		{
			name:  "database failure",
			query: url.Values{"location": {"Carlton"}},
			setup: func(l *MockLocationResolver, _ *MockUVReporter) {
				l.On("Resolve", mock.Anything, "Carlton").Return(nil, fmt.Errorf("service: failed to look up location by locality: %w", assert.AnError))
			},
			expectedStatus: http.StatusInternalServerError,
			errorContains:  assert.AnError.Error(),
		},
		{
			name:  "upstream non-200 is echoed",
			query: url.Values{"location": {"3000"}},
			setup: func(l *MockLocationResolver, u *MockUVReporter) {
				l.On("Resolve", mock.Anything, "3000").Return(melbourne, nil)
				u.On("Report", mock.Anything, *melbourne).Return(nil,
					fmt.Errorf("service: failed to fetch UV index: %w", &weather.StatusError{StatusCode: 503, Body: "upstream down"}))
			},
			expectedStatus: http.StatusInternalServerError,
			errorContains:  "status 503: upstream down",
		},
		{
			name:  "coordinates use nearest suburb name",
			query: url.Values{"lat": {"-37.8049"}, "lon": {"144.9712"}},
			setup: func(l *MockLocationResolver, u *MockUVReporter) {
				l.On("Nearest", mock.Anything, -37.8049, 144.9712).
					Return(&models.Location{Postcode: "3053", Locality: "CARLTON", State: "VIC", Latitude: -37.8, Longitude: 144.97}, nil)
				u.On("Report", mock.Anything, models.Location{Postcode: "3053", Locality: "CARLTON", State: "VIC", Latitude: -37.8, Longitude: 144.97}).
					Return(&models.UVReport{Location: "CARLTON", Postcode: "3053", State: "VIC", Latitude: -37.8, Longitude: 144.97, UVIndex: 1, RiskLevel: "Low", Advisory: advisory.Low.Advice}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody: map[string]any{
				"location":   "CARLTON",
				"postcode":   "3053",
				"state":      "VIC",
				"latitude":   -37.8,
				"longitude":  144.97,
				"uv_index":   1.0,
				"risk_level": "Low",
				"advisory":   advisory.Low.Advice,
			},
		},
		{
			name:  "coordinates outside reference data still report",
			query: url.Values{"lat": {"51.5072"}, "lon": {"-0.1276"}},
			setup: func(l *MockLocationResolver, u *MockUVReporter) {
				l.On("Nearest", mock.Anything, 51.5072, -0.1276).Return(nil, fmt.Errorf("service: %w", service.ErrNotFound))
				u.On("Report", mock.Anything, models.Location{Latitude: 51.51, Longitude: -0.13}).
					Return(&models.UVReport{Latitude: 51.51, Longitude: -0.13, UVIndex: 0, RiskLevel: "Low", Advisory: advisory.Low.Advice}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody: map[string]any{
				"location":   "",
				"latitude":   51.51,
				"longitude":  -0.13,
				"uv_index":   0.0,
				"risk_level": "Low",
				"advisory":   advisory.Low.Advice,
			},
		},
		{
			name:  "nearest lookup failure",
			query: url.Values{"lat": {"-37.8"}, "lon": {"144.9"}},
			setup: func(l *MockLocationResolver, _ *MockUVReporter) {
				l.On("Nearest", mock.Anything, -37.8, 144.9).Return(nil, assert.AnError)
			},
			expectedStatus: http.StatusInternalServerError,
			errorContains:  assert.AnError.Error(),
		},
		{
			name:  "location wins over coordinates",
			query: url.Values{"location": {"3000"}, "lat": {"1"}, "lon": {"2"}},
			setup: func(l *MockLocationResolver, u *MockUVReporter) {
				l.On("Resolve", mock.Anything, "3000").Return(melbourne, nil)
				u.On("Report", mock.Anything, *melbourne).Return(melbourneReport(11), nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody: map[string]any{
				"location":   "MELBOURNE",
				"postcode":   "3000",
				"state":      "VIC",
				"latitude":   -37.81,
				"longitude":  144.97,
				"uv_index":   11.0,
				"risk_level": advisory.Extreme.Risk,
				"advisory":   advisory.Extreme.Advice,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Setup
			locations := new(MockLocationResolver)
			reporter := new(MockUVReporter)
			if tt.setup != nil {
				tt.setup(locations, reporter)
			}
			handler := NewUVHandler(locations, reporter, observability.NewMetricsForTesting())

			// Execute
			w, body := serve(t, handler.GetUV, "/uv", tt.query)

			// Assert
			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedBody != nil {
				assert.Equal(t, tt.expectedBody, body)
			}
			if tt.errorContains != "" {
				assert.Contains(t, body["error"], tt.errorContains)
			}

			locations.AssertExpectations(t)
			reporter.AssertExpectations(t)
		})
	}
}

func TestUVHandler_RecordsLookupMetrics(t *testing.T) {
	metrics := observability.NewMetricsForTesting()
	locations := new(MockLocationResolver)
	reporter := new(MockUVReporter)
	locations.On("Resolve", mock.Anything, "9999").Return(nil, fmt.Errorf("service: %w", service.ErrNotFound))
	locations.On("Resolve", mock.Anything, "Carlton").Return(melbourne, nil)
	locations.On("Resolve", mock.Anything, " 3000 ").Return(melbourne, nil)
	reporter.On("Report", mock.Anything, *melbourne).Return(melbourneReport(3), nil)

	handler := NewUVHandler(locations, reporter, metrics)
	serve(t, handler.GetUV, "/uv", url.Values{"location": {"9999"}})
	serve(t, handler.GetUV, "/uv", url.Values{"location": {"Carlton"}})
	serve(t, handler.GetUV, "/uv", url.Values{"location": {" 3000 "}})

	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.LocationLookups.WithLabelValues("postcode", "not_found")))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.LocationLookups.WithLabelValues("postcode", "found")))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.LocationLookups.WithLabelValues("locality", "found")))
}
