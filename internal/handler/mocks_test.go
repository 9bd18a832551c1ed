package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"uv-advisory-api/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockLocationResolver is a mock implementation of the LocationResolver interface
type MockLocationResolver struct {
	mock.Mock
}

func (m *MockLocationResolver) Resolve(ctx context.Context, query string) (*models.Location, error) {
	args := m.Called(ctx, query)
	loc, _ := args.Get(0).(*models.Location)
	return loc, args.Error(1)
}

func (m *MockLocationResolver) Nearest(ctx context.Context, lat, lon float64) (*models.Location, error) {
	args := m.Called(ctx, lat, lon)
	loc, _ := args.Get(0).(*models.Location)
	return loc, args.Error(1)
}

// MockUVReporter is a mock implementation of the UVReporter interface
type MockUVReporter struct {
	mock.Mock
}

func (m *MockUVReporter) Report(ctx context.Context, loc models.Location) (*models.UVReport, error) {
	args := m.Called(ctx, loc)
	report, _ := args.Get(0).(*models.UVReport)
	return report, args.Error(1)
}

// serve runs h against a GET request with the given query and returns the
// recorder and the decoded JSON body.
func serve(t *testing.T, h gin.HandlerFunc, path string, query url.Values) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	req := httptest.NewRequest(http.MethodGet, path, nil)
	req.URL.RawQuery = query.Encode()
	w := httptest.NewRecorder()

	c, _ := gin.CreateTestContext(w)
	c.Request = req

	h(c)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return w, body
}
