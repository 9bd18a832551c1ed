package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"uv-advisory-api/internal/models"
	"uv-advisory-api/internal/observability"
	"uv-advisory-api/internal/service"

	"github.com/gin-gonic/gin"
)

// LocationResolver interface for dependency injection
type LocationResolver interface {
	Resolve(ctx context.Context, query string) (*models.Location, error)
	Nearest(ctx context.Context, lat, lon float64) (*models.Location, error)
}

// locationQuery holds the query parameters shared by the lookup endpoints.
// location takes precedence when both forms are present.
type locationQuery struct {
	Location string `form:"location" binding:"omitempty,max=64"`
	Lat      string `form:"lat"`
	Lon      string `form:"lon"`
}

const (
	msgMissingQuery   = "missing required query parameter 'location' or 'lat' and 'lon'"
	msgIncompletePair = "both 'lat' and 'lon' are required"
	msgNotFound       = "location not found"
)

// parsedQuery is either a location string or a coordinate pair.
type parsedQuery struct {
	location string
	lat, lon float64
	hasCoord bool
}

// bindLocationQuery validates the request's query string. On failure it has
// already written a 400 response.
func bindLocationQuery(c *gin.Context) (parsedQuery, bool) {
	var q locationQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		abortWithError(c, http.StatusBadRequest, "location must be at most 64 characters", err)
		return parsedQuery{}, false
	}

	if q.Location != "" {
		return parsedQuery{location: q.Location}, true
	}

	if q.Lat == "" && q.Lon == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": msgMissingQuery})
		return parsedQuery{}, false
	}
	if q.Lat == "" || q.Lon == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": msgIncompletePair})
		return parsedQuery{}, false
	}

	lat, err := strconv.ParseFloat(q.Lat, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid latitude format"})
		return parsedQuery{}, false
	}

	lon, err := strconv.ParseFloat(q.Lon, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid longitude format"})
		return parsedQuery{}, false
	}

	if err := service.ValidateCoordinates(lat, lon); err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error(), err)
		return parsedQuery{}, false
	}

	return parsedQuery{lat: lat, lon: lon, hasCoord: true}, true
}

// writeLookupError maps resolver and downstream errors onto HTTP statuses.
// Downstream failures carry the raw error text.
func writeLookupError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidInput):
		abortWithError(c, http.StatusBadRequest, err.Error(), err)
	case errors.Is(err, service.ErrNotFound):
		abortWithError(c, http.StatusNotFound, msgNotFound, err)
	default:
		abortWithError(c, http.StatusInternalServerError, err.Error(), err)
	}
}

func abortWithError(c *gin.Context, status int, msg string, err error) {
	_ = c.Error(err)
	c.AbortWithStatusJSON(status, gin.H{"error": msg})
}

func lookupMethod(q parsedQuery) string {
	if q.hasCoord {
		return "nearest"
	}
	if service.IsPostcode(q.location) {
		return "postcode"
	}
	return "locality"
}

func observeLookup(m *observability.Metrics, method string, err error) {
	if m == nil {
		return
	}
	outcome := "found"
	switch {
	case err == nil:
	case errors.Is(err, service.ErrInvalidInput):
		outcome = "invalid"
	case errors.Is(err, service.ErrNotFound):
		outcome = "not_found"
	default:
		outcome = "error"
	}
	m.LocationLookups.WithLabelValues(method, outcome).Inc()
}
