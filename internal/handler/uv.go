package handler

import (
	"context"
	"errors"
	"net/http"

	"uv-advisory-api/internal/models"
	"uv-advisory-api/internal/observability"
	"uv-advisory-api/internal/service"

	"github.com/gin-gonic/gin"
)

// UVHandler handles UV index requests
type UVHandler struct {
	locations LocationResolver
	uv        UVReporter
	metrics   *observability.Metrics
}

// UVReporter interface for dependency injection
type UVReporter interface {
	Report(ctx context.Context, loc models.Location) (*models.UVReport, error)
}

// NewUVHandler creates a new UV handler
func NewUVHandler(locations LocationResolver, uv UVReporter, metrics *observability.Metrics) *UVHandler {
	return &UVHandler{locations: locations, uv: uv, metrics: metrics}
}

// GetUV handles GET /uv requests
//
//	@Summary		Current UV index and sun protection advice
//	@Description	Resolves a postcode or suburb (or takes raw coordinates) and returns the current UV index.
//	@Tags			uv
//	@Produce		json
//	@Param			location	query		string	false	"Postcode or suburb name"
//	@Param			lat			query		number	false	"Latitude, used when location is absent"
//	@Param			lon			query		number	false	"Longitude, used when location is absent"
//	@Success		200			{object}	models.UVReport
//	@Failure		400			{object}	ErrorResponse
//	@Failure		404			{object}	ErrorResponse
//	@Failure		500			{object}	ErrorResponse
//	@Router			/uv [get]
func (h *UVHandler) GetUV(c *gin.Context) {
	q, ok := bindLocationQuery(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()

	var loc models.Location
	if q.hasCoord {
		// Coordinates are used as given; the nearest suburb only supplies a name.
		loc = models.Location{Latitude: service.Round2(q.lat), Longitude: service.Round2(q.lon)}
		nearest, err := h.locations.Nearest(ctx, q.lat, q.lon)
		observeLookup(h.metrics, "nearest", err)
		switch {
		case err == nil:
			loc.Postcode = nearest.Postcode
			loc.Locality = nearest.Locality
			loc.State = nearest.State
		case errors.Is(err, service.ErrNotFound):
		default:
			writeLookupError(c, err)
			return
		}
	} else {
		resolved, err := h.locations.Resolve(ctx, q.location)
		observeLookup(h.metrics, lookupMethod(q), err)
		if err != nil {
			writeLookupError(c, err)
			return
		}
		loc = *resolved
	}

	report, err := h.uv.Report(ctx, loc)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, err.Error(), err)
		return
	}

	c.JSON(http.StatusOK, report)
}
