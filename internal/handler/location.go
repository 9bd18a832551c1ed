package handler

import (
	"net/http"

	"uv-advisory-api/internal/models"
	"uv-advisory-api/internal/observability"

	"github.com/gin-gonic/gin"
)

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Error string `json:"error" example:"location not found"`
}

// LocationHandler exposes the location resolver without a UV lookup
type LocationHandler struct {
	locations LocationResolver
	metrics   *observability.Metrics
}

// NewLocationHandler creates a new location handler
func NewLocationHandler(locations LocationResolver, metrics *observability.Metrics) *LocationHandler {
	return &LocationHandler{locations: locations, metrics: metrics}
}

// Resolve handles GET /locations/resolve requests
//
//	@Summary	Resolve a postcode, suburb or coordinate pair
//	@Tags		locations
//	@Produce	json
//	@Param		location	query		string	false	"Postcode or suburb name"
//	@Param		lat			query		number	false	"Latitude"
//	@Param		lon			query		number	false	"Longitude"
//	@Success	200			{object}	models.Location
//	@Failure	400			{object}	ErrorResponse
//	@Failure	404			{object}	ErrorResponse
//	@Failure	500			{object}	ErrorResponse
//	@Router		/locations/resolve [get]
func (h *LocationHandler) Resolve(c *gin.Context) {
	q, ok := bindLocationQuery(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()

	var (
		loc *models.Location
		err error
	)
	if q.hasCoord {
		loc, err = h.locations.Nearest(ctx, q.lat, q.lon)
	} else {
		loc, err = h.locations.Resolve(ctx, q.location)
	}
	observeLookup(h.metrics, lookupMethod(q), err)
	if err != nil {
		writeLookupError(c, err)
		return
	}

	c.JSON(http.StatusOK, loc)
}
