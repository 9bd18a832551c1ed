package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"regexp"
	"strings"

	"uv-advisory-api/internal/models"
	"uv-advisory-api/internal/repository"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var allowedQuery = regexp.MustCompile(`^[\p{L}\p{N} '.\-]{1,64}$`)

// LocationService resolves a postcode, a locality name or raw coordinates to a reference location
type LocationService struct {
	repo LocationRepository
}

// LocationRepository interface for dependency injection
type LocationRepository interface {
	FindByPostcode(ctx context.Context, postcode string) (*models.Location, error)
	FindByLocality(ctx context.Context, fragment string) (*models.Location, error)
	FindNearest(ctx context.Context, lat, lon float64) (*models.Location, error)
}

// NewLocationService creates a new location service
func NewLocationService(repo LocationRepository) *LocationService {
	return &LocationService{repo: repo}
}

// Resolve looks up a location by postcode (all digits) or by locality substring.
// Coordinates of the result are rounded to two decimal places.
func (s *LocationService) Resolve(ctx context.Context, query string) (*models.Location, error) {
	ctx, span := otel.Tracer("uv-advisory-api/service").Start(ctx, "location.resolve")
	defer span.End()

	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("service: %w: location cannot be empty", ErrInvalidInput)
	}
	if !allowedQuery.MatchString(query) {
		return nil, fmt.Errorf("service: %w: location contains unsupported characters", ErrInvalidInput)
	}

	var (
		loc    *models.Location
		err    error
		method string
	)
	if IsPostcode(query) {
		method = "postcode"
		loc, err = s.repo.FindByPostcode(ctx, query)
	} else {
		method = "locality"
		loc, err = s.repo.FindByLocality(ctx, query)
	}
	span.SetAttributes(attribute.String("lookup.method", method))

	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("service: %w: no match for %q", ErrNotFound, query)
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, "lookup failed")
		return nil, fmt.Errorf("service: failed to look up location by %s: %w", method, err)
	}

	return rounded(loc), nil
}

// Nearest finds the reference location closest to the given coordinates
func (s *LocationService) Nearest(ctx context.Context, lat, lon float64) (*models.Location, error) {
	ctx, span := otel.Tracer("uv-advisory-api/service").Start(ctx, "location.nearest")
	defer span.End()

	if err := ValidateCoordinates(lat, lon); err != nil {
		return nil, err
	}

	loc, err := s.repo.FindNearest(ctx, lat, lon)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("service: %w: no location near %.2f,%.2f", ErrNotFound, lat, lon)
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, "lookup failed")
		return nil, fmt.Errorf("service: failed to find nearest location: %w", err)
	}

	return rounded(loc), nil
}

// ValidateCoordinates rejects latitudes and longitudes outside their valid ranges
func ValidateCoordinates(lat, lon float64) error {
	if math.IsNaN(lat) || lat < -90 || lat > 90 {
		return fmt.Errorf("service: %w: invalid latitude: %f", ErrInvalidInput, lat)
	}
	if math.IsNaN(lon) || lon < -180 || lon > 180 {
		return fmt.Errorf("service: %w: invalid longitude: %f", ErrInvalidInput, lon)
	}
	return nil
}

func rounded(loc *models.Location) *models.Location {
	out := *loc
	out.Latitude = Round2(loc.Latitude)
	out.Longitude = Round2(loc.Longitude)
	return &out
}
