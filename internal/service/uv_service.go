package service

import (
	"context"
	"fmt"

	"uv-advisory-api/internal/advisory"
	"uv-advisory-api/internal/models"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
)

// UVService fetches the current UV index for a location and attaches the matching advice
type UVService struct {
	provider UVProvider
}

// UVProvider interface for dependency injection
type UVProvider interface {
	CurrentUV(ctx context.Context, lat, lon float64) (float64, error)
}

// NewUVService creates a new UV service
func NewUVService(provider UVProvider) *UVService {
	return &UVService{provider: provider}
}

// Report queries the provider with the location's coordinates. Provider
// errors are returned wrapped and unmodified.
func (s *UVService) Report(ctx context.Context, loc models.Location) (*models.UVReport, error) {
	ctx, span := otel.Tracer("uv-advisory-api/service").Start(ctx, "uv.report")
	defer span.End()

	uv, err := s.provider.CurrentUV(ctx, loc.Latitude, loc.Longitude)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("service: failed to fetch UV index: %w", err)
	}

	level := advisory.Classify(uv)
	span.SetAttributes(
		attribute.Float64("uv.index", uv),
		attribute.String("uv.risk", level.Risk),
	)

	return &models.UVReport{
		Location:  loc.Locality,
		Postcode:  loc.Postcode,
		State:     loc.State,
		Latitude:  loc.Latitude,
		Longitude: loc.Longitude,
		UVIndex:   uv,
		RiskLevel: level.Risk,
		Advisory:  level.Advice,
	}, nil
}
