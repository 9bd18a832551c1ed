package repository

import (
	"context"
	"errors"
	"fmt"

	"uv-advisory-api/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrNotFound is returned when no postcode row matches a lookup.
var ErrNotFound = errors.New("repository: location not found")

const selectLocation = `
		SELECT
			postcode,
			locality,
			state,
			latitude,
			longitude
		FROM postcodes
`

// Repository implements postcode lookups against PostgreSQL
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository creates a new PostgreSQL repository
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// FindByPostcode returns the first locality registered under an exact postcode
func (r *Repository) FindByPostcode(ctx context.Context, postcode string) (*models.Location, error) {
	sql := selectLocation + `
		WHERE postcode = $1
		ORDER BY locality
		LIMIT 1
	`
	return r.queryOne(ctx, sql, postcode)
}

// FindByLocality performs a case-insensitive substring match on the locality name.
// Rows are ordered by locality then postcode so the first match is stable.
func (r *Repository) FindByLocality(ctx context.Context, fragment string) (*models.Location, error) {
	sql := selectLocation + `
		WHERE locality ILIKE '%' || $1::text || '%'
		ORDER BY locality, postcode
		LIMIT 1
	`
	return r.queryOne(ctx, sql, escapeLike(fragment))
}

// FindNearest returns the row closest to the given coordinates by squared
// distance in degree space. This is not a geodesic distance.
func (r *Repository) FindNearest(ctx context.Context, lat, lon float64) (*models.Location, error) {
	sql := selectLocation + `
		ORDER BY (latitude - $1) * (latitude - $1) + (longitude - $2) * (longitude - $2), postcode
		LIMIT 1
	`
	return r.queryOne(ctx, sql, lat, lon)
}

// Ping checks that the database is reachable
func (r *Repository) Ping(ctx context.Context) error {
	if err := r.db.Ping(ctx); err != nil {
		return fmt.Errorf("repository: ping failed: %w", err)
	}
	return nil
}

func (r *Repository) queryOne(ctx context.Context, sql string, args ...any) (*models.Location, error) {
	var loc models.Location
	err := r.db.QueryRow(ctx, sql, args...).Scan(
		&loc.Postcode,
		&loc.Locality,
		&loc.State,
		&loc.Latitude,
		&loc.Longitude,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("repository: failed to execute lookup query: %w", err)
	}

	return &loc, nil
}

// escapeLike stops user input from being read as LIKE wildcards.
func escapeLike(s string) string {
	out := make([]rune, 0, len(s))
	for _, r := range s {
		switch r {
		case '\\', '%', '_':
			out = append(out, '\\')
		}
		out = append(out, r)
	}
	return string(out)
}
