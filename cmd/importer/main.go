package main

import (
	"context"
	"encoding/csv"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"uv-advisory-api/internal/config"
	"uv-advisory-api/internal/observability"
	"uv-advisory-api/internal/repository"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog/log"
)

// PostcodeRecord is one row of the postcode CSV.
type PostcodeRecord struct {
	Postcode string
	Locality string
	State    string
	Lat      float64
	Lon      float64
}

func main() {
	file := flag.String("file", "", "Path to the postcode CSV file to import")
	truncate := flag.Bool("truncate", false, "Replace existing rows instead of appending")
	flag.Parse()

	observability.SetupLogger("info", "console")

	if *file == "" {
		log.Fatal().Msg("--file flag is required")
	}

	log.Info().Str("file", *file).Msg("starting import")

	f, err := os.Open(*file)
	if err != nil {
		log.Fatal().Err(err).Msg("cannot open file")
	}
	defer f.Close()

	records, skipped, err := parseCSV(f)
	if err != nil {
		log.Fatal().Err(err).Msg("cannot parse CSV")
	}

	log.Info().Int("records", len(records)).Int("skipped", skipped).Msg("parsed CSV")

	cfg, err := config.Load("configs")
	if err != nil {
		log.Fatal().Err(err).Msg("cannot load config")
	}
	if cfg.DBSource == "" {
		log.Fatal().Msg("DB_SOURCE is required")
	}

	ctx := context.Background()

	conn, err := pgx.Connect(ctx, cfg.DBSource)
	if err != nil {
		log.Fatal().Err(err).Msg("cannot connect to db")
	}
	defer conn.Close(ctx)

	if _, err := conn.Exec(ctx, repository.Schema); err != nil {
		log.Fatal().Err(err).Msg("cannot create table")
	}

	before := 0
	if *truncate {
		if _, err := conn.Exec(ctx, "TRUNCATE postcodes"); err != nil {
			log.Fatal().Err(err).Msg("cannot truncate table")
		}
	} else if err := conn.QueryRow(ctx, "SELECT COUNT(*) FROM postcodes").Scan(&before); err != nil {
		log.Fatal().Err(err).Msg("cannot count existing rows")
	}

	if err := insertRecords(ctx, conn, records); err != nil {
		log.Fatal().Err(err).Msg("cannot insert records")
	}

	if err := verifyImport(ctx, conn, before+len(records)); err != nil {
		log.Fatal().Err(err).Msg("import verification failed")
	}

	log.Info().Int("records", len(records)).Msg("import complete")
}

// parseCSV reads rows of postcode,locality,state,latitude,longitude after a
// header row. Rows without coordinates (PO boxes and the like) are skipped and counted.
func parseCSV(r io.Reader) ([]PostcodeRecord, int, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	if _, err := reader.Read(); err != nil {
		return nil, 0, fmt.Errorf("failed to read header: %w", err)
	}

	var (
		records []PostcodeRecord
		skipped int
	)
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, 0, fmt.Errorf("failed to read record: %w", err)
		}

		if len(record) < 5 {
			return nil, 0, fmt.Errorf("invalid record length: %d, expected at least 5 columns", len(record))
		}

		if strings.TrimSpace(record[3]) == "" || strings.TrimSpace(record[4]) == "" {
			skipped++
			continue
		}

		postcode, err := normalizePostcode(record[0])
		if err != nil {
			return nil, 0, err
		}

		lat, err := strconv.ParseFloat(strings.TrimSpace(record[3]), 64)
		if err != nil || lat < -90 || lat > 90 {
			return nil, 0, fmt.Errorf("invalid latitude: %s", record[3])
		}

		lon, err := strconv.ParseFloat(strings.TrimSpace(record[4]), 64)
		if err != nil || lon < -180 || lon > 180 {
			return nil, 0, fmt.Errorf("invalid longitude: %s", record[4])
		}

		records = append(records, PostcodeRecord{
			Postcode: postcode,
			Locality: strings.ToUpper(strings.TrimSpace(record[1])),
			State:    strings.ToUpper(strings.TrimSpace(record[2])),
			Lat:      lat,
			Lon:      lon,
		})
	}

	return records, skipped, nil
}

// normalizePostcode restores leading zeros that spreadsheet exports drop (800 -> 0800).
func normalizePostcode(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" || len(raw) > 4 {
		return "", fmt.Errorf("invalid postcode: %q", raw)
	}
	for _, r := range raw {
		if r < '0' || r > '9' {
			return "", fmt.Errorf("invalid postcode: %q", raw)
		}
	}
	return strings.Repeat("0", 4-len(raw)) + raw, nil
}

func insertRecords(ctx context.Context, conn *pgx.Conn, records []PostcodeRecord) error {
	_, err := conn.CopyFrom(
		ctx,
		pgx.Identifier{"postcodes"},
		[]string{"postcode", "locality", "state", "latitude", "longitude"},
		pgx.CopyFromSlice(len(records), func(i int) ([]any, error) {
			r := records[i]
			return []any{r.Postcode, r.Locality, r.State, r.Lat, r.Lon}, nil
		}),
	)
	return err
}

func verifyImport(ctx context.Context, conn *pgx.Conn, expectedCount int) error {
	var count int
	err := conn.QueryRow(ctx, "SELECT COUNT(*) FROM postcodes").Scan(&count)
	if err != nil {
		return fmt.Errorf("failed to count records: %w", err)
	}

	if count != expectedCount {
		return fmt.Errorf("record count mismatch: expected %d, got %d", expectedCount, count)
	}

	var postcode, locality string
	err = conn.QueryRow(ctx, "SELECT postcode, locality FROM postcodes ORDER BY id LIMIT 1").Scan(&postcode, &locality)
	if err != nil {
		return fmt.Errorf("failed to read sample row: %w", err)
	}

	log.Info().Str("postcode", postcode).Str("locality", locality).Msg("sample row")
	return nil
}
