package repository

// Schema creates the postcode reference table and its lookup indexes.
// It is idempotent.
const Schema = `
	CREATE TABLE IF NOT EXISTS postcodes (
		id BIGSERIAL PRIMARY KEY,
		postcode VARCHAR(4) NOT NULL,
		locality VARCHAR(255) NOT NULL,
		state VARCHAR(3) NOT NULL DEFAULT '',
		latitude DOUBLE PRECISION NOT NULL,
		longitude DOUBLE PRECISION NOT NULL
	);
	CREATE INDEX IF NOT EXISTS postcodes_postcode_idx ON postcodes (postcode);
	CREATE INDEX IF NOT EXISTS postcodes_locality_lower_idx ON postcodes (lower(locality));
`
