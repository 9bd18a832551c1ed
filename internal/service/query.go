package service

import (
	"math"
	"regexp"
	"strings"
)

var postcodeLike = regexp.MustCompile(`^[0-9]+$`)

// IsPostcode reports whether a location query is looked up by postcode rather than by locality.
func IsPostcode(query string) bool {
	return postcodeLike.MatchString(strings.TrimSpace(query))
}

// Round2 rounds to two decimal places, the precision the API reports coordinates at.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
