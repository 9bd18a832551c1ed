package models

// Location is a row of the postcode reference table: an Australian postcode, its locality name and the locality's coordinates.
type Location struct {
	Postcode  string  `json:"postcode"`
	Locality  string  `json:"locality"`
	State     string  `json:"state"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}
