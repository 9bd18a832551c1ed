package models

// UVReport is the response for a UV lookup: the resolved location, the current UV index and the matching advice.
type UVReport struct {
	Location  string  `json:"location"`
	Postcode  string  `json:"postcode,omitempty"`
	State     string  `json:"state,omitempty"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	UVIndex   float64 `json:"uv_index"`
	RiskLevel string  `json:"risk_level"`
	Advisory  string  `json:"advisory"`
}
