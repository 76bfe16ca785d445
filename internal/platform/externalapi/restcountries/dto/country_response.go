// Package dto defines data transfer objects for the REST Countries API responses.
package dto

// CountryResponse represents one element of a REST Countries v3.1 response.
type CountryResponse struct {
	CCA3 string `json:"cca3"`
	Name struct {
		Common   string `json:"common"`
		Official string `json:"official"`
	} `json:"name"`
	Flags struct {
		SVG string `json:"svg"`
		PNG string `json:"png"`
	} `json:"flags"`
	Population int64             `json:"population"`
	Region     string            `json:"region"`
	Subregion  string            `json:"subregion"`
	Capital    []string          `json:"capital"`
	Languages  map[string]string `json:"languages"`
	Currencies map[string]struct {
		Name   string `json:"name"`
		Symbol string `json:"symbol"`
	} `json:"currencies"`
	Area      float64  `json:"area"`
	Timezones []string `json:"timezones"`
	TLD       []string `json:"tld"`
	Car       struct {
		Side string `json:"side"`
	} `json:"car"`
	UNMember bool `json:"unMember"`
	Maps     struct {
		GoogleMaps string `json:"googleMaps"`
	} `json:"maps"`
	Borders []string `json:"borders"`
}

// ErrorResponse is the body REST Countries returns with non-2xx statuses.
type ErrorResponse struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
}
