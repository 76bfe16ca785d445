// Package entity defines the country data served by the countries feature.
package entity

// Country is the subset of country data the explorer displays.
type Country struct {
	Code         string // ISO 3166-1 alpha-3 (cca3)
	Name         string
	OfficialName string
	FlagURL      string
	Population   int64
	Region       string
	Subregion    string
	Capital      []string
	Languages    []string
	Currencies   []Currency
	Area         float64
	Timezones    []string
	TLD          []string
	DrivingSide  string
	UNMember     bool
	MapURL       string
	Borders      []string // alpha-3 codes
}

// Currency is a currency in use in a country.
type Currency struct {
	Code   string
	Name   string
	Symbol string
}

// CountryDetail is a country together with its resolved neighbours.
type CountryDetail struct {
	Country Country
	Borders []Country
}
