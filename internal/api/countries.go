package api

// Country is the JSON view of a country.
type Country struct {
	Code         string     `json:"code"`
	Name         string     `json:"name"`
	OfficialName string     `json:"officialName,omitempty"`
	FlagURL      string     `json:"flag,omitempty"`
	Population   int64      `json:"population"`
	Region       string     `json:"region"`
	Subregion    string     `json:"subregion,omitempty"`
	Capital      []string   `json:"capital"`
	Languages    []string   `json:"languages,omitempty"`
	Currencies   []Currency `json:"currencies,omitempty"`
	Area         float64    `json:"area,omitempty"`
	Timezones    []string   `json:"timezones,omitempty"`
	TLD          []string   `json:"tld,omitempty"`
	DrivingSide  string     `json:"drivingSide,omitempty"`
	UNMember     bool       `json:"unMember"`
	MapURL       string     `json:"map,omitempty"`
	Borders      []string   `json:"borders,omitempty"`
}

// Currency is the JSON view of a currency.
type Currency struct {
	Code   string `json:"code"`
	Name   string `json:"name"`
	Symbol string `json:"symbol,omitempty"`
}

// CountryDetail is the payload of GET /countries/:code.
type CountryDetail struct {
	Country Country   `json:"country"`
	Borders []Country `json:"borders"`
}

// CountryListResponse is returned by the country list endpoints.
type CountryListResponse = DataResponse[[]Country]

// CountryDetailResponse is returned by GET /countries/:code.
type CountryDetailResponse = DataResponse[CountryDetail]
