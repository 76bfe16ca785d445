// Package restcountries provides a client for the REST Countries v3.1 API.
package restcountries

import "time"

// DefaultBaseURL is the public REST Countries endpoint.
const DefaultBaseURL = "https://restcountries.com/v3.1"

// Config holds configuration for the REST Countries API client.
type Config struct {
	BaseURL   string        // Base URL for the API (e.g., "https://restcountries.com/v3.1")
	Timeout   time.Duration // HTTP request timeout
	RateLimit int           // Outbound calls per minute; 0 disables limiting
}
