package config

import "time"

// API holds settings for the backend the console talks to.
type API struct {
	// BaseURL is the root of the catalog backend, without a trailing slash.
	BaseURL string `env:"API_BASE_URL" envDefault:"http://localhost:8080"`

	// RequestTimeout bounds every HTTP request issued by the client.
	// An elapsed timeout surfaces as a timeout network failure, not a
	// generic error.
	RequestTimeout time.Duration `env:"API_REQUEST_TIMEOUT" envDefault:"10s"`
}
