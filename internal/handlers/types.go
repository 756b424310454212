package handlers

import "time"

// ShortenRequest is the request body for creating a short URL.
type ShortenRequest struct {
	Body struct {
		URL string `doc:"The URL to shorten" example:"https://example.com/very/long/path" json:"url"`
	}
}

// ShortenResponse is the response for a successfully created short URL.
type ShortenResponse struct {
	Headers struct {
		Location string `doc:"The short URL location" header:"Location"`
	}
	Body struct {
		ShortCode string `doc:"The short code"     example:"a1b2c3"                             json:"short_code"`
		ShortURL  string `doc:"The full short URL" example:"http://localhost:8888/a1b2c3"       json:"short_url"`
		LongURL   string `doc:"The original URL"   example:"https://example.com/very/long/path" json:"long_url"`
	}
}

// LookupRequest is the request for looking up a short code.
type LookupRequest struct {
	Code string `doc:"The short code" example:"a1b2c3" path:"code"`
}

// LookupResponse is the response carrying the stored mapping.
type LookupResponse struct {
	Body struct {
		ShortCode string `doc:"The short code"   example:"a1b2c3"              json:"short_code"`
		LongURL   string `doc:"The original URL" example:"https://example.com" json:"long_url"`
	}
}

// RedirectRequest is the request for redirecting a short URL.
type RedirectRequest struct {
	Code string `doc:"The short code" example:"a1b2c3" path:"code"`
}

// RedirectResponse issues a permanent redirect to the original URL.
type RedirectResponse struct {
	Status  int
	Headers struct {
		Location string `doc:"The original URL" header:"Location"`
	}
}

// InfoResponse describes the service and its endpoints.
type InfoResponse struct {
	Body struct {
		Message   string    `doc:"Service description"  json:"message"`
		Endpoints []string  `doc:"Available endpoints"  json:"endpoints"`
		Timestamp time.Time `doc:"Server time"          json:"timestamp"`
	}
}
