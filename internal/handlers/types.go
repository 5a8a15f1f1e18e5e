package handlers

import "time"

// ShortenRequest is the request for creating a short link.
type ShortenRequest struct {
	Body struct {
		URL         string `doc:"The URL to shorten"                                example:"https://example.com/very/long/path" json:"url"`
		CustomAlias string `doc:"Desired code instead of a generated one"           example:"promo"                              json:"customAlias,omitempty" required:"false"`
		TTLSeconds  int64  `doc:"Seconds until the mapping expires; 0 never expires" example:"86400"                             json:"ttlSeconds,omitempty"  minimum:"0" required:"false"`
	}
}

// Headers carries the Location header of a response. It is embedded so huma's
// reflection picks up the header tag; a named struct field would be skipped.
type Headers struct {
	Location string `doc:"The short URL or redirect target" header:"Location"`
}

// ShortenResponse is the response for a successfully created short link.
type ShortenResponse struct {
	Headers
	Body struct {
		Code        string     `doc:"The short code"                example:"b7Ryq2"                             json:"code"`
		ShortURL    string     `doc:"The full short URL"            example:"http://localhost:8888/b7Ryq2"       json:"shortUrl"`
		OriginalURL string     `doc:"The original URL"              example:"https://example.com/very/long/path" json:"originalUrl"`
		ExpiresAt   *time.Time `doc:"Expiry instant, if one is set" json:"expiresAt,omitempty"`
	}
}

// RedirectRequest is the request for resolving a short code.
type RedirectRequest struct {
	Code string `doc:"The short code" example:"b7Ryq2" path:"code"`
}

// RedirectResponse redirects the caller to the original URL.
type RedirectResponse struct {
	Status int
	Headers
}

// DeleteRequest is the request for removing a short code.
type DeleteRequest struct {
	Code string `doc:"The short code" example:"b7Ryq2" path:"code"`
}

// DeleteResponse is the empty response of an idempotent delete.
type DeleteResponse struct {
	Status int
}
