package model

import "time"

// CreateShortRequest представляет тело запроса POST /create-short.
type CreateShortRequest struct {
	LongURL    string     `json:"long_url" validate:"required,max=2048"`
	Alias      string     `json:"alias,omitempty" validate:"omitempty,shortcode"`
	ExpiresAt  *time.Time `json:"expires_at,omitempty"`
	TTLSeconds int64      `json:"ttl_seconds,omitempty" validate:"omitempty,gte=0"`
}

// ShortenRequest представляет структуру запроса на сокращение URL (JSON API).
type ShortenRequest struct {
	URL string `json:"url"`
}

// ShortenResponse представляет структуру ответа с сокращённым URL.
type ShortenResponse struct {
	Result string `json:"result"`
}
