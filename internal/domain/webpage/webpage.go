// Package webpage holds the typed payload produced by the page-fetch provider.
package webpage

import "time"

// Page is the extracted text content of one fetched URL.
type Page struct {
	URL         string    `json:"url"`
	Title       string    `json:"title,omitempty"`
	Content     string    `json:"content"`
	ContentType string    `json:"content_type"`
	Truncated   bool      `json:"truncated"`
	FetchedAt   time.Time `json:"fetched_at"`
}
