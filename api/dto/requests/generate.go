// ABOUTME: Request DTOs for the feed preview endpoint
// ABOUTME: Mirrors the submit form: the URL to preview and the one submitted before it

package requests

import "strings"

// GenerateRequest represents the request body for previewing a feed
type GenerateRequest struct {
	// URL is the podcast feed to preview
	URL string `json:"url" maxLength:"2048" doc:"Podcast feed URL"`

	// Previous is the URL submitted last time, if any
	Previous string `json:"previous,omitempty" maxLength:"2048" doc:"Previously submitted feed URL"`
}

// Normalize trims surrounding whitespace from both URLs
func (r *GenerateRequest) Normalize() {
	r.URL = strings.TrimSpace(r.URL)
	r.Previous = strings.TrimSpace(r.Previous)
}
