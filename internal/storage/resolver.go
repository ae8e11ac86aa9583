// Package storage resolves blob-store object paths to public URLs.
// The store itself is external; this service only records paths.
package storage

import "strings"

// Resolver joins stored object paths onto the public base URL.
type Resolver struct {
	baseURL string
}

// NewResolver creates a resolver. An empty base URL yields empty URLs,
// which the dashboard treats as "no document uploaded".
func NewResolver(baseURL string) *Resolver {
	return &Resolver{baseURL: strings.TrimRight(baseURL, "/")}
}

// PublicURL returns the public URL for a stored path, or "" when either
// side is unset.
func (r *Resolver) PublicURL(path string) string {
	cleaned := strings.TrimLeft(strings.TrimSpace(path), "/")
	if cleaned == "" || r.baseURL == "" {
		return ""
	}
	return r.baseURL + "/" + cleaned
}
