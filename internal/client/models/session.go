// Package models defines the data the CLI exchanges with the catalog API and
// keeps in its local cache.
package models

import "time"

// Session is the cached login of the CLI. Only one session exists at a time.
type Session struct {
	Email       string
	AccessToken string
	ExpiresAt   time.Time
}

// Active reports whether the session token is still usable at now.
func (s *Session) Active(now time.Time) bool {
	return s != nil && s.AccessToken != "" && now.Before(s.ExpiresAt)
}
