package auth

import "time"

// Status is the controller's current belief about authentication.
type Status string

const (
	// StatusUnknown means startup resolution has not run yet.
	StatusUnknown Status = "unknown"
	// StatusUnauthenticated means there is no usable access token.
	StatusUnauthenticated Status = "unauthenticated"
	// StatusAuthenticated means a valid, unexpired token is available.
	StatusAuthenticated Status = "authenticated"
)

// Session is the read surface exposed to the rest of the application.
// AccessToken and ExpiresAt are set together or not at all; a token whose
// expiry lies in the past is never surfaced as authenticated.
type Session struct {
	Status      Status
	AccessToken string
	ExpiresAt   time.Time
}

// Authenticated reports whether the session carries a usable token.
func (s Session) Authenticated() bool {
	return s.Status == StatusAuthenticated && s.AccessToken != ""
}
