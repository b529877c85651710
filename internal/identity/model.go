package identity

import "time"

// User represents a student account keyed by the Google subject id.
type User struct {
	UID         string
	Email       string
	DisplayName string
	IsPremium   bool
	CreatedAt   time.Time
}

// Assertion carries the facts extracted from a verified Google ID token.
type Assertion struct {
	Subject string
	Email   string
	Name    string
}
