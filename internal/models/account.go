package models

import (
	"strings"
	"time"
)

// AccountID identifies a marketplace participant. The core treats it as an
// opaque, comparable token supplied by the identity resolver.
type AccountID string

// String returns the raw identifier.
func (a AccountID) String() string { return string(a) }

// IsZero reports whether the identifier is empty.
func (a AccountID) IsZero() bool { return strings.TrimSpace(string(a)) == "" }

// Account is a login record used by the identity resolver to issue tokens.
// PasswordHash is never serialized to clients.
type Account struct {
	ID           AccountID `json:"id"`
	PasswordHash string    `json:"passwordHash"`
	CreatedAt    time.Time `json:"createdAt"`
}
