// Package notification implements the console's notification feed. Unlike
// the proxy resources it is owned locally: entries live in a single JSON
// array file and never touch the upstream backend.
package notification

import "time"

// Type classifies a console notification.
type Type string

const (
	TypeInfo    Type = "info"
	TypeWarning Type = "warning"
	TypeSuccess Type = "success"
	TypeError   Type = "error"
)

// Valid reports whether t is one of the known notification types.
func (t Type) Valid() bool {
	switch t {
	case TypeInfo, TypeWarning, TypeSuccess, TypeError:
		return true
	}
	return false
}

// Notification is one entry in the console's notification feed. The JSON
// field names match the file layout the console has always written; there is
// no migration mechanism, so they must not change.
type Notification struct {
	ID           string    `json:"_id"`
	UserID       string    `json:"userId"`
	Username     string    `json:"username"`
	Title        string    `json:"title"`
	Message      string    `json:"message"`
	Type         Type      `json:"type"`
	Timestamp    time.Time `json:"timestamp"`
	Read         bool      `json:"read"`
	CreatedTime  time.Time `json:"created_time"`
	ModifiedTime time.Time `json:"modified_time"`
}
